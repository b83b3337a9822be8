package schema

// CatalogMusicPieceTable represents the 'catalog.musicpiece' table
type CatalogMusicPieceTable struct {
	Table           string
	ID              string
	UniversalItemID string
	Title           string
	Creator         string
	Instrument      string
	Recording       string
	SheetMusic      string
	ExternalLinks   string
	CreatedAt       string
	UpdatedAt       string
}

// CatalogMusicPiece is the schema definition for catalog.musicpiece
var CatalogMusicPiece = CatalogMusicPieceTable{
	Table:           "catalog.musicpiece",
	ID:              "id",
	UniversalItemID: "universalitemid",
	Title:           "title",
	Creator:         "creator",
	Instrument:      "instrument",
	Recording:       "recording",
	SheetMusic:      "sheetmusic",
	ExternalLinks:   "externallinks",
	CreatedAt:       "createdat",
	UpdatedAt:       "updatedat",
}

// Columns returns all standard column names
func (t CatalogMusicPieceTable) Columns() []string {
	return []string{t.ID, t.UniversalItemID, t.Title, t.Creator, t.Instrument, t.Recording, t.SheetMusic, t.ExternalLinks, t.CreatedAt, t.UpdatedAt}
}
