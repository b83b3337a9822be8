package schema

// CatalogArtworkTable represents the 'catalog.artwork' table
type CatalogArtworkTable struct {
	Table             string
	ID                string
	UniversalItemID   string
	Title             string
	Creator           string
	ArtGroup          string
	Location          string
	AssociatedCulture string
	Themes            string
	Photo             string
	ArtType           string
	ExternalLinks     string
	CreatedAt         string
	UpdatedAt         string
}

// CatalogArtwork is the schema definition for catalog.artwork
var CatalogArtwork = CatalogArtworkTable{
	Table:             "catalog.artwork",
	ID:                "id",
	UniversalItemID:   "universalitemid",
	Title:             "title",
	Creator:           "creator",
	ArtGroup:          "artgroup",
	Location:          "location",
	AssociatedCulture: "associatedculture",
	Themes:            "themes",
	Photo:             "photo",
	ArtType:           "arttype",
	ExternalLinks:     "externallinks",
	CreatedAt:         "createdat",
	UpdatedAt:         "updatedat",
}

// Columns returns all standard column names
func (t CatalogArtworkTable) Columns() []string {
	return []string{t.ID, t.UniversalItemID, t.Title, t.Creator, t.ArtGroup, t.Location, t.AssociatedCulture, t.Themes, t.Photo, t.ArtType, t.ExternalLinks, t.CreatedAt, t.UpdatedAt}
}
