package schema

// CatalogBookTable represents the 'catalog.book' table
type CatalogBookTable struct {
	Table           string
	ID              string
	UniversalItemID string
	OLID            string
	ISBN            string
	Title           string
	AltTitle        string
	Creator         string
	AltCreatorName  string
	Genres          string
	Synopsis        string
	Cover           string
	Languages       string
	PublishDate     string
	CreatedAt       string
	UpdatedAt       string
}

// CatalogBook is the schema definition for catalog.book
var CatalogBook = CatalogBookTable{
	Table:           "catalog.book",
	ID:              "id",
	UniversalItemID: "universalitemid",
	OLID:            "olid",
	ISBN:            "isbn",
	Title:           "title",
	AltTitle:        "alttitle",
	Creator:         "creator",
	AltCreatorName:  "altcreatorname",
	Genres:          "genres",
	Synopsis:        "synopsis",
	Cover:           "cover",
	Languages:       "languages",
	PublishDate:     "publishdate",
	CreatedAt:       "createdat",
	UpdatedAt:       "updatedat",
}

// Columns returns all standard column names
func (t CatalogBookTable) Columns() []string {
	return []string{t.ID, t.UniversalItemID, t.OLID, t.ISBN, t.Title, t.AltTitle, t.Creator, t.AltCreatorName, t.Genres, t.Synopsis, t.Cover, t.Languages, t.PublishDate, t.CreatedAt, t.UpdatedAt}
}
