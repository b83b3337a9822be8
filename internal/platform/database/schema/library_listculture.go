package schema

// LibraryListCultureTable represents the 'library.listculture' table
type LibraryListCultureTable struct {
	Table     string
	ListID    string
	CultureID string
}

// LibraryListCulture is the schema definition for library.listculture
var LibraryListCulture = LibraryListCultureTable{
	Table:     "library.listculture",
	ListID:    "listid",
	CultureID: "cultureid",
}

// Columns returns all standard column names
func (t LibraryListCultureTable) Columns() []string {
	return []string{t.ListID, t.CultureID}
}
