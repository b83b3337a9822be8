package schema

// LibraryListItemTable represents the 'library.listitem' table
type LibraryListItemTable struct {
	Table           string
	ListID          string
	UniversalItemID string
	Position        string
	AddedAt         string
}

// LibraryListItem is the schema definition for library.listitem
var LibraryListItem = LibraryListItemTable{
	Table:           "library.listitem",
	ListID:          "listid",
	UniversalItemID: "universalitemid",
	Position:        "position",
	AddedAt:         "addedat",
}

// Columns returns all standard column names
func (t LibraryListItemTable) Columns() []string {
	return []string{t.ListID, t.UniversalItemID, t.Position, t.AddedAt}
}
