package schema

// LibraryListTable represents the 'library.list' table
type LibraryListTable struct {
	Table       string
	ID          string
	OwnerID     string
	Name        string
	ListType    string
	Description string
	Visibility  string
	CreatedAt   string
	UpdatedAt   string
}

// LibraryList is the schema definition for library.list
var LibraryList = LibraryListTable{
	Table:       "library.list",
	ID:          "id",
	OwnerID:     "ownerid",
	Name:        "name",
	ListType:    "listtype",
	Description: "description",
	Visibility:  "visibility",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

// Columns returns all standard column names
func (t LibraryListTable) Columns() []string {
	return []string{t.ID, t.OwnerID, t.Name, t.ListType, t.Description, t.Visibility, t.CreatedAt, t.UpdatedAt}
}
