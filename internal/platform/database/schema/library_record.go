package schema

// LibraryRecordTable represents the 'library.record' table
type LibraryRecordTable struct {
	Table           string
	ID              string
	OwnerID         string
	Kind            string
	UniversalItemID string
	Title           string
	Rating          string
	Notes           string
	Visibility      string
	Details         string
	CreatedAt       string
	UpdatedAt       string
}

// LibraryRecord is the schema definition for library.record
var LibraryRecord = LibraryRecordTable{
	Table:           "library.record",
	ID:              "id",
	OwnerID:         "ownerid",
	Kind:            "kind",
	UniversalItemID: "universalitemid",
	Title:           "title",
	Rating:          "rating",
	Notes:           "notes",
	Visibility:      "visibility",
	Details:         "details",
	CreatedAt:       "createdat",
	UpdatedAt:       "updatedat",
}

// Columns returns all standard column names
func (t LibraryRecordTable) Columns() []string {
	return []string{t.ID, t.OwnerID, t.Kind, t.UniversalItemID, t.Title, t.Rating, t.Notes, t.Visibility, t.Details, t.CreatedAt, t.UpdatedAt}
}
