package schema

// LibraryRecordCultureTable represents the 'library.recordculture' table
type LibraryRecordCultureTable struct {
	Table     string
	RecordID  string
	CultureID string
}

// LibraryRecordCulture is the schema definition for library.recordculture
var LibraryRecordCulture = LibraryRecordCultureTable{
	Table:     "library.recordculture",
	RecordID:  "recordid",
	CultureID: "cultureid",
}

// Columns returns all standard column names
func (t LibraryRecordCultureTable) Columns() []string {
	return []string{t.RecordID, t.CultureID}
}
