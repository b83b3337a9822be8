package schema

// CoreLanguageTableTable represents the 'core.languagetable' table
type CoreLanguageTableTable struct {
	Table     string
	ID        string
	CultureID string
	Title     string
	TableData string
	CreatedAt string
	UpdatedAt string
}

// CoreLanguageTable is the schema definition for core.languagetable
var CoreLanguageTable = CoreLanguageTableTable{
	Table:     "core.languagetable",
	ID:        "id",
	CultureID: "cultureid",
	Title:     "title",
	TableData: "tabledata",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}

// Columns returns all standard column names
func (t CoreLanguageTableTable) Columns() []string {
	return []string{t.ID, t.CultureID, t.Title, t.TableData, t.CreatedAt, t.UpdatedAt}
}
