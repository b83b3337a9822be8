package schema

// CoreCategoryTable represents the 'core.category' table
type CoreCategoryTable struct {
	Table       string
	ID          string
	CultureID   string
	Key         string
	DisplayName string
	CreatedAt   string
	UpdatedAt   string
}

// CoreCategory is the schema definition for core.category
var CoreCategory = CoreCategoryTable{
	Table:       "core.category",
	ID:          "id",
	CultureID:   "cultureid",
	Key:         "key",
	DisplayName: "displayname",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

// Columns returns all standard column names
func (t CoreCategoryTable) Columns() []string {
	return []string{t.ID, t.CultureID, t.Key, t.DisplayName, t.CreatedAt, t.UpdatedAt}
}
