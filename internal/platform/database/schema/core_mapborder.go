package schema

// CoreMapBorderTable represents the 'core.mapborder' table
type CoreMapBorderTable struct {
	Table     string
	ID        string
	CultureID string
	PeriodID  string
	Borders   string
	CreatedAt string
	UpdatedAt string
}

// CoreMapBorder is the schema definition for core.mapborder
var CoreMapBorder = CoreMapBorderTable{
	Table:     "core.mapborder",
	ID:        "id",
	CultureID: "cultureid",
	PeriodID:  "periodid",
	Borders:   "borders",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}

// Columns returns all standard column names
func (t CoreMapBorderTable) Columns() []string {
	return []string{t.ID, t.CultureID, t.PeriodID, t.Borders, t.CreatedAt, t.UpdatedAt}
}
