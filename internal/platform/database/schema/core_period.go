package schema

// CorePeriodTable represents the 'core.period' table
type CorePeriodTable struct {
	Table       string
	ID          string
	CultureID   string
	CategoryID  string
	Section     string
	StartYear   string
	EndYear     string
	Description string
	ShortIntro  string
	CreatedAt   string
	UpdatedAt   string
}

// CorePeriod is the schema definition for core.period
var CorePeriod = CorePeriodTable{
	Table:       "core.period",
	ID:          "id",
	CultureID:   "cultureid",
	CategoryID:  "categoryid",
	Section:     "section",
	StartYear:   "startyear",
	EndYear:     "endyear",
	Description: "description",
	ShortIntro:  "shortintro",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

// Columns returns all standard column names
func (t CorePeriodTable) Columns() []string {
	return []string{t.ID, t.CultureID, t.CategoryID, t.Section, t.StartYear, t.EndYear, t.Description, t.ShortIntro, t.CreatedAt, t.UpdatedAt}
}
