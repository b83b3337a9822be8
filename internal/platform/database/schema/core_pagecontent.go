package schema

// CorePageContentTable represents the 'core.pagecontent' table
type CorePageContentTable struct {
	Table        string
	ID           string
	CultureID    string
	CategoryID   string
	IntroText    string
	OverviewText string
	ExtraText    string
	CreatedAt    string
	UpdatedAt    string
}

// CorePageContent is the schema definition for core.pagecontent
var CorePageContent = CorePageContentTable{
	Table:        "core.pagecontent",
	ID:           "id",
	CultureID:    "cultureid",
	CategoryID:   "categoryid",
	IntroText:    "introtext",
	OverviewText: "overviewtext",
	ExtraText:    "extratext",
	CreatedAt:    "createdat",
	UpdatedAt:    "updatedat",
}

// Columns returns all standard column names
func (t CorePageContentTable) Columns() []string {
	return []string{t.ID, t.CultureID, t.CategoryID, t.IntroText, t.OverviewText, t.ExtraText, t.CreatedAt, t.UpdatedAt}
}
