package schema

// CatalogHistoryEventTable represents the 'catalog.historyevent' table
type CatalogHistoryEventTable struct {
	Table           string
	ID              string
	UniversalItemID string
	Title           string
	Creator         string
	EventType       string
	Location        string
	Sources         string
	Significance    string
	ExternalLinks   string
	CreatedAt       string
	UpdatedAt       string
}

// CatalogHistoryEvent is the schema definition for catalog.historyevent
var CatalogHistoryEvent = CatalogHistoryEventTable{
	Table:           "catalog.historyevent",
	ID:              "id",
	UniversalItemID: "universalitemid",
	Title:           "title",
	Creator:         "creator",
	EventType:       "eventtype",
	Location:        "location",
	Sources:         "sources",
	Significance:    "significance",
	ExternalLinks:   "externallinks",
	CreatedAt:       "createdat",
	UpdatedAt:       "updatedat",
}

// Columns returns all standard column names
func (t CatalogHistoryEventTable) Columns() []string {
	return []string{t.ID, t.UniversalItemID, t.Title, t.Creator, t.EventType, t.Location, t.Sources, t.Significance, t.ExternalLinks, t.CreatedAt, t.UpdatedAt}
}
