package schema

// CatalogUniversalItemTable represents the 'catalog.universalitem' table
type CatalogUniversalItemTable struct {
	Table         string
	ID            string
	ExternalID    string
	ItemType      string
	Title         string
	CreatorString string
	CreatedAt     string
	UpdatedAt     string
}

// CatalogUniversalItem is the schema definition for catalog.universalitem
var CatalogUniversalItem = CatalogUniversalItemTable{
	Table:         "catalog.universalitem",
	ID:            "id",
	ExternalID:    "externalid",
	ItemType:      "itemtype",
	Title:         "title",
	CreatorString: "creatorstring",
	CreatedAt:     "createdat",
	UpdatedAt:     "updatedat",
}

// Columns returns all standard column names
func (t CatalogUniversalItemTable) Columns() []string {
	return []string{t.ID, t.ExternalID, t.ItemType, t.Title, t.CreatorString, t.CreatedAt, t.UpdatedAt}
}
