package schema

// CoreCultureTable represents the 'core.culture' table
type CoreCultureTable struct {
	Table          string
	ID             string
	OwnerID        string
	Name           string
	Code           string
	Colour         string
	Picture        string
	SharedGroupKey string
	Visibility     string
	CreatedAt      string
	UpdatedAt      string
}

// CoreCulture is the schema definition for core.culture
var CoreCulture = CoreCultureTable{
	Table:          "core.culture",
	ID:             "id",
	OwnerID:        "ownerid",
	Name:           "name",
	Code:           "code",
	Colour:         "colour",
	Picture:        "picture",
	SharedGroupKey: "sharedgroupkey",
	Visibility:     "visibility",
	CreatedAt:      "createdat",
	UpdatedAt:      "updatedat",
}

// Columns returns all standard column names
func (t CoreCultureTable) Columns() []string {
	return []string{t.ID, t.OwnerID, t.Name, t.Code, t.Colour, t.Picture, t.SharedGroupKey, t.Visibility, t.CreatedAt, t.UpdatedAt}
}
