package schema

// CorePersonTable represents the 'core.person' table
type CorePersonTable struct {
	Table         string
	ID            string
	GivenName     string
	FamilyName    string
	MiddleName    string
	Bio           string
	Photo         string
	ExternalLinks string
	Profession    string
	Nationality   string
	Birthplace    string
	Titles        string
	Epithets      string
	NotableWorks  string
	CreatedAt     string
	UpdatedAt     string
}

// CorePerson is the schema definition for core.person
var CorePerson = CorePersonTable{
	Table:         "core.person",
	ID:            "id",
	GivenName:     "givenname",
	FamilyName:    "familyname",
	MiddleName:    "middlename",
	Bio:           "bio",
	Photo:         "photo",
	ExternalLinks: "externallinks",
	Profession:    "profession",
	Nationality:   "nationality",
	Birthplace:    "birthplace",
	Titles:        "titles",
	Epithets:      "epithets",
	NotableWorks:  "notableworks",
	CreatedAt:     "createdat",
	UpdatedAt:     "updatedat",
}

// Columns returns all standard column names
func (t CorePersonTable) Columns() []string {
	return []string{t.ID, t.GivenName, t.FamilyName, t.MiddleName, t.Bio, t.Photo, t.ExternalLinks, t.Profession, t.Nationality, t.Birthplace, t.Titles, t.Epithets, t.NotableWorks, t.CreatedAt, t.UpdatedAt}
}
