package schema

// UserPreferredCultureTable represents the 'users.preferredculture' table
type UserPreferredCultureTable struct {
	Table     string
	UserID    string
	CultureID string
}

// UserPreferredCulture is the schema definition for users.preferredculture
var UserPreferredCulture = UserPreferredCultureTable{
	Table:     "users.preferredculture",
	UserID:    "userid",
	CultureID: "cultureid",
}

// Columns returns all standard column names
func (t UserPreferredCultureTable) Columns() []string {
	return []string{t.UserID, t.CultureID}
}
