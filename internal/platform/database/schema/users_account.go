package schema

// UserAccountTable represents the 'users.account' table
type UserAccountTable struct {
	Table       string
	ID          string
	Username    string
	Email       string
	Password    string
	Role        string
	IsActive    string
	LastLoginAt string
	DisplayName string
	AvatarURL   string
	Bio         string
	CreatedAt   string
	UpdatedAt   string
	DeletedAt   string
}

// UserAccount is the schema definition for users.account
var UserAccount = UserAccountTable{
	Table:       "users.account",
	ID:          "id",
	Username:    "username",
	Email:       "email",
	Password:    "passwordhash",
	Role:        "role",
	IsActive:    "isactive",
	LastLoginAt: "lastloginat",
	DisplayName: "displayname",
	AvatarURL:   "avatarurl",
	Bio:         "bio",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
	DeletedAt:   "deletedat",
}

// Scannable lists the live account columns in the order auth.ScanUser reads them.
// DeletedAt is omitted; queries filter on it instead.
func (t UserAccountTable) Scannable() []string {
	return []string{
		t.ID, t.Username, t.Email, t.Password,
		t.DisplayName, t.AvatarURL, t.Bio, t.Role,
		t.IsActive, t.LastLoginAt, t.CreatedAt, t.UpdatedAt,
	}
}
