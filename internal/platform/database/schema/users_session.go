package schema

// UserSessionTable represents the 'users.session' table
type UserSessionTable struct {
	Table      string
	ID         string
	UserID     string
	TokenHash  string
	DeviceName string
	IPAddress  string
	UserAgent  string
	IsRevoked  string
	ExpiresAt  string
	RevokedAt  string
	CreatedAt  string
}

// UserSession is the schema definition for users.session
var UserSession = UserSessionTable{
	Table:      "users.session",
	ID:         "id",
	UserID:     "userid",
	TokenHash:  "tokenhash",
	DeviceName: "devicename",
	IPAddress:  "ipaddress",
	UserAgent:  "useragent",
	IsRevoked:  "isrevoked",
	ExpiresAt:  "expiresat",
	RevokedAt:  "revokedat",
	CreatedAt:  "createdat",
}

// Insertable lists the columns a new session row is written with.
func (t UserSessionTable) Insertable() []string {
	return []string{t.ID, t.UserID, t.TokenHash, t.DeviceName, t.IPAddress, t.UserAgent, t.ExpiresAt}
}

// Live is the predicate for a session that is neither revoked nor expired;
// nowArg is the placeholder holding the reference time.
func (t UserSessionTable) Live(nowArg string) string {
	return "NOT " + t.IsRevoked + " AND " + t.ExpiresAt + " > " + nowArg
}
