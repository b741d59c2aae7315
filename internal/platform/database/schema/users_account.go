package schema

// UserAccountTable represents the 'users.account' table
type UserAccountTable struct {
	Table                   string
	ID                      string
	FullName                string
	Email                   string
	Password                string
	Status                  string
	Role                    string
	VerificationCode        string
	VerificationCodeExpires string
	TwoFactorCode           string
	TwoFactorCodeExpires    string
	CreatedAt               string
	UpdatedAt               string
}

// UserAccount is the schema definition for users.account
var UserAccount = UserAccountTable{
	Table:                   "users.account",
	ID:                      "id",
	FullName:                "fullname",
	Email:                   "email",
	Password:                "passwordhash",
	Status:                  "status",
	Role:                    "role",
	VerificationCode:        "verificationcode",
	VerificationCodeExpires: "verificationcodeexpires",
	TwoFactorCode:           "twofactorcode",
	TwoFactorCodeExpires:    "twofactorcodeexpires",
	CreatedAt:               "createdat",
	UpdatedAt:               "updatedat",
}

// Columns returns all standard column names
func (t UserAccountTable) Columns() []string {
	return []string{
		t.ID, t.FullName, t.Email, t.Password, t.Status, t.Role,
		t.VerificationCode, t.VerificationCodeExpires,
		t.TwoFactorCode, t.TwoFactorCodeExpires,
		t.CreatedAt, t.UpdatedAt,
	}
}
