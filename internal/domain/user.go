package domain

type User struct {
	ID    string `db:"id" json:"id"`
	Email string `db:"email" json:"email"`
	Name  string `db:"name" json:"name"`
	Hash  string `db:"password_hash" json:"-"`
	Role  Role   `db:"role" json:"role"`
}

// Role is the resolved access level of a request.
type Role string

const (
	RoleAnonymous Role = "ANONYMOUS"
	RoleUser      Role = "USER"
	RoleAdmin     Role = "ADMIN"
)

// Principal is the caller identity, resolved once at the session
// boundary and passed explicitly into every mutating service call.
type Principal struct {
	Role Role
	User *User
}

func Anonymous() Principal { return Principal{Role: RoleAnonymous} }

func (p Principal) IsAdmin() bool { return p.Role == RoleAdmin }

func (p Principal) UserID() string {
	if p.User == nil {
		return ""
	}
	return p.User.ID
}
