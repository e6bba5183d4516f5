package models

// Role is a user's authorization tier.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
	RoleAuthor Role = "author"
	RoleUser   Role = "user"
)

// ValidRole reports whether r is one of the enumerated roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleEditor, RoleAuthor, RoleUser:
		return true
	}
	return false
}

// User is a registered account. Username and email are unique with
// case-insensitive comparison. The password field holds whatever credential
// the auth boundary hands over (a bcrypt hash in this deployment).
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Password string `json:"-"`
	Email    string `json:"email"`
	Name     string `json:"name,omitempty"`
	Bio      string `json:"bio,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
	Role     Role   `json:"role"`
	IsActive bool   `json:"isActive"`
}
