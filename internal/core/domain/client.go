package domain

import "time"

// Role is the access level assigned to a client account.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleCreator Role = "creator"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleCreator:
		return true
	}
	return false
}

// Client models a registered account on the news platform.
// Password always holds a bcrypt hash, never the plaintext.
type Client struct {
	ID         string    `json:"id"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	MiddleName string    `json:"middle_name"`
	Email      string    `json:"email"`
	Role       Role      `json:"role"`
	Password   string    `json:"-"`
	Score      float64   `json:"score"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
