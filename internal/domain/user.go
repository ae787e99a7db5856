package domain

import "time"

// Role enumerates the fixed set of account roles. The set is seeded at
// initialization and never grows at runtime.
type Role string

const (
	RoleManager Role = "MANAGER"
	RoleSupport Role = "SUPPORT"
	RoleUser    Role = "USER"
)

// Valid reports whether the role belongs to the closed set.
func (r Role) Valid() bool {
	switch r {
	case RoleManager, RoleSupport, RoleUser:
		return true
	}
	return false
}

// User is the domain model for anyone who can authenticate: end-users,
// support staff and managers, differentiated only by Role.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}

// UserRef is the denormalized display fragment attached to tickets and
// comments when foreign references are resolved at read time.
type UserRef struct {
	ID    string
	Name  string
	Email string
}
