package models

import (
	"time"

	"github.com/google/uuid"
)

// Role is the closed set of user roles. All authorization decisions go
// through the predicates below rather than ad hoc string comparison.
type Role string

const (
	RoleWorker        Role = "trabajador"
	RoleAdministrator Role = "administrador"
)

// ValidRoles contains all valid role values.
var ValidRoles = []Role{RoleWorker, RoleAdministrator}

// IsValidRole checks if the given role is valid.
func IsValidRole(role Role) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}

// User is an account in the identity store. PasswordHash is the bcrypt
// hash of the user's password; plain text is never stored.
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// IsAdministrator reports whether the user holds the administrator role.
func (u *User) IsAdministrator() bool {
	return u.Role == RoleAdministrator
}
