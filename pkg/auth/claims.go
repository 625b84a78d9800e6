// Package auth implements the access control gate: HS256 bearer tokens
// issued at login and validated on every request, with the caller's
// identity and role attached to the request context.
package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/bolsa-dev/bolsa-engine/pkg/models"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

// ClaimsKey is the context key for storing validated token claims.
const ClaimsKey contextKey = "claims"

// Claims is the token payload. Subject carries the user ID; Role carries
// the user's role tag from the closed {trabajador, administrador} set.
type Claims struct {
	jwt.RegisteredClaims
	Role models.Role `json:"role"`
}

// UserID parses the subject claim as a user ID.
func (c *Claims) UserID() (uuid.UUID, error) {
	return uuid.Parse(c.Subject)
}

// IsAdministrator reports whether the token holder is an administrator.
// Authorization checks go through this predicate, not string comparison at
// call sites.
func (c *Claims) IsAdministrator() bool {
	return c.Role == models.RoleAdministrator
}
