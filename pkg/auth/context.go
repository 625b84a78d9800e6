package auth

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// GetClaims retrieves validated token claims from the request context.
// Returns nil and false if claims are not present.
func GetClaims(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(ClaimsKey).(*Claims)
	return claims, ok
}

// WithClaims returns a context carrying the given claims. Used by the
// middleware and by tests that bypass it.
func WithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, ClaimsKey, claims)
}

// RequireCallerID extracts the authenticated user's ID from context.
// Returns an error if the request was not authenticated.
func RequireCallerID(ctx context.Context) (uuid.UUID, error) {
	claims, ok := GetClaims(ctx)
	if !ok || claims == nil {
		return uuid.Nil, fmt.Errorf("authentication required: no claims in context")
	}

	id, err := claims.UserID()
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid subject in token: %w", err)
	}
	return id, nil
}
