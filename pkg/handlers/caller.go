package handlers

import (
	"context"
	"fmt"

	"github.com/bolsa-dev/bolsa-engine/pkg/auth"
	"github.com/bolsa-dev/bolsa-engine/pkg/services"
)

// callerFrom builds the service-level caller identity from the claims the
// auth middleware stored in the context.
func callerFrom(ctx context.Context) (services.Caller, error) {
	claims, ok := auth.GetClaims(ctx)
	if !ok || claims == nil {
		return services.Caller{}, fmt.Errorf("no claims in context")
	}

	id, err := claims.UserID()
	if err != nil {
		return services.Caller{}, fmt.Errorf("invalid subject in token: %w", err)
	}

	return services.Caller{ID: id, Role: claims.Role}, nil
}
