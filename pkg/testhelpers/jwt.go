package testhelpers

import (
	"time"

	"github.com/google/uuid"

	"github.com/bolsa-dev/bolsa-engine/pkg/auth"
	"github.com/bolsa-dev/bolsa-engine/pkg/models"
)

// TestTokenSecret is the signing secret tests share with their token
// managers.
const TestTokenSecret = "test-secret"

// NewTestTokenManager returns a token manager usable in tests.
func NewTestTokenManager() *auth.TokenManager {
	return auth.NewTokenManager(TestTokenSecret, time.Hour)
}

// IssueTestToken signs a token for a user with the given ID and role.
func IssueTestToken(userID uuid.UUID, role models.Role) (string, error) {
	return NewTestTokenManager().Issue(&models.User{ID: userID, Role: role})
}

// BearerToken returns the token with the "Bearer " prefix for an
// Authorization header.
func BearerToken(userID uuid.UUID, role models.Role) (string, error) {
	token, err := IssueTestToken(userID, role)
	if err != nil {
		return "", err
	}
	return "Bearer " + token, nil
}
