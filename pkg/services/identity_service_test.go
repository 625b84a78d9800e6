package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/bolsa-dev/bolsa-engine/pkg/apperrors"
	"github.com/bolsa-dev/bolsa-engine/pkg/auth"
	"github.com/bolsa-dev/bolsa-engine/pkg/models"
)

func newIdentityFixture() (*mockUserRepo, *auth.TokenManager, IdentityService) {
	repo := newMockUserRepo()
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	svc := NewIdentityService(repo, tokens, bcrypt.MinCost, zap.NewNop())
	return repo, tokens, svc
}

func TestIdentityService_Register_HashesPassword(t *testing.T) {
	repo, _, svc := newIdentityFixture()

	user, err := svc.Register(context.Background(), "Ana", "ana@example.com", "hunter2secret", models.RoleWorker)
	require.NoError(t, err)

	stored := repo.byEmail["ana@example.com"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "hunter2secret", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("hunter2secret")))
	assert.Equal(t, models.RoleWorker, user.Role)
}

func TestIdentityService_Register_DefaultsToWorker(t *testing.T) {
	_, _, svc := newIdentityFixture()

	user, err := svc.Register(context.Background(), "Ana", "ana@example.com", "hunter2secret", "")
	require.NoError(t, err)
	assert.Equal(t, models.RoleWorker, user.Role)
}

func TestIdentityService_Register_InvalidRole(t *testing.T) {
	_, _, svc := newIdentityFixture()

	_, err := svc.Register(context.Background(), "Ana", "ana@example.com", "hunter2secret", "supervisor")
	assert.ErrorIs(t, err, apperrors.ErrInvalidRole)
}

func TestIdentityService_Register_EmailTaken(t *testing.T) {
	_, _, svc := newIdentityFixture()
	ctx := context.Background()

	_, err := svc.Register(ctx, "Ana", "ana@example.com", "hunter2secret", models.RoleWorker)
	require.NoError(t, err)

	_, err = svc.Register(ctx, "Otra Ana", "ana@example.com", "different-pass", models.RoleWorker)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestIdentityService_Register_MissingFields(t *testing.T) {
	_, _, svc := newIdentityFixture()

	_, err := svc.Register(context.Background(), "", "ana@example.com", "hunter2secret", models.RoleWorker)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestIdentityService_Login(t *testing.T) {
	_, tokens, svc := newIdentityFixture()
	ctx := context.Background()

	registered, err := svc.Register(ctx, "Ana", "ana@example.com", "hunter2secret", models.RoleAdministrator)
	require.NoError(t, err)

	token, user, err := svc.Login(ctx, "ana@example.com", "hunter2secret")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)

	claims, err := tokens.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID.String(), claims.Subject)
	assert.True(t, claims.IsAdministrator())
}

func TestIdentityService_Login_BadCredentials(t *testing.T) {
	_, _, svc := newIdentityFixture()
	ctx := context.Background()

	_, err := svc.Register(ctx, "Ana", "ana@example.com", "hunter2secret", models.RoleWorker)
	require.NoError(t, err)

	// Wrong password and unknown email fail identically.
	_, _, err = svc.Login(ctx, "ana@example.com", "wrong")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, "nobody@example.com", "hunter2secret")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestIdentityService_Profile(t *testing.T) {
	_, _, svc := newIdentityFixture()
	ctx := context.Background()

	registered, err := svc.Register(ctx, "Ana", "ana@example.com", "hunter2secret", models.RoleWorker)
	require.NoError(t, err)

	user, err := svc.Profile(ctx, registered.ID)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", user.Email)
}
