package repositories_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/bolsa-dev/bolsa-engine/pkg/models"
	"github.com/bolsa-dev/bolsa-engine/pkg/repositories"
	"github.com/bolsa-dev/bolsa-engine/pkg/testhelpers"
)

// createTestWorker inserts a worker with a unique email and returns it.
func createTestWorker(t *testing.T, tdb *testhelpers.TestDB) *models.User {
	t.Helper()

	user := &models.User{
		ID:           uuid.New(),
		Name:         "Test Worker",
		Email:        uuid.New().String() + "@example.com",
		PasswordHash: "$2a$12$not.a.real.hash",
		Role:         models.RoleWorker,
	}
	repo := repositories.NewUserRepository(tdb.DB())
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

// createTestOffer inserts an open offer owned by a fresh administrator.
func createTestOffer(t *testing.T, tdb *testhelpers.TestDB) *models.Offer {
	t.Helper()

	admin := &models.User{
		ID:           uuid.New(),
		Name:         "Test Admin",
		Email:        uuid.New().String() + "@example.com",
		PasswordHash: "$2a$12$not.a.real.hash",
		Role:         models.RoleAdministrator,
	}
	users := repositories.NewUserRepository(tdb.DB())
	require.NoError(t, users.Create(context.Background(), admin))

	offer := &models.Offer{
		ID:          uuid.New(),
		Title:       "Test Offer",
		Description: "A test offer",
		TargetDate:  time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		CreatedBy:   admin.ID,
		Status:      models.OfferOpen,
	}
	offers := repositories.NewOfferRepository(tdb.DB())
	require.NoError(t, offers.Create(context.Background(), offer))
	return offer
}

// enroll creates an enrollment for the pair and returns it.
func enroll(t *testing.T, tdb *testhelpers.TestDB, workerID, offerID uuid.UUID) *models.Enrollment {
	t.Helper()

	enrollment := &models.Enrollment{
		WorkerID: workerID,
		OfferID:  offerID,
	}
	repo := repositories.NewEnrollmentRepository(tdb.DB())
	require.NoError(t, repo.Create(context.Background(), enrollment))
	return enrollment
}
