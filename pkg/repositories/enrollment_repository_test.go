package repositories_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bolsa-dev/bolsa-engine/pkg/apperrors"
	"github.com/bolsa-dev/bolsa-engine/pkg/models"
	"github.com/bolsa-dev/bolsa-engine/pkg/repositories"
	"github.com/bolsa-dev/bolsa-engine/pkg/testhelpers"
)

func TestEnrollmentRepository_CreateAndGet(t *testing.T) {
	tdb := testhelpers.GetTestDB(t)
	repo := repositories.NewEnrollmentRepository(tdb.DB())
	ctx := context.Background()

	worker := createTestWorker(t, tdb)
	offer := createTestOffer(t, tdb)

	enrollment := &models.Enrollment{WorkerID: worker.ID, OfferID: offer.ID}
	require.NoError(t, repo.Create(ctx, enrollment))
	assert.NotEqual(t, uuid.Nil, enrollment.ID)
	assert.False(t, enrollment.EnrolledAt.IsZero())

	got, err := repo.Get(ctx, worker.ID, offer.ID)
	require.NoError(t, err)
	assert.Equal(t, enrollment.ID, got.ID)
}

func TestEnrollmentRepository_Create_Duplicate(t *testing.T) {
	tdb := testhelpers.GetTestDB(t)
	repo := repositories.NewEnrollmentRepository(tdb.DB())
	ctx := context.Background()

	worker := createTestWorker(t, tdb)
	offer := createTestOffer(t, tdb)
	enroll(t, tdb, worker.ID, offer.ID)

	err := repo.Create(ctx, &models.Enrollment{WorkerID: worker.ID, OfferID: offer.ID})
	assert.ErrorIs(t, err, apperrors.ErrAlreadyEnrolled)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestEnrollmentRepository_Delete(t *testing.T) {
	tdb := testhelpers.GetTestDB(t)
	repo := repositories.NewEnrollmentRepository(tdb.DB())
	ctx := context.Background()

	worker := createTestWorker(t, tdb)
	offer := createTestOffer(t, tdb)
	enroll(t, tdb, worker.ID, offer.ID)

	require.NoError(t, repo.Delete(ctx, worker.ID, offer.ID))

	_, err := repo.Get(ctx, worker.ID, offer.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	// A second delete finds nothing to remove.
	err = repo.Delete(ctx, worker.ID, offer.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotEnrolled)
}

func TestEnrollmentRepository_ListByOffer(t *testing.T) {
	tdb := testhelpers.GetTestDB(t)
	repo := repositories.NewEnrollmentRepository(tdb.DB())
	ctx := context.Background()

	workerA := createTestWorker(t, tdb)
	workerB := createTestWorker(t, tdb)
	offer := createTestOffer(t, tdb)
	first := enroll(t, tdb, workerA.ID, offer.ID)
	enroll(t, tdb, workerB.ID, offer.ID)

	entries, err := repo.ListByOffer(ctx, offer.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Ordered by enrollment time, tagged pending, joined with user details.
	assert.Equal(t, workerA.ID, entries[0].WorkerID)
	assert.Equal(t, models.ActivityPending, entries[0].Kind)
	assert.Equal(t, workerA.Name, entries[0].WorkerName)
	assert.Equal(t, workerA.Email, entries[0].WorkerEmail)
	// Postgres stores microsecond precision.
	assert.WithinDuration(t, first.EnrolledAt, entries[0].FechaInscripcion, time.Millisecond)
}

func TestEnrollmentRepository_ListByOffer_Empty(t *testing.T) {
	tdb := testhelpers.GetTestDB(t)
	repo := repositories.NewEnrollmentRepository(tdb.DB())

	offer := createTestOffer(t, tdb)
	entries, err := repo.ListByOffer(context.Background(), offer.ID)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
