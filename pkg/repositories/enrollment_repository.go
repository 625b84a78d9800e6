package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/bolsa-dev/bolsa-engine/pkg/apperrors"
	"github.com/bolsa-dev/bolsa-engine/pkg/database"
	"github.com/bolsa-dev/bolsa-engine/pkg/models"
)

// EnrollmentRepository defines the interface for enrollment data access.
type EnrollmentRepository interface {
	Create(ctx context.Context, enrollment *models.Enrollment) error
	Get(ctx context.Context, workerID, offerID uuid.UUID) (*models.Enrollment, error)
	// Delete removes the worker's enrollment on an offer. Returns
	// ErrNotEnrolled if no such enrollment exists.
	Delete(ctx context.Context, workerID, offerID uuid.UUID) error
	// ListByOffer returns pending activity entries for an offer, joined
	// with the workers' names and emails.
	ListByOffer(ctx context.Context, offerID uuid.UUID) ([]*models.ActivityEntry, error)
}

// enrollmentRepository implements EnrollmentRepository using PostgreSQL.
type enrollmentRepository struct {
	db *database.DB
}

// NewEnrollmentRepository creates a new enrollment repository.
func NewEnrollmentRepository(db *database.DB) EnrollmentRepository {
	return &enrollmentRepository{db: db}
}

// Create inserts a new enrollment. The unique constraint on
// (worker_id, offer_id) turns a lost check-then-insert race into
// ErrAlreadyEnrolled rather than a duplicate row.
func (r *enrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) error {
	if enrollment.ID == uuid.Nil {
		enrollment.ID = uuid.New()
	}
	if enrollment.EnrolledAt.IsZero() {
		enrollment.EnrolledAt = time.Now()
	}

	query := `
		INSERT INTO enrollments (id, worker_id, offer_id, enrolled_at)
		VALUES ($1, $2, $3, $4)`

	_, err := r.db.Exec(ctx, query,
		enrollment.ID,
		enrollment.WorkerID,
		enrollment.OfferID,
		enrollment.EnrolledAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrAlreadyEnrolled
		}
		return fmt.Errorf("failed to create enrollment: %w", err)
	}

	return nil
}

// Get retrieves the enrollment for a (worker, offer) pair.
func (r *enrollmentRepository) Get(ctx context.Context, workerID, offerID uuid.UUID) (*models.Enrollment, error) {
	query := `
		SELECT id, worker_id, offer_id, enrolled_at
		FROM enrollments
		WHERE worker_id = $1 AND offer_id = $2`

	var e models.Enrollment
	err := r.db.QueryRow(ctx, query, workerID, offerID).Scan(
		&e.ID,
		&e.WorkerID,
		&e.OfferID,
		&e.EnrolledAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get enrollment: %w", err)
	}

	return &e, nil
}

// Delete removes the worker's enrollment on an offer.
func (r *enrollmentRepository) Delete(ctx context.Context, workerID, offerID uuid.UUID) error {
	query := `DELETE FROM enrollments WHERE worker_id = $1 AND offer_id = $2`

	result, err := r.db.Exec(ctx, query, workerID, offerID)
	if err != nil {
		return fmt.Errorf("failed to delete enrollment: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrNotEnrolled
	}

	return nil
}

// ListByOffer returns the pending enrollments on an offer as activity
// entries.
func (r *enrollmentRepository) ListByOffer(ctx context.Context, offerID uuid.UUID) ([]*models.ActivityEntry, error) {
	query := `
		SELECT e.worker_id, e.offer_id, u.name, u.email, e.enrolled_at
		FROM enrollments e
		INNER JOIN users u ON u.id = e.worker_id
		WHERE e.offer_id = $1
		ORDER BY e.enrolled_at`

	rows, err := r.db.Query(ctx, query, offerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list enrollments: %w", err)
	}
	defer rows.Close()

	var entries []*models.ActivityEntry
	for rows.Next() {
		entry := &models.ActivityEntry{Kind: models.ActivityPending}
		err := rows.Scan(
			&entry.WorkerID,
			&entry.OfferID,
			&entry.WorkerName,
			&entry.WorkerEmail,
			&entry.FechaInscripcion,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan enrollment: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating enrollments: %w", err)
	}

	return entries, nil
}

// Ensure enrollmentRepository implements EnrollmentRepository at compile time.
var _ EnrollmentRepository = (*enrollmentRepository)(nil)
