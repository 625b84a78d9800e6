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

// AssignmentRepository defines the interface for assignment data access,
// including the transactional promotion of an enrollment.
type AssignmentRepository interface {
	Exists(ctx context.Context, workerID, offerID uuid.UUID) (bool, error)
	// ListByOffer returns confirmed activity entries for an offer, joined
	// with the workers' names and emails.
	ListByOffer(ctx context.Context, offerID uuid.UUID) ([]*models.ActivityEntry, error)
	// Promote atomically converts the worker's enrollment on an offer into
	// an assignment: it inserts the assignment carrying the enrollment's
	// original timestamp, deletes the enrollment, and closes the offer.
	// Returns ErrNotEnrolled if no enrollment exists and ErrAlreadyAssigned
	// if the pair is already assigned; any failure after the preconditions
	// rolls the whole transaction back.
	Promote(ctx context.Context, workerID, offerID uuid.UUID) (*models.Assignment, error)
}

// assignmentRepository implements AssignmentRepository using PostgreSQL.
type assignmentRepository struct {
	db *database.DB
}

// NewAssignmentRepository creates a new assignment repository.
func NewAssignmentRepository(db *database.DB) AssignmentRepository {
	return &assignmentRepository{db: db}
}

// Exists reports whether an assignment exists for the (worker, offer) pair.
func (r *assignmentRepository) Exists(ctx context.Context, workerID, offerID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM assignments WHERE worker_id = $1 AND offer_id = $2)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, workerID, offerID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check assignment: %w", err)
	}
	return exists, nil
}

// ListByOffer returns the confirmed assignments on an offer as activity
// entries. FechaInscripcion carries assigned_at, which preserved the
// original enrollment timestamp at promotion.
func (r *assignmentRepository) ListByOffer(ctx context.Context, offerID uuid.UUID) ([]*models.ActivityEntry, error) {
	query := `
		SELECT a.worker_id, a.offer_id, u.name, u.email, a.assigned_at
		FROM assignments a
		INNER JOIN users u ON u.id = a.worker_id
		WHERE a.offer_id = $1
		ORDER BY a.assigned_at`

	rows, err := r.db.Query(ctx, query, offerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	defer rows.Close()

	var entries []*models.ActivityEntry
	for rows.Next() {
		entry := &models.ActivityEntry{Kind: models.ActivityConfirmed}
		err := rows.Scan(
			&entry.WorkerID,
			&entry.OfferID,
			&entry.WorkerName,
			&entry.WorkerEmail,
			&entry.FechaInscripcion,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assignments: %w", err)
	}

	return entries, nil
}

// Promote runs the three-write promotion inside a single transaction. The
// enrollment row is locked first so a racing promotion on the same pair
// serializes behind this one and then fails its precondition.
func (r *assignmentRepository) Promote(ctx context.Context, workerID, offerID uuid.UUID) (*models.Assignment, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	var enrolledAt time.Time
	err = tx.QueryRow(ctx,
		`SELECT enrolled_at FROM enrollments
		 WHERE worker_id = $1 AND offer_id = $2
		 FOR UPDATE`,
		workerID, offerID).Scan(&enrolledAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			err = apperrors.ErrNotEnrolled
			return nil, err
		}
		return nil, fmt.Errorf("failed to get enrollment: %w", err)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO assignments (worker_id, offer_id, assigned_at)
		 VALUES ($1, $2, $3)`,
		workerID, offerID, enrolledAt)
	if err != nil {
		if isUniqueViolation(err) {
			err = apperrors.ErrAlreadyAssigned
			return nil, err
		}
		return nil, fmt.Errorf("failed to insert assignment: %w", err)
	}

	_, err = tx.Exec(ctx,
		`DELETE FROM enrollments WHERE worker_id = $1 AND offer_id = $2`,
		workerID, offerID)
	if err != nil {
		return nil, fmt.Errorf("failed to delete enrollment: %w", err)
	}

	_, err = tx.Exec(ctx,
		`UPDATE offers SET status = $1 WHERE id = $2`,
		models.OfferClosed, offerID)
	if err != nil {
		return nil, fmt.Errorf("failed to close offer: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &models.Assignment{
		WorkerID:   workerID,
		OfferID:    offerID,
		AssignedAt: enrolledAt,
	}, nil
}

// Ensure assignmentRepository implements AssignmentRepository at compile time.
var _ AssignmentRepository = (*assignmentRepository)(nil)
