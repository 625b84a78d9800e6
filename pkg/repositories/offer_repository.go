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

// OfferRepository defines the interface for offer data access.
type OfferRepository interface {
	Create(ctx context.Context, offer *models.Offer) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Offer, error)
	// ListForWorker returns every offer, each flagged with whether the
	// given worker holds a pending enrollment on it.
	ListForWorker(ctx context.Context, workerID uuid.UUID) ([]*models.OfferView, error)
	// ListWithActivity returns offers with at least one enrollment or
	// assignment.
	ListWithActivity(ctx context.Context) ([]*models.OfferView, error)
	// ListConfirmedByWorker returns offers the worker is confirmed on.
	ListConfirmedByWorker(ctx context.Context, workerID uuid.UUID) ([]*models.OfferView, error)
}

// offerRepository implements OfferRepository using PostgreSQL.
type offerRepository struct {
	db *database.DB
}

// NewOfferRepository creates a new offer repository.
func NewOfferRepository(db *database.DB) OfferRepository {
	return &offerRepository{db: db}
}

// Create inserts a new offer with status open.
func (r *offerRepository) Create(ctx context.Context, offer *models.Offer) error {
	if offer.ID == uuid.Nil {
		offer.ID = uuid.New()
	}
	if offer.CreatedAt.IsZero() {
		offer.CreatedAt = time.Now()
	}
	if offer.Status == "" {
		offer.Status = models.OfferOpen
	}

	query := `
		INSERT INTO offers (id, title, description, target_date, created_by, created_at, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Exec(ctx, query,
		offer.ID,
		offer.Title,
		offer.Description,
		offer.TargetDate,
		offer.CreatedBy,
		offer.CreatedAt,
		offer.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to create offer: %w", err)
	}

	return nil
}

// GetByID retrieves an offer by ID.
func (r *offerRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Offer, error) {
	query := `
		SELECT id, title, description, target_date, created_by, created_at, status
		FROM offers
		WHERE id = $1`

	var offer models.Offer
	err := r.db.QueryRow(ctx, query, id).Scan(
		&offer.ID,
		&offer.Title,
		&offer.Description,
		&offer.TargetDate,
		&offer.CreatedBy,
		&offer.CreatedAt,
		&offer.Status,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get offer: %w", err)
	}

	return &offer, nil
}

// ListForWorker returns all offers annotated with the worker's enrollment
// standing, computed by an existence check against enrollments.
func (r *offerRepository) ListForWorker(ctx context.Context, workerID uuid.UUID) ([]*models.OfferView, error) {
	query := `
		SELECT o.id, o.title, o.description, o.target_date, o.created_by, o.created_at, o.status,
		       EXISTS (
		           SELECT 1 FROM enrollments e
		           WHERE e.offer_id = o.id AND e.worker_id = $1
		       ) AS inscrita
		FROM offers o
		ORDER BY o.created_at DESC`

	return r.queryViews(ctx, query, workerID)
}

// ListWithActivity returns offers that have at least one pending enrollment
// or confirmed assignment.
func (r *offerRepository) ListWithActivity(ctx context.Context) ([]*models.OfferView, error) {
	query := `
		SELECT o.id, o.title, o.description, o.target_date, o.created_by, o.created_at, o.status,
		       FALSE AS inscrita
		FROM offers o
		WHERE EXISTS (SELECT 1 FROM enrollments e WHERE e.offer_id = o.id)
		   OR EXISTS (SELECT 1 FROM assignments a WHERE a.offer_id = o.id)
		ORDER BY o.created_at DESC`

	return r.queryViews(ctx, query)
}

// ListConfirmedByWorker returns offers joined through assignments for the
// given worker, each flagged confirmed.
func (r *offerRepository) ListConfirmedByWorker(ctx context.Context, workerID uuid.UUID) ([]*models.OfferView, error) {
	query := `
		SELECT o.id, o.title, o.description, o.target_date, o.created_by, o.created_at, o.status,
		       FALSE AS inscrita
		FROM offers o
		INNER JOIN assignments a ON a.offer_id = o.id
		WHERE a.worker_id = $1
		ORDER BY a.assigned_at DESC`

	views, err := r.queryViews(ctx, query, workerID)
	if err != nil {
		return nil, err
	}
	for _, v := range views {
		v.Confirmed = true
	}
	return views, nil
}

func (r *offerRepository) queryViews(ctx context.Context, query string, args ...any) ([]*models.OfferView, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list offers: %w", err)
	}
	defer rows.Close()

	var views []*models.OfferView
	for rows.Next() {
		var v models.OfferView
		err := rows.Scan(
			&v.ID,
			&v.Title,
			&v.Description,
			&v.TargetDate,
			&v.CreatedBy,
			&v.CreatedAt,
			&v.Status,
			&v.Inscrita,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan offer: %w", err)
		}
		views = append(views, &v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating offers: %w", err)
	}

	return views, nil
}

// Ensure offerRepository implements OfferRepository at compile time.
var _ OfferRepository = (*offerRepository)(nil)
