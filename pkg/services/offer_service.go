package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bolsa-dev/bolsa-engine/pkg/apperrors"
	"github.com/bolsa-dev/bolsa-engine/pkg/models"
	"github.com/bolsa-dev/bolsa-engine/pkg/repositories"
)

// Caller is the resolved identity attached to each request by the access
// control gate.
type Caller struct {
	ID   uuid.UUID
	Role models.Role
}

// IsAdministrator reports whether the caller holds the administrator role.
func (c Caller) IsAdministrator() bool {
	return c.Role == models.RoleAdministrator
}

// OfferService owns the offer lifecycle: enrollment, withdrawal, and the
// transactional promotion of one enrolled worker to a confirmed assignment,
// which closes the offer. Preconditions are checked before any mutation;
// only the promotion transaction can fail mid-flight, and it rolls back
// fully when it does.
type OfferService interface {
	// ListOffers returns every offer, each flagged with whether the caller
	// holds a pending enrollment on it.
	ListOffers(ctx context.Context, caller Caller) ([]*models.OfferView, error)

	// ListWithActivity returns offers with at least one enrollment or
	// assignment. Administrators only.
	ListWithActivity(ctx context.Context, caller Caller) ([]*models.OfferView, error)

	// ListConfirmed returns the offers a worker is confirmed on. Callers
	// may see their own confirmations; administrators may see anyone's.
	ListConfirmed(ctx context.Context, caller Caller, workerID uuid.UUID) ([]*models.OfferView, error)

	// Create opens a new offer. Administrators only; all fields required.
	Create(ctx context.Context, caller Caller, title, description string, targetDate time.Time) (*models.Offer, error)

	// Enroll records the caller's interest in an open offer. Enrolling
	// does not close the offer: any number of workers may hold concurrent
	// enrollments, and the one-worker cap is enforced at promotion.
	Enroll(ctx context.Context, caller Caller, offerID uuid.UUID) (*models.Enrollment, error)

	// Withdraw removes the caller's pending enrollment on an offer.
	Withdraw(ctx context.Context, caller Caller, offerID uuid.UUID) error

	// Activity returns the workers with standing on an offer: pending
	// enrollments while the offer is open, confirmed assignments once it
	// is closed. Administrators only.
	Activity(ctx context.Context, caller Caller, offerID uuid.UUID) ([]*models.ActivityEntry, error)

	// Promote converts a worker's enrollment into a confirmed assignment
	// and closes the offer, atomically. Administrators only.
	Promote(ctx context.Context, caller Caller, workerID, offerID uuid.UUID) (*models.Assignment, error)
}

type offerService struct {
	offers      repositories.OfferRepository
	enrollments repositories.EnrollmentRepository
	assignments repositories.AssignmentRepository
	logger      *zap.Logger
}

// NewOfferService creates a new OfferService.
func NewOfferService(
	offers repositories.OfferRepository,
	enrollments repositories.EnrollmentRepository,
	assignments repositories.AssignmentRepository,
	logger *zap.Logger,
) OfferService {
	return &offerService{
		offers:      offers,
		enrollments: enrollments,
		assignments: assignments,
		logger:      logger.Named("offer-service"),
	}
}

var _ OfferService = (*offerService)(nil)

func (s *offerService) ListOffers(ctx context.Context, caller Caller) ([]*models.OfferView, error) {
	return s.offers.ListForWorker(ctx, caller.ID)
}

func (s *offerService) ListWithActivity(ctx context.Context, caller Caller) ([]*models.OfferView, error) {
	if !caller.IsAdministrator() {
		return nil, apperrors.ErrPermissionDenied
	}
	return s.offers.ListWithActivity(ctx)
}

func (s *offerService) ListConfirmed(ctx context.Context, caller Caller, workerID uuid.UUID) ([]*models.OfferView, error) {
	if caller.ID != workerID && !caller.IsAdministrator() {
		return nil, apperrors.ErrPermissionDenied
	}
	return s.offers.ListConfirmedByWorker(ctx, workerID)
}

func (s *offerService) Create(ctx context.Context, caller Caller, title, description string, targetDate time.Time) (*models.Offer, error) {
	if !caller.IsAdministrator() {
		return nil, apperrors.ErrPermissionDenied
	}
	if title == "" || description == "" || targetDate.IsZero() {
		return nil, fmt.Errorf("%w: title, description and target date are required", apperrors.ErrValidation)
	}

	offer := &models.Offer{
		Title:       title,
		Description: description,
		TargetDate:  targetDate,
		CreatedBy:   caller.ID,
		Status:      models.OfferOpen,
	}

	if err := s.offers.Create(ctx, offer); err != nil {
		return nil, err
	}

	s.logger.Info("Offer created",
		zap.String("offer_id", offer.ID.String()),
		zap.String("created_by", caller.ID.String()))
	return offer, nil
}

// Enroll checks its preconditions in a fixed order so each failure is a
// distinct kind: missing offer, closed offer, duplicate enrollment.
func (s *offerService) Enroll(ctx context.Context, caller Caller, offerID uuid.UUID) (*models.Enrollment, error) {
	offer, err := s.offers.GetByID(ctx, offerID)
	if err != nil {
		return nil, err
	}

	if !offer.IsOpen() {
		return nil, apperrors.ErrOfferClosed
	}

	if _, err := s.enrollments.Get(ctx, caller.ID, offerID); err == nil {
		return nil, apperrors.ErrAlreadyEnrolled
	} else if !isNotFound(err) {
		return nil, err
	}

	enrollment := &models.Enrollment{
		WorkerID: caller.ID,
		OfferID:  offerID,
	}
	if err := s.enrollments.Create(ctx, enrollment); err != nil {
		return nil, err
	}

	s.logger.Info("Worker enrolled",
		zap.String("worker_id", caller.ID.String()),
		zap.String("offer_id", offerID.String()))
	return enrollment, nil
}

func (s *offerService) Withdraw(ctx context.Context, caller Caller, offerID uuid.UUID) error {
	if err := s.enrollments.Delete(ctx, caller.ID, offerID); err != nil {
		return err
	}

	s.logger.Info("Worker withdrew",
		zap.String("worker_id", caller.ID.String()),
		zap.String("offer_id", offerID.String()))
	return nil
}

// Activity branches on the offer's state but produces one list shape: the
// tagged ActivityEntry.
func (s *offerService) Activity(ctx context.Context, caller Caller, offerID uuid.UUID) ([]*models.ActivityEntry, error) {
	if !caller.IsAdministrator() {
		return nil, apperrors.ErrPermissionDenied
	}

	offer, err := s.offers.GetByID(ctx, offerID)
	if err != nil {
		return nil, err
	}

	if offer.IsOpen() {
		return s.enrollments.ListByOffer(ctx, offerID)
	}
	return s.assignments.ListByOffer(ctx, offerID)
}

// Promote verifies the enrollment exists and no assignment does, then runs
// the three-write transaction in the repository. Competing enrollments on
// the offer are left in place; closing the offer makes them unreachable
// and they stay as historical record.
func (s *offerService) Promote(ctx context.Context, caller Caller, workerID, offerID uuid.UUID) (*models.Assignment, error) {
	if !caller.IsAdministrator() {
		return nil, apperrors.ErrPermissionDenied
	}

	if _, err := s.enrollments.Get(ctx, workerID, offerID); err != nil {
		if isNotFound(err) {
			return nil, apperrors.ErrNotEnrolled
		}
		return nil, err
	}

	assigned, err := s.assignments.Exists(ctx, workerID, offerID)
	if err != nil {
		return nil, err
	}
	if assigned {
		return nil, apperrors.ErrAlreadyAssigned
	}

	assignment, err := s.assignments.Promote(ctx, workerID, offerID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Worker promoted to assignment",
		zap.String("worker_id", workerID.String()),
		zap.String("offer_id", offerID.String()),
		zap.String("promoted_by", caller.ID.String()))
	return assignment, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, apperrors.ErrNotFound)
}
