package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/bolsa-dev/bolsa-engine/pkg/apperrors"
	"github.com/bolsa-dev/bolsa-engine/pkg/models"
)

// mockUserRepo is a configurable in-memory user repository.
type mockUserRepo struct {
	byEmail   map[string]*models.User
	byID      map[uuid.UUID]*models.User
	createErr error
	created   []*models.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		byEmail: make(map[string]*models.User),
		byID:    make(map[uuid.UUID]*models.User),
	}
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	if _, ok := m.byEmail[user.Email]; ok {
		return apperrors.ErrEmailTaken
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	m.byEmail[user.Email] = user
	m.byID[user.ID] = user
	m.created = append(m.created, user)
	return nil
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user, ok := m.byEmail[email]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return user, nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, ok := m.byID[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return user, nil
}

// mockOfferRepo is a configurable mock for offer data access.
type mockOfferRepo struct {
	offers     map[uuid.UUID]*models.Offer
	views      []*models.OfferView
	createErr  error
	listErr    error
	lastCreate *models.Offer
}

func newMockOfferRepo() *mockOfferRepo {
	return &mockOfferRepo{offers: make(map[uuid.UUID]*models.Offer)}
}

func (m *mockOfferRepo) Create(ctx context.Context, offer *models.Offer) error {
	if m.createErr != nil {
		return m.createErr
	}
	if offer.ID == uuid.Nil {
		offer.ID = uuid.New()
	}
	m.offers[offer.ID] = offer
	m.lastCreate = offer
	return nil
}

func (m *mockOfferRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Offer, error) {
	offer, ok := m.offers[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return offer, nil
}

func (m *mockOfferRepo) ListForWorker(ctx context.Context, workerID uuid.UUID) ([]*models.OfferView, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.views, nil
}

func (m *mockOfferRepo) ListWithActivity(ctx context.Context) ([]*models.OfferView, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.views, nil
}

func (m *mockOfferRepo) ListConfirmedByWorker(ctx context.Context, workerID uuid.UUID) ([]*models.OfferView, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.views, nil
}

type pair struct {
	worker uuid.UUID
	offer  uuid.UUID
}

// mockEnrollmentRepo tracks enrollments by (worker, offer) pair.
type mockEnrollmentRepo struct {
	enrollments map[pair]*models.Enrollment
	entries     []*models.ActivityEntry
	createErr   error
	deleteErr   error
}

func newMockEnrollmentRepo() *mockEnrollmentRepo {
	return &mockEnrollmentRepo{enrollments: make(map[pair]*models.Enrollment)}
}

func (m *mockEnrollmentRepo) Create(ctx context.Context, e *models.Enrollment) error {
	if m.createErr != nil {
		return m.createErr
	}
	key := pair{e.WorkerID, e.OfferID}
	if _, ok := m.enrollments[key]; ok {
		return apperrors.ErrAlreadyEnrolled
	}
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.EnrolledAt.IsZero() {
		e.EnrolledAt = time.Now()
	}
	m.enrollments[key] = e
	return nil
}

func (m *mockEnrollmentRepo) Get(ctx context.Context, workerID, offerID uuid.UUID) (*models.Enrollment, error) {
	e, ok := m.enrollments[pair{workerID, offerID}]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return e, nil
}

func (m *mockEnrollmentRepo) Delete(ctx context.Context, workerID, offerID uuid.UUID) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	key := pair{workerID, offerID}
	if _, ok := m.enrollments[key]; !ok {
		return apperrors.ErrNotEnrolled
	}
	delete(m.enrollments, key)
	return nil
}

func (m *mockEnrollmentRepo) ListByOffer(ctx context.Context, offerID uuid.UUID) ([]*models.ActivityEntry, error) {
	return m.entries, nil
}

// mockAssignmentRepo tracks assignments and simulates the promotion
// transaction against the other two mocks.
type mockAssignmentRepo struct {
	assignments map[pair]*models.Assignment
	entries     []*models.ActivityEntry
	offers      *mockOfferRepo
	enrollments *mockEnrollmentRepo
	promoteErr  error
	existsErr   error
}

func newMockAssignmentRepo(offers *mockOfferRepo, enrollments *mockEnrollmentRepo) *mockAssignmentRepo {
	return &mockAssignmentRepo{
		assignments: make(map[pair]*models.Assignment),
		offers:      offers,
		enrollments: enrollments,
	}
}

func (m *mockAssignmentRepo) Exists(ctx context.Context, workerID, offerID uuid.UUID) (bool, error) {
	if m.existsErr != nil {
		return false, m.existsErr
	}
	_, ok := m.assignments[pair{workerID, offerID}]
	return ok, nil
}

func (m *mockAssignmentRepo) ListByOffer(ctx context.Context, offerID uuid.UUID) ([]*models.ActivityEntry, error) {
	return m.entries, nil
}

func (m *mockAssignmentRepo) Promote(ctx context.Context, workerID, offerID uuid.UUID) (*models.Assignment, error) {
	if m.promoteErr != nil {
		return nil, m.promoteErr
	}
	key := pair{workerID, offerID}
	enrollment, ok := m.enrollments.enrollments[key]
	if !ok {
		return nil, apperrors.ErrNotEnrolled
	}
	if _, taken := m.assignments[key]; taken {
		return nil, apperrors.ErrAlreadyAssigned
	}

	assignment := &models.Assignment{
		WorkerID:   workerID,
		OfferID:    offerID,
		AssignedAt: enrollment.EnrolledAt,
	}
	m.assignments[key] = assignment
	delete(m.enrollments.enrollments, key)
	if offer, ok := m.offers.offers[offerID]; ok {
		offer.Status = models.OfferClosed
	}
	return assignment, nil
}
