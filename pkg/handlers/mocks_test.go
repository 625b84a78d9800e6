package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/bolsa-dev/bolsa-engine/pkg/auth"
	"github.com/bolsa-dev/bolsa-engine/pkg/models"
	"github.com/bolsa-dev/bolsa-engine/pkg/services"
)

// requestAs attaches claims for the given identity to the request context,
// bypassing the auth middleware.
func requestAs(r *http.Request, userID uuid.UUID, role models.Role) *http.Request {
	claims := &auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: userID.String()},
		Role:             role,
	}
	return r.WithContext(auth.WithClaims(r.Context(), claims))
}

// mockOfferService is a configurable mock for handler tests.
type mockOfferService struct {
	views      []*models.OfferView
	offer      *models.Offer
	enrollment *models.Enrollment
	assignment *models.Assignment
	entries    []*models.ActivityEntry
	err        error

	lastCaller   services.Caller
	lastOfferID  uuid.UUID
	lastWorkerID uuid.UUID
}

func (m *mockOfferService) ListOffers(ctx context.Context, caller services.Caller) ([]*models.OfferView, error) {
	m.lastCaller = caller
	return m.views, m.err
}

func (m *mockOfferService) ListWithActivity(ctx context.Context, caller services.Caller) ([]*models.OfferView, error) {
	m.lastCaller = caller
	return m.views, m.err
}

func (m *mockOfferService) ListConfirmed(ctx context.Context, caller services.Caller, workerID uuid.UUID) ([]*models.OfferView, error) {
	m.lastCaller = caller
	m.lastWorkerID = workerID
	return m.views, m.err
}

func (m *mockOfferService) Create(ctx context.Context, caller services.Caller, title, description string, targetDate time.Time) (*models.Offer, error) {
	m.lastCaller = caller
	if m.err != nil {
		return nil, m.err
	}
	if m.offer != nil {
		return m.offer, nil
	}
	return &models.Offer{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		TargetDate:  targetDate,
		CreatedBy:   caller.ID,
		Status:      models.OfferOpen,
	}, nil
}

func (m *mockOfferService) Enroll(ctx context.Context, caller services.Caller, offerID uuid.UUID) (*models.Enrollment, error) {
	m.lastCaller = caller
	m.lastOfferID = offerID
	if m.err != nil {
		return nil, m.err
	}
	if m.enrollment != nil {
		return m.enrollment, nil
	}
	return &models.Enrollment{
		ID:         uuid.New(),
		WorkerID:   caller.ID,
		OfferID:    offerID,
		EnrolledAt: time.Now(),
	}, nil
}

func (m *mockOfferService) Withdraw(ctx context.Context, caller services.Caller, offerID uuid.UUID) error {
	m.lastCaller = caller
	m.lastOfferID = offerID
	return m.err
}

func (m *mockOfferService) Activity(ctx context.Context, caller services.Caller, offerID uuid.UUID) ([]*models.ActivityEntry, error) {
	m.lastCaller = caller
	m.lastOfferID = offerID
	return m.entries, m.err
}

func (m *mockOfferService) Promote(ctx context.Context, caller services.Caller, workerID, offerID uuid.UUID) (*models.Assignment, error) {
	m.lastCaller = caller
	m.lastWorkerID = workerID
	m.lastOfferID = offerID
	if m.err != nil {
		return nil, m.err
	}
	if m.assignment != nil {
		return m.assignment, nil
	}
	return &models.Assignment{
		WorkerID:   workerID,
		OfferID:    offerID,
		AssignedAt: time.Now(),
	}, nil
}

var _ services.OfferService = (*mockOfferService)(nil)

// mockIdentityService is a configurable mock for identity handler tests.
type mockIdentityService struct {
	user  *models.User
	token string
	err   error
}

func (m *mockIdentityService) Register(ctx context.Context, name, email, password string, role models.Role) (*models.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.user != nil {
		return m.user, nil
	}
	return &models.User{ID: uuid.New(), Name: name, Email: email, Role: role}, nil
}

func (m *mockIdentityService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	if m.err != nil {
		return "", nil, m.err
	}
	user := m.user
	if user == nil {
		user = &models.User{ID: uuid.New(), Email: email, Role: models.RoleWorker}
	}
	token := m.token
	if token == "" {
		token = "test-token"
	}
	return token, user, nil
}

func (m *mockIdentityService) Profile(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.user != nil {
		return m.user, nil
	}
	return &models.User{ID: userID, Role: models.RoleWorker}, nil
}

var _ services.IdentityService = (*mockIdentityService)(nil)
