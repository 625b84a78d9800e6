package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/bolsa-dev/bolsa-engine/pkg/apperrors"
	"github.com/bolsa-dev/bolsa-engine/pkg/auth"
	"github.com/bolsa-dev/bolsa-engine/pkg/models"
	"github.com/bolsa-dev/bolsa-engine/pkg/repositories"
)

// IdentityService owns account registration, credential verification and
// token issuance. Passwords are stored as salted bcrypt hashes only.
type IdentityService interface {
	// Register creates an account. An empty role defaults to trabajador.
	Register(ctx context.Context, name, email, password string, role models.Role) (*models.User, error)

	// Login verifies the credentials and issues a bearer token. Failures
	// are indistinguishable: unknown email and wrong password both return
	// ErrInvalidCredentials.
	Login(ctx context.Context, email, password string) (string, *models.User, error)

	// Profile returns the user's public view.
	Profile(ctx context.Context, userID uuid.UUID) (*models.User, error)
}

type identityService struct {
	users      repositories.UserRepository
	tokens     *auth.TokenManager
	bcryptCost int
	logger     *zap.Logger
}

// NewIdentityService creates a new IdentityService.
func NewIdentityService(users repositories.UserRepository, tokens *auth.TokenManager, bcryptCost int, logger *zap.Logger) IdentityService {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &identityService{
		users:      users,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		logger:     logger.Named("identity-service"),
	}
}

var _ IdentityService = (*identityService)(nil)

func (s *identityService) Register(ctx context.Context, name, email, password string, role models.Role) (*models.User, error) {
	if name == "" || email == "" || password == "" {
		return nil, fmt.Errorf("%w: name, email and password are required", apperrors.ErrValidation)
	}

	if role == "" {
		role = models.RoleWorker
	}
	if !models.IsValidRole(role) {
		return nil, fmt.Errorf("%w: %q", apperrors.ErrInvalidRole, role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)))
	return user, nil
}

func (s *identityService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", nil, apperrors.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Debug("User logged in", zap.String("user_id", user.ID.String()))
	return token, user, nil
}

func (s *identityService) Profile(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	return s.users.GetByID(ctx, userID)
}
