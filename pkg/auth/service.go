package auth

import (
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// Common authentication errors.
var (
	ErrMissingAuthorization = errors.New("missing authorization")
	ErrInvalidAuthFormat    = errors.New("invalid authorization header format")
)

// AuthService defines the interface for request authentication. The
// abstraction keeps HTTP handling separate from token logic and lets
// handler tests swap in a stub.
type AuthService interface {
	// ValidateRequest extracts and validates the bearer token from the
	// Authorization header. Returns the validated claims or an error.
	// ErrMissingAuthorization means no credential was presented at all;
	// any other error means the credential was present but rejected.
	ValidateRequest(r *http.Request) (*Claims, error)
}

type authService struct {
	tokens *TokenManager
	logger *zap.Logger
}

// NewAuthService creates an AuthService backed by the given token manager.
func NewAuthService(tokens *TokenManager, logger *zap.Logger) AuthService {
	return &authService{tokens: tokens, logger: logger}
}

func (s *authService) ValidateRequest(r *http.Request) (*Claims, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		s.logger.Debug("No bearer token in request",
			zap.String("path", r.URL.Path),
			zap.String("method", r.Method))
		return nil, ErrMissingAuthorization
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		s.logger.Debug("Invalid Authorization header format",
			zap.String("path", r.URL.Path))
		return nil, ErrInvalidAuthFormat
	}

	claims, err := s.tokens.Validate(parts[1])
	if err != nil {
		s.logger.Debug("Token validation failed",
			zap.Error(err),
			zap.String("path", r.URL.Path))
		return nil, err
	}

	return claims, nil
}

var _ AuthService = (*authService)(nil)
