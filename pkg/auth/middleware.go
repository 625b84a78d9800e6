package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/bolsa-dev/bolsa-engine/pkg/middleware"
)

// Middleware provides HTTP authentication middleware. It is thin and
// delegates token validation to AuthService.
type Middleware struct {
	authService AuthService
	logger      *zap.Logger
}

// NewMiddleware creates a new auth middleware with the given AuthService.
func NewMiddleware(authService AuthService, logger *zap.Logger) *Middleware {
	return &Middleware{
		authService: authService,
		logger:      logger,
	}
}

// RequireAuth validates the bearer token and stores its claims in the
// request context. A request with no credential gets 401; a request with an
// invalid or expired credential gets 403.
func (m *Middleware) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, err := m.authService.ValidateRequest(r)
		if err != nil {
			if errors.Is(err, ErrMissingAuthorization) {
				m.reject(w, http.StatusUnauthorized, "unauthorized", "Authentication required")
				return
			}
			m.reject(w, http.StatusForbidden, "forbidden", "Invalid or expired credential")
			return
		}

		middleware.TagRole(r.Context(), string(claims.Role))
		next(w, r.WithContext(WithClaims(r.Context(), claims)))
	}
}

// RequireAdministrator validates the bearer token and additionally requires
// the administrator role.
func (m *Middleware) RequireAdministrator(next http.HandlerFunc) http.HandlerFunc {
	return m.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		claims, _ := GetClaims(r.Context())
		if claims == nil || !claims.IsAdministrator() {
			m.logger.Warn("Non-administrator attempted admin endpoint",
				zap.String("path", r.URL.Path),
				zap.String("subject", subjectOf(claims)))
			m.reject(w, http.StatusForbidden, "forbidden", "Administrator role required")
			return
		}
		next(w, r)
	})
}

func subjectOf(claims *Claims) string {
	if claims == nil {
		return ""
	}
	return claims.Subject
}

// reject writes a JSON error body with the given status.
func (m *Middleware) reject(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":   code,
		"message": message,
	})
}
