package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/bolsa-dev/bolsa-engine/pkg/auth"
	"github.com/bolsa-dev/bolsa-engine/pkg/logging"
	"github.com/bolsa-dev/bolsa-engine/pkg/models"
	"github.com/bolsa-dev/bolsa-engine/pkg/services"
)

// RegisterRequest is the request body for account registration.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"omitempty,oneof=trabajador administrador"`
}

// LoginRequest is the request body for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the issued token and the user's public view.
type LoginResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// IdentityHandler handles registration, login and profile requests.
type IdentityHandler struct {
	identity services.IdentityService
	validate *validator.Validate
	logger   *zap.Logger
}

// NewIdentityHandler creates a new identity handler.
func NewIdentityHandler(identity services.IdentityService, logger *zap.Logger) *IdentityHandler {
	return &IdentityHandler{
		identity: identity,
		validate: validator.New(),
		logger:   logger,
	}
}

// RegisterRoutes registers the identity handler's routes on the given mux.
func (h *IdentityHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware) {
	mux.HandleFunc("POST /register", h.Register)
	mux.HandleFunc("POST /login", h.Login)
	mux.HandleFunc("GET /profile", authMiddleware.RequireAuth(h.Profile))
}

// Register handles POST /register.
func (h *IdentityHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	if err := h.validate.Struct(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "validation_failed", "Name, email and a password of at least 8 characters are required")
		return
	}

	user, err := h.identity.Register(r.Context(), req.Name, req.Email, req.Password, models.Role(req.Role))
	if err != nil {
		h.logger.Error("Failed to register user",
			zap.String("error", logging.SanitizeError(err)))
		h.writeServiceError(w, err)
		return
	}

	if err := WriteJSON(w, http.StatusCreated, user); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Login handles POST /login.
func (h *IdentityHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	if err := h.validate.Struct(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "validation_failed", "Email and password are required")
		return
	}

	token, user, err := h.identity.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	if err := WriteJSON(w, http.StatusOK, LoginResponse{Token: token, User: user}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Profile handles GET /profile.
func (h *IdentityHandler) Profile(w http.ResponseWriter, r *http.Request) {
	callerID, err := auth.RequireCallerID(r.Context())
	if err != nil {
		h.respondError(w, http.StatusUnauthorized, "unauthorized", "Authentication required")
		return
	}

	user, err := h.identity.Profile(r.Context(), callerID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	if err := WriteJSON(w, http.StatusOK, user); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

func (h *IdentityHandler) respondError(w http.ResponseWriter, status int, code, message string) {
	if err := ErrorResponse(w, status, code, message); err != nil {
		h.logger.Error("Failed to write error response", zap.Error(err))
	}
}

func (h *IdentityHandler) writeServiceError(w http.ResponseWriter, err error) {
	if werr := serviceError(w, err); werr != nil {
		h.logger.Error("Failed to write error response", zap.Error(werr))
	}
}
