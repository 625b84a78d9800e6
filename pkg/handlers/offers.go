package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/bolsa-dev/bolsa-engine/pkg/auth"
	"github.com/bolsa-dev/bolsa-engine/pkg/models"
	"github.com/bolsa-dev/bolsa-engine/pkg/services"
)

// targetDateFormat is the wire format for offer target dates.
const targetDateFormat = "2006-01-02"

// CreateOfferRequest is the request body for creating an offer.
type CreateOfferRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	Date        string `json:"date" validate:"required"`
}

// OffersHandler handles offer listing and creation.
type OffersHandler struct {
	offers   services.OfferService
	validate *validator.Validate
	logger   *zap.Logger
}

// NewOffersHandler creates a new offers handler.
func NewOffersHandler(offers services.OfferService, logger *zap.Logger) *OffersHandler {
	return &OffersHandler{
		offers:   offers,
		validate: validator.New(),
		logger:   logger,
	}
}

// RegisterRoutes registers the offers handler's routes on the given mux.
func (h *OffersHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware) {
	mux.HandleFunc("GET /offers", authMiddleware.RequireAuth(h.List))
	mux.HandleFunc("POST /offers", authMiddleware.RequireAdministrator(h.Create))
	mux.HandleFunc("GET /admin-offers", authMiddleware.RequireAdministrator(h.ListWithActivity))
}

// List handles GET /offers. Every offer is returned with the caller's
// enrollment standing in the inscrita flag.
func (h *OffersHandler) List(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFrom(r.Context())
	if err != nil {
		h.respondError(w, http.StatusUnauthorized, "unauthorized", "Authentication required")
		return
	}

	views, err := h.offers.ListOffers(r.Context(), caller)
	if err != nil {
		h.logger.Error("Failed to list offers", zap.Error(err))
		h.writeServiceError(w, err)
		return
	}

	if views == nil {
		views = []*models.OfferView{}
	}
	if err := WriteJSON(w, http.StatusOK, views); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// ListWithActivity handles GET /admin-offers.
func (h *OffersHandler) ListWithActivity(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFrom(r.Context())
	if err != nil {
		h.respondError(w, http.StatusUnauthorized, "unauthorized", "Authentication required")
		return
	}

	views, err := h.offers.ListWithActivity(r.Context(), caller)
	if err != nil {
		h.logger.Error("Failed to list offers with activity", zap.Error(err))
		h.writeServiceError(w, err)
		return
	}

	if views == nil {
		views = []*models.OfferView{}
	}
	if err := WriteJSON(w, http.StatusOK, views); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Create handles POST /offers.
func (h *OffersHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFrom(r.Context())
	if err != nil {
		h.respondError(w, http.StatusUnauthorized, "unauthorized", "Authentication required")
		return
	}

	var req CreateOfferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	if err := h.validate.Struct(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "validation_failed", "Title, description and date are required")
		return
	}

	targetDate, err := time.Parse(targetDateFormat, req.Date)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid_date", "Date must be in YYYY-MM-DD format")
		return
	}

	offer, err := h.offers.Create(r.Context(), caller, req.Title, req.Description, targetDate)
	if err != nil {
		h.logger.Error("Failed to create offer", zap.Error(err))
		h.writeServiceError(w, err)
		return
	}

	if err := WriteJSON(w, http.StatusCreated, offer); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

func (h *OffersHandler) respondError(w http.ResponseWriter, status int, code, message string) {
	if err := ErrorResponse(w, status, code, message); err != nil {
		h.logger.Error("Failed to write error response", zap.Error(err))
	}
}

func (h *OffersHandler) writeServiceError(w http.ResponseWriter, err error) {
	if werr := serviceError(w, err); werr != nil {
		h.logger.Error("Failed to write error response", zap.Error(werr))
	}
}
