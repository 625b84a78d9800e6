package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bolsa-dev/bolsa-engine/pkg/auth"
	"github.com/bolsa-dev/bolsa-engine/pkg/models"
	"github.com/bolsa-dev/bolsa-engine/pkg/services"
)

// EnrollmentRequest is the request body for enrolling in or withdrawing
// from an offer.
type EnrollmentRequest struct {
	OfferID string `json:"offer_id"`
}

// EnrollmentsHandler handles enrollment, withdrawal and per-offer activity.
type EnrollmentsHandler struct {
	offers services.OfferService
	logger *zap.Logger
}

// NewEnrollmentsHandler creates a new enrollments handler.
func NewEnrollmentsHandler(offers services.OfferService, logger *zap.Logger) *EnrollmentsHandler {
	return &EnrollmentsHandler{
		offers: offers,
		logger: logger,
	}
}

// RegisterRoutes registers the enrollments handler's routes on the given mux.
func (h *EnrollmentsHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware) {
	mux.HandleFunc("POST /inscripciones-oferta", authMiddleware.RequireAuth(h.Enroll))
	mux.HandleFunc("DELETE /inscripciones-oferta", authMiddleware.RequireAuth(h.Withdraw))
	mux.HandleFunc("GET /inscripciones-oferta/{offerID}", authMiddleware.RequireAdministrator(h.Activity))
}

// Enroll handles POST /inscripciones-oferta.
func (h *EnrollmentsHandler) Enroll(w http.ResponseWriter, r *http.Request) {
	caller, offerID, ok := h.callerAndOffer(w, r)
	if !ok {
		return
	}

	enrollment, err := h.offers.Enroll(r.Context(), caller, offerID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	if err := WriteJSON(w, http.StatusCreated, enrollment); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Withdraw handles DELETE /inscripciones-oferta.
func (h *EnrollmentsHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	caller, offerID, ok := h.callerAndOffer(w, r)
	if !ok {
		return
	}

	if err := h.offers.Withdraw(r.Context(), caller, offerID); err != nil {
		h.writeServiceError(w, err)
		return
	}

	if err := WriteJSON(w, http.StatusOK, map[string]string{"message": "enrollment removed"}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Activity handles GET /inscripciones-oferta/{offerID}. Open offers list
// pending enrollments; closed offers list confirmed assignments. The
// response shape is the same tagged entry either way.
func (h *EnrollmentsHandler) Activity(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFrom(r.Context())
	if err != nil {
		h.respondError(w, http.StatusUnauthorized, "unauthorized", "Authentication required")
		return
	}

	offerID, err := uuid.Parse(r.PathValue("offerID"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid_offer_id", "Invalid offer ID format")
		return
	}

	entries, err := h.offers.Activity(r.Context(), caller, offerID)
	if err != nil {
		h.logger.Error("Failed to get offer activity",
			zap.String("offer_id", offerID.String()),
			zap.Error(err))
		h.writeServiceError(w, err)
		return
	}

	if entries == nil {
		entries = []*models.ActivityEntry{}
	}
	if err := WriteJSON(w, http.StatusOK, entries); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// callerAndOffer decodes the shared enroll/withdraw request shape. It
// writes the error response itself and reports success in its third return.
func (h *EnrollmentsHandler) callerAndOffer(w http.ResponseWriter, r *http.Request) (services.Caller, uuid.UUID, bool) {
	caller, err := callerFrom(r.Context())
	if err != nil {
		h.respondError(w, http.StatusUnauthorized, "unauthorized", "Authentication required")
		return services.Caller{}, uuid.Nil, false
	}

	var req EnrollmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return services.Caller{}, uuid.Nil, false
	}

	if req.OfferID == "" {
		h.respondError(w, http.StatusBadRequest, "missing_offer_id", "Offer ID is required")
		return services.Caller{}, uuid.Nil, false
	}

	offerID, err := uuid.Parse(req.OfferID)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid_offer_id", "Invalid offer ID format")
		return services.Caller{}, uuid.Nil, false
	}

	return caller, offerID, true
}

func (h *EnrollmentsHandler) respondError(w http.ResponseWriter, status int, code, message string) {
	if err := ErrorResponse(w, status, code, message); err != nil {
		h.logger.Error("Failed to write error response", zap.Error(err))
	}
}

func (h *EnrollmentsHandler) writeServiceError(w http.ResponseWriter, err error) {
	if werr := serviceError(w, err); werr != nil {
		h.logger.Error("Failed to write error response", zap.Error(werr))
	}
}
