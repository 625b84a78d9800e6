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

// PromoteRequest is the request body for promoting an enrolled worker to a
// confirmed assignment.
type PromoteRequest struct {
	WorkerID string `json:"worker_id"`
	OfferID  string `json:"offer_id"`
}

// AssignmentsHandler handles promotion and confirmed-offer listing.
type AssignmentsHandler struct {
	offers services.OfferService
	logger *zap.Logger
}

// NewAssignmentsHandler creates a new assignments handler.
func NewAssignmentsHandler(offers services.OfferService, logger *zap.Logger) *AssignmentsHandler {
	return &AssignmentsHandler{
		offers: offers,
		logger: logger,
	}
}

// RegisterRoutes registers the assignments handler's routes on the given mux.
func (h *AssignmentsHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware) {
	mux.HandleFunc("POST /asociar-trabajador-oferta", authMiddleware.RequireAdministrator(h.Promote))
	mux.HandleFunc("GET /trabajador-oferta/{workerID}", authMiddleware.RequireAuth(h.ListConfirmed))
}

// Promote handles POST /asociar-trabajador-oferta.
func (h *AssignmentsHandler) Promote(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFrom(r.Context())
	if err != nil {
		h.respondError(w, http.StatusUnauthorized, "unauthorized", "Authentication required")
		return
	}

	var req PromoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	if req.WorkerID == "" || req.OfferID == "" {
		h.respondError(w, http.StatusBadRequest, "missing_fields", "Worker ID and offer ID are required")
		return
	}

	workerID, err := uuid.Parse(req.WorkerID)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid_worker_id", "Invalid worker ID format")
		return
	}

	offerID, err := uuid.Parse(req.OfferID)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid_offer_id", "Invalid offer ID format")
		return
	}

	assignment, err := h.offers.Promote(r.Context(), caller, workerID, offerID)
	if err != nil {
		h.logger.Error("Failed to promote worker",
			zap.String("worker_id", workerID.String()),
			zap.String("offer_id", offerID.String()),
			zap.Error(err))
		h.writeServiceError(w, err)
		return
	}

	if err := WriteJSON(w, http.StatusCreated, assignment); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// ListConfirmed handles GET /trabajador-oferta/{workerID}. Workers see
// their own confirmations; administrators see anyone's.
func (h *AssignmentsHandler) ListConfirmed(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFrom(r.Context())
	if err != nil {
		h.respondError(w, http.StatusUnauthorized, "unauthorized", "Authentication required")
		return
	}

	workerID, err := uuid.Parse(r.PathValue("workerID"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid_worker_id", "Invalid worker ID format")
		return
	}

	views, err := h.offers.ListConfirmed(r.Context(), caller, workerID)
	if err != nil {
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

func (h *AssignmentsHandler) respondError(w http.ResponseWriter, status int, code, message string) {
	if err := ErrorResponse(w, status, code, message); err != nil {
		h.logger.Error("Failed to write error response", zap.Error(err))
	}
}

func (h *AssignmentsHandler) writeServiceError(w http.ResponseWriter, err error) {
	if werr := serviceError(w, err); werr != nil {
		h.logger.Error("Failed to write error response", zap.Error(werr))
	}
}
