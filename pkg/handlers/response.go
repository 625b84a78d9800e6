package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/bolsa-dev/bolsa-engine/pkg/apperrors"
)

// ErrorResponse writes a JSON error response and returns any encoding error.
func ErrorResponse(w http.ResponseWriter, statusCode int, errorCode, message string) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(map[string]string{
		"error":   errorCode,
		"message": message,
	})
}

// WriteJSON writes a JSON response and returns any encoding error.
func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	if statusCode != http.StatusOK {
		w.WriteHeader(statusCode)
	}
	return json.NewEncoder(w).Encode(data)
}

// serviceError maps a service error kind to its HTTP response. Unknown
// errors become a 500 without internal detail.
func serviceError(w http.ResponseWriter, err error) error {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		return ErrorResponse(w, http.StatusBadRequest, "validation_failed", err.Error())
	case errors.Is(err, apperrors.ErrInvalidRole):
		return ErrorResponse(w, http.StatusBadRequest, "invalid_role", err.Error())
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		return ErrorResponse(w, http.StatusUnauthorized, "invalid_credentials", "Invalid email or password")
	case errors.Is(err, apperrors.ErrPermissionDenied):
		return ErrorResponse(w, http.StatusForbidden, "permission_denied", "You do not have permission to perform this action")
	case errors.Is(err, apperrors.ErrNotFound):
		return ErrorResponse(w, http.StatusNotFound, "not_found", "Resource not found")
	case errors.Is(err, apperrors.ErrConflict):
		return ErrorResponse(w, http.StatusConflict, "conflict", err.Error())
	default:
		return ErrorResponse(w, http.StatusInternalServerError, "internal_error", "An internal error occurred")
	}
}
