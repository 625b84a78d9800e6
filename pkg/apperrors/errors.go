package apperrors

import "errors"

// Error kinds for the offer lifecycle. Handlers map these to HTTP statuses
// with errors.Is; services never touch status codes.
var (
	ErrNotFound         = errors.New("not found")
	ErrConflict         = errors.New("conflict")
	ErrValidation       = errors.New("validation failed")
	ErrPermissionDenied = errors.New("permission denied")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidRole        = errors.New("invalid role")
)

// Named conflict causes. Each wraps ErrConflict so callers can branch on
// either the generic kind or the specific cause.
var (
	ErrOfferClosed     = conflict("offer already closed")
	ErrAlreadyEnrolled = conflict("already enrolled in this offer")
	ErrNotEnrolled     = conflict("not enrolled in this offer")
	ErrAlreadyAssigned = conflict("worker already assigned to this offer")
	ErrEmailTaken      = conflict("email already registered")
)

type conflictError struct {
	msg string
}

func conflict(msg string) error { return &conflictError{msg: msg} }

func (e *conflictError) Error() string { return e.msg }

func (e *conflictError) Unwrap() error { return ErrConflict }
