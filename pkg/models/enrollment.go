package models

import (
	"time"

	"github.com/google/uuid"
)

// Enrollment is a worker's unconfirmed interest in an open offer. It is
// destroyed either by the worker withdrawing or by promotion into an
// Assignment. At most one enrollment exists per (worker, offer) pair; the
// storage layer enforces this with a unique constraint.
type Enrollment struct {
	ID         uuid.UUID `json:"id"`
	WorkerID   uuid.UUID `json:"worker_id"`
	OfferID    uuid.UUID `json:"offer_id"`
	EnrolledAt time.Time `json:"enrolled_at"`
}
