package models

import (
	"time"

	"github.com/google/uuid"
)

// Assignment is a confirmed worker placement on an offer. It is created
// only by the promotion transaction, which carries the enrollment's
// original timestamp into AssignedAt. Assignments are never deleted.
type Assignment struct {
	WorkerID   uuid.UUID `json:"worker_id"`
	OfferID    uuid.UUID `json:"offer_id"`
	AssignedAt time.Time `json:"assigned_at"`
}
