package models

import (
	"time"

	"github.com/google/uuid"
)

// ActivityKind tags an activity entry as a pending enrollment or a
// confirmed assignment.
type ActivityKind string

const (
	ActivityPending   ActivityKind = "pending"
	ActivityConfirmed ActivityKind = "confirmed"
)

// ActivityEntry is one worker's standing on an offer: a pending enrollment
// while the offer is open, a confirmed assignment once it is closed. Both
// shapes share this record so callers see a single list regardless of the
// offer's state. FechaInscripcion carries the enrollment timestamp for
// pending entries and the preserved original enrollment timestamp for
// confirmed ones; the wire name is what the front-end consumes.
type ActivityEntry struct {
	Kind             ActivityKind `json:"kind"`
	WorkerID         uuid.UUID    `json:"worker_id"`
	OfferID          uuid.UUID    `json:"offer_id"`
	WorkerName       string       `json:"name"`
	WorkerEmail      string       `json:"email"`
	FechaInscripcion time.Time    `json:"fecha_inscripcion"`
}
