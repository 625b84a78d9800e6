package models

import (
	"time"

	"github.com/google/uuid"
)

// OfferStatus is the offer's lifecycle state. The only transition is
// open -> closed, performed by the promotion operation; closed is terminal.
type OfferStatus string

const (
	OfferOpen   OfferStatus = "open"
	OfferClosed OfferStatus = "closed"
)

// Offer is a job offer created by an administrator.
type Offer struct {
	ID          uuid.UUID   `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	TargetDate  time.Time   `json:"target_date"`
	CreatedBy   uuid.UUID   `json:"created_by"`
	CreatedAt   time.Time   `json:"created_at"`
	Status      OfferStatus `json:"status"`
}

// IsOpen reports whether the offer still accepts enrollments.
func (o *Offer) IsOpen() bool {
	return o.Status == OfferOpen
}

// OfferView is an offer annotated for a particular caller. Inscrita keeps
// the wire name the front-end consumes; it is true when the caller holds a
// pending enrollment on the offer. Confirmed marks offers reached through a
// confirmed assignment.
type OfferView struct {
	Offer
	Inscrita  bool `json:"inscrita"`
	Confirmed bool `json:"confirmed,omitempty"`
}
