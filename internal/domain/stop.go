package domain

import (
	"time"

	"github.com/google/uuid"
)

// Stop represents a single city visit within a trip.
// CityID is an optional, non-owning reference into the city catalog; CityName
// and Country are denormalized copies taken at creation time so the stop
// survives deletion of the catalog entry.
// ArrivalDate and DepartureDate carry date-only semantics (midnight UTC).
// OrderIndex is the persisted position among sibling stops.
type Stop struct {
	ID            uuid.UUID
	TripID        uuid.UUID
	CityID        *uuid.UUID
	CityName      string
	Country       string
	ArrivalDate   time.Time
	DepartureDate time.Time
	TransportCost float64
	TransportMode string
	OrderIndex    int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Nights returns the number of nights spent at the stop, i.e. the number of
// whole days between arrival and departure. A same-day stop has zero nights.
func (s Stop) Nights() int {
	return int(s.DepartureDate.Sub(s.ArrivalDate).Hours() / 24)
}

// Overlaps reports whether the stop's date range strictly overlaps other's.
// Ranges that merely touch — one stop's departure equals the other's
// arrival — do not overlap, so back-to-back stays are permitted.
func (s Stop) Overlaps(other Stop) bool {
	return s.ArrivalDate.Before(other.DepartureDate) && other.ArrivalDate.Before(s.DepartureDate)
}
