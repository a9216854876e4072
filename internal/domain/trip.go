// Package domain contains the core data types for the Globetrotter API.
// This package has zero external dependencies beyond uuid and is imported by
// every other internal package (repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Trip is the top-level itinerary aggregate: a named, dated journey owned by
// a single user. Stops belong to a trip and are cascade-deleted with it.
// StartDate and EndDate carry date-only semantics (midnight UTC).
type Trip struct {
	ID            uuid.UUID
	OwnerID       uuid.UUID
	Name          string
	Description   string
	StartDate     time.Time
	EndDate       time.Time
	Budget        float64
	CoverPhotoURL string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
