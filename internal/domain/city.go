package domain

import (
	"time"

	"github.com/google/uuid"
)

// City is a catalog entry used to pre-fill stop details.
// Cities are global reference data, never owned by a trip or stop: stops keep
// a non-owning CityID plus denormalized name/country copies.
// CostIndex is a relative cost-of-visit indicator (1.0 = baseline).
type City struct {
	ID          uuid.UUID
	Name        string
	Country     string
	Description string
	ImageURL    string
	CostIndex   float64
	CreatedAt   time.Time
}
