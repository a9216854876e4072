package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field, day offset past the end of
// the stay). Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrInvalidRange is returned when a stop's date range is malformed (arrival
// after departure) or falls outside the owning trip's date bounds.
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrInvalidRange = errors.New("invalid date range")

// ErrOverlap is returned when a stop's date range strictly overlaps a sibling
// stop's range. Touching endpoints (one stop departs the day another arrives)
// are not an overlap. Handlers should map this to HTTP 409 Conflict.
var ErrOverlap = errors.New("date range overlaps another stop")
