package domain

import (
	"time"

	"github.com/google/uuid"
)

// Activity is a scheduled item within a stop: what, how much, and when.
// DayOffset anchors the activity to a day relative to the stop's arrival
// (0 = arrival day). StartTime is a time of day in "15:04" form, nil when
// the activity is unscheduled. DurationMinutes is derived at the HTTP
// boundary from the supplied start/end times and is nil when the window was
// absent or unusable (end before start).
type Activity struct {
	ID              uuid.UUID
	StopID          uuid.UUID
	Name            string
	Cost            float64
	Category        string
	Note            string
	StartTime       *string
	DurationMinutes *int
	DayOffset       int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Day returns the calendar date the activity falls on, given the owning
// stop's arrival date.
func (a Activity) Day(arrival time.Time) time.Time {
	return arrival.AddDate(0, 0, a.DayOffset)
}
