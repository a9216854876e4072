package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/odotravel/globetrotter/internal/domain"
	"github.com/odotravel/globetrotter/internal/repo"
)

// ActivityService implements business logic for Activity operations.
// It holds the stop repo because every activity mutation is validated against
// the owning stop's date span.
type ActivityService struct {
	stops      repo.StopRepo
	activities repo.ActivityRepo
}

// NewActivityService constructs an ActivityService backed by the provided repos.
func NewActivityService(stops repo.StopRepo, activities repo.ActivityRepo) *ActivityService {
	return &ActivityService{stops: stops, activities: activities}
}

// ActivityPatch carries an update for an activity. The scalar fields
// (Name/Cost/Category/Note) merge partially: nil leaves the stored value
// unchanged. The time-window fields (StartTime, DurationMinutes, DayOffset)
// are overwritten wholesale on every update — a nil StartTime or
// DurationMinutes clears the stored value.
type ActivityPatch struct {
	Name     *string
	Cost     *float64
	Category *string
	Note     *string

	StartTime       *string
	DurationMinutes *int
	DayOffset       int
}

// Create validates the activity against its owning stop, then persists.
// Returns domain.ErrNotFound if the stop does not exist and
// domain.ErrValidation for a blank name, malformed start time, or a day
// offset outside the stop's stay.
func (s *ActivityService) Create(ctx context.Context, act domain.Activity) (domain.Activity, error) {
	stop, err := s.stops.GetByID(ctx, act.StopID)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("service.ActivityService.Create: %w", err)
	}
	if err := validateActivity(stop, act); err != nil {
		return domain.Activity{}, err
	}
	result, err := s.activities.Create(ctx, act)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("service.ActivityService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single activity by ID.
// Returns domain.ErrNotFound if no activity with that ID exists.
func (s *ActivityService) GetByID(ctx context.Context, id uuid.UUID) (domain.Activity, error) {
	result, err := s.activities.GetByID(ctx, id)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("service.ActivityService.GetByID: %w", err)
	}
	return result, nil
}

// ListByStop returns all activities for a stop, ordered by day and start time.
// Always returns a non-nil slice so callers can safely range over it.
func (s *ActivityService) ListByStop(ctx context.Context, stopID uuid.UUID) ([]domain.Activity, error) {
	acts, err := s.activities.ListByStop(ctx, stopID)
	if err != nil {
		return nil, fmt.Errorf("service.ActivityService.ListByStop: %w", err)
	}
	if acts == nil {
		return []domain.Activity{}, nil
	}
	return acts, nil
}

// Update applies the patch to an existing activity and re-validates it
// against the owning stop. Scalar fields merge; the time window is replaced.
// Returns domain.ErrNotFound if the activity does not exist.
func (s *ActivityService) Update(ctx context.Context, activityID uuid.UUID, patch ActivityPatch) (domain.Activity, error) {
	act, err := s.activities.GetByID(ctx, activityID)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("service.ActivityService.Update: %w", err)
	}

	if patch.Name != nil {
		act.Name = *patch.Name
	}
	if patch.Cost != nil {
		act.Cost = *patch.Cost
	}
	if patch.Category != nil {
		act.Category = *patch.Category
	}
	if patch.Note != nil {
		act.Note = *patch.Note
	}
	act.StartTime = patch.StartTime
	act.DurationMinutes = patch.DurationMinutes
	act.DayOffset = patch.DayOffset

	stop, err := s.stops.GetByID(ctx, act.StopID)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("service.ActivityService.Update: %w", err)
	}
	if err := validateActivity(stop, act); err != nil {
		return domain.Activity{}, err
	}

	result, err := s.activities.Update(ctx, act)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("service.ActivityService.Update: %w", err)
	}
	return result, nil
}

// Delete removes an activity by ID.
// Returns domain.ErrNotFound if the activity does not exist.
func (s *ActivityService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.activities.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.ActivityService.Delete: %w", err)
	}
	return nil
}

// validateActivity enforces business rules common to both Create and Update.
//   - Name must be non-empty (whitespace-only names are rejected).
//   - StartTime, when set, must parse as "15:04".
//   - DayOffset counts days after arrival and must land inside the stay:
//     0 ≤ dayOffset ≤ nights at the stop.
func validateActivity(stop domain.Stop, act domain.Activity) error {
	if strings.TrimSpace(act.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if act.StartTime != nil {
		if _, err := time.Parse("15:04", *act.StartTime); err != nil {
			return fmt.Errorf("%w: start_time must be in HH:MM form", domain.ErrValidation)
		}
	}
	if act.DayOffset < 0 {
		return fmt.Errorf("%w: day_offset must not be negative", domain.ErrValidation)
	}
	if act.DayOffset > stop.Nights() {
		return fmt.Errorf("%w: day_offset %d is past the last day of the stay", domain.ErrValidation, act.DayOffset)
	}
	return nil
}
