package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/odotravel/globetrotter/internal/domain"
	"github.com/odotravel/globetrotter/internal/repo"
)

// StopService implements business logic for Stop operations.
// It holds trip, stop, and city repos because creating a stop requires the
// parent trip's date bounds, the sibling stops for overlap checking, and the
// city catalog for name/country denormalization.
type StopService struct {
	trips  repo.TripRepo
	stops  repo.StopRepo
	cities repo.CityRepo
}

// NewStopService constructs a StopService backed by the provided repos.
func NewStopService(trips repo.TripRepo, stops repo.StopRepo, cities repo.CityRepo) *StopService {
	return &StopService{trips: trips, stops: stops, cities: cities}
}

// StopPatch carries a partial update for a stop. Nil fields mean "leave
// unchanged". CityID is not patchable: the catalog link is fixed at creation.
type StopPatch struct {
	CityName      *string
	ArrivalDate   *time.Time
	DepartureDate *time.Time
	TransportCost *float64
	TransportMode *string
}

// Create resolves the stop's display city, validates its date range against
// the parent trip and the sibling stops, assigns the next order position,
// then persists.
//
// Returns domain.ErrNotFound if the parent trip does not exist,
// domain.ErrInvalidRange if the range is malformed or outside the trip's
// bounds, and domain.ErrOverlap if the range strictly overlaps a sibling.
func (s *StopService) Create(ctx context.Context, stop domain.Stop) (domain.Stop, error) {
	trip, err := s.trips.GetByID(ctx, stop.TripID)
	if err != nil {
		return domain.Stop{}, fmt.Errorf("service.StopService.Create: %w", err)
	}

	if err := s.resolveCity(ctx, &stop); err != nil {
		return domain.Stop{}, fmt.Errorf("service.StopService.Create: %w", err)
	}

	if err := validateStopRange(trip, stop); err != nil {
		return domain.Stop{}, err
	}

	siblings, err := s.stops.ListByTrip(ctx, stop.TripID)
	if err != nil {
		return domain.Stop{}, fmt.Errorf("service.StopService.Create: %w", err)
	}
	if err := checkOverlap(siblings, stop, uuid.Nil); err != nil {
		return domain.Stop{}, err
	}

	stop.OrderIndex = nextOrderIndex(siblings)

	result, err := s.stops.Create(ctx, stop)
	if err != nil {
		return domain.Stop{}, fmt.Errorf("service.StopService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single stop by ID.
// Returns domain.ErrNotFound if no stop with that ID exists.
func (s *StopService) GetByID(ctx context.Context, id uuid.UUID) (domain.Stop, error) {
	result, err := s.stops.GetByID(ctx, id)
	if err != nil {
		return domain.Stop{}, fmt.Errorf("service.StopService.GetByID: %w", err)
	}
	return result, nil
}

// ListByTrip returns all stops for a trip in itinerary order.
// Always returns a non-nil slice so callers can safely range over it.
func (s *StopService) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Stop, error) {
	stops, err := s.stops.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.StopService.ListByTrip: %w", err)
	}
	if stops == nil {
		return []domain.Stop{}, nil
	}
	return stops, nil
}

// Update applies the supplied fields to an existing stop and re-validates the
// resulting date range against the trip bounds and the sibling stops, with
// the stop being edited excluded from the overlap check.
//
// Returns domain.ErrNotFound if the stop does not exist, and the same
// ErrInvalidRange/ErrOverlap failures as Create for invalid date edits.
func (s *StopService) Update(ctx context.Context, stopID uuid.UUID, patch StopPatch) (domain.Stop, error) {
	stop, err := s.stops.GetByID(ctx, stopID)
	if err != nil {
		return domain.Stop{}, fmt.Errorf("service.StopService.Update: %w", err)
	}

	if patch.CityName != nil {
		stop.CityName = *patch.CityName
	}
	if patch.ArrivalDate != nil {
		stop.ArrivalDate = *patch.ArrivalDate
	}
	if patch.DepartureDate != nil {
		stop.DepartureDate = *patch.DepartureDate
	}
	if patch.TransportCost != nil {
		stop.TransportCost = *patch.TransportCost
	}
	if patch.TransportMode != nil {
		stop.TransportMode = *patch.TransportMode
	}

	trip, err := s.trips.GetByID(ctx, stop.TripID)
	if err != nil {
		return domain.Stop{}, fmt.Errorf("service.StopService.Update: %w", err)
	}
	if err := validateStopRange(trip, stop); err != nil {
		return domain.Stop{}, err
	}

	siblings, err := s.stops.ListByTrip(ctx, stop.TripID)
	if err != nil {
		return domain.Stop{}, fmt.Errorf("service.StopService.Update: %w", err)
	}
	if err := checkOverlap(siblings, stop, stop.ID); err != nil {
		return domain.Stop{}, err
	}

	result, err := s.stops.Update(ctx, stop)
	if err != nil {
		return domain.Stop{}, fmt.Errorf("service.StopService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a stop by ID. Its activities are removed with it.
// Returns domain.ErrNotFound if the stop does not exist.
func (s *StopService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.stops.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.StopService.Delete: %w", err)
	}
	return nil
}

// resolveCity fills the stop's display name and country.
// A catalog hit copies the city's name/country onto the stop and keeps the
// reference. A supplied CityID that no longer exists degrades to free text —
// the reference is dropped, not an error. With no catalog hit the
// caller-supplied name is used with an empty country, or the literal
// "Unknown" when no name was supplied at all.
func (s *StopService) resolveCity(ctx context.Context, stop *domain.Stop) error {
	if stop.CityID != nil {
		city, err := s.cities.GetByID(ctx, *stop.CityID)
		switch {
		case err == nil:
			stop.CityName = city.Name
			stop.Country = city.Country
			return nil
		case errors.Is(err, domain.ErrNotFound):
			stop.CityID = nil
		default:
			return err
		}
	}
	if strings.TrimSpace(stop.CityName) == "" {
		stop.CityName = "Unknown"
	}
	stop.Country = ""
	return nil
}

// validateStopRange checks that the stop's dates are well formed and fall
// within the owning trip's date bounds.
func validateStopRange(trip domain.Trip, stop domain.Stop) error {
	if stop.ArrivalDate.After(stop.DepartureDate) {
		return fmt.Errorf("%w: arrival_date must not be after departure_date", domain.ErrInvalidRange)
	}
	if stop.ArrivalDate.Before(trip.StartDate) || stop.DepartureDate.After(trip.EndDate) {
		return fmt.Errorf("%w: stop dates must fall within the trip dates (%s to %s)",
			domain.ErrInvalidRange, trip.StartDate.Format("2006-01-02"), trip.EndDate.Format("2006-01-02"))
	}
	return nil
}

// checkOverlap rejects a candidate range that strictly overlaps any sibling.
// Touching endpoints are allowed: departing one stop the day the next begins
// is a connecting stay, not a conflict. exclude skips the stop being edited
// so an update never collides with its own stored range.
func checkOverlap(siblings []domain.Stop, candidate domain.Stop, exclude uuid.UUID) error {
	for _, sib := range siblings {
		if sib.ID == exclude {
			continue
		}
		if candidate.Overlaps(sib) {
			return fmt.Errorf("%w: dates conflict with the stay in %s (%s to %s)",
				domain.ErrOverlap, sib.CityName,
				sib.ArrivalDate.Format("2006-01-02"), sib.DepartureDate.Format("2006-01-02"))
		}
	}
	return nil
}

// nextOrderIndex returns one past the highest order position among siblings,
// so new stops always append to the end of the itinerary.
func nextOrderIndex(siblings []domain.Stop) int {
	next := 0
	for _, sib := range siblings {
		if sib.OrderIndex >= next {
			next = sib.OrderIndex + 1
		}
	}
	return next
}
