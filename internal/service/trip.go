// Package service contains the business logic for the Globetrotter API.
// Services validate inputs, enforce the itinerary consistency rules, and
// orchestrate repo calls. No SQL lives here — services depend on repo
// interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/odotravel/globetrotter/internal/domain"
	"github.com/odotravel/globetrotter/internal/repo"
)

// TripService implements business logic for Trip operations, including the
// deep-copy operation that duplicates a full Trip→Stop→Activity tree.
type TripService struct {
	trips repo.TripRepo
	users repo.UserRepo
	uow   repo.UnitOfWork
}

// NewTripService constructs a TripService backed by the provided repos.
// The unit of work is only exercised by Copy; pass nil in tests that do not
// duplicate trips.
func NewTripService(trips repo.TripRepo, users repo.UserRepo, uow repo.UnitOfWork) *TripService {
	return &TripService{trips: trips, users: users, uow: uow}
}

// Create validates the trip, verifies the owner exists, then persists.
// Returns domain.ErrNotFound if the owner does not exist,
// domain.ErrValidation or domain.ErrInvalidRange for invalid input.
func (s *TripService) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	if _, err := s.users.GetByID(ctx, trip.OwnerID); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: owner: %w", err)
	}
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, err
	}
	result, err := s.trips.Create(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single trip by ID.
// Returns domain.ErrNotFound if no trip with that ID exists.
func (s *TripService) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	result, err := s.trips.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return result, nil
}

// ListByOwner returns all trips owned by the given user.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TripService) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Trip, error) {
	trips, err := s.trips.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.ListByOwner: %w", err)
	}
	if trips == nil {
		return []domain.Trip{}, nil
	}
	return trips, nil
}

// Update validates and persists changes to an existing trip. All mutable
// scalar fields are overwritten with the supplied values.
// Returns domain.ErrNotFound if the trip does not exist.
func (s *TripService) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, err
	}
	result, err := s.trips.Update(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a trip by ID. Stops and their activities are removed with it.
// Returns domain.ErrNotFound if the trip does not exist.
func (s *TripService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.trips.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return nil
}

// Copy duplicates a trip for a new owner: a new trip named "Copy of <name>"
// with identical scalar fields, plus one new stop per source stop (same
// catalog city reference, same order) and one new activity per source
// activity, all re-parented under the copy.
//
// The whole walk runs inside one database transaction so a failure mid-copy
// never leaves a partial tree behind.
// Returns domain.ErrNotFound if the source trip or the new owner is absent.
func (s *TripService) Copy(ctx context.Context, tripID, newOwnerID uuid.UUID) (domain.Trip, error) {
	if _, err := s.users.GetByID(ctx, newOwnerID); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Copy: owner: %w", err)
	}

	var copied domain.Trip
	err := s.uow.Do(ctx, func(r repo.Repos) error {
		src, err := r.Trips.GetByID(ctx, tripID)
		if err != nil {
			return err
		}

		dst := src
		dst.ID = uuid.Nil
		dst.OwnerID = newOwnerID
		dst.Name = "Copy of " + src.Name

		// Save first to obtain the new trip's identity.
		dst, err = r.Trips.Create(ctx, dst)
		if err != nil {
			return err
		}

		stops, err := r.Stops.ListByTrip(ctx, src.ID)
		if err != nil {
			return err
		}
		for _, stop := range stops {
			newStop := stop
			newStop.ID = uuid.Nil
			newStop.TripID = dst.ID
			// CityID is deliberately carried over: the copy shares the same
			// catalog city, it does not clone it.
			newStop, err = r.Stops.Create(ctx, newStop)
			if err != nil {
				return err
			}

			acts, err := r.Activities.ListByStop(ctx, stop.ID)
			if err != nil {
				return err
			}
			for _, act := range acts {
				newAct := act
				newAct.ID = uuid.Nil
				newAct.StopID = newStop.ID
				if _, err := r.Activities.Create(ctx, newAct); err != nil {
					return err
				}
			}
		}

		copied = dst
		return nil
	})
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Copy: %w", err)
	}
	return copied, nil
}

// validateTrip enforces business rules common to both Create and Update.
//   - Name must be non-empty (whitespace-only names are rejected).
//   - StartDate must not be after EndDate.
func validateTrip(trip domain.Trip) error {
	if strings.TrimSpace(trip.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if trip.StartDate.After(trip.EndDate) {
		return fmt.Errorf("%w: start_date must not be after end_date", domain.ErrInvalidRange)
	}
	return nil
}
