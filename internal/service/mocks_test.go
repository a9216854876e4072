package service_test

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/odotravel/globetrotter/internal/domain"
	"github.com/odotravel/globetrotter/internal/repo"
)

// ---- mock repos ------------------------------------------------------------
// Hand-written test doubles with one func field per method.
// Set only the fields your test needs; unset methods return zero values.

type mockTripRepo struct {
	create      func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID     func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	listByOwner func(ctx context.Context, ownerID uuid.UUID) ([]domain.Trip, error)
	update      func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	delete      func(ctx context.Context, id uuid.UUID) error
}

func (m *mockTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.create(ctx, trip)
}
func (m *mockTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Trip, error) {
	return m.listByOwner(ctx, ownerID)
}
func (m *mockTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.update(ctx, trip)
}
func (m *mockTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ repo.TripRepo = (*mockTripRepo)(nil)

type mockStopRepo struct {
	create     func(ctx context.Context, stop domain.Stop) (domain.Stop, error)
	getByID    func(ctx context.Context, id uuid.UUID) (domain.Stop, error)
	listByTrip func(ctx context.Context, tripID uuid.UUID) ([]domain.Stop, error)
	update     func(ctx context.Context, stop domain.Stop) (domain.Stop, error)
	delete     func(ctx context.Context, id uuid.UUID) error
}

func (m *mockStopRepo) Create(ctx context.Context, stop domain.Stop) (domain.Stop, error) {
	return m.create(ctx, stop)
}
func (m *mockStopRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Stop, error) {
	return m.getByID(ctx, id)
}
func (m *mockStopRepo) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Stop, error) {
	return m.listByTrip(ctx, tripID)
}
func (m *mockStopRepo) Update(ctx context.Context, stop domain.Stop) (domain.Stop, error) {
	return m.update(ctx, stop)
}
func (m *mockStopRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ repo.StopRepo = (*mockStopRepo)(nil)

type mockActivityRepo struct {
	create     func(ctx context.Context, act domain.Activity) (domain.Activity, error)
	getByID    func(ctx context.Context, id uuid.UUID) (domain.Activity, error)
	listByStop func(ctx context.Context, stopID uuid.UUID) ([]domain.Activity, error)
	update     func(ctx context.Context, act domain.Activity) (domain.Activity, error)
	delete     func(ctx context.Context, id uuid.UUID) error
}

func (m *mockActivityRepo) Create(ctx context.Context, act domain.Activity) (domain.Activity, error) {
	return m.create(ctx, act)
}
func (m *mockActivityRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Activity, error) {
	return m.getByID(ctx, id)
}
func (m *mockActivityRepo) ListByStop(ctx context.Context, stopID uuid.UUID) ([]domain.Activity, error) {
	return m.listByStop(ctx, stopID)
}
func (m *mockActivityRepo) Update(ctx context.Context, act domain.Activity) (domain.Activity, error) {
	return m.update(ctx, act)
}
func (m *mockActivityRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ repo.ActivityRepo = (*mockActivityRepo)(nil)

type mockCityRepo struct {
	getByID func(ctx context.Context, id uuid.UUID) (domain.City, error)
}

func (m *mockCityRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.City, error) {
	return m.getByID(ctx, id)
}

var _ repo.CityRepo = (*mockCityRepo)(nil)

type mockUserRepo struct {
	create  func(ctx context.Context, user domain.User) (domain.User, error)
	getByID func(ctx context.Context, id uuid.UUID) (domain.User, error)
}

func (m *mockUserRepo) Create(ctx context.Context, user domain.User) (domain.User, error) {
	return m.create(ctx, user)
}
func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	return m.getByID(ctx, id)
}

var _ repo.UserRepo = (*mockUserRepo)(nil)

// userExists is a UserRepo whose GetByID always succeeds.
func userExists() *mockUserRepo {
	return &mockUserRepo{
		getByID: func(_ context.Context, id uuid.UUID) (domain.User, error) {
			return domain.User{ID: id}, nil
		},
	}
}

// cityMiss is a CityRepo with an empty catalog.
func cityMiss() *mockCityRepo {
	return &mockCityRepo{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.City, error) {
			return domain.City{}, domain.ErrNotFound
		},
	}
}

// date builds a midnight-UTC date, matching the date-only field semantics.
func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
