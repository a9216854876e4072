package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odotravel/globetrotter/internal/domain"
	"github.com/odotravel/globetrotter/internal/repo"
	"github.com/odotravel/globetrotter/internal/service"
)

// fakeUow satisfies repo.UnitOfWork without a database: it runs fn against a
// fixed set of repos and reports whether fn failed.
type fakeUow struct {
	repos repo.Repos
}

func (u *fakeUow) Do(_ context.Context, fn func(r repo.Repos) error) error {
	return fn(u.repos)
}

var _ repo.UnitOfWork = (*fakeUow)(nil)

// memStore is an in-memory trip tree used to exercise the copy walk.
type memStore struct {
	trips      map[uuid.UUID]domain.Trip
	stops      map[uuid.UUID]domain.Stop
	activities map[uuid.UUID]domain.Activity
}

func newMemStore() *memStore {
	return &memStore{
		trips:      map[uuid.UUID]domain.Trip{},
		stops:      map[uuid.UUID]domain.Stop{},
		activities: map[uuid.UUID]domain.Activity{},
	}
}

func (m *memStore) repos() repo.Repos {
	return repo.Repos{
		Trips: &mockTripRepo{
			getByID: func(_ context.Context, id uuid.UUID) (domain.Trip, error) {
				trip, ok := m.trips[id]
				if !ok {
					return domain.Trip{}, domain.ErrNotFound
				}
				return trip, nil
			},
			create: func(_ context.Context, trip domain.Trip) (domain.Trip, error) {
				trip.ID = uuid.New()
				m.trips[trip.ID] = trip
				return trip, nil
			},
		},
		Stops: &mockStopRepo{
			listByTrip: func(_ context.Context, tripID uuid.UUID) ([]domain.Stop, error) {
				var out []domain.Stop
				for _, s := range m.stops {
					if s.TripID == tripID {
						out = append(out, s)
					}
				}
				return out, nil
			},
			create: func(_ context.Context, stop domain.Stop) (domain.Stop, error) {
				stop.ID = uuid.New()
				m.stops[stop.ID] = stop
				return stop, nil
			},
		},
		Activities: &mockActivityRepo{
			listByStop: func(_ context.Context, stopID uuid.UUID) ([]domain.Activity, error) {
				var out []domain.Activity
				for _, a := range m.activities {
					if a.StopID == stopID {
						out = append(out, a)
					}
				}
				return out, nil
			},
			create: func(_ context.Context, act domain.Activity) (domain.Activity, error) {
				act.ID = uuid.New()
				m.activities[act.ID] = act
				return act, nil
			},
		},
	}
}

// ---- Create ----

func TestTripService_Create(t *testing.T) {
	ownerID := uuid.New()
	trips := &mockTripRepo{
		create: func(_ context.Context, trip domain.Trip) (domain.Trip, error) {
			trip.ID = uuid.New()
			return trip, nil
		},
	}
	svc := service.NewTripService(trips, userExists(), nil)

	trip, err := svc.Create(context.Background(), domain.Trip{
		OwnerID:   ownerID,
		Name:      "Summer in Iberia",
		StartDate: date(2024, time.June, 1),
		EndDate:   date(2024, time.June, 10),
		Budget:    3000,
	})

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, trip.ID)
	assert.Equal(t, ownerID, trip.OwnerID)
}

func TestTripService_Create_OwnerNotFound(t *testing.T) {
	users := &mockUserRepo{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.User, error) {
			return domain.User{}, domain.ErrNotFound
		},
	}
	svc := service.NewTripService(&mockTripRepo{}, users, nil)

	_, err := svc.Create(context.Background(), domain.Trip{
		OwnerID:   uuid.New(),
		Name:      "Orphan trip",
		StartDate: date(2024, time.June, 1),
		EndDate:   date(2024, time.June, 10),
	})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTripService_Create_NameRequired(t *testing.T) {
	svc := service.NewTripService(&mockTripRepo{}, userExists(), nil)

	_, err := svc.Create(context.Background(), domain.Trip{
		OwnerID:   uuid.New(),
		Name:      "   ",
		StartDate: date(2024, time.June, 1),
		EndDate:   date(2024, time.June, 10),
	})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTripService_Create_StartAfterEnd(t *testing.T) {
	svc := service.NewTripService(&mockTripRepo{}, userExists(), nil)

	_, err := svc.Create(context.Background(), domain.Trip{
		OwnerID:   uuid.New(),
		Name:      "Backwards trip",
		StartDate: date(2024, time.June, 10),
		EndDate:   date(2024, time.June, 1),
	})

	assert.ErrorIs(t, err, domain.ErrInvalidRange)
}

// ---- Update ----

func TestTripService_Update_Validates(t *testing.T) {
	svc := service.NewTripService(&mockTripRepo{}, userExists(), nil)

	_, err := svc.Update(context.Background(), domain.Trip{
		ID:        uuid.New(),
		Name:      "",
		StartDate: date(2024, time.June, 1),
		EndDate:   date(2024, time.June, 10),
	})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTripService_Update_NotFound(t *testing.T) {
	trips := &mockTripRepo{
		update: func(_ context.Context, _ domain.Trip) (domain.Trip, error) {
			return domain.Trip{}, domain.ErrNotFound
		},
	}
	svc := service.NewTripService(trips, userExists(), nil)

	_, err := svc.Update(context.Background(), domain.Trip{
		ID:        uuid.New(),
		Name:      "Ghost trip",
		StartDate: date(2024, time.June, 1),
		EndDate:   date(2024, time.June, 10),
	})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ---- ListByOwner ----

func TestTripService_ListByOwner_NeverNil(t *testing.T) {
	trips := &mockTripRepo{
		listByOwner: func(_ context.Context, _ uuid.UUID) ([]domain.Trip, error) {
			return nil, nil
		},
	}
	svc := service.NewTripService(trips, userExists(), nil)

	got, err := svc.ListByOwner(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

// ---- Copy ----

func TestTripService_Copy(t *testing.T) {
	store := newMemStore()
	srcOwner := uuid.New()
	newOwner := uuid.New()

	src := domain.Trip{
		ID:        uuid.New(),
		OwnerID:   srcOwner,
		Name:      "Summer in Iberia",
		StartDate: date(2024, time.June, 1),
		EndDate:   date(2024, time.June, 10),
		Budget:    3000,
	}
	store.trips[src.ID] = src

	cityID := uuid.New()
	lisbon := stay(src.ID, "Lisbon", date(2024, time.June, 1), date(2024, time.June, 5), 0)
	lisbon.CityID = &cityID
	porto := stay(src.ID, "Porto", date(2024, time.June, 5), date(2024, time.June, 8), 1)
	store.stops[lisbon.ID] = lisbon
	store.stops[porto.ID] = porto

	walk := domain.Activity{
		ID:        uuid.New(),
		StopID:    lisbon.ID,
		Name:      "Castle walk",
		Cost:      15,
		StartTime: strPtr("10:00"),
		DayOffset: 1,
	}
	store.activities[walk.ID] = walk

	svc := service.NewTripService(&mockTripRepo{}, userExists(), &fakeUow{repos: store.repos()})

	copied, err := svc.Copy(context.Background(), src.ID, newOwner)
	require.NoError(t, err)

	assert.Equal(t, "Copy of Summer in Iberia", copied.Name)
	assert.Equal(t, newOwner, copied.OwnerID)
	assert.NotEqual(t, src.ID, copied.ID)
	assert.Equal(t, src.Budget, copied.Budget)
	assert.Equal(t, src.StartDate, copied.StartDate)

	// The source tree is untouched and the copy mirrors it stop for stop.
	var copiedStops []domain.Stop
	for _, s := range store.stops {
		if s.TripID == copied.ID {
			copiedStops = append(copiedStops, s)
		}
	}
	require.Len(t, copiedStops, 2)
	require.Len(t, store.stops, 4)

	for _, s := range copiedStops {
		assert.NotEqual(t, lisbon.ID, s.ID)
		assert.NotEqual(t, porto.ID, s.ID)
		if s.CityName == "Lisbon" {
			// The copy shares the catalog reference rather than cloning it.
			require.NotNil(t, s.CityID)
			assert.Equal(t, cityID, *s.CityID)

			var copiedActs []domain.Activity
			for _, a := range store.activities {
				if a.StopID == s.ID {
					copiedActs = append(copiedActs, a)
				}
			}
			require.Len(t, copiedActs, 1)
			assert.Equal(t, "Castle walk", copiedActs[0].Name)
			assert.Equal(t, 1, copiedActs[0].DayOffset)
			require.NotNil(t, copiedActs[0].StartTime)
			assert.Equal(t, "10:00", *copiedActs[0].StartTime)
		}
	}
}

func TestTripService_Copy_SourceNotFound(t *testing.T) {
	store := newMemStore()
	svc := service.NewTripService(&mockTripRepo{}, userExists(), &fakeUow{repos: store.repos()})

	_, err := svc.Copy(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTripService_Copy_NewOwnerNotFound(t *testing.T) {
	users := &mockUserRepo{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.User, error) {
			return domain.User{}, domain.ErrNotFound
		},
	}
	svc := service.NewTripService(&mockTripRepo{}, users, &fakeUow{})

	_, err := svc.Copy(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
