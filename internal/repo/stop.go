package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/odotravel/globetrotter/internal/domain"
)

// StopRepo defines the persistence operations for Stops.
type StopRepo interface {
	// Create inserts a new stop and returns the persisted record.
	Create(ctx context.Context, stop domain.Stop) (domain.Stop, error)

	// GetByID retrieves a single stop by its UUID primary key.
	// Returns domain.ErrNotFound if no stop with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Stop, error)

	// ListByTrip returns all stops for a trip ordered by order_index
	// ascending, arrival_date breaking ties.
	ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Stop, error)

	// Update overwrites the mutable fields of a stop and returns the updated
	// record. Returns domain.ErrNotFound if no stop with that ID exists.
	Update(ctx context.Context, stop domain.Stop) (domain.Stop, error)

	// Delete removes a stop by ID, cascading to its activities.
	// Returns domain.ErrNotFound if no stop with that ID exists.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgStopRepo is the Postgres implementation of StopRepo.
type pgStopRepo struct {
	db db
}

// NewStopRepo constructs a StopRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewStopRepo(db db) StopRepo {
	return &pgStopRepo{db: db}
}

const stopColumns = `id, trip_id, city_id, city_name, country, arrival_date, departure_date, transport_cost, transport_mode, order_index, created_at, updated_at`

func (r *pgStopRepo) Create(ctx context.Context, stop domain.Stop) (domain.Stop, error) {
	const q = `
		INSERT INTO stops (trip_id, city_id, city_name, country, arrival_date, departure_date, transport_cost, transport_mode, order_index)
		VALUES (@trip_id, @city_id, @city_name, @country, @arrival_date, @departure_date, @transport_cost, @transport_mode, @order_index)
		RETURNING ` + stopColumns

	args := pgx.NamedArgs{
		"trip_id":        stop.TripID,
		"city_id":        stop.CityID, // nil becomes NULL
		"city_name":      stop.CityName,
		"country":        stop.Country,
		"arrival_date":   stop.ArrivalDate,
		"departure_date": stop.DepartureDate,
		"transport_cost": stop.TransportCost,
		"transport_mode": stop.TransportMode,
		"order_index":    stop.OrderIndex,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanStop(row)
	if err != nil {
		return domain.Stop{}, fmt.Errorf("repo.StopRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgStopRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Stop, error) {
	const q = `SELECT ` + stopColumns + ` FROM stops WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanStop(row)
	if err != nil {
		return domain.Stop{}, fmt.Errorf("repo.StopRepo.GetByID: %w", err)
	}
	return result, nil
}

// ListByTrip returns the trip's stops in itinerary order.
func (r *pgStopRepo) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Stop, error) {
	const q = `
		SELECT ` + stopColumns + `
		FROM stops
		WHERE trip_id = @trip_id
		ORDER BY order_index ASC, arrival_date ASC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.StopRepo.ListByTrip: %w", err)
	}
	defer rows.Close()

	var stops []domain.Stop
	for rows.Next() {
		s, err := scanStop(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.StopRepo.ListByTrip: scan: %w", err)
		}
		stops = append(stops, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.StopRepo.ListByTrip: rows: %w", err)
	}

	return stops, nil
}

func (r *pgStopRepo) Update(ctx context.Context, stop domain.Stop) (domain.Stop, error) {
	const q = `
		UPDATE stops
		SET city_id        = @city_id,
		    city_name      = @city_name,
		    country        = @country,
		    arrival_date   = @arrival_date,
		    departure_date = @departure_date,
		    transport_cost = @transport_cost,
		    transport_mode = @transport_mode,
		    order_index    = @order_index,
		    updated_at     = now()
		WHERE id = @id
		RETURNING ` + stopColumns

	args := pgx.NamedArgs{
		"id":             stop.ID,
		"city_id":        stop.CityID,
		"city_name":      stop.CityName,
		"country":        stop.Country,
		"arrival_date":   stop.ArrivalDate,
		"departure_date": stop.DepartureDate,
		"transport_cost": stop.TransportCost,
		"transport_mode": stop.TransportMode,
		"order_index":    stop.OrderIndex,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanStop(row)
	if err != nil {
		return domain.Stop{}, fmt.Errorf("repo.StopRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgStopRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM stops WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.StopRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.StopRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanStop maps a single database row into a domain.Stop.
// city_id is nullable: absent catalog references scan to a nil pointer.
func scanStop(s scanner) (domain.Stop, error) {
	var (
		st      domain.Stop
		id      pgtype.UUID
		tripID  pgtype.UUID
		cityID  pgtype.UUID
		arrival pgtype.Date
		depart  pgtype.Date
	)

	err := s.Scan(&id, &tripID, &cityID, &st.CityName, &st.Country, &arrival, &depart,
		&st.TransportCost, &st.TransportMode, &st.OrderIndex, &st.CreatedAt, &st.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Stop{}, domain.ErrNotFound
		}
		return domain.Stop{}, err
	}

	st.ID = uuid.UUID(id.Bytes)
	st.TripID = uuid.UUID(tripID.Bytes)
	if cityID.Valid {
		cid := uuid.UUID(cityID.Bytes)
		st.CityID = &cid
	}
	st.ArrivalDate = arrival.Time
	st.DepartureDate = depart.Time

	return st, nil
}
