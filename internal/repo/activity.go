package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/odotravel/globetrotter/internal/domain"
)

// ActivityRepo defines the persistence operations for Activities.
type ActivityRepo interface {
	// Create inserts a new activity and returns the persisted record.
	Create(ctx context.Context, act domain.Activity) (domain.Activity, error)

	// GetByID retrieves a single activity by its UUID primary key.
	// Returns domain.ErrNotFound if no activity with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Activity, error)

	// ListByStop returns all activities for a stop ordered by day_offset,
	// then start_time (unscheduled activities last within their day).
	ListByStop(ctx context.Context, stopID uuid.UUID) ([]domain.Activity, error)

	// Update overwrites the mutable fields of an activity and returns the
	// updated record. Returns domain.ErrNotFound if it does not exist.
	Update(ctx context.Context, act domain.Activity) (domain.Activity, error)

	// Delete removes an activity by ID.
	// Returns domain.ErrNotFound if no activity with that ID exists.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgActivityRepo is the Postgres implementation of ActivityRepo.
type pgActivityRepo struct {
	db db
}

// NewActivityRepo constructs an ActivityRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewActivityRepo(db db) ActivityRepo {
	return &pgActivityRepo{db: db}
}

const activityColumns = `id, stop_id, name, cost, category, note, start_time, duration_minutes, day_offset, created_at, updated_at`

func (r *pgActivityRepo) Create(ctx context.Context, act domain.Activity) (domain.Activity, error) {
	const q = `
		INSERT INTO activities (stop_id, name, cost, category, note, start_time, duration_minutes, day_offset)
		VALUES (@stop_id, @name, @cost, @category, @note, @start_time, @duration_minutes, @day_offset)
		RETURNING ` + activityColumns

	args := pgx.NamedArgs{
		"stop_id":          act.StopID,
		"name":             act.Name,
		"cost":             act.Cost,
		"category":         act.Category,
		"note":             act.Note,
		"start_time":       timeOfDayArg(act.StartTime),
		"duration_minutes": act.DurationMinutes, // nil becomes NULL
		"day_offset":       act.DayOffset,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanActivity(row)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("repo.ActivityRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgActivityRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Activity, error) {
	const q = `SELECT ` + activityColumns + ` FROM activities WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanActivity(row)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("repo.ActivityRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgActivityRepo) ListByStop(ctx context.Context, stopID uuid.UUID) ([]domain.Activity, error) {
	const q = `
		SELECT ` + activityColumns + `
		FROM activities
		WHERE stop_id = @stop_id
		ORDER BY day_offset ASC, start_time ASC NULLS LAST, created_at ASC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"stop_id": stopID})
	if err != nil {
		return nil, fmt.Errorf("repo.ActivityRepo.ListByStop: %w", err)
	}
	defer rows.Close()

	var acts []domain.Activity
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.ActivityRepo.ListByStop: scan: %w", err)
		}
		acts = append(acts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ActivityRepo.ListByStop: rows: %w", err)
	}

	return acts, nil
}

func (r *pgActivityRepo) Update(ctx context.Context, act domain.Activity) (domain.Activity, error) {
	const q = `
		UPDATE activities
		SET name             = @name,
		    cost             = @cost,
		    category         = @category,
		    note             = @note,
		    start_time       = @start_time,
		    duration_minutes = @duration_minutes,
		    day_offset       = @day_offset,
		    updated_at       = now()
		WHERE id = @id
		RETURNING ` + activityColumns

	args := pgx.NamedArgs{
		"id":               act.ID,
		"name":             act.Name,
		"cost":             act.Cost,
		"category":         act.Category,
		"note":             act.Note,
		"start_time":       timeOfDayArg(act.StartTime),
		"duration_minutes": act.DurationMinutes,
		"day_offset":       act.DayOffset,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanActivity(row)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("repo.ActivityRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgActivityRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM activities WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.ActivityRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.ActivityRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanActivity maps a single database row into a domain.Activity.
// start_time (TIME) and duration_minutes (INT) are both nullable.
func scanActivity(s scanner) (domain.Activity, error) {
	var (
		a         domain.Activity
		id        pgtype.UUID
		stopID    pgtype.UUID
		startTime pgtype.Time
		duration  pgtype.Int4
	)

	err := s.Scan(&id, &stopID, &a.Name, &a.Cost, &a.Category, &a.Note,
		&startTime, &duration, &a.DayOffset, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Activity{}, domain.ErrNotFound
		}
		return domain.Activity{}, err
	}

	a.ID = uuid.UUID(id.Bytes)
	a.StopID = uuid.UUID(stopID.Bytes)
	if startTime.Valid {
		hhmm := time.UnixMicro(startTime.Microseconds).UTC().Format("15:04")
		a.StartTime = &hhmm
	}
	if duration.Valid {
		d := int(duration.Int32)
		a.DurationMinutes = &d
	}

	return a, nil
}

// timeOfDayArg converts a nullable "15:04" string into a pgtype.Time suitable
// for a TIME column. Invalid strings are rejected at the service boundary, so
// a parse failure here simply maps to NULL.
func timeOfDayArg(s *string) pgtype.Time {
	if s == nil {
		return pgtype.Time{}
	}
	t, err := time.Parse("15:04", *s)
	if err != nil {
		return pgtype.Time{}
	}
	micros := int64(t.Hour()*3600+t.Minute()*60) * 1_000_000
	return pgtype.Time{Microseconds: micros, Valid: true}
}
