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

// CityRepo defines read access to the city catalog.
// The catalog is reference data seeded by migration; the API only ever looks
// cities up to denormalize name/country onto stops.
type CityRepo interface {
	// GetByID retrieves a catalog city by its UUID primary key.
	// Returns domain.ErrNotFound if no city with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.City, error)
}

// pgCityRepo is the Postgres implementation of CityRepo.
type pgCityRepo struct {
	db db
}

// NewCityRepo constructs a CityRepo backed by the provided db connection.
func NewCityRepo(db db) CityRepo {
	return &pgCityRepo{db: db}
}

func (r *pgCityRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.City, error) {
	const q = `
		SELECT id, name, country, description, image_url, cost_index, created_at
		FROM cities
		WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanCity(row)
	if err != nil {
		return domain.City{}, fmt.Errorf("repo.CityRepo.GetByID: %w", err)
	}
	return result, nil
}

func scanCity(s scanner) (domain.City, error) {
	var (
		c  domain.City
		id pgtype.UUID
	)

	err := s.Scan(&id, &c.Name, &c.Country, &c.Description, &c.ImageURL, &c.CostIndex, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.City{}, domain.ErrNotFound
		}
		return domain.City{}, err
	}

	c.ID = uuid.UUID(id.Bytes)
	return c, nil
}
