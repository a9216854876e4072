package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repos bundles the transaction-scoped repositories handed to a unit of work.
type Repos struct {
	Trips      TripRepo
	Stops      StopRepo
	Activities ActivityRepo
}

// UnitOfWork runs a function against a set of repositories sharing one
// database transaction. Either every write inside fn commits, or none do.
// Trip duplication uses this so a failure mid-copy never leaves a
// half-copied tree behind.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(r Repos) error) error
}

// pgUnitOfWork is the Postgres implementation of UnitOfWork.
type pgUnitOfWork struct {
	pool *pgxpool.Pool
}

// NewUnitOfWork constructs a UnitOfWork that opens transactions on the
// provided pool.
func NewUnitOfWork(pool *pgxpool.Pool) UnitOfWork {
	return &pgUnitOfWork{pool: pool}
}

// Do begins a transaction, builds repos bound to it, and runs fn.
// The transaction commits when fn returns nil and rolls back otherwise.
func (u *pgUnitOfWork) Do(ctx context.Context, fn func(r Repos) error) error {
	tx, err := u.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("repo.UnitOfWork.Do: begin: %w", err)
	}
	// Rollback after a successful commit is a no-op.
	defer tx.Rollback(ctx) //nolint:errcheck

	r := Repos{
		Trips:      NewTripRepo(tx),
		Stops:      NewStopRepo(tx),
		Activities: NewActivityRepo(tx),
	}

	if err := fn(r); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("repo.UnitOfWork.Do: commit: %w", err)
	}
	return nil
}
