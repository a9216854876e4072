package repo_test

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"

	"github.com/odotravel/globetrotter/internal/domain"
	"github.com/odotravel/globetrotter/internal/repo"
	"github.com/odotravel/globetrotter/migrations"
	"github.com/odotravel/globetrotter/testutil"
)

// TestMain runs before any test in the repo_test package.
// It applies all pending migrations to the test database so individual tests
// never need to think about schema state.
func TestMain(m *testing.M) {
	if os.Getenv("TEST_DATABASE_URL") == "" {
		// No test DB configured — skip all tests in this package cleanly.
		os.Exit(m.Run())
	}

	// Use a plain *sql.DB for goose (it needs database/sql, not pgx pool).
	db := testutil.MustOpenSQLDB(os.Getenv("TEST_DATABASE_URL"))
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		log.Fatalf("TestMain: create goose provider: %v", err)
	}

	if _, err := provider.Up(context.Background()); err != nil {
		log.Fatalf("TestMain: run migrations: %v", err)
	}

	os.Exit(m.Run())
}

// testRepos bundles every repository bound to a single transaction that is
// rolled back when the test finishes, giving free per-test isolation.
// tx is exposed for raw fixture SQL (e.g. inserting a catalog city).
type testRepos struct {
	tx         pgx.Tx
	users      repo.UserRepo
	cities     repo.CityRepo
	trips      repo.TripRepo
	stops      repo.StopRepo
	activities repo.ActivityRepo
}

// newTestRepos opens a transaction against the test database and returns
// repositories backed by it. Requires TEST_DATABASE_URL to be set.
func newTestRepos(t *testing.T) testRepos {
	t.Helper()
	pool := testutil.NewPool(t)

	tx, err := pool.Begin(context.Background())
	require.NoError(t, err, "begin transaction")

	t.Cleanup(func() {
		// Rollback discards all changes made during the test — no cleanup SQL needed.
		_ = tx.Rollback(context.Background())
	})

	return testRepos{
		tx:         tx,
		users:      repo.NewUserRepo(tx),
		cities:     repo.NewCityRepo(tx),
		trips:      repo.NewTripRepo(tx),
		stops:      repo.NewStopRepo(tx),
		activities: repo.NewActivityRepo(tx),
	}
}

// createOwner inserts a user to own test trips.
func createOwner(t *testing.T, r testRepos) domain.User {
	t.Helper()
	u, err := r.users.Create(context.Background(), domain.User{
		Name:  "Test Traveller",
		Email: "traveller-" + uuid.NewString() + "@example.com",
	})
	require.NoError(t, err)
	return u
}

// createTrip inserts a trip with sensible defaults owned by a fresh user.
func createTrip(t *testing.T, r testRepos) domain.Trip {
	t.Helper()
	owner := createOwner(t, r)
	trip, err := r.trips.Create(context.Background(), domain.Trip{
		OwnerID:     owner.ID,
		Name:        "Summer in Europe",
		Description: "Three countries, two weeks",
		StartDate:   date(2024, 6, 1),
		EndDate:     date(2024, 6, 15),
		Budget:      4200,
	})
	require.NoError(t, err)
	return trip
}

// createCity inserts a catalog city via raw SQL (CityRepo is read-only).
func createCity(t *testing.T, r testRepos, name, country string) uuid.UUID {
	t.Helper()
	var idStr string
	err := r.tx.QueryRow(context.Background(),
		`INSERT INTO cities (name, country) VALUES ($1, $2) RETURNING id::text`,
		name, country).Scan(&idStr)
	require.NoError(t, err)
	return uuid.MustParse(idStr)
}

// date builds a midnight-UTC date, matching the date-only column semantics.
func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
