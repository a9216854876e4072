package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/odotravel/globetrotter/internal/domain"
	"github.com/odotravel/globetrotter/internal/handler"
	"github.com/odotravel/globetrotter/internal/service"
)

// ---- mock services ---------------------------------------------------------
// One func field per method; tests set only the fields the endpoint under
// test will call.

type mockTripService struct {
	create      func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID     func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	listByOwner func(ctx context.Context, ownerID uuid.UUID) ([]domain.Trip, error)
	update      func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	delete      func(ctx context.Context, id uuid.UUID) error
	copy        func(ctx context.Context, tripID, newOwnerID uuid.UUID) (domain.Trip, error)
}

func (m *mockTripService) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.create(ctx, trip)
}
func (m *mockTripService) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripService) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Trip, error) {
	return m.listByOwner(ctx, ownerID)
}
func (m *mockTripService) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.update(ctx, trip)
}
func (m *mockTripService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}
func (m *mockTripService) Copy(ctx context.Context, tripID, newOwnerID uuid.UUID) (domain.Trip, error) {
	return m.copy(ctx, tripID, newOwnerID)
}

var _ handler.TripServicer = (*mockTripService)(nil)

type mockStopService struct {
	create     func(ctx context.Context, stop domain.Stop) (domain.Stop, error)
	listByTrip func(ctx context.Context, tripID uuid.UUID) ([]domain.Stop, error)
	update     func(ctx context.Context, stopID uuid.UUID, patch service.StopPatch) (domain.Stop, error)
	delete     func(ctx context.Context, id uuid.UUID) error
}

func (m *mockStopService) Create(ctx context.Context, stop domain.Stop) (domain.Stop, error) {
	return m.create(ctx, stop)
}
func (m *mockStopService) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Stop, error) {
	return m.listByTrip(ctx, tripID)
}
func (m *mockStopService) Update(ctx context.Context, stopID uuid.UUID, patch service.StopPatch) (domain.Stop, error) {
	return m.update(ctx, stopID, patch)
}
func (m *mockStopService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ handler.StopServicer = (*mockStopService)(nil)

type mockActivityService struct {
	create     func(ctx context.Context, act domain.Activity) (domain.Activity, error)
	listByStop func(ctx context.Context, stopID uuid.UUID) ([]domain.Activity, error)
	update     func(ctx context.Context, activityID uuid.UUID, patch service.ActivityPatch) (domain.Activity, error)
	delete     func(ctx context.Context, id uuid.UUID) error
}

func (m *mockActivityService) Create(ctx context.Context, act domain.Activity) (domain.Activity, error) {
	return m.create(ctx, act)
}
func (m *mockActivityService) ListByStop(ctx context.Context, stopID uuid.UUID) ([]domain.Activity, error) {
	return m.listByStop(ctx, stopID)
}
func (m *mockActivityService) Update(ctx context.Context, activityID uuid.UUID, patch service.ActivityPatch) (domain.Activity, error) {
	return m.update(ctx, activityID, patch)
}
func (m *mockActivityService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ handler.ActivityServicer = (*mockActivityService)(nil)

// ---- request helpers -------------------------------------------------------

// srv wires mock services into a full router so tests exercise routing and
// URL parameter parsing, not just the handler funcs.
func srv(trips handler.TripServicer, stops handler.StopServicer, acts handler.ActivityServicer) http.Handler {
	return handler.NewServer(trips, stops, acts, nil).Routes()
}

// do sends a request with an optional JSON body through the router and
// returns the recorded response.
func do(t *testing.T, h http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// decode unmarshals the recorded JSON body into out.
func decode(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

// errCode extracts the error.code field from a failed response body.
func errCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	decode(t, rec, &body)
	return body.Error.Code
}

// date builds a midnight-UTC date, matching the date-only field semantics.
func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func strPtr(s string) *string { return &s }
