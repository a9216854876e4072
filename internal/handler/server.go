// Package handler implements the HTTP handlers for the Globetrotter API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (health.go, trip.go, stop.go, activity.go) but all share the same
// Server struct so they can access its dependencies.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/odotravel/globetrotter/internal/domain"
	"github.com/odotravel/globetrotter/internal/service"
)

// TripServicer defines the business operations the trip handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type TripServicer interface {
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Trip, error)
	Update(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Copy(ctx context.Context, tripID, newOwnerID uuid.UUID) (domain.Trip, error)
}

// StopServicer defines the business operations the stop handlers depend on.
type StopServicer interface {
	Create(ctx context.Context, stop domain.Stop) (domain.Stop, error)
	ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Stop, error)
	Update(ctx context.Context, stopID uuid.UUID, patch service.StopPatch) (domain.Stop, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ActivityServicer defines the business operations the activity handlers
// depend on.
type ActivityServicer interface {
	Create(ctx context.Context, act domain.Activity) (domain.Activity, error)
	ListByStop(ctx context.Context, stopID uuid.UUID) ([]domain.Activity, error)
	Update(ctx context.Context, activityID uuid.UUID, patch service.ActivityPatch) (domain.Activity, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Server holds the handler dependencies for all API endpoints.
// Methods are in domain-specific files but all operate on this struct.
type Server struct {
	trips      TripServicer
	stops      StopServicer
	activities ActivityServicer
	openapi    []byte
}

// NewServer constructs the Server with all its dependencies.
// openapi is the raw embedded spec served at /openapi.yaml; pass nil to
// disable the route.
func NewServer(trips TripServicer, stops StopServicer, activities ActivityServicer, openapi []byte) *Server {
	return &Server{trips: trips, stops: stops, activities: activities, openapi: openapi}
}

// Routes returns the chi router with every API endpoint registered.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	if s.openapi != nil {
		r.Get("/openapi.yaml", s.GetOpenAPI)
	}

	r.Route("/trips", func(r chi.Router) {
		r.Post("/", s.CreateTrip)
		r.Get("/", s.ListTrips)

		r.Route("/{tripID}", func(r chi.Router) {
			r.Get("/", s.GetTrip)
			r.Put("/", s.UpdateTrip)
			r.Delete("/", s.DeleteTrip)
			r.Post("/copy", s.CopyTrip)

			r.Route("/stops", func(r chi.Router) {
				r.Post("/", s.CreateStop)
				r.Get("/", s.ListStops)

				r.Route("/{stopID}", func(r chi.Router) {
					r.Put("/", s.UpdateStop)
					r.Delete("/", s.DeleteStop)

					r.Route("/activities", func(r chi.Router) {
						r.Post("/", s.CreateActivity)
						r.Get("/", s.ListActivities)
						r.Put("/{activityID}", s.UpdateActivity)
						r.Delete("/{activityID}", s.DeleteActivity)
					})
				})
			})
		})
	})

	return r
}

// pathUUID parses the named chi URL parameter as a UUID.
// The second return value is false when the parameter is malformed, in which
// case a 404 has already been written: an unparseable ID can never name an
// existing resource.
func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		writeJSON(w, http.StatusNotFound, notFoundBody(name+" is not a valid id"))
		return uuid.UUID{}, false
	}
	return id, true
}
