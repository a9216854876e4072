package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/odotravel/globetrotter/internal/domain"
)

// createTripRequest is the body of POST /trips.
// Dates are date-only strings ("2006-01-02"); times of day never appear on
// trips. OwnerID identifies the user the trip belongs to.
type createTripRequest struct {
	OwnerID       uuid.UUID          `json:"ownerId"`
	Name          string             `json:"name"`
	Description   *string            `json:"description,omitempty"`
	StartDate     openapi_types.Date `json:"startDate"`
	EndDate       openapi_types.Date `json:"endDate"`
	Budget        *float64           `json:"budget,omitempty"`
	CoverPhotoURL *string            `json:"coverPhotoUrl,omitempty"`
}

// updateTripRequest is the body of PUT /trips/{tripID}. All mutable scalar
// fields are overwritten with the supplied values; ownership never changes.
type updateTripRequest struct {
	Name          string             `json:"name"`
	Description   *string            `json:"description,omitempty"`
	StartDate     openapi_types.Date `json:"startDate"`
	EndDate       openapi_types.Date `json:"endDate"`
	Budget        *float64           `json:"budget,omitempty"`
	CoverPhotoURL *string            `json:"coverPhotoUrl,omitempty"`
}

// copyTripRequest is the body of POST /trips/{tripID}/copy.
type copyTripRequest struct {
	OwnerID uuid.UUID `json:"ownerId"`
}

// tripResponse is the JSON representation of a trip.
type tripResponse struct {
	ID            uuid.UUID          `json:"id"`
	OwnerID       uuid.UUID          `json:"ownerId"`
	Name          string             `json:"name"`
	Description   *string            `json:"description,omitempty"`
	StartDate     openapi_types.Date `json:"startDate"`
	EndDate       openapi_types.Date `json:"endDate"`
	Budget        float64            `json:"budget"`
	CoverPhotoURL *string            `json:"coverPhotoUrl,omitempty"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`
}

// CreateTrip handles POST /trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var req createTripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("invalid request body"))
		return
	}

	trip := domain.Trip{
		OwnerID:       req.OwnerID,
		Name:          req.Name,
		Description:   derefString(req.Description),
		StartDate:     req.StartDate.Time,
		EndDate:       req.EndDate.Time,
		Budget:        derefFloat(req.Budget),
		CoverPhotoURL: derefString(req.CoverPhotoURL),
	}

	created, err := s.trips.Create(r.Context(), trip)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			writeJSON(w, http.StatusNotFound, notFoundBody("owner not found"))
		case errors.Is(err, domain.ErrInvalidRange):
			writeJSON(w, http.StatusUnprocessableEntity, invalidRangeBody(err))
		case errors.Is(err, domain.ErrValidation):
			writeJSON(w, http.StatusUnprocessableEntity, validationBody(err))
		default:
			internalError(w, err)
		}
		return
	}

	writeJSON(w, http.StatusCreated, tripToResponse(created))
}

// ListTrips handles GET /trips?ownerId=. The owner filter is required: trips
// are always viewed as somebody's trips.
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	ownerID, err := uuid.Parse(r.URL.Query().Get("ownerId"))
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("ownerId query parameter is required"))
		return
	}

	trips, err := s.trips.ListByOwner(r.Context(), ownerID)
	if err != nil {
		internalError(w, err)
		return
	}

	data := make([]tripResponse, len(trips))
	for i, t := range trips {
		data[i] = tripToResponse(t)
	}
	writeJSON(w, http.StatusOK, data)
}

// GetTrip handles GET /trips/{tripID}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}

	trip, err := s.trips.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, notFoundBody("trip not found"))
			return
		}
		internalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tripToResponse(trip))
}

// UpdateTrip handles PUT /trips/{tripID}.
func (s *Server) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}

	var req updateTripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("invalid request body"))
		return
	}

	trip := domain.Trip{
		ID:            id,
		Name:          req.Name,
		Description:   derefString(req.Description),
		StartDate:     req.StartDate.Time,
		EndDate:       req.EndDate.Time,
		Budget:        derefFloat(req.Budget),
		CoverPhotoURL: derefString(req.CoverPhotoURL),
	}

	updated, err := s.trips.Update(r.Context(), trip)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			writeJSON(w, http.StatusNotFound, notFoundBody("trip not found"))
		case errors.Is(err, domain.ErrInvalidRange):
			writeJSON(w, http.StatusUnprocessableEntity, invalidRangeBody(err))
		case errors.Is(err, domain.ErrValidation):
			writeJSON(w, http.StatusUnprocessableEntity, validationBody(err))
		default:
			internalError(w, err)
		}
		return
	}

	writeJSON(w, http.StatusOK, tripToResponse(updated))
}

// DeleteTrip handles DELETE /trips/{tripID}.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}

	if err := s.trips.Delete(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, notFoundBody("trip not found"))
			return
		}
		internalError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// CopyTrip handles POST /trips/{tripID}/copy.
func (s *Server) CopyTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}

	var req copyTripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("invalid request body"))
		return
	}

	copied, err := s.trips.Copy(r.Context(), id, req.OwnerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, notFoundBody("trip or owner not found"))
			return
		}
		internalError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, tripToResponse(copied))
}

// --- mapping helpers --------------------------------------------------------

// tripToResponse converts a domain.Trip into its JSON representation.
// Empty strings become nil pointers for optional fields so they are omitted
// from the response rather than sent as empty strings.
func tripToResponse(t domain.Trip) tripResponse {
	return tripResponse{
		ID:            t.ID,
		OwnerID:       t.OwnerID,
		Name:          t.Name,
		Description:   nilIfEmpty(t.Description),
		StartDate:     openapi_types.Date{Time: t.StartDate},
		EndDate:       openapi_types.Date{Time: t.EndDate},
		Budget:        t.Budget,
		CoverPhotoURL: nilIfEmpty(t.CoverPhotoURL),
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

// derefString safely dereferences a *string, returning "" when nil.
func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// derefFloat safely dereferences a *float64, returning 0 when nil.
func derefFloat(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

// nilIfEmpty converts an empty string to a nil pointer.
// Used when mapping domain strings to optional response fields.
func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
