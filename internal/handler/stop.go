package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/odotravel/globetrotter/internal/domain"
	"github.com/odotravel/globetrotter/internal/service"
)

// createStopRequest is the body of POST /trips/{tripID}/stops.
// Either cityId (a catalog reference, resolved server-side) or cityName (free
// text) identifies the city; both may be omitted.
type createStopRequest struct {
	CityID        *uuid.UUID         `json:"cityId,omitempty"`
	CityName      *string            `json:"cityName,omitempty"`
	ArrivalDate   openapi_types.Date `json:"arrivalDate"`
	DepartureDate openapi_types.Date `json:"departureDate"`
	TransportCost *float64           `json:"transportCost,omitempty"`
	TransportMode *string            `json:"transportMode,omitempty"`
}

// updateStopRequest is the body of PUT /trips/{tripID}/stops/{stopID}.
// Absent fields leave the stored values unchanged.
type updateStopRequest struct {
	CityName      *string             `json:"cityName,omitempty"`
	ArrivalDate   *openapi_types.Date `json:"arrivalDate,omitempty"`
	DepartureDate *openapi_types.Date `json:"departureDate,omitempty"`
	TransportCost *float64            `json:"transportCost,omitempty"`
	TransportMode *string             `json:"transportMode,omitempty"`
}

// stopResponse is the JSON representation of a stop.
type stopResponse struct {
	ID            uuid.UUID          `json:"id"`
	TripID        uuid.UUID          `json:"tripId"`
	CityID        *uuid.UUID         `json:"cityId,omitempty"`
	CityName      string             `json:"cityName"`
	Country       *string            `json:"country,omitempty"`
	ArrivalDate   openapi_types.Date `json:"arrivalDate"`
	DepartureDate openapi_types.Date `json:"departureDate"`
	TransportCost float64            `json:"transportCost"`
	TransportMode *string            `json:"transportMode,omitempty"`
	OrderIndex    int                `json:"orderIndex"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`
}

// CreateStop handles POST /trips/{tripID}/stops.
func (s *Server) CreateStop(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}

	var req createStopRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("invalid request body"))
		return
	}

	stop := domain.Stop{
		TripID:        tripID,
		CityID:        req.CityID,
		CityName:      derefString(req.CityName),
		ArrivalDate:   req.ArrivalDate.Time,
		DepartureDate: req.DepartureDate.Time,
		TransportCost: derefFloat(req.TransportCost),
		TransportMode: derefString(req.TransportMode),
	}

	created, err := s.stops.Create(r.Context(), stop)
	if err != nil {
		writeStopError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, stopToResponse(created))
}

// ListStops handles GET /trips/{tripID}/stops.
// Stops are returned in itinerary order (order_index ascending).
func (s *Server) ListStops(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}

	stops, err := s.stops.ListByTrip(r.Context(), tripID)
	if err != nil {
		internalError(w, err)
		return
	}

	data := make([]stopResponse, len(stops))
	for i, st := range stops {
		data[i] = stopToResponse(st)
	}
	writeJSON(w, http.StatusOK, data)
}

// UpdateStop handles PUT /trips/{tripID}/stops/{stopID}.
func (s *Server) UpdateStop(w http.ResponseWriter, r *http.Request) {
	stopID, ok := pathUUID(w, r, "stopID")
	if !ok {
		return
	}

	var req updateStopRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("invalid request body"))
		return
	}

	patch := service.StopPatch{
		CityName:      req.CityName,
		TransportCost: req.TransportCost,
		TransportMode: req.TransportMode,
	}
	if req.ArrivalDate != nil {
		patch.ArrivalDate = &req.ArrivalDate.Time
	}
	if req.DepartureDate != nil {
		patch.DepartureDate = &req.DepartureDate.Time
	}

	updated, err := s.stops.Update(r.Context(), stopID, patch)
	if err != nil {
		writeStopError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, stopToResponse(updated))
}

// DeleteStop handles DELETE /trips/{tripID}/stops/{stopID}.
func (s *Server) DeleteStop(w http.ResponseWriter, r *http.Request) {
	stopID, ok := pathUUID(w, r, "stopID")
	if !ok {
		return
	}

	if err := s.stops.Delete(r.Context(), stopID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, notFoundBody("stop not found"))
			return
		}
		internalError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// writeStopError maps the consistency engine's failure kinds onto HTTP codes:
// missing parents are 404, malformed or out-of-bounds ranges 422, and sibling
// conflicts 409.
func writeStopError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, notFoundBody("trip or stop not found"))
	case errors.Is(err, domain.ErrInvalidRange):
		writeJSON(w, http.StatusUnprocessableEntity, invalidRangeBody(err))
	case errors.Is(err, domain.ErrOverlap):
		writeJSON(w, http.StatusConflict, overlapBody(err))
	case errors.Is(err, domain.ErrValidation):
		writeJSON(w, http.StatusUnprocessableEntity, validationBody(err))
	default:
		internalError(w, err)
	}
}

// stopToResponse converts a domain.Stop to its JSON representation.
func stopToResponse(st domain.Stop) stopResponse {
	return stopResponse{
		ID:            st.ID,
		TripID:        st.TripID,
		CityID:        st.CityID,
		CityName:      st.CityName,
		Country:       nilIfEmpty(st.Country),
		ArrivalDate:   openapi_types.Date{Time: st.ArrivalDate},
		DepartureDate: openapi_types.Date{Time: st.DepartureDate},
		TransportCost: st.TransportCost,
		TransportMode: nilIfEmpty(st.TransportMode),
		OrderIndex:    st.OrderIndex,
		CreatedAt:     st.CreatedAt,
		UpdatedAt:     st.UpdatedAt,
	}
}
