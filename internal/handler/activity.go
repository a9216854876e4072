package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/odotravel/globetrotter/internal/domain"
	"github.com/odotravel/globetrotter/internal/service"
)

// activityRequest is the body of both POST and PUT activity endpoints.
// The wire names follow the web client: "type" carries the category and
// "notes" the free-text note. startTime/endTime are "15:04" strings; the
// stored duration is derived from them here at the boundary, never supplied
// directly.
type activityRequest struct {
	Name      string   `json:"name"`
	Cost      *float64 `json:"cost,omitempty"`
	Type      *string  `json:"type,omitempty"`
	Notes     *string  `json:"notes,omitempty"`
	StartTime *string  `json:"startTime,omitempty"`
	EndTime   *string  `json:"endTime,omitempty"`
	DayOffset *int     `json:"dayOffset,omitempty"`
}

// activityResponse is the JSON representation of an activity.
type activityResponse struct {
	ID              uuid.UUID `json:"id"`
	StopID          uuid.UUID `json:"stopId"`
	Name            string    `json:"name"`
	Cost            float64   `json:"cost"`
	Type            *string   `json:"type,omitempty"`
	Notes           *string   `json:"notes,omitempty"`
	StartTime       *string   `json:"startTime,omitempty"`
	DurationMinutes *int      `json:"durationMinutes,omitempty"`
	DayOffset       int       `json:"dayOffset"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// CreateActivity handles POST /trips/{tripID}/stops/{stopID}/activities.
func (s *Server) CreateActivity(w http.ResponseWriter, r *http.Request) {
	stopID, ok := pathUUID(w, r, "stopID")
	if !ok {
		return
	}

	var req activityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("invalid request body"))
		return
	}

	act := domain.Activity{
		StopID:          stopID,
		Name:            req.Name,
		Cost:            derefFloat(req.Cost),
		Category:        derefString(req.Type),
		Note:            derefString(req.Notes),
		StartTime:       req.StartTime,
		DurationMinutes: deriveDuration(req.StartTime, req.EndTime),
		DayOffset:       derefInt(req.DayOffset),
	}

	created, err := s.activities.Create(r.Context(), act)
	if err != nil {
		writeActivityError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, activityToResponse(created))
}

// ListActivities handles GET /trips/{tripID}/stops/{stopID}/activities.
func (s *Server) ListActivities(w http.ResponseWriter, r *http.Request) {
	stopID, ok := pathUUID(w, r, "stopID")
	if !ok {
		return
	}

	acts, err := s.activities.ListByStop(r.Context(), stopID)
	if err != nil {
		internalError(w, err)
		return
	}

	data := make([]activityResponse, len(acts))
	for i, a := range acts {
		data[i] = activityToResponse(a)
	}
	writeJSON(w, http.StatusOK, data)
}

// UpdateActivity handles PUT .../activities/{activityID}.
// Scalar fields merge partially; the time window (startTime, derived
// duration, dayOffset) is replaced wholesale on every update.
func (s *Server) UpdateActivity(w http.ResponseWriter, r *http.Request) {
	activityID, ok := pathUUID(w, r, "activityID")
	if !ok {
		return
	}

	var req activityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("invalid request body"))
		return
	}

	patch := service.ActivityPatch{
		Cost:            req.Cost,
		Category:        req.Type,
		Note:            req.Notes,
		StartTime:       req.StartTime,
		DurationMinutes: deriveDuration(req.StartTime, req.EndTime),
		DayOffset:       derefInt(req.DayOffset),
	}
	if req.Name != "" {
		patch.Name = &req.Name
	}

	updated, err := s.activities.Update(r.Context(), activityID, patch)
	if err != nil {
		writeActivityError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, activityToResponse(updated))
}

// DeleteActivity handles DELETE .../activities/{activityID}.
func (s *Server) DeleteActivity(w http.ResponseWriter, r *http.Request) {
	activityID, ok := pathUUID(w, r, "activityID")
	if !ok {
		return
	}

	if err := s.activities.Delete(r.Context(), activityID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, notFoundBody("activity not found"))
			return
		}
		internalError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func writeActivityError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, notFoundBody("stop or activity not found"))
	case errors.Is(err, domain.ErrValidation):
		writeJSON(w, http.StatusUnprocessableEntity, validationBody(err))
	default:
		internalError(w, err)
	}
}

// deriveDuration computes the stored duration in minutes from the supplied
// start and end times. The window is treated as unspecified — nil, not an
// error — when either time is absent or unparseable, or when the end precedes
// the start (overnight activities are not modelled; the activity is still
// accepted without a duration).
func deriveDuration(start, end *string) *int {
	if start == nil || end == nil {
		return nil
	}
	st, err := time.Parse("15:04", *start)
	if err != nil {
		return nil
	}
	et, err := time.Parse("15:04", *end)
	if err != nil {
		return nil
	}
	if et.Before(st) {
		return nil
	}
	minutes := int(et.Sub(st).Minutes())
	return &minutes
}

// derefInt safely dereferences a *int, returning 0 when nil.
func derefInt(i *int) int {
	if i == nil {
		return 0
	}
	return *i
}

// activityToResponse converts a domain.Activity to its JSON representation.
func activityToResponse(a domain.Activity) activityResponse {
	return activityResponse{
		ID:              a.ID,
		StopID:          a.StopID,
		Name:            a.Name,
		Cost:            a.Cost,
		Type:            nilIfEmpty(a.Category),
		Notes:           nilIfEmpty(a.Note),
		StartTime:       a.StartTime,
		DurationMinutes: a.DurationMinutes,
		DayOffset:       a.DayOffset,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}
