package handlers

import (
	"net/http"

	"wastepoint/internal/forms"
	"wastepoint/internal/navigation"
	"wastepoint/internal/pages"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CollectorHandler serves the collector's mobile portal.
type CollectorHandler struct {
	logr *zap.Logger
}

func NewCollectorHandler(logr *zap.Logger) *CollectorHandler {
	return &CollectorHandler{logr: logr}
}

func (h *CollectorHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	s, ok := sessionOf(w, r)
	if !ok {
		return
	}
	writePage(w, s.Collector.Dashboard(r.Context()))
}

func (h *CollectorHandler) Schedules(w http.ResponseWriter, r *http.Request) {
	s, ok := sessionOf(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	writePage(w, s.Collector.Schedules(r.Context(), pages.ScheduleFilter{
		Date:   q.Get("date"),
		Status: q.Get("status"),
		Search: q.Get("search"),
	}))
}

func (h *CollectorHandler) ScheduleDetail(w http.ResponseWriter, r *http.Request) {
	s, ok := sessionOf(w, r)
	if !ok {
		return
	}
	writePage(w, s.Collector.ScheduleDetail(r.Context(), chi.URLParam(r, "id")))
}

func (h *CollectorHandler) StartSchedule(w http.ResponseWriter, r *http.Request) {
	s, ok := sessionOf(w, r)
	if !ok {
		return
	}
	res, err := s.Collector.StartSchedule(r.Context(), chi.URLParam(r, "id"))
	writeAction(w, h.logr, http.StatusOK, res, err)
}

func (h *CollectorHandler) CompleteSchedule(w http.ResponseWriter, r *http.Request) {
	s, ok := sessionOf(w, r)
	if !ok {
		return
	}
	var draft forms.CompleteDraft
	if !decodeJSON(w, r, &draft) {
		return
	}
	res, err := s.Collector.CompleteSchedule(r.Context(), chi.URLParam(r, "id"), draft)
	writeAction(w, h.logr, http.StatusOK, res, err)
}

// Routes lists the assigned routes and loads them onto the session map.
// ?route= picks the selected route.
func (h *CollectorHandler) Routes(w http.ResponseWriter, r *http.Request) {
	s, ok := sessionOf(w, r)
	if !ok {
		return
	}
	writePage(w, s.Collector.Routes(r.Context(), r.URL.Query().Get("route")))
}

func (h *CollectorHandler) Map(w http.ResponseWriter, r *http.Request) {
	s, ok := sessionOf(w, r)
	if !ok {
		return
	}
	payload, err := s.Collector.Map()
	h.writeMap(w, payload, err)
}

type selectRequest struct {
	RouteID string `json:"route_id"`
}

// SelectRoute changes the highlighted route. ?wait=1 blocks until navigation settles.
func (h *CollectorHandler) SelectRoute(w http.ResponseWriter, r *http.Request) {
	s, ok := sessionOf(w, r)
	if !ok {
		return
	}
	var req selectRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.RouteID == "" {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error:  "Validation failed",
			Fields: map[string][]string{"route_id": {"Route is required"}},
		})
		return
	}
	payload, err := s.Collector.SelectRoute(r.Context(), req.RouteID, wantWait(r))
	h.writeMap(w, payload, err)
}

// locationRequest is what the browser reports after a geolocation attempt:
// either a position or the reason it failed.
type locationRequest struct {
	Lat   *float64 `json:"lat"`
	Lng   *float64 `json:"lng"`
	Error string   `json:"error"`
}

func (h *CollectorHandler) Locate(w http.ResponseWriter, r *http.Request) {
	s, ok := sessionOf(w, r)
	if !ok {
		return
	}
	var req locationRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Error != "" || req.Lat == nil || req.Lng == nil {
		reason := req.Error
		if reason == "" {
			reason = "position unavailable"
		}
		payload, err := s.Collector.LocateFailed(reason)
		h.writeMap(w, payload, err)
		return
	}
	if *req.Lat < -90 || *req.Lat > 90 || *req.Lng < -180 || *req.Lng > 180 {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error:  "Validation failed",
			Fields: map[string][]string{"lat": {"Coordinates are out of range"}},
		})
		return
	}
	pos := navigation.LatLng{Lat: *req.Lat, Lng: *req.Lng}
	payload, err := s.Collector.Locate(r.Context(), pos, wantWait(r))
	h.writeMap(w, payload, err)
}

func (h *CollectorHandler) Profile(w http.ResponseWriter, r *http.Request) {
	s, ok := sessionOf(w, r)
	if !ok {
		return
	}
	writePage(w, s.Collector.Profile(r.Context()))
}

func (h *CollectorHandler) writeMap(w http.ResponseWriter, payload pages.MapPayload, err error) {
	if err != nil {
		writeError(w, h.logr, err)
		return
	}
	writeJSON(w, http.StatusOK, payload)
}
