package handlers

import (
	"net/http"
	"time"

	"wastepoint/internal/forms"
	"wastepoint/internal/models"
	"wastepoint/internal/pages"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// OperationsHandler serves the staff console: service areas, routes, collectors, schedules and customers.
type OperationsHandler struct {
	logr *zap.Logger
	now  func() time.Time
}

func NewOperationsHandler(logr *zap.Logger) *OperationsHandler {
	return &OperationsHandler{logr: logr, now: time.Now}
}

// --- Service areas ---

func (h *OperationsHandler) ServiceAreas(w http.ResponseWriter, r *http.Request) {
	s, ok := sessionOf(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	writePage(w, s.Operations.ServiceAreas(r.Context(), models.ServiceAreaQueryParams{
		Status:   q.Get("status"),
		Province: q.Get("province"),
		District: q.Get("district"),
		Search:   q.Get("search"),
	}))
}

func (h *OperationsHandler) ServiceArea(w http.ResponseWriter, r *http.Request) {
	s, ok := sessionOf(w, r)
	if !ok {
		return
	}
	writePage(w, s.Operations.ServiceArea(r.Context(), chi.URLParam(r, "id")))
}

func (h *OperationsHandler) CreateServiceArea(w http.ResponseWriter, r *http.Request) {
	s, ok := sessionOf(w, r)
	if !ok {
		return
	}
	draft := forms.NewServiceAreaDraft()
	if !decodeJSON(w, r, &draft) {
		return
	}
	res, err := s.Operations.CreateServiceArea(r.Context(), draft)
	writeAction(w, h.logr, http.StatusCreated, res, err)
}

func (h *OperationsHandler) UpdateServiceArea(w http.ResponseWriter, r *http.Request) {
	s, ok := sessionOf(w, r)
	if !ok {
		return
	}
	var draft forms.ServiceAreaDraft
	if !decodeJSON(w, r, &draft) {
		return
	}
	res, err := s.Operations.UpdateServiceArea(r.Context(), chi.URLParam(r, "id"), draft)
	writeAction(w, h.logr, http.StatusOK, res, err)
}

func (h *OperationsHandler) DeleteServiceArea(w http.ResponseWriter, r *http.Request) {
	s, ok := sessionOf(w, r)
	if !ok {
		return
	}
	res, err := s.Operations.DeleteServiceArea(r.Context(), chi.URLParam(r, "id"))
	writeAction(w, h.logr, http.StatusOK, res, err)
}

func (h *OperationsHandler) ActivateServiceArea(w http.ResponseWriter, r *http.Request) {
	h.setServiceAreaActive(w, r, true)
}

func (h *OperationsHandler) DeactivateServiceArea(w http.ResponseWriter, r *http.Request) {
	h.setServiceAreaActive(w, r, false)
}

func (h *OperationsHandler) setServiceAreaActive(w http.ResponseWriter, r *http.Request, active bool) {
	s, ok := sessionOf(w, r)
	if !ok {
		return
	}
	res, err := s.Operations.SetServiceAreaActive(r.Context(), chi.URLParam(r, "id"), active)
	writeAction(w, h.logr, http.StatusOK, res, err)
}

// --- Routes ---

func (h *OperationsHandler) Routes(w http.ResponseWriter, r *http.Request) {
	s, ok := sessionOf(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	writePage(w, s.Operations.Routes(r.Context(), models.RouteQueryParams{
		Status:      q.Get("status"),
		ServiceArea: q.Get("service_area"),
		Frequency:   q.Get("frequency"),
		Search:      q.Get("search"),
	}))
}

func (h *OperationsHandler) Route(w http.ResponseWriter, r *http.Request) {
	s, ok := sessionOf(w, r)
	if !ok {
		return
	}
	writePage(w, s.Operations.Route(r.Context(), chi.URLParam(r, "id")))
}

func (h *OperationsHandler) CreateRoute(w http.ResponseWriter, r *http.Request) {
	s, ok := sessionOf(w, r)
	if !ok {
		return
	}
	draft := forms.NewRouteDraft()
	if !decodeJSON(w, r, &draft) {
		return
	}
	res, err := s.Operations.CreateRoute(r.Context(), draft)
	writeAction(w, h.logr, http.StatusCreated, res, err)
}

func (h *OperationsHandler) UpdateRoute(w http.ResponseWriter, r *http.Request) {
	s, ok := sessionOf(w, r)
	if !ok {
		return
	}
	var draft forms.RouteDraft
	if !decodeJSON(w, r, &draft) {
		return
	}
	res, err := s.Operations.UpdateRoute(r.Context(), chi.URLParam(r, "id"), draft)
	writeAction(w, h.logr, http.StatusOK, res, err)
}

func (h *OperationsHandler) DeleteRoute(w http.ResponseWriter, r *http.Request) {
	s, ok := sessionOf(w, r)
	if !ok {
		return
	}
	res, err := s.Operations.DeleteRoute(r.Context(), chi.URLParam(r, "id"))
	writeAction(w, h.logr, http.StatusOK, res, err)
}

type assignRequest struct {
	Collector string `json:"collector"`
}

func (h *OperationsHandler) AssignCollector(w http.ResponseWriter, r *http.Request) {
	s, ok := sessionOf(w, r)
	if !ok {
		return
	}
	var req assignRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	res, err := s.Operations.AssignCollector(r.Context(), chi.URLParam(r, "id"), req.Collector)
	writeAction(w, h.logr, http.StatusOK, res, err)
}

func (h *OperationsHandler) GenerateSchedules(w http.ResponseWriter, r *http.Request) {
	s, ok := sessionOf(w, r)
	if !ok {
		return
	}
	var draft forms.GenerateDraft
	if !decodeJSON(w, r, &draft) {
		return
	}
	res, err := s.Operations.GenerateSchedules(r.Context(), chi.URLParam(r, "id"), draft)
	writeAction(w, h.logr, http.StatusCreated, res, err)
}

// --- Collectors ---

func (h *OperationsHandler) Collectors(w http.ResponseWriter, r *http.Request) {
	s, ok := sessionOf(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	writePage(w, s.Operations.Collectors(r.Context(), models.CollectorQueryParams{
		Status:         q.Get("status"),
		ServiceArea:    q.Get("service_area"),
		EmploymentType: q.Get("employment_type"),
		Search:         q.Get("search"),
	}))
}

func (h *OperationsHandler) Collector(w http.ResponseWriter, r *http.Request) {
	s, ok := sessionOf(w, r)
	if !ok {
		return
	}
	writePage(w, s.Operations.Collector(r.Context(), chi.URLParam(r, "id")))
}

func (h *OperationsHandler) CreateCollector(w http.ResponseWriter, r *http.Request) {
	s, ok := sessionOf(w, r)
	if !ok {
		return
	}
	draft := forms.NewCollectorDraft(h.now())
	if !decodeJSON(w, r, &draft) {
		return
	}
	res, err := s.Operations.CreateCollector(r.Context(), draft)
	writeAction(w, h.logr, http.StatusCreated, res, err)
}

func (h *OperationsHandler) UpdateCollector(w http.ResponseWriter, r *http.Request) {
	s, ok := sessionOf(w, r)
	if !ok {
		return
	}
	var draft forms.CollectorDraft
	if !decodeJSON(w, r, &draft) {
		return
	}
	res, err := s.Operations.UpdateCollector(r.Context(), chi.URLParam(r, "id"), draft)
	writeAction(w, h.logr, http.StatusOK, res, err)
}

func (h *OperationsHandler) DeleteCollector(w http.ResponseWriter, r *http.Request) {
	s, ok := sessionOf(w, r)
	if !ok {
		return
	}
	res, err := s.Operations.DeleteCollector(r.Context(), chi.URLParam(r, "id"))
	writeAction(w, h.logr, http.StatusOK, res, err)
}

type statusRequest struct {
	Status string `json:"status"`
}

func (h *OperationsHandler) SetCollectorStatus(w http.ResponseWriter, r *http.Request) {
	s, ok := sessionOf(w, r)
	if !ok {
		return
	}
	var req statusRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	res, err := s.Operations.SetCollectorStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	writeAction(w, h.logr, http.StatusOK, res, err)
}

// --- Schedules ---

// Schedules takes ?tab= (today, upcoming, overdue, completed, all), ?search=
// and the upstream list filters.
func (h *OperationsHandler) Schedules(w http.ResponseWriter, r *http.Request) {
	s, ok := sessionOf(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	writePage(w, s.Operations.Schedules(r.Context(), pages.StaffScheduleFilter{
		Tab:    q.Get("tab"),
		Search: q.Get("search"),
		Params: models.ScheduleQueryParams{
			Status:        q.Get("status"),
			Route:         q.Get("route"),
			Collector:     q.Get("collector"),
			ScheduledDate: q.Get("scheduled_date"),
			DateFrom:      q.Get("date_from"),
			DateTo:        q.Get("date_to"),
		},
	}))
}

func (h *OperationsHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	s, ok := sessionOf(w, r)
	if !ok {
		return
	}
	writePage(w, s.Operations.Schedule(r.Context(), chi.URLParam(r, "id")))
}

// ScheduleForm prepares a blank create form; ?route= pre-fills that route's defaults.
func (h *OperationsHandler) ScheduleForm(w http.ResponseWriter, r *http.Request) {
	s, ok := sessionOf(w, r)
	if !ok {
		return
	}
	writePage(w, s.Operations.ScheduleForm(r.Context(), r.URL.Query().Get("route"), h.now()))
}

func (h *OperationsHandler) CreateSchedule(w http.ResponseWriter, r *http.Request) {
	s, ok := sessionOf(w, r)
	if !ok {
		return
	}
	draft := forms.NewScheduleDraft(h.now())
	if !decodeJSON(w, r, &draft) {
		return
	}
	res, err := s.Operations.CreateSchedule(r.Context(), draft)
	writeAction(w, h.logr, http.StatusCreated, res, err)
}

func (h *OperationsHandler) UpdateSchedule(w http.ResponseWriter, r *http.Request) {
	s, ok := sessionOf(w, r)
	if !ok {
		return
	}
	var draft forms.ScheduleDraft
	if !decodeJSON(w, r, &draft) {
		return
	}
	res, err := s.Operations.UpdateSchedule(r.Context(), chi.URLParam(r, "id"), draft)
	writeAction(w, h.logr, http.StatusOK, res, err)
}

func (h *OperationsHandler) DeleteSchedule(w http.ResponseWriter, r *http.Request) {
	s, ok := sessionOf(w, r)
	if !ok {
		return
	}
	res, err := s.Operations.DeleteSchedule(r.Context(), chi.URLParam(r, "id"))
	writeAction(w, h.logr, http.StatusOK, res, err)
}

func (h *OperationsHandler) StartSchedule(w http.ResponseWriter, r *http.Request) {
	s, ok := sessionOf(w, r)
	if !ok {
		return
	}
	res, err := s.Operations.StartSchedule(r.Context(), chi.URLParam(r, "id"))
	writeAction(w, h.logr, http.StatusOK, res, err)
}

func (h *OperationsHandler) CompleteSchedule(w http.ResponseWriter, r *http.Request) {
	s, ok := sessionOf(w, r)
	if !ok {
		return
	}
	var draft forms.CompleteDraft
	if !decodeJSON(w, r, &draft) {
		return
	}
	res, err := s.Operations.CompleteSchedule(r.Context(), chi.URLParam(r, "id"), draft)
	writeAction(w, h.logr, http.StatusOK, res, err)
}

type cancelRequest struct {
	Reason string `json:"reason"`
}

func (h *OperationsHandler) CancelSchedule(w http.ResponseWriter, r *http.Request) {
	s, ok := sessionOf(w, r)
	if !ok {
		return
	}
	var req cancelRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	res, err := s.Operations.CancelSchedule(r.Context(), chi.URLParam(r, "id"), req.Reason)
	writeAction(w, h.logr, http.StatusOK, res, err)
}

func (h *OperationsHandler) MarkScheduleMissed(w http.ResponseWriter, r *http.Request) {
	s, ok := sessionOf(w, r)
	if !ok {
		return
	}
	res, err := s.Operations.MarkScheduleMissed(r.Context(), chi.URLParam(r, "id"))
	writeAction(w, h.logr, http.StatusOK, res, err)
}
