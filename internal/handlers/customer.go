package handlers

import (
	"net/http"

	"wastepoint/internal/forms"

	"go.uber.org/zap"
)

// CustomerHandler serves the customer self-service portal.
type CustomerHandler struct {
	logr *zap.Logger
}

func NewCustomerHandler(logr *zap.Logger) *CustomerHandler {
	return &CustomerHandler{logr: logr}
}

func (h *CustomerHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	s, ok := sessionOf(w, r)
	if !ok {
		return
	}
	writePage(w, s.Customer.Dashboard(r.Context()))
}

func (h *CustomerHandler) Invoices(w http.ResponseWriter, r *http.Request) {
	s, ok := sessionOf(w, r)
	if !ok {
		return
	}
	writePage(w, s.Customer.Invoices(r.Context(), r.URL.Query().Get("status")))
}

func (h *CustomerHandler) Payments(w http.ResponseWriter, r *http.Request) {
	s, ok := sessionOf(w, r)
	if !ok {
		return
	}
	writePage(w, s.Customer.Payments(r.Context(), r.URL.Query().Get("status")))
}

// Schedules takes ?date=today|upcoming|past (blank for all) and ?status=.
func (h *CustomerHandler) Schedules(w http.ResponseWriter, r *http.Request) {
	s, ok := sessionOf(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	writePage(w, s.Customer.Schedules(r.Context(), q.Get("date"), q.Get("status")))
}

func (h *CustomerHandler) Profile(w http.ResponseWriter, r *http.Request) {
	s, ok := sessionOf(w, r)
	if !ok {
		return
	}
	writePage(w, s.Customer.Profile(r.Context()))
}

func (h *CustomerHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	s, ok := sessionOf(w, r)
	if !ok {
		return
	}
	var draft forms.ProfileDraft
	if !decodeJSON(w, r, &draft) {
		return
	}
	res, err := s.Customer.UpdateProfile(r.Context(), draft)
	writeAction(w, h.logr, http.StatusOK, res, err)
}

func (h *CustomerHandler) PaymentMethods(w http.ResponseWriter, r *http.Request) {
	s, ok := sessionOf(w, r)
	if !ok {
		return
	}
	writePage(w, s.Customer.PaymentMethods(r.Context()))
}

func (h *CustomerHandler) AddPaymentMethod(w http.ResponseWriter, r *http.Request) {
	s, ok := sessionOf(w, r)
	if !ok {
		return
	}
	draft := forms.NewPaymentMethodDraft()
	if !decodeJSON(w, r, &draft) {
		return
	}
	res, err := s.Customer.AddPaymentMethod(r.Context(), draft)
	writeAction(w, h.logr, http.StatusCreated, res, err)
}

func (h *CustomerHandler) TopUp(w http.ResponseWriter, r *http.Request) {
	s, ok := sessionOf(w, r)
	if !ok {
		return
	}
	writePage(w, s.Customer.TopUp())
}

func (h *CustomerHandler) SubmitTopUp(w http.ResponseWriter, r *http.Request) {
	s, ok := sessionOf(w, r)
	if !ok {
		return
	}
	draft := forms.NewTopUpDraft()
	if !decodeJSON(w, r, &draft) {
		return
	}
	res, err := s.Customer.SubmitTopUp(r.Context(), draft)
	writeAction(w, h.logr, http.StatusCreated, res, err)
}
