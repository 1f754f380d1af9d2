package handlers

import (
	"net/http"

	"wastepoint/internal/forms"
	"wastepoint/internal/models"

	"github.com/go-chi/chi/v5"
)

// --- Customers ---

func (h *OperationsHandler) Customers(w http.ResponseWriter, r *http.Request) {
	s, ok := sessionOf(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	writePage(w, s.Operations.Customers(r.Context(), models.CustomerQueryParams{
		Status:       q.Get("status"),
		PaymentTerms: q.Get("payment_terms"),
		Industry:     q.Get("industry"),
		Ordering:     q.Get("ordering"),
		Search:       q.Get("search"),
	}))
}

func (h *OperationsHandler) Customer(w http.ResponseWriter, r *http.Request) {
	s, ok := sessionOf(w, r)
	if !ok {
		return
	}
	writePage(w, s.Operations.Customer(r.Context(), chi.URLParam(r, "id")))
}

func (h *OperationsHandler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	s, ok := sessionOf(w, r)
	if !ok {
		return
	}
	draft := forms.NewCustomerDraft()
	if !decodeJSON(w, r, &draft) {
		return
	}
	res, err := s.Operations.CreateCustomer(r.Context(), draft)
	writeAction(w, h.logr, http.StatusCreated, res, err)
}

func (h *OperationsHandler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	s, ok := sessionOf(w, r)
	if !ok {
		return
	}
	var draft forms.CustomerDraft
	if !decodeJSON(w, r, &draft) {
		return
	}
	res, err := s.Operations.UpdateCustomer(r.Context(), chi.URLParam(r, "id"), draft)
	writeAction(w, h.logr, http.StatusOK, res, err)
}

func (h *OperationsHandler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	s, ok := sessionOf(w, r)
	if !ok {
		return
	}
	res, err := s.Operations.DeleteCustomer(r.Context(), chi.URLParam(r, "id"))
	writeAction(w, h.logr, http.StatusOK, res, err)
}

func (h *OperationsHandler) RestoreCustomer(w http.ResponseWriter, r *http.Request) {
	s, ok := sessionOf(w, r)
	if !ok {
		return
	}
	res, err := s.Operations.RestoreCustomer(r.Context(), chi.URLParam(r, "id"))
	writeAction(w, h.logr, http.StatusOK, res, err)
}

func (h *OperationsHandler) SuspendCustomer(w http.ResponseWriter, r *http.Request) {
	h.setCustomerStatus(w, r, models.CustomerSuspended)
}

func (h *OperationsHandler) ActivateCustomer(w http.ResponseWriter, r *http.Request) {
	h.setCustomerStatus(w, r, models.CustomerActive)
}

func (h *OperationsHandler) setCustomerStatus(w http.ResponseWriter, r *http.Request, status models.CustomerStatus) {
	s, ok := sessionOf(w, r)
	if !ok {
		return
	}
	res, err := s.Operations.SetCustomerStatus(r.Context(), chi.URLParam(r, "id"), string(status))
	writeAction(w, h.logr, http.StatusOK, res, err)
}

func (h *OperationsHandler) AddCustomerNote(w http.ResponseWriter, r *http.Request) {
	s, ok := sessionOf(w, r)
	if !ok {
		return
	}
	var draft forms.NoteDraft
	if !decodeJSON(w, r, &draft) {
		return
	}
	res, err := s.Operations.AddCustomerNote(r.Context(), chi.URLParam(r, "id"), draft)
	writeAction(w, h.logr, http.StatusCreated, res, err)
}

func (h *OperationsHandler) DeleteCustomerNote(w http.ResponseWriter, r *http.Request) {
	s, ok := sessionOf(w, r)
	if !ok {
		return
	}
	res, err := s.Operations.DeleteCustomerNote(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "noteID"))
	writeAction(w, h.logr, http.StatusOK, res, err)
}

func (h *OperationsHandler) PinCustomerNote(w http.ResponseWriter, r *http.Request) {
	h.setNotePinned(w, r, true)
}

func (h *OperationsHandler) UnpinCustomerNote(w http.ResponseWriter, r *http.Request) {
	h.setNotePinned(w, r, false)
}

func (h *OperationsHandler) setNotePinned(w http.ResponseWriter, r *http.Request, pinned bool) {
	s, ok := sessionOf(w, r)
	if !ok {
		return
	}
	res, err := s.Operations.SetNotePinned(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "noteID"), pinned)
	writeAction(w, h.logr, http.StatusOK, res, err)
}

func (h *OperationsHandler) SetDefaultPaymentMethod(w http.ResponseWriter, r *http.Request) {
	s, ok := sessionOf(w, r)
	if !ok {
		return
	}
	res, err := s.Operations.SetDefaultPaymentMethod(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "methodID"))
	writeAction(w, h.logr, http.StatusOK, res, err)
}

func (h *OperationsHandler) DeleteCustomerPaymentMethod(w http.ResponseWriter, r *http.Request) {
	s, ok := sessionOf(w, r)
	if !ok {
		return
	}
	res, err := s.Operations.DeleteCustomerPaymentMethod(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "methodID"))
	writeAction(w, h.logr, http.StatusOK, res, err)
}
