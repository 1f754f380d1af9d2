package services

import (
	"context"

	"wastepoint/internal/apiclient"
	"wastepoint/internal/models"
)

const (
	customersBase      = "/customers/"
	customerNotesBase  = "/customer-notes/"
	paymentMethodsBase = "/payment-methods/"
)

// CustomerService is the staff customer directory with its notes and stored payment methods.
type CustomerService struct {
	api *apiclient.Client
}

func NewCustomerService(api *apiclient.Client) *CustomerService {
	return &CustomerService{api: api}
}

func (s *CustomerService) List(
	ctx context.Context,
	params models.CustomerQueryParams,
) (*models.ListResponse[models.Customer], error) {
	q := values(
		"status", params.Status,
		"payment_terms", params.PaymentTerms,
		"industry", params.Industry,
		"ordering", params.Ordering,
		"search", params.Search,
	)
	var out models.ListResponse[models.Customer]
	if err := s.api.Get(ctx, customersBase, q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *CustomerService) Get(ctx context.Context, id string) (*models.Customer, error) {
	if err := checkID("customer", id); err != nil {
		return nil, err
	}
	var out models.Customer
	if err := s.api.Get(ctx, customersBase+id+"/", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *CustomerService) Stats(ctx context.Context) (*models.CustomerStats, error) {
	var out models.CustomerStats
	if err := s.api.Get(ctx, customersBase+"stats/", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Search is the quick lookup used by pickers; it answers a bare array.
func (s *CustomerService) Search(ctx context.Context, q string) ([]models.Customer, error) {
	var out []models.Customer
	if err := s.api.Get(ctx, customersBase+"search/", values("q", q), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *CustomerService) Create(ctx context.Context, payload models.CustomerPayload) (*models.Customer, error) {
	var out models.Customer
	if err := s.api.Post(ctx, customersBase, payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *CustomerService) Update(ctx context.Context, id string, payload models.CustomerPayload) (*models.Customer, error) {
	if err := checkID("customer", id); err != nil {
		return nil, err
	}
	var out models.Customer
	if err := s.api.Patch(ctx, customersBase+id+"/", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete archives the customer; Restore brings it back.
func (s *CustomerService) Delete(ctx context.Context, id string) error {
	if err := checkID("customer", id); err != nil {
		return err
	}
	return s.api.Delete(ctx, customersBase+id+"/")
}

func (s *CustomerService) Restore(ctx context.Context, id string) (*models.Customer, error) {
	return s.action(ctx, id, "restore/")
}

func (s *CustomerService) Suspend(ctx context.Context, id string) (*models.Customer, error) {
	return s.action(ctx, id, "suspend/")
}

func (s *CustomerService) Activate(ctx context.Context, id string) (*models.Customer, error) {
	return s.action(ctx, id, "activate/")
}

func (s *CustomerService) PaymentMethods(ctx context.Context, id string) ([]models.CustomerPaymentMethod, error) {
	if err := checkID("customer", id); err != nil {
		return nil, err
	}
	var out []models.CustomerPaymentMethod
	if err := s.api.Get(ctx, customersBase+id+"/payment_methods/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *CustomerService) Notes(ctx context.Context, id string) ([]models.CustomerNote, error) {
	if err := checkID("customer", id); err != nil {
		return nil, err
	}
	var out []models.CustomerNote
	if err := s.api.Get(ctx, customersBase+id+"/notes/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *CustomerService) CreateNote(ctx context.Context, payload models.CustomerNotePayload) (*models.CustomerNote, error) {
	if err := checkID("customer", payload.Customer); err != nil {
		return nil, err
	}
	var out models.CustomerNote
	if err := s.api.Post(ctx, customerNotesBase, payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *CustomerService) DeleteNote(ctx context.Context, id string) error {
	if err := checkID("note", id); err != nil {
		return err
	}
	return s.api.Delete(ctx, customerNotesBase+id+"/")
}

// SetNotePinned pins or unpins a note.
func (s *CustomerService) SetNotePinned(ctx context.Context, id string, pinned bool) (*models.CustomerNote, error) {
	if err := checkID("note", id); err != nil {
		return nil, err
	}
	action := "unpin/"
	if pinned {
		action = "pin/"
	}
	var out models.Envelope[models.CustomerNote]
	if err := s.api.Post(ctx, customerNotesBase+id+"/"+action, nil, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

func (s *CustomerService) DeletePaymentMethod(ctx context.Context, id string) error {
	if err := checkID("payment method", id); err != nil {
		return err
	}
	return s.api.Delete(ctx, paymentMethodsBase+id+"/")
}

func (s *CustomerService) SetDefaultPaymentMethod(ctx context.Context, id string) (*models.CustomerPaymentMethod, error) {
	if err := checkID("payment method", id); err != nil {
		return nil, err
	}
	var out models.Envelope[models.CustomerPaymentMethod]
	if err := s.api.Post(ctx, paymentMethodsBase+id+"/set_default/", nil, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// action posts a status change and unwraps the {message, data} envelope.
func (s *CustomerService) action(ctx context.Context, id, action string) (*models.Customer, error) {
	if err := checkID("customer", id); err != nil {
		return nil, err
	}
	var out models.Envelope[models.Customer]
	if err := s.api.Post(ctx, customersBase+id+"/"+action, nil, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}
