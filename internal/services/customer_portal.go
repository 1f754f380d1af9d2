package services

import (
	"context"

	"wastepoint/internal/apiclient"
	"wastepoint/internal/models"
)

// CustomerPortalService serves the signed-in customer's self-service endpoints.
type CustomerPortalService struct {
	api *apiclient.Client
}

func NewCustomerPortalService(api *apiclient.Client) *CustomerPortalService {
	return &CustomerPortalService{api: api}
}

func (s *CustomerPortalService) GetDashboard(ctx context.Context) (*models.CustomerDashboard, error) {
	var out models.CustomerDashboard
	if err := s.api.Get(ctx, "/portal/dashboard/", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *CustomerPortalService) GetProfile(ctx context.Context) (*models.CustomerProfile, error) {
	var out models.CustomerProfile
	if err := s.api.Get(ctx, "/portal/profile/", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *CustomerPortalService) UpdateProfile(
	ctx context.Context,
	req models.UpdateProfileRequest,
) (*models.UpdateProfileResponse, error) {
	var out models.UpdateProfileResponse
	if err := s.api.Patch(ctx, "/portal/profile/", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *CustomerPortalService) GetPaymentMethods(ctx context.Context) ([]models.PaymentMethod, error) {
	var out []models.PaymentMethod
	if err := s.api.Get(ctx, "/portal/payment-methods/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *CustomerPortalService) AddPaymentMethod(
	ctx context.Context,
	method models.PaymentMethod,
) (*models.AddPaymentMethodResponse, error) {
	var out models.AddPaymentMethodResponse
	if err := s.api.Post(ctx, "/portal/payment-methods/", method, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetSchedules lists pickups for the customer. when is upcoming, past or today.
func (s *CustomerPortalService) GetSchedules(
	ctx context.Context,
	when, status string,
) (*models.ListResponse[models.CustomerSchedule], error) {
	var out models.ListResponse[models.CustomerSchedule]
	if err := s.api.Get(ctx, "/portal/schedules/", values("date", when, "status", status), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *CustomerPortalService) GetInvoices(ctx context.Context, status string) (*models.ListResponse[models.Invoice], error) {
	var out models.ListResponse[models.Invoice]
	if err := s.api.Get(ctx, "/portal/invoices/", values("status", status), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *CustomerPortalService) GetPayments(ctx context.Context, status string) (*models.ListResponse[models.Payment], error) {
	var out models.ListResponse[models.Payment]
	if err := s.api.Get(ctx, "/portal/payments/", values("status", status), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SubmitTopUp requests a prepaid collections top-up.
func (s *CustomerPortalService) SubmitTopUp(ctx context.Context, req models.TopUpRequest) (*models.TopUpResponse, error) {
	var out models.TopUpResponse
	if err := s.api.Post(ctx, "/portal/top-up/", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
