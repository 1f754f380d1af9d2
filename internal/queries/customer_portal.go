package queries

import (
	"context"

	"wastepoint/internal/models"
	"wastepoint/internal/query"
	"wastepoint/internal/services"
)

type CustomerPortal struct {
	cache *query.Cache
	svc   *services.CustomerPortalService

	UpdateProfile    *query.Mutation[models.UpdateProfileRequest, *models.UpdateProfileResponse]
	AddPaymentMethod *query.Mutation[models.PaymentMethod, *models.AddPaymentMethodResponse]
	SubmitTopUp      *query.Mutation[models.TopUpRequest, *models.TopUpResponse]
}

func NewCustomerPortal(c *query.Cache, svc *services.CustomerPortalService) *CustomerPortal {
	p := &CustomerPortal{cache: c, svc: svc}

	p.UpdateProfile = query.NewMutation(c, svc.UpdateProfile, func(models.UpdateProfileRequest) []query.Key {
		return []query.Key{PortalKeys.Profile(), PortalKeys.Dashboard()}
	})
	p.AddPaymentMethod = query.NewMutation(c, svc.AddPaymentMethod, func(models.PaymentMethod) []query.Key {
		return []query.Key{PortalKeys.PaymentMethods(), PortalKeys.Dashboard()}
	})
	p.SubmitTopUp = query.NewMutation(c, svc.SubmitTopUp, func(models.TopUpRequest) []query.Key {
		return []query.Key{PortalKeys.Dashboard(), portalAll.With("payments")}
	})
	return p
}

func (p *CustomerPortal) Dashboard() *query.Query[*models.CustomerDashboard] {
	return query.NewQuery(p.cache, PortalKeys.Dashboard(), p.svc.GetDashboard)
}

func (p *CustomerPortal) Profile() *query.Query[*models.CustomerProfile] {
	return query.NewQuery(p.cache, PortalKeys.Profile(), p.svc.GetProfile)
}

func (p *CustomerPortal) PaymentMethods() *query.Query[[]models.PaymentMethod] {
	return query.NewQuery(p.cache, PortalKeys.PaymentMethods(), p.svc.GetPaymentMethods)
}

func (p *CustomerPortal) Schedules(date, status string) *query.Query[*models.ListResponse[models.CustomerSchedule]] {
	return query.NewQuery(p.cache, PortalKeys.Schedules(date, status),
		func(ctx context.Context) (*models.ListResponse[models.CustomerSchedule], error) {
			return p.svc.GetSchedules(ctx, date, status)
		})
}

func (p *CustomerPortal) Invoices(status string) *query.Query[*models.ListResponse[models.Invoice]] {
	return query.NewQuery(p.cache, PortalKeys.Invoices(status),
		func(ctx context.Context) (*models.ListResponse[models.Invoice], error) {
			return p.svc.GetInvoices(ctx, status)
		})
}

func (p *CustomerPortal) Payments(status string) *query.Query[*models.ListResponse[models.Payment]] {
	return query.NewQuery(p.cache, PortalKeys.Payments(status),
		func(ctx context.Context) (*models.ListResponse[models.Payment], error) {
			return p.svc.GetPayments(ctx, status)
		})
}
