package queries

import (
	"context"

	"wastepoint/internal/models"
	"wastepoint/internal/query"
	"wastepoint/internal/services"
)

// CustomerRef names a note or payment method together with the customer it belongs to,
// so the mutation knows which detail keys to invalidate.
type CustomerRef struct {
	CustomerID string
	ID         string
}

type PinInput struct {
	CustomerRef
	Pinned bool
}

// Customers is the staff customer directory. Every change to a customer also
// moves the stats cards; note and payment method changes stay under the customer's detail key.
type Customers struct {
	cache *query.Cache
	svc   *services.CustomerService

	Create     *query.Mutation[models.CustomerPayload, *models.Customer]
	Update     *query.Mutation[Update[models.CustomerPayload], *models.Customer]
	Delete     *query.Mutation[string, struct{}]
	Restore    *query.Mutation[string, *models.Customer]
	Suspend    *query.Mutation[string, *models.Customer]
	Activate   *query.Mutation[string, *models.Customer]
	AddNote    *query.Mutation[models.CustomerNotePayload, *models.CustomerNote]
	DeleteNote *query.Mutation[CustomerRef, struct{}]
	PinNote    *query.Mutation[PinInput, *models.CustomerNote]

	DeletePaymentMethod     *query.Mutation[CustomerRef, struct{}]
	SetDefaultPaymentMethod *query.Mutation[CustomerRef, *models.CustomerPaymentMethod]
}

func NewCustomers(c *query.Cache, svc *services.CustomerService) *Customers {
	k := CustomerKeys
	stats := k.Named("stats")
	withStats := func(id string) []query.Key {
		return []query.Key{k.Detail(id), k.Lists(), stats}
	}
	notes := func(customerID string) []query.Key {
		return []query.Key{k.Detail(customerID, "notes")}
	}
	methods := func(in CustomerRef) []query.Key {
		return []query.Key{k.Detail(in.CustomerID, "payment-methods"), k.Detail(in.CustomerID)}
	}
	return &Customers{
		cache:  c,
		svc:    svc,
		Create: query.NewMutation(c, svc.Create, allOf[models.CustomerPayload](k.Lists(), stats)),
		Update: query.NewMutation(c,
			func(ctx context.Context, in Update[models.CustomerPayload]) (*models.Customer, error) {
				return svc.Update(ctx, in.ID, in.Payload)
			},
			func(in Update[models.CustomerPayload]) []query.Key { return withStats(in.ID) }),
		Delete:   query.NewMutation(c, deleted(svc.Delete), allOf[string](k.Lists(), stats)),
		Restore:  query.NewMutation(c, svc.Restore, withStats),
		Suspend:  query.NewMutation(c, svc.Suspend, withStats),
		Activate: query.NewMutation(c, svc.Activate, withStats),
		AddNote: query.NewMutation(c, svc.CreateNote,
			func(in models.CustomerNotePayload) []query.Key { return notes(in.Customer) }),
		DeleteNote: query.NewMutation(c,
			func(ctx context.Context, in CustomerRef) (struct{}, error) {
				return struct{}{}, svc.DeleteNote(ctx, in.ID)
			},
			func(in CustomerRef) []query.Key { return notes(in.CustomerID) }),
		PinNote: query.NewMutation(c,
			func(ctx context.Context, in PinInput) (*models.CustomerNote, error) {
				return svc.SetNotePinned(ctx, in.ID, in.Pinned)
			},
			func(in PinInput) []query.Key { return notes(in.CustomerID) }),
		DeletePaymentMethod: query.NewMutation(c,
			func(ctx context.Context, in CustomerRef) (struct{}, error) {
				return struct{}{}, svc.DeletePaymentMethod(ctx, in.ID)
			},
			methods),
		SetDefaultPaymentMethod: query.NewMutation(c,
			func(ctx context.Context, in CustomerRef) (*models.CustomerPaymentMethod, error) {
				return svc.SetDefaultPaymentMethod(ctx, in.ID)
			},
			methods),
	}
}

func (cu *Customers) List(params models.CustomerQueryParams) *query.Query[*models.ListResponse[models.Customer]] {
	key := CustomerKeys.List(map[string]string{
		"status":        params.Status,
		"payment_terms": params.PaymentTerms,
		"industry":      params.Industry,
		"ordering":      params.Ordering,
		"search":        params.Search,
	})
	return query.NewQuery(cu.cache, key, func(ctx context.Context) (*models.ListResponse[models.Customer], error) {
		return cu.svc.List(ctx, params)
	})
}

func (cu *Customers) Detail(id string) *query.Query[*models.Customer] {
	return query.NewQuery(cu.cache, CustomerKeys.Detail(id), func(ctx context.Context) (*models.Customer, error) {
		return cu.svc.Get(ctx, id)
	})
}

func (cu *Customers) Stats() *query.Query[*models.CustomerStats] {
	return query.NewQuery(cu.cache, CustomerKeys.Named("stats"), cu.svc.Stats)
}

func (cu *Customers) Search(q string) *query.Query[[]models.Customer] {
	return query.NewQuery(cu.cache, CustomerKeys.Named("search").With(q), func(ctx context.Context) ([]models.Customer, error) {
		return cu.svc.Search(ctx, q)
	})
}

func (cu *Customers) PaymentMethods(id string) *query.Query[[]models.CustomerPaymentMethod] {
	return query.NewQuery(cu.cache, CustomerKeys.Detail(id, "payment-methods"), func(ctx context.Context) ([]models.CustomerPaymentMethod, error) {
		return cu.svc.PaymentMethods(ctx, id)
	})
}

func (cu *Customers) Notes(id string) *query.Query[[]models.CustomerNote] {
	return query.NewQuery(cu.cache, CustomerKeys.Detail(id, "notes"), func(ctx context.Context) ([]models.CustomerNote, error) {
		return cu.svc.Notes(ctx, id)
	})
}
