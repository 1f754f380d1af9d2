package pages

import (
	"context"
	"slices"
	"strconv"
	"strings"

	"wastepoint/internal/components"
	"wastepoint/internal/forms"
	"wastepoint/internal/models"
	"wastepoint/internal/queries"

	"golang.org/x/sync/errgroup"
)

type CustomerRow struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	CompanyName  string           `json:"company_name,omitempty"`
	Email        string           `json:"email,omitempty"`
	Phone        string           `json:"phone,omitempty"`
	PaymentTerms string           `json:"payment_terms"`
	CreditLimit  string           `json:"credit_limit"`
	Status       components.Badge `json:"status"`
	Tags         []string         `json:"tags,omitempty"`
	Href         string           `json:"href"`
}

func customerRow(c models.Customer) CustomerRow {
	name := c.FullName
	if name == "" {
		name = strings.TrimSpace(c.FirstName + " " + c.LastName)
	}
	return CustomerRow{
		ID:           c.ID,
		Name:         name,
		CompanyName:  c.CompanyName,
		Email:        c.Email,
		Phone:        c.Phone,
		PaymentTerms: components.FormatStatus(c.PaymentTerms),
		CreditLimit:  money(c.CreditLimit),
		Status:       components.StatusBadge(string(c.Status)),
		Tags:         c.Tags,
		Href:         "/operations/customers/" + c.ID,
	}
}

// money formats a decimal string from the API; unparsable values pass through.
func money(amount string) string {
	f, err := strconv.ParseFloat(strings.TrimSpace(amount), 64)
	if err != nil {
		return amount
	}
	return components.Money(f)
}

type CustomersView struct {
	Stats          []components.StatCard `json:"stats,omitempty"`
	StatusOptions  []Option              `json:"status_options"`
	TermsOptions   []Option              `json:"terms_options"`
	OrderingOption []Option              `json:"ordering_options"`
	Count          int                   `json:"count"`
	Customers      []CustomerRow         `json:"customers"`
}

// Customers lists the customer directory; missing stats only hide the cards.
func (o *Operations) Customers(ctx context.Context, params models.CustomerQueryParams) Page[CustomersView] {
	var (
		list  *models.ListResponse[models.Customer]
		stats *models.CustomerStats
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		list, err = o.q.Customers.List(params).Get(gctx)
		return err
	})
	g.Go(func() error {
		stats, _ = o.q.Customers.Stats().Get(gctx)
		return nil
	})
	if err := g.Wait(); err != nil || list == nil {
		return Failed[CustomersView]("Failed to load customers. Please try again.", err,
			withQuery("/api/v1/operations/customers",
				"status", params.Status, "payment_terms", params.PaymentTerms, "industry", params.Industry,
				"ordering", params.Ordering, "search", params.Search))
	}

	v := CustomersView{
		StatusOptions: options(params.Status, "", "All",
			"active", "Active", "suspended", "Suspended", "archived", "Archived"),
		TermsOptions: options(params.PaymentTerms, "", "All terms",
			"immediate", "Immediate", "net_15", "Net 15", "net_30", "Net 30", "net_60", "Net 60", "net_90", "Net 90"),
		OrderingOption: options(params.Ordering, "", "Default",
			"-created_at", "Newest first", "created_at", "Oldest first",
			"last_name", "Name (A-Z)", "-last_name", "Name (Z-A)",
			"-credit_limit", "Highest credit limit"),
		Count:     list.Count,
		Customers: mapSlice(list.Results, customerRow),
	}
	if stats != nil {
		v.Stats = []components.StatCard{
			components.Stat("Total Customers", stats.TotalCustomers, "users"),
			components.Stat("Active", stats.ActiveCustomers, "check"),
			components.Stat("New This Month", stats.NewCustomersThisMonth, "user-plus"),
			components.Stat("Total Credit Limit", money(stats.TotalCreditLimit), "wallet"),
		}
	}
	if len(v.Customers) == 0 {
		return Empty(v, components.EmptyState{
			Title:       "No customers found",
			Description: "Try adjusting your filters or add a new customer.",
			Icon:        "users",
			ActionLabel: "Add Customer",
			ActionHref:  "/operations/customers/new",
		})
	}
	return Ready(v)
}

type CustomerDetailView struct {
	Customer       *models.Customer               `json:"customer"`
	Status         components.Badge               `json:"status"`
	Archived       bool                           `json:"archived"`
	Notes          []models.CustomerNote          `json:"notes"`
	NotesEmpty     *components.EmptyState         `json:"notes_empty,omitempty"`
	PaymentMethods []models.CustomerPaymentMethod `json:"payment_methods"`
	Draft          forms.CustomerDraft            `json:"draft"`
}

// Customer loads the detail with notes and payment methods; either side list failing leaves it empty.
func (o *Operations) Customer(ctx context.Context, id string) Page[CustomerDetailView] {
	var (
		customer *models.Customer
		notes    []models.CustomerNote
		methods  []models.CustomerPaymentMethod
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		customer, err = o.q.Customers.Detail(id).Get(gctx)
		return err
	})
	g.Go(func() error {
		notes, _ = o.q.Customers.Notes(id).Get(gctx)
		return nil
	})
	g.Go(func() error {
		methods, _ = o.q.Customers.PaymentMethods(id).Get(gctx)
		return nil
	})
	if err := g.Wait(); err != nil || customer == nil {
		return Failed[CustomerDetailView]("Failed to load customer", err, "/api/v1/operations/customers/"+id)
	}

	// Pinned first, newest first within each group. The cached slice is shared, so sort a copy.
	notes = slices.Clone(notes)
	slices.SortStableFunc(notes, func(a, b models.CustomerNote) int {
		if a.IsPinned != b.IsPinned {
			if a.IsPinned {
				return -1
			}
			return 1
		}
		return strings.Compare(b.CreatedAt, a.CreatedAt)
	})
	if methods == nil {
		methods = []models.CustomerPaymentMethod{}
	}

	v := CustomerDetailView{
		Customer:       customer,
		Status:         components.StatusBadge(string(customer.Status)),
		Archived:       customer.Status == models.CustomerArchived || customer.DeletedAt != nil,
		Notes:          notes,
		PaymentMethods: methods,
		Draft:          forms.CustomerDraftFrom(*customer),
	}
	if len(notes) == 0 {
		v.Notes = []models.CustomerNote{}
		v.NotesEmpty = &components.EmptyState{Title: "No notes yet", Icon: "note"}
	}
	return Ready(v)
}

func (o *Operations) CreateCustomer(ctx context.Context, d forms.CustomerDraft) (ActionResult[*models.Customer], error) {
	return checked(ctx, d, o.q.Customers.Create, d.CreatePayload, "create customer", "Customer created")
}

func (o *Operations) UpdateCustomer(ctx context.Context, id string, d forms.CustomerDraft) (ActionResult[*models.Customer], error) {
	return checked(ctx, d, o.q.Customers.Update, func() queries.Update[models.CustomerPayload] {
		return queries.Update[models.CustomerPayload]{ID: id, Payload: d.UpdatePayload()}
	}, "update customer", "Customer updated")
}

// DeleteCustomer soft-deletes; the API keeps the record as archived.
func (o *Operations) DeleteCustomer(ctx context.Context, id string) (ActionResult[struct{}], error) {
	return run(ctx, o.q.Customers.Delete, id, "archive customer", "Customer archived")
}

func (o *Operations) RestoreCustomer(ctx context.Context, id string) (ActionResult[*models.Customer], error) {
	return run(ctx, o.q.Customers.Restore, id, "restore customer", "Customer restored")
}

// SetCustomerStatus suspends or reactivates a customer.
func (o *Operations) SetCustomerStatus(ctx context.Context, id, status string) (ActionResult[*models.Customer], error) {
	const action = "change customer status"
	switch models.CustomerStatus(status) {
	case models.CustomerActive:
		return run(ctx, o.q.Customers.Activate, id, action, "Customer activated")
	case models.CustomerSuspended:
		return run(ctx, o.q.Customers.Suspend, id, action, "Customer suspended")
	}
	return ActionResult[*models.Customer]{}, &forms.ValidationError{
		Fields: map[string][]string{"status": {"Status must be one of: active, suspended"}},
	}
}

func (o *Operations) AddCustomerNote(ctx context.Context, customerID string, d forms.NoteDraft) (ActionResult[*models.CustomerNote], error) {
	if strings.TrimSpace(d.Note) == "" {
		return ActionResult[*models.CustomerNote]{}, &forms.ValidationError{
			Fields: map[string][]string{"note": {"Note is required"}},
		}
	}
	return run(ctx, o.q.Customers.AddNote, d.Payload(customerID), "add note", "Note added")
}

func (o *Operations) DeleteCustomerNote(ctx context.Context, customerID, noteID string) (ActionResult[struct{}], error) {
	return run(ctx, o.q.Customers.DeleteNote, queries.CustomerRef{CustomerID: customerID, ID: noteID},
		"delete note", "Note deleted")
}

func (o *Operations) SetNotePinned(ctx context.Context, customerID, noteID string, pinned bool) (ActionResult[*models.CustomerNote], error) {
	done := "Note unpinned"
	if pinned {
		done = "Note pinned"
	}
	in := queries.PinInput{CustomerRef: queries.CustomerRef{CustomerID: customerID, ID: noteID}, Pinned: pinned}
	return run(ctx, o.q.Customers.PinNote, in, "update note", done)
}

func (o *Operations) SetDefaultPaymentMethod(ctx context.Context, customerID, methodID string) (ActionResult[*models.CustomerPaymentMethod], error) {
	return run(ctx, o.q.Customers.SetDefaultPaymentMethod, queries.CustomerRef{CustomerID: customerID, ID: methodID},
		"set default payment method", "Default payment method updated")
}

func (o *Operations) DeleteCustomerPaymentMethod(ctx context.Context, customerID, methodID string) (ActionResult[struct{}], error) {
	return run(ctx, o.q.Customers.DeletePaymentMethod, queries.CustomerRef{CustomerID: customerID, ID: methodID},
		"delete payment method", "Payment method removed")
}
