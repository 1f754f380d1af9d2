package pages

import (
	"context"
	"fmt"

	"wastepoint/internal/components"
	"wastepoint/internal/forms"
	"wastepoint/internal/models"
	"wastepoint/internal/queries"

	"golang.org/x/sync/errgroup"
)

type CustomerPages struct {
	q *queries.CustomerPortal
}

func NewCustomerPages(q *queries.CustomerPortal) *CustomerPages {
	return &CustomerPages{q: q}
}

type CustomerScheduleRow struct {
	ID              string           `json:"id"`
	Date            string           `json:"date"`
	TimeWindow      string           `json:"time_window"`
	RouteName       string           `json:"route_name,omitempty"`
	ServiceAreaName string           `json:"service_area_name,omitempty"`
	CollectorName   string           `json:"collector_name,omitempty"`
	Status          components.Badge `json:"status"`
	Notes           string           `json:"notes,omitempty"`
}

func customerScheduleRow(s models.CustomerSchedule) CustomerScheduleRow {
	return CustomerScheduleRow{
		ID:              s.ID,
		Date:            s.ScheduledDate,
		TimeWindow:      timeWindow(s.ScheduledTimeStart, s.ScheduledTimeEnd),
		RouteName:       derefStr(s.RouteName),
		ServiceAreaName: derefStr(s.ServiceAreaName),
		CollectorName:   derefStr(s.CollectorName),
		Status:          components.StatusBadge(string(s.Status)),
		Notes:           s.Notes,
	}
}

type InvoiceRow struct {
	ID          string           `json:"id"`
	Number      string           `json:"number"`
	IssueDate   string           `json:"issue_date"`
	DueDate     string           `json:"due_date"`
	Amount      string           `json:"amount"`
	Description string           `json:"description,omitempty"`
	Status      components.Badge `json:"status"`
}

func invoiceRow(i models.Invoice) InvoiceRow {
	return InvoiceRow{
		ID:          i.ID,
		Number:      i.InvoiceNumber,
		IssueDate:   i.IssueDate,
		DueDate:     i.DueDate,
		Amount:      components.Money(i.Amount),
		Description: i.Description,
		Status:      components.StatusBadge(i.Status),
	}
}

type PaymentRow struct {
	ID        string           `json:"id"`
	Date      string           `json:"date"`
	Amount    string           `json:"amount"`
	Method    string           `json:"method"`
	Reference string           `json:"reference,omitempty"`
	Status    components.Badge `json:"status"`
}

func paymentRow(p models.Payment) PaymentRow {
	return PaymentRow{
		ID:        p.ID,
		Date:      p.PaymentDate,
		Amount:    components.Money(p.Amount),
		Method:    components.FormatStatus(p.PaymentMethod),
		Reference: p.ReferenceNumber,
		Status:    components.StatusBadge(p.Status),
	}
}

type CustomerDashboardView struct {
	CustomerName    string                 `json:"customer_name"`
	CompanyName     string                 `json:"company_name,omitempty"`
	AccountStatus   components.Badge       `json:"account_status"`
	Stats           []components.StatCard  `json:"stats"`
	Upcoming        []CustomerScheduleRow  `json:"upcoming"`
	UpcomingEmpty   *components.EmptyState `json:"upcoming_empty,omitempty"`
	PendingInvoices []InvoiceRow           `json:"pending_invoices"`
	InvoicesEmpty   *components.EmptyState `json:"invoices_empty,omitempty"`
	RecentPayments  []PaymentRow           `json:"recent_payments"`
	PaymentsEmpty   *components.EmptyState `json:"payments_empty,omitempty"`
}

func (p *CustomerPages) Dashboard(ctx context.Context) Page[CustomerDashboardView] {
	d, err := p.q.Dashboard().Get(ctx)
	if err != nil || d == nil {
		return Failed[CustomerDashboardView]("Failed to load dashboard", err, "/api/v1/portal/dashboard")
	}

	v := CustomerDashboardView{
		CustomerName:  d.Customer.FullName,
		CompanyName:   d.Customer.CompanyName,
		AccountStatus: components.StatusBadge(d.Customer.Status),
		Stats: []components.StatCard{
			components.Stat("Outstanding Balance", components.Money(d.Summary.OutstandingBalance), "wallet"),
			components.Stat("Pending Invoices", d.Summary.PendingInvoicesCount, "file"),
			components.Stat("Upcoming Collections", d.Summary.UpcomingSchedulesCount, "calendar"),
			components.Stat("Payment Methods", d.Summary.PaymentMethodsCount, "card"),
		},
		Upcoming:        mapSlice(d.UpcomingSchedules, customerScheduleRow),
		PendingInvoices: mapSlice(d.PendingInvoices, invoiceRow),
		RecentPayments:  mapSlice(d.RecentPayments, paymentRow),
	}
	if len(v.Upcoming) == 0 {
		v.UpcomingEmpty = &components.EmptyState{Title: "No upcoming collections scheduled", Icon: "calendar"}
	}
	if len(v.PendingInvoices) == 0 {
		v.InvoicesEmpty = &components.EmptyState{Title: "No pending invoices", Icon: "file"}
	}
	if len(v.RecentPayments) == 0 {
		v.PaymentsEmpty = &components.EmptyState{Title: "No payment history yet", Icon: "wallet"}
	}
	return Ready(v)
}

type InvoicesView struct {
	StatusOptions []Option     `json:"status_options"`
	Count         int          `json:"count"`
	Total         string       `json:"total"`
	Invoices      []InvoiceRow `json:"invoices"`
}

func (p *CustomerPages) Invoices(ctx context.Context, status string) Page[InvoicesView] {
	status = oneOf(status, "", "draft", "sent", "paid", "overdue", "cancelled")
	list, err := p.q.Invoices(status).Get(ctx)
	if err != nil || list == nil {
		return Failed[InvoicesView]("Failed to load invoices", err, withQuery("/api/v1/portal/invoices", "status", status))
	}

	var total float64
	for _, i := range list.Results {
		total += i.Amount
	}
	v := InvoicesView{
		StatusOptions: options(status,
			"", "All", "sent", "Sent", "paid", "Paid", "overdue", "Overdue", "cancelled", "Cancelled"),
		Count:    list.Count,
		Total:    components.Money(total),
		Invoices: mapSlice(list.Results, invoiceRow),
	}
	if len(v.Invoices) == 0 {
		return Empty(v, components.EmptyState{
			Title:       "No invoices found",
			Description: "You don't have any invoices yet. They will appear here once generated.",
			Icon:        "file",
		})
	}
	return Ready(v)
}

type PaymentsView struct {
	StatusOptions []Option     `json:"status_options"`
	Count         int          `json:"count"`
	TotalPaid     string       `json:"total_paid"`
	Payments      []PaymentRow `json:"payments"`
}

func (p *CustomerPages) Payments(ctx context.Context, status string) Page[PaymentsView] {
	status = oneOf(status, "", "pending", "completed", "failed", "refunded")
	list, err := p.q.Payments(status).Get(ctx)
	if err != nil || list == nil {
		return Failed[PaymentsView]("Failed to load payment history", err, withQuery("/api/v1/portal/payments", "status", status))
	}

	var paid float64
	for _, pm := range list.Results {
		if pm.Status == "completed" {
			paid += pm.Amount
		}
	}
	v := PaymentsView{
		StatusOptions: options(status,
			"", "All", "completed", "Completed", "pending", "Pending", "failed", "Failed", "refunded", "Refunded"),
		Count:     list.Count,
		TotalPaid: components.Money(paid),
		Payments:  mapSlice(list.Results, paymentRow),
	}
	if len(v.Payments) == 0 {
		return Empty(v, components.EmptyState{Title: "No payments found", Icon: "wallet"})
	}
	return Ready(v)
}

type CustomerSchedulesView struct {
	DateOptions   []Option              `json:"date_options"`
	StatusOptions []Option              `json:"status_options"`
	Count         int                   `json:"count"`
	Schedules     []CustomerScheduleRow `json:"schedules"`
}

// Schedules lists collections; when is today, upcoming, past or blank for all.
func (p *CustomerPages) Schedules(ctx context.Context, when, status string) Page[CustomerSchedulesView] {
	when = oneOf(when, "", "today", "upcoming", "past")
	status = oneOf(status, "", "scheduled", "in_progress", "completed", "cancelled", "missed")

	list, err := p.q.Schedules(when, status).Get(ctx)
	if err != nil || list == nil {
		return Failed[CustomerSchedulesView]("Failed to load schedules", err,
			withQuery("/api/v1/portal/schedules", "date", when, "status", status))
	}

	v := CustomerSchedulesView{
		DateOptions: options(when, "", "All", "today", "Today", "upcoming", "Upcoming", "past", "Past"),
		StatusOptions: options(status,
			"", "All", "scheduled", "Scheduled", "in_progress", "In Progress", "completed", "Completed", "cancelled", "Cancelled", "missed", "Missed"),
		Count:     len(list.Results),
		Schedules: mapSlice(list.Results, customerScheduleRow),
	}
	if len(v.Schedules) > 0 {
		return Ready(v)
	}
	desc := "No collection schedules found matching your filters."
	if when == "today" {
		desc = "No collections scheduled for today."
	}
	return Empty(v, components.EmptyState{Title: "No schedules found", Description: desc, Icon: "calendar"})
}

type PaymentMethodRow struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Label     string `json:"label"`
	IsDefault bool   `json:"is_default"`
	Verified  bool   `json:"verified"`
}

func paymentMethodRow(pm models.PaymentMethod) PaymentMethodRow {
	label := pm.Nickname
	if label == "" {
		switch pm.Type {
		case "card":
			label = fmt.Sprintf("%s •••• %s", components.FormatStatus(pm.CardBrand), pm.CardLastFour)
		case "bank_account":
			label = fmt.Sprintf("%s •••• %s", pm.BankName, pm.AccountLastFour)
		default:
			label = components.FormatStatus(pm.Type)
		}
	}
	return PaymentMethodRow{
		ID:        pm.ID,
		Type:      pm.Type,
		Label:     label,
		IsDefault: pm.IsDefault,
		Verified:  pm.IsVerified,
	}
}

type CustomerProfileView struct {
	Profile        *models.CustomerProfile `json:"profile"`
	Status         components.Badge        `json:"status"`
	Draft          forms.ProfileDraft      `json:"draft"`
	PaymentMethods []PaymentMethodRow      `json:"payment_methods"`
	MethodsEmpty   *components.EmptyState  `json:"payment_methods_empty,omitempty"`
}

// Profile loads the profile and the stored payment methods side by side. A failed
// payment method list degrades to its empty state.
func (p *CustomerPages) Profile(ctx context.Context) Page[CustomerProfileView] {
	var (
		prof    *models.CustomerProfile
		methods []models.PaymentMethod
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		prof, err = p.q.Profile().Get(gctx)
		return err
	})
	g.Go(func() error {
		methods, _ = p.q.PaymentMethods().Get(gctx)
		return nil
	})
	if err := g.Wait(); err != nil || prof == nil {
		return Failed[CustomerProfileView]("Failed to load profile", err, "/api/v1/portal/profile")
	}

	v := CustomerProfileView{
		Profile:        prof,
		Status:         components.StatusBadge(prof.Status),
		Draft:          forms.ProfileDraftFrom(*prof),
		PaymentMethods: mapSlice(methods, paymentMethodRow),
	}
	if len(v.PaymentMethods) == 0 {
		v.MethodsEmpty = &components.EmptyState{Title: "No payment methods on file", Icon: "card"}
	}
	return Ready(v)
}

func (p *CustomerPages) UpdateProfile(ctx context.Context, draft forms.ProfileDraft) (ActionResult[models.CustomerProfile], error) {
	if err := forms.Check(draft); err != nil {
		return ActionResult[models.CustomerProfile]{}, err
	}
	resp, err := p.q.UpdateProfile.MutateAsync(ctx, draft.Request())
	if err != nil {
		return ActionResult[models.CustomerProfile]{}, actionError("update profile", err)
	}
	return ActionResult[models.CustomerProfile]{Message: messageOr(resp.Message, "Profile updated successfully"), Data: resp.Data}, nil
}

type PaymentMethodsView struct {
	Methods []PaymentMethodRow       `json:"methods"`
	Draft   forms.PaymentMethodDraft `json:"draft"`
}

func (p *CustomerPages) PaymentMethods(ctx context.Context) Page[PaymentMethodsView] {
	methods, err := p.q.PaymentMethods().Get(ctx)
	if err != nil {
		return Failed[PaymentMethodsView]("Failed to load payment methods", err, "/api/v1/portal/payment-methods")
	}
	v := PaymentMethodsView{Methods: mapSlice(methods, paymentMethodRow), Draft: forms.NewPaymentMethodDraft()}
	if len(v.Methods) == 0 {
		return Empty(v, components.EmptyState{Title: "No payment methods on file", Icon: "card", ActionLabel: "Add payment method"})
	}
	return Ready(v)
}

func (p *CustomerPages) AddPaymentMethod(ctx context.Context, draft forms.PaymentMethodDraft) (ActionResult[models.PaymentMethod], error) {
	if err := forms.Check(draft); err != nil {
		return ActionResult[models.PaymentMethod]{}, err
	}
	resp, err := p.q.AddPaymentMethod.MutateAsync(ctx, draft.Request())
	if err != nil {
		return ActionResult[models.PaymentMethod]{}, actionError("add payment method", err)
	}
	return ActionResult[models.PaymentMethod]{Message: messageOr(resp.Message, "Payment method added"), Data: resp.Data}, nil
}

type TopUpPackageView struct {
	forms.TopUpPackage
	PriceText     string `json:"price_text"`
	SavingsText   string `json:"savings_text,omitempty"`
	PerCollection string `json:"per_collection"`
}

type TopUpView struct {
	Packages       []TopUpPackageView `json:"packages"`
	PaymentMethods []Option           `json:"payment_methods"`
	Draft          forms.TopUpDraft   `json:"draft"`
}

// TopUp is static: the catalogue and payment channels need no upstream call.
func (p *CustomerPages) TopUp() Page[TopUpView] {
	draft := forms.NewTopUpDraft()
	v := TopUpView{
		PaymentMethods: options(draft.PaymentMethod, "momo", "MTN Mobile Money", "airtel", "Airtel Money", "card", "Card"),
		Draft:          draft,
	}
	for _, pkg := range forms.TopUpPackages {
		pv := TopUpPackageView{
			TopUpPackage:  pkg,
			PriceText:     components.Money(pkg.Price),
			PerCollection: components.Money(pkg.Price / float64(pkg.Collections)),
		}
		if pkg.Savings > 0 {
			pv.SavingsText = "Save " + components.Money(pkg.Savings)
		}
		v.Packages = append(v.Packages, pv)
	}
	return Ready(v)
}

func (p *CustomerPages) SubmitTopUp(ctx context.Context, draft forms.TopUpDraft) (ActionResult[*models.TopUpResponse], error) {
	req, err := draft.Resolve()
	if err != nil {
		return ActionResult[*models.TopUpResponse]{}, err
	}
	resp, err := p.q.SubmitTopUp.MutateAsync(ctx, req)
	if err != nil {
		return ActionResult[*models.TopUpResponse]{}, actionError("submit top-up request. Please try again", err)
	}
	return ActionResult[*models.TopUpResponse]{Message: messageOr(resp.Message, "Top-up request submitted"), Data: resp}, nil
}
