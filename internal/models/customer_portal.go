package models

type Address struct {
	Street     string `json:"street,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
	Country    string `json:"country,omitempty"`
}

type CustomerProfile struct {
	ID                     string  `json:"id"`
	FirstName              string  `json:"first_name"`
	LastName               string  `json:"last_name"`
	FullName               string  `json:"full_name"`
	Email                  string  `json:"email"`
	Phone                  string  `json:"phone"`
	CompanyName            string  `json:"company_name"`
	BillingAddress         Address `json:"billing_address"`
	ShippingAddress        Address `json:"shipping_address"`
	PaymentTerms           string  `json:"payment_terms"`
	PreferredPaymentMethod string  `json:"preferred_payment_method"`
	Status                 string  `json:"status"`
	CreatedAt              string  `json:"created_at"`
}

type CustomerSummary struct {
	PaymentMethodsCount    int     `json:"payment_methods_count"`
	PendingInvoicesCount   int     `json:"pending_invoices_count"`
	UpcomingSchedulesCount int     `json:"upcoming_schedules_count"`
	OutstandingBalance     float64 `json:"outstanding_balance"`
}

type CustomerSchedule struct {
	ID                 string         `json:"id"`
	ScheduledDate      string         `json:"scheduled_date"`
	ScheduledTimeStart string         `json:"scheduled_time_start"`
	ScheduledTimeEnd   string         `json:"scheduled_time_end"`
	ActualStartTime    *string        `json:"actual_start_time"`
	ActualEndTime      *string        `json:"actual_end_time"`
	Status             ScheduleStatus `json:"status"`
	RouteName          *string        `json:"route_name"`
	ServiceAreaName    *string        `json:"service_area_name"`
	CollectorName      *string        `json:"collector_name"`
	Notes              string         `json:"notes"`
}

type Invoice struct {
	ID            string  `json:"id"`
	InvoiceNumber string  `json:"invoice_number"`
	IssueDate     string  `json:"issue_date"`
	DueDate       string  `json:"due_date"`
	Amount        float64 `json:"amount"`
	Status        string  `json:"status"`
	Description   string  `json:"description"`
}

type Payment struct {
	ID              string  `json:"id"`
	Amount          float64 `json:"amount"`
	PaymentDate     string  `json:"payment_date"`
	PaymentMethod   string  `json:"payment_method"`
	Status          string  `json:"status"`
	ReferenceNumber string  `json:"reference_number"`
	InvoiceID       *string `json:"invoice_id"`
}

type PaymentMethod struct {
	ID              string `json:"id,omitempty"`
	Type            string `json:"type"`
	IsDefault       bool   `json:"is_default"`
	IsVerified      bool   `json:"is_verified,omitempty"`
	Nickname        string `json:"nickname,omitempty"`
	CardBrand       string `json:"card_brand,omitempty"`
	CardLastFour    string `json:"card_last_four,omitempty"`
	CardExpMonth    int    `json:"card_exp_month,omitempty"`
	CardExpYear     int    `json:"card_exp_year,omitempty"`
	BankName        string `json:"bank_name,omitempty"`
	AccountLastFour string `json:"account_last_four,omitempty"`
	AccountType     string `json:"account_type,omitempty"`
	CreatedAt       string `json:"created_at,omitempty"`
}

type CustomerDashboard struct {
	Customer struct {
		ID           string `json:"id"`
		FullName     string `json:"full_name"`
		Email        string `json:"email"`
		Phone        string `json:"phone"`
		CompanyName  string `json:"company_name"`
		Status       string `json:"status"`
		PaymentTerms string `json:"payment_terms"`
	} `json:"customer"`
	Summary           CustomerSummary    `json:"summary"`
	UpcomingSchedules []CustomerSchedule `json:"upcoming_schedules"`
	RecentPayments    []Payment          `json:"recent_payments"`
	PendingInvoices   []Invoice          `json:"pending_invoices"`
	Message           string             `json:"message,omitempty"`
}

// UpdateProfileRequest carries only the fields the customer changed.
type UpdateProfileRequest struct {
	Phone                  *string  `json:"phone,omitempty"`
	BillingAddress         *Address `json:"billing_address,omitempty"`
	ShippingAddress        *Address `json:"shipping_address,omitempty"`
	PreferredPaymentMethod *string  `json:"preferred_payment_method,omitempty"`
}

type UpdateProfileResponse struct {
	Message string          `json:"message"`
	Data    CustomerProfile `json:"data"`
}

type AddPaymentMethodResponse struct {
	Message string        `json:"message"`
	Data    PaymentMethod `json:"data"`
}

type TopUpRequest struct {
	Collections   int    `json:"collections"`
	PaymentMethod string `json:"payment_method"`
}

type TopUpResponse struct {
	Message       string `json:"message"`
	Collections   int    `json:"collections"`
	PaymentMethod string `json:"payment_method"`
	Status        string `json:"status"`
}
