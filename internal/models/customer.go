package models

type CustomerStatus string

const (
	CustomerActive    CustomerStatus = "active"
	CustomerSuspended CustomerStatus = "suspended"
	CustomerArchived  CustomerStatus = "archived"
)

// PaymentTerms accepted by the customer API.
var PaymentTerms = []string{"immediate", "net_15", "net_30", "net_60", "net_90"}

// Customer is the staff view of a billing customer.
type Customer struct {
	ID                     string                  `json:"id"`
	User                   *string                 `json:"user"`
	CompanyName            string                  `json:"company_name"`
	FirstName              string                  `json:"first_name"`
	LastName               string                  `json:"last_name"`
	FullName               string                  `json:"full_name"`
	Email                  string                  `json:"email"`
	Phone                  string                  `json:"phone"`
	TaxID                  string                  `json:"tax_id"`
	Website                string                  `json:"website"`
	Industry               string                  `json:"industry"`
	BillingAddress         *Address                `json:"billing_address"`
	BillingAddressString   string                  `json:"billing_address_string"`
	ShippingAddress        *Address                `json:"shipping_address"`
	ShippingAddressString  string                  `json:"shipping_address_string"`
	PaymentTerms           string                  `json:"payment_terms"`
	CreditLimit            string                  `json:"credit_limit"`
	PreferredPaymentMethod string                  `json:"preferred_payment_method"`
	Status                 CustomerStatus          `json:"status"`
	Notes                  string                  `json:"notes"`
	Tags                   []string                `json:"tags"`
	PrepaidBalance         *float64                `json:"prepaid_balance"`
	ServiceArea            *NamedRef               `json:"service_area"`
	PaymentMethods         []CustomerPaymentMethod `json:"payment_methods,omitempty"`
	CreatedAt              string                  `json:"created_at"`
	UpdatedAt              string                  `json:"updated_at"`
	DeletedAt              *string                 `json:"deleted_at"`
	CreatedByName          string                  `json:"created_by_name"`
}

type CustomerStats struct {
	TotalCustomers              int    `json:"total_customers"`
	ActiveCustomers             int    `json:"active_customers"`
	SuspendedCustomers          int    `json:"suspended_customers"`
	ArchivedCustomers           int    `json:"archived_customers"`
	CustomersWithPaymentMethods int    `json:"customers_with_payment_methods"`
	TotalCreditLimit            string `json:"total_credit_limit"`
	NewCustomersThisWeek        int    `json:"new_customers_this_week"`
	NewCustomersThisMonth       int    `json:"new_customers_this_month"`
}

// CustomerQueryParams for filtering the customer list.
type CustomerQueryParams struct {
	Status       string
	PaymentTerms string
	Industry     string
	Ordering     string
	Search       string
}

// CustomerPayload is the create/update body. Nil fields are omitted from the request.
type CustomerPayload struct {
	FirstName              *string  `json:"first_name,omitempty"`
	LastName               *string  `json:"last_name,omitempty"`
	CompanyName            *string  `json:"company_name,omitempty"`
	Email                  *string  `json:"email,omitempty"`
	Phone                  *string  `json:"phone,omitempty"`
	TaxID                  *string  `json:"tax_id,omitempty"`
	Website                *string  `json:"website,omitempty"`
	Industry               *string  `json:"industry,omitempty"`
	BillingAddress         *Address `json:"billing_address,omitempty"`
	ShippingAddress        *Address `json:"shipping_address,omitempty"`
	PaymentTerms           *string  `json:"payment_terms,omitempty"`
	CreditLimit            *string  `json:"credit_limit,omitempty"`
	PreferredPaymentMethod *string  `json:"preferred_payment_method,omitempty"`
	Notes                  *string  `json:"notes,omitempty"`
	Tags                   []string `json:"tags,omitempty"`
	CreateUser             bool     `json:"create_user,omitempty"`
	Password               *string  `json:"password,omitempty"`
}

// CustomerPaymentMethod is a stored payment method as staff see it.
type CustomerPaymentMethod struct {
	ID           string `json:"id"`
	Customer     string `json:"customer"`
	Type         string `json:"type"`
	CardBrand    string `json:"card_brand,omitempty"`
	CardLast4    string `json:"card_last4,omitempty"`
	CardExpMonth int    `json:"card_exp_month,omitempty"`
	CardExpYear  int    `json:"card_exp_year,omitempty"`
	BankName     string `json:"bank_name,omitempty"`
	AccountLast4 string `json:"account_last4,omitempty"`
	IsDefault    bool   `json:"is_default"`
	IsVerified   bool   `json:"is_verified"`
	DisplayName  string `json:"display_name,omitempty"`
	IsExpired    bool   `json:"is_expired_flag,omitempty"`
	CreatedAt    string `json:"created_at"`
}

type CustomerNote struct {
	ID            string `json:"id"`
	Customer      string `json:"customer"`
	CreatedByName string `json:"created_by_name"`
	Note          string `json:"note"`
	IsPinned      bool   `json:"is_pinned"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

type CustomerNotePayload struct {
	Customer string `json:"customer"`
	Note     string `json:"note"`
	IsPinned bool   `json:"is_pinned,omitempty"`
}

// Envelope is the {message, data} body the action endpoints answer with.
type Envelope[T any] struct {
	Message string `json:"message"`
	Data    T      `json:"data"`
}
