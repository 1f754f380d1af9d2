package forms

import (
	"strings"

	"wastepoint/internal/models"
	"wastepoint/internal/utils"
)

// CustomerDraft is the staff create/edit form for a billing customer.
type CustomerDraft struct {
	FirstName              string       `json:"first_name" validate:"required"`
	LastName               string       `json:"last_name" validate:"required"`
	CompanyName            string       `json:"company_name"`
	Email                  string       `json:"email" validate:"omitempty,email"`
	Phone                  string       `json:"phone"`
	Website                string       `json:"website"`
	TaxID                  string       `json:"tax_id"`
	Industry               string       `json:"industry"`
	PaymentTerms           string       `json:"payment_terms" validate:"required,oneof=immediate net_15 net_30 net_60 net_90"`
	CreditLimit            string       `json:"credit_limit" validate:"omitempty,decimal"`
	PreferredPaymentMethod string       `json:"preferred_payment_method"`
	Notes                  string       `json:"notes"`
	Tags                   string       `json:"tags"`
	BillingAddress         AddressDraft `json:"billing_address"`
	CreateUser             bool         `json:"create_user"`
	Password               string       `json:"password" validate:"required_if=CreateUser true,omitempty,min=8"`
}

func (CustomerDraft) labels() map[string]string {
	return map[string]string{"tax_id": "Tax ID"}
}

func NewCustomerDraft() CustomerDraft {
	return CustomerDraft{
		PaymentTerms:   "net_30",
		CreditLimit:    "0",
		BillingAddress: AddressDraft{Country: defaultCountry},
	}
}

func CustomerDraftFrom(c models.Customer) CustomerDraft {
	d := CustomerDraft{
		FirstName:              c.FirstName,
		LastName:               c.LastName,
		CompanyName:            c.CompanyName,
		Email:                  c.Email,
		Phone:                  c.Phone,
		Website:                c.Website,
		TaxID:                  c.TaxID,
		Industry:               c.Industry,
		PaymentTerms:           c.PaymentTerms,
		CreditLimit:            c.CreditLimit,
		PreferredPaymentMethod: c.PreferredPaymentMethod,
		Notes:                  c.Notes,
		Tags:                   strings.Join(c.Tags, ", "),
		BillingAddress:         AddressDraft{Country: defaultCountry},
	}
	if c.BillingAddress != nil {
		d.BillingAddress = addressDraft(*c.BillingAddress)
	}
	return d
}

func (d CustomerDraft) CreatePayload() models.CustomerPayload {
	p := d.UpdatePayload()
	if d.CreateUser {
		p.CreateUser = true
		p.Password = str(d.Password)
	}
	return p
}

// UpdatePayload never carries account creation; that only happens on create.
func (d CustomerDraft) UpdatePayload() models.CustomerPayload {
	p := models.CustomerPayload{
		FirstName:              str(d.FirstName),
		LastName:               str(d.LastName),
		CompanyName:            optional(d.CompanyName),
		Email:                  optional(strings.ToLower(d.Email)),
		Phone:                  optional(d.Phone),
		TaxID:                  optional(d.TaxID),
		Website:                optional(d.Website),
		Industry:               optional(d.Industry),
		PaymentTerms:           str(d.PaymentTerms),
		CreditLimit:            optional(d.CreditLimit),
		PreferredPaymentMethod: optional(d.PreferredPaymentMethod),
		Notes:                  optional(d.Notes),
		Tags:                   utils.SplitList(d.Tags),
	}
	if strings.TrimSpace(d.BillingAddress.Street) != "" || strings.TrimSpace(d.BillingAddress.City) != "" {
		p.BillingAddress = d.BillingAddress.address()
	}
	return p
}

// NoteDraft is an internal staff note on a customer.
type NoteDraft struct {
	Note     string `json:"note" validate:"required"`
	IsPinned bool   `json:"is_pinned"`
}

func (d NoteDraft) Payload(customerID string) models.CustomerNotePayload {
	return models.CustomerNotePayload{
		Customer: customerID,
		Note:     strings.TrimSpace(d.Note),
		IsPinned: d.IsPinned,
	}
}
