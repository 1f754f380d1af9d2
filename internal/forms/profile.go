package forms

import (
	"strconv"
	"strings"

	"wastepoint/internal/models"
)

const defaultCountry = "Rwanda"

type AddressDraft struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

func addressDraft(a models.Address) AddressDraft {
	country := a.Country
	if country == "" {
		country = defaultCountry
	}
	return AddressDraft{
		Street:     a.Street,
		City:       a.City,
		State:      a.State,
		PostalCode: a.PostalCode,
		Country:    country,
	}
}

func (a AddressDraft) address() *models.Address {
	country := strings.TrimSpace(a.Country)
	if country == "" {
		country = defaultCountry
	}
	return &models.Address{
		Street:     strings.TrimSpace(a.Street),
		City:       strings.TrimSpace(a.City),
		State:      strings.TrimSpace(a.State),
		PostalCode: strings.TrimSpace(a.PostalCode),
		Country:    country,
	}
}

// ProfileDraft is the customer's editable contact details.
type ProfileDraft struct {
	Phone           string       `json:"phone" validate:"required"`
	BillingAddress  AddressDraft `json:"billing_address"`
	ShippingAddress AddressDraft `json:"shipping_address"`
}

func ProfileDraftFrom(p models.CustomerProfile) ProfileDraft {
	return ProfileDraft{
		Phone:           p.Phone,
		BillingAddress:  addressDraft(p.BillingAddress),
		ShippingAddress: addressDraft(p.ShippingAddress),
	}
}

func (d ProfileDraft) Request() models.UpdateProfileRequest {
	return models.UpdateProfileRequest{
		Phone:           str(d.Phone),
		BillingAddress:  d.BillingAddress.address(),
		ShippingAddress: d.ShippingAddress.address(),
	}
}

// PaymentMethodDraft adds a stored payment method to the customer's account.
type PaymentMethodDraft struct {
	Type            string `json:"type" validate:"required,oneof=card bank_account cash check other"`
	Nickname        string `json:"nickname"`
	IsDefault       bool   `json:"is_default"`
	CardBrand       string `json:"card_brand" validate:"required_if=Type card"`
	CardLastFour    string `json:"card_last_four" validate:"omitempty,len=4,numeric"`
	CardExpMonth    string `json:"card_exp_month" validate:"omitempty,number"`
	CardExpYear     string `json:"card_exp_year" validate:"omitempty,number"`
	BankName        string `json:"bank_name" validate:"required_if=Type bank_account"`
	AccountLastFour string `json:"account_last_four" validate:"omitempty,len=4,numeric"`
	AccountType     string `json:"account_type"`
}

func NewPaymentMethodDraft() PaymentMethodDraft {
	return PaymentMethodDraft{Type: "card"}
}

// Request keeps only the fields that belong to the chosen type.
func (d PaymentMethodDraft) Request() models.PaymentMethod {
	pm := models.PaymentMethod{
		Type:      d.Type,
		IsDefault: d.IsDefault,
		Nickname:  strings.TrimSpace(d.Nickname),
	}
	switch d.Type {
	case "card":
		pm.CardBrand = strings.TrimSpace(d.CardBrand)
		pm.CardLastFour = strings.TrimSpace(d.CardLastFour)
		pm.CardExpMonth, _ = strconv.Atoi(strings.TrimSpace(d.CardExpMonth))
		pm.CardExpYear, _ = strconv.Atoi(strings.TrimSpace(d.CardExpYear))
	case "bank_account":
		pm.BankName = strings.TrimSpace(d.BankName)
		pm.AccountLastFour = strings.TrimSpace(d.AccountLastFour)
		pm.AccountType = strings.TrimSpace(d.AccountType)
	}
	return pm
}
