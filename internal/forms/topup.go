package forms

import (
	"errors"

	"wastepoint/internal/models"
)

// TopUpPackage is a prepaid bundle of collections offered on the top-up screen.
type TopUpPackage struct {
	ID          string  `json:"id"`
	Collections int     `json:"collections"`
	Price       float64 `json:"price"`
	Savings     float64 `json:"savings,omitempty"`
	Popular     bool    `json:"popular,omitempty"`
	Description string  `json:"description"`
}

// TopUpPackages is the fixed catalogue, prices in RWF.
var TopUpPackages = []TopUpPackage{
	{ID: "package-4", Collections: 4, Price: 2000, Description: "Perfect for small households"},
	{ID: "package-8", Collections: 8, Price: 3500, Savings: 500, Popular: true, Description: "Most popular choice"},
	{ID: "package-12", Collections: 12, Price: 5000, Savings: 1000, Description: "Best value for regular use"},
	{ID: "package-24", Collections: 24, Price: 9000, Savings: 3000, Description: "Maximum savings"},
}

// TopUpPaymentMethods are the channels a top-up can be paid through.
var TopUpPaymentMethods = []string{"momo", "airtel", "card"}

var ErrNoPackage = errors.New("select a package or enter a custom amount")

func FindPackage(id string) (TopUpPackage, bool) {
	for _, p := range TopUpPackages {
		if p.ID == id {
			return p, true
		}
	}
	return TopUpPackage{}, false
}

// TopUpDraft is either a catalogue package or a custom collection count.
type TopUpDraft struct {
	PackageID     string `json:"package_id"`
	CustomAmount  string `json:"custom_amount" validate:"omitempty,number"`
	PaymentMethod string `json:"payment_method" validate:"required,oneof=momo airtel card"`
}

func (TopUpDraft) labels() map[string]string {
	return map[string]string{"custom_amount": "Custom amount"}
}

func NewTopUpDraft() TopUpDraft {
	return TopUpDraft{PaymentMethod: "momo"}
}

// Resolve validates the draft and builds the request. A custom amount wins over a package.
func (d TopUpDraft) Resolve() (models.TopUpRequest, error) {
	if err := Check(d); err != nil {
		return models.TopUpRequest{}, err
	}
	collections := 0
	if d.CustomAmount != "" {
		if n := optionalInt(d.CustomAmount); n != nil {
			collections = *n
		}
		if collections <= 0 {
			verr := &ValidationError{}
			verr.add("custom_amount", "Custom amount must be at least 1")
			return models.TopUpRequest{}, verr
		}
	} else if p, ok := FindPackage(d.PackageID); ok {
		collections = p.Collections
	}
	if collections <= 0 {
		return models.TopUpRequest{}, ErrNoPackage
	}
	return models.TopUpRequest{Collections: collections, PaymentMethod: d.PaymentMethod}, nil
}
