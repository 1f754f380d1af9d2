package forms

import "wastepoint/internal/models"

type ServiceAreaDraft struct {
	Code                string `json:"code" validate:"required"`
	Name                string `json:"name" validate:"required"`
	Description         string `json:"description"`
	Status              string `json:"status" validate:"required,oneof=active inactive planned"`
	Province            string `json:"province" validate:"required"`
	District            string `json:"district" validate:"required"`
	Sector              string `json:"sector" validate:"required"`
	Cell                string `json:"cell"`
	Village             string `json:"village"`
	Latitude            string `json:"latitude" validate:"omitempty,decimal"`
	Longitude           string `json:"longitude" validate:"omitempty,decimal"`
	EstimatedHouseholds string `json:"estimated_households" validate:"omitempty,number"`
	EstimatedCustomers  string `json:"estimated_customers" validate:"omitempty,number"`
}

func NewServiceAreaDraft() ServiceAreaDraft {
	return ServiceAreaDraft{
		Status:              string(models.ServiceAreaActive),
		EstimatedHouseholds: "0",
		EstimatedCustomers:  "0",
	}
}

func ServiceAreaDraftFrom(a models.ServiceArea) ServiceAreaDraft {
	d := ServiceAreaDraft{
		Code:                a.Code,
		Name:                a.Name,
		Description:         a.Description,
		Status:              string(a.Status),
		Province:            a.Province,
		District:            a.District,
		Sector:              a.Sector,
		Cell:                a.Cell,
		Village:             a.Village,
		EstimatedHouseholds: formatInt(a.EstimatedHouseholds),
		EstimatedCustomers:  formatInt(a.EstimatedCustomers),
	}
	if a.Latitude != nil {
		d.Latitude = formatFloat(*a.Latitude)
	}
	if a.Longitude != nil {
		d.Longitude = formatFloat(*a.Longitude)
	}
	return d
}

// CreatePayload always sends the household and customer estimates, defaulting to zero.
func (d ServiceAreaDraft) CreatePayload() models.ServiceAreaPayload {
	return models.ServiceAreaPayload{
		Code:                str(d.Code),
		Name:                str(d.Name),
		Description:         optional(d.Description),
		Status:              str(d.Status),
		Province:            str(d.Province),
		District:            str(d.District),
		Sector:              str(d.Sector),
		Cell:                optional(d.Cell),
		Village:             optional(d.Village),
		Latitude:            optionalFloat(d.Latitude),
		Longitude:           optionalFloat(d.Longitude),
		EstimatedHouseholds: intOr(d.EstimatedHouseholds, 0),
		EstimatedCustomers:  intOr(d.EstimatedCustomers, 0),
	}
}

func (d ServiceAreaDraft) UpdatePayload() models.ServiceAreaPayload {
	return d.CreatePayload()
}
