package forms

import (
	"strings"
	"time"

	"wastepoint/internal/models"
)

type CollectorDraft struct {
	EmployeeID      string   `json:"employee_id" validate:"required"`
	FirstName       string   `json:"first_name" validate:"required"`
	LastName        string   `json:"last_name" validate:"required"`
	Email           string   `json:"email" validate:"required,email"`
	Phone           string   `json:"phone" validate:"required"`
	NationalID      string   `json:"national_id"`
	Address         string   `json:"address"`
	EmploymentType  string   `json:"employment_type" validate:"required,oneof=full_time part_time contractor temporary"`
	HireDate        string   `json:"hire_date" validate:"required,isodate"`
	TerminationDate string   `json:"termination_date" validate:"omitempty,isodate"`
	Status          string   `json:"status" validate:"required,oneof=active on_leave inactive suspended"`
	DeviceID        string   `json:"device_id"`
	NFCReaderID     string   `json:"nfc_reader_id"`
	ServiceAreas    []string `json:"service_areas" validate:"dive,uuid"`
}

func (CollectorDraft) labels() map[string]string {
	return map[string]string{"employee_id": "Employee ID", "nfc_reader_id": "NFC reader ID"}
}

func NewCollectorDraft(today time.Time) CollectorDraft {
	return CollectorDraft{
		EmploymentType: "full_time",
		HireDate:       today.Format(time.DateOnly),
		Status:         string(models.CollectorActive),
		ServiceAreas:   []string{},
	}
}

func CollectorDraftFrom(c models.Collector) CollectorDraft {
	areas := c.ServiceAreas
	if areas == nil {
		areas = []string{}
	}
	return CollectorDraft{
		EmployeeID:      c.EmployeeID,
		FirstName:       c.FirstName,
		LastName:        c.LastName,
		Email:           c.Email,
		Phone:           c.Phone,
		NationalID:      c.NationalID,
		Address:         c.Address,
		EmploymentType:  c.EmploymentType,
		HireDate:        c.HireDate,
		TerminationDate: deref(c.TerminationDate),
		Status:          string(c.Status),
		DeviceID:        c.DeviceID,
		NFCReaderID:     c.NFCReaderID,
		ServiceAreas:    areas,
	}
}

func (d CollectorDraft) CreatePayload() models.CollectorPayload {
	p := models.CollectorPayload{
		EmployeeID:      str(d.EmployeeID),
		FirstName:       str(d.FirstName),
		LastName:        str(d.LastName),
		Email:           str(strings.ToLower(d.Email)),
		Phone:           str(d.Phone),
		NationalID:      optional(d.NationalID),
		Address:         optional(d.Address),
		EmploymentType:  str(d.EmploymentType),
		HireDate:        str(d.HireDate),
		TerminationDate: optional(d.TerminationDate),
		Status:          str(d.Status),
		DeviceID:        optional(d.DeviceID),
		NFCReaderID:     optional(d.NFCReaderID),
	}
	if len(d.ServiceAreas) > 0 {
		p.ServiceAreas = d.ServiceAreas
	}
	return p
}

func (d CollectorDraft) UpdatePayload() models.CollectorPayload {
	return d.CreatePayload()
}
