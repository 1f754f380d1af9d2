package forms

import (
	"encoding/json"

	"wastepoint/internal/models"
)

type RouteDraft struct {
	Code                     string          `json:"code" validate:"required"`
	Name                     string          `json:"name" validate:"required"`
	Description              string          `json:"description"`
	Status                   string          `json:"status" validate:"required,oneof=active inactive archived"`
	ServiceArea              string          `json:"service_area" validate:"required,uuid"`
	DefaultCollector         string          `json:"default_collector" validate:"omitempty,uuid"`
	SequenceNumber           string          `json:"sequence_number" validate:"omitempty,number"`
	EstimatedDistanceKm      string          `json:"estimated_distance_km" validate:"omitempty,decimal"`
	EstimatedDurationMinutes string          `json:"estimated_duration_minutes" validate:"omitempty,number"`
	Frequency                string          `json:"frequency" validate:"required,oneof=daily twice_weekly weekly biweekly monthly"`
	CollectionDays           []string        `json:"collection_days" validate:"dive,oneof=monday tuesday wednesday thursday friday saturday sunday"`
	CollectionTimeStart      string          `json:"collection_time_start" validate:"required,clock"`
	CollectionTimeEnd        string          `json:"collection_time_end" validate:"required,clock"`
	PathGeoJSON              json.RawMessage `json:"path_geojson,omitempty"`
}

func NewRouteDraft() RouteDraft {
	return RouteDraft{
		Status:              string(models.RouteActive),
		SequenceNumber:      "1",
		Frequency:           "weekly",
		CollectionDays:      []string{},
		CollectionTimeStart: defaultTimeStart,
		CollectionTimeEnd:   defaultTimeEnd,
	}
}

func RouteDraftFrom(r models.Route) RouteDraft {
	seq := formatInt(r.SequenceNumber)
	if seq == "" {
		seq = "1"
	}
	days := r.CollectionDays
	if days == nil {
		days = []string{}
	}
	return RouteDraft{
		Code:                     r.Code,
		Name:                     r.Name,
		Description:              r.Description,
		Status:                   string(r.Status),
		ServiceArea:              r.ServiceArea,
		DefaultCollector:         deref(r.DefaultCollector),
		SequenceNumber:           seq,
		EstimatedDistanceKm:      formatFloat(r.EstimatedDistanceKm),
		EstimatedDurationMinutes: formatInt(r.EstimatedDurationMinutes),
		Frequency:                r.Frequency,
		CollectionDays:           days,
		CollectionTimeStart:      clock(r.CollectionTimeStart, defaultTimeStart),
		CollectionTimeEnd:        clock(r.CollectionTimeEnd, defaultTimeEnd),
		PathGeoJSON:              r.PathGeoJSON,
	}
}

func (d RouteDraft) CreatePayload() models.RoutePayload {
	p := models.RoutePayload{
		Code:                     str(d.Code),
		Name:                     str(d.Name),
		Description:              optional(d.Description),
		Status:                   str(d.Status),
		ServiceArea:              str(d.ServiceArea),
		DefaultCollector:         optional(d.DefaultCollector),
		SequenceNumber:           intOr(d.SequenceNumber, 1),
		EstimatedDistanceKm:      optionalFloat(d.EstimatedDistanceKm),
		EstimatedDurationMinutes: optionalInt(d.EstimatedDurationMinutes),
		Frequency:                str(d.Frequency),
		CollectionDays:           d.CollectionDays,
		CollectionTimeStart:      str(d.CollectionTimeStart),
		CollectionTimeEnd:        str(d.CollectionTimeEnd),
	}
	if len(d.PathGeoJSON) > 0 {
		raw := d.PathGeoJSON
		p.PathGeoJSON = &raw
	}
	return p
}

// UpdatePayload sends the full form; the edit screen always holds every field.
func (d RouteDraft) UpdatePayload() models.RoutePayload {
	return d.CreatePayload()
}

// GenerateDraft asks the upstream to create a route's schedules over a date range.
type GenerateDraft struct {
	StartDate string `json:"start_date" validate:"required,isodate"`
	EndDate   string `json:"end_date" validate:"required,isodate"`
}

func (d GenerateDraft) Resolve() (models.GenerateScheduleRequest, error) {
	if err := Check(d); err != nil {
		return models.GenerateScheduleRequest{}, err
	}
	// ISO dates order lexically
	if d.EndDate < d.StartDate {
		verr := &ValidationError{}
		verr.add("end_date", "End date must be on or after the start date")
		return models.GenerateScheduleRequest{}, verr
	}
	return models.GenerateScheduleRequest{StartDate: d.StartDate, EndDate: d.EndDate}, nil
}
