package forms

import (
	"strings"
	"time"

	"wastepoint/internal/models"
)

const (
	defaultTimeStart = "08:00"
	defaultTimeEnd   = "17:00"
)

// ScheduleDraft is the schedule form as typed by the user.
type ScheduleDraft struct {
	Route              string `json:"route" validate:"required,uuid"`
	Collector          string `json:"collector" validate:"omitempty,uuid"`
	ScheduledDate      string `json:"scheduled_date" validate:"required,isodate"`
	ScheduledTimeStart string `json:"scheduled_time_start" validate:"required,clock"`
	ScheduledTimeEnd   string `json:"scheduled_time_end" validate:"required,clock"`
	CustomersScheduled string `json:"customers_scheduled" validate:"omitempty,number"`
	Notes              string `json:"notes"`
	Status             string `json:"status" validate:"omitempty,oneof=scheduled in_progress completed cancelled missed"`
	CancellationReason string `json:"cancellation_reason"`
}

func (ScheduleDraft) labels() map[string]string {
	return map[string]string{
		"scheduled_date":       "Date",
		"scheduled_time_start": "Start time",
		"scheduled_time_end":   "End time",
	}
}

// NewScheduleDraft returns the create form defaults for the given day.
func NewScheduleDraft(today time.Time) ScheduleDraft {
	return ScheduleDraft{
		ScheduledDate:      today.Format(time.DateOnly),
		ScheduledTimeStart: defaultTimeStart,
		ScheduledTimeEnd:   defaultTimeEnd,
		Status:             string(models.ScheduleScheduled),
	}
}

// ScheduleDraftFrom populates the edit form from a fetched schedule.
func ScheduleDraftFrom(s models.Schedule) ScheduleDraft {
	return ScheduleDraft{
		Route:              s.Route,
		Collector:          deref(s.Collector),
		ScheduledDate:      s.ScheduledDate,
		ScheduledTimeStart: clock(s.ScheduledTimeStart, defaultTimeStart),
		ScheduledTimeEnd:   clock(s.ScheduledTimeEnd, defaultTimeEnd),
		CustomersScheduled: formatInt(s.CustomersScheduled),
		Notes:              s.Notes,
		Status:             string(s.Status),
		CancellationReason: s.CancellationReason,
	}
}

// ApplyRouteDefaults copies the route's default collector and time window into a new
// schedule. Routes without a default collector leave the draft untouched.
func (d *ScheduleDraft) ApplyRouteDefaults(r models.Route) {
	d.Route = r.ID
	if r.DefaultCollector == nil || *r.DefaultCollector == "" {
		return
	}
	d.Collector = *r.DefaultCollector
	d.ScheduledTimeStart = clock(r.CollectionTimeStart, defaultTimeStart)
	d.ScheduledTimeEnd = clock(r.CollectionTimeEnd, defaultTimeEnd)
}

func (d ScheduleDraft) CreatePayload() models.SchedulePayload {
	return models.SchedulePayload{
		Route:              str(d.Route),
		Collector:          optional(d.Collector),
		ScheduledDate:      str(d.ScheduledDate),
		ScheduledTimeStart: str(d.ScheduledTimeStart),
		ScheduledTimeEnd:   str(d.ScheduledTimeEnd),
		CustomersScheduled: optionalInt(d.CustomersScheduled),
		Notes:              optional(d.Notes),
	}
}

// UpdatePayload adds the status; a cancellation reason is only sent for cancelled schedules.
func (d ScheduleDraft) UpdatePayload() models.SchedulePayload {
	p := d.CreatePayload()
	p.Status = optional(d.Status)
	if d.Status == string(models.ScheduleCancelled) {
		p.CancellationReason = str(d.CancellationReason)
	}
	return p
}

// CompleteDraft is the end-of-run report a collector or dispatcher submits.
type CompleteDraft struct {
	CustomersCollected int    `json:"customers_collected" validate:"gte=0"`
	CustomersMissed    int    `json:"customers_missed" validate:"gte=0"`
	Notes              string `json:"notes"`
}

func (d CompleteDraft) Request() models.CompleteScheduleRequest {
	return models.CompleteScheduleRequest{
		CustomersCollected: d.CustomersCollected,
		CustomersMissed:    d.CustomersMissed,
		Notes:              strings.TrimSpace(d.Notes),
	}
}
