package models

type ScheduleStatus string

const (
	ScheduleScheduled  ScheduleStatus = "scheduled"
	ScheduleInProgress ScheduleStatus = "in_progress"
	ScheduleCompleted  ScheduleStatus = "completed"
	ScheduleCancelled  ScheduleStatus = "cancelled"
	ScheduleMissed     ScheduleStatus = "missed"
)

// Schedule is one dated occurrence of a route's collection run.
type Schedule struct {
	ID                 string         `json:"id"`
	Route              string         `json:"route"`
	RouteName          string         `json:"route_name"`
	Collector          *string        `json:"collector"`
	CollectorName      *string        `json:"collector_name"`
	ServiceAreaName    string         `json:"service_area_name"`
	ScheduledDate      string         `json:"scheduled_date"`
	ScheduledTimeStart string         `json:"scheduled_time_start"`
	ScheduledTimeEnd   string         `json:"scheduled_time_end"`
	ActualStartTime    *string        `json:"actual_start_time"`
	ActualEndTime      *string        `json:"actual_end_time"`
	Status             ScheduleStatus `json:"status"`
	CustomersScheduled int            `json:"customers_scheduled"`
	CustomersCollected int            `json:"customers_collected"`
	CustomersMissed    int            `json:"customers_missed"`
	Notes              string         `json:"notes"`
	CancellationReason string         `json:"cancellation_reason"`
	CollectionRate     float64        `json:"collection_rate"`
	DurationMinutes    *int           `json:"duration_minutes"`
	IsToday            bool           `json:"is_today"`
	IsOverdue          bool           `json:"is_overdue"`
	CreatedAt          string         `json:"created_at"`
	UpdatedAt          string         `json:"updated_at"`
	CreatedBy          string         `json:"created_by"`
}

type ScheduleQueryParams struct {
	Status        string
	Route         string
	Collector     string
	ScheduledDate string
	DateFrom      string
	DateTo        string
	Search        string
}

// ScheduleStatuses lists every status the upstream can report.
var ScheduleStatuses = []string{"scheduled", "in_progress", "completed", "cancelled", "missed"}

// SchedulePayload is the create/update body. Nil fields are omitted from the request.
type SchedulePayload struct {
	Route              *string `json:"route,omitempty"`
	Collector          *string `json:"collector,omitempty"`
	ScheduledDate      *string `json:"scheduled_date,omitempty"`
	ScheduledTimeStart *string `json:"scheduled_time_start,omitempty"`
	ScheduledTimeEnd   *string `json:"scheduled_time_end,omitempty"`
	CustomersScheduled *int    `json:"customers_scheduled,omitempty"`
	Notes              *string `json:"notes,omitempty"`

	// update only
	Status             *string `json:"status,omitempty"`
	ActualStartTime    *string `json:"actual_start_time,omitempty"`
	ActualEndTime      *string `json:"actual_end_time,omitempty"`
	CustomersCollected *int    `json:"customers_collected,omitempty"`
	CustomersMissed    *int    `json:"customers_missed,omitempty"`
	CancellationReason *string `json:"cancellation_reason,omitempty"`
}

type CompleteScheduleRequest struct {
	CustomersCollected int    `json:"customers_collected"`
	CustomersMissed    int    `json:"customers_missed"`
	Notes              string `json:"notes,omitempty"`
}

type CancelScheduleRequest struct {
	Reason string `json:"reason,omitempty"`
}
