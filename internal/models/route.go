package models

import "encoding/json"

type RouteStatus string

const (
	RouteActive   RouteStatus = "active"
	RouteInactive RouteStatus = "inactive"
	RouteArchived RouteStatus = "archived"
)

// Frequency values accepted by the upstream for route collection cadence.
var Frequencies = []string{"daily", "twice_weekly", "weekly", "biweekly", "monthly"}

type Route struct {
	ID                        string          `json:"id"`
	Code                      string          `json:"code"`
	Name                      string          `json:"name"`
	Description               string          `json:"description"`
	Status                    RouteStatus     `json:"status"`
	ServiceArea               string          `json:"service_area"`
	ServiceAreaName           string          `json:"service_area_name"`
	DefaultCollector          *string         `json:"default_collector"`
	DefaultCollectorName      *string         `json:"default_collector_name"`
	SequenceNumber            int             `json:"sequence_number"`
	EstimatedDistanceKm       float64         `json:"estimated_distance_km"`
	EstimatedDurationMinutes  int             `json:"estimated_duration_minutes"`
	PathGeoJSON               json.RawMessage `json:"path_geojson,omitempty"`
	Latitude                  *float64        `json:"latitude,omitempty"`
	Longitude                 *float64        `json:"longitude,omitempty"`
	Frequency                 string          `json:"frequency"`
	CollectionDays            []string        `json:"collection_days"`
	CollectionTimeStart       string          `json:"collection_time_start"`
	CollectionTimeEnd         string          `json:"collection_time_end"`
	CustomersCount            int             `json:"customers_count"`
	CollectionScheduleDisplay string          `json:"collection_schedule_display"`
	CreatedAt                 string          `json:"created_at"`
	UpdatedAt                 string          `json:"updated_at"`
	CreatedBy                 string          `json:"created_by"`
}

type RouteQueryParams struct {
	Status      string
	ServiceArea string
	Frequency   string
	Search      string
}

// RoutePayload is the create/update body. Nil fields are omitted from the request.
type RoutePayload struct {
	Code                     *string          `json:"code,omitempty"`
	Name                     *string          `json:"name,omitempty"`
	Description              *string          `json:"description,omitempty"`
	Status                   *string          `json:"status,omitempty"`
	ServiceArea              *string          `json:"service_area,omitempty"`
	DefaultCollector         *string          `json:"default_collector,omitempty"`
	SequenceNumber           *int             `json:"sequence_number,omitempty"`
	EstimatedDistanceKm      *float64         `json:"estimated_distance_km,omitempty"`
	EstimatedDurationMinutes *int             `json:"estimated_duration_minutes,omitempty"`
	PathGeoJSON              *json.RawMessage `json:"path_geojson,omitempty"`
	Frequency                *string          `json:"frequency,omitempty"`
	CollectionDays           []string         `json:"collection_days,omitempty"`
	CollectionTimeStart      *string          `json:"collection_time_start,omitempty"`
	CollectionTimeEnd        *string          `json:"collection_time_end,omitempty"`
}

type AssignCollectorRequest struct {
	CollectorID string `json:"collector_id"`
}

type GenerateScheduleRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type GenerateScheduleResponse struct {
	Message   string     `json:"message"`
	Schedules []Schedule `json:"schedules"`
}
