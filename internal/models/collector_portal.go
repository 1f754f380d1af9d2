package models

import "encoding/json"

// CollectorProfile is the signed-in collector as the collector portal sees them.
type CollectorProfile struct {
	ID                  *string    `json:"id"`
	EmployeeID          string     `json:"employee_id,omitempty"`
	FirstName           string     `json:"first_name,omitempty"`
	LastName            string     `json:"last_name,omitempty"`
	FullName            string     `json:"full_name"`
	Email               string     `json:"email"`
	Phone               string     `json:"phone,omitempty"`
	Address             string     `json:"address,omitempty"`
	Photo               *string    `json:"photo,omitempty"`
	EmploymentType      string     `json:"employment_type,omitempty"`
	HireDate            string     `json:"hire_date,omitempty"`
	Status              string     `json:"status"`
	Rating              float64    `json:"rating"`
	TotalCollections    int        `json:"total_collections"`
	AssignedRoutesCount int        `json:"assigned_routes_count,omitempty"`
	ServiceAreas        []NamedRef `json:"service_areas,omitempty"`
	Message             string     `json:"message,omitempty"`
}

type NamedRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type CollectorDashboardSummary struct {
	TodaySchedules int `json:"today_schedules"`
	PendingPickups int `json:"pending_pickups"`
	CompletedToday int `json:"completed_today"`
	AssignedRoutes int `json:"assigned_routes"`
}

type CollectorDashboard struct {
	Collector         CollectorProfile          `json:"collector"`
	Summary           CollectorDashboardSummary `json:"summary"`
	TodaySchedules    []CollectorSchedule       `json:"today_schedules"`
	UpcomingSchedules []CollectorSchedule       `json:"upcoming_schedules,omitempty"`
	Message           string                    `json:"message,omitempty"`
}

type CollectorSchedule struct {
	ID                 string         `json:"id"`
	RouteID            string         `json:"route_id"`
	RouteName          string         `json:"route_name"`
	RouteCode          string         `json:"route_code,omitempty"`
	ServiceAreaName    string         `json:"service_area_name,omitempty"`
	ScheduledDate      string         `json:"scheduled_date"`
	ScheduledTimeStart string         `json:"scheduled_time_start"`
	ScheduledTimeEnd   string         `json:"scheduled_time_end"`
	Status             ScheduleStatus `json:"status"`
	CustomersScheduled int            `json:"customers_scheduled"`
	CustomersCollected int            `json:"customers_collected"`
	CustomersMissed    int            `json:"customers_missed"`
	ActualStartTime    *string        `json:"actual_start_time,omitempty"`
	ActualEndTime      *string        `json:"actual_end_time,omitempty"`
	Notes              string         `json:"notes,omitempty"`
	RouteLatitude      *float64       `json:"route_latitude,omitempty"`
	RouteLongitude     *float64       `json:"route_longitude,omitempty"`
}

type CollectorScheduleDetail struct {
	CollectorSchedule
	Route struct {
		ID                       string          `json:"id"`
		Name                     string          `json:"name"`
		Code                     string          `json:"code"`
		Description              string          `json:"description,omitempty"`
		EstimatedDistanceKm      float64         `json:"estimated_distance_km"`
		EstimatedDurationMinutes int             `json:"estimated_duration_minutes"`
		PathGeoJSON              json.RawMessage `json:"path_geojson,omitempty"`
	} `json:"route"`
	ServiceArea struct {
		ID        *string  `json:"id"`
		Name      *string  `json:"name"`
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
	} `json:"service_area"`
	Customers []ScheduleCustomer `json:"customers"`
}

type ScheduleCustomer struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	CompanyName string   `json:"company_name,omitempty"`
	Phone       string   `json:"phone,omitempty"`
	Address     string   `json:"address,omitempty"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
}

// CollectorRoute is a route assigned to the signed-in collector, as drawn on the map.
type CollectorRoute struct {
	ID                       string          `json:"id"`
	Name                     string          `json:"name"`
	Code                     string          `json:"code"`
	Description              string          `json:"description,omitempty"`
	ServiceAreaID            string          `json:"service_area_id,omitempty"`
	ServiceAreaName          string          `json:"service_area_name,omitempty"`
	EstimatedDistanceKm      float64         `json:"estimated_distance_km"`
	EstimatedDurationMinutes int             `json:"estimated_duration_minutes"`
	Frequency                string          `json:"frequency"`
	CollectionDays           []string        `json:"collection_days"`
	CollectionTimeStart      string          `json:"collection_time_start"`
	CollectionTimeEnd        string          `json:"collection_time_end"`
	CustomersCount           int             `json:"customers_count"`
	PathGeoJSON              json.RawMessage `json:"path_geojson,omitempty"`
	Latitude                 *float64        `json:"latitude,omitempty"`
	Longitude                *float64        `json:"longitude,omitempty"`
}

type ScheduleActionResponse struct {
	Message         string  `json:"message"`
	ID              string  `json:"id"`
	Status          string  `json:"status"`
	ActualStartTime *string `json:"actual_start_time,omitempty"`
	ActualEndTime   *string `json:"actual_end_time,omitempty"`
}

type LocationUpdateResponse struct {
	Message   string  `json:"message"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timestamp string  `json:"timestamp"`
}
