package models

import "encoding/json"

type ServiceAreaStatus string

const (
	ServiceAreaActive   ServiceAreaStatus = "active"
	ServiceAreaInactive ServiceAreaStatus = "inactive"
	ServiceAreaPlanned  ServiceAreaStatus = "planned"
)

// ServiceArea is a geographic operating region with its administrative hierarchy.
type ServiceArea struct {
	ID                      string            `json:"id"`
	Code                    string            `json:"code"`
	Name                    string            `json:"name"`
	Description             string            `json:"description"`
	Status                  ServiceAreaStatus `json:"status"`
	Province                string            `json:"province"`
	District                string            `json:"district"`
	Sector                  string            `json:"sector"`
	Cell                    string            `json:"cell"`
	Village                 string            `json:"village"`
	Latitude                *float64          `json:"latitude"`
	Longitude               *float64          `json:"longitude"`
	BoundaryGeoJSON         json.RawMessage   `json:"boundary_geojson,omitempty"`
	EstimatedHouseholds     int               `json:"estimated_households"`
	EstimatedCustomers      int               `json:"estimated_customers"`
	ActiveRoutesCount       int               `json:"active_routes_count"`
	AssignedCollectorsCount int               `json:"assigned_collectors_count"`
	FullAddress             string            `json:"full_address"`
	CreatedAt               string            `json:"created_at"`
	UpdatedAt               string            `json:"updated_at"`
	CreatedBy               string            `json:"created_by"`
}

type ServiceAreaStats struct {
	TotalAreas      int `json:"total_areas"`
	ActiveAreas     int `json:"active_areas"`
	InactiveAreas   int `json:"inactive_areas"`
	PlannedAreas    int `json:"planned_areas"`
	TotalHouseholds int `json:"total_households"`
	TotalCustomers  int `json:"total_customers"`
	TotalRoutes     int `json:"total_routes"`
	TotalCollectors int `json:"total_collectors"`
}

// ServiceAreaQueryParams for filtering service areas
type ServiceAreaQueryParams struct {
	Status   string
	Province string
	District string
	Search   string
}

// ServiceAreaPayload is the create/update body. Nil fields are omitted from the request.
type ServiceAreaPayload struct {
	Code                *string          `json:"code,omitempty"`
	Name                *string          `json:"name,omitempty"`
	Description         *string          `json:"description,omitempty"`
	Status              *string          `json:"status,omitempty"`
	Province            *string          `json:"province,omitempty"`
	District            *string          `json:"district,omitempty"`
	Sector              *string          `json:"sector,omitempty"`
	Cell                *string          `json:"cell,omitempty"`
	Village             *string          `json:"village,omitempty"`
	Latitude            *float64         `json:"latitude,omitempty"`
	Longitude           *float64         `json:"longitude,omitempty"`
	BoundaryGeoJSON     *json.RawMessage `json:"boundary_geojson,omitempty"`
	EstimatedHouseholds *int             `json:"estimated_households,omitempty"`
	EstimatedCustomers  *int             `json:"estimated_customers,omitempty"`
}
