package models

type CollectorStatus string

const (
	CollectorActive    CollectorStatus = "active"
	CollectorOnLeave   CollectorStatus = "on_leave"
	CollectorInactive  CollectorStatus = "inactive"
	CollectorSuspended CollectorStatus = "suspended"
)

type Collector struct {
	ID                  string          `json:"id"`
	EmployeeID          string          `json:"employee_id"`
	User                *string         `json:"user"`
	FirstName           string          `json:"first_name"`
	LastName            string          `json:"last_name"`
	FullName            string          `json:"full_name"`
	Email               string          `json:"email"`
	Phone               string          `json:"phone"`
	NationalID          string          `json:"national_id"`
	Photo               *string         `json:"photo"`
	Address             string          `json:"address"`
	EmploymentType      string          `json:"employment_type"`
	HireDate            string          `json:"hire_date"`
	TerminationDate     *string         `json:"termination_date"`
	Status              CollectorStatus `json:"status"`
	DeviceID            string          `json:"device_id"`
	NFCReaderID         string          `json:"nfc_reader_id"`
	Rating              string          `json:"rating"`
	TotalCollections    int             `json:"total_collections"`
	ServiceAreas        []string        `json:"service_areas"`
	ServiceAreaNames    []string        `json:"service_area_names"`
	AssignedRoutesCount int             `json:"assigned_routes_count"`
	IsAvailable         bool            `json:"is_available"`
	CreatedAt           string          `json:"created_at"`
	UpdatedAt           string          `json:"updated_at"`
	CreatedBy           string          `json:"created_by"`
}

type CollectorPerformance struct {
	TotalCollections     int     `json:"total_collections"`
	TotalSchedules       int     `json:"total_schedules"`
	CompletedSchedules   int     `json:"completed_schedules"`
	MissedSchedules      int     `json:"missed_schedules"`
	CompletionRate       float64 `json:"completion_rate"`
	Rating               float64 `json:"rating"`
	CollectionsThisMonth int     `json:"collections_this_month"`
}

type CollectorQueryParams struct {
	Status         string
	ServiceArea    string
	EmploymentType string
	Search         string
}

// EmploymentTypes accepted by the upstream.
var EmploymentTypes = []string{"full_time", "part_time", "contractor", "temporary"}

// CollectorPayload is the create/update body. Nil fields are omitted from the request.
type CollectorPayload struct {
	EmployeeID      *string  `json:"employee_id,omitempty"`
	User            *string  `json:"user,omitempty"`
	FirstName       *string  `json:"first_name,omitempty"`
	LastName        *string  `json:"last_name,omitempty"`
	Email           *string  `json:"email,omitempty"`
	Phone           *string  `json:"phone,omitempty"`
	NationalID      *string  `json:"national_id,omitempty"`
	Address         *string  `json:"address,omitempty"`
	EmploymentType  *string  `json:"employment_type,omitempty"`
	HireDate        *string  `json:"hire_date,omitempty"`
	TerminationDate *string  `json:"termination_date,omitempty"`
	Status          *string  `json:"status,omitempty"`
	DeviceID        *string  `json:"device_id,omitempty"`
	NFCReaderID     *string  `json:"nfc_reader_id,omitempty"`
	Rating          *float64 `json:"rating,omitempty"`
	ServiceAreas    []string `json:"service_areas,omitempty"`
}
