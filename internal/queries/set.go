package queries

import (
	"wastepoint/internal/query"
	"wastepoint/internal/services"
)

// Set is every query/mutation group bound to one session cache.
type Set struct {
	Cache           *query.Cache
	CollectorPortal *CollectorPortal
	CustomerPortal  *CustomerPortal
	ServiceAreas    *ServiceAreas
	Routes          *Routes
	Collectors      *Collectors
	Schedules       *Schedules
	Customers       *Customers
}

func NewSet(c *query.Cache, svcs *services.Set) *Set {
	return &Set{
		Cache:           c,
		CollectorPortal: NewCollectorPortal(c, svcs.CollectorPortal),
		CustomerPortal:  NewCustomerPortal(c, svcs.CustomerPortal),
		ServiceAreas:    NewServiceAreas(c, svcs.ServiceAreas),
		Routes:          NewRoutes(c, svcs.Routes),
		Collectors:      NewCollectors(c, svcs.Collectors),
		Schedules:       NewSchedules(c, svcs.Schedules),
		Customers:       NewCustomers(c, svcs.Customers),
	}
}
