// Package services wraps each upstream resource in a small typed service.
// Every method issues exactly one request through the shared apiclient.
package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"wastepoint/internal/apiclient"

	"github.com/google/uuid"
)

// ErrInvalidID is returned before any request is sent when a path identifier is not a UUID.
var ErrInvalidID = errors.New("invalid id")

func checkID(kind, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%s %q: %w", kind, id, ErrInvalidID)
	}
	return nil
}

// values builds query params, skipping blank entries so the upstream applies its defaults.
func values(pairs ...string) url.Values {
	v := url.Values{}
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] != "" {
			v.Set(pairs[i], pairs[i+1])
		}
	}
	return v
}

// send dispatches a single-resource call by method name.
func send(ctx context.Context, api *apiclient.Client, method, path string, body, out any) error {
	switch method {
	case http.MethodGet:
		return api.Get(ctx, path, nil, out)
	case http.MethodPatch:
		return api.Patch(ctx, path, body, out)
	default:
		return api.Post(ctx, path, body, out)
	}
}

// Set groups every upstream service behind one client.
type Set struct {
	CollectorPortal *CollectorPortalService
	CustomerPortal  *CustomerPortalService
	ServiceAreas    *ServiceAreaService
	Routes          *RouteService
	Collectors      *CollectorService
	Schedules       *ScheduleService
	Customers       *CustomerService
	Users           *UserService
}

func NewSet(api *apiclient.Client) *Set {
	return &Set{
		CollectorPortal: NewCollectorPortalService(api),
		CustomerPortal:  NewCustomerPortalService(api),
		ServiceAreas:    NewServiceAreaService(api),
		Routes:          NewRouteService(api),
		Collectors:      NewCollectorService(api),
		Schedules:       NewScheduleService(api),
		Customers:       NewCustomerService(api),
		Users:           NewUserService(api),
	}
}
