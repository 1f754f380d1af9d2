package services

import (
	"context"
	"net/http"

	"wastepoint/internal/apiclient"
	"wastepoint/internal/models"
)

const routesBase = "/operations/routes/"

type RouteService struct {
	api *apiclient.Client
}

func NewRouteService(api *apiclient.Client) *RouteService {
	return &RouteService{api: api}
}

func (s *RouteService) List(ctx context.Context, params models.RouteQueryParams) (*models.ListResponse[models.Route], error) {
	q := values(
		"status", params.Status,
		"service_area", params.ServiceArea,
		"frequency", params.Frequency,
		"search", params.Search,
	)
	var out models.ListResponse[models.Route]
	if err := s.api.Get(ctx, routesBase, q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *RouteService) Get(ctx context.Context, id string) (*models.Route, error) {
	return s.one(ctx, http.MethodGet, id, "", nil)
}

func (s *RouteService) Create(ctx context.Context, payload models.RoutePayload) (*models.Route, error) {
	var out models.Route
	if err := s.api.Post(ctx, routesBase, payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *RouteService) Update(ctx context.Context, id string, payload models.RoutePayload) (*models.Route, error) {
	return s.one(ctx, http.MethodPatch, id, "", payload)
}

func (s *RouteService) Delete(ctx context.Context, id string) error {
	if err := checkID("route", id); err != nil {
		return err
	}
	return s.api.Delete(ctx, routesBase+id+"/")
}

// AssignCollector sets the route's default collector.
func (s *RouteService) AssignCollector(ctx context.Context, id, collectorID string) (*models.Route, error) {
	if err := checkID("collector", collectorID); err != nil {
		return nil, err
	}
	return s.one(ctx, http.MethodPost, id, "assign_collector/", models.AssignCollectorRequest{CollectorID: collectorID})
}

func (s *RouteService) Schedules(ctx context.Context, id string) ([]models.Schedule, error) {
	if err := checkID("route", id); err != nil {
		return nil, err
	}
	var out []models.Schedule
	if err := s.api.Get(ctx, routesBase+id+"/schedules/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GenerateSchedule asks the upstream to materialise schedules for the date range.
func (s *RouteService) GenerateSchedule(
	ctx context.Context,
	id string,
	req models.GenerateScheduleRequest,
) (*models.GenerateScheduleResponse, error) {
	if err := checkID("route", id); err != nil {
		return nil, err
	}
	var out models.GenerateScheduleResponse
	if err := s.api.Post(ctx, routesBase+id+"/generate_schedule/", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *RouteService) one(ctx context.Context, method, id, action string, body any) (*models.Route, error) {
	if err := checkID("route", id); err != nil {
		return nil, err
	}
	var out models.Route
	if err := send(ctx, s.api, method, routesBase+id+"/"+action, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
