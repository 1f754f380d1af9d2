package services

import (
	"context"
	"net/http"

	"wastepoint/internal/apiclient"
	"wastepoint/internal/models"
)

const collectorsBase = "/operations/collectors/"

type CollectorService struct {
	api *apiclient.Client
}

func NewCollectorService(api *apiclient.Client) *CollectorService {
	return &CollectorService{api: api}
}

func (s *CollectorService) List(
	ctx context.Context,
	params models.CollectorQueryParams,
) (*models.ListResponse[models.Collector], error) {
	q := values(
		"status", params.Status,
		"service_area", params.ServiceArea,
		"employment_type", params.EmploymentType,
		"search", params.Search,
	)
	var out models.ListResponse[models.Collector]
	if err := s.api.Get(ctx, collectorsBase, q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *CollectorService) Get(ctx context.Context, id string) (*models.Collector, error) {
	return s.one(ctx, http.MethodGet, id, "")
}

// Available lists active collectors that can take another route.
func (s *CollectorService) Available(ctx context.Context) ([]models.Collector, error) {
	var out []models.Collector
	if err := s.api.Get(ctx, collectorsBase+"available/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *CollectorService) Create(ctx context.Context, payload models.CollectorPayload) (*models.Collector, error) {
	var out models.Collector
	if err := s.api.Post(ctx, collectorsBase, payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *CollectorService) Update(ctx context.Context, id string, payload models.CollectorPayload) (*models.Collector, error) {
	if err := checkID("collector", id); err != nil {
		return nil, err
	}
	var out models.Collector
	if err := s.api.Patch(ctx, collectorsBase+id+"/", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *CollectorService) Delete(ctx context.Context, id string) error {
	if err := checkID("collector", id); err != nil {
		return err
	}
	return s.api.Delete(ctx, collectorsBase+id+"/")
}

func (s *CollectorService) Activate(ctx context.Context, id string) (*models.Collector, error) {
	return s.one(ctx, http.MethodPost, id, "activate/")
}

func (s *CollectorService) Suspend(ctx context.Context, id string) (*models.Collector, error) {
	return s.one(ctx, http.MethodPost, id, "suspend/")
}

func (s *CollectorService) SetOnLeave(ctx context.Context, id string) (*models.Collector, error) {
	return s.one(ctx, http.MethodPost, id, "set_on_leave/")
}

func (s *CollectorService) Routes(ctx context.Context, id string) ([]models.Route, error) {
	if err := checkID("collector", id); err != nil {
		return nil, err
	}
	var out []models.Route
	if err := s.api.Get(ctx, collectorsBase+id+"/routes/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *CollectorService) Schedules(ctx context.Context, id string) ([]models.Schedule, error) {
	if err := checkID("collector", id); err != nil {
		return nil, err
	}
	var out []models.Schedule
	if err := s.api.Get(ctx, collectorsBase+id+"/schedules/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *CollectorService) Performance(ctx context.Context, id string) (*models.CollectorPerformance, error) {
	if err := checkID("collector", id); err != nil {
		return nil, err
	}
	var out models.CollectorPerformance
	if err := s.api.Get(ctx, collectorsBase+id+"/performance/", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *CollectorService) one(ctx context.Context, method, id, action string) (*models.Collector, error) {
	if err := checkID("collector", id); err != nil {
		return nil, err
	}
	var out models.Collector
	if err := send(ctx, s.api, method, collectorsBase+id+"/"+action, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
