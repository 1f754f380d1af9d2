package services

import (
	"context"
	"net/http"

	"wastepoint/internal/apiclient"
	"wastepoint/internal/models"
)

const serviceAreasBase = "/operations/service-areas/"

type ServiceAreaService struct {
	api *apiclient.Client
}

func NewServiceAreaService(api *apiclient.Client) *ServiceAreaService {
	return &ServiceAreaService{api: api}
}

// List returns service areas matching the given filters.
func (s *ServiceAreaService) List(
	ctx context.Context,
	params models.ServiceAreaQueryParams,
) (*models.ListResponse[models.ServiceArea], error) {
	q := values(
		"status", params.Status,
		"province", params.Province,
		"district", params.District,
		"search", params.Search,
	)
	var out models.ListResponse[models.ServiceArea]
	if err := s.api.Get(ctx, serviceAreasBase, q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *ServiceAreaService) Get(ctx context.Context, id string) (*models.ServiceArea, error) {
	return s.one(ctx, http.MethodGet, id, "", nil)
}

func (s *ServiceAreaService) Stats(ctx context.Context) (*models.ServiceAreaStats, error) {
	var out models.ServiceAreaStats
	if err := s.api.Get(ctx, serviceAreasBase+"stats/", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *ServiceAreaService) Create(ctx context.Context, payload models.ServiceAreaPayload) (*models.ServiceArea, error) {
	var out models.ServiceArea
	if err := s.api.Post(ctx, serviceAreasBase, payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *ServiceAreaService) Update(ctx context.Context, id string, payload models.ServiceAreaPayload) (*models.ServiceArea, error) {
	return s.one(ctx, http.MethodPatch, id, "", payload)
}

func (s *ServiceAreaService) Delete(ctx context.Context, id string) error {
	if err := checkID("service area", id); err != nil {
		return err
	}
	return s.api.Delete(ctx, serviceAreasBase+id+"/")
}

func (s *ServiceAreaService) Activate(ctx context.Context, id string) (*models.ServiceArea, error) {
	return s.one(ctx, http.MethodPost, id, "activate/", nil)
}

func (s *ServiceAreaService) Deactivate(ctx context.Context, id string) (*models.ServiceArea, error) {
	return s.one(ctx, http.MethodPost, id, "deactivate/", nil)
}

// Routes lists the routes inside a service area.
func (s *ServiceAreaService) Routes(ctx context.Context, id string) ([]models.Route, error) {
	if err := checkID("service area", id); err != nil {
		return nil, err
	}
	var out []models.Route
	if err := s.api.Get(ctx, serviceAreasBase+id+"/routes/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Collectors lists the collectors assigned to a service area.
func (s *ServiceAreaService) Collectors(ctx context.Context, id string) ([]models.Collector, error) {
	if err := checkID("service area", id); err != nil {
		return nil, err
	}
	var out []models.Collector
	if err := s.api.Get(ctx, serviceAreasBase+id+"/collectors/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *ServiceAreaService) one(ctx context.Context, method, id, action string, body any) (*models.ServiceArea, error) {
	if err := checkID("service area", id); err != nil {
		return nil, err
	}
	var out models.ServiceArea
	if err := send(ctx, s.api, method, serviceAreasBase+id+"/"+action, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
