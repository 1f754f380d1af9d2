package services

import (
	"context"

	"wastepoint/internal/apiclient"
	"wastepoint/internal/models"
)

const collectorPortalBase = "/operations/collector-portal"

// CollectorPortalService serves the signed-in collector's own data.
type CollectorPortalService struct {
	api *apiclient.Client
}

func NewCollectorPortalService(api *apiclient.Client) *CollectorPortalService {
	return &CollectorPortalService{api: api}
}

func (s *CollectorPortalService) GetDashboard(ctx context.Context) (*models.CollectorDashboard, error) {
	var out models.CollectorDashboard
	if err := s.api.Get(ctx, collectorPortalBase+"/dashboard/", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetSchedules lists the collector's schedules. date is one of today, upcoming, past or week.
func (s *CollectorPortalService) GetSchedules(
	ctx context.Context,
	date, status string,
) (*models.ListResponse[models.CollectorSchedule], error) {
	var out models.ListResponse[models.CollectorSchedule]
	params := values("date", date, "status", status)
	if err := s.api.Get(ctx, collectorPortalBase+"/schedules/", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *CollectorPortalService) GetScheduleDetail(ctx context.Context, id string) (*models.CollectorScheduleDetail, error) {
	if err := checkID("schedule", id); err != nil {
		return nil, err
	}
	var out models.CollectorScheduleDetail
	if err := s.api.Get(ctx, collectorPortalBase+"/schedules/"+id+"/", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *CollectorPortalService) StartSchedule(ctx context.Context, id string) (*models.ScheduleActionResponse, error) {
	if err := checkID("schedule", id); err != nil {
		return nil, err
	}
	var out models.ScheduleActionResponse
	if err := s.api.Post(ctx, collectorPortalBase+"/schedules/"+id+"/start/", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *CollectorPortalService) CompleteSchedule(
	ctx context.Context,
	id string,
	req models.CompleteScheduleRequest,
) (*models.ScheduleActionResponse, error) {
	if err := checkID("schedule", id); err != nil {
		return nil, err
	}
	var out models.ScheduleActionResponse
	if err := s.api.Post(ctx, collectorPortalBase+"/schedules/"+id+"/complete/", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *CollectorPortalService) GetRoutes(ctx context.Context) (*models.ListResponse[models.CollectorRoute], error) {
	var out models.ListResponse[models.CollectorRoute]
	if err := s.api.Get(ctx, collectorPortalBase+"/routes/", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateLocation reports the collector's current position.
func (s *CollectorPortalService) UpdateLocation(ctx context.Context, loc models.Location) (*models.LocationUpdateResponse, error) {
	var out models.LocationUpdateResponse
	if err := s.api.Post(ctx, collectorPortalBase+"/location/", loc, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *CollectorPortalService) GetProfile(ctx context.Context) (*models.CollectorProfile, error) {
	var out models.CollectorProfile
	if err := s.api.Get(ctx, collectorPortalBase+"/profile/", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
