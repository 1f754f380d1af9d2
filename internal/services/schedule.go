package services

import (
	"context"
	"net/http"

	"wastepoint/internal/apiclient"
	"wastepoint/internal/models"
)

const schedulesBase = "/operations/schedules/"

type ScheduleService struct {
	api *apiclient.Client
}

func NewScheduleService(api *apiclient.Client) *ScheduleService {
	return &ScheduleService{api: api}
}

func (s *ScheduleService) List(
	ctx context.Context,
	params models.ScheduleQueryParams,
) (*models.ListResponse[models.Schedule], error) {
	q := values(
		"status", params.Status,
		"route", params.Route,
		"collector", params.Collector,
		"scheduled_date", params.ScheduledDate,
		"date_from", params.DateFrom,
		"date_to", params.DateTo,
		"search", params.Search,
	)
	var out models.ListResponse[models.Schedule]
	if err := s.api.Get(ctx, schedulesBase, q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *ScheduleService) Get(ctx context.Context, id string) (*models.Schedule, error) {
	return s.one(ctx, http.MethodGet, id, "", nil)
}

func (s *ScheduleService) Today(ctx context.Context) ([]models.Schedule, error) {
	return s.bucket(ctx, "today/")
}

func (s *ScheduleService) Upcoming(ctx context.Context) ([]models.Schedule, error) {
	return s.bucket(ctx, "upcoming/")
}

// Overdue lists schedules still open after their date.
func (s *ScheduleService) Overdue(ctx context.Context) ([]models.Schedule, error) {
	return s.bucket(ctx, "overdue/")
}

func (s *ScheduleService) Create(ctx context.Context, payload models.SchedulePayload) (*models.Schedule, error) {
	var out models.Schedule
	if err := s.api.Post(ctx, schedulesBase, payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *ScheduleService) Update(ctx context.Context, id string, payload models.SchedulePayload) (*models.Schedule, error) {
	return s.one(ctx, http.MethodPatch, id, "", payload)
}

func (s *ScheduleService) Delete(ctx context.Context, id string) error {
	if err := checkID("schedule", id); err != nil {
		return err
	}
	return s.api.Delete(ctx, schedulesBase+id+"/")
}

func (s *ScheduleService) Start(ctx context.Context, id string) (*models.Schedule, error) {
	return s.one(ctx, http.MethodPost, id, "start/", nil)
}

func (s *ScheduleService) Complete(ctx context.Context, id string, req models.CompleteScheduleRequest) (*models.Schedule, error) {
	return s.one(ctx, http.MethodPost, id, "complete/", req)
}

func (s *ScheduleService) Cancel(ctx context.Context, id, reason string) (*models.Schedule, error) {
	return s.one(ctx, http.MethodPost, id, "cancel/", models.CancelScheduleRequest{Reason: reason})
}

func (s *ScheduleService) MarkMissed(ctx context.Context, id string) (*models.Schedule, error) {
	return s.one(ctx, http.MethodPost, id, "mark_missed/", nil)
}

func (s *ScheduleService) bucket(ctx context.Context, path string) ([]models.Schedule, error) {
	var out []models.Schedule
	if err := s.api.Get(ctx, schedulesBase+path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *ScheduleService) one(ctx context.Context, method, id, action string, body any) (*models.Schedule, error) {
	if err := checkID("schedule", id); err != nil {
		return nil, err
	}
	var out models.Schedule
	if err := send(ctx, s.api, method, schedulesBase+id+"/"+action, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
