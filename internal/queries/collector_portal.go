package queries

import (
	"context"

	"wastepoint/internal/models"
	"wastepoint/internal/query"
	"wastepoint/internal/services"
)

type CompleteInput struct {
	ScheduleID string
	Request    models.CompleteScheduleRequest
}

// CollectorPortal exposes the signed-in collector's queries and mutations.
type CollectorPortal struct {
	cache *query.Cache
	svc   *services.CollectorPortalService

	StartSchedule    *query.Mutation[string, *models.ScheduleActionResponse]
	CompleteSchedule *query.Mutation[CompleteInput, *models.ScheduleActionResponse]
	UpdateLocation   *query.Mutation[models.Location, *models.LocationUpdateResponse]
}

func NewCollectorPortal(c *query.Cache, svc *services.CollectorPortalService) *CollectorPortal {
	p := &CollectorPortal{cache: c, svc: svc}

	p.StartSchedule = query.NewMutation(c, svc.StartSchedule, func(string) []query.Key {
		return []query.Key{CollectorPortalKeys.Dashboard(), CollectorPortalKeys.Schedules()}
	})
	p.CompleteSchedule = query.NewMutation(c,
		func(ctx context.Context, in CompleteInput) (*models.ScheduleActionResponse, error) {
			return svc.CompleteSchedule(ctx, in.ScheduleID, in.Request)
		},
		func(CompleteInput) []query.Key {
			return []query.Key{
				CollectorPortalKeys.Dashboard(),
				CollectorPortalKeys.Schedules(),
				CollectorPortalKeys.Profile(),
			}
		},
	)
	// Location pings change nothing the portal displays.
	p.UpdateLocation = query.NewMutation(c, svc.UpdateLocation, nil)
	return p
}

func (p *CollectorPortal) Dashboard() *query.Query[*models.CollectorDashboard] {
	return query.NewQuery(p.cache, CollectorPortalKeys.Dashboard(), p.svc.GetDashboard)
}

func (p *CollectorPortal) Schedules(date, status string) *query.Query[*models.ListResponse[models.CollectorSchedule]] {
	return query.NewQuery(p.cache, CollectorPortalKeys.ScheduleList(date, status),
		func(ctx context.Context) (*models.ListResponse[models.CollectorSchedule], error) {
			return p.svc.GetSchedules(ctx, date, status)
		})
}

func (p *CollectorPortal) ScheduleDetail(id string) *query.Query[*models.CollectorScheduleDetail] {
	return query.NewQuery(p.cache, CollectorPortalKeys.ScheduleDetail(id),
		func(ctx context.Context) (*models.CollectorScheduleDetail, error) {
			return p.svc.GetScheduleDetail(ctx, id)
		})
}

func (p *CollectorPortal) Routes() *query.Query[*models.ListResponse[models.CollectorRoute]] {
	return query.NewQuery(p.cache, CollectorPortalKeys.Routes(), p.svc.GetRoutes)
}

func (p *CollectorPortal) Profile() *query.Query[*models.CollectorProfile] {
	return query.NewQuery(p.cache, CollectorPortalKeys.Profile(), p.svc.GetProfile)
}
