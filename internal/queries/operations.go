package queries

import (
	"context"

	"wastepoint/internal/models"
	"wastepoint/internal/query"
	"wastepoint/internal/services"
)

// Update carries an entity id with its patch body.
type Update[P any] struct {
	ID      string
	Payload P
}

type AssignInput struct {
	RouteID     string
	CollectorID string
}

type GenerateInput struct {
	RouteID string
	Request models.GenerateScheduleRequest
}

type CancelInput struct {
	ScheduleID string
	Reason     string
}

type ScheduleCompleteInput struct {
	ScheduleID string
	Request    models.CompleteScheduleRequest
}

func detailAndLists(k entityKeys) func(string) []query.Key {
	return func(id string) []query.Key {
		return []query.Key{k.Detail(id), k.Lists()}
	}
}

func updateKeys[P any](k entityKeys) func(Update[P]) []query.Key {
	return func(in Update[P]) []query.Key {
		return []query.Key{k.Detail(in.ID), k.Lists()}
	}
}

func allOf[In any](keys ...query.Key) func(In) []query.Key {
	return func(In) []query.Key { return keys }
}

func deleted(fn func(context.Context, string) error) func(context.Context, string) (struct{}, error) {
	return func(ctx context.Context, id string) (struct{}, error) {
		return struct{}{}, fn(ctx, id)
	}
}

// ServiceAreas is the admin view of service areas.
type ServiceAreas struct {
	cache *query.Cache
	svc   *services.ServiceAreaService

	Create     *query.Mutation[models.ServiceAreaPayload, *models.ServiceArea]
	Update     *query.Mutation[Update[models.ServiceAreaPayload], *models.ServiceArea]
	Delete     *query.Mutation[string, struct{}]
	Activate   *query.Mutation[string, *models.ServiceArea]
	Deactivate *query.Mutation[string, *models.ServiceArea]
}

func NewServiceAreas(c *query.Cache, svc *services.ServiceAreaService) *ServiceAreas {
	k := ServiceAreaKeys
	return &ServiceAreas{
		cache:  c,
		svc:    svc,
		Create: query.NewMutation(c, svc.Create, allOf[models.ServiceAreaPayload](k.All())),
		Update: query.NewMutation(c,
			func(ctx context.Context, in Update[models.ServiceAreaPayload]) (*models.ServiceArea, error) {
				return svc.Update(ctx, in.ID, in.Payload)
			},
			updateKeys[models.ServiceAreaPayload](k)),
		Delete:     query.NewMutation(c, deleted(svc.Delete), allOf[string](k.All())),
		Activate:   query.NewMutation(c, svc.Activate, detailAndLists(k)),
		Deactivate: query.NewMutation(c, svc.Deactivate, detailAndLists(k)),
	}
}

func (s *ServiceAreas) List(params models.ServiceAreaQueryParams) *query.Query[*models.ListResponse[models.ServiceArea]] {
	key := ServiceAreaKeys.List(map[string]string{
		"status":   params.Status,
		"province": params.Province,
		"district": params.District,
		"search":   params.Search,
	})
	return query.NewQuery(s.cache, key, func(ctx context.Context) (*models.ListResponse[models.ServiceArea], error) {
		return s.svc.List(ctx, params)
	})
}

func (s *ServiceAreas) Detail(id string) *query.Query[*models.ServiceArea] {
	return query.NewQuery(s.cache, ServiceAreaKeys.Detail(id), func(ctx context.Context) (*models.ServiceArea, error) {
		return s.svc.Get(ctx, id)
	})
}

func (s *ServiceAreas) Stats() *query.Query[*models.ServiceAreaStats] {
	return query.NewQuery(s.cache, ServiceAreaKeys.Named("stats"), s.svc.Stats)
}

func (s *ServiceAreas) Routes(id string) *query.Query[[]models.Route] {
	return query.NewQuery(s.cache, ServiceAreaKeys.Detail(id, "routes"), func(ctx context.Context) ([]models.Route, error) {
		return s.svc.Routes(ctx, id)
	})
}

func (s *ServiceAreas) Collectors(id string) *query.Query[[]models.Collector] {
	return query.NewQuery(s.cache, ServiceAreaKeys.Detail(id, "collectors"), func(ctx context.Context) ([]models.Collector, error) {
		return s.svc.Collectors(ctx, id)
	})
}

// Routes is the admin view of collection routes. Creating or deleting a route
// changes service area counts, so those are invalidated too.
type Routes struct {
	cache *query.Cache
	svc   *services.RouteService

	Create           *query.Mutation[models.RoutePayload, *models.Route]
	Update           *query.Mutation[Update[models.RoutePayload], *models.Route]
	Delete           *query.Mutation[string, struct{}]
	AssignCollector  *query.Mutation[AssignInput, *models.Route]
	GenerateSchedule *query.Mutation[GenerateInput, *models.GenerateScheduleResponse]
}

func NewRoutes(c *query.Cache, svc *services.RouteService) *Routes {
	k := RouteKeys
	return &Routes{
		cache:  c,
		svc:    svc,
		Create: query.NewMutation(c, svc.Create, allOf[models.RoutePayload](k.All(), ServiceAreaKeys.All())),
		Update: query.NewMutation(c,
			func(ctx context.Context, in Update[models.RoutePayload]) (*models.Route, error) {
				return svc.Update(ctx, in.ID, in.Payload)
			},
			updateKeys[models.RoutePayload](k)),
		Delete: query.NewMutation(c, deleted(svc.Delete), allOf[string](k.All(), ServiceAreaKeys.All())),
		AssignCollector: query.NewMutation(c,
			func(ctx context.Context, in AssignInput) (*models.Route, error) {
				return svc.AssignCollector(ctx, in.RouteID, in.CollectorID)
			},
			func(in AssignInput) []query.Key {
				return []query.Key{k.Detail(in.RouteID), CollectorKeys.All()}
			}),
		GenerateSchedule: query.NewMutation(c,
			func(ctx context.Context, in GenerateInput) (*models.GenerateScheduleResponse, error) {
				return svc.GenerateSchedule(ctx, in.RouteID, in.Request)
			},
			func(in GenerateInput) []query.Key {
				return []query.Key{k.Detail(in.RouteID, "schedules"), ScheduleKeys.All()}
			}),
	}
}

func (r *Routes) List(params models.RouteQueryParams) *query.Query[*models.ListResponse[models.Route]] {
	key := RouteKeys.List(map[string]string{
		"status":       params.Status,
		"service_area": params.ServiceArea,
		"frequency":    params.Frequency,
		"search":       params.Search,
	})
	return query.NewQuery(r.cache, key, func(ctx context.Context) (*models.ListResponse[models.Route], error) {
		return r.svc.List(ctx, params)
	})
}

func (r *Routes) Detail(id string) *query.Query[*models.Route] {
	return query.NewQuery(r.cache, RouteKeys.Detail(id), func(ctx context.Context) (*models.Route, error) {
		return r.svc.Get(ctx, id)
	})
}

func (r *Routes) Schedules(id string) *query.Query[[]models.Schedule] {
	return query.NewQuery(r.cache, RouteKeys.Detail(id, "schedules"), func(ctx context.Context) ([]models.Schedule, error) {
		return r.svc.Schedules(ctx, id)
	})
}

type Collectors struct {
	cache *query.Cache
	svc   *services.CollectorService

	Create     *query.Mutation[models.CollectorPayload, *models.Collector]
	Update     *query.Mutation[Update[models.CollectorPayload], *models.Collector]
	Delete     *query.Mutation[string, struct{}]
	Activate   *query.Mutation[string, *models.Collector]
	Suspend    *query.Mutation[string, *models.Collector]
	SetOnLeave *query.Mutation[string, *models.Collector]
}

func NewCollectors(c *query.Cache, svc *services.CollectorService) *Collectors {
	k := CollectorKeys
	return &Collectors{
		cache:  c,
		svc:    svc,
		Create: query.NewMutation(c, svc.Create, allOf[models.CollectorPayload](k.All())),
		Update: query.NewMutation(c,
			func(ctx context.Context, in Update[models.CollectorPayload]) (*models.Collector, error) {
				return svc.Update(ctx, in.ID, in.Payload)
			},
			updateKeys[models.CollectorPayload](k)),
		Delete:     query.NewMutation(c, deleted(svc.Delete), allOf[string](k.All())),
		Activate:   query.NewMutation(c, svc.Activate, detailAndLists(k)),
		Suspend:    query.NewMutation(c, svc.Suspend, detailAndLists(k)),
		SetOnLeave: query.NewMutation(c, svc.SetOnLeave, detailAndLists(k)),
	}
}

func (cl *Collectors) List(params models.CollectorQueryParams) *query.Query[*models.ListResponse[models.Collector]] {
	key := CollectorKeys.List(map[string]string{
		"status":          params.Status,
		"service_area":    params.ServiceArea,
		"employment_type": params.EmploymentType,
		"search":          params.Search,
	})
	return query.NewQuery(cl.cache, key, func(ctx context.Context) (*models.ListResponse[models.Collector], error) {
		return cl.svc.List(ctx, params)
	})
}

func (cl *Collectors) Detail(id string) *query.Query[*models.Collector] {
	return query.NewQuery(cl.cache, CollectorKeys.Detail(id), func(ctx context.Context) (*models.Collector, error) {
		return cl.svc.Get(ctx, id)
	})
}

func (cl *Collectors) Available() *query.Query[[]models.Collector] {
	return query.NewQuery(cl.cache, CollectorKeys.Named("available"), cl.svc.Available)
}

func (cl *Collectors) Performance(id string) *query.Query[*models.CollectorPerformance] {
	return query.NewQuery(cl.cache, CollectorKeys.Detail(id, "performance"), func(ctx context.Context) (*models.CollectorPerformance, error) {
		return cl.svc.Performance(ctx, id)
	})
}

func (cl *Collectors) Routes(id string) *query.Query[[]models.Route] {
	return query.NewQuery(cl.cache, CollectorKeys.Detail(id, "routes"), func(ctx context.Context) ([]models.Route, error) {
		return cl.svc.Routes(ctx, id)
	})
}

func (cl *Collectors) Schedules(id string) *query.Query[[]models.Schedule] {
	return query.NewQuery(cl.cache, CollectorKeys.Detail(id, "schedules"), func(ctx context.Context) ([]models.Schedule, error) {
		return cl.svc.Schedules(ctx, id)
	})
}

type Schedules struct {
	cache *query.Cache
	svc   *services.ScheduleService

	Create     *query.Mutation[models.SchedulePayload, *models.Schedule]
	Update     *query.Mutation[Update[models.SchedulePayload], *models.Schedule]
	Delete     *query.Mutation[string, struct{}]
	Start      *query.Mutation[string, *models.Schedule]
	Complete   *query.Mutation[ScheduleCompleteInput, *models.Schedule]
	Cancel     *query.Mutation[CancelInput, *models.Schedule]
	MarkMissed *query.Mutation[string, *models.Schedule]
}

func NewSchedules(c *query.Cache, svc *services.ScheduleService) *Schedules {
	k := ScheduleKeys
	withToday := func(id string) []query.Key {
		return []query.Key{k.Detail(id), k.Lists(), k.Named("today")}
	}
	return &Schedules{
		cache:  c,
		svc:    svc,
		Create: query.NewMutation(c, svc.Create, allOf[models.SchedulePayload](k.All())),
		Update: query.NewMutation(c,
			func(ctx context.Context, in Update[models.SchedulePayload]) (*models.Schedule, error) {
				return svc.Update(ctx, in.ID, in.Payload)
			},
			updateKeys[models.SchedulePayload](k)),
		Delete: query.NewMutation(c, deleted(svc.Delete), allOf[string](k.All())),
		Start:  query.NewMutation(c, svc.Start, withToday),
		Complete: query.NewMutation(c,
			func(ctx context.Context, in ScheduleCompleteInput) (*models.Schedule, error) {
				return svc.Complete(ctx, in.ScheduleID, in.Request)
			},
			func(in ScheduleCompleteInput) []query.Key { return withToday(in.ScheduleID) }),
		Cancel: query.NewMutation(c,
			func(ctx context.Context, in CancelInput) (*models.Schedule, error) {
				return svc.Cancel(ctx, in.ScheduleID, in.Reason)
			},
			func(in CancelInput) []query.Key { return []query.Key{k.Detail(in.ScheduleID), k.Lists()} }),
		MarkMissed: query.NewMutation(c, svc.MarkMissed, detailAndLists(k)),
	}
}

func (s *Schedules) List(params models.ScheduleQueryParams) *query.Query[*models.ListResponse[models.Schedule]] {
	key := ScheduleKeys.List(map[string]string{
		"status":         params.Status,
		"route":          params.Route,
		"collector":      params.Collector,
		"scheduled_date": params.ScheduledDate,
		"date_from":      params.DateFrom,
		"date_to":        params.DateTo,
		"search":         params.Search,
	})
	return query.NewQuery(s.cache, key, func(ctx context.Context) (*models.ListResponse[models.Schedule], error) {
		return s.svc.List(ctx, params)
	})
}

func (s *Schedules) Detail(id string) *query.Query[*models.Schedule] {
	return query.NewQuery(s.cache, ScheduleKeys.Detail(id), func(ctx context.Context) (*models.Schedule, error) {
		return s.svc.Get(ctx, id)
	})
}

func (s *Schedules) Today() *query.Query[[]models.Schedule] {
	return query.NewQuery(s.cache, ScheduleKeys.Named("today"), s.svc.Today)
}

func (s *Schedules) Upcoming() *query.Query[[]models.Schedule] {
	return query.NewQuery(s.cache, ScheduleKeys.Named("upcoming"), s.svc.Upcoming)
}

func (s *Schedules) Overdue() *query.Query[[]models.Schedule] {
	return query.NewQuery(s.cache, ScheduleKeys.Named("overdue"), s.svc.Overdue)
}
