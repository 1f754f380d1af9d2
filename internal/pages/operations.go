package pages

import (
	"context"
	"fmt"
	"strings"

	"wastepoint/internal/components"
	"wastepoint/internal/forms"
	"wastepoint/internal/models"
	"wastepoint/internal/navigation"
	"wastepoint/internal/queries"
	"wastepoint/internal/query"

	"golang.org/x/sync/errgroup"
)

// Operations serves the staff console: service areas, routes, collectors, schedules and customers.
type Operations struct {
	q *queries.Set
}

func NewOperations(q *queries.Set) *Operations {
	return &Operations{q: q}
}

// run performs a mutation and reports it the way every console action does.
func run[In, Out any](ctx context.Context, m *query.Mutation[In, Out], in In, action, done string) (ActionResult[Out], error) {
	out, err := m.MutateAsync(ctx, in)
	if err != nil {
		return ActionResult[Out]{}, actionError(action, err)
	}
	return ActionResult[Out]{Message: done, Data: out}, nil
}

// checked validates draft before running the mutation.
func checked[In, Out any](ctx context.Context, draft any, m *query.Mutation[In, Out], in func() In, action, done string) (ActionResult[Out], error) {
	if err := forms.Check(draft); err != nil {
		return ActionResult[Out]{}, err
	}
	return run(ctx, m, in(), action, done)
}

type ServiceAreaRow struct {
	ID         string           `json:"id"`
	Code       string           `json:"code"`
	Name       string           `json:"name"`
	Location   string           `json:"location"`
	Status     components.Badge `json:"status"`
	Households int              `json:"households"`
	Customers  int              `json:"customers"`
	Routes     int              `json:"routes"`
	Collectors int              `json:"collectors"`
	Href       string           `json:"href"`
}

func serviceAreaRow(a models.ServiceArea) ServiceAreaRow {
	loc := a.FullAddress
	if loc == "" {
		loc = strings.Join(nonBlank(a.Sector, a.District, a.Province), ", ")
	}
	return ServiceAreaRow{
		ID:         a.ID,
		Code:       a.Code,
		Name:       a.Name,
		Location:   loc,
		Status:     components.StatusBadge(string(a.Status)),
		Households: a.EstimatedHouseholds,
		Customers:  a.EstimatedCustomers,
		Routes:     a.ActiveRoutesCount,
		Collectors: a.AssignedCollectorsCount,
		Href:       "/operations/service-areas/" + a.ID,
	}
}

func nonBlank(parts ...string) []string {
	return filter(parts, func(s string) bool { return strings.TrimSpace(s) != "" })
}

type ServiceAreasView struct {
	Stats         []components.StatCard `json:"stats,omitempty"`
	StatusOptions []Option              `json:"status_options"`
	Count         int                   `json:"count"`
	Areas         []ServiceAreaRow      `json:"areas"`
}

// ServiceAreas lists areas with the summary cards; missing stats only hide the cards.
func (o *Operations) ServiceAreas(ctx context.Context, params models.ServiceAreaQueryParams) Page[ServiceAreasView] {
	var (
		list  *models.ListResponse[models.ServiceArea]
		stats *models.ServiceAreaStats
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		list, err = o.q.ServiceAreas.List(params).Get(gctx)
		return err
	})
	g.Go(func() error {
		stats, _ = o.q.ServiceAreas.Stats().Get(gctx)
		return nil
	})
	if err := g.Wait(); err != nil || list == nil {
		return Failed[ServiceAreasView]("Failed to load service areas. Please try again.", err,
			withQuery("/api/v1/operations/service-areas",
				"status", params.Status, "province", params.Province, "district", params.District, "search", params.Search))
	}

	v := ServiceAreasView{
		StatusOptions: options(params.Status, "", "All", "active", "Active", "inactive", "Inactive", "planned", "Planned"),
		Count:         list.Count,
		Areas:         mapSlice(list.Results, serviceAreaRow),
	}
	if stats != nil {
		v.Stats = []components.StatCard{
			components.Stat("Total Areas", stats.TotalAreas, "map"),
			components.Stat("Active Areas", stats.ActiveAreas, "check"),
			components.Stat("Total Households", stats.TotalHouseholds, "home"),
			components.Stat("Total Routes", stats.TotalRoutes, "route"),
		}
	}
	if len(v.Areas) == 0 {
		return Empty(v, components.EmptyState{
			Title:       "No service areas found",
			Description: "Get started by creating your first service area.",
			Icon:        "map",
			ActionLabel: "Add Service Area",
			ActionHref:  "/operations/service-areas/new",
		})
	}
	return Ready(v)
}

type ServiceAreaDetailView struct {
	Area            *models.ServiceArea    `json:"area"`
	Status          components.Badge       `json:"status"`
	Center          *navigation.LatLng     `json:"center,omitempty"`
	Routes          []RouteRow             `json:"routes"`
	RoutesEmpty     *components.EmptyState `json:"routes_empty,omitempty"`
	Collectors      []CollectorRow         `json:"collectors"`
	CollectorsEmpty *components.EmptyState `json:"collectors_empty,omitempty"`
	Draft           forms.ServiceAreaDraft `json:"draft"`
}

func (o *Operations) ServiceArea(ctx context.Context, id string) Page[ServiceAreaDetailView] {
	var (
		area       *models.ServiceArea
		routes     []models.Route
		collectors []models.Collector
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		area, err = o.q.ServiceAreas.Detail(id).Get(gctx)
		return err
	})
	g.Go(func() error {
		routes, _ = o.q.ServiceAreas.Routes(id).Get(gctx)
		return nil
	})
	g.Go(func() error {
		collectors, _ = o.q.ServiceAreas.Collectors(id).Get(gctx)
		return nil
	})
	if err := g.Wait(); err != nil || area == nil {
		return Failed[ServiceAreaDetailView]("Failed to load service area", err, "/api/v1/operations/service-areas/"+id)
	}

	v := ServiceAreaDetailView{
		Area:       area,
		Status:     components.StatusBadge(string(area.Status)),
		Routes:     mapSlice(routes, routeRow),
		Collectors: mapSlice(collectors, collectorRow),
		Draft:      forms.ServiceAreaDraftFrom(*area),
	}
	if area.Latitude != nil && area.Longitude != nil {
		v.Center = &navigation.LatLng{Lat: *area.Latitude, Lng: *area.Longitude}
	}
	if len(v.Routes) == 0 {
		v.RoutesEmpty = &components.EmptyState{Title: "No routes in this area", Icon: "route"}
	}
	if len(v.Collectors) == 0 {
		v.CollectorsEmpty = &components.EmptyState{Title: "No collectors assigned", Icon: "users"}
	}
	return Ready(v)
}

func (o *Operations) CreateServiceArea(ctx context.Context, d forms.ServiceAreaDraft) (ActionResult[*models.ServiceArea], error) {
	return checked(ctx, d, o.q.ServiceAreas.Create, d.CreatePayload, "create service area", "Service area created")
}

func (o *Operations) UpdateServiceArea(ctx context.Context, id string, d forms.ServiceAreaDraft) (ActionResult[*models.ServiceArea], error) {
	return checked(ctx, d, o.q.ServiceAreas.Update, func() queries.Update[models.ServiceAreaPayload] {
		return queries.Update[models.ServiceAreaPayload]{ID: id, Payload: d.UpdatePayload()}
	}, "update service area", "Service area updated")
}

func (o *Operations) DeleteServiceArea(ctx context.Context, id string) (ActionResult[struct{}], error) {
	return run(ctx, o.q.ServiceAreas.Delete, id, "delete service area", "Service area deleted")
}

// SetServiceAreaActive activates or deactivates an area.
func (o *Operations) SetServiceAreaActive(ctx context.Context, id string, active bool) (ActionResult[*models.ServiceArea], error) {
	if active {
		return run(ctx, o.q.ServiceAreas.Activate, id, "change service area status", "Service area activated")
	}
	return run(ctx, o.q.ServiceAreas.Deactivate, id, "change service area status", "Service area deactivated")
}

type RouteRow struct {
	ID              string           `json:"id"`
	Code            string           `json:"code"`
	Name            string           `json:"name"`
	ServiceAreaName string           `json:"service_area_name,omitempty"`
	CollectorName   string           `json:"collector_name,omitempty"`
	Frequency       string           `json:"frequency"`
	Schedule        string           `json:"schedule"`
	Customers       int              `json:"customers"`
	Distance        string           `json:"distance,omitempty"`
	Status          components.Badge `json:"status"`
	Href            string           `json:"href"`
}

func routeRow(r models.Route) RouteRow {
	sched := r.CollectionScheduleDisplay
	if sched == "" {
		sched = timeWindow(r.CollectionTimeStart, r.CollectionTimeEnd)
	}
	row := RouteRow{
		ID:              r.ID,
		Code:            r.Code,
		Name:            r.Name,
		ServiceAreaName: r.ServiceAreaName,
		CollectorName:   derefStr(r.DefaultCollectorName),
		Frequency:       components.FormatStatus(r.Frequency),
		Schedule:        sched,
		Customers:       r.CustomersCount,
		Status:          components.StatusBadge(string(r.Status)),
		Href:            "/operations/routes/" + r.ID,
	}
	if r.EstimatedDistanceKm > 0 {
		row.Distance = navigation.FormatDistance(r.EstimatedDistanceKm * 1000)
	}
	return row
}

type RoutesView struct {
	StatusOptions    []Option   `json:"status_options"`
	FrequencyOptions []Option   `json:"frequency_options"`
	Count            int        `json:"count"`
	Routes           []RouteRow `json:"routes"`
}

func (o *Operations) Routes(ctx context.Context, params models.RouteQueryParams) Page[RoutesView] {
	list, err := o.q.Routes.List(params).Get(ctx)
	if err != nil || list == nil {
		return Failed[RoutesView]("Failed to load routes. Please try again.", err,
			withQuery("/api/v1/operations/routes",
				"status", params.Status, "service_area", params.ServiceArea, "frequency", params.Frequency, "search", params.Search))
	}
	freq := []string{"", "All"}
	for _, f := range models.Frequencies {
		freq = append(freq, f, components.FormatStatus(f))
	}
	v := RoutesView{
		StatusOptions:    options(params.Status, "", "All", "active", "Active", "inactive", "Inactive", "archived", "Archived"),
		FrequencyOptions: options(params.Frequency, freq...),
		Count:            list.Count,
		Routes:           mapSlice(list.Results, routeRow),
	}
	if len(v.Routes) == 0 {
		return Empty(v, components.EmptyState{
			Title:       "No routes found",
			Description: "Create a route to start planning collections.",
			Icon:        "route",
			ActionLabel: "Add Route",
			ActionHref:  "/operations/routes/new",
		})
	}
	return Ready(v)
}

type RouteDetailView struct {
	Route          *models.Route          `json:"route"`
	Status         components.Badge       `json:"status"`
	Summary        RouteSummary           `json:"summary"`
	Path           []navigation.LatLng    `json:"path,omitempty"`
	Schedules      []ScheduleRow          `json:"schedules"`
	SchedulesEmpty *components.EmptyState `json:"schedules_empty,omitempty"`
	Draft          forms.RouteDraft       `json:"draft"`
}

func (o *Operations) Route(ctx context.Context, id string) Page[RouteDetailView] {
	var (
		route     *models.Route
		schedules []models.Schedule
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		route, err = o.q.Routes.Detail(id).Get(gctx)
		return err
	})
	g.Go(func() error {
		schedules, _ = o.q.Routes.Schedules(id).Get(gctx)
		return nil
	})
	if err := g.Wait(); err != nil || route == nil {
		return Failed[RouteDetailView]("Failed to load route", err, "/api/v1/operations/routes/"+id)
	}

	v := RouteDetailView{
		Route:     route,
		Status:    components.StatusBadge(string(route.Status)),
		Summary:   routeSummary(route.ID, route.Name, route.Code, route.Description, route.EstimatedDistanceKm, route.EstimatedDurationMinutes),
		Path:      navigation.ParsePath(route.PathGeoJSON),
		Schedules: mapSlice(schedules, scheduleRow),
		Draft:     forms.RouteDraftFrom(*route),
	}
	if len(v.Schedules) == 0 {
		v.SchedulesEmpty = &components.EmptyState{Title: "No schedules for this route", Icon: "calendar", ActionLabel: "Generate Schedules"}
	}
	return Ready(v)
}

func (o *Operations) CreateRoute(ctx context.Context, d forms.RouteDraft) (ActionResult[*models.Route], error) {
	return checked(ctx, d, o.q.Routes.Create, d.CreatePayload, "create route", "Route created")
}

func (o *Operations) UpdateRoute(ctx context.Context, id string, d forms.RouteDraft) (ActionResult[*models.Route], error) {
	return checked(ctx, d, o.q.Routes.Update, func() queries.Update[models.RoutePayload] {
		return queries.Update[models.RoutePayload]{ID: id, Payload: d.UpdatePayload()}
	}, "update route", "Route updated")
}

func (o *Operations) DeleteRoute(ctx context.Context, id string) (ActionResult[struct{}], error) {
	return run(ctx, o.q.Routes.Delete, id, "delete route", "Route deleted")
}

func (o *Operations) AssignCollector(ctx context.Context, routeID, collectorID string) (ActionResult[*models.Route], error) {
	if strings.TrimSpace(collectorID) == "" {
		return ActionResult[*models.Route]{}, &forms.ValidationError{
			Fields: map[string][]string{"collector_id": {"Collector is required"}},
		}
	}
	return run(ctx, o.q.Routes.AssignCollector, queries.AssignInput{RouteID: routeID, CollectorID: collectorID},
		"assign collector", "Collector assigned")
}

func (o *Operations) GenerateSchedules(ctx context.Context, routeID string, d forms.GenerateDraft) (ActionResult[*models.GenerateScheduleResponse], error) {
	req, err := d.Resolve()
	if err != nil {
		return ActionResult[*models.GenerateScheduleResponse]{}, err
	}
	res, err := run(ctx, o.q.Routes.GenerateSchedule, queries.GenerateInput{RouteID: routeID, Request: req},
		"generate schedules", "Schedules generated")
	if err == nil && res.Data != nil {
		res.Message = messageOr(res.Data.Message, fmt.Sprintf("%d schedules generated", len(res.Data.Schedules)))
	}
	return res, err
}
