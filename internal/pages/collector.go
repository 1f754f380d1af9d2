package pages

import (
	"context"
	"fmt"
	"net/http"

	"wastepoint/internal/components"
	"wastepoint/internal/forms"
	"wastepoint/internal/models"
	"wastepoint/internal/navigation"
	"wastepoint/internal/queries"
)

// ScheduleRow is one schedule line on any list screen.
type ScheduleRow struct {
	ID              string           `json:"id"`
	RouteID         string           `json:"route_id,omitempty"`
	RouteName       string           `json:"route_name"`
	ServiceAreaName string           `json:"service_area_name,omitempty"`
	CollectorName   string           `json:"collector_name,omitempty"`
	Date            string           `json:"date"`
	TimeWindow      string           `json:"time_window"`
	Status          components.Badge `json:"status"`
	Progress        string           `json:"progress,omitempty"`
	CanStart        bool             `json:"can_start"`
	CanComplete     bool             `json:"can_complete"`
	Href            string           `json:"href"`
}

func portalScheduleRow(s models.CollectorSchedule) ScheduleRow {
	return ScheduleRow{
		ID:              s.ID,
		RouteID:         s.RouteID,
		RouteName:       s.RouteName,
		ServiceAreaName: s.ServiceAreaName,
		Date:            s.ScheduledDate,
		TimeWindow:      timeWindow(s.ScheduledTimeStart, s.ScheduledTimeEnd),
		Status:          components.StatusBadge(string(s.Status)),
		Progress:        fmt.Sprintf("%d/%d collected", s.CustomersCollected, s.CustomersScheduled),
		CanStart:        s.Status == models.ScheduleScheduled,
		CanComplete:     s.Status == models.ScheduleInProgress,
		Href:            "/collector/schedules/" + s.ID,
	}
}

// Option is one entry of a filter bar.
type Option struct {
	Value  string `json:"value"`
	Label  string `json:"label"`
	Active bool   `json:"active"`
}

func options(current string, pairs ...string) []Option {
	out := make([]Option, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, Option{Value: pairs[i], Label: pairs[i+1], Active: pairs[i] == current})
	}
	return out
}

func oneOf(v, def string, allowed ...string) string {
	for _, a := range allowed {
		if v == a {
			return v
		}
	}
	return def
}

// CollectorPages serves the collector's mobile portal for one session.
type CollectorPages struct {
	q        *queries.CollectorPortal
	view     *navigation.MapView
	renderer navigation.MapRenderer
}

func NewCollectorPages(q *queries.CollectorPortal, view *navigation.MapView, renderer navigation.MapRenderer) *CollectorPages {
	return &CollectorPages{q: q, view: view, renderer: renderer}
}

type CollectorDashboardView struct {
	CollectorName string                 `json:"collector_name"`
	Stats         []components.StatCard  `json:"stats"`
	Next          *ScheduleRow           `json:"next,omitempty"`
	Today         []ScheduleRow          `json:"today"`
	TodayEmpty    *components.EmptyState `json:"today_empty,omitempty"`
	Upcoming      []ScheduleRow          `json:"upcoming"`
}

func (p *CollectorPages) Dashboard(ctx context.Context) Page[CollectorDashboardView] {
	d, err := p.q.Dashboard().Get(ctx)
	if err != nil || d == nil {
		return Failed[CollectorDashboardView]("Failed to load dashboard data", err, "/api/v1/collector/dashboard")
	}

	v := CollectorDashboardView{
		CollectorName: d.Collector.FullName,
		Stats: []components.StatCard{
			components.Stat("Today's Schedules", d.Summary.TodaySchedules, "calendar"),
			components.Stat("Pending Pickups", d.Summary.PendingPickups, "clock"),
			components.Stat("Completed Today", d.Summary.CompletedToday, "check"),
			components.Stat("Assigned Routes", d.Summary.AssignedRoutes, "map"),
		},
		Upcoming: mapSlice(d.UpcomingSchedules, portalScheduleRow),
	}

	// next is the first schedule still to be worked today
	nextID := ""
	for _, s := range d.TodaySchedules {
		if s.Status == models.ScheduleScheduled || s.Status == models.ScheduleInProgress {
			row := portalScheduleRow(s)
			v.Next = &row
			nextID = s.ID
			break
		}
	}
	v.Today = mapSlice(filter(d.TodaySchedules, func(s models.CollectorSchedule) bool {
		return s.ID != nextID
	}), portalScheduleRow)
	if len(d.TodaySchedules) == 0 {
		v.TodayEmpty = &components.EmptyState{Title: "No schedules for today", Icon: "calendar"}
	}
	return Ready(v)
}

// ScheduleFilter is the collector schedules screen's filter bar.
type ScheduleFilter struct {
	Date   string
	Status string
	Search string
}

type CollectorSchedulesView struct {
	DateOptions   []Option      `json:"date_options"`
	StatusOptions []Option      `json:"status_options"`
	Search        string        `json:"search,omitempty"`
	Count         int           `json:"count"`
	Schedules     []ScheduleRow `json:"schedules"`
}

func (p *CollectorPages) Schedules(ctx context.Context, f ScheduleFilter) Page[CollectorSchedulesView] {
	date := oneOf(f.Date, "today", "today", "week", "upcoming", "past")
	status := oneOf(f.Status, "", "scheduled", "in_progress", "completed", "missed")

	list, err := p.q.Schedules(date, status).Get(ctx)
	if err != nil || list == nil {
		return Failed[CollectorSchedulesView]("Failed to load schedules", err,
			withQuery("/api/v1/collector/schedules", "date", date, "status", status, "search", f.Search))
	}

	rows := filter(list.Results, func(s models.CollectorSchedule) bool {
		return matches(f.Search, s.RouteName, s.ServiceAreaName)
	})
	v := CollectorSchedulesView{
		DateOptions: options(date,
			"today", "Today", "week", "This Week", "upcoming", "Upcoming", "past", "Past"),
		StatusOptions: options(status,
			"", "All", "scheduled", "Scheduled", "in_progress", "In Progress", "completed", "Completed", "missed", "Missed"),
		Search:    f.Search,
		Count:     len(rows),
		Schedules: mapSlice(rows, portalScheduleRow),
	}
	if len(rows) > 0 {
		return Ready(v)
	}

	desc := "No upcoming schedules found"
	switch date {
	case "today":
		desc = "You don't have any schedules for today"
	case "past":
		desc = "No past schedules found"
	}
	return Empty(v, components.EmptyState{Title: "No schedules found", Description: desc, Icon: "calendar"})
}

type ScheduleDetailView struct {
	Schedule    ScheduleRow               `json:"schedule"`
	Notes       string                    `json:"notes,omitempty"`
	StartedAt   string                    `json:"started_at,omitempty"`
	EndedAt     string                    `json:"ended_at,omitempty"`
	Route       RouteSummary              `json:"route"`
	ServiceArea string                    `json:"service_area,omitempty"`
	Center      *navigation.LatLng        `json:"center,omitempty"`
	Path        []navigation.LatLng       `json:"path,omitempty"`
	Customers   []models.ScheduleCustomer `json:"customers"`
	Stats       []components.StatCard     `json:"stats"`
}

type RouteSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Code        string `json:"code"`
	Description string `json:"description,omitempty"`
	Distance    string `json:"distance,omitempty"`
	Duration    string `json:"duration,omitempty"`
}

func routeSummary(id, name, code, desc string, km float64, minutes int) RouteSummary {
	r := RouteSummary{ID: id, Name: name, Code: code, Description: desc}
	if km > 0 {
		r.Distance = navigation.FormatDistance(km * 1000)
	}
	if minutes > 0 {
		r.Duration = navigation.FormatDuration(float64(minutes * 60))
	}
	return r
}

func (p *CollectorPages) ScheduleDetail(ctx context.Context, id string) Page[ScheduleDetailView] {
	d, err := p.q.ScheduleDetail(id).Get(ctx)
	if err != nil || d == nil {
		return Failed[ScheduleDetailView]("Failed to load schedule", err, "/api/v1/collector/schedules/"+id)
	}

	customers := d.Customers
	if customers == nil {
		customers = []models.ScheduleCustomer{}
	}
	v := ScheduleDetailView{
		Schedule:    portalScheduleRow(d.CollectorSchedule),
		Notes:       d.Notes,
		StartedAt:   derefStr(d.ActualStartTime),
		EndedAt:     derefStr(d.ActualEndTime),
		Route:       routeSummary(d.Route.ID, d.Route.Name, d.Route.Code, d.Route.Description, d.Route.EstimatedDistanceKm, d.Route.EstimatedDurationMinutes),
		ServiceArea: derefStr(d.ServiceArea.Name),
		Path:        navigation.ParsePath(d.Route.PathGeoJSON),
		Customers:   customers,
		Stats: []components.StatCard{
			components.Stat("Scheduled", d.CustomersScheduled, "users"),
			components.Stat("Collected", d.CustomersCollected, "check"),
			components.Stat("Missed", d.CustomersMissed, "x"),
		},
	}
	if d.ServiceArea.Latitude != nil && d.ServiceArea.Longitude != nil {
		v.Center = &navigation.LatLng{Lat: *d.ServiceArea.Latitude, Lng: *d.ServiceArea.Longitude}
	} else if len(v.Path) > 0 {
		c := v.Path[0]
		v.Center = &c
	}
	return Ready(v)
}

func (p *CollectorPages) StartSchedule(ctx context.Context, id string) (ActionResult[*models.ScheduleActionResponse], error) {
	resp, err := p.q.StartSchedule.MutateAsync(ctx, id)
	if err != nil {
		return ActionResult[*models.ScheduleActionResponse]{}, actionError("start schedule", err)
	}
	return ActionResult[*models.ScheduleActionResponse]{Message: messageOr(resp.Message, "Schedule started"), Data: resp}, nil
}

func (p *CollectorPages) CompleteSchedule(ctx context.Context, id string, draft forms.CompleteDraft) (ActionResult[*models.ScheduleActionResponse], error) {
	if err := forms.Check(draft); err != nil {
		return ActionResult[*models.ScheduleActionResponse]{}, err
	}
	resp, err := p.q.CompleteSchedule.MutateAsync(ctx, queries.CompleteInput{ScheduleID: id, Request: draft.Request()})
	if err != nil {
		return ActionResult[*models.ScheduleActionResponse]{}, actionError("complete schedule", err)
	}
	return ActionResult[*models.ScheduleActionResponse]{Message: messageOr(resp.Message, "Schedule completed"), Data: resp}, nil
}

func messageOr(msg, def string) string {
	if msg == "" {
		return def
	}
	return msg
}

// RouteCard is one assigned route in the list beside the map.
type RouteCard struct {
	ID              string            `json:"id"`
	Name            string            `json:"name"`
	Code            string            `json:"code"`
	ServiceAreaName string            `json:"service_area_name,omitempty"`
	CustomersCount  int               `json:"customers_count"`
	Distance        string            `json:"distance,omitempty"`
	Duration        string            `json:"duration,omitempty"`
	Schedule        string            `json:"schedule"`
	Today           *components.Badge `json:"today,omitempty"`
	TodayScheduleID string            `json:"today_schedule_id,omitempty"`
	Selected        bool              `json:"selected"`
}

// todayBadge labels a route that runs today by its schedule's progress.
func todayBadge(s models.CollectorSchedule) components.Badge {
	switch s.Status {
	case models.ScheduleInProgress:
		return components.Badge{Label: "Active", Variant: components.VariantWarning, Value: string(s.Status)}
	case models.ScheduleCompleted:
		return components.Badge{Label: "Done", Variant: components.VariantSuccess, Value: string(s.Status)}
	default:
		return components.Badge{Label: "Today", Variant: components.VariantPrimary, Value: string(s.Status)}
	}
}

// MapPayload is the map state plus the drawable layer for it.
type MapPayload struct {
	View  navigation.View `json:"view"`
	Layer any             `json:"layer"`
}

type CollectorRoutesView struct {
	Routes []RouteCard `json:"routes"`
	Map    MapPayload  `json:"map"`
}

// Routes loads the assigned routes onto the session's map. selectID picks a route;
// blank keeps the current selection (the first route on first load).
func (p *CollectorPages) Routes(ctx context.Context, selectID string) Page[CollectorRoutesView] {
	list, err := p.q.Routes().Get(ctx)
	if err != nil || list == nil {
		return Failed[CollectorRoutesView]("Failed to load routes", err, withQuery("/api/v1/collector/routes", "route", selectID))
	}

	// today's schedules only decorate the cards; the page renders without them
	today := map[string]models.CollectorSchedule{}
	if sched, err := p.q.Schedules("today", "").Get(ctx); err == nil && sched != nil {
		for _, s := range sched.Results {
			if s.RouteID != "" {
				today[s.RouteID] = s
			}
		}
	}

	p.view.SetRoutes(navigation.FromCollectorRoutes(list.Results))
	if selectID != "" {
		if err := p.view.Select(selectID); err != nil {
			return Page[CollectorRoutesView]{Status: StatusError, Error: &components.ErrorState{
				Message: "Route not found",
				Status:  http.StatusNotFound,
				Retry:   withQuery("/api/v1/collector/routes", "route", selectID),
			}}
		}
	}

	m, err := p.Map()
	if err != nil {
		return Failed[CollectorRoutesView]("Failed to load routes", err, withQuery("/api/v1/collector/routes", "route", selectID))
	}
	v := CollectorRoutesView{Map: m, Routes: make([]RouteCard, 0, len(list.Results))}
	for _, r := range list.Results {
		card := RouteCard{
			ID:              r.ID,
			Name:            r.Name,
			Code:            r.Code,
			ServiceAreaName: r.ServiceAreaName,
			CustomersCount:  r.CustomersCount,
			Schedule:        timeWindow(r.CollectionTimeStart, r.CollectionTimeEnd),
			Selected:        r.ID == m.View.SelectedID,
		}
		sum := routeSummary(r.ID, r.Name, r.Code, "", r.EstimatedDistanceKm, r.EstimatedDurationMinutes)
		card.Distance, card.Duration = sum.Distance, sum.Duration
		if s, ok := today[r.ID]; ok {
			b := todayBadge(s)
			card.Today = &b
			card.TodayScheduleID = s.ID
		}
		v.Routes = append(v.Routes, card)
	}
	if len(v.Routes) == 0 {
		return Empty(v, components.EmptyState{Title: "No routes assigned yet", Icon: "map"})
	}
	return Ready(v)
}

// Map snapshots and renders the session's map as it stands.
func (p *CollectorPages) Map() (MapPayload, error) {
	v := p.view.Snapshot()
	layer, err := p.renderer.Render(v)
	if err != nil {
		return MapPayload{}, fmt.Errorf("render map: %w", err)
	}
	return MapPayload{View: v, Layer: layer}, nil
}

// SelectRoute changes the map selection. With wait set, it returns after the
// navigation lookup settles or ctx ends, whichever comes first.
func (p *CollectorPages) SelectRoute(ctx context.Context, id string, wait bool) (MapPayload, error) {
	if err := p.view.Select(id); err != nil {
		return MapPayload{}, err
	}
	if wait {
		_ = p.view.Wait(ctx)
	}
	return p.Map()
}

// Locate records the collector's position from the browser's geolocation.
func (p *CollectorPages) Locate(ctx context.Context, pos navigation.LatLng, wait bool) (MapPayload, error) {
	p.view.RequestLocation()
	p.view.ResolveLocation(pos)
	if wait {
		_ = p.view.Wait(ctx)
	}
	return p.Map()
}

// LocateFailed records a browser geolocation failure.
func (p *CollectorPages) LocateFailed(reason string) (MapPayload, error) {
	p.view.FailLocation(reason)
	return p.Map()
}

type CollectorProfileView struct {
	Profile *models.CollectorProfile `json:"profile"`
	Status  components.Badge         `json:"status"`
	Rating  string                   `json:"rating"`
	Stats   []components.StatCard    `json:"stats"`
}

func (p *CollectorPages) Profile(ctx context.Context) Page[CollectorProfileView] {
	prof, err := p.q.Profile().Get(ctx)
	if err != nil || prof == nil {
		return Failed[CollectorProfileView]("Failed to load profile", err, "/api/v1/collector/profile")
	}
	return Ready(CollectorProfileView{
		Profile: prof,
		Status:  components.StatusBadge(prof.Status),
		Rating:  fmt.Sprintf("%.1f", prof.Rating),
		Stats: []components.StatCard{
			components.Stat("Total Collections", prof.TotalCollections, "truck"),
			components.Stat("Assigned Routes", prof.AssignedRoutesCount, "map"),
			components.Stat("Service Areas", len(prof.ServiceAreas), "pin"),
		},
	})
}
