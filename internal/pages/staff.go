package pages

import (
	"context"
	"fmt"
	"strings"
	"time"

	"wastepoint/internal/components"
	"wastepoint/internal/forms"
	"wastepoint/internal/models"
	"wastepoint/internal/queries"

	"golang.org/x/sync/errgroup"
)

type CollectorRow struct {
	ID           string           `json:"id"`
	EmployeeID   string           `json:"employee_id"`
	Name         string           `json:"name"`
	Phone        string           `json:"phone"`
	Email        string           `json:"email"`
	Employment   string           `json:"employment"`
	ServiceAreas string           `json:"service_areas,omitempty"`
	Routes       int              `json:"routes"`
	Rating       string           `json:"rating,omitempty"`
	Available    bool             `json:"available"`
	Status       components.Badge `json:"status"`
	Href         string           `json:"href"`
}

func collectorRow(c models.Collector) CollectorRow {
	name := c.FullName
	if name == "" {
		name = strings.TrimSpace(c.FirstName + " " + c.LastName)
	}
	return CollectorRow{
		ID:           c.ID,
		EmployeeID:   c.EmployeeID,
		Name:         name,
		Phone:        c.Phone,
		Email:        c.Email,
		Employment:   components.FormatStatus(c.EmploymentType),
		ServiceAreas: strings.Join(c.ServiceAreaNames, ", "),
		Routes:       c.AssignedRoutesCount,
		Rating:       c.Rating,
		Available:    c.IsAvailable,
		Status:       components.StatusBadge(string(c.Status)),
		Href:         "/operations/collectors/" + c.ID,
	}
}

type CollectorsView struct {
	StatusOptions     []Option       `json:"status_options"`
	EmploymentOptions []Option       `json:"employment_options"`
	Count             int            `json:"count"`
	Collectors        []CollectorRow `json:"collectors"`
}

func (o *Operations) Collectors(ctx context.Context, params models.CollectorQueryParams) Page[CollectorsView] {
	list, err := o.q.Collectors.List(params).Get(ctx)
	if err != nil || list == nil {
		return Failed[CollectorsView]("Failed to load collectors. Please try again.", err,
			withQuery("/api/v1/operations/collectors",
				"status", params.Status, "service_area", params.ServiceArea, "employment_type", params.EmploymentType, "search", params.Search))
	}
	emp := []string{"", "All"}
	for _, e := range models.EmploymentTypes {
		emp = append(emp, e, components.FormatStatus(e))
	}
	v := CollectorsView{
		StatusOptions: options(params.Status,
			"", "All", "active", "Active", "on_leave", "On Leave", "inactive", "Inactive", "suspended", "Suspended"),
		EmploymentOptions: options(params.EmploymentType, emp...),
		Count:             list.Count,
		Collectors:        mapSlice(list.Results, collectorRow),
	}
	if len(v.Collectors) == 0 {
		return Empty(v, components.EmptyState{
			Title:       "No collectors found",
			Description: "Add collectors to assign them to routes.",
			Icon:        "users",
			ActionLabel: "Add Collector",
			ActionHref:  "/operations/collectors/new",
		})
	}
	return Ready(v)
}

type CollectorDetailView struct {
	Collector      *models.Collector      `json:"collector"`
	Status         components.Badge       `json:"status"`
	Stats          []components.StatCard  `json:"stats,omitempty"`
	Routes         []RouteRow             `json:"routes"`
	RoutesEmpty    *components.EmptyState `json:"routes_empty,omitempty"`
	Schedules      []ScheduleRow          `json:"schedules"`
	SchedulesEmpty *components.EmptyState `json:"schedules_empty,omitempty"`
	Draft          forms.CollectorDraft   `json:"draft"`
}

// Collector loads the profile with performance, routes and schedules in parallel.
// Only the profile itself is required.
func (o *Operations) Collector(ctx context.Context, id string) Page[CollectorDetailView] {
	var (
		c         *models.Collector
		perf      *models.CollectorPerformance
		routes    []models.Route
		schedules []models.Schedule
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		c, err = o.q.Collectors.Detail(id).Get(gctx)
		return err
	})
	g.Go(func() error {
		perf, _ = o.q.Collectors.Performance(id).Get(gctx)
		return nil
	})
	g.Go(func() error {
		routes, _ = o.q.Collectors.Routes(id).Get(gctx)
		return nil
	})
	g.Go(func() error {
		schedules, _ = o.q.Collectors.Schedules(id).Get(gctx)
		return nil
	})
	if err := g.Wait(); err != nil || c == nil {
		return Failed[CollectorDetailView]("Failed to load collector", err, "/api/v1/operations/collectors/"+id)
	}

	v := CollectorDetailView{
		Collector: c,
		Status:    components.StatusBadge(string(c.Status)),
		Routes:    mapSlice(routes, routeRow),
		Schedules: mapSlice(schedules, scheduleRow),
		Draft:     forms.CollectorDraftFrom(*c),
	}
	if perf != nil {
		v.Stats = []components.StatCard{
			components.Stat("Total Collections", perf.TotalCollections, "truck"),
			components.Stat("Completion Rate", fmt.Sprintf("%.0f%%", perf.CompletionRate), "percent"),
			components.Stat("Missed Schedules", perf.MissedSchedules, "x"),
			components.Stat("This Month", perf.CollectionsThisMonth, "calendar"),
		}
	}
	if len(v.Routes) == 0 {
		v.RoutesEmpty = &components.EmptyState{Title: "No routes assigned", Icon: "route"}
	}
	if len(v.Schedules) == 0 {
		v.SchedulesEmpty = &components.EmptyState{Title: "No schedules", Icon: "calendar"}
	}
	return Ready(v)
}

func (o *Operations) CreateCollector(ctx context.Context, d forms.CollectorDraft) (ActionResult[*models.Collector], error) {
	return checked(ctx, d, o.q.Collectors.Create, d.CreatePayload, "create collector", "Collector created")
}

func (o *Operations) UpdateCollector(ctx context.Context, id string, d forms.CollectorDraft) (ActionResult[*models.Collector], error) {
	return checked(ctx, d, o.q.Collectors.Update, func() queries.Update[models.CollectorPayload] {
		return queries.Update[models.CollectorPayload]{ID: id, Payload: d.UpdatePayload()}
	}, "update collector", "Collector updated")
}

func (o *Operations) DeleteCollector(ctx context.Context, id string) (ActionResult[struct{}], error) {
	return run(ctx, o.q.Collectors.Delete, id, "delete collector", "Collector deleted")
}

// SetCollectorStatus moves a collector to active, suspended or on_leave.
func (o *Operations) SetCollectorStatus(ctx context.Context, id, status string) (ActionResult[*models.Collector], error) {
	const action = "change collector status"
	switch models.CollectorStatus(status) {
	case models.CollectorActive:
		return run(ctx, o.q.Collectors.Activate, id, action, "Collector activated")
	case models.CollectorSuspended:
		return run(ctx, o.q.Collectors.Suspend, id, action, "Collector suspended")
	case models.CollectorOnLeave:
		return run(ctx, o.q.Collectors.SetOnLeave, id, action, "Collector set on leave")
	}
	return ActionResult[*models.Collector]{}, &forms.ValidationError{
		Fields: map[string][]string{"status": {"Status must be one of: active, suspended, on_leave"}},
	}
}

func scheduleRow(s models.Schedule) ScheduleRow {
	return ScheduleRow{
		ID:              s.ID,
		RouteID:         s.Route,
		RouteName:       s.RouteName,
		ServiceAreaName: s.ServiceAreaName,
		CollectorName:   derefStr(s.CollectorName),
		Date:            s.ScheduledDate,
		TimeWindow:      timeWindow(s.ScheduledTimeStart, s.ScheduledTimeEnd),
		Status:          components.StatusBadge(string(s.Status)),
		Progress:        fmt.Sprintf("%d/%d collected", s.CustomersCollected, s.CustomersScheduled),
		CanStart:        s.Status == models.ScheduleScheduled,
		CanComplete:     s.Status == models.ScheduleInProgress,
		Href:            "/operations/schedules/" + s.ID,
	}
}

// StaffScheduleFilter drives the console schedules screen. Tab is one of
// today, upcoming, overdue, completed or all.
type StaffScheduleFilter struct {
	Tab    string
	Search string
	Params models.ScheduleQueryParams
}

type SchedulesView struct {
	Stats     []components.StatCard `json:"stats"`
	Tabs      []Option              `json:"tabs"`
	Search    string                `json:"search,omitempty"`
	Count     int                   `json:"count"`
	Schedules []ScheduleRow         `json:"schedules"`
}

// Schedules loads the full list and the today/upcoming/overdue buckets together.
// Only the full list is required; a failed bucket shows as empty.
func (o *Operations) Schedules(ctx context.Context, f StaffScheduleFilter) Page[SchedulesView] {
	tab := oneOf(f.Tab, "today", "today", "upcoming", "overdue", "completed", "all")

	var (
		all                      *models.ListResponse[models.Schedule]
		today, upcoming, overdue []models.Schedule
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		all, err = o.q.Schedules.List(f.Params).Get(gctx)
		return err
	})
	g.Go(func() error {
		today, _ = o.q.Schedules.Today().Get(gctx)
		return nil
	})
	g.Go(func() error {
		upcoming, _ = o.q.Schedules.Upcoming().Get(gctx)
		return nil
	})
	g.Go(func() error {
		overdue, _ = o.q.Schedules.Overdue().Get(gctx)
		return nil
	})
	if err := g.Wait(); err != nil || all == nil {
		return Failed[SchedulesView]("Failed to load schedules", err, withQuery("/api/v1/operations/schedules",
			"tab", tab, "search", f.Search,
			"status", f.Params.Status, "route", f.Params.Route, "collector", f.Params.Collector,
			"scheduled_date", f.Params.ScheduledDate, "date_from", f.Params.DateFrom, "date_to", f.Params.DateTo))
	}

	completed := filter(all.Results, func(s models.Schedule) bool { return s.Status == models.ScheduleCompleted })

	var rows []models.Schedule
	switch tab {
	case "today":
		rows = today
	case "upcoming":
		rows = upcoming
	case "overdue":
		rows = overdue
	case "completed":
		rows = completed
	default:
		rows = all.Results
	}
	rows = filter(rows, func(s models.Schedule) bool {
		return matches(f.Search, s.RouteName, derefStr(s.CollectorName), s.ServiceAreaName)
	})

	v := SchedulesView{
		Stats: []components.StatCard{
			components.Stat("Today", len(today), "calendar"),
			components.Stat("Upcoming", len(upcoming), "clock"),
			components.Stat("Overdue", len(overdue), "alert"),
			components.Stat("Completed", len(completed), "check"),
		},
		Tabs: []Option{
			{Value: "today", Label: fmt.Sprintf("Today (%d)", len(today)), Active: tab == "today"},
			{Value: "upcoming", Label: fmt.Sprintf("Upcoming (%d)", len(upcoming)), Active: tab == "upcoming"},
			{Value: "overdue", Label: fmt.Sprintf("Overdue (%d)", len(overdue)), Active: tab == "overdue"},
			{Value: "completed", Label: fmt.Sprintf("Completed (%d)", len(completed)), Active: tab == "completed"},
			{Value: "all", Label: "All", Active: tab == "all"},
		},
		Search:    f.Search,
		Count:     len(rows),
		Schedules: mapSlice(rows, scheduleRow),
	}
	if len(rows) > 0 {
		return Ready(v)
	}

	desc := "Try adjusting your search or filter."
	switch tab {
	case "today":
		desc = "No schedules for today. Create a new schedule to get started."
	case "overdue":
		desc = "Great! No overdue schedules."
	}
	return Empty(v, components.EmptyState{
		Title:       "No schedules found",
		Description: desc,
		Icon:        "calendar",
		ActionLabel: "New Schedule",
		ActionHref:  "/operations/schedules/new",
	})
}

type StaffScheduleDetailView struct {
	Schedule *models.Schedule    `json:"schedule"`
	Row      ScheduleRow         `json:"row"`
	Draft    forms.ScheduleDraft `json:"draft"`
}

func (o *Operations) Schedule(ctx context.Context, id string) Page[StaffScheduleDetailView] {
	s, err := o.q.Schedules.Detail(id).Get(ctx)
	if err != nil || s == nil {
		return Failed[StaffScheduleDetailView]("Failed to load schedule", err, "/api/v1/operations/schedules/"+id)
	}
	return Ready(StaffScheduleDetailView{Schedule: s, Row: scheduleRow(*s), Draft: forms.ScheduleDraftFrom(*s)})
}

type ScheduleFormView struct {
	Draft      forms.ScheduleDraft `json:"draft"`
	Routes     []Option            `json:"routes"`
	Collectors []Option            `json:"collectors"`
}

// ScheduleForm prepares the create form. A chosen route fills in its default
// collector and time window.
func (o *Operations) ScheduleForm(ctx context.Context, routeID string, today time.Time) Page[ScheduleFormView] {
	var (
		routes     *models.ListResponse[models.Route]
		collectors []models.Collector
		route      *models.Route
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		routes, _ = o.q.Routes.List(models.RouteQueryParams{Status: string(models.RouteActive)}).Get(gctx)
		return nil
	})
	g.Go(func() error {
		collectors, _ = o.q.Collectors.Available().Get(gctx)
		return nil
	})
	if routeID != "" {
		g.Go(func() error {
			var err error
			route, err = o.q.Routes.Detail(routeID).Get(gctx)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return Failed[ScheduleFormView]("Failed to load route", err, "/api/v1/operations/schedules/new")
	}

	v := ScheduleFormView{Draft: forms.NewScheduleDraft(today), Routes: []Option{}, Collectors: []Option{}}
	if route != nil {
		v.Draft.ApplyRouteDefaults(*route)
	}
	if routes != nil {
		for _, r := range routes.Results {
			v.Routes = append(v.Routes, Option{Value: r.ID, Label: r.Code + " - " + r.Name, Active: r.ID == v.Draft.Route})
		}
	}
	for _, c := range collectors {
		row := collectorRow(c)
		v.Collectors = append(v.Collectors, Option{Value: c.ID, Label: row.Name, Active: c.ID == v.Draft.Collector})
	}
	return Ready(v)
}

func (o *Operations) CreateSchedule(ctx context.Context, d forms.ScheduleDraft) (ActionResult[*models.Schedule], error) {
	return checked(ctx, d, o.q.Schedules.Create, d.CreatePayload, "create schedule", "Schedule created")
}

func (o *Operations) UpdateSchedule(ctx context.Context, id string, d forms.ScheduleDraft) (ActionResult[*models.Schedule], error) {
	return checked(ctx, d, o.q.Schedules.Update, func() queries.Update[models.SchedulePayload] {
		return queries.Update[models.SchedulePayload]{ID: id, Payload: d.UpdatePayload()}
	}, "update schedule", "Schedule updated")
}

func (o *Operations) DeleteSchedule(ctx context.Context, id string) (ActionResult[struct{}], error) {
	return run(ctx, o.q.Schedules.Delete, id, "delete schedule", "Schedule deleted")
}

func (o *Operations) StartSchedule(ctx context.Context, id string) (ActionResult[*models.Schedule], error) {
	return run(ctx, o.q.Schedules.Start, id, "start schedule", "Schedule started")
}

func (o *Operations) CompleteSchedule(ctx context.Context, id string, d forms.CompleteDraft) (ActionResult[*models.Schedule], error) {
	return checked(ctx, d, o.q.Schedules.Complete, func() queries.ScheduleCompleteInput {
		return queries.ScheduleCompleteInput{ScheduleID: id, Request: d.Request()}
	}, "complete schedule", "Schedule completed")
}

func (o *Operations) CancelSchedule(ctx context.Context, id, reason string) (ActionResult[*models.Schedule], error) {
	return run(ctx, o.q.Schedules.Cancel, queries.CancelInput{ScheduleID: id, Reason: strings.TrimSpace(reason)},
		"cancel schedule", "Schedule cancelled")
}

func (o *Operations) MarkScheduleMissed(ctx context.Context, id string) (ActionResult[*models.Schedule], error) {
	return run(ctx, o.q.Schedules.MarkMissed, id, "mark schedule missed", "Schedule marked as missed")
}
