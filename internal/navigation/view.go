package navigation

import (
	"context"
	"errors"
	"sync"

	"wastepoint/internal/models"

	"go.uber.org/zap"
)

const (
	MsgLocationFailed = "Could not find your location"
	MsgRouteFailed    = "Unable to calculate route"
	MsgTapLocate      = "Tap locate button to get directions"
	MsgNoRoutes       = "No routes assigned"
)

// ErrUnknownRoute is returned by Select for an id that is not on the map.
var ErrUnknownRoute = errors.New("route not on map")

type Phase string

const (
	NoSelection           Phase = "no_selection"
	SelectionOnly         Phase = "selection_only"
	SelectionWithLocation Phase = "selection_with_location"
)

// Stage refines SelectionWithLocation.
type Stage string

const (
	StageLoading  Stage = "loading"
	StageResolved Stage = "resolved"
	StageFailed   Stage = "failed"
)

type Status string

const (
	StatusIdle     Status = "idle"
	StatusLoading  Status = "loading"
	StatusResolved Status = "resolved"
	StatusFailed   Status = "failed"
)

// Route is a collector route as placed on the map.
type Route struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Code      string   `json:"code"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Path      []LatLng `json:"path,omitempty"`
}

// Anchor is the route's fixed coordinate, else the first vertex of its path.
func (r Route) Anchor() (LatLng, bool) {
	if r.Latitude != nil && r.Longitude != nil && (*r.Latitude != 0 || *r.Longitude != 0) {
		return LatLng{Lat: *r.Latitude, Lng: *r.Longitude}, true
	}
	if len(r.Path) > 0 {
		return r.Path[0], true
	}
	return LatLng{}, false
}

// FromCollectorRoutes converts upstream routes, parsing each path once.
func FromCollectorRoutes(in []models.CollectorRoute) []Route {
	out := make([]Route, 0, len(in))
	for _, r := range in {
		out = append(out, Route{
			ID:        r.ID,
			Name:      r.Name,
			Code:      r.Code,
			Latitude:  r.Latitude,
			Longitude: r.Longitude,
			Path:      ParsePath(r.PathGeoJSON),
		})
	}
	return out
}

type LocationState struct {
	Status   Status  `json:"status"`
	Position *LatLng `json:"position,omitempty"`
	Message  string  `json:"message,omitempty"`
	Reason   string  `json:"reason,omitempty"`
}

type NavigationState struct {
	Status       Status           `json:"status"`
	RouteID      string           `json:"route_id,omitempty"`
	Route        *NavigationRoute `json:"route,omitempty"`
	DistanceText string           `json:"distance_text,omitempty"`
	DurationText string           `json:"duration_text,omitempty"`
	Message      string           `json:"message,omitempty"`
}

// View is an immutable snapshot of the map.
type View struct {
	Phase      Phase           `json:"phase"`
	Stage      Stage           `json:"stage,omitempty"`
	Routes     []Route         `json:"routes"`
	SelectedID string          `json:"selected_id,omitempty"`
	Center     LatLng          `json:"center"`
	Recenter   *LatLng         `json:"recenter,omitempty"`
	Location   LocationState   `json:"location"`
	Navigation NavigationState `json:"navigation"`
	Message    string          `json:"message,omitempty"`
}

// Selected returns the selected route, if any.
func (v View) Selected() (Route, bool) {
	for _, r := range v.Routes {
		if r.ID == v.SelectedID {
			return r, true
		}
	}
	return Route{}, false
}

// LocationSink receives every resolved collector position.
type LocationSink func(ctx context.Context, p LatLng) error

type ViewOption func(*MapView)

func WithLocationSink(sink LocationSink) ViewOption {
	return func(m *MapView) { m.sink = sink }
}

func WithViewLogger(l *zap.Logger) ViewOption {
	return func(m *MapView) { m.logr = l }
}

// WithBaseContext sets the context lookups and location pushes run under.
func WithBaseContext(ctx context.Context) ViewOption {
	return func(m *MapView) { m.baseCtx = ctx }
}

// MapView tracks one collector's route selection, location and navigation line.
// Lookups run in the background; only the most recent selection/location pair
// may write its result.
type MapView struct {
	lookup   RouteLookup
	fallback LatLng
	sink     LocationSink
	logr     *zap.Logger

	baseCtx context.Context
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup

	mu       sync.Mutex
	routes   []Route
	selected string
	location LocationState
	nav      NavigationState
	gen      uint64
}

func NewMapView(lookup RouteLookup, fallback LatLng, opts ...ViewOption) *MapView {
	m := &MapView{
		lookup:   lookup,
		fallback: fallback,
		logr:     zap.NewNop(),
		baseCtx:  context.Background(),
		location: LocationState{Status: StatusIdle},
		nav:      NavigationState{Status: StatusIdle},
	}
	for _, opt := range opts {
		opt(m)
	}
	m.ctx, m.cancel = context.WithCancel(m.baseCtx)
	return m
}

// SetRoutes replaces the routes on the map. The first route is selected when
// nothing is, and a selection that disappeared is dropped.
func (m *MapView) SetRoutes(routes []Route) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.routes = append([]Route(nil), routes...)
	if m.selected != "" && m.indexLocked(m.selected) < 0 {
		m.selected = ""
		m.gen++
		m.nav = NavigationState{Status: StatusIdle}
	}
	if m.selected == "" && len(m.routes) > 0 {
		m.selectLocked(m.routes[0].ID)
	}
}

// Select makes id the selected route and, when the location is known, starts a lookup.
func (m *MapView) Select(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.indexLocked(id) < 0 {
		return ErrUnknownRoute
	}
	if id == m.selected {
		return nil
	}
	m.selectLocked(id)
	return nil
}

// RequestLocation marks a geolocation request as in flight. A previously known position is kept.
func (m *MapView) RequestLocation() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.location.Status = StatusLoading
	m.location.Message = ""
	m.location.Reason = ""
}

// ResolveLocation records the collector's position, reports it upstream and
// recomputes navigation to the selected route.
func (m *MapView) ResolveLocation(p LatLng) {
	m.mu.Lock()
	pos := p
	m.location = LocationState{Status: StatusResolved, Position: &pos}
	m.gen++
	m.startLookupLocked()
	m.mu.Unlock()

	if m.sink != nil {
		m.wg.Add(1)
		go func() {
			defer m.wg.Done()
			if err := m.sink(m.ctx, p); err != nil && !errors.Is(err, context.Canceled) {
				m.logr.Warn("failed to push collector location", zap.Error(err))
			}
		}()
	}
}

// FailLocation records a geolocation failure such as a denied permission or a timeout.
func (m *MapView) FailLocation(reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.location.Status = StatusFailed
	m.location.Message = MsgLocationFailed
	m.location.Reason = reason
}

func (m *MapView) Snapshot() View {
	m.mu.Lock()
	defer m.mu.Unlock()

	v := View{
		Routes:     append([]Route(nil), m.routes...),
		SelectedID: m.selected,
		Location:   m.location,
		Navigation: m.nav,
		Center:     m.fallback,
	}
	if m.location.Position != nil {
		pos := *m.location.Position
		v.Location.Position = &pos
	}

	sel := m.indexLocked(m.selected)
	if sel >= 0 {
		if a, ok := m.routes[sel].Anchor(); ok {
			v.Center = a
			v.Recenter = &a
		}
	} else if len(m.routes) > 0 {
		if a, ok := m.routes[0].Anchor(); ok {
			v.Center = a
		}
	}

	switch {
	case sel < 0:
		v.Phase = NoSelection
	case m.location.Status == StatusIdle:
		v.Phase = SelectionOnly
	default:
		v.Phase = SelectionWithLocation
		v.Stage = m.stageLocked()
	}

	switch {
	case len(m.routes) == 0:
		v.Message = MsgNoRoutes
	case m.location.Status == StatusFailed:
		v.Message = MsgLocationFailed
	case m.nav.Status == StatusFailed:
		v.Message = MsgRouteFailed
	case m.location.Position == nil:
		v.Message = MsgTapLocate
	}
	return v
}

// Wait blocks until background lookups finish or ctx is done.
func (m *MapView) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close cancels in-flight lookups; their results are discarded.
func (m *MapView) Close() {
	m.mu.Lock()
	m.gen++
	m.mu.Unlock()
	m.cancel()
	m.wg.Wait()
}

func (m *MapView) stageLocked() Stage {
	switch {
	case m.location.Status == StatusFailed || m.nav.Status == StatusFailed:
		return StageFailed
	case m.location.Status == StatusLoading || m.nav.Status == StatusLoading:
		return StageLoading
	case m.nav.Status == StatusResolved:
		return StageResolved
	default:
		// location known but the route has nothing to navigate to
		return StageResolved
	}
}

func (m *MapView) indexLocked(id string) int {
	if id == "" {
		return -1
	}
	for i, r := range m.routes {
		if r.ID == id {
			return i
		}
	}
	return -1
}

func (m *MapView) selectLocked(id string) {
	m.selected = id
	m.gen++
	m.startLookupLocked()
}

// startLookupLocked begins a lookup for the current generation. The previous
// navigation line stays visible until this one settles.
func (m *MapView) startLookupLocked() {
	if m.location.Position == nil || m.selected == "" {
		return
	}
	route := m.routes[m.indexLocked(m.selected)]
	dest, ok := route.Anchor()
	if !ok {
		m.nav = NavigationState{Status: StatusIdle}
		return
	}
	if m.lookup == nil {
		m.nav = NavigationState{Status: StatusFailed, RouteID: route.ID, Message: MsgRouteFailed}
		return
	}

	from := *m.location.Position
	gen := m.gen
	m.nav.Status = StatusLoading
	m.nav.Message = ""

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		res, err := m.lookup.Lookup(m.ctx, from, dest)

		m.mu.Lock()
		defer m.mu.Unlock()
		if gen != m.gen {
			return
		}
		if err != nil {
			m.logr.Debug("navigation lookup failed", zap.String("route_id", route.ID), zap.Error(err))
			m.nav = NavigationState{Status: StatusFailed, RouteID: route.ID, Message: MsgRouteFailed}
			return
		}
		m.nav = NavigationState{
			Status:       StatusResolved,
			RouteID:      route.ID,
			Route:        res,
			DistanceText: FormatDistance(res.DistanceMeters),
			DurationText: FormatDuration(res.DurationSeconds),
		}
	}()
}
