package navigation

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLookup struct {
	mu      sync.Mutex
	gates   map[LatLng]chan struct{}
	results map[LatLng]*NavigationRoute
	fail    map[LatLng]bool
	calls   []LatLng
}

func newFakeLookup() *fakeLookup {
	return &fakeLookup{
		gates:   map[LatLng]chan struct{}{},
		results: map[LatLng]*NavigationRoute{},
		fail:    map[LatLng]bool{},
	}
}

func (f *fakeLookup) hold(to LatLng) chan struct{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch := make(chan struct{})
	f.gates[to] = ch
	return ch
}

func (f *fakeLookup) Lookup(ctx context.Context, from, to LatLng) (*NavigationRoute, error) {
	f.mu.Lock()
	f.calls = append(f.calls, to)
	gate := f.gates[to]
	res := f.results[to]
	fail := f.fail[to]
	f.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if fail || res == nil {
		return nil, ErrNoRoute
	}
	return res, nil
}

func ptr(f float64) *float64 { return &f }

var (
	destA  = LatLng{Lat: -1.95, Lng: 30.06}
	destB  = LatLng{Lat: -1.90, Lng: 30.10}
	routeA = Route{ID: "a", Name: "Kacyiru", Latitude: ptr(destA.Lat), Longitude: ptr(destA.Lng)}
	routeB = Route{ID: "b", Name: "Remera", Path: []LatLng{destB, {Lat: -1.91, Lng: 30.11}}}
	here   = LatLng{Lat: -1.94, Lng: 30.05}
)

func settle(t *testing.T, m *MapView) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, m.Wait(ctx))
}

func TestEmptyMapUsesFallbackCenter(t *testing.T) {
	m := NewMapView(newFakeLookup(), LatLng{Lat: -1.2921, Lng: 36.8219})
	defer m.Close()

	v := m.Snapshot()
	assert.Equal(t, NoSelection, v.Phase)
	assert.Equal(t, LatLng{Lat: -1.2921, Lng: 36.8219}, v.Center)
	assert.Nil(t, v.Recenter)
	assert.Equal(t, MsgNoRoutes, v.Message)
}

func TestFirstRouteIsAutoSelected(t *testing.T) {
	m := NewMapView(newFakeLookup(), LatLng{})
	defer m.Close()

	m.SetRoutes([]Route{routeA, routeB})
	v := m.Snapshot()

	assert.Equal(t, SelectionOnly, v.Phase)
	assert.Equal(t, "a", v.SelectedID)
	assert.Equal(t, destA, v.Center)
	require.NotNil(t, v.Recenter)
	assert.Equal(t, destA, *v.Recenter)
	assert.Equal(t, MsgTapLocate, v.Message)
}

func TestDestinationFallsBackToFirstVertex(t *testing.T) {
	lookup := newFakeLookup()
	lookup.results[destB] = &NavigationRoute{DistanceMeters: 1500, DurationSeconds: 5400}
	m := NewMapView(lookup, LatLng{})
	defer m.Close()

	m.SetRoutes([]Route{routeA, routeB})
	require.NoError(t, m.Select("b"))
	m.RequestLocation()
	assert.Equal(t, StageLoading, m.Snapshot().Stage)

	m.ResolveLocation(here)
	settle(t, m)

	v := m.Snapshot()
	assert.Equal(t, SelectionWithLocation, v.Phase)
	assert.Equal(t, StageResolved, v.Stage)
	assert.Equal(t, "b", v.Navigation.RouteID)
	assert.Equal(t, "1.5 km", v.Navigation.DistanceText)
	assert.Equal(t, "1h 30min", v.Navigation.DurationText)
	assert.Equal(t, []LatLng{destB}, lookup.calls)
	assert.Empty(t, v.Message)
}

func TestLastSelectionWins(t *testing.T) {
	lookup := newFakeLookup()
	lookup.results[destA] = &NavigationRoute{DistanceMeters: 800}
	lookup.results[destB] = &NavigationRoute{DistanceMeters: 2500}
	gateA := lookup.hold(destA)
	gateB := lookup.hold(destB)

	m := NewMapView(lookup, LatLng{})
	defer m.Close()
	m.SetRoutes([]Route{routeA, routeB})
	m.ResolveLocation(here)
	require.NoError(t, m.Select("b"))

	close(gateB)
	require.Eventually(t, func() bool {
		return m.Snapshot().Navigation.Status == StatusResolved
	}, time.Second, 5*time.Millisecond)

	close(gateA)
	settle(t, m)

	v := m.Snapshot()
	assert.Equal(t, "b", v.Navigation.RouteID)
	assert.Equal(t, "2.5 km", v.Navigation.DistanceText)
}

func TestPreviousNavigationKeptWhileRecomputing(t *testing.T) {
	lookup := newFakeLookup()
	lookup.results[destA] = &NavigationRoute{DistanceMeters: 800}
	lookup.results[destB] = &NavigationRoute{DistanceMeters: 2500}

	m := NewMapView(lookup, LatLng{})
	defer m.Close()
	m.SetRoutes([]Route{routeA, routeB})
	m.ResolveLocation(here)
	settle(t, m)
	require.Equal(t, "a", m.Snapshot().Navigation.RouteID)

	gateB := lookup.hold(destB)
	require.NoError(t, m.Select("b"))

	v := m.Snapshot()
	assert.Equal(t, StatusLoading, v.Navigation.Status)
	assert.Equal(t, StageLoading, v.Stage)
	require.NotNil(t, v.Navigation.Route)
	assert.Equal(t, float64(800), v.Navigation.Route.DistanceMeters)
	assert.Equal(t, destB, *v.Recenter)

	close(gateB)
	settle(t, m)
	assert.Equal(t, float64(2500), m.Snapshot().Navigation.Route.DistanceMeters)
}

func TestRoutingFailureDegrades(t *testing.T) {
	lookup := newFakeLookup()
	lookup.fail[destA] = true

	m := NewMapView(lookup, LatLng{})
	defer m.Close()
	m.SetRoutes([]Route{routeA})
	m.ResolveLocation(here)
	settle(t, m)

	v := m.Snapshot()
	assert.Equal(t, StageFailed, v.Stage)
	assert.Equal(t, StatusFailed, v.Navigation.Status)
	assert.Equal(t, MsgRouteFailed, v.Message)
	assert.Equal(t, "a", v.SelectedID)
	assert.Len(t, v.Routes, 1)
}

func TestLocationFailureKeepsRoutes(t *testing.T) {
	m := NewMapView(newFakeLookup(), LatLng{})
	defer m.Close()
	m.SetRoutes([]Route{routeA, routeB})

	m.RequestLocation()
	m.FailLocation("permission denied")

	v := m.Snapshot()
	assert.Equal(t, SelectionWithLocation, v.Phase)
	assert.Equal(t, StageFailed, v.Stage)
	assert.Equal(t, MsgLocationFailed, v.Location.Message)
	assert.Equal(t, "permission denied", v.Location.Reason)
	assert.Equal(t, MsgLocationFailed, v.Message)

	require.NoError(t, m.Select("b"))
	assert.Equal(t, "b", m.Snapshot().SelectedID)
}

func TestSelectUnknownRoute(t *testing.T) {
	m := NewMapView(newFakeLookup(), LatLng{})
	defer m.Close()
	m.SetRoutes([]Route{routeA})

	assert.ErrorIs(t, m.Select("zzz"), ErrUnknownRoute)
	assert.Equal(t, "a", m.Snapshot().SelectedID)
}

func TestRemovedSelectionFallsBackToFirstRoute(t *testing.T) {
	m := NewMapView(newFakeLookup(), LatLng{})
	defer m.Close()
	m.SetRoutes([]Route{routeA, routeB})
	require.NoError(t, m.Select("b"))

	m.SetRoutes([]Route{routeA})
	assert.Equal(t, "a", m.Snapshot().SelectedID)

	m.SetRoutes(nil)
	v := m.Snapshot()
	assert.Equal(t, NoSelection, v.Phase)
	assert.Equal(t, MsgNoRoutes, v.Message)
}

func TestResolvedLocationIsPushed(t *testing.T) {
	var (
		mu     sync.Mutex
		pushed []LatLng
	)
	sink := func(ctx context.Context, p LatLng) error {
		mu.Lock()
		defer mu.Unlock()
		pushed = append(pushed, p)
		return errors.New("ignored")
	}
	m := NewMapView(nil, LatLng{}, WithLocationSink(sink))
	defer m.Close()

	m.ResolveLocation(here)
	settle(t, m)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []LatLng{here}, pushed)
}

func TestGeoJSONRenderer(t *testing.T) {
	lookup := newFakeLookup()
	lookup.results[destA] = &NavigationRoute{DistanceMeters: 900, DurationSeconds: 120, Path: []LatLng{here, destA}}
	m := NewMapView(lookup, LatLng{})
	defer m.Close()
	m.SetRoutes([]Route{routeA, routeB})
	m.ResolveLocation(here)
	settle(t, m)

	out, err := GeoJSONRenderer{Zoom: 13, RecenterZoom: 14}.Render(m.Snapshot())
	require.NoError(t, err)
	fc := out.(*FeatureCollection)

	assert.Equal(t, "FeatureCollection", fc.Type)
	assert.Equal(t, 14, fc.Zoom)
	assert.Equal(t, [2]float64{destA.Lat, destA.Lng}, fc.Center)

	kinds := map[string]int{}
	for _, f := range fc.Features {
		kinds[f.Properties["kind"].(string)]++
	}
	// routeA has only a marker, routeB has a line and a marker
	assert.Equal(t, map[string]int{"route": 1, "route-marker": 2, "navigation": 1, "user": 1}, kinds)
	assert.Equal(t, fc.Count, len(fc.Features))

	for _, f := range fc.Features {
		if f.ID == "navigation" {
			assert.Equal(t, "900 m", f.Properties["distance"])
			assert.Equal(t, "10, 10", f.Properties["dash_array"])
			assert.Equal(t, [][2]float64{{here.Lng, here.Lat}, {destA.Lng, destA.Lat}}, f.Geometry.Coordinates)
		}
		if f.ID == "marker:a" {
			assert.Equal(t, true, f.Properties["selected"])
			assert.Equal(t, colorSelected, f.Properties["color"])
		}
	}
}
