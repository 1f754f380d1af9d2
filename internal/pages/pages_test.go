package pages

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"wastepoint/internal/apiclient"
	"wastepoint/internal/components"
	"wastepoint/internal/forms"
	"wastepoint/internal/models"
	"wastepoint/internal/navigation"
	"wastepoint/internal/queries"
	"wastepoint/internal/query"
	"wastepoint/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	routeA     = "0d8a2c4e-1f3b-4a6c-8e9d-7b5a3c1e2f40"
	routeB     = "7c1d3e5f-2a4b-4c6d-8e0f-1a3b5c7d9e21"
	scheduleA  = "5b0f5c1e-6a51-4c57-9d2e-3d7f5a2f0c11"
	scheduleB  = "6c1a6d2f-7b62-4d68-8e3f-4e8a6b3a1d22"
	portalBase = "/operations/collector-portal"
)

type reply struct {
	status int
	body   any
}

// upstream answers "METHOD /path/" with a canned reply and records every call.
type upstream struct {
	mu      sync.Mutex
	replies map[string]reply
	calls   []string
	bodies  map[string]map[string]any
}

func newUpstream(t *testing.T, replies map[string]reply) (*upstream, *apiclient.Client) {
	t.Helper()
	u := &upstream{replies: replies, bodies: map[string]map[string]any{}}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Method + " " + r.URL.Path
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)

		u.mu.Lock()
		u.calls = append(u.calls, key)
		u.bodies[key] = body
		rep, ok := u.replies[key]
		u.mu.Unlock()

		if !ok {
			rep = reply{status: http.StatusNotFound, body: map[string]string{"detail": "Not found."}}
		}
		if rep.status == 0 {
			rep.status = http.StatusOK
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(rep.status)
		_ = json.NewEncoder(w).Encode(rep.body)
	}))
	t.Cleanup(srv.Close)
	return u, apiclient.New(srv.URL, 2*time.Second, nil)
}

func (u *upstream) count(key string) int {
	u.mu.Lock()
	defer u.mu.Unlock()
	n := 0
	for _, c := range u.calls {
		if c == key {
			n++
		}
	}
	return n
}

func (u *upstream) body(key string) map[string]any {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.bodies[key]
}

func newSet(t *testing.T, api *apiclient.Client) *queries.Set {
	t.Helper()
	c := query.New()
	t.Cleanup(c.Close)
	return queries.NewSet(c, services.NewSet(api))
}

func list(items ...map[string]any) map[string]any {
	return map[string]any{"count": len(items), "results": items}
}

func TestCollectorDashboardPicksNextPendingSchedule(t *testing.T) {
	_, api := newUpstream(t, map[string]reply{
		"GET " + portalBase + "/dashboard/": {body: map[string]any{
			"collector": map[string]any{"full_name": "Jean Bosco", "status": "active"},
			"summary":   map[string]any{"today_schedules": 3, "pending_pickups": 2, "completed_today": 1, "assigned_routes": 4},
			"today_schedules": []map[string]any{
				{"id": "s1", "route_name": "Remera", "status": "completed"},
				{"id": "s2", "route_name": "Kimihurura", "status": "scheduled", "scheduled_time_start": "08:00:00", "scheduled_time_end": "12:00:00"},
				{"id": "s3", "route_name": "Gikondo", "status": "scheduled"},
			},
		}},
	})
	p := NewCollectorPages(newSet(t, api).CollectorPortal, navigation.NewMapView(nil, navigation.LatLng{}), navigation.GeoJSONRenderer{})

	page := p.Dashboard(context.Background())
	require.Equal(t, StatusReady, page.Status)
	v := page.Data
	assert.Equal(t, "Jean Bosco", v.CollectorName)
	require.Len(t, v.Stats, 4)
	assert.Equal(t, "2", v.Stats[1].Value)

	require.NotNil(t, v.Next)
	assert.Equal(t, "s2", v.Next.ID)
	assert.Equal(t, "08:00 - 12:00", v.Next.TimeWindow)
	assert.True(t, v.Next.CanStart)
	require.Len(t, v.Today, 2)
	assert.Equal(t, "s1", v.Today[0].ID)
	assert.Equal(t, "s3", v.Today[1].ID)
	assert.Nil(t, v.TodayEmpty)
}

func TestCollectorSchedulesSearchAndEmptyState(t *testing.T) {
	_, api := newUpstream(t, map[string]reply{
		"GET " + portalBase + "/schedules/": {body: list(
			map[string]any{"id": "s1", "route_name": "Remera Loop", "service_area_name": "Gasabo", "status": "scheduled"},
			map[string]any{"id": "s2", "route_name": "Nyamirambo", "service_area_name": "Nyarugenge", "status": "missed"},
		)},
	})
	p := NewCollectorPages(newSet(t, api).CollectorPortal, navigation.NewMapView(nil, navigation.LatLng{}), navigation.GeoJSONRenderer{})

	page := p.Schedules(context.Background(), ScheduleFilter{Date: "bogus", Search: "GASABO"})
	require.Equal(t, StatusReady, page.Status)
	require.Len(t, page.Data.Schedules, 1)
	assert.Equal(t, "s1", page.Data.Schedules[0].ID)
	assert.True(t, page.Data.DateOptions[0].Active, "unknown date filter falls back to today")

	page = p.Schedules(context.Background(), ScheduleFilter{Date: "past", Search: "kicukiro"})
	require.Equal(t, StatusEmpty, page.Status)
	assert.Equal(t, "No past schedules found", page.Empty.Description)
	assert.Equal(t, http.StatusOK, page.HTTPStatus())
}

func TestCollectorRoutesTodayIndicatorAndMap(t *testing.T) {
	u, api := newUpstream(t, map[string]reply{
		"GET " + portalBase + "/routes/": {body: list(
			map[string]any{"id": routeA, "name": "Remera", "code": "R-1", "latitude": -1.95, "longitude": 30.1, "estimated_distance_km": 4.2},
			map[string]any{"id": routeB, "name": "Gikondo", "code": "R-2",
				"path_geojson": map[string]any{"type": "LineString", "coordinates": [][]float64{{30.05, -1.97}, {30.06, -1.98}}}},
		)},
		"GET " + portalBase + "/schedules/": {body: list(
			map[string]any{"id": scheduleA, "route_id": routeB, "status": "in_progress"},
		)},
	})
	view := navigation.NewMapView(nil, navigation.LatLng{Lat: -1.29, Lng: 36.82})
	t.Cleanup(view.Close)
	p := NewCollectorPages(newSet(t, api).CollectorPortal, view, navigation.GeoJSONRenderer{})

	page := p.Routes(context.Background(), "")
	require.Equal(t, StatusReady, page.Status)
	cards := page.Data.Routes
	require.Len(t, cards, 2)
	assert.True(t, cards[0].Selected)
	assert.Equal(t, "4.2 km", cards[0].Distance)
	assert.Nil(t, cards[0].Today)
	require.NotNil(t, cards[1].Today)
	assert.Equal(t, "Active", cards[1].Today.Label)
	assert.Equal(t, scheduleA, cards[1].TodayScheduleID)

	m := page.Data.Map
	assert.Equal(t, navigation.SelectionOnly, m.View.Phase)
	assert.Equal(t, navigation.LatLng{Lat: -1.95, Lng: 30.1}, m.View.Center)
	assert.Equal(t, navigation.MsgTapLocate, m.View.Message)
	require.IsType(t, &navigation.FeatureCollection{}, m.Layer)

	page = p.Routes(context.Background(), routeB)
	require.Equal(t, StatusReady, page.Status)
	assert.Equal(t, routeB, page.Data.Map.View.SelectedID)
	assert.Equal(t, navigation.LatLng{Lat: -1.97, Lng: 30.05}, page.Data.Map.View.Center)
	assert.Equal(t, 1, u.count("GET "+portalBase+"/routes/"), "second load is served from cache")

	page = p.Routes(context.Background(), "missing")
	require.Equal(t, StatusError, page.Status)
	assert.Equal(t, http.StatusNotFound, page.HTTPStatus())
}

func TestCollectorRoutesEmpty(t *testing.T) {
	_, api := newUpstream(t, map[string]reply{
		"GET " + portalBase + "/routes/":    {body: list()},
		"GET " + portalBase + "/schedules/": {body: list()},
	})
	view := navigation.NewMapView(nil, navigation.LatLng{Lat: -1.29, Lng: 36.82})
	t.Cleanup(view.Close)
	p := NewCollectorPages(newSet(t, api).CollectorPortal, view, navigation.GeoJSONRenderer{})

	page := p.Routes(context.Background(), "")
	require.Equal(t, StatusEmpty, page.Status)
	assert.Equal(t, "No routes assigned yet", page.Empty.Title)
	assert.Equal(t, navigation.MsgNoRoutes, page.Data.Map.View.Message)
	assert.Equal(t, navigation.LatLng{Lat: -1.29, Lng: 36.82}, page.Data.Map.View.Center)
}

func TestFailedPagesCarryUpstreamStatus(t *testing.T) {
	_, api := newUpstream(t, map[string]reply{
		"GET " + portalBase + "/profile/": {status: http.StatusForbidden, body: map[string]string{"detail": "Collector profile required."}},
	})
	p := NewCollectorPages(newSet(t, api).CollectorPortal, navigation.NewMapView(nil, navigation.LatLng{}), navigation.GeoJSONRenderer{})

	page := p.Profile(context.Background())
	require.Equal(t, StatusError, page.Status)
	assert.Equal(t, "Failed to load profile", page.Error.Message)
	assert.Equal(t, "Collector profile required.", page.Error.Detail)
	assert.Equal(t, "/api/v1/collector/profile", page.Error.Retry)
	assert.Equal(t, http.StatusForbidden, page.HTTPStatus())

	detail := p.ScheduleDetail(context.Background(), "not-a-uuid")
	assert.Equal(t, http.StatusNotFound, detail.HTTPStatus())
}

func TestUnreachableUpstreamIsBadGateway(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	api := apiclient.New(srv.URL, time.Second, nil)
	p := NewCustomerPages(newSet(t, api).CustomerPortal)

	page := p.Dashboard(context.Background())
	require.Equal(t, StatusError, page.Status)
	assert.Equal(t, http.StatusBadGateway, page.HTTPStatus())
}

func TestCompleteScheduleValidatesBeforeCalling(t *testing.T) {
	u, api := newUpstream(t, map[string]reply{
		"POST " + portalBase + "/schedules/" + scheduleA + "/complete/": {body: map[string]any{"message": "Schedule completed successfully", "id": scheduleA, "status": "completed"}},
	})
	p := NewCollectorPages(newSet(t, api).CollectorPortal, navigation.NewMapView(nil, navigation.LatLng{}), navigation.GeoJSONRenderer{})

	_, err := p.CompleteSchedule(context.Background(), scheduleA, forms.CompleteDraft{CustomersCollected: -1})
	var verr *forms.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "customers_collected")
	assert.Equal(t, 0, u.count("POST "+portalBase+"/schedules/"+scheduleA+"/complete/"))

	res, err := p.CompleteSchedule(context.Background(), scheduleA, forms.CompleteDraft{CustomersCollected: 10, CustomersMissed: 2})
	require.NoError(t, err)
	assert.Equal(t, "Schedule completed successfully", res.Message)
	assert.EqualValues(t, 10, u.body("POST " + portalBase + "/schedules/" + scheduleA + "/complete/")["customers_collected"])
}

func TestActionErrorWrapsUpstreamFailure(t *testing.T) {
	_, api := newUpstream(t, map[string]reply{
		"POST " + portalBase + "/schedules/" + scheduleA + "/start/": {status: http.StatusBadRequest, body: map[string]string{"error": "Schedule already started"}},
	})
	p := NewCollectorPages(newSet(t, api).CollectorPortal, navigation.NewMapView(nil, navigation.LatLng{}), navigation.GeoJSONRenderer{})

	_, err := p.StartSchedule(context.Background(), scheduleA)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrActionFailed))
	var aerr *ActionError
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, "Failed to start schedule", aerr.Message)
	assert.Equal(t, http.StatusBadRequest, aerr.Status())
}

func TestCustomerTopUp(t *testing.T) {
	u, api := newUpstream(t, map[string]reply{
		"POST /portal/top-up/": {body: map[string]any{"message": "Top-up request received", "collections": 8, "payment_method": "momo", "status": "pending"}},
	})
	p := NewCustomerPages(newSet(t, api).CustomerPortal)

	page := p.TopUp()
	require.Len(t, page.Data.Packages, 4)
	assert.Equal(t, "RWF 3,500", page.Data.Packages[1].PriceText)
	assert.Equal(t, "Save RWF 500", page.Data.Packages[1].SavingsText)
	assert.Empty(t, page.Data.Packages[0].SavingsText)

	_, err := p.SubmitTopUp(context.Background(), forms.TopUpDraft{PaymentMethod: "momo"})
	assert.ErrorIs(t, err, forms.ErrNoPackage)
	assert.Equal(t, 0, u.count("POST /portal/top-up/"))

	res, err := p.SubmitTopUp(context.Background(), forms.TopUpDraft{PackageID: "package-8", PaymentMethod: "momo"})
	require.NoError(t, err)
	assert.Equal(t, "Top-up request received", res.Message)
	body := u.body("POST /portal/top-up/")
	assert.EqualValues(t, 8, body["collections"])
	assert.Equal(t, "momo", body["payment_method"])
}

func TestCustomerProfileToleratesPaymentMethodFailure(t *testing.T) {
	_, api := newUpstream(t, map[string]reply{
		"GET /portal/profile/":         {body: map[string]any{"id": "c1", "full_name": "Aline Uwase", "phone": "+250788000111", "status": "active"}},
		"GET /portal/payment-methods/": {status: http.StatusInternalServerError, body: map[string]string{"detail": "boom"}},
	})
	p := NewCustomerPages(newSet(t, api).CustomerPortal)

	page := p.Profile(context.Background())
	require.Equal(t, StatusReady, page.Status)
	assert.Equal(t, "+250788000111", page.Data.Draft.Phone)
	assert.Equal(t, "Rwanda", page.Data.Draft.BillingAddress.Country)
	require.NotNil(t, page.Data.MethodsEmpty)
	assert.Equal(t, "No payment methods on file", page.Data.MethodsEmpty.Title)
}

func TestCustomerSchedulesTodayEmpty(t *testing.T) {
	_, api := newUpstream(t, map[string]reply{
		"GET /portal/schedules/": {body: list()},
	})
	p := NewCustomerPages(newSet(t, api).CustomerPortal)

	page := p.Schedules(context.Background(), "today", "")
	require.Equal(t, StatusEmpty, page.Status)
	assert.Equal(t, "No collections scheduled for today.", page.Empty.Description)
}

func TestStaffSchedulesTabsAndSearch(t *testing.T) {
	_, api := newUpstream(t, map[string]reply{
		"GET /operations/schedules/": {body: list(
			map[string]any{"id": scheduleA, "route_name": "Remera", "collector_name": "Eric", "status": "completed"},
			map[string]any{"id": scheduleB, "route_name": "Gikondo", "collector_name": "Aline", "service_area_name": "Kicukiro", "status": "scheduled"},
		)},
		"GET /operations/schedules/today/": {body: []map[string]any{
			{"id": scheduleB, "route_name": "Gikondo", "collector_name": "Aline", "service_area_name": "Kicukiro", "status": "scheduled"},
		}},
		"GET /operations/schedules/upcoming/": {body: []map[string]any{}},
		"GET /operations/schedules/overdue/":  {status: http.StatusInternalServerError, body: map[string]string{"detail": "boom"}},
	})
	o := NewOperations(newSet(t, api))

	page := o.Schedules(context.Background(), StaffScheduleFilter{})
	require.Equal(t, StatusReady, page.Status)
	assert.Equal(t, "Today (1)", page.Data.Tabs[0].Label)
	assert.Equal(t, "Overdue (0)", page.Data.Tabs[2].Label)
	assert.Equal(t, "1", page.Data.Stats[3].Value)

	page = o.Schedules(context.Background(), StaffScheduleFilter{Tab: "all", Search: "eric"})
	require.Len(t, page.Data.Schedules, 1)
	assert.Equal(t, scheduleA, page.Data.Schedules[0].ID)
	assert.Equal(t, "Eric", page.Data.Schedules[0].CollectorName)

	page = o.Schedules(context.Background(), StaffScheduleFilter{Tab: "overdue"})
	require.Equal(t, StatusEmpty, page.Status)
	assert.Equal(t, "Great! No overdue schedules.", page.Empty.Description)
}

func TestScheduleFormAppliesRouteDefaults(t *testing.T) {
	collector := "9e7d5c3b-1a2f-4e6d-8c0b-2a4f6e8d0c12"
	_, api := newUpstream(t, map[string]reply{
		"GET /operations/routes/": {body: list(
			map[string]any{"id": routeA, "code": "R-1", "name": "Remera"},
		)},
		"GET /operations/routes/" + routeA + "/": {body: map[string]any{
			"id": routeA, "default_collector": collector,
			"collection_time_start": "06:00:00", "collection_time_end": "10:30:00",
		}},
		"GET /operations/collectors/available/": {body: []map[string]any{
			{"id": collector, "first_name": "Eric", "last_name": "Mugisha"},
		}},
	})
	o := NewOperations(newSet(t, api))

	page := o.ScheduleForm(context.Background(), routeA, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC))
	require.Equal(t, StatusReady, page.Status)
	d := page.Data.Draft
	assert.Equal(t, routeA, d.Route)
	assert.Equal(t, collector, d.Collector)
	assert.Equal(t, "06:00", d.ScheduledTimeStart)
	assert.Equal(t, "10:30", d.ScheduledTimeEnd)
	assert.Equal(t, "2026-03-02", d.ScheduledDate)
	require.Len(t, page.Data.Routes, 1)
	assert.True(t, page.Data.Routes[0].Active)
	require.Len(t, page.Data.Collectors, 1)
	assert.Equal(t, "Eric Mugisha", page.Data.Collectors[0].Label)
}

func TestCreateScheduleRejectsInvalidDraft(t *testing.T) {
	u, api := newUpstream(t, nil)
	o := NewOperations(newSet(t, api))

	_, err := o.CreateSchedule(context.Background(), forms.ScheduleDraft{})
	var verr *forms.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"Route is required"}, verr.Fields["route"])
	assert.Empty(t, u.calls)
}

func TestSetCollectorStatusRejectsUnknownStatus(t *testing.T) {
	_, api := newUpstream(t, nil)
	o := NewOperations(newSet(t, api))

	_, err := o.SetCollectorStatus(context.Background(), routeA, "retired")
	var verr *forms.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "status")
}

func TestMatches(t *testing.T) {
	assert.True(t, matches("", "anything"))
	assert.True(t, matches("  rem ", "Remera"))
	assert.False(t, matches("kim", "Remera", ""))
}

func TestServiceAreasStatsAreOptional(t *testing.T) {
	_, api := newUpstream(t, map[string]reply{
		"GET /operations/service-areas/": {body: list(
			map[string]any{"id": routeA, "code": "KG", "name": "Kacyiru", "district": "Gasabo", "province": "Kigali", "status": "active"},
		)},
	})
	o := NewOperations(newSet(t, api))

	page := o.ServiceAreas(context.Background(), models.ServiceAreaQueryParams{})
	require.Equal(t, StatusReady, page.Status)
	assert.Empty(t, page.Data.Stats)
	require.Len(t, page.Data.Areas, 1)
	assert.Equal(t, "Gasabo, Kigali", page.Data.Areas[0].Location)
	assert.Equal(t, components.VariantSuccess, page.Data.Areas[0].Status.Variant)
}

func TestRetryLinksKeepActiveFilters(t *testing.T) {
	_, api := newUpstream(t, map[string]reply{
		"GET " + portalBase + "/schedules/": {status: http.StatusInternalServerError, body: map[string]string{"detail": "boom"}},
		"GET /portal/invoices/":             {status: http.StatusInternalServerError, body: map[string]string{"detail": "boom"}},
		"GET /operations/service-areas/":    {status: http.StatusInternalServerError, body: map[string]string{"detail": "boom"}},
	})
	set := newSet(t, api)

	collector := NewCollectorPages(set.CollectorPortal, navigation.NewMapView(nil, navigation.LatLng{}), navigation.GeoJSONRenderer{})
	page := collector.Schedules(context.Background(), ScheduleFilter{Date: "week", Status: "missed", Search: "remera & co"})
	require.Equal(t, StatusError, page.Status)
	assert.Equal(t, "/api/v1/collector/schedules?date=week&search=remera+%26+co&status=missed", page.Error.Retry)

	invoices := NewCustomerPages(set.CustomerPortal).Invoices(context.Background(), "overdue")
	require.Equal(t, StatusError, invoices.Status)
	assert.Equal(t, "/api/v1/portal/invoices?status=overdue", invoices.Error.Retry)

	ops := NewOperations(set)
	areas := ops.ServiceAreas(context.Background(), models.ServiceAreaQueryParams{Status: "active", Search: "kigali"})
	require.Equal(t, StatusError, areas.Status)
	assert.Equal(t, "/api/v1/operations/service-areas?search=kigali&status=active", areas.Error.Retry)

	unfiltered := ops.ServiceAreas(context.Background(), models.ServiceAreaQueryParams{})
	assert.Equal(t, "/api/v1/operations/service-areas", unfiltered.Error.Retry)
}

func TestCustomerDetailPinsNotesAndToleratesMethodFailure(t *testing.T) {
	const customer = "3e2d1c0b-9a8f-4e7d-8c6b-5a4f3e2d1c01"
	_, api := newUpstream(t, map[string]reply{
		"GET /customers/" + customer + "/": {body: map[string]any{
			"id": customer, "first_name": "Grace", "last_name": "Iradukunda", "status": "suspended",
			"payment_terms": "net_30", "credit_limit": "50000.00", "tags": []string{"vip"},
		}},
		"GET /customers/" + customer + "/notes/": {body: []map[string]any{
			{"id": "n1", "note": "old", "created_at": "2026-01-01T08:00:00Z"},
			{"id": "n2", "note": "newer", "created_at": "2026-02-01T08:00:00Z"},
			{"id": "n3", "note": "gate code", "is_pinned": true, "created_at": "2025-12-01T08:00:00Z"},
		}},
		"GET /customers/" + customer + "/payment_methods/": {status: http.StatusInternalServerError, body: map[string]string{"detail": "boom"}},
	})
	o := NewOperations(newSet(t, api))

	page := o.Customer(context.Background(), customer)
	require.Equal(t, StatusReady, page.Status)
	ids := mapSlice(page.Data.Notes, func(n models.CustomerNote) string { return n.ID })
	assert.Equal(t, []string{"n3", "n2", "n1"}, ids)
	assert.Empty(t, page.Data.PaymentMethods)
	assert.Equal(t, "vip", page.Data.Draft.Tags)
	assert.Equal(t, components.VariantWarning, page.Data.Status.Variant)
}

func TestCustomersListAndStatusActions(t *testing.T) {
	const customer = "3e2d1c0b-9a8f-4e7d-8c6b-5a4f3e2d1c01"
	up, api := newUpstream(t, map[string]reply{
		"GET /customers/": {body: list(
			map[string]any{"id": customer, "full_name": "Grace Iradukunda", "payment_terms": "net_30", "credit_limit": "50000.00", "status": "active"},
		)},
		"GET /customers/stats/": {body: map[string]any{"total_customers": 1, "active_customers": 1, "total_credit_limit": "50000.00"}},
		"POST /customers/" + customer + "/suspend/": {body: map[string]any{
			"message": "Customer suspended", "data": map[string]any{"id": customer, "status": "suspended"},
		}},
	})
	o := NewOperations(newSet(t, api))
	ctx := context.Background()

	page := o.Customers(ctx, models.CustomerQueryParams{})
	require.Equal(t, StatusReady, page.Status)
	require.Len(t, page.Data.Customers, 1)
	assert.Equal(t, "Net 30", page.Data.Customers[0].PaymentTerms)
	assert.Equal(t, "RWF 50,000", page.Data.Customers[0].CreditLimit)
	require.Len(t, page.Data.Stats, 4)
	assert.Equal(t, 1, up.count("GET /customers/"))

	res, err := o.SetCustomerStatus(ctx, customer, "suspended")
	require.NoError(t, err)
	assert.Equal(t, "Customer suspended", res.Message)
	assert.Equal(t, models.CustomerSuspended, res.Data.Status)

	// The suspension invalidated the list and the stats, so both are refetched in the background.
	assert.Eventually(t, func() bool {
		return up.count("GET /customers/") == 2 && up.count("GET /customers/stats/") == 2
	}, 2*time.Second, 10*time.Millisecond)

	_, err = o.SetCustomerStatus(ctx, customer, "archived")
	var verr *forms.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "status")
}

func TestAddCustomerNoteRejectsBlankNote(t *testing.T) {
	up, api := newUpstream(t, nil)
	o := NewOperations(newSet(t, api))

	_, err := o.AddCustomerNote(context.Background(), routeA, forms.NoteDraft{Note: "   "})
	var verr *forms.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"Note is required"}, verr.Fields["note"])
	assert.Zero(t, up.count("POST /customer-notes/"))
}
