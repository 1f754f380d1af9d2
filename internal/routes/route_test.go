package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"wastepoint/internal/apiclient"
	"wastepoint/internal/auth"
	"wastepoint/internal/config"
	"wastepoint/internal/logger"
	"wastepoint/internal/navigation"
	"wastepoint/internal/services"
	"wastepoint/internal/session"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	routeID    = "0d8a2c4e-1f3b-4a6c-8e9d-7b5a3c1e2f40"
	scheduleID = "5b0f5c1e-6a51-4c57-9d2e-3d7f5a2f0c11"
	portalBase = "/operations/collector-portal"
)

// fakeAPI plays the upstream: /auth/users/me/ answers with the role named in
// the token's jti, the rest comes from canned replies.
type fakeAPI struct {
	mu      sync.Mutex
	replies map[string]any
	status  map[string]int
	calls   map[string]int
	bodies  map[string]map[string]any
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	key := r.Method + " " + r.URL.Path
	var body map[string]any
	_ = json.NewDecoder(r.Body).Decode(&body)

	f.mu.Lock()
	f.calls[key]++
	f.bodies[key] = body
	reply, ok := f.replies[key]
	status := f.status[key]
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if r.URL.Path == "/auth/users/me/" {
		claims := jwt.MapClaims{}
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"id": claims["user_id"], "role": claims["jti"]})
		return
	}
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"detail": "Not found."})
		return
	}
	if status != 0 {
		w.WriteHeader(status)
	}
	_ = json.NewEncoder(w).Encode(reply)
}

func (f *fakeAPI) count(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[key]
}

func (f *fakeAPI) body(key string) map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.bodies[key]
}

type straightLine struct{}

func (straightLine) Lookup(_ context.Context, from, to navigation.LatLng) (*navigation.NavigationRoute, error) {
	return &navigation.NavigationRoute{DistanceMeters: 1200, DurationSeconds: 300, Path: []navigation.LatLng{from, to}}, nil
}

type harness struct {
	api      *fakeAPI
	sessions *session.Manager
	handler  http.Handler
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	f := &fakeAPI{
		replies: map[string]any{
			"GET " + portalBase + "/dashboard/": map[string]any{
				"collector": map[string]any{"full_name": "Jean Bosco", "status": "active"},
				"summary":   map[string]any{"today_schedules": 1},
				"today_schedules": []map[string]any{
					{"id": scheduleID, "route_name": "Remera", "status": "scheduled"},
				},
			},
			"GET " + portalBase + "/routes/": map[string]any{"count": 1, "results": []map[string]any{
				{"id": routeID, "name": "Remera", "code": "R-1", "latitude": -1.95, "longitude": 30.1},
			}},
			"GET " + portalBase + "/schedules/":                           map[string]any{"count": 0, "results": []any{}},
			"POST " + portalBase + "/location/":                           map[string]any{"message": "Location updated"},
			"POST " + portalBase + "/schedules/" + scheduleID + "/start/": map[string]any{"error": "Schedule already started"},
		},
		status: map[string]int{
			"POST " + portalBase + "/schedules/" + scheduleID + "/start/": http.StatusBadRequest,
		},
		calls:  map[string]int{},
		bodies: map[string]map[string]any{},
	}
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)

	reader, err := auth.NewTokenReader("")
	require.NoError(t, err)
	sessions := session.NewManager(reader, services.NewSet(apiclient.New(srv.URL, 2*time.Second, nil)), straightLine{})
	t.Cleanup(sessions.Close)

	cfg := &config.Config{AllowedOrigins: []string{"http://localhost:3000"}}
	return &harness{api: f, sessions: sessions, handler: NewRouter(cfg, logger.Nop(), sessions)}
}

func bearer(t *testing.T, userID, role string) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"jti":     role,
		"exp":     time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)
	return "Bearer " + s
}

func (h *harness) do(t *testing.T, method, path, auth string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	rec := httptest.NewRecorder()
	h.handler.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestHealthz(t *testing.T) {
	h := newHarness(t)
	rec := h.do(t, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestPortalsRequireSessionAndRole(t *testing.T) {
	h := newHarness(t)

	rec := h.do(t, http.MethodGet, "/api/v1/collector/dashboard", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = h.do(t, http.MethodGet, "/api/v1/collector/dashboard", bearer(t, "cust-1", "customer"), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = h.do(t, http.MethodGet, "/api/v1/operations/schedules", bearer(t, "col-1", "collector"), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = h.do(t, http.MethodGet, "/api/v1/collector/dashboard", bearer(t, "col-1", "collector"), nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	page := decode(t, rec)
	assert.Equal(t, "ready", page["status"])
	assert.Equal(t, "Jean Bosco", page["data"].(map[string]any)["collector_name"])
}

func TestSessionCurrentAndLogout(t *testing.T) {
	h := newHarness(t)
	auth := bearer(t, "staff-1", "finance_manager")

	rec := h.do(t, http.MethodGet, "/api/v1/session/", auth, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode(t, rec)
	assert.Equal(t, "finance_manager", got["role"])
	assert.Equal(t, "/operations", got["portal"])
	assert.Equal(t, 1, h.sessions.Len())

	rec = h.do(t, http.MethodPost, "/api/v1/session/logout", auth, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, h.sessions.Len())
}

func TestCollectorActionsMapErrors(t *testing.T) {
	h := newHarness(t)
	auth := bearer(t, "col-1", "collector")

	rec := h.do(t, http.MethodPost, "/api/v1/collector/schedules/"+scheduleID+"/complete", auth, "{not json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = h.do(t, http.MethodPost, "/api/v1/collector/schedules/"+scheduleID+"/complete", auth,
		map[string]any{"customers_collected": -3})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, decode(t, rec)["fields"], "customers_collected")
	assert.Zero(t, h.api.count("POST "+portalBase+"/schedules/"+scheduleID+"/complete/"))

	rec = h.do(t, http.MethodPost, "/api/v1/collector/schedules/"+scheduleID+"/start", auth, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	got := decode(t, rec)
	assert.Equal(t, "Failed to start schedule", got["error"])
	assert.Equal(t, "Schedule already started", got["detail"])

	rec = h.do(t, http.MethodGet, "/api/v1/collector/schedules/not-a-uuid", auth, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCollectorMapFlow(t *testing.T) {
	h := newHarness(t)
	auth := bearer(t, "col-1", "collector")

	rec := h.do(t, http.MethodGet, "/api/v1/collector/routes", auth, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = h.do(t, http.MethodPost, "/api/v1/collector/map/select", auth, map[string]string{"route_id": "elsewhere"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = h.do(t, http.MethodPost, "/api/v1/collector/map/location?wait=1", auth, map[string]float64{"lat": -1.94, "lng": 30.06})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	view := decode(t, rec)["view"].(map[string]any)
	assert.Equal(t, routeID, view["selected_id"])
	nav := view["navigation"].(map[string]any)
	assert.Equal(t, "resolved", nav["status"])
	assert.Equal(t, "1.2 km", nav["distance_text"])

	assert.Equal(t, 1, h.api.count("POST "+portalBase+"/location/"))
	assert.EqualValues(t, -1.94, h.api.body("POST " + portalBase + "/location/")["latitude"])

	rec = h.do(t, http.MethodPost, "/api/v1/collector/map/location", auth, map[string]string{"error": "permission denied"})
	require.Equal(t, http.StatusOK, rec.Code)
	view = decode(t, rec)["view"].(map[string]any)
	assert.Equal(t, navigation.MsgLocationFailed, view["message"])
}

func TestTopUpWithoutPackageIsRejected(t *testing.T) {
	h := newHarness(t)
	rec := h.do(t, http.MethodPost, "/api/v1/portal/top-up", bearer(t, "cust-1", "customer"),
		map[string]string{"payment_method": "momo"})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, decode(t, rec)["fields"], "package_id")

	rec = h.do(t, http.MethodGet, "/api/v1/portal/top-up", bearer(t, "cust-1", "customer"), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCustomerDirectoryRoutes(t *testing.T) {
	const customerID = "3e2d1c0b-9a8f-4e7d-8c6b-5a4f3e2d1c01"
	h := newHarness(t)
	h.api.mu.Lock()
	h.api.replies["POST /customers/"+customerID+"/activate/"] = map[string]any{
		"message": "Customer activated", "data": map[string]any{"id": customerID, "status": "active"},
	}
	h.api.mu.Unlock()
	staff := bearer(t, "ops-1", "admin")

	rec := h.do(t, http.MethodGet, "/api/v1/operations/customers", bearer(t, "cust-1", "customer"), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = h.do(t, http.MethodPost, "/api/v1/operations/customers", staff, map[string]string{"first_name": "Grace"})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, decode(t, rec)["fields"], "last_name")
	assert.Zero(t, h.api.count("POST /customers/"))

	rec = h.do(t, http.MethodPost, "/api/v1/operations/customers/"+customerID+"/activate", staff, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Customer activated", decode(t, rec)["message"])
	assert.Equal(t, 1, h.api.count("POST /customers/"+customerID+"/activate/"))
}
