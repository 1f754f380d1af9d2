package navigation

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOSRMLookupParsesRoute(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, "/route/v1/driving/30.060000,-1.950000;30.100000,-1.940000", r.URL.Path)
		assert.Equal(t, "full", r.URL.Query().Get("overview"))
		assert.Equal(t, "geojson", r.URL.Query().Get("geometries"))
		assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte(`{"code":"Ok","routes":[{"distance":4210.5,"duration":612,
			"geometry":{"type":"LineString","coordinates":[[30.06,-1.95],[30.1,-1.94]]}}]}`))
	}))
	defer srv.Close()

	l := &OSRMLookup{BaseURL: srv.URL, UserAgent: "test-agent"}
	from := LatLng{Lat: -1.95, Lng: 30.06}
	to := LatLng{Lat: -1.94, Lng: 30.1}

	res, err := l.Lookup(context.Background(), from, to)
	require.NoError(t, err)
	assert.Equal(t, 4210.5, res.DistanceMeters)
	assert.Equal(t, float64(612), res.DurationSeconds)
	assert.Equal(t, []LatLng{from, to}, res.Path)

	_, err = l.Lookup(context.Background(), from, to)
	require.NoError(t, err)
	assert.Equal(t, int32(1), hits.Load(), "identical lookups are memoised")
}

func TestOSRMLookupFailures(t *testing.T) {
	cases := map[string]struct {
		status int
		body   string
	}{
		"no route code": {http.StatusBadRequest, `{"code":"NoRoute","message":"Impossible route between points"}`},
		"ok but empty":  {http.StatusOK, `{"code":"Ok","routes":[]}`},
		"not json":      {http.StatusBadGateway, `<html>bad gateway</html>`},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			l := &OSRMLookup{BaseURL: srv.URL}
			_, err := l.Lookup(context.Background(), LatLng{}, LatLng{Lat: 1, Lng: 1})
			assert.ErrorIs(t, err, ErrNoRoute)
		})
	}
}

func TestOSRMLookupTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	l := &OSRMLookup{BaseURL: url, Client: &http.Client{Timeout: time.Second}}
	_, err := l.Lookup(context.Background(), LatLng{}, LatLng{Lat: 1, Lng: 1})
	assert.ErrorIs(t, err, ErrNoRoute)
}

func TestOSRMLookupSpacesRequests(t *testing.T) {
	var stamps []time.Time
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		stamps = append(stamps, time.Now())
		_, _ = w.Write([]byte(`{"code":"Ok","routes":[{"distance":1,"duration":1,"geometry":null}]}`))
	}))
	defer srv.Close()

	l := &OSRMLookup{BaseURL: srv.URL, MinInterval: 50 * time.Millisecond}
	_, err := l.Lookup(context.Background(), LatLng{}, LatLng{Lat: 1})
	require.NoError(t, err)
	_, err = l.Lookup(context.Background(), LatLng{}, LatLng{Lat: 2})
	require.NoError(t, err)

	require.Len(t, stamps, 2)
	assert.GreaterOrEqual(t, stamps[1].Sub(stamps[0]), 40*time.Millisecond)
}

func TestOSRMLookupMemoIsBounded(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(`{"code":"Ok","routes":[{"distance":1,"duration":1,"geometry":null}]}`))
	}))
	defer srv.Close()

	l := &OSRMLookup{BaseURL: srv.URL, CacheSize: 2}
	to := LatLng{Lat: -1.95, Lng: 30.1}
	for i := 0; i < 5; i++ {
		_, err := l.Lookup(context.Background(), LatLng{Lat: float64(i)}, to)
		require.NoError(t, err)
	}
	assert.Equal(t, 2, l.Cached())

	// the oldest fix was evicted, the newest is still served from memory
	_, err := l.Lookup(context.Background(), LatLng{Lat: 4}, to)
	require.NoError(t, err)
	assert.Equal(t, int32(5), hits.Load())
	_, err = l.Lookup(context.Background(), LatLng{Lat: 0}, to)
	require.NoError(t, err)
	assert.Equal(t, int32(6), hits.Load())
}

func TestOSRMLookupConcurrentFirstUse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "wastepoint-portal", r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte(`{"code":"Ok","routes":[{"distance":1,"duration":1,"geometry":null}]}`))
	}))
	defer srv.Close()

	l := &OSRMLookup{BaseURL: srv.URL}
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := l.Lookup(context.Background(), LatLng{Lat: float64(i)}, LatLng{Lng: 1})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 8, l.Cached())
	assert.Empty(t, l.UserAgent)
}
