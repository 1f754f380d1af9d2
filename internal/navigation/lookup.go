package navigation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// ErrNoRoute means the routing service could not produce a path.
var ErrNoRoute = errors.New("no route found")

// NavigationRoute is a driving path from the collector to a route.
type NavigationRoute struct {
	DistanceMeters  float64  `json:"distance_meters"`
	DurationSeconds float64  `json:"duration_seconds"`
	Path            []LatLng `json:"path"`
}

// RouteLookup finds a path between two points. Implementations return an error
// wrapping ErrNoRoute when no path is available.
type RouteLookup interface {
	Lookup(ctx context.Context, from, to LatLng) (*NavigationRoute, error)
}

// DefaultRouteCacheSize bounds the lookup memo when OSRMLookup.CacheSize is unset.
const DefaultRouteCacheSize = 512

// OSRMLookup queries an OSRM compatible /route service. Recent identical requests
// are memoised in an LRU of CacheSize entries and calls are spaced by MinInterval,
// as the public demo server asks. Blank fields take defaults on first use; the
// exported fields must not change after that.
type OSRMLookup struct {
	BaseURL     string
	Profile     string
	UserAgent   string
	MinInterval time.Duration
	CacheSize   int
	Client      *http.Client

	once      sync.Once
	client    *http.Client
	endpoint  string
	userAgent string
	memo      *lru.Cache[string, NavigationRoute]

	mu        sync.Mutex
	lastReqAt time.Time
}

type osrmResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Routes  []struct {
		Distance float64         `json:"distance"`
		Duration float64         `json:"duration"`
		Geometry json.RawMessage `json:"geometry"`
	} `json:"routes"`
}

func (o *OSRMLookup) setup() {
	o.client = o.Client
	if o.client == nil {
		o.client = &http.Client{Timeout: 10 * time.Second}
	}
	base := strings.TrimRight(o.BaseURL, "/")
	if base == "" {
		base = "https://router.project-osrm.org"
	}
	profile := o.Profile
	if profile == "" {
		profile = "driving"
	}
	o.endpoint = base + "/route/v1/" + profile + "/"
	o.userAgent = o.UserAgent
	if o.userAgent == "" {
		o.userAgent = "wastepoint-portal"
	}
	size := o.CacheSize
	if size <= 0 {
		size = DefaultRouteCacheSize
	}
	// only a non-positive size is rejected
	o.memo, _ = lru.New[string, NavigationRoute](size)
}

func (o *OSRMLookup) Lookup(ctx context.Context, from, to LatLng) (*NavigationRoute, error) {
	o.once.Do(o.setup)

	// OSRM takes lng,lat pairs.
	coords := fmt.Sprintf("%f,%f;%f,%f", from.Lng, from.Lat, to.Lng, to.Lat)
	if cached, ok := o.memo.Get(coords); ok {
		return &cached, nil
	}

	o.mu.Lock()
	wait := time.Until(o.lastReqAt.Add(o.MinInterval))
	if wait > 0 {
		o.lastReqAt = o.lastReqAt.Add(o.MinInterval)
	} else {
		o.lastReqAt = time.Now()
	}
	o.mu.Unlock()

	if wait > 0 {
		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		o.endpoint+coords+"?overview=full&geometries=geojson", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", o.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoRoute, err)
	}
	defer resp.Body.Close()

	// OSRM reports failures such as NoRoute with a 400 and a JSON body, so decode first.
	var body osrmResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: routing http %s", ErrNoRoute, resp.Status)
	}
	result, err := parseOSRM(body)
	if err != nil {
		return nil, err
	}
	o.memo.Add(coords, *result)
	return result, nil
}

// Cached reports how many lookups are currently memoised.
func (o *OSRMLookup) Cached() int {
	o.once.Do(o.setup)
	return o.memo.Len()
}

func parseOSRM(body osrmResponse) (*NavigationRoute, error) {
	if body.Code != "Ok" {
		if body.Message != "" {
			return nil, fmt.Errorf("%w: %s: %s", ErrNoRoute, body.Code, body.Message)
		}
		return nil, fmt.Errorf("%w: code %q", ErrNoRoute, body.Code)
	}
	if len(body.Routes) == 0 {
		return nil, fmt.Errorf("%w: empty routes", ErrNoRoute)
	}
	first := body.Routes[0]
	return &NavigationRoute{
		DistanceMeters:  first.Distance,
		DurationSeconds: first.Duration,
		Path:            ParsePath(first.Geometry),
	}, nil
}
