package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"wastepoint/internal/apiclient"
	"wastepoint/internal/auth"
	"wastepoint/internal/models"
	"wastepoint/internal/navigation"
	"wastepoint/internal/pages"
	"wastepoint/internal/queries"
	"wastepoint/internal/query"
	"wastepoint/internal/services"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrClosed          = errors.New("session manager closed")
)

type Option func(*Manager)

func WithLogger(l *zap.Logger) Option {
	return func(m *Manager) { m.logr = l }
}

// WithRenderer sets how collector map views are drawn.
func WithRenderer(r navigation.MapRenderer) Option {
	return func(m *Manager) { m.renderer = r }
}

// WithFallbackCenter sets the map center used when no route has coordinates.
func WithFallbackCenter(p navigation.LatLng) Option {
	return func(m *Manager) { m.fallback = p }
}

// WithIdleTimeout drops sessions unused for d. Zero keeps them until their token expires.
func WithIdleTimeout(d time.Duration) Option {
	return func(m *Manager) { m.idle = d }
}

func withClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// Manager maps user ids to live sessions.
type Manager struct {
	tokens   *auth.TokenReader
	svcs     *services.Set
	lookup   navigation.RouteLookup
	renderer navigation.MapRenderer
	fallback navigation.LatLng
	idle     time.Duration
	logr     *zap.Logger
	now      func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
	closed   bool
	flights  singleflight.Group
}

func NewManager(tokens *auth.TokenReader, svcs *services.Set, lookup navigation.RouteLookup, opts ...Option) *Manager {
	m := &Manager{
		tokens:   tokens,
		svcs:     svcs,
		lookup:   lookup,
		renderer: navigation.GeoJSONRenderer{Zoom: 13, RecenterZoom: 15},
		idle:     2 * time.Hour,
		logr:     zap.NewNop(),
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Resolve returns the session for token, creating it on first use. Tokens are
// trusted by signature when a key is configured; otherwise every new token is
// confirmed against the upstream before it may reuse a session.
func (m *Manager) Resolve(ctx context.Context, token string) (*Session, error) {
	claims, err := m.tokens.Read(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}
	hash := auth.HashToken(token)
	now := m.now()

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil, ErrClosed
	}
	s := m.sessions[claims.UserID]
	m.mu.Unlock()

	if s != nil && !s.stale(now, m.idle) && (m.tokens.Verifies() || s.hasToken(hash)) {
		s.touch(token, hash, claims.ExpiresAt, now)
		return s, nil
	}

	v, err, _ := m.flights.Do(claims.UserID+":"+hash, func() (any, error) {
		return m.establish(ctx, claims, token, hash)
	})
	if err != nil {
		return nil, err
	}
	return v.(*Session), nil
}

func (m *Manager) establish(ctx context.Context, claims *auth.Claims, token, hash string) (*Session, error) {
	role := claims.Role
	if role == "" || !m.tokens.Verifies() {
		user, err := m.svcs.Users.Me(apiclient.WithToken(ctx, token))
		if err != nil {
			if apiclient.IsUnauthorized(err) {
				return nil, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
			}
			return nil, fmt.Errorf("fetch current user: %w", err)
		}
		if user.ID != "" && user.ID != claims.UserID {
			return nil, fmt.Errorf("%w: token subject does not match account", ErrUnauthenticated)
		}
		role = user.RoleName()
	}

	now := m.now()
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil, ErrClosed
	}

	if s := m.sessions[claims.UserID]; s != nil {
		if !s.stale(now, m.idle) && s.Role == role {
			s.touch(token, hash, claims.ExpiresAt, now)
			return s, nil
		}
		delete(m.sessions, claims.UserID)
		go s.close()
	}

	s := m.build(claims.UserID, role)
	s.touch(token, hash, claims.ExpiresAt, now)
	m.sessions[claims.UserID] = s
	m.logr.Info("session started",
		zap.String("session_id", s.ID),
		zap.String("user_id", s.UserID),
		zap.String("role", role))
	return s, nil
}

func (m *Manager) build(userID, role string) *Session {
	s := &Session{ID: uuid.NewString(), UserID: userID, Role: role}
	logr := m.logr.With(zap.String("session_id", s.ID))

	s.Cache = query.New(
		query.WithLogger(logr.Named("query")),
		query.WithBaseContext(func() context.Context {
			return s.Context(context.Background())
		}),
	)
	s.Queries = queries.NewSet(s.Cache, m.svcs)
	s.Map = navigation.NewMapView(m.lookup, m.fallback,
		navigation.WithViewLogger(logr.Named("map")),
		navigation.WithLocationSink(func(ctx context.Context, p navigation.LatLng) error {
			_, err := s.Queries.CollectorPortal.UpdateLocation.MutateAsync(s.Context(ctx), models.Location{
				Latitude:  p.Lat,
				Longitude: p.Lng,
			})
			return err
		}),
	)
	s.Collector = pages.NewCollectorPages(s.Queries.CollectorPortal, s.Map, m.renderer)
	s.Customer = pages.NewCustomerPages(s.Queries.CustomerPortal)
	s.Operations = pages.NewOperations(s.Queries)
	return s
}

// Logout tears down the user's session. It reports whether one existed.
func (m *Manager) Logout(userID string) bool {
	m.mu.Lock()
	s, ok := m.sessions[userID]
	delete(m.sessions, userID)
	m.mu.Unlock()
	if ok {
		s.close()
		m.logr.Info("session ended", zap.String("session_id", s.ID), zap.String("user_id", userID))
	}
	return ok
}

// Sweep closes sessions whose token expired or that sat idle too long.
func (m *Manager) Sweep() int {
	now := m.now()
	var expired []*Session

	m.mu.Lock()
	for id, s := range m.sessions {
		if s.stale(now, m.idle) {
			expired = append(expired, s)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, s := range expired {
		s.close()
	}
	if len(expired) > 0 {
		m.logr.Info("expired sessions swept", zap.Int("count", len(expired)))
	}
	return len(expired)
}

// Run sweeps every interval until ctx is done.
func (m *Manager) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Sweep()
		}
	}
}

func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Close ends every session and rejects further resolves.
func (m *Manager) Close() {
	m.mu.Lock()
	m.closed = true
	all := m.sessions
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()

	for _, s := range all {
		s.close()
	}
}
