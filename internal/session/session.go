// Package session keeps one query cache and map view per signed-in user so that
// repeated page loads share cached upstream data.
package session

import (
	"context"
	"sync"
	"time"

	"wastepoint/internal/apiclient"
	"wastepoint/internal/navigation"
	"wastepoint/internal/pages"
	"wastepoint/internal/queries"
	"wastepoint/internal/query"
)

const (
	RoleAdmin           = "admin"
	RoleFinanceManager  = "finance_manager"
	RoleAccountant      = "accountant"
	RoleCustomerService = "customer_service"
	RoleCollector       = "collector"
	RoleCustomer        = "customer"
)

var staffRoles = map[string]bool{
	RoleAdmin:           true,
	RoleFinanceManager:  true,
	RoleAccountant:      true,
	RoleCustomerService: true,
}

// IsStaff reports whether role may use the operations screens.
func IsStaff(role string) bool { return staffRoles[role] }

// CanCollect reports whether role may use the collector portal. Admins can, to support collectors.
func CanCollect(role string) bool { return role == RoleCollector || role == RoleAdmin }

func IsCustomer(role string) bool { return role == RoleCustomer }

type Session struct {
	ID     string
	UserID string
	Role   string

	Cache      *query.Cache
	Queries    *queries.Set
	Map        *navigation.MapView
	Collector  *pages.CollectorPages
	Customer   *pages.CustomerPages
	Operations *pages.Operations

	mu        sync.Mutex
	token     string
	tokenHash string
	expiresAt time.Time
	lastSeen  time.Time
}

// Token is the most recent access token presented for this session.
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Context attaches the session's current token to ctx for upstream calls.
func (s *Session) Context(ctx context.Context) context.Context {
	return apiclient.WithToken(ctx, s.Token())
}

// ExpiresAt is the expiry of the latest token; zero when the token carries none.
func (s *Session) ExpiresAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.expiresAt
}

func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

func (s *Session) hasToken(hash string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tokenHash == hash
}

func (s *Session) touch(token, hash string, exp, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.tokenHash = hash
	s.expiresAt = exp
	s.lastSeen = now
}

func (s *Session) stale(now time.Time, idle time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.expiresAt.IsZero() && now.After(s.expiresAt) {
		return true
	}
	return idle > 0 && now.Sub(s.lastSeen) > idle
}

func (s *Session) close() {
	s.Map.Close()
	s.Cache.Close()
}

type ctxKey struct{}

// WithSession stores s on ctx along with its token.
func WithSession(ctx context.Context, s *Session) context.Context {
	ctx = context.WithValue(ctx, ctxKey{}, s)
	return s.Context(ctx)
}

func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(*Session)
	return s, ok && s != nil
}
