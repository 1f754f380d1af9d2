package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"wastepoint/internal/session"

	"go.uber.org/zap"
)

type AuthMiddleware struct {
	sessions *session.Manager
	logr     *zap.Logger
}

// NewAuthMiddleware creates a reusable session middleware instance
func NewAuthMiddleware(sessions *session.Manager, logr *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		sessions: sessions,
		logr:     logr,
	}
}

// Session reads the bearer token, resolves the caller's session and attaches it to the request context
func (m *AuthMiddleware) Session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeError(w, http.StatusUnauthorized, "missing authorization header")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader || tokenString == "" {
			writeError(w, http.StatusUnauthorized, "invalid token format")
			return
		}

		s, err := m.sessions.Resolve(r.Context(), tokenString)
		switch {
		case err == nil:
		case errors.Is(err, session.ErrUnauthenticated):
			m.logr.Warn("token rejected", zap.Error(err))
			writeError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		case errors.Is(err, session.ErrClosed):
			writeError(w, http.StatusServiceUnavailable, "server is shutting down")
			return
		default:
			m.logr.Error("failed resolving session", zap.Error(err))
			writeError(w, http.StatusBadGateway, "Network error: unable to reach the server")
			return
		}

		next.ServeHTTP(w, r.WithContext(session.WithSession(r.Context(), s)))
	})
}

// RequireRole lets the request through when the session role satisfies allow.
func (m *AuthMiddleware) RequireRole(allow func(role string) bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, ok := session.FromContext(r.Context())
			if !ok {
				writeError(w, http.StatusUnauthorized, "session not found")
				return
			}
			if !allow(s.Role) {
				m.logr.Warn("role denied",
					zap.String("user_id", s.UserID),
					zap.String("role", s.Role),
					zap.String("path", r.URL.Path))
				writeError(w, http.StatusForbidden, "insufficient permissions")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (m *AuthMiddleware) RequireStaff(next http.Handler) http.Handler {
	return m.RequireRole(session.IsStaff)(next)
}

func (m *AuthMiddleware) RequireCollector(next http.Handler) http.Handler {
	return m.RequireRole(session.CanCollect)(next)
}

func (m *AuthMiddleware) RequireCustomer(next http.Handler) http.Handler {
	return m.RequireRole(session.IsCustomer)(next)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
