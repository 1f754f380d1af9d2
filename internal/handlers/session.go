package handlers

import (
	"net/http"
	"time"

	"wastepoint/internal/session"

	"go.uber.org/zap"
)

type SessionHandler struct {
	sessions *session.Manager
	logr     *zap.Logger
}

func NewSessionHandler(sessions *session.Manager, logr *zap.Logger) *SessionHandler {
	return &SessionHandler{sessions: sessions, logr: logr}
}

type sessionResponse struct {
	SessionID string     `json:"session_id"`
	UserID    string     `json:"user_id"`
	Role      string     `json:"role"`
	Portal    string     `json:"portal"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// portalFor names the home screen a role lands on.
func portalFor(role string) string {
	switch {
	case session.IsStaff(role):
		return "/operations"
	case session.CanCollect(role):
		return "/collector"
	case session.IsCustomer(role):
		return "/portal"
	default:
		return ""
	}
}

// Current describes the caller's session so the client can route to its portal.
func (h *SessionHandler) Current(w http.ResponseWriter, r *http.Request) {
	s, ok := sessionOf(w, r)
	if !ok {
		return
	}
	resp := sessionResponse{
		SessionID: s.ID,
		UserID:    s.UserID,
		Role:      s.Role,
		Portal:    portalFor(s.Role),
	}
	if exp := s.ExpiresAt(); !exp.IsZero() {
		resp.ExpiresAt = &exp
	}
	writeJSON(w, http.StatusOK, resp)
}

// Logout drops the caller's cached data. The upstream token itself stays valid
// until the client discards it.
func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	s, ok := sessionOf(w, r)
	if !ok {
		return
	}
	h.sessions.Logout(s.UserID)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

func Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
