package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"wastepoint/internal/apiclient"
	"wastepoint/internal/auth"
	"wastepoint/internal/navigation"
	"wastepoint/internal/services"
	"wastepoint/internal/session"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type noLookup struct{}

func (noLookup) Lookup(context.Context, navigation.LatLng, navigation.LatLng) (*navigation.NavigationRoute, error) {
	return nil, navigation.ErrNoRoute
}

// newManager serves /auth/users/me/ with the role after the "role-" prefix of the token's jti.
func newManager(t *testing.T) *session.Manager {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		claims := jwt.MapClaims{}
		if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if claims["jti"] == "revoked" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":   claims["user_id"],
			"role": strings.TrimPrefix(claims["jti"].(string), "role-"),
		})
	}))
	t.Cleanup(srv.Close)

	reader, err := auth.NewTokenReader("")
	require.NoError(t, err)
	m := session.NewManager(reader, services.NewSet(apiclient.New(srv.URL, time.Second, nil)), noLookup{})
	t.Cleanup(m.Close)
	return m
}

func token(t *testing.T, userID, jti string) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"jti":     jti,
		"exp":     time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)
	return s
}

func serve(h http.Handler, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/anything", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestSessionMiddleware(t *testing.T) {
	mw := NewAuthMiddleware(newManager(t), zap.NewNop())
	var seen *session.Session
	var seenToken string
	h := mw.Session(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = session.FromContext(r.Context())
		seenToken = apiclient.TokenFrom(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := serve(h, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"missing authorization header"}`, rec.Body.String())

	rec = serve(h, "Token abc")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = serve(h, "Bearer "+token(t, "u-1", "revoked"))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, seen)

	tok := token(t, "u-1", "role-collector")
	rec = serve(h, "Bearer "+tok)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	require.NotNil(t, seen)
	assert.Equal(t, "collector", seen.Role)
	assert.Equal(t, tok, seenToken)
}

func TestRoleGuards(t *testing.T) {
	mw := NewAuthMiddleware(newManager(t), zap.NewNop())
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

	cases := []struct {
		name  string
		guard func(http.Handler) http.Handler
		jti   string
		want  int
	}{
		{"staff admits accountant", mw.RequireStaff, "role-accountant", http.StatusOK},
		{"staff rejects collector", mw.RequireStaff, "role-collector", http.StatusForbidden},
		{"collector admits admin", mw.RequireCollector, "role-admin", http.StatusOK},
		{"collector rejects customer", mw.RequireCollector, "role-customer", http.StatusForbidden},
		{"customer admits customer", mw.RequireCustomer, "role-customer", http.StatusOK},
		{"customer rejects admin", mw.RequireCustomer, "role-admin", http.StatusForbidden},
	}
	for i, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := mw.Session(tc.guard(ok))
			userID := "user-" + string(rune('a'+i))
			rec := serve(h, "Bearer "+token(t, userID, tc.jti))
			assert.Equal(t, tc.want, rec.Code)
		})
	}

	rec := serve(mw.RequireStaff(ok), "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequestLoggerPassesThrough(t *testing.T) {
	h := RequestLogger(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	}))
	rec := serve(h, "")
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "short and stout", rec.Body.String())
}
