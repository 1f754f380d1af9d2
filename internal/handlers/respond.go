package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"wastepoint/internal/apiclient"
	"wastepoint/internal/forms"
	"wastepoint/internal/navigation"
	"wastepoint/internal/pages"
	"wastepoint/internal/session"

	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error  string              `json:"error"`
	Detail string              `json:"detail,omitempty"`
	Fields map[string][]string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data == nil {
		return
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	_ = enc.Encode(data)
}

// writePage renders a screen with the status its outcome maps to.
func writePage[T any](w http.ResponseWriter, p pages.Page[T]) {
	writeJSON(w, p.HTTPStatus(), p)
}

// writeAction renders a mutation result or its failure.
func writeAction[T any](w http.ResponseWriter, logr *zap.Logger, status int, res pages.ActionResult[T], err error) {
	if err != nil {
		writeError(w, logr, err)
		return
	}
	writeJSON(w, status, res)
}

// writeError maps page and form errors onto responses. Upstream field errors
// are passed through so forms can mark the offending inputs.
func writeError(w http.ResponseWriter, logr *zap.Logger, err error) {
	var (
		verr   *forms.ValidationError
		actErr *pages.ActionError
		apiErr *apiclient.Error
	)
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: "Validation failed", Fields: verr.Fields})
	case errors.Is(err, forms.ErrNoPackage):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error:  "Validation failed",
			Fields: map[string][]string{"package_id": {"Please select a package or enter a custom amount"}},
		})
	case errors.Is(err, navigation.ErrUnknownRoute):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "Route not found"})
	case errors.As(err, &actErr):
		status := actErr.Status()
		if status == 0 {
			status = http.StatusBadGateway
		}
		resp := errorResponse{Error: actErr.Message}
		if errors.As(actErr.Err, &apiErr) {
			resp.Detail = apiErr.Message
			resp.Fields = apiErr.Fields
		} else {
			resp.Detail = actErr.Err.Error()
		}
		logr.Warn("action failed", zap.Int("status", status), zap.Error(err))
		writeJSON(w, status, resp)
	default:
		logr.Error("request failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

// decodeJSON reads a request body into v. An empty body leaves v untouched.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body", Detail: err.Error()})
		return false
	}
	return true
}

// sessionOf returns the caller's session; the auth middleware guarantees one on every guarded route.
func sessionOf(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	s, ok := session.FromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "session not found"})
	}
	return s, ok
}

// wantWait reports whether the client asked to block until the map settles.
func wantWait(r *http.Request) bool {
	v := r.URL.Query().Get("wait")
	return v == "1" || v == "true"
}
