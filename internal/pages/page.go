// Package pages composes the portal screens: each page runs its queries and
// branches into an error, empty or ready view model the browser renders as-is.
package pages

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"wastepoint/internal/apiclient"
	"wastepoint/internal/components"
	"wastepoint/internal/services"
)

type Status string

const (
	StatusReady Status = "ready"
	StatusEmpty Status = "empty"
	StatusError Status = "error"
)

// Page is the envelope every screen returns. Empty pages still carry their data
// so filters and headers keep rendering.
type Page[T any] struct {
	Status Status                 `json:"status"`
	Data   *T                     `json:"data,omitempty"`
	Empty  *components.EmptyState `json:"empty,omitempty"`
	Error  *components.ErrorState `json:"error,omitempty"`
}

func Ready[T any](v T) Page[T] {
	return Page[T]{Status: StatusReady, Data: &v}
}

func Empty[T any](v T, e components.EmptyState) Page[T] {
	return Page[T]{Status: StatusEmpty, Data: &v, Empty: &e}
}

func Failed[T any](message string, err error, retry string) Page[T] {
	st := components.NewErrorState(message, err, retry)
	if errors.Is(err, services.ErrInvalidID) {
		st.Status = http.StatusNotFound
		st.Detail = "Not found."
	}
	return Page[T]{Status: StatusError, Error: &st}
}

// withQuery appends the non-blank pairs to path, so a retry reloads the same filtered view.
func withQuery(path string, pairs ...string) string {
	v := url.Values{}
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] != "" {
			v.Set(pairs[i], pairs[i+1])
		}
	}
	if len(v) == 0 {
		return path
	}
	return path + "?" + v.Encode()
}

// HTTPStatus is the response code for the page: upstream status when known,
// 502 when the upstream could not be reached.
func (p Page[T]) HTTPStatus() int {
	if p.Status != StatusError {
		return http.StatusOK
	}
	if p.Error != nil && p.Error.Status >= 400 {
		return p.Error.Status
	}
	return http.StatusBadGateway
}

// ActionResult is what a page returns after a mutation.
type ActionResult[T any] struct {
	Message string `json:"message"`
	Data    T      `json:"data,omitempty"`
}

// ErrActionFailed wraps mutation failures so handlers can tell them from validation errors.
var ErrActionFailed = errors.New("action failed")

func actionError(action string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return &ActionError{Message: "Failed to " + action, Err: err}
}

// ActionError carries the user-facing failure message of a mutation.
type ActionError struct {
	Message string
	Err     error
}

func (e *ActionError) Error() string { return e.Message + ": " + e.Err.Error() }

func (e *ActionError) Unwrap() []error { return []error{ErrActionFailed, e.Err} }

// Status is the upstream HTTP status of the failure, 0 for transport errors.
func (e *ActionError) Status() int {
	if errors.Is(e.Err, services.ErrInvalidID) {
		return http.StatusNotFound
	}
	return apiclient.StatusOf(e.Err)
}

// matches is the case-insensitive substring search the list screens use.
func matches(search string, fields ...string) bool {
	search = strings.ToLower(strings.TrimSpace(search))
	if search == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), search) {
			return true
		}
	}
	return false
}

func filter[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}

func mapSlice[T, V any](items []T, fn func(T) V) []V {
	out := make([]V, 0, len(items))
	for _, it := range items {
		out = append(out, fn(it))
	}
	return out
}

func derefStr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// timeWindow renders "08:00 - 17:00" from upstream HH:MM:SS times.
func timeWindow(start, end string) string {
	return shortTime(start) + " - " + shortTime(end)
}

func shortTime(s string) string {
	if len(s) > 5 && s[2] == ':' {
		return s[:5]
	}
	return s
}
