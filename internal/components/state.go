package components

import (
	"errors"

	"wastepoint/internal/apiclient"
)

type EmptyState struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
	ActionLabel string `json:"action_label,omitempty"`
	ActionHref  string `json:"action_href,omitempty"`
}

// ErrorState is the page-level "failed to load" panel with a retry link.
type ErrorState struct {
	Message string              `json:"message"`
	Detail  string              `json:"detail,omitempty"`
	Fields  map[string][]string `json:"fields,omitempty"`
	Status  int                 `json:"status,omitempty"`
	Retry   string              `json:"retry,omitempty"`
}

// NewErrorState wraps err under a page message such as "Failed to load schedules".
// Upstream detail is shown as-is; anything else gets a generic detail.
func NewErrorState(message string, err error, retry string) ErrorState {
	st := ErrorState{Message: message, Retry: retry}
	var apiErr *apiclient.Error
	if errors.As(err, &apiErr) {
		st.Detail = apiErr.Message
		st.Fields = apiErr.Fields
		st.Status = apiErr.Status
		return st
	}
	if err != nil {
		st.Detail = "Please try again."
	}
	return st
}
