package apiclient

import (
	"encoding/json"
	"net/http"
	"sort"
	"strings"
	"unicode"
)

// Error is the normalised form of every failed upstream call.
// Status is 0 when the request never produced an HTTP response.
type Error struct {
	Status  int                 `json:"status"`
	Message string              `json:"message"`
	Fields  map[string][]string `json:"fields,omitempty"`
	Err     error               `json:"-"`
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// normalize turns an error body from the upstream into an Error. The upstream uses three shapes:
// field validation maps ({"field": ["msg"]}), {"detail": "..."} and {"message"|"error": "..."}.
func normalize(status int, body []byte) *Error {
	apiErr := &Error{Status: status}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil || len(payload) == 0 {
		apiErr.Message = fallbackMessage(status)
		return apiErr
	}

	keys := make([]string, 0, len(payload))
	for k := range payload {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var lines []string
	for _, field := range keys {
		raw := payload[field]

		var list []string
		if err := json.Unmarshal(raw, &list); err == nil {
			if field != "non_field_errors" && field != "detail" {
				if apiErr.Fields == nil {
					apiErr.Fields = map[string][]string{}
				}
				apiErr.Fields[field] = list
			}
			for _, msg := range list {
				if field == "non_field_errors" || field == "detail" {
					lines = append(lines, msg)
				} else {
					lines = append(lines, fieldLabel(field)+": "+msg)
				}
			}
			continue
		}

		var text string
		if err := json.Unmarshal(raw, &text); err == nil {
			switch field {
			case "detail", "message", "error":
				lines = append(lines, text)
			default:
				lines = append(lines, fieldLabel(field)+": "+text)
			}
		}
	}

	if len(lines) == 0 {
		apiErr.Message = fallbackMessage(status)
		return apiErr
	}
	apiErr.Message = strings.Join(lines, "\n")
	return apiErr
}

func fallbackMessage(status int) string {
	if text := http.StatusText(status); text != "" {
		return text
	}
	return "An error occurred"
}

// fieldLabel renders snake_case field names as "Title Case" labels.
func fieldLabel(field string) string {
	words := strings.Fields(strings.ReplaceAll(field, "_", " "))
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
