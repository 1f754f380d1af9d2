// Package components holds the small presentational view models every page shares:
// status badges, stat cards, and empty and error states.
package components

import "strings"

type Variant string

const (
	VariantDefault Variant = "default"
	VariantSuccess Variant = "success"
	VariantWarning Variant = "warning"
	VariantDanger  Variant = "danger"
	VariantInfo    Variant = "info"
	VariantPrimary Variant = "primary"
)

type Badge struct {
	Label   string  `json:"label"`
	Variant Variant `json:"variant"`
	Value   string  `json:"value"`
}

var statusVariants = map[string]Variant{
	"active":      VariantSuccess,
	"completed":   VariantSuccess,
	"paid":        VariantSuccess,
	"suspended":   VariantWarning,
	"pending":     VariantWarning,
	"scheduled":   VariantWarning,
	"archived":    VariantDefault,
	"inactive":    VariantDefault,
	"cancelled":   VariantDefault,
	"overdue":     VariantDanger,
	"missed":      VariantDanger,
	"failed":      VariantDanger,
	"in_progress": VariantInfo,
}

// StatusVariant maps a status string to its badge colour; unknown statuses are default.
func StatusVariant(status string) Variant {
	if v, ok := statusVariants[strings.ToLower(status)]; ok {
		return v
	}
	return VariantDefault
}

// FormatStatus turns snake_case statuses into title case, e.g. "on_leave" -> "On Leave".
func FormatStatus(s string) string {
	words := strings.Split(strings.ReplaceAll(s, "_", " "), " ")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

func StatusBadge(status string) Badge {
	return Badge{
		Label:   FormatStatus(status),
		Variant: StatusVariant(status),
		Value:   status,
	}
}
