// Package forms holds the editable drafts behind every create/edit screen: defaults,
// population from fetched data, validation, and the create and update payload builders.
package forms

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var (
	decimalRe = regexp.MustCompile(`^-?\d+\.?\d*$`)
	validate  = newValidator()
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("decimal", func(fl validator.FieldLevel) bool {
		return decimalRe.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		_, err := time.Parse(time.DateOnly, fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
		return parseClock(fl.Field().String()) == nil
	})
	return v
}

func parseClock(s string) error {
	if _, err := time.Parse("15:04", s); err == nil {
		return nil
	}
	_, err := time.Parse(time.TimeOnly, s)
	return err
}

// ValidationError maps json field names to user-facing messages.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+strings.Join(e.Fields[name], ", "))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) add(field, msg string) {
	if e.Fields == nil {
		e.Fields = map[string][]string{}
	}
	e.Fields[field] = append(e.Fields[field], msg)
}

// labeled lets a draft override the label used in messages ("Date" rather than "Scheduled Date").
type labeled interface {
	labels() map[string]string
}

// Check validates draft and returns a *ValidationError listing every failing field.
func Check(draft any) error {
	err := validate.Struct(draft)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	var overrides map[string]string
	if l, ok := draft.(labeled); ok {
		overrides = l.labels()
	}

	out := &ValidationError{}
	for _, fe := range verrs {
		field := fe.Field()
		label, ok := overrides[field]
		if !ok {
			label = Label(field)
		}
		out.add(field, message(fe, label))
	}
	return out
}

func message(fe validator.FieldError, label string) string {
	switch fe.Tag() {
	case "required", "required_if":
		return label + " is required"
	case "email":
		return "Invalid email address"
	case "decimal":
		return "Invalid " + strings.ToLower(label) + " format"
	case "number", "numeric":
		return label + " must be a number"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", label, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "uuid", "uuid4":
		return label + " is not a valid selection"
	case "isodate":
		return label + " must be a date (YYYY-MM-DD)"
	case "clock":
		return label + " must be a time (HH:MM)"
	case "gt", "gte", "min":
		return fmt.Sprintf("%s must be at least %s", label, fe.Param())
	case "lte", "max":
		return fmt.Sprintf("%s must be at most %s", label, fe.Param())
	default:
		return label + " is invalid"
	}
}

// Label turns a snake_case field name into a title, e.g. "hire_date" -> "Hire Date".
func Label(field string) string {
	words := strings.Split(field, "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// optional returns nil for blank input so the field is omitted from the payload.
func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func str(s string) *string {
	s = strings.TrimSpace(s)
	return &s
}

func optionalInt(s string) *int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	return &n
}

func optionalFloat(s string) *float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil
	}
	return &f
}

// intOr parses s, falling back to def for blank or unparsable input.
func intOr(s string, def int) *int {
	if n := optionalInt(s); n != nil {
		return n
	}
	return &def
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func formatFloat(f float64) string {
	if f == 0 {
		return ""
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func formatInt(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}

// clock trims seconds from upstream times ("08:00:00" -> "08:00").
func clock(s, def string) string {
	if s == "" {
		return def
	}
	if len(s) > 5 && s[2] == ':' {
		return s[:5]
	}
	return s
}
