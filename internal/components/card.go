package components

import (
	"fmt"
	"strconv"
)

type ChangeType string

const (
	Increase ChangeType = "increase"
	Decrease ChangeType = "decrease"
	Neutral  ChangeType = "neutral"
)

type Change struct {
	Value string     `json:"value"`
	Type  ChangeType `json:"type"`
	Tone  Variant    `json:"tone"`
}

type StatCard struct {
	Title  string  `json:"title"`
	Value  string  `json:"value"`
	Icon   string  `json:"icon,omitempty"`
	Change *Change `json:"change,omitempty"`
}

func Stat(title string, value any, icon string) StatCard {
	return StatCard{Title: title, Value: statValue(value), Icon: icon}
}

// WithChange attaches a trend line; increases read as good, decreases as bad.
func (s StatCard) WithChange(value string, typ ChangeType) StatCard {
	tone := VariantDefault
	switch typ {
	case Increase:
		tone = VariantSuccess
	case Decrease:
		tone = VariantDanger
	}
	s.Change = &Change{Value: value, Type: typ, Tone: tone}
	return s
}

func statValue(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}

// Money renders an amount the way the portals show balances, e.g. "RWF 3,500".
func Money(amount float64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}
	whole := strconv.FormatFloat(amount, 'f', 0, 64)
	var out []byte
	for i := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, whole[i])
	}
	if neg {
		return "RWF -" + string(out)
	}
	return "RWF " + string(out)
}
