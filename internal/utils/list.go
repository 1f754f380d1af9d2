package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// SplitList splits a comma-separated value, trimming blanks.
// Example:
//
//	"a, b,,c"  → ["a","b","c"]
func SplitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ParseLatLng reads a "lat,lng" pair in decimal degrees.
func ParseLatLng(s string) (lat, lng float64, err error) {
	parts := SplitList(s)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("coordinate %q: want lat,lng", s)
	}
	if lat, err = strconv.ParseFloat(parts[0], 64); err != nil {
		return 0, 0, fmt.Errorf("coordinate %q: latitude: %w", s, err)
	}
	if lng, err = strconv.ParseFloat(parts[1], 64); err != nil {
		return 0, 0, fmt.Errorf("coordinate %q: longitude: %w", s, err)
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return 0, 0, fmt.Errorf("coordinate %q: out of range", s)
	}
	return lat, lng, nil
}
