package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatDistance(t *testing.T) {
	cases := []struct {
		meters float64
		want   string
	}{
		{0, "0 m"},
		{12.4, "12 m"},
		{999, "999 m"},
		{1000, "1.0 km"},
		{1500, "1.5 km"},
		{12345, "12.3 km"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatDistance(tc.meters), "meters=%v", tc.meters)
	}
}

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		seconds float64
		want    string
	}{
		{0, "0 min"},
		{59, "0 min"},
		{90, "1 min"},
		{3599, "59 min"},
		{3600, "1h 0min"},
		{5400, "1h 30min"},
		{7325.7, "2h 2min"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatDuration(tc.seconds), "seconds=%v", tc.seconds)
	}
}
