package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, SplitList("a, b,,c"))
	assert.Nil(t, SplitList("  "))
	assert.Equal(t, []string{"http://localhost:3000"}, SplitList("http://localhost:3000"))
}

func TestParseLatLng(t *testing.T) {
	lat, lng, err := ParseLatLng("-1.9441, 30.0619")
	require.NoError(t, err)
	assert.InDelta(t, -1.9441, lat, 1e-9)
	assert.InDelta(t, 30.0619, lng, 1e-9)

	for _, bad := range []string{"", "1.0", "a,b", "91,0", "0,181", "1,2,3"} {
		_, _, err := ParseLatLng(bad)
		assert.Error(t, err, bad)
	}
}
