package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParamsAreCanonical(t *testing.T) {
	a := K("schedules", "list").WithParams(map[string]string{"status": "missed", "route": "r1", "search": ""})
	b := K("schedules", "list").WithParams(map[string]string{"route": "r1", "status": "missed"})

	assert.Equal(t, a, b)
	assert.Equal(t, "schedules/list/route=r1&status=missed", a.String())
}

func TestBlankParamsAddNoSegment(t *testing.T) {
	k := K("routes", "list").WithParams(map[string]string{"status": ""})
	assert.Equal(t, K("routes", "list"), k)
}

func TestHasPrefix(t *testing.T) {
	k := K("serviceAreas", "detail", "abc", "routes")

	assert.True(t, k.HasPrefix(K("serviceAreas")))
	assert.True(t, k.HasPrefix(K("serviceAreas", "detail", "abc")))
	assert.True(t, k.HasPrefix(k))
	assert.False(t, k.HasPrefix(K("serviceAreas", "list")))
	assert.False(t, K("routes").HasPrefix(K("routes", "list")))
}

func TestWithDoesNotAlias(t *testing.T) {
	base := make(Key, 1, 4)
	base[0] = "collectors"
	a := base.With("list")
	b := base.With("available")

	assert.Equal(t, K("collectors", "list"), a)
	assert.Equal(t, K("collectors", "available"), b)
}

func TestParamValuesCannotForgeOtherFilters(t *testing.T) {
	typed := K("serviceAreas", "list").WithParams(map[string]string{"search": "kigali&status=active"})
	filtered := K("serviceAreas", "list").WithParams(map[string]string{"search": "kigali", "status": "active"})

	assert.NotEqual(t, typed, filtered)
	assert.NotEqual(t, typed.id(), filtered.id())
	assert.Equal(t, "search=kigali%26status%3Dactive", typed[2])
}

func TestIDKeepsSegmentBoundaries(t *testing.T) {
	assert.NotEqual(t, K("routes", "detail/abc").id(), K("routes", "detail", "abc").id())
	assert.NotEqual(t, K("a\x1fb").id(), K("a", "b").id())
}
