package navigation

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePathLineString(t *testing.T) {
	path := ParsePath(`{"type":"LineString","coordinates":[[30.06,-1.95],[30.07,-1.96]]}`)
	assert.Equal(t, []LatLng{{Lat: -1.95, Lng: 30.06}, {Lat: -1.96, Lng: 30.07}}, path)
}

func TestParsePathFeature(t *testing.T) {
	raw := json.RawMessage(`{"type":"Feature","properties":{},"geometry":{"type":"LineString","coordinates":[[36.82,-1.29]]}}`)
	assert.Equal(t, []LatLng{{Lat: -1.29, Lng: 36.82}}, ParsePath(raw))
}

func TestParsePathDecodedValue(t *testing.T) {
	decoded := map[string]any{
		"type":        "LineString",
		"coordinates": []any{[]any{1.5, 2.5}},
	}
	assert.Equal(t, []LatLng{{Lat: 2.5, Lng: 1.5}}, ParsePath(decoded))
}

func TestParsePathRejectsOtherInput(t *testing.T) {
	cases := map[string]any{
		"nil":             nil,
		"empty":           "",
		"null":            json.RawMessage("null"),
		"invalid json":    "{type: LineString",
		"polygon":         `{"type":"Polygon","coordinates":[[[1,2],[3,4],[1,2]]]}`,
		"feature polygon": `{"type":"Feature","geometry":{"type":"Point","coordinates":[1,2]}}`,
		"feature no geom": `{"type":"Feature"}`,
		"short pair":      `{"type":"LineString","coordinates":[[1]]}`,
		"no coordinates":  `{"type":"LineString"}`,
		"empty line":      `{"type":"LineString","coordinates":[]}`,
		"string coords":   `{"type":"LineString","coordinates":[["a","b"]]}`,
		"number":          42,
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Nil(t, ParsePath(in))
		})
	}
}
