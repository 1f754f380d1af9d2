// Package navigation holds the collector route map: GeoJSON path parsing,
// routing lookups between the collector and a route, and the map view state.
package navigation

import (
	"bytes"
	"encoding/json"
)

// LatLng is a point in rendering order (latitude first).
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type geoObject struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
	Geometry    *geoObject      `json:"geometry"`
}

// ParsePath reads a GeoJSON LineString, or a Feature wrapping one, and returns its
// vertices as lat/lng. raw may be JSON text, raw bytes or an already decoded value.
// Anything else, including malformed JSON, yields nil.
func ParsePath(raw any) []LatLng {
	data, ok := asJSON(raw)
	if !ok {
		return nil
	}

	var obj geoObject
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil
	}

	var coords json.RawMessage
	switch {
	case obj.Type == "LineString":
		coords = obj.Coordinates
	case obj.Type == "Feature" && obj.Geometry != nil && obj.Geometry.Type == "LineString":
		coords = obj.Geometry.Coordinates
	default:
		return nil
	}
	return swapCoordinates(coords)
}

func asJSON(raw any) ([]byte, bool) {
	var data []byte
	switch v := raw.(type) {
	case nil:
		return nil, false
	case string:
		data = []byte(v)
	case []byte:
		data = v
	case json.RawMessage:
		data = v
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return nil, false
		}
		data = b
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, false
	}
	return data, true
}

// swapCoordinates converts [[lng, lat], ...] into lat/lng points.
func swapCoordinates(coords json.RawMessage) []LatLng {
	var pairs [][]float64
	if err := json.Unmarshal(coords, &pairs); err != nil || len(pairs) == 0 {
		return nil
	}
	out := make([]LatLng, 0, len(pairs))
	for _, p := range pairs {
		if len(p) < 2 {
			return nil
		}
		out = append(out, LatLng{Lat: p[1], Lng: p[0]})
	}
	return out
}
