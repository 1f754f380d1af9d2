package navigation

// MapRenderer turns a view snapshot into something a map client can draw.
type MapRenderer interface {
	Render(v View) (any, error)
}

const (
	colorRoute      = "#22c55e"
	colorSelected   = "#3b82f6"
	colorUser       = "#ef4444"
	colorNavigation = "#8b5cf6"
)

type Geometry struct {
	Type        string `json:"type"`
	Coordinates any    `json:"coordinates"`
}

type Feature struct {
	Type       string         `json:"type"`
	ID         string         `json:"id,omitempty"`
	Geometry   Geometry       `json:"geometry"`
	Properties map[string]any `json:"properties"`
}

// FeatureCollection carries the camera alongside the features as foreign members.
type FeatureCollection struct {
	Type     string     `json:"type"`
	Features []Feature  `json:"features"`
	Count    int        `json:"count"`
	Center   [2]float64 `json:"center"`
	Zoom     int        `json:"zoom"`
	Message  string     `json:"message,omitempty"`
}

// GeoJSONRenderer draws routes as lines with a marker each, the collector as a
// point and the navigation path as a dashed line. Coordinates go back to lng/lat.
type GeoJSONRenderer struct {
	Zoom         int
	RecenterZoom int
}

func (g GeoJSONRenderer) Render(v View) (any, error) {
	zoom := g.Zoom
	if zoom == 0 {
		zoom = 13
	}
	if v.Recenter != nil && g.RecenterZoom > 0 {
		zoom = g.RecenterZoom
	}

	features := make([]Feature, 0, 2*len(v.Routes)+2)

	for _, r := range v.Routes {
		selected := r.ID == v.SelectedID
		color := colorRoute
		weight, opacity := 3, 0.7
		if selected {
			color = colorSelected
			weight, opacity = 5, 1.0
		}

		if len(r.Path) > 0 {
			features = append(features, Feature{
				Type:     "Feature",
				ID:       "route:" + r.ID,
				Geometry: lineString(r.Path),
				Properties: map[string]any{
					"kind":     "route",
					"route_id": r.ID,
					"name":     r.Name,
					"code":     r.Code,
					"selected": selected,
					"color":    color,
					"weight":   weight,
					"opacity":  opacity,
				},
			})
		}
		if anchor, ok := r.Anchor(); ok {
			features = append(features, Feature{
				Type:     "Feature",
				ID:       "marker:" + r.ID,
				Geometry: point(anchor),
				Properties: map[string]any{
					"kind":     "route-marker",
					"route_id": r.ID,
					"name":     r.Name,
					"selected": selected,
					"color":    color,
				},
			})
		}
	}

	if v.Navigation.Route != nil && v.Location.Position != nil && len(v.Navigation.Route.Path) > 0 {
		features = append(features, Feature{
			Type:     "Feature",
			ID:       "navigation",
			Geometry: lineString(v.Navigation.Route.Path),
			Properties: map[string]any{
				"kind":       "navigation",
				"route_id":   v.Navigation.RouteID,
				"color":      colorNavigation,
				"weight":     6,
				"opacity":    0.8,
				"dash_array": "10, 10",
				"distance":   v.Navigation.DistanceText,
				"duration":   v.Navigation.DurationText,
			},
		})
	}

	if v.Location.Position != nil {
		features = append(features, Feature{
			Type:     "Feature",
			ID:       "user",
			Geometry: point(*v.Location.Position),
			Properties: map[string]any{
				"kind":  "user",
				"label": "Your Location",
				"color": colorUser,
			},
		})
	}

	return &FeatureCollection{
		Type:     "FeatureCollection",
		Features: features,
		Count:    len(features),
		Center:   [2]float64{v.Center.Lat, v.Center.Lng},
		Zoom:     zoom,
		Message:  v.Message,
	}, nil
}

func lineString(path []LatLng) Geometry {
	coords := make([][2]float64, len(path))
	for i, p := range path {
		coords[i] = [2]float64{p.Lng, p.Lat}
	}
	return Geometry{Type: "LineString", Coordinates: coords}
}

func point(p LatLng) Geometry {
	return Geometry{Type: "Point", Coordinates: [2]float64{p.Lng, p.Lat}}
}
