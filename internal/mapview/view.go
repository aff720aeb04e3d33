// Package mapview holds the camera and control settings the map page is
// initialized with, and the helpers that derive them.
package mapview

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// DefaultStyleURL is used when no style is configured.
const DefaultStyleURL = "mapbox://styles/mapbox/streets-v11"

// Zoom class names applied to the map element.
const (
	ClassFar    = "far"
	ClassMiddle = "middle"
	ClassNear   = "near"
)

// Breakpoints split the zoom range into far, middle and near.
type Breakpoints struct {
	Mid float64 `yaml:"mid" json:"mid"`
	Far float64 `yaml:"far" json:"far"`
}

// DefaultBreakpoints match the zoom classes of the stock stylesheet.
var DefaultBreakpoints = Breakpoints{Mid: 15, Far: 10}

// View is the initial state of the map.
type View struct {
	StyleURL          string      `yaml:"style_url,omitempty" json:"style_url"`
	ZoomClass         string      `yaml:"-" json:"zoom_class"`
	SearchBounds      []float64   `yaml:"search_bounds,omitempty" json:"search_bounds,omitempty"`
	Breakpoints       Breakpoints `yaml:"zoom_breakpoints,omitempty" json:"zoom_breakpoints"`
	Latitude          float64     `yaml:"latitude,omitempty" json:"latitude"`
	Longitude         float64     `yaml:"longitude,omitempty" json:"longitude"`
	Zoom              float64     `yaml:"zoom,omitempty" json:"zoom"`
	Bearing           float64     `yaml:"bearing,omitempty" json:"bearing"`
	Pitch             float64     `yaml:"pitch,omitempty" json:"pitch"`
	Locked            bool        `yaml:"locked,omitempty" json:"locked"`
	NavigationControl bool        `yaml:"navigation_control,omitempty" json:"navigation_control"`
	Geocoder          bool        `yaml:"geocoder,omitempty" json:"geocoder"`
	Geolocate         bool        `yaml:"geolocate,omitempty" json:"geolocate"`
}

// Default returns a view centered on 0,0 at zoom 1.
func Default() View {
	return View{
		StyleURL:    DefaultStyleURL,
		Zoom:        1,
		Breakpoints: DefaultBreakpoints,
	}
}

// Normalize fills unset fields with defaults and recomputes the zoom class.
func (v *View) Normalize() {
	if v.StyleURL == "" {
		v.StyleURL = DefaultStyleURL
	}
	if v.Breakpoints == (Breakpoints{}) {
		v.Breakpoints = DefaultBreakpoints
	}
	v.ZoomClass = v.Breakpoints.Class(v.Zoom)
}

// Class returns the zoom class for zoom.
func (b Breakpoints) Class(zoom float64) string {
	switch {
	case zoom < b.Far:
		return ClassFar
	case zoom <= b.Mid:
		return ClassMiddle
	default:
		return ClassNear
	}
}

// ParseBreakpoints reads a "mid,far" pair.
func ParseBreakpoints(s string) (Breakpoints, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return Breakpoints{}, fmt.Errorf("zoom breakpoints %q: want mid,far", s)
	}

	mid, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return Breakpoints{}, fmt.Errorf("zoom breakpoints mid: %w", err)
	}
	far, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return Breakpoints{}, fmt.Errorf("zoom breakpoints far: %w", err)
	}

	return Breakpoints{Mid: mid, Far: far}, nil
}

// ParseBounds reads a "minLon,minLat,maxLon,maxLat" search box.
func ParseBounds(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return nil, fmt.Errorf("search bounds %q: want 4 numbers", s)
	}

	bounds := make([]float64, 0, 4)
	for _, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("search bounds %q: %w", s, err)
		}
		bounds = append(bounds, f)
	}
	return bounds, nil
}

// QueryValues decodes every query parameter as JSON and keeps the raw
// string when it is not valid JSON.
func QueryValues(q url.Values) map[string]any {
	values := make(map[string]any, len(q))
	for key, list := range q {
		if len(list) == 0 {
			continue
		}
		raw := list[0]

		var decoded any
		if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
			values[key] = raw
			continue
		}
		values[key] = decoded
	}
	return values
}

// ApplyQuery overrides the camera from URL query parameters.
// Values that are not numbers are ignored.
func (v *View) ApplyQuery(q url.Values) {
	values := QueryValues(q)

	set := func(key string, dst *float64) {
		if f, ok := asFloat(values[key]); ok {
			*dst = f
		}
	}
	set("latitude", &v.Latitude)
	set("longitude", &v.Longitude)
	set("zoom", &v.Zoom)
	set("bearing", &v.Bearing)
	set("pitch", &v.Pitch)

	v.Normalize()
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	default:
		return 0, false
	}
}
