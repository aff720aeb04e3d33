package mapview

import (
	"math"
	"net/url"
	"reflect"
	"testing"

	"github.com/paulmach/orb"
)

func TestBreakpointsClass(t *testing.T) {
	b := DefaultBreakpoints
	cases := []struct {
		zoom float64
		want string
	}{
		{0, ClassFar},
		{9.99, ClassFar},
		{10, ClassMiddle},
		{12, ClassMiddle},
		{15, ClassMiddle},
		{15.01, ClassNear},
		{22, ClassNear},
	}
	for _, c := range cases {
		if got := b.Class(c.zoom); got != c.want {
			t.Errorf("Class(%v) = %s, want %s", c.zoom, got, c.want)
		}
	}
}

func TestParseBreakpoints(t *testing.T) {
	b, err := ParseBreakpoints("14, 8")
	if err != nil {
		t.Fatalf("ParseBreakpoints failed: %v", err)
	}
	if b != (Breakpoints{Mid: 14, Far: 8}) {
		t.Errorf("breakpoints = %+v", b)
	}

	for _, bad := range []string{"", "1", "a,2", "1,b", "1,2,3"} {
		if _, err := ParseBreakpoints(bad); err == nil {
			t.Errorf("ParseBreakpoints(%q) should fail", bad)
		}
	}
}

func TestParseBounds(t *testing.T) {
	got, err := ParseBounds("-74.1, 40.5,-73.7,40.9")
	if err != nil {
		t.Fatalf("ParseBounds failed: %v", err)
	}
	if !reflect.DeepEqual(got, []float64{-74.1, 40.5, -73.7, 40.9}) {
		t.Errorf("bounds = %v", got)
	}
	if _, err := ParseBounds("1,2,3"); err == nil {
		t.Error("expected error for 3 values")
	}
}

func TestQueryValues(t *testing.T) {
	q := url.Values{
		"zoom":   {"12.5"},
		"name":   {"plain text"},
		"quoted": {`"x"`},
		"obj":    {`{"a":1}`},
		"empty":  {},
	}

	got := QueryValues(q)
	if got["zoom"] != 12.5 {
		t.Errorf("zoom = %#v", got["zoom"])
	}
	if got["name"] != "plain text" {
		t.Errorf("name = %#v", got["name"])
	}
	if got["quoted"] != "x" {
		t.Errorf("quoted = %#v", got["quoted"])
	}
	if !reflect.DeepEqual(got["obj"], map[string]any{"a": 1.0}) {
		t.Errorf("obj = %#v", got["obj"])
	}
	if _, ok := got["empty"]; ok {
		t.Error("empty parameter should be skipped")
	}
}

func TestApplyQuery(t *testing.T) {
	v := Default()
	v.Latitude = 5

	v.ApplyQuery(url.Values{
		"zoom":      {"16"},
		"longitude": {`"30.5"`},
		"pitch":     {"steep"},
	})

	if v.Zoom != 16 || v.Longitude != 30.5 || v.Latitude != 5 || v.Pitch != 0 {
		t.Errorf("view = %+v", v)
	}
	if v.ZoomClass != ClassNear {
		t.Errorf("zoom class = %s, want near", v.ZoomClass)
	}
}

func TestNormalizeDefaults(t *testing.T) {
	var v View
	v.Normalize()
	if v.StyleURL != DefaultStyleURL || v.Breakpoints != DefaultBreakpoints || v.ZoomClass != ClassFar {
		t.Errorf("view = %+v", v)
	}
}

func TestFit(t *testing.T) {
	v := Default()
	v.Fit(orb.Bound{Min: orb.Point{-10, -10}, Max: orb.Point{10, 10}}, 512, 512, 0)

	if math.Abs(v.Latitude) > 1e-9 || math.Abs(v.Longitude) > 1e-9 {
		t.Errorf("center = %v,%v, want 0,0", v.Latitude, v.Longitude)
	}
	if v.Zoom < 4 || v.Zoom > 4.2 {
		t.Errorf("zoom = %v, want ~4.16", v.Zoom)
	}
	if v.ZoomClass != ClassFar {
		t.Errorf("zoom class = %s", v.ZoomClass)
	}
}

func TestFitSinglePoint(t *testing.T) {
	v := Default()
	p := orb.Point{13.4, 52.5}
	v.Fit(orb.Bound{Min: p, Max: p}, 800, 600, 20)

	if v.Zoom != MaxFitZoom {
		t.Errorf("zoom = %v, want %v", v.Zoom, MaxFitZoom)
	}
	if math.Abs(v.Latitude-52.5) > 1e-9 || v.Longitude != 13.4 {
		t.Errorf("center = %v,%v", v.Latitude, v.Longitude)
	}
}

func TestRenderPopup(t *testing.T) {
	props := map[string]any{
		"name":  "Depot",
		"count": 3.0,
		"ratio": 0.25,
		"open":  true,
		"note":  nil,
		"tags":  []any{"a", "b"},
	}

	got := RenderPopup("<b>${name}</b> ${count} ${ratio} ${open} ${note} ${tags} ${missing}", props)
	want := `<b>Depot</b> 3 0.25 true null ["a","b"] ${missing}`
	if got != want {
		t.Errorf("popup = %q, want %q", got, want)
	}
}

func TestDefaultPopup(t *testing.T) {
	if got := DefaultPopup(nil); got != "{}" {
		t.Errorf("popup = %q", got)
	}
	if got := DefaultPopup(map[string]any{"a": 1.0}); got != `{"a":1}` {
		t.Errorf("popup = %q", got)
	}
}
