package geo

import (
	"math"
	"testing"
)

func TestBounds(t *testing.T) {
	fc := mustDecode(t, `{"type":"FeatureCollection","features":[
		{"type":"Feature","geometry":{"type":"Point","coordinates":[10,20]}},
		{"type":"Feature","geometry":{"type":"LineString","coordinates":[[-5,1],[3,40]]}},
		{"type":"Feature","geometry":{"type":"Circle","coordinates":[100,80]}},
		{"type":"Feature","geometry":null}
	]}`)

	b, ok := Bounds(fc)
	if !ok {
		t.Fatal("expected a bound")
	}
	if b.Min.X() != -5 || b.Min.Y() != 1 || b.Max.X() != 10 || b.Max.Y() != 40 {
		t.Errorf("bound = %v", b)
	}
}

func TestBoundsSkipsEmptyGeometry(t *testing.T) {
	fc := mustDecode(t, `{"type":"FeatureCollection","features":[
		{"type":"Feature","geometry":{"type":"LineString","coordinates":[]}},
		{"type":"Feature","geometry":{"type":"Point","coordinates":[10,20]}},
		{"type":"Feature","geometry":{"type":"Point","coordinates":[11,21]}}
	]}`)

	b, ok := Bounds(fc)
	if !ok {
		t.Fatal("expected a bound")
	}
	if b.Min.X() != 10 || b.Min.Y() != 20 || b.Max.X() != 11 || b.Max.Y() != 21 {
		t.Errorf("bound = %v", b)
	}
}

func TestBoundsNoGeometry(t *testing.T) {
	fc := mustDecode(t, `{"type":"FeatureCollection","features":[{"type":"Feature","properties":{"a":1}}]}`)
	if _, ok := Bounds(fc); ok {
		t.Error("expected no bound")
	}
}

func TestMercatorRoundTrip(t *testing.T) {
	for _, lat := range []float64{-60, -10.5, 0, 33.3, 80} {
		got := MercatorYToLat(LatToMercatorY(lat))
		if math.Abs(got-lat) > 1e-9 {
			t.Errorf("round trip %v -> %v", lat, got)
		}
	}
	if ClampLat(90) != MaxLat || ClampLat(-90) != -MaxLat {
		t.Error("ClampLat does not clamp")
	}
}
