package mapview

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/woozymasta/geomap/internal/geo"
)

const (
	// TileSize is the Mapbox GL world tile size in pixels.
	TileSize = 512
	// MaxFitZoom caps the zoom used for tiny or single point bounds.
	MaxFitZoom = 16.0
)

// Fit centers the view on bound and picks the largest zoom at which the
// bound fits a width x height viewport. padding is in pixels per side.
func (v *View) Fit(bound orb.Bound, width, height, padding float64) {
	minY := geo.LatToMercatorY(bound.Min.Y())
	maxY := geo.LatToMercatorY(bound.Max.Y())

	v.Longitude = (bound.Min.X() + bound.Max.X()) / 2
	v.Latitude = geo.MercatorYToLat((minY + maxY) / 2)

	w := width - 2*padding
	h := height - 2*padding
	if w <= 0 || h <= 0 {
		v.Normalize()
		return
	}

	zoom := MaxFitZoom
	// world width in radians is 2*PI at zoom 0 across TileSize pixels
	if dx := (bound.Max.X() - bound.Min.X()) * math.Pi / 180; dx > 0 {
		zoom = math.Min(zoom, math.Log2(w*2*math.Pi/(TileSize*dx)))
	}
	if dy := maxY - minY; dy > 0 {
		zoom = math.Min(zoom, math.Log2(h*2*math.Pi/(TileSize*dy)))
	}
	if zoom < 0 {
		zoom = 0
	}

	v.Zoom = zoom
	v.Normalize()
}
