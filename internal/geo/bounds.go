package geo

import (
	"encoding/json"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Orb converts the geometry into an orb geometry.
// Non-standard types such as "Circle" fail to convert.
func (g *Geometry) Orb() (orb.Geometry, error) {
	if g == nil {
		return nil, fmt.Errorf("nil geometry")
	}

	data, err := json.Marshal(g)
	if err != nil {
		return nil, err
	}

	parsed, err := geojson.UnmarshalGeometry(data)
	if err != nil {
		return nil, fmt.Errorf("geometry %q: %w", g.Type, err)
	}
	if parsed.Geometry() == nil {
		return nil, fmt.Errorf("geometry %q: no coordinates", g.Type)
	}

	return parsed.Geometry(), nil
}

// Bounds returns the bounding box of every non-empty geometry orb can parse.
// The second value is false when no geometry contributed.
func Bounds(fc *FeatureCollection) (orb.Bound, bool) {
	var (
		bound orb.Bound
		found bool
	)

	for i := range fc.Features {
		g, err := fc.Features[i].Geometry.Orb()
		if err != nil {
			continue
		}

		// orb reports empty geometries with an inverted sentinel box
		b := g.Bound()
		if b.IsEmpty() {
			continue
		}
		if !found {
			bound, found = b, true
			continue
		}
		bound = bound.Union(b)
	}

	return bound, found
}
