package convert

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/rs/zerolog/log"
)

// convertNative reads shpPath with go-shp and writes a GeoJSON feature collection.
func convertNative(shpPath, out string) error {
	fc, err := ReadShapefile(shpPath)
	if err != nil {
		return err
	}

	data, err := fc.MarshalJSON()
	if err != nil {
		return fmt.Errorf("marshal geojson: %w", err)
	}

	return os.WriteFile(out, data, 0644)
}

// ReadShapefile loads a shapefile and its attribute table.
// Numeric DBF columns become numbers, logical columns booleans.
func ReadShapefile(path string) (*geojson.FeatureCollection, error) {
	shape, err := shp.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open shapefile: %w", err)
	}
	defer shape.Close()

	fields := shape.Fields()
	names := make([]string, len(fields))
	for i, field := range fields {
		// Field names in shapefiles are byte arrays padded with nulls
		names[i] = strings.TrimRight(string(field.Name[:]), "\x00 ")
	}

	fc := geojson.NewFeatureCollection()
	skipped := 0

	for shape.Next() {
		n, p := shape.Shape()

		g := toOrb(p)
		if g == nil {
			skipped++
			continue
		}

		feature := geojson.NewFeature(g)
		for i, field := range fields {
			feature.Properties[names[i]] = attributeValue(field.Fieldtype, shape.ReadAttribute(n, i))
		}
		fc.Append(feature)
	}

	if skipped > 0 {
		log.Debug().Str("shapefile", path).Int("skipped", skipped).Msg("Skipped null or unsupported shapes")
	}

	return fc, nil
}

// attributeValue converts a DBF cell by column type.
func attributeValue(fieldType byte, raw string) any {
	raw = strings.TrimSpace(strings.Trim(raw, "\x00"))

	switch fieldType {
	case 'N', 'F':
		if raw == "" {
			return nil
		}
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return raw
		}
		return f
	case 'L':
		switch strings.ToUpper(raw) {
		case "T", "Y":
			return true
		case "F", "N":
			return false
		default:
			return nil
		}
	default:
		return raw
	}
}

func toOrb(p shp.Shape) orb.Geometry {
	switch g := p.(type) {
	case *shp.Point:
		return orb.Point{g.X, g.Y}
	case *shp.PointZ:
		return orb.Point{g.X, g.Y}
	case *shp.MultiPoint:
		mp := make(orb.MultiPoint, len(g.Points))
		for i, pt := range g.Points {
			mp[i] = orb.Point{pt.X, pt.Y}
		}
		return mp
	case *shp.PolyLine:
		return lines(g.Parts, g.Points)
	case *shp.PolyLineZ:
		return lines(g.Parts, g.Points)
	case *shp.Polygon:
		return polygons(g.Parts, g.Points)
	case *shp.PolygonZ:
		return polygons(g.Parts, g.Points)
	default:
		return nil
	}
}

// splitParts cuts the flat point list at the part start offsets.
func splitParts(parts []int32, points []shp.Point) [][]orb.Point {
	if len(parts) == 0 {
		parts = []int32{0}
	}

	out := make([][]orb.Point, 0, len(parts))
	for i, start := range parts {
		end := int32(len(points))
		if i+1 < len(parts) {
			end = parts[i+1]
		}
		if start < 0 || start > end || int(end) > len(points) {
			continue
		}

		part := make([]orb.Point, 0, end-start)
		for _, pt := range points[start:end] {
			part = append(part, orb.Point{pt.X, pt.Y})
		}
		out = append(out, part)
	}
	return out
}

func lines(parts []int32, points []shp.Point) orb.Geometry {
	split := splitParts(parts, points)
	if len(split) == 1 {
		return orb.LineString(split[0])
	}

	mls := make(orb.MultiLineString, len(split))
	for i, part := range split {
		mls[i] = orb.LineString(part)
	}
	return mls
}

// polygons groups rings into polygons. Shapefile outer rings are clockwise
// and holes counter-clockwise; GeoJSON wants the opposite, so rings are reversed.
func polygons(parts []int32, points []shp.Point) orb.Geometry {
	var mp orb.MultiPolygon

	for _, part := range splitParts(parts, points) {
		ring := orb.Ring(part)
		outer := ring.Orientation() != orb.CCW

		reverse(ring)
		if outer || len(mp) == 0 {
			mp = append(mp, orb.Polygon{ring})
			continue
		}
		last := len(mp) - 1
		mp[last] = append(mp[last], ring)
	}

	switch len(mp) {
	case 0:
		return nil
	case 1:
		return mp[0]
	default:
		return mp
	}
}

func reverse(ring orb.Ring) {
	for i, j := 0, len(ring)-1; i < j; i, j = i+1, j-1 {
		ring[i], ring[j] = ring[j], ring[i]
	}
}
