// Package style derives default renderer layers from a GeoJSON summary.
package style

import "github.com/woozymasta/geomap/internal/geo"

// RenderKind is the primitive a renderer uses to draw a geometry type.
type RenderKind string

// Render kinds understood by Mapbox GL compatible renderers.
const (
	KindCircle RenderKind = "circle"
	KindLine   RenderKind = "line"
	KindFill   RenderKind = "fill"
)

const (
	// DefaultSource is the source id the map page registers the dataset under.
	DefaultSource = "geojson-data"
	// DefaultColor is used for every paint color unless overridden.
	DefaultColor = "#007cbf"
)

// Paint maps renderer paint properties to constant values.
type Paint map[string]any

// LayerDescriptor tells a renderer how to draw a data source.
type LayerDescriptor struct {
	Paint  Paint      `json:"paint" yaml:"paint"`
	ID     string     `json:"id" yaml:"id"`
	Type   RenderKind `json:"type" yaml:"type"`
	Source string     `json:"source" yaml:"source"`
}

type options struct {
	source string
	color  string
}

// Option customizes Derive.
type Option func(*options)

// WithSource sets the source id referenced by every descriptor.
func WithSource(source string) Option {
	return func(o *options) {
		if source != "" {
			o.source = source
		}
	}
}

// WithColor replaces the default paint color.
func WithColor(color string) Option {
	return func(o *options) {
		if color != "" {
			o.color = color
		}
	}
}

// KindFor maps a geometry type to its render kind.
// Unknown types fall back to circle.
func KindFor(geometryType string) RenderKind {
	switch geometryType {
	case "Point", "MultiPoint":
		return KindCircle
	case "LineString", "MultiLineString":
		return KindLine
	case "Polygon", "MultiPolygon":
		return KindFill
	default:
		return KindCircle
	}
}

// LayerID returns the descriptor id for a geometry type.
func LayerID(geometryType string) string {
	return geometryType + "-layer"
}

// DefaultPaint returns the constant paint for a render kind.
func DefaultPaint(kind RenderKind, color string) Paint {
	switch kind {
	case KindLine:
		return Paint{
			"line-width": 2,
			"line-color": color,
		}
	case KindFill:
		return Paint{
			"fill-color":   color,
			"fill-opacity": 0.5,
		}
	default:
		return Paint{
			"circle-radius":  5,
			"circle-color":   color,
			"circle-opacity": 0.8,
		}
	}
}

// Derive produces one layer descriptor per geometry type of the summary,
// in the summary's order. Paint values are constants; the property ranges
// are not consulted.
func Derive(s *geo.Summary, opts ...Option) []LayerDescriptor {
	o := options{source: DefaultSource, color: DefaultColor}
	for _, opt := range opts {
		opt(&o)
	}

	if s == nil {
		return []LayerDescriptor{}
	}

	layers := make([]LayerDescriptor, 0, len(s.GeometryTypes))
	for _, t := range s.GeometryTypes {
		kind := KindFor(t)
		layers = append(layers, LayerDescriptor{
			ID:     LayerID(t),
			Type:   kind,
			Source: o.source,
			Paint:  DefaultPaint(kind, o.color),
		})
	}

	return layers
}
