package geo

import (
	"encoding/json"
	"math"
	"sort"
)

// Range is the observed numeric span of a property.
type Range struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

// Summary is the result of a single pass over a feature collection.
type Summary struct {
	Ranges        map[string]Range `json:"property_ranges" yaml:"property_ranges"`
	Type          string           `json:"type" yaml:"type"`
	GeometryTypes []string         `json:"geometry_types" yaml:"geometry_types"` // first-seen order, unique
	FeatureCount  int              `json:"feature_count" yaml:"feature_count"`
}

// Analyze collects the distinct geometry types and the numeric property
// ranges of a feature collection. Non-numeric property values are ignored.
func Analyze(fc *FeatureCollection) (*Summary, error) {
	if err := fc.Validate(); err != nil {
		return nil, err
	}

	s := &Summary{
		Type:          fc.Type,
		FeatureCount:  len(fc.Features),
		GeometryTypes: []string{},
		Ranges:        make(map[string]Range),
	}
	seen := make(map[string]struct{})

	for i := range fc.Features {
		feature := &fc.Features[i]

		if feature.Geometry != nil && feature.Geometry.Type != "" {
			if _, ok := seen[feature.Geometry.Type]; !ok {
				seen[feature.Geometry.Type] = struct{}{}
				s.GeometryTypes = append(s.GeometryTypes, feature.Geometry.Type)
			}
		}

		for key, raw := range feature.Properties {
			value, ok := numeric(raw)
			if !ok {
				continue
			}

			r, exists := s.Ranges[key]
			if !exists {
				s.Ranges[key] = Range{Min: value, Max: value}
				continue
			}
			if value < r.Min {
				r.Min = value
			}
			if value > r.Max {
				r.Max = value
			}
			s.Ranges[key] = r
		}
	}

	return s, nil
}

// HasGeometryType reports whether t was observed.
func (s *Summary) HasGeometryType(t string) bool {
	for _, g := range s.GeometryTypes {
		if g == t {
			return true
		}
	}
	return false
}

// Keys returns the range keys in lexical order.
func (s *Summary) Keys() []string {
	keys := make([]string, 0, len(s.Ranges))
	for k := range s.Ranges {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// numeric converts decoder-produced numbers to float64.
// encoding/json yields float64 or json.Number, yaml.v3 yields int and float64.
// NaN and infinities are not numbers here: they cannot be encoded as JSON.
func numeric(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int8:
		f = float64(n)
	case int16:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint:
		f = float64(n)
	case uint8:
		f = float64(n)
	case uint16:
		f = float64(n)
	case uint32:
		f = float64(n)
	case uint64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
