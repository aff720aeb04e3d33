// Package geo handles GeoJSON documents and their analysis.
package geo

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// TypeFeatureCollection is the only document discriminator the analyzer accepts.
const TypeFeatureCollection = "FeatureCollection"

// ErrInvalidInput is returned for documents without a feature collection
// discriminator or without a features sequence.
var ErrInvalidInput = errors.New("invalid geojson input")

// FeatureCollection represents a collection of geographic features.
// It follows the standard GeoJSON structure.
type FeatureCollection struct {
	ID       any       `json:"id,omitempty" yaml:"id,omitempty"`
	Type     string    `json:"type" yaml:"type"`
	BBox     []float64 `json:"bbox,omitempty" yaml:"bbox,omitempty"`
	Features []Feature `json:"features" yaml:"features"`
}

// Feature represents a single geographic feature with optional geometry and properties.
type Feature struct {
	ID         any            `json:"id,omitempty" yaml:"id,omitempty"`
	Properties map[string]any `json:"properties" yaml:"properties"`
	Geometry   *Geometry      `json:"geometry" yaml:"geometry"`
	Type       string         `json:"type" yaml:"type"`
	BBox       []float64      `json:"bbox,omitempty" yaml:"bbox,omitempty"`
}

// Geometry represents the geometry of a feature (Point, Polygon, etc.).
// Coordinates stay opaque: only the type matters for styling.
type Geometry struct {
	Coordinates any        `json:"coordinates,omitempty" yaml:"coordinates,omitempty"`
	Type        string     `json:"type" yaml:"type"`
	Geometries  []Geometry `json:"geometries,omitempty" yaml:"geometries,omitempty"`
}

// Validate checks the feature collection precondition.
func (fc *FeatureCollection) Validate() error {
	if fc == nil {
		return fmt.Errorf("%w: empty document", ErrInvalidInput)
	}
	if fc.Type == "" {
		return fmt.Errorf("%w: missing type", ErrInvalidInput)
	}
	if fc.Type != TypeFeatureCollection {
		return fmt.Errorf("%w: type %q is not %s", ErrInvalidInput, fc.Type, TypeFeatureCollection)
	}
	if fc.Features == nil {
		return fmt.Errorf("%w: missing features", ErrInvalidInput)
	}

	return nil
}

// Decode parses a JSON GeoJSON document from r.
func Decode(r io.Reader) (*FeatureCollection, error) {
	var fc FeatureCollection
	if err := json.NewDecoder(r).Decode(&fc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return &fc, nil
}

// DecodeYAML parses a YAML encoded feature collection.
func DecodeYAML(data []byte) (*FeatureCollection, error) {
	var fc FeatureCollection
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return &fc, nil
}

// Load reads a feature collection from disk. Files with a .yaml or .yml
// extension are parsed as YAML, everything else as JSON.
func Load(path string) (*FeatureCollection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if IsYAML(path) {
		return DecodeYAML(data)
	}
	return Decode(bytes.NewReader(data))
}

// IsYAML reports whether path has a .yaml or .yml extension.
func IsYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}

// Save marshals the feature collection and writes it to disk.
func Save(path string, fc *FeatureCollection) error {
	data, err := json.Marshal(fc)
	if err != nil {
		return err
	}

	return SaveRaw(path, data)
}

// SaveRaw writes an already encoded document to disk unchanged.
func SaveRaw(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
