// Package config handles configuration loading and shared data structures.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/woozymasta/geomap/internal/geo"
	"github.com/woozymasta/geomap/internal/mapview"

	"gopkg.in/yaml.v3"
)

// Config represents the root configuration file structure.
type Config struct {
	Attribution string `yaml:"attribution,omitempty" json:"attribution,omitempty"`
	// OutputDir receives converted and derived dataset files.
	OutputDir string `yaml:"output_dir,omitempty" json:"-"`
	// Source is the renderer source id the layers refer to.
	Source string `yaml:"source,omitempty" json:"source,omitempty"`
	Color  string `yaml:"color,omitempty" json:"color,omitempty"`

	// ReservedLayers replaces the built-in base map layer list when set.
	ReservedLayers []string `yaml:"reserved_layers,omitempty" json:"-"`

	Datasets []Dataset   `yaml:"datasets" json:"datasets"`
	View     mapview.View `yaml:"view,omitempty" json:"-"`
}

// Dataset represents a single GeoJSON data source.
type Dataset struct {
	Index *int `yaml:"index,omitempty" json:"index,omitempty"`

	// defining GeoJSON directly in config.yaml
	Inline *geo.FeatureCollection `yaml:"geojson,omitempty" json:"-"`

	Name        string   `yaml:"name" json:"name"`
	Title       string   `yaml:"title,omitempty" json:"title,omitempty"`
	Path        string   `yaml:"path,omitempty" json:"-"`      // local .geojson/.json/.yaml file
	Shapefile   string   `yaml:"shapefile,omitempty" json:"-"` // folder holding a .shp
	URL         string   `yaml:"url,omitempty" json:"-"`
	Popup       string   `yaml:"popup,omitempty" json:"-"` // ${key} template
	Color       string   `yaml:"color,omitempty" json:"color,omitempty"`
	Attribution string   `yaml:"attribution,omitempty" json:"attribution,omitempty"`
	Aliases     []string `yaml:"aliases,omitempty" json:"-"`
}

// Load reads and parses the YAML configuration file from the specified path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if cfg.OutputDir == "" {
		cfg.OutputDir = "data"
	}
	cfg.View.Normalize()

	return &cfg, nil
}

// Validate checks dataset names are present and unique, aliases included.
func (c *Config) Validate() error {
	names := make(map[string]struct{})
	claim := func(name string) error {
		if _, ok := names[name]; ok {
			return fmt.Errorf("duplicate dataset name or alias %q", name)
		}
		names[name] = struct{}{}
		return nil
	}

	for _, ds := range c.Datasets {
		if ds.Name == "" {
			return fmt.Errorf("dataset without name")
		}
		if err := claim(ds.Name); err != nil {
			return err
		}
		for _, alias := range ds.Aliases {
			if err := claim(alias); err != nil {
				return err
			}
		}
	}

	return nil
}

// GeoJSONPath is where the processed collection of a dataset lives.
func (c *Config) GeoJSONPath(ds Dataset) string {
	return filepath.Join(c.OutputDir, ds.Name, ds.Name+".geojson")
}

// DatasetDir is the output directory of a dataset.
func (c *Config) DatasetDir(ds Dataset) string {
	return filepath.Join(c.OutputDir, ds.Name)
}
