// Package processor prepares configured datasets: it fetches or converts
// their sources into GeoJSON and writes the derived summary and layers.
package processor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/woozymasta/geomap/internal/config"
	"github.com/woozymasta/geomap/internal/convert"
	"github.com/woozymasta/geomap/internal/geo"
	"github.com/woozymasta/geomap/internal/style"

	"github.com/rs/zerolog/log"
)

// ErrNoSource is returned for datasets without inline data, path, shapefile or URL.
var ErrNoSource = errors.New("dataset has no source")

// Output file names written next to the dataset GeoJSON.
const (
	SummaryFile = "summary.json"
	StylesFile  = "styles.json"
)

// Options controls dataset processing.
type Options struct {
	Client    *http.Client
	Converter *convert.Converter
	Force     bool
}

// Result is the outcome of processing one dataset.
type Result struct {
	Summary *geo.Summary
	GeoJSON string
	Layers  []style.LayerDescriptor
}

// ProcessDataset materializes the dataset GeoJSON in the output directory,
// analyzes it and writes summary.json and styles.json beside it.
func ProcessDataset(ctx context.Context, cfg *config.Config, ds config.Dataset, opts Options) (*Result, error) {
	destDir := cfg.DatasetDir(ds)
	destFile := cfg.GeoJSONPath(ds)

	if _, err := os.Stat(destFile); err == nil && !opts.Force {
		log.Debug().Str("dataset", ds.Name).Msg("GeoJSON exists, skipping source")
	} else {
		fc, raw, err := fetchSource(ctx, ds, opts)
		if err != nil {
			return nil, err
		}
		if err := fc.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", ds.Name, err)
		}

		// JSON sources are kept as published, others are encoded from fc
		if raw != nil {
			err = geo.SaveRaw(destFile, raw)
		} else {
			err = geo.Save(destFile, fc)
		}
		if err != nil {
			return nil, fmt.Errorf("save geojson: %w", err)
		}
	}

	fc, err := geo.Load(destFile)
	if err != nil {
		return nil, err
	}

	summary, err := geo.Analyze(fc)
	if err != nil {
		return nil, err
	}
	layers := style.Derive(summary, LayerOptions(cfg, ds)...)

	if err := writeJSON(filepath.Join(destDir, SummaryFile), summary); err != nil {
		return nil, err
	}
	if err := writeJSON(filepath.Join(destDir, StylesFile), layers); err != nil {
		return nil, err
	}

	log.Info().
		Str("dataset", ds.Name).
		Int("features", summary.FeatureCount).
		Strs("geometry_types", summary.GeometryTypes).
		Int("numeric_properties", len(summary.Ranges)).
		Int("layers", len(layers)).
		Msg("Dataset processed")

	return &Result{Summary: summary, GeoJSON: destFile, Layers: layers}, nil
}

// LayerOptions returns the style options configured for a dataset.
func LayerOptions(cfg *config.Config, ds config.Dataset) []style.Option {
	color := cfg.Color
	if ds.Color != "" {
		color = ds.Color
	}
	return []style.Option{style.WithSource(cfg.Source), style.WithColor(color)}
}

// Open returns the dataset collection without writing anything: the
// processed GeoJSON when present, otherwise inline data or the local path.
func Open(cfg *config.Config, ds config.Dataset) (*geo.FeatureCollection, error) {
	if _, err := os.Stat(cfg.GeoJSONPath(ds)); err == nil {
		return geo.Load(cfg.GeoJSONPath(ds))
	}

	switch {
	case ds.Inline != nil:
		return ds.Inline, nil
	case ds.Path != "":
		return geo.Load(ds.Path)
	default:
		return nil, fmt.Errorf("%s: %w (run the loader first)", ds.Name, os.ErrNotExist)
	}
}

// fetchSource resolves the dataset source by priority: inline, path, shapefile, URL.
// raw holds the source bytes for JSON documents and is nil otherwise.
func fetchSource(ctx context.Context, ds config.Dataset, opts Options) (*geo.FeatureCollection, []byte, error) {
	switch {
	case ds.Inline != nil:
		log.Info().Str("dataset", ds.Name).Msg("Using inline GeoJSON from config")
		return ds.Inline, nil, nil

	case ds.Path != "":
		log.Info().Str("dataset", ds.Name).Str("path", ds.Path).Msg("Reading GeoJSON file")
		return readFile(ds.Path)

	case ds.Shapefile != "":
		conv := opts.Converter
		if conv == nil {
			conv = &convert.Converter{}
		}
		res, err := conv.Convert(ctx, ds.Shapefile)
		if err != nil {
			return nil, nil, fmt.Errorf("convert %s: %w", ds.Shapefile, err)
		}
		log.Info().
			Str("dataset", ds.Name).
			Str("shapefile", res.Shapefile).
			Str("mode", string(res.Mode)).
			Msg("Shapefile converted")
		return readFile(res.GeoJSON)

	case ds.URL != "":
		log.Info().Str("dataset", ds.Name).Str("source", ds.URL).Msg("Downloading GeoJSON")
		client := opts.Client
		if client == nil {
			client = http.DefaultClient
		}
		return fetchGeoJSON(ctx, client, ds.URL)

	default:
		return nil, nil, fmt.Errorf("%s: %w", ds.Name, ErrNoSource)
	}
}

// readFile loads a local document, keeping its bytes unless it is YAML.
func readFile(path string) (*geo.FeatureCollection, []byte, error) {
	if geo.IsYAML(path) {
		fc, err := geo.Load(path)
		return fc, nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	fc, err := geo.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, nil, err
	}
	return fc, data, nil
}

// writeJSON marshals v with indentation and writes it to path.
func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	// We care about write errors on close
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			log.Error().Err(closeErr).Str("path", path).Msg("Failed to close file")
		}
	}()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
