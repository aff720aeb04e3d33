// Package convert turns shapefile folders into GeoJSON documents, either
// through the ogr2ogr binary or with the built-in shapefile reader.
package convert

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
)

// Mode selects the conversion backend.
type Mode string

// Conversion backends.
const (
	ModeAuto    Mode = "auto"
	ModeOgr2ogr Mode = "ogr2ogr"
	ModeNative  Mode = "native"
)

// ErrNoShapefile is returned when a folder holds no .shp file.
var ErrNoShapefile = errors.New("no .shp file found")

// Converter converts shapefile folders to GeoJSON.
type Converter struct {
	// Mode defaults to ModeAuto.
	Mode Mode
	// Ogr2ogr is the binary name or path, "ogr2ogr" by default.
	Ogr2ogr string
}

// Result describes a finished conversion.
type Result struct {
	Shapefile string
	GeoJSON   string
	Mode      Mode
}

// FindShapefile returns the first .shp file of dir in lexical order.
func FindShapefile(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("read directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".shp") {
			names = append(names, entry.Name())
		}
	}
	if len(names) == 0 {
		return "", fmt.Errorf("%s: %w", dir, ErrNoShapefile)
	}

	sort.Strings(names)
	return filepath.Join(dir, names[0]), nil
}

// OutputPath returns the GeoJSON path written next to shpPath.
func OutputPath(shpPath string) string {
	base := strings.TrimSuffix(filepath.Base(shpPath), filepath.Ext(shpPath))
	return filepath.Join(filepath.Dir(shpPath), base+".geojson")
}

// Convert finds the shapefile in dir and writes <name>.geojson beside it.
func (c *Converter) Convert(ctx context.Context, dir string) (Result, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return Result{}, fmt.Errorf("shapefile folder: %w", err)
	}
	if !info.IsDir() {
		return Result{}, fmt.Errorf("shapefile folder %s: not a directory", dir)
	}

	shpPath, err := FindShapefile(dir)
	if err != nil {
		return Result{}, err
	}

	return c.ConvertFile(ctx, shpPath, OutputPath(shpPath))
}

// ConvertFile converts a single shapefile to out.
func (c *Converter) ConvertFile(ctx context.Context, shpPath, out string) (Result, error) {
	mode := c.resolveMode()
	res := Result{Shapefile: shpPath, GeoJSON: out, Mode: mode}

	log.Debug().
		Str("shapefile", shpPath).
		Str("geojson", out).
		Str("mode", string(mode)).
		Msg("Converting shapefile")

	var err error
	switch mode {
	case ModeOgr2ogr:
		err = c.runOgr2ogr(ctx, shpPath, out)
	case ModeNative:
		err = convertNative(shpPath, out)
	default:
		err = fmt.Errorf("unknown conversion mode %q", mode)
	}
	if err != nil {
		return Result{}, err
	}

	return res, nil
}

func (c *Converter) binary() string {
	if c.Ogr2ogr != "" {
		return c.Ogr2ogr
	}
	return "ogr2ogr"
}

// resolveMode picks ogr2ogr when it is on PATH in auto mode.
func (c *Converter) resolveMode() Mode {
	switch c.Mode {
	case ModeOgr2ogr, ModeNative:
		return c.Mode
	case "", ModeAuto:
		if _, err := exec.LookPath(c.binary()); err == nil {
			return ModeOgr2ogr
		}
		log.Debug().Str("binary", c.binary()).Msg("ogr2ogr not found, using native reader")
		return ModeNative
	default:
		return c.Mode
	}
}

func (c *Converter) runOgr2ogr(ctx context.Context, shpPath, out string) error {
	// ogr2ogr refuses to overwrite an existing GeoJSON
	if err := os.Remove(out); err != nil && !os.IsNotExist(err) {
		return err
	}

	cmd := exec.CommandContext(ctx, c.binary(), "-f", "GeoJSON", out, shpPath)
	output, err := cmd.CombinedOutput()
	if err != nil {
		msg := strings.TrimSpace(string(output))
		if errors.Is(err, exec.ErrNotFound) {
			return fmt.Errorf("ogr2ogr is not installed: %w", err)
		}
		if msg == "" {
			msg = err.Error()
		}
		return fmt.Errorf("ogr2ogr failed: %s", msg)
	}

	if msg := strings.TrimSpace(string(output)); msg != "" {
		log.Warn().Str("shapefile", shpPath).Str("output", msg).Msg("ogr2ogr reported warnings")
	}

	return nil
}
