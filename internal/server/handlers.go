// Package server handles HTTP requests and middleware.
package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"

	"github.com/woozymasta/geomap/internal/geo"
	"github.com/woozymasta/geomap/internal/processor"
)

const etagCap = 64

// Handler builds the full router: the JSON API, raw data and the map page.
func (s *ServerContext) Handler() http.Handler {
	mux := http.NewServeMux()

	humaConfig := huma.DefaultConfig("geomap API", "1.0.0")
	humaConfig.Info.Description = "GeoJSON datasets with their summaries and default map layers."
	// Disable $schema property in responses
	humaConfig.CreateHooks = []func(huma.Config) huma.Config{}
	s.RegisterRoutes(humago.New(mux, humaConfig))

	mux.HandleFunc("/favicon.svg", s.HandleFavicon)
	mux.HandleFunc("/data/", s.HandleData)
	mux.HandleFunc("/", s.HandleIndex)

	return RequestLogger(mux)
}

// HandleFavicon serves the site favicon.
func (s *ServerContext) HandleFavicon(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	_, _ = w.Write(s.Favicon)
}

// HandleIndex serves the main HTML application.
func (s *ServerContext) HandleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" && strings.Contains(r.URL.Path, ".") {
		http.NotFound(w, r)
		return
	}

	etag := fmt.Sprintf(`"%x"`, len(s.IndexHTML))

	if match := r.Header.Get("If-None-Match"); match == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "public, no-cache")
	_, _ = w.Write(s.IndexHTML)
}

// HandleData serves the GeoJSON document of a dataset.
func (s *ServerContext) HandleData(w http.ResponseWriter, r *http.Request) {
	// Path: /data/{name}.geojson
	name, ok := strings.CutSuffix(strings.TrimPrefix(r.URL.Path, "/data/"), ".geojson")
	if !ok || name == "" || strings.Contains(name, "/") {
		http.NotFound(w, r)
		return
	}

	ds, ok := s.Dataset(name)
	if !ok {
		http.NotFound(w, r)
		return
	}

	// processed file on disk
	if s.serveFile(w, r, s.Config.GeoJSONPath(ds), "application/geo+json") {
		return
	}
	// local source file
	if ds.Path != "" && !geo.IsYAML(ds.Path) && s.serveFile(w, r, ds.Path, "application/geo+json") {
		return
	}

	fc, err := processor.Open(s.Config, ds)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "application/geo+json")
	// Ignoring error as we cannot handle client disconnects
	_ = json.NewEncoder(w).Encode(fc)
}

// serveFile tries to serve a file from disk with ETag generation.
// It returns true if the file was found and served (or 304).
func (s *ServerContext) serveFile(w http.ResponseWriter, r *http.Request, path string, contentType string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	if info.IsDir() {
		return false
	}

	buf := make([]byte, 0, etagCap)
	buf = append(buf, '"')
	buf = strconv.AppendInt(buf, info.Size(), 16)
	buf = append(buf, '-')
	buf = strconv.AppendInt(buf, info.ModTime().UnixNano(), 16)
	buf = append(buf, '"')
	etag := string(buf)

	// check If-None-Match (client sent ETag)
	if match := r.Header.Get("If-None-Match"); match == etag {
		w.WriteHeader(http.StatusNotModified)
		return true
	}

	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "public, no-cache")

	if contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}

	http.ServeFile(w, r, path)
	return true
}
