package processor

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/woozymasta/geomap/internal/config"
	"github.com/woozymasta/geomap/internal/geo"
	"github.com/woozymasta/geomap/internal/style"
)

const lines = `{"type":"FeatureCollection","features":[
	{"type":"Feature","geometry":{"type":"LineString","coordinates":[[0,0],[1,1]]},"properties":{"lanes":2,"name":"A1"}},
	{"type":"Feature","geometry":{"type":"LineString","coordinates":[[1,1],[2,2]]},"properties":{"lanes":4}}
]}`

func readLayers(t *testing.T, path string) []style.LayerDescriptor {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var layers []style.LayerDescriptor
	if err := json.Unmarshal(data, &layers); err != nil {
		t.Fatal(err)
	}
	return layers
}

func TestProcessDatasetFromURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/geo+json")
		_, _ = w.Write([]byte(lines))
	}))
	defer srv.Close()

	cfg := &config.Config{OutputDir: t.TempDir(), Color: "#123456"}
	ds := config.Dataset{Name: "roads", URL: srv.URL}

	res, err := ProcessDataset(context.Background(), cfg, ds, Options{Client: srv.Client()})
	if err != nil {
		t.Fatalf("ProcessDataset failed: %v", err)
	}

	if res.Summary.Ranges["lanes"] != (geo.Range{Min: 2, Max: 4}) {
		t.Errorf("lanes = %+v", res.Summary.Ranges["lanes"])
	}

	layers := readLayers(t, filepath.Join(cfg.DatasetDir(ds), StylesFile))
	if len(layers) != 1 || layers[0].ID != "LineString-layer" || layers[0].Type != style.KindLine {
		t.Fatalf("layers = %+v", layers)
	}
	if layers[0].Paint["line-color"] != "#123456" || layers[0].Source != style.DefaultSource {
		t.Errorf("layer = %+v", layers[0])
	}

	if _, err := os.Stat(filepath.Join(cfg.DatasetDir(ds), SummaryFile)); err != nil {
		t.Errorf("summary not written: %v", err)
	}
}

func TestProcessDatasetSkipsExisting(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		_, _ = w.Write([]byte(lines))
	}))
	defer srv.Close()

	cfg := &config.Config{OutputDir: t.TempDir()}
	ds := config.Dataset{Name: "roads", URL: srv.URL}
	opts := Options{Client: srv.Client()}

	for i := 0; i < 2; i++ {
		if _, err := ProcessDataset(context.Background(), cfg, ds, opts); err != nil {
			t.Fatal(err)
		}
	}
	if calls != 1 {
		t.Errorf("downloads = %d, want 1", calls)
	}

	opts.Force = true
	if _, err := ProcessDataset(context.Background(), cfg, ds, opts); err != nil {
		t.Fatal(err)
	}
	if calls != 2 {
		t.Errorf("downloads = %d, want 2 after force", calls)
	}
}

func TestProcessDatasetBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	cfg := &config.Config{OutputDir: t.TempDir()}
	_, err := ProcessDataset(context.Background(), cfg, config.Dataset{Name: "x", URL: srv.URL}, Options{Client: srv.Client()})
	if err == nil {
		t.Error("expected error for 404")
	}
}

func TestProcessDatasetInvalidDocument(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"type":"FeatureCollection"}`))
	}))
	defer srv.Close()

	cfg := &config.Config{OutputDir: t.TempDir()}
	ds := config.Dataset{Name: "x", URL: srv.URL}
	_, err := ProcessDataset(context.Background(), cfg, ds, Options{Client: srv.Client()})
	if !errors.Is(err, geo.ErrInvalidInput) {
		t.Errorf("err = %v, want ErrInvalidInput", err)
	}
	if _, err := os.Stat(cfg.GeoJSONPath(ds)); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("invalid document written to disk: %v", err)
	}
}

func TestProcessDatasetKeepsSourceBytes(t *testing.T) {
	doc := `{"type":"FeatureCollection","name":"stops","bbox":[0,0,1,1],"features":[
		{"type":"Feature","id":"a1","geometry":{"type":"Point","coordinates":[0,0]},"properties":{"n":1},"extra":true}
	]}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(doc))
	}))
	defer srv.Close()

	dir := t.TempDir()
	src := filepath.Join(dir, "stops.geojson")
	if err := os.WriteFile(src, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := &config.Config{OutputDir: filepath.Join(dir, "out")}
	for _, ds := range []config.Dataset{
		{Name: "remote", URL: srv.URL},
		{Name: "local", Path: src},
	} {
		if _, err := ProcessDataset(context.Background(), cfg, ds, Options{Client: srv.Client()}); err != nil {
			t.Fatalf("%s: %v", ds.Name, err)
		}
		data, err := os.ReadFile(cfg.GeoJSONPath(ds))
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != doc {
			t.Errorf("%s: stored document differs from source:\n%s", ds.Name, data)
		}
	}
}

func TestProcessDatasetInlineAndPath(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.geojson")
	if err := os.WriteFile(src, []byte(lines), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := &config.Config{OutputDir: filepath.Join(dir, "out")}
	inline := config.Dataset{Name: "inline", Color: "#abcdef", Inline: &geo.FeatureCollection{
		Type: geo.TypeFeatureCollection,
		Features: []geo.Feature{
			{Type: "Feature", Geometry: &geo.Geometry{Type: "Polygon"}, Properties: map[string]any{"area": 10}},
		},
	}}

	res, err := ProcessDataset(context.Background(), cfg, inline, Options{})
	if err != nil {
		t.Fatalf("inline: %v", err)
	}
	if res.Layers[0].Type != style.KindFill || res.Layers[0].Paint["fill-color"] != "#abcdef" {
		t.Errorf("inline layers = %+v", res.Layers)
	}

	res, err = ProcessDataset(context.Background(), cfg, config.Dataset{Name: "file", Path: src}, Options{})
	if err != nil {
		t.Fatalf("path: %v", err)
	}
	if res.Summary.FeatureCount != 2 {
		t.Errorf("feature count = %d", res.Summary.FeatureCount)
	}
}

func TestProcessDatasetNoSource(t *testing.T) {
	cfg := &config.Config{OutputDir: t.TempDir()}
	_, err := ProcessDataset(context.Background(), cfg, config.Dataset{Name: "empty"}, Options{})
	if !errors.Is(err, ErrNoSource) {
		t.Errorf("err = %v, want ErrNoSource", err)
	}
}

func TestOpen(t *testing.T) {
	cfg := &config.Config{OutputDir: t.TempDir()}
	inline := &geo.FeatureCollection{Type: geo.TypeFeatureCollection, Features: []geo.Feature{}}

	fc, err := Open(cfg, config.Dataset{Name: "a", Inline: inline})
	if err != nil || fc != inline {
		t.Errorf("inline: fc=%v err=%v", fc, err)
	}

	if _, err := Open(cfg, config.Dataset{Name: "b", URL: "http://example.invalid"}); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want not exist", err)
	}
}
