package server

import (
	"context"
	"errors"
	"net/url"
	"os"
	"strconv"

	"github.com/danielgtaylor/huma/v2"
	"github.com/rs/zerolog/log"

	"github.com/woozymasta/geomap/internal/config"
	"github.com/woozymasta/geomap/internal/geo"
	"github.com/woozymasta/geomap/internal/mapview"
	"github.com/woozymasta/geomap/internal/processor"
	"github.com/woozymasta/geomap/internal/style"
)

// Types

type DatasetInput struct {
	Name string `path:"name" doc:"Dataset name or alias" example:"parks"`
}

type ViewInput struct {
	DatasetInput
	Fit       bool    `query:"fit" default:"true" doc:"Center and zoom on the dataset bounds"`
	Width     int     `query:"width" default:"1024" minimum:"1" doc:"Viewport width in pixels"`
	Height    int     `query:"height" default:"768" minimum:"1" doc:"Viewport height in pixels"`
	Padding   float64 `query:"padding" default:"40" minimum:"0" doc:"Viewport padding in pixels"`
	Latitude  string  `query:"latitude" doc:"Latitude override"`
	Longitude string  `query:"longitude" doc:"Longitude override"`
	Zoom      string  `query:"zoom" doc:"Zoom override"`
	Bearing   string  `query:"bearing" doc:"Bearing override"`
	Pitch     string  `query:"pitch" doc:"Pitch override"`
}

type PopupInput struct {
	DatasetInput
	Feature int `query:"feature" minimum:"0" doc:"Feature index in the collection"`
}

type PopupBody struct {
	HTML string `json:"html" doc:"Rendered popup content"`
}

type LayersBody struct {
	Layers []string `json:"layers" doc:"Renderer layer ids"`
}

// RegisterRoutes registers the dataset and layer routes.
func (s *ServerContext) RegisterRoutes(api huma.API) {
	huma.Get(api, "/api/datasets", s.ListDatasets, huma.OperationTags("datasets"))
	huma.Get(api, "/api/datasets/{name}/summary", s.GetSummary, huma.OperationTags("datasets"))
	huma.Get(api, "/api/datasets/{name}/styles", s.GetStyles, huma.OperationTags("datasets"))
	huma.Get(api, "/api/datasets/{name}/view", s.GetView, huma.OperationTags("datasets"))
	huma.Get(api, "/api/datasets/{name}/popup", s.GetPopup, huma.OperationTags("datasets"))
	huma.Post(api, "/api/layers/custom", s.CustomLayers, huma.OperationTags("layers"))
}

// Handlers

func (s *ServerContext) ListDatasets(ctx context.Context, input *struct{}) (*struct{ Body []config.Dataset }, error) {
	return &struct{ Body []config.Dataset }{Body: s.Config.Datasets}, nil
}

func (s *ServerContext) GetSummary(ctx context.Context, input *DatasetInput) (*struct{ Body *geo.Summary }, error) {
	_, fc, err := s.open(input.Name)
	if err != nil {
		return nil, err
	}

	summary, err := analyze(input.Name, fc)
	if err != nil {
		return nil, err
	}
	return &struct{ Body *geo.Summary }{Body: summary}, nil
}

func (s *ServerContext) GetStyles(ctx context.Context, input *DatasetInput) (*struct{ Body []style.LayerDescriptor }, error) {
	ds, fc, err := s.open(input.Name)
	if err != nil {
		return nil, err
	}

	summary, err := analyze(input.Name, fc)
	if err != nil {
		return nil, err
	}
	layers := style.Derive(summary, processor.LayerOptions(s.Config, ds)...)
	return &struct{ Body []style.LayerDescriptor }{Body: layers}, nil
}

func (s *ServerContext) GetView(ctx context.Context, input *ViewInput) (*struct{ Body mapview.View }, error) {
	_, fc, err := s.open(input.Name)
	if err != nil {
		return nil, err
	}

	view := s.Config.View
	view.SearchBounds = append([]float64(nil), view.SearchBounds...)
	view.Normalize()

	if input.Fit {
		if bound, ok := geo.Bounds(fc); ok {
			view.Fit(bound, float64(input.Width), float64(input.Height), input.Padding)
		}
	}

	q := url.Values{}
	for key, value := range map[string]string{
		"latitude":  input.Latitude,
		"longitude": input.Longitude,
		"zoom":      input.Zoom,
		"bearing":   input.Bearing,
		"pitch":     input.Pitch,
	} {
		if value != "" {
			q.Set(key, value)
		}
	}
	view.ApplyQuery(q)

	return &struct{ Body mapview.View }{Body: view}, nil
}

func (s *ServerContext) GetPopup(ctx context.Context, input *PopupInput) (*struct{ Body PopupBody }, error) {
	ds, fc, err := s.open(input.Name)
	if err != nil {
		return nil, err
	}
	if err := fc.Validate(); err != nil {
		return nil, huma.Error422UnprocessableEntity(err.Error())
	}
	if input.Feature >= len(fc.Features) {
		return nil, huma.Error404NotFound("feature " + strconv.Itoa(input.Feature) + " not found")
	}

	props := fc.Features[input.Feature].Properties
	html := mapview.DefaultPopup(props)
	if ds.Popup != "" {
		html = mapview.RenderPopup(ds.Popup, props)
	}
	return &struct{ Body PopupBody }{Body: PopupBody{HTML: html}}, nil
}

func (s *ServerContext) CustomLayers(ctx context.Context, input *struct{ Body LayersBody }) (*struct{ Body LayersBody }, error) {
	return &struct{ Body LayersBody }{Body: LayersBody{Layers: s.Reserved.Custom(input.Body.Layers)}}, nil
}

// open resolves a dataset and loads its collection.
func (s *ServerContext) open(name string) (config.Dataset, *geo.FeatureCollection, error) {
	ds, ok := s.Dataset(name)
	if !ok {
		return config.Dataset{}, nil, huma.Error404NotFound("dataset not found")
	}

	fc, err := processor.Open(s.Config, ds)
	switch {
	case err == nil:
		return ds, fc, nil
	case errors.Is(err, os.ErrNotExist):
		return ds, nil, huma.Error404NotFound(err.Error())
	case errors.Is(err, geo.ErrInvalidInput):
		return ds, nil, huma.Error422UnprocessableEntity(err.Error())
	default:
		log.Error().Err(err).Str("dataset", ds.Name).Msg("Failed to open dataset")
		return ds, nil, huma.Error500InternalServerError("failed to open dataset")
	}
}

func analyze(name string, fc *geo.FeatureCollection) (*geo.Summary, error) {
	summary, err := geo.Analyze(fc)
	if err != nil {
		log.Warn().Err(err).Str("dataset", name).Msg("Dataset is not a feature collection")
		return nil, huma.Error422UnprocessableEntity(err.Error())
	}
	return summary, nil
}
