package server

import (
	"bytes"
	"sort"
	"text/template"

	"github.com/rs/zerolog/log"
	"github.com/woozymasta/geomap/assets"
	"github.com/woozymasta/geomap/internal/config"
	"github.com/woozymasta/geomap/internal/style"
)

// ServerContext holds dependencies for request handlers.
type ServerContext struct {
	Config   *config.Config
	Reserved *style.ReservedSet
	// DatasetResolver maps names and aliases to the index in Config.Datasets.
	DatasetResolver map[string]int
	IndexHTML       []byte
	Favicon         []byte
}

// NewServerContext sorts the configured datasets, sets up the name
// resolver and renders the map page with the access token.
func NewServerContext(cfg *config.Config, token string) *ServerContext {
	log.Info().Int("config_datasets_count", len(cfg.Datasets)).Msg("Initializing server context")

	sort.SliceStable(cfg.Datasets, func(i, j int) bool {
		idxI, idxJ := 999999, 999999
		if cfg.Datasets[i].Index != nil {
			idxI = *cfg.Datasets[i].Index
		}
		if cfg.Datasets[j].Index != nil {
			idxJ = *cfg.Datasets[j].Index
		}
		if idxI != idxJ {
			return idxI < idxJ
		}

		return cfg.Datasets[i].Name < cfg.Datasets[j].Name
	})

	resolver := make(map[string]int)
	for i, ds := range cfg.Datasets {
		if ds.Attribution == "" {
			cfg.Datasets[i].Attribution = cfg.Attribution
		}

		resolver[ds.Name] = i
		for _, alias := range ds.Aliases {
			resolver[alias] = i
		}

		log.Debug().
			Str("dataset", ds.Name).
			Strs("aliases", ds.Aliases).
			Msg("Dataset added to context")
	}

	reserved := style.NewReservedSet(cfg.ReservedLayers)

	log.Info().
		Int("datasets_count", len(cfg.Datasets)).
		Int("reserved_layers", reserved.Len()).
		Msg("Server context initialized successfully")

	return &ServerContext{
		Config:          cfg,
		Reserved:        reserved,
		DatasetResolver: resolver,
		IndexHTML:       renderIndex(assets.Index, token),
		Favicon:         assets.Favicon,
	}
}

// Dataset resolves a name or alias.
func (s *ServerContext) Dataset(name string) (config.Dataset, bool) {
	i, ok := s.DatasetResolver[name]
	if !ok {
		return config.Dataset{}, false
	}
	return s.Config.Datasets[i], true
}

// renderIndex fills the access token into the page.
func renderIndex(page []byte, token string) []byte {
	tmpl, err := template.New("index").Parse(string(page))
	if err != nil {
		log.Error().Err(err).Msg("Failed to parse index page, serving it as is")
		return page
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, struct{ Token string }{Token: token}); err != nil {
		log.Error().Err(err).Msg("Failed to render index page, serving it as is")
		return page
	}
	return buf.Bytes()
}
