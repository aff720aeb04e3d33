package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/woozymasta/geomap/internal/config"
	"github.com/woozymasta/geomap/internal/convert"
	"github.com/woozymasta/geomap/internal/logger"
	"github.com/woozymasta/geomap/internal/processor"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile string   `short:"c" long:"config"  env:"CONFIG_FILE" description:"Path to configuration file" default:"config.yaml"`
	Limit      []string `short:"l" long:"limit"   env:"LIMIT_NAMES" description:"Limit processing to specific dataset names"`
	Mode       string   `short:"m" long:"mode"    env:"CONVERT_MODE" description:"Shapefile conversion backend" choice:"auto" choice:"ogr2ogr" choice:"native" default:"auto"`
	Ogr2ogr    string   `long:"ogr2ogr"           env:"OGR2OGR"     description:"ogr2ogr binary" default:"ogr2ogr"`
	Timeout    int      `short:"t" long:"timeout" env:"HTTP_TIMEOUT" description:"Download timeout in seconds" default:"30"`
	Force      bool     `short:"f" long:"force"   description:"Force overwrite of existing files"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	opts.Logger.Setup()

	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if opts.Timeout <= 0 {
		opts.Timeout = 30
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	procOpts := processor.Options{
		Client:    &http.Client{Timeout: time.Duration(opts.Timeout) * time.Second},
		Converter: &convert.Converter{Mode: convert.Mode(opts.Mode), Ogr2ogr: opts.Ogr2ogr},
		Force:     opts.Force,
	}

	queue := selectDatasets(cfg.Datasets, opts.Limit)

	log.Info().
		Int("datasets_total", len(cfg.Datasets)).
		Int("datasets_queued", len(queue)).
		Str("mode", opts.Mode).
		Msg("Starting loader")

	failed := 0
	for _, ds := range queue {
		if ctx.Err() != nil {
			log.Warn().Msg("Loader interrupted")
			break
		}
		if _, err := processor.ProcessDataset(ctx, cfg, ds, procOpts); err != nil {
			failed++
			log.Error().Err(err).Str("dataset", ds.Name).Msg("Failed to process dataset")
		}
	}

	if failed > 0 {
		log.Fatal().Int("failed", failed).Msg("Loader finished with errors")
	}
	log.Info().Msg("Loader finished successfully")
}

// selectDatasets filters datasets by --limit names or aliases, keeping the
// limit order and dropping repeats.
func selectDatasets(datasets []config.Dataset, limit []string) []config.Dataset {
	if len(limit) == 0 {
		return datasets
	}

	available := make(map[string]config.Dataset)
	for _, ds := range datasets {
		available[ds.Name] = ds
		for _, alias := range ds.Aliases {
			available[alias] = ds
		}
	}

	selected := make([]config.Dataset, 0, len(limit))
	seen := make(map[string]bool)

	for _, name := range limit {
		ds, ok := available[name]
		if !ok {
			log.Error().
				Str("name", name).
				Msg("Dataset specified in --limit not found in configuration")
			continue
		}
		if seen[ds.Name] {
			continue
		}
		seen[ds.Name] = true
		selected = append(selected, ds)
	}

	return selected
}
