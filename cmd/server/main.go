package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/woozymasta/geomap/internal/config"
	"github.com/woozymasta/geomap/internal/logger"
	"github.com/woozymasta/geomap/internal/mapview"
	"github.com/woozymasta/geomap/internal/server"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile  string `short:"c" long:"config"      env:"CONFIG_FILE"      description:"Path to configuration file" default:"config.yaml"`
	Addr        string `short:"a" long:"addr"        env:"LISTEN_ADDRESS"   description:"Address to listen on"       default:"0.0.0.0"`
	Port        int    `short:"p" long:"port"        env:"LISTEN_PORT"      description:"Port to listen on"          default:"8080"`
	Token       string `short:"t" long:"token"       env:"MAPBOX_TOKEN"     description:"Mapbox access token injected into the map page"`
	Breakpoints string `short:"b" long:"breakpoints" env:"ZOOM_BREAKPOINTS" description:"Zoom class breakpoints as mid,far"`
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

	// Setup Logging
	opts.Logger.Setup()

	// Load Config
	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if opts.Breakpoints != "" {
		bp, err := mapview.ParseBreakpoints(opts.Breakpoints)
		if err != nil {
			log.Fatal().Err(err).Msg("Invalid zoom breakpoints")
		}
		cfg.View.Breakpoints = bp
		cfg.View.Normalize()
	}

	if opts.Token == "" {
		log.Warn().Msg("No Mapbox token set, the map page will not load tiles")
	}

	srvCtx := server.NewServerContext(cfg, opts.Token)

	listenAddr := fmt.Sprintf("%s:%d", opts.Addr, opts.Port)
	srv := &http.Server{
		Addr:              listenAddr,
		Handler:           srvCtx.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Info().
		Str("addr", listenAddr).
		Int("datasets_loaded", len(cfg.Datasets)).
		Str("zoom_class", cfg.View.ZoomClass).
		Msg("Web server started")

	if err := srv.ListenAndServe(); err != nil {
		log.Fatal().Err(err).Msg("Server failed")
	}
}
