package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/woozymasta/geomap/internal/convert"
	"github.com/woozymasta/geomap/internal/logger"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	Mode    string `short:"m" long:"mode" env:"CONVERT_MODE" description:"Conversion backend" choice:"auto" choice:"ogr2ogr" choice:"native" default:"auto"`
	Ogr2ogr string `long:"ogr2ogr"        env:"OGR2OGR"      description:"ogr2ogr binary" default:"ogr2ogr"`

	Args struct {
		Folder string `positional-arg-name:"folder" description:"Folder holding the .shp file"`
	} `positional-args:"yes" required:"yes"`
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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	conv := &convert.Converter{Mode: convert.Mode(opts.Mode), Ogr2ogr: opts.Ogr2ogr}
	res, err := conv.Convert(ctx, opts.Args.Folder)
	if err != nil {
		log.Fatal().Err(err).Str("folder", opts.Args.Folder).Msg("Conversion failed")
	}

	log.Info().
		Str("shapefile", res.Shapefile).
		Str("geojson", res.GeoJSON).
		Str("mode", string(res.Mode)).
		Msg("Shapefile converted")
}
