package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/woozymasta/geomap/internal/geo"
	"github.com/woozymasta/geomap/internal/style"

	"github.com/jessevdk/go-flags"
	"gopkg.in/yaml.v3"
)

type Options struct {
	Input  string `short:"i" long:"in" description:"Input GeoJSON file path (.geojson, .json, .yaml). Reads JSON from stdin if empty"`
	Output string `short:"o" long:"out" description:"Output file path. Writes to stdout if empty"`
	Format string `short:"f" long:"format" description:"Output format" choice:"json" choice:"yaml" default:"json"`
	Source string `short:"s" long:"source" description:"Renderer source id" default:"geojson-data"`
	Color  string `short:"C" long:"color" description:"Layer color" default:"#007cbf"`
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

	count, err := run(opts, os.Stdin, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if opts.Output != "" {
		fmt.Fprintf(os.Stderr, "Successfully derived %d layers to %s (format: %s)\n", count, opts.Output, opts.Format)
	}
}

// run derives the layer descriptors of one document and writes them out.
// It returns the number of layers.
func run(opts Options, stdin io.Reader, stdout io.Writer) (int, error) {
	var (
		fc  *geo.FeatureCollection
		err error
	)
	if opts.Input != "" {
		fc, err = geo.Load(opts.Input)
	} else {
		fc, err = geo.Decode(stdin)
	}
	if err != nil {
		return 0, err
	}

	summary, err := geo.Analyze(fc)
	if err != nil {
		return 0, err
	}

	layers := style.Derive(summary, style.WithSource(opts.Source), style.WithColor(opts.Color))

	// marshal
	var outputData []byte
	if opts.Format == "yaml" {
		outputData, err = yaml.Marshal(layers)
	} else {
		outputData, err = json.MarshalIndent(layers, "", "  ")
	}
	if err != nil {
		return 0, fmt.Errorf("marshal layers: %w", err)
	}

	if opts.Output != "" {
		return len(layers), os.WriteFile(opts.Output, outputData, 0644)
	}

	if !bytes.HasSuffix(outputData, []byte("\n")) {
		outputData = append(outputData, '\n')
	}
	_, err = stdout.Write(outputData)
	return len(layers), err
}
