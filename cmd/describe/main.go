package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/woozymasta/geomap/internal/geo"

	"github.com/jessevdk/go-flags"
)

type Options struct {
	Plain bool `short:"p" long:"plain" description:"Disable colors"`

	Args struct {
		File string `positional-arg-name:"file" description:"GeoJSON file (.geojson, .json, .yaml)"`
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

	if err := run(opts, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "An error occurred: %v\n", err)
		os.Exit(1)
	}
}

// run prints the report of one file. Documents that are not feature
// collections only get a diagnostic line.
func run(opts Options, w io.Writer) error {
	fc, err := geo.Load(opts.Args.File)
	if err != nil && !errors.Is(err, geo.ErrInvalidInput) {
		return err
	}

	var summary *geo.Summary
	if err == nil {
		summary, err = geo.Analyze(fc)
	}
	if errors.Is(err, geo.ErrInvalidInput) {
		_, werr := fmt.Fprintln(w, "The file does not contain valid GeoJSON data.")
		return werr
	}
	if err != nil {
		return err
	}

	r := NewReport(w)
	if opts.Plain {
		r.Plain()
	}
	return r.Write(summary)
}
