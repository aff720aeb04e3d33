package main

import (
	"bytes"
	"os"
	"path/filepath"
	"text/template"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/js"
	"github.com/tdewolff/minify/v2/svg"

	"github.com/woozymasta/geomap/internal/logger"
)

// Options describes the command line interface.
type Options struct {
	Logger logger.Logger `group:"Logger options"`

	Assets string `short:"a" long:"assets" env:"GEOMAP_ASSETS" description:"Directory with style.css, script.js, favicon.svg and index.html.tpl" default:"assets"`
	Output string `short:"o" long:"output" description:"Output page, defaults to index.html in the assets directory"`
}

type PageData struct {
	CSS string
	JS  string
	SVG string
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

	out := opts.Output
	if out == "" {
		out = filepath.Join(opts.Assets, "index.html")
	}

	page, err := build(opts.Assets)
	if err != nil {
		log.Fatal().Err(err).Str("assets", opts.Assets).Msg("Failed to build page")
	}

	if err := os.WriteFile(out, page, 0644); err != nil {
		log.Fatal().Err(err).Str("path", out).Msg("Failed to write page")
	}

	log.Info().Str("path", out).Int("bytes", len(page)).Msg("Minify done")
}

// build minifies the stylesheet, script and icon and inlines them into the
// page template. The {{.Token}} placeholder survives for the server.
func build(dir string) ([]byte, error) {
	m := minify.New()
	m.AddFunc("text/css", css.Minify)
	m.AddFunc("text/html", html.Minify)
	m.AddFunc("text/javascript", js.Minify)
	m.AddFunc("image/svg+xml", svg.Minify)

	read := func(name, mediatype string) (string, error) {
		raw, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return "", err
		}
		return m.String(mediatype, string(raw))
	}

	cssMin, err := read("style.css", "text/css")
	if err != nil {
		return nil, err
	}
	jsMin, err := read("script.js", "text/javascript")
	if err != nil {
		return nil, err
	}
	svgMin, err := read("favicon.svg", "image/svg+xml")
	if err != nil {
		return nil, err
	}

	htmlRaw, err := os.ReadFile(filepath.Join(dir, "index.html.tpl"))
	if err != nil {
		return nil, err
	}

	tmpl, err := template.New("index").Parse(string(htmlRaw))
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, PageData{CSS: cssMin, JS: jsMin, SVG: svgMin}); err != nil {
		return nil, err
	}

	finalHTML, err := m.String("text/html", buf.String())
	if err != nil {
		return nil, err
	}
	return []byte(finalHTML), nil
}
