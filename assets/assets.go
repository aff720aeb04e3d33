// Package assets embeds the map page served at the site root.
package assets

import _ "embed"

// Index is the map page with style.css, script.js and favicon.svg inlined
// into index.html.tpl. cmd/minify rebuilds it minified.
//
//go:embed index.html
var Index []byte

// Favicon is the site icon.
//
//go:embed favicon.svg
var Favicon []byte
