package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/woozymasta/geomap/internal/geo"
)

var (
	accentFg = lipgloss.Color("#7C3AED")
	dimFg    = lipgloss.Color("#8A97A6")
)

// Report renders a summary as labelled lines.
type Report struct {
	w          io.Writer
	labelStyle lipgloss.Style
	keyStyle   lipgloss.Style
	dimStyle   lipgloss.Style
}

func NewReport(w io.Writer) *Report {
	return &Report{
		w:          w,
		labelStyle: lipgloss.NewStyle().Foreground(accentFg).Bold(true),
		keyStyle:   lipgloss.NewStyle().Bold(true),
		dimStyle:   lipgloss.NewStyle().Foreground(dimFg),
	}
}

// Plain drops all styling.
func (r *Report) Plain() {
	r.labelStyle = lipgloss.NewStyle()
	r.keyStyle = lipgloss.NewStyle()
	r.dimStyle = lipgloss.NewStyle()
}

func (r *Report) Write(s *geo.Summary) error {
	var b strings.Builder

	r.line(&b, "GeoJSON type", s.Type)
	r.line(&b, "Total features", strconv.Itoa(s.FeatureCount))
	r.line(&b, "Geometry types present", strings.Join(s.GeometryTypes, ", "))
	b.WriteString(r.labelStyle.Render("Property ranges:"))
	b.WriteByte('\n')

	for _, key := range s.Keys() {
		rng := s.Ranges[key]
		fmt.Fprintf(&b, "- %s: %s %s %s %s\n",
			r.keyStyle.Render(key),
			r.dimStyle.Render("from"),
			formatNumber(rng.Min),
			r.dimStyle.Render("to"),
			formatNumber(rng.Max))
	}

	_, err := io.WriteString(r.w, b.String())
	return err
}

func (r *Report) line(b *strings.Builder, label, value string) {
	b.WriteString(r.labelStyle.Render(label + ":"))
	b.WriteByte(' ')
	b.WriteString(value)
	b.WriteByte('\n')
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
