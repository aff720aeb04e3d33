package main

import (
	"testing"

	"github.com/woozymasta/geomap/internal/config"
)

func TestSelectDatasets(t *testing.T) {
	datasets := []config.Dataset{
		{Name: "parks", Aliases: []string{"green"}},
		{Name: "roads"},
		{Name: "rivers"},
	}

	if got := selectDatasets(datasets, nil); len(got) != 3 {
		t.Fatalf("no limit: got %d datasets", len(got))
	}

	got := selectDatasets(datasets, []string{"rivers", "green", "parks", "missing"})
	if len(got) != 2 {
		t.Fatalf("got %d datasets, want 2", len(got))
	}
	if got[0].Name != "rivers" || got[1].Name != "parks" {
		t.Errorf("order = %s, %s", got[0].Name, got[1].Name)
	}
}
