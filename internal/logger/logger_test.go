package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestSetupJSON(t *testing.T) {
	var buf bytes.Buffer
	Logger{Level: "debug", Format: "json"}.SetupWriter(&buf)
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	log.Debug().Str("dataset", "parks").Msg("analyzed")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v (%q)", err, buf.String())
	}
	if entry["dataset"] != "parks" || entry["message"] != "analyzed" || entry["level"] != "debug" {
		t.Errorf("entry = %v", entry)
	}
}

func TestSetupFiltersLevel(t *testing.T) {
	var buf bytes.Buffer
	Logger{Level: "warn", Format: "json"}.SetupWriter(&buf)
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	log.Info().Msg("hidden")
	if buf.Len() != 0 {
		t.Errorf("info should be filtered at warn level, got %q", buf.String())
	}
}

func TestSetupInvalidLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	Logger{Level: "loud"}.SetupWriter(&buf)

	if zerolog.GlobalLevel() != zerolog.InfoLevel {
		t.Errorf("level = %s, want info", zerolog.GlobalLevel())
	}
}
