package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.SensorMode != SensorWebsocket {
		t.Fatalf("sensor mode = %q, want %q", cfg.SensorMode, SensorWebsocket)
	}
	if cfg.SampleTTL != 500*time.Millisecond {
		t.Fatalf("sample ttl = %v, want 500ms", cfg.SampleTTL)
	}
	if cfg.ScoresPath != "touchgame.db" {
		t.Fatalf("scores path = %q", cfg.ScoresPath)
	}
}

func TestParseOverrides(t *testing.T) {
	t.Setenv("TOUCHGAME_SENSOR", "mouse")
	t.Setenv("TOUCHGAME_SAMPLE_TTL", "0s")
	t.Setenv("TOUCHGAME_MUTE", "true")
	t.Setenv("TOUCHGAME_SEED", "42")

	cfg, err := Parse()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.SensorMode != SensorMouse || cfg.SampleTTL != 0 || !cfg.Muted || cfg.Seed != 42 {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestParseError(t *testing.T) {
	t.Setenv("TOUCHGAME_SAMPLE_TTL", "soon")

	_, err := Parse()
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestParseRejectsUnknownSensor(t *testing.T) {
	t.Setenv("TOUCHGAME_SENSOR", "kinect")

	if _, err := Parse(); err == nil {
		t.Fatal("expected unknown sensor mode error")
	}
}

func TestLoadReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("TOUCHGAME_SCORES_DB=from-dotenv.db\n"), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Chdir(dir)
	// godotenv sets the variable directly; register cleanup through t.Setenv.
	t.Setenv("TOUCHGAME_SCORES_DB", "")
	os.Unsetenv("TOUCHGAME_SCORES_DB")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ScoresPath != "from-dotenv.db" {
		t.Fatalf("scores path = %q, want from-dotenv.db", cfg.ScoresPath)
	}
}

func TestLoadWithoutDotEnv(t *testing.T) {
	t.Chdir(t.TempDir())

	if _, err := Load(); err != nil {
		t.Fatalf("load without .env: %v", err)
	}
}
