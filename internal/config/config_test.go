package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	defaults := Default("/data/fardplan.db", "/data/board-cache.json")
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"), defaults)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Database.Path != "/data/fardplan.db" {
		t.Fatalf("unexpected db path %q", cfg.Database.Path)
	}
	if cfg.Server.Bind != "127.0.0.1:8080" {
		t.Fatalf("unexpected bind %q", cfg.Server.Bind)
	}
	if cfg.QuietWindow() != 2*time.Second {
		t.Fatalf("unexpected quiet window %v", cfg.QuietWindow())
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[database]
path = "/custom/board.db"

[server]
bind = "0.0.0.0:9191"
read_only = true

[autosave]
quiet_window_ms = 500

[board]
default_title = "Team Plan"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path, Default("/data/fardplan.db", "/data/board-cache.json"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Database.Path != "/custom/board.db" {
		t.Fatalf("unexpected db path %q", cfg.Database.Path)
	}
	if !cfg.Server.ReadOnly {
		t.Fatal("expected read_only override")
	}
	if cfg.QuietWindow() != 500*time.Millisecond {
		t.Fatalf("unexpected quiet window %v", cfg.QuietWindow())
	}
	if cfg.Board.DefaultTitle != "Team Plan" {
		t.Fatalf("unexpected title %q", cfg.Board.DefaultTitle)
	}
	// Sections absent from the file keep the defaults.
	if cfg.Cache.Path != "/data/board-cache.json" {
		t.Fatalf("unexpected cache path %q", cfg.Cache.Path)
	}
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[database]
path = ""
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path, Default("/data/fardplan.db", "")); err == nil {
		t.Fatal("expected validation error for empty database path")
	}
}

func TestValidateRejectsNegativeQuietWindow(t *testing.T) {
	cfg := Default("/data/fardplan.db", "")
	cfg.Autosave.QuietWindowMS = -1
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for negative quiet window")
	}
}
