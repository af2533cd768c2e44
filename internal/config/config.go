package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

type Config struct {
	Database Database `toml:"database"`
	Cache    Cache    `toml:"cache"`
	Server   Server   `toml:"server"`
	Autosave Autosave `toml:"autosave"`
	Board    Board    `toml:"board"`
}

type Database struct {
	Path string `toml:"path"`
}

type Cache struct {
	Path string `toml:"path"`
}

type Server struct {
	Bind        string `toml:"bind"`
	APIEndpoint string `toml:"api_endpoint"`
	ReadOnly    bool   `toml:"read_only"`
}

type Autosave struct {
	QuietWindowMS int `toml:"quiet_window_ms"`
}

type Board struct {
	DefaultTitle string `toml:"default_title"`
}

func Default(dbPath, cachePath string) Config {
	return Config{
		Database: Database{Path: dbPath},
		Cache:    Cache{Path: cachePath},
		Server: Server{
			Bind:        "127.0.0.1:8080",
			APIEndpoint: "/api/v1",
		},
		Autosave: Autosave{QuietWindowMS: 2000},
		Board:    Board{DefaultTitle: "Roadmap"},
	}
}

func Load(path string, defaults Config) (Config, error) {
	cfg := defaults
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if len(content) == 0 {
		return cfg, nil
	}

	if err := toml.Unmarshal(content, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode toml: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.Database.Path) == "" {
		return errors.New("database path is required")
	}
	if c.Autosave.QuietWindowMS < 0 {
		return fmt.Errorf("autosave.quiet_window_ms must be >= 0, got %d", c.Autosave.QuietWindowMS)
	}
	if endpoint := strings.TrimSpace(c.Server.APIEndpoint); endpoint != "" && !strings.HasPrefix(endpoint, "/") {
		return fmt.Errorf("server.api_endpoint must start with /: %q", c.Server.APIEndpoint)
	}
	return nil
}

// QuietWindow returns the autosave debounce duration.
func (c Config) QuietWindow() time.Duration {
	return time.Duration(c.Autosave.QuietWindowMS) * time.Millisecond
}

func EnsureConfigDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
