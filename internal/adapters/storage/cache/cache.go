// Package cache keeps a local durable copy of the document that is written
// synchronously on every mutation, covering the window where the debounced
// persistence write has not happened yet.
package cache

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	charmLog "github.com/charmbracelet/log"
	"github.com/natefinch/atomic"

	"github.com/hylla/fardplan/internal/domain"
)

// FileCache writes the document to one JSON file with atomic replacement,
// so a crash mid-write never leaves a truncated cache behind.
type FileCache struct {
	path   string
	logger *charmLog.Logger
}

// New constructs a file cache at path.
func New(path string, logger *charmLog.Logger) (*FileCache, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("cache path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &FileCache{path: path, logger: logger}, nil
}

// Write replaces the cached document. Failures are logged and swallowed:
// the cache is best-effort and must never fail a mutation.
func (c *FileCache) Write(doc domain.Document) {
	payload, err := json.Marshal(doc)
	if err == nil {
		err = atomic.WriteFile(c.path, bytes.NewReader(payload))
	}
	if err != nil && c.logger != nil {
		c.logger.Warn("cache write failed", "path", c.path, "err", err)
	}
}

// Read returns the cached document, or ok=false when the cache file does
// not exist or cannot be decoded.
func (c *FileCache) Read() (domain.Document, bool) {
	payload, err := os.ReadFile(c.path)
	if err != nil {
		return domain.Document{}, false
	}
	var doc domain.Document
	if err := json.Unmarshal(payload, &doc); err != nil {
		if c.logger != nil {
			c.logger.Warn("cache decode failed", "path", c.path, "err", err)
		}
		return domain.Document{}, false
	}
	return doc, true
}
