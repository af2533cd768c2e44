package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/hylla/fardplan/internal/domain"
)

// driverName defines a package constant value.
const driverName = "sqlite"

// defaultSlot keys the single active board document.
const defaultSlot = "default"

// Repository persists full serialized documents in SQLite. It implements
// the store's Saver and Loader ports: one row per board slot, whole-document
// JSON, last write wins by document timestamp rather than completion order.
type Repository struct {
	db   *sql.DB
	slot string
}

// Open opens the requested database file, creating parent directories and
// the schema as needed.
func Open(path string) (*Repository, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("sqlite path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create sqlite dir: %w", err)
	}
	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	repo := &Repository{db: db, slot: defaultSlot}
	if err := repo.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

// OpenInMemory opens a throwaway in-memory database.
func OpenInMemory() (*Repository, error) {
	db, err := sql.Open(driverName, "file::memory:?cache=shared")
	if err != nil {
		return nil, fmt.Errorf("open sqlite memory: %w", err)
	}
	repo := &Repository{db: db, slot: defaultSlot}
	if err := repo.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

// Close closes the database.
func (r *Repository) Close() error {
	return r.db.Close()
}

func (r *Repository) migrate(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS boards (
	slot       TEXT PRIMARY KEY,
	document   TEXT NOT NULL,
	updated_at TEXT NOT NULL
);`
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate boards: %w", err)
	}
	return nil
}

// SaveDocument upserts the serialized document. A row carrying a newer
// document timestamp is never overwritten by an older write, which is the
// only protection needed against out-of-order save completion.
func (r *Repository) SaveDocument(ctx context.Context, doc domain.Document) error {
	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}
	const query = `
INSERT INTO boards (slot, document, updated_at)
VALUES (?, ?, ?)
ON CONFLICT(slot) DO UPDATE SET
	document = excluded.document,
	updated_at = excluded.updated_at
WHERE excluded.updated_at >= boards.updated_at;`
	_, err = r.db.ExecContext(ctx, query, r.slot, string(payload), doc.LastUpdated.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("save document: %w", err)
	}
	return nil
}

// LoadDocument returns the persisted document for the board slot, or
// ok=false when none has ever been saved.
func (r *Repository) LoadDocument(ctx context.Context) (domain.Document, bool, error) {
	const query = `SELECT document FROM boards WHERE slot = ?;`
	var payload string
	err := r.db.QueryRowContext(ctx, query, r.slot).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Document{}, false, nil
	}
	if err != nil {
		return domain.Document{}, false, fmt.Errorf("load document: %w", err)
	}
	var doc domain.Document
	if err := json.Unmarshal([]byte(payload), &doc); err != nil {
		return domain.Document{}, false, fmt.Errorf("decode document: %w", err)
	}
	return doc, true, nil
}
