package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/hylla/fardplan/internal/domain"
)

func TestRepository_SaveAndLoadDocument(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "fardplan.db")
	repo, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() {
		_ = repo.Close()
	})

	if _, ok, err := repo.LoadDocument(ctx); err != nil || ok {
		t.Fatalf("LoadDocument() on empty db = ok=%t, err=%v", ok, err)
	}

	now := time.Date(2026, 4, 10, 12, 0, 0, 0, time.UTC)
	doc := domain.NewDocument("Team Plan", now)
	doc.Swimlanes = append(doc.Swimlanes, domain.Swimlane{ID: "s1", Name: "Platform"})
	doc.Items = append(doc.Items, domain.RoadmapItem{
		ID:         "m1",
		Type:       domain.ItemTypeMilestone,
		Title:      "Ship v1",
		Stage:      domain.StageShortTerm,
		SwimlaneID: "s1",
	})
	if err := repo.SaveDocument(ctx, doc); err != nil {
		t.Fatalf("SaveDocument() error = %v", err)
	}

	loaded, ok, err := repo.LoadDocument(ctx)
	if err != nil || !ok {
		t.Fatalf("LoadDocument() = ok=%t, err=%v", ok, err)
	}
	if loaded.Title != "Team Plan" || len(loaded.Swimlanes) != 1 || len(loaded.Items) != 1 {
		t.Fatalf("loaded = %+v", loaded)
	}
	if loaded.Items[0].Title != "Ship v1" {
		t.Fatalf("loaded item = %+v", loaded.Items[0])
	}
}

func TestRepository_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "fardplan.db")
	repo, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	now := time.Date(2026, 4, 10, 12, 0, 0, 0, time.UTC)
	if err := repo.SaveDocument(ctx, domain.NewDocument("Persisted", now)); err != nil {
		t.Fatalf("SaveDocument() error = %v", err)
	}
	if err := repo.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	reopened, err := Open(dbPath)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	t.Cleanup(func() {
		_ = reopened.Close()
	})
	loaded, ok, err := reopened.LoadDocument(ctx)
	if err != nil || !ok {
		t.Fatalf("LoadDocument() after reopen = ok=%t, err=%v", ok, err)
	}
	if loaded.Title != "Persisted" {
		t.Fatalf("Title = %q", loaded.Title)
	}
}

func TestRepository_LastWriteWinsByDocumentTimestamp(t *testing.T) {
	ctx := context.Background()
	repo, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	t.Cleanup(func() {
		_ = repo.Close()
	})

	newer := domain.NewDocument("Newer", time.Date(2026, 4, 10, 12, 5, 0, 0, time.UTC))
	older := domain.NewDocument("Older", time.Date(2026, 4, 10, 12, 0, 0, 0, time.UTC))

	if err := repo.SaveDocument(ctx, newer); err != nil {
		t.Fatalf("SaveDocument(newer) error = %v", err)
	}
	// An out-of-order save completion must not clobber the newer document.
	if err := repo.SaveDocument(ctx, older); err != nil {
		t.Fatalf("SaveDocument(older) error = %v", err)
	}

	loaded, ok, err := repo.LoadDocument(ctx)
	if err != nil || !ok {
		t.Fatalf("LoadDocument() = ok=%t, err=%v", ok, err)
	}
	if loaded.Title != "Newer" {
		t.Fatalf("Title = %q, want the newer document retained", loaded.Title)
	}
}

func TestRepositoryOpenValidation(t *testing.T) {
	if _, err := Open("  "); err == nil {
		t.Fatal("Open() with blank path should fail")
	}
}
