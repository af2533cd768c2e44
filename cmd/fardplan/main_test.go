package main

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hylla/fardplan/internal/domain"
)

// TestMain sets deterministic environment defaults for CLI tests.
func TestMain(m *testing.M) {
	_ = os.Setenv("FARDPLAN_DEV_MODE", "false")
	os.Exit(m.Run())
}

// writeScopedConfig keeps the cache file inside the test's temp dir.
func writeScopedConfig(t *testing.T, dir string) string {
	t.Helper()
	cfgPath := filepath.Join(dir, "config.toml")
	content := "[cache]\npath = \"" + filepath.ToSlash(filepath.Join(dir, "board-cache.json")) + "\"\n"
	if err := os.WriteFile(cfgPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return cfgPath
}

// TestRunVersion verifies behavior for the covered scenario.
func TestRunVersion(t *testing.T) {
	var out strings.Builder
	err := run(context.Background(), []string{"--version"}, &out, io.Discard)
	if err != nil {
		t.Fatalf("run(version) error = %v", err)
	}
	if !strings.Contains(out.String(), "fardplan") {
		t.Fatalf("expected version output, got %q", out.String())
	}
}

// TestRunPaths verifies behavior for the covered scenario.
func TestRunPaths(t *testing.T) {
	var out strings.Builder
	err := run(context.Background(), []string{"paths"}, &out, io.Discard)
	if err != nil {
		t.Fatalf("run(paths) error = %v", err)
	}
	for _, want := range []string{"config:", "data_dir:", "db:", "cache:"} {
		if !strings.Contains(out.String(), want) {
			t.Fatalf("paths output missing %q:\n%s", want, out.String())
		}
	}
}

// TestRunInvalidFlag verifies behavior for the covered scenario.
func TestRunInvalidFlag(t *testing.T) {
	err := run(context.Background(), []string{"--definitely-not-a-flag"}, io.Discard, io.Discard)
	if err == nil {
		t.Fatal("expected flag parse error")
	}
}

// TestRunUnknownCommand verifies behavior for the covered scenario.
func TestRunUnknownCommand(t *testing.T) {
	err := run(context.Background(), []string{"frobnicate"}, io.Discard, io.Discard)
	if err == nil || !strings.Contains(err.Error(), "unknown command") {
		t.Fatalf("err = %v", err)
	}
}

// TestRunImportThenExportRoundTrip verifies behavior for the covered scenario.
func TestRunImportThenExportRoundTrip(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "fardplan.db")
	inPath := filepath.Join(dir, "in.json")
	outPath := filepath.Join(dir, "out.json")
	t.Setenv("FARDPLAN_CONFIG", writeScopedConfig(t, dir))

	seed := domain.Document{
		Title:     "CLI Plan",
		Swimlanes: []domain.Swimlane{{ID: "s1", Name: "Platform"}},
		Items: []domain.RoadmapItem{{
			ID:         "m1",
			Type:       domain.ItemTypeMilestone,
			Title:      "Ship v1",
			Stage:      domain.StageShortTerm,
			SwimlaneID: "s1",
		}},
	}
	encoded, err := json.Marshal(seed)
	if err != nil {
		t.Fatalf("marshal seed: %v", err)
	}
	if err := os.WriteFile(inPath, encoded, 0o644); err != nil {
		t.Fatalf("write seed: %v", err)
	}

	err = run(context.Background(), []string{"-db", dbPath, "import", "-in", inPath}, io.Discard, io.Discard)
	if err != nil {
		t.Fatalf("run(import) error = %v", err)
	}

	err = run(context.Background(), []string{"-db", dbPath, "export", "-out", outPath}, io.Discard, io.Discard)
	if err != nil {
		t.Fatalf("run(export) error = %v", err)
	}

	exported, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	var doc domain.Document
	if err := json.Unmarshal(exported, &doc); err != nil {
		t.Fatalf("decode export: %v", err)
	}
	if doc.Title != "CLI Plan" || len(doc.Items) != 1 || doc.Items[0].Title != "Ship v1" {
		t.Fatalf("exported doc = %+v", doc)
	}
}

// TestRunBoardRendersDocument verifies behavior for the covered scenario.
func TestRunBoardRendersDocument(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "fardplan.db")
	t.Setenv("FARDPLAN_CONFIG", writeScopedConfig(t, dir))

	var out strings.Builder
	err := run(context.Background(), []string{"-db", dbPath, "board"}, &out, io.Discard)
	if err != nil {
		t.Fatalf("run(board) error = %v", err)
	}
	if !strings.Contains(out.String(), "Roadmap") {
		t.Fatalf("board output missing default title:\n%s", out.String())
	}
}

// TestRunDefaultsToBoardWithNoCommand verifies behavior for the covered scenario.
func TestRunDefaultsToBoardWithNoCommand(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "fardplan.db")
	t.Setenv("FARDPLAN_CONFIG", writeScopedConfig(t, dir))

	var out strings.Builder
	err := run(context.Background(), []string{"-db", dbPath}, &out, io.Discard)
	if err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if !strings.Contains(out.String(), "Roadmap") {
		t.Fatalf("default invocation missing board output:\n%s", out.String())
	}
}

// TestRunCreatesConfigDir verifies behavior for the covered scenario.
func TestRunCreatesConfigDir(t *testing.T) {
	dir := t.TempDir()
	cfgDir := filepath.Join(dir, "nested", "config")
	t.Setenv("FARDPLAN_CONFIG", filepath.Join(cfgDir, "config.toml"))
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg-config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "xdg-data"))

	err := run(context.Background(), []string{"-db", filepath.Join(dir, "fardplan.db"), "export", "-out", filepath.Join(dir, "out.json")}, io.Discard, io.Discard)
	if err != nil {
		t.Fatalf("run(export) error = %v", err)
	}
	if _, statErr := os.Stat(cfgDir); statErr != nil {
		t.Fatalf("config dir not created: %v", statErr)
	}
}

// TestRunImportRequiresInput verifies behavior for the covered scenario.
func TestRunImportRequiresInput(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("FARDPLAN_CONFIG", writeScopedConfig(t, dir))
	err := run(context.Background(), []string{"-db", filepath.Join(dir, "fardplan.db"), "import"}, io.Discard, io.Discard)
	if err == nil || !strings.Contains(err.Error(), "-in is required") {
		t.Fatalf("err = %v", err)
	}
}
