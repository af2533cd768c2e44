package render

import (
	"strings"
	"testing"
	"time"

	"github.com/hylla/fardplan/internal/board"
	"github.com/hylla/fardplan/internal/domain"
)

func renderFixture() domain.Document {
	now := time.Date(2026, 4, 10, 12, 0, 0, 0, time.UTC)
	doc := domain.NewDocument("Render Plan", now)
	doc.Swimlanes = []domain.Swimlane{{ID: "s1", Name: "Platform", Order: 0}}
	doc.Items = []domain.RoadmapItem{
		{ID: "m1", Type: domain.ItemTypeMilestone, Title: "Ship v1", Stage: domain.StageShortTerm, SwimlaneID: "s1"},
		{ID: "g1", Type: domain.ItemTypeGoal, Title: "Grow adoption", Stage: domain.StageLongTerm, SwimlaneID: "s1", Completed: true},
	}
	return doc
}

func TestBoardRendersLanesAndItems(t *testing.T) {
	out := Board(renderFixture(), board.DefaultFilters())
	for _, want := range []string{"Render Plan", "Platform", "Ship v1", "Grow adoption", "Short Term", "Long Term"} {
		if !strings.Contains(out, want) {
			t.Fatalf("board output missing %q:\n%s", want, out)
		}
	}
}

func TestBoardHonorsFilters(t *testing.T) {
	f := board.DefaultFilters()
	f.ShowCompleted = false
	out := Board(renderFixture(), f)
	if strings.Contains(out, "Grow adoption") {
		t.Fatalf("completed item rendered:\n%s", out)
	}
}

func TestItemDetailIncludesMetadataAndSubItems(t *testing.T) {
	doc := renderFixture()
	doc.Items[0].Description = "Cut the release branch."
	doc.Items[0].SubItems = []domain.SubItem{
		{ID: "sub1", Title: "Tag release", Completed: true},
		{ID: "sub2", Title: "Write notes"},
	}
	doc.Items[0].DependsOn = []string{"g1"}

	out := ItemDetail(doc, doc.Items[0], nil, 80)
	for _, want := range []string{"Ship v1", "Platform", "Cut the release branch.", "Sub-items (1/2)", "[x] Tag release", "[ ] Write notes", "Depends on", "Grow adoption"} {
		if !strings.Contains(out, want) {
			t.Fatalf("detail output missing %q:\n%s", want, out)
		}
	}
}

func TestMarkdownRendererFallsBackOnEmptyInput(t *testing.T) {
	var r MarkdownRenderer
	if out := r.Render("   ", 80); out != "" {
		t.Fatalf("Render(blank) = %q", out)
	}
}
