package board

import (
	"testing"
	"time"

	"github.com/hylla/fardplan/internal/domain"
)

// filterFixture builds a two-lane board: milestones M1→M2 in the main lane,
// S1 in the support lane depended on by M1, and S2 in the support lane with
// no edges into the main lane.
func filterFixture() (domain.Document, map[string]string) {
	now := time.Date(2026, 4, 10, 12, 0, 0, 0, time.UTC)
	doc := domain.NewDocument("Plan", now)
	doc.Swimlanes = []domain.Swimlane{
		{ID: "lane-main", Name: "Main", Order: 0},
		{ID: "lane-support", Name: "Support", Order: 1},
	}
	doc.Items = []domain.RoadmapItem{
		{ID: "m1", Type: domain.ItemTypeMilestone, Title: "M1", Stage: domain.StageShortTerm, SwimlaneID: "lane-main", DependsOn: []string{"m2", "s1"}},
		{ID: "m2", Type: domain.ItemTypeMilestone, Title: "M2", Stage: domain.StageRecent, SwimlaneID: "lane-main", Enables: []string{"m1"}},
		{ID: "s1", Type: domain.ItemTypeOutput, Title: "S1", Stage: domain.StageShortTerm, SwimlaneID: "lane-support", Enables: []string{"m1"}},
		{ID: "s2", Type: domain.ItemTypeGoal, Title: "S2", Stage: domain.StageLongTerm, SwimlaneID: "lane-support"},
	}
	ids := map[string]string{"main": "lane-main", "support": "lane-support"}
	return doc, ids
}

func itemIDs(items []domain.RoadmapItem) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.ID)
	}
	return out
}

func containsID(items []domain.RoadmapItem, id string) bool {
	for _, item := range items {
		if item.ID == id {
			return true
		}
	}
	return false
}

func TestSwimlaneFilterExtendsByConnectivity(t *testing.T) {
	doc, lanes := filterFixture()
	f := DefaultFilters()
	f.Swimlanes = []string{lanes["main"]}

	items := FilteredItems(doc, f)
	if !containsID(items, "m1") || !containsID(items, "m2") {
		t.Fatalf("main-lane items missing: %v", itemIDs(items))
	}
	if !containsID(items, "s1") {
		t.Fatal("s1 should be pulled in via its edge to m1")
	}
	if containsID(items, "s2") {
		t.Fatal("s2 has no edge into the selection and should be hidden")
	}

	if !IsItemCrossSwimlane(doc, f, "s1") {
		t.Fatal("s1 should be badged cross-swimlane")
	}
	if IsItemCrossSwimlane(doc, f, "m1") {
		t.Fatal("m1 is homed in the selection")
	}

	visibleLanes := FilteredSwimlanes(doc, f)
	if len(visibleLanes) != 2 {
		t.Fatalf("lanes = %v, want both (support pulled in by s1)", visibleLanes)
	}
}

func TestStageAndTypeFiltersCompose(t *testing.T) {
	doc, _ := filterFixture()
	f := DefaultFilters()
	f.Stages = []domain.Stage{domain.StageShortTerm}
	f.Types = []domain.ItemType{domain.ItemTypeMilestone}

	items := FilteredItems(doc, f)
	if len(items) != 1 || items[0].ID != "m1" {
		t.Fatalf("items = %v, want [m1]", itemIDs(items))
	}
}

func TestBlockerStatusFilterConstrainsBlockersOnly(t *testing.T) {
	doc, _ := filterFixture()
	doc.Items = append(doc.Items,
		domain.RoadmapItem{ID: "b1", Type: domain.ItemTypeBlocker, Title: "B1", Stage: domain.StageShortTerm, SwimlaneID: "lane-main", BlockerStatus: domain.BlockerStatusOpen},
		domain.RoadmapItem{ID: "b2", Type: domain.ItemTypeBlocker, Title: "B2", Stage: domain.StageShortTerm, SwimlaneID: "lane-main", BlockerStatus: domain.BlockerStatusResolved},
	)
	f := DefaultFilters()
	f.BlockerStatuses = []domain.BlockerStatus{domain.BlockerStatusOpen}

	items := FilteredItems(doc, f)
	if !containsID(items, "b1") {
		t.Fatal("open blocker should pass")
	}
	if containsID(items, "b2") {
		t.Fatal("resolved blocker should be filtered")
	}
	// Non-blockers pass regardless of the blocker-status filter.
	if !containsID(items, "m1") || !containsID(items, "s2") {
		t.Fatalf("non-blockers filtered out: %v", itemIDs(items))
	}
}

func TestSearchAndShowCompleted(t *testing.T) {
	doc, _ := filterFixture()
	doc.Items = append(doc.Items, domain.RoadmapItem{
		ID:          "cal",
		Type:        domain.ItemTypeMilestone,
		Title:       "Calibration run Q3",
		Description: "Full detector calibration",
		Stage:       domain.StageShortTerm,
		SwimlaneID:  "lane-main",
		Completed:   true,
	})

	f := DefaultFilters()
	f.Search = "calibration"
	items := FilteredItems(doc, f)
	if len(items) != 1 || items[0].ID != "cal" {
		t.Fatalf("search hit = %v, want [cal]", itemIDs(items))
	}

	// Description text matches too.
	f.Search = "detector"
	if items = FilteredItems(doc, f); len(items) != 1 || items[0].ID != "cal" {
		t.Fatalf("description search hit = %v, want [cal]", itemIDs(items))
	}

	f.ShowCompleted = false
	if items = FilteredItems(doc, f); len(items) != 0 {
		t.Fatalf("hide-completed left %v visible", itemIDs(items))
	}
}

func TestArchivedItemsAreExcluded(t *testing.T) {
	doc, _ := filterFixture()
	for i := range doc.Items {
		if doc.Items[i].ID == "m2" {
			doc.Items[i].Archived = true
		}
	}
	items := FilteredItems(doc, DefaultFilters())
	if containsID(items, "m2") {
		t.Fatal("archived item visible on the board")
	}
	if ArchivedCount(doc) != 1 {
		t.Fatalf("ArchivedCount = %d, want 1", ArchivedCount(doc))
	}
	archived := ArchivedItems(doc, "lane-main")
	if len(archived) != 1 || archived[0].ID != "m2" {
		t.Fatalf("ArchivedItems = %v", itemIDs(archived))
	}
}

func TestDependencyEdgesFollowVisibility(t *testing.T) {
	doc, _ := filterFixture()
	edges := DependencyEdges(doc, DefaultFilters())
	want := map[DependencyEdge]bool{
		{FromID: "m1", ToID: "m2"}: true,
		{FromID: "m1", ToID: "s1"}: true,
	}
	if len(edges) != len(want) {
		t.Fatalf("edges = %v", edges)
	}
	for _, edge := range edges {
		if !want[edge] {
			t.Fatalf("unexpected edge %+v", edge)
		}
	}

	// Hiding an endpoint hides its edges.
	f := DefaultFilters()
	f.Types = []domain.ItemType{domain.ItemTypeMilestone}
	edges = DependencyEdges(doc, f)
	if len(edges) != 1 || edges[0] != (DependencyEdge{FromID: "m1", ToID: "m2"}) {
		t.Fatalf("edges with s1 hidden = %v", edges)
	}
}

func TestDependencyResolutionDropsDangling(t *testing.T) {
	doc, _ := filterFixture()
	for i := range doc.Items {
		if doc.Items[i].ID == "m1" {
			doc.Items[i].DependsOn = append(doc.Items[i].DependsOn, "ghost")
		}
	}
	deps := Dependencies(doc, "m1")
	if len(deps) != 2 {
		t.Fatalf("Dependencies = %v, want m2 and s1 only", itemIDs(deps))
	}
	if got := Dependents(doc, "s1"); len(got) != 1 || got[0].ID != "m1" {
		t.Fatalf("Dependents = %v", itemIDs(got))
	}
	if Dependencies(doc, "ghost") != nil {
		t.Fatal("missing item should resolve to nil")
	}
}

func TestSubBoardDefaults(t *testing.T) {
	doc, _ := filterFixture()
	stages := SubStages(doc, "m1")
	if len(stages) != 4 || stages[0].ID != "backlog" || stages[3].ID != "done" {
		t.Fatalf("default sub-stages = %v", stages)
	}
	if lanes := SubSwimlanes(doc, "m1"); len(lanes) != 0 {
		t.Fatalf("default sub-swimlanes = %v, want empty", lanes)
	}

	counts := CountSubItems(doc, "m1")
	if counts.Total != 0 || counts.Completed != 0 {
		t.Fatalf("counts = %+v", counts)
	}
}
