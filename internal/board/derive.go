package board

import (
	"slices"
	"strings"

	"github.com/hylla/fardplan/internal/domain"
)

// Derivation functions compute read-only projections from a document plus
// filter state. They are pure: safe to call on every render, no mutation,
// and every lookup degrades to an empty result on a missing id.

// FilteredItems returns the non-archived items passing the active filters.
// A swimlane filter is extended by dependency connectivity: items outside
// the selected lanes stay visible when a dependsOn or enables edge connects
// them, in either direction, to an item inside the selection, so cross-lane
// dependency chains keep their connecting lines renderable.
func FilteredItems(doc domain.Document, f Filters) []domain.RoadmapItem {
	base := make([]domain.RoadmapItem, 0, len(doc.Items))
	for _, item := range doc.Items {
		if !item.Archived {
			base = append(base, item)
		}
	}

	if len(f.Swimlanes) > 0 {
		base = extendBySwimlaneConnectivity(base, f.Swimlanes)
	}

	out := base[:0:0]
	query := strings.ToLower(strings.TrimSpace(f.Search))
	for _, item := range base {
		if len(f.Stages) > 0 && !slices.Contains(f.Stages, item.Stage) {
			continue
		}
		if len(f.Types) > 0 && !slices.Contains(f.Types, item.Type) {
			continue
		}
		// The blocker-status filter constrains blockers only; other types
		// pass regardless.
		if len(f.BlockerStatuses) > 0 && item.Type == domain.ItemTypeBlocker &&
			!slices.Contains(f.BlockerStatuses, item.BlockerStatus) {
			continue
		}
		if !f.ShowCompleted && item.Completed {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(item.Title), query) &&
			!strings.Contains(strings.ToLower(item.Description), query) {
			continue
		}
		out = append(out, item)
	}
	return out
}

// extendBySwimlaneConnectivity returns the items homed in the selected
// lanes plus any item connected to that set by a dependency edge.
func extendBySwimlaneConnectivity(items []domain.RoadmapItem, laneIDs []string) []domain.RoadmapItem {
	inSelection := make(map[string]bool, len(items))
	selected := make([]domain.RoadmapItem, 0, len(items))
	for _, item := range items {
		if slices.Contains(laneIDs, item.SwimlaneID) {
			inSelection[item.ID] = true
			selected = append(selected, item)
		}
	}

	out := append(items[:0:0], selected...)
	for _, item := range items {
		if inSelection[item.ID] {
			continue
		}
		if connectedToSet(item, selected, inSelection) {
			out = append(out, item)
		}
	}
	return out
}

// connectedToSet reports whether a dependency edge in either direction
// links item to the selected set.
func connectedToSet(item domain.RoadmapItem, selected []domain.RoadmapItem, inSelection map[string]bool) bool {
	for _, id := range item.DependsOn {
		if inSelection[id] {
			return true
		}
	}
	for _, id := range item.Enables {
		if inSelection[id] {
			return true
		}
	}
	for _, candidate := range selected {
		if candidate.DependsOnItem(item.ID) || candidate.EnablesItem(item.ID) {
			return true
		}
	}
	return false
}

// FilteredSwimlanes returns all swimlanes by order when no swimlane filter
// is active, otherwise the swimlanes holding at least one filtered item —
// so lanes pulled in only via cross-lane connectivity still appear.
func FilteredSwimlanes(doc domain.Document, f Filters) []domain.Swimlane {
	lanes := append([]domain.Swimlane(nil), doc.Swimlanes...)
	slices.SortStableFunc(lanes, func(a, b domain.Swimlane) int {
		return a.Order - b.Order
	})
	if len(f.Swimlanes) == 0 {
		return lanes
	}

	occupied := map[string]bool{}
	for _, item := range FilteredItems(doc, f) {
		occupied[item.SwimlaneID] = true
	}
	out := lanes[:0:0]
	for _, lane := range lanes {
		if occupied[lane.ID] {
			out = append(out, lane)
		}
	}
	return out
}

// IsItemCrossSwimlane reports whether a swimlane filter is active and the
// item's home lane is outside the selection. Used to badge pulled-in items.
func IsItemCrossSwimlane(doc domain.Document, f Filters, itemID string) bool {
	if len(f.Swimlanes) == 0 {
		return false
	}
	item, ok := doc.Item(itemID)
	if !ok {
		return false
	}
	return !slices.Contains(f.Swimlanes, item.SwimlaneID)
}

// Dependencies resolves the item's dependsOn ids to items, dropping
// dangling references.
func Dependencies(doc domain.Document, itemID string) []domain.RoadmapItem {
	item, ok := doc.Item(itemID)
	if !ok {
		return nil
	}
	return resolveItems(doc, item.DependsOn)
}

// Dependents resolves the item's enables ids to items, dropping dangling
// references.
func Dependents(doc domain.Document, itemID string) []domain.RoadmapItem {
	item, ok := doc.Item(itemID)
	if !ok {
		return nil
	}
	return resolveItems(doc, item.Enables)
}

func resolveItems(doc domain.Document, ids []string) []domain.RoadmapItem {
	out := make([]domain.RoadmapItem, 0, len(ids))
	for _, id := range ids {
		if item, ok := doc.Item(id); ok {
			out = append(out, item)
		}
	}
	return out
}

// DependencyEdge is one directed dependsOn relationship between two
// visible items.
type DependencyEdge struct {
	FromID string `json:"fromId"`
	ToID   string `json:"toId"`
}

// DependencyEdges returns the dependsOn edges between filtered items. Edge
// visibility follows item visibility, so archived or filtered-out endpoints
// produce no edge.
func DependencyEdges(doc domain.Document, f Filters) []DependencyEdge {
	visible := map[string]bool{}
	items := FilteredItems(doc, f)
	for _, item := range items {
		visible[item.ID] = true
	}
	out := make([]DependencyEdge, 0)
	for _, item := range items {
		for _, depID := range item.DependsOn {
			if visible[depID] {
				out = append(out, DependencyEdge{FromID: item.ID, ToID: depID})
			}
		}
	}
	return out
}

// SubItemCount summarizes a nested board's progress.
type SubItemCount struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
}

// CountSubItems tallies the item's sub-items.
func CountSubItems(doc domain.Document, itemID string) SubItemCount {
	item, ok := doc.Item(itemID)
	if !ok {
		return SubItemCount{}
	}
	count := SubItemCount{Total: len(item.SubItems)}
	for _, sub := range item.SubItems {
		if sub.Completed {
			count.Completed++
		}
	}
	return count
}

// ArchivedCount returns the number of archived items in the document.
func ArchivedCount(doc domain.Document) int {
	count := 0
	for _, item := range doc.Items {
		if item.Archived {
			count++
		}
	}
	return count
}

// ArchivedItems returns the archived items homed in the given swimlane.
func ArchivedItems(doc domain.Document, swimlaneID string) []domain.RoadmapItem {
	out := make([]domain.RoadmapItem, 0)
	for _, item := range doc.Items {
		if item.Archived && item.SwimlaneID == swimlaneID {
			out = append(out, item)
		}
	}
	return out
}

// SubStages returns the item's custom stages sorted by order, or the fixed
// default stage set when unconfigured.
func SubStages(doc domain.Document, itemID string) []domain.SubStage {
	item, ok := doc.Item(itemID)
	if !ok || item.SubItemConfig == nil {
		return domain.DefaultSubStages()
	}
	stages := append([]domain.SubStage(nil), item.SubItemConfig.CustomStages...)
	slices.SortStableFunc(stages, func(a, b domain.SubStage) int {
		return a.Order - b.Order
	})
	return stages
}

// SubSwimlanes returns the item's custom lanes sorted by order. Unlike
// stages, sub-swimlanes default to empty.
func SubSwimlanes(doc domain.Document, itemID string) []domain.SubSwimlane {
	item, ok := doc.Item(itemID)
	if !ok || item.SubItemConfig == nil {
		return []domain.SubSwimlane{}
	}
	lanes := append([]domain.SubSwimlane(nil), item.SubItemConfig.CustomSwimlanes...)
	slices.SortStableFunc(lanes, func(a, b domain.SubSwimlane) int {
		return a.Order - b.Order
	})
	return lanes
}
