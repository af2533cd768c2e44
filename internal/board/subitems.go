package board

import (
	"slices"
	"time"

	"github.com/hylla/fardplan/internal/domain"
)

// ensureConfig materializes the item's nested-board configuration on first
// use. Every sub-item, sub-stage, and sub-swimlane mutation goes through it.
func ensureConfig(item *domain.RoadmapItem) *domain.SubItemConfig {
	if item.SubItemConfig == nil {
		cfg := domain.NewSubItemConfig()
		item.SubItemConfig = &cfg
	}
	return item.SubItemConfig
}

// SubItemInput holds the caller-supplied fields for a new sub-item.
type SubItemInput struct {
	Title         string
	Priority      domain.SubItemPriority
	StatusTagID   string
	SubStageID    string
	SubSwimlaneID string
}

// AddSubItem appends a task to the item's nested board and returns its id.
func (s *Store) AddSubItem(itemID string, in SubItemInput) string {
	id := s.idGen()
	ok := s.mutate(func(doc *domain.Document, now time.Time) bool {
		idx := doc.ItemIndex(itemID)
		if idx < 0 {
			return false
		}
		item := &doc.Items[idx]
		ensureConfig(item)
		item.SubItems = append(item.SubItems, domain.SubItem{
			ID:            id,
			Title:         in.Title,
			Priority:      in.Priority,
			StatusTagID:   in.StatusTagID,
			SubStageID:    in.SubStageID,
			SubSwimlaneID: in.SubSwimlaneID,
			Order:         len(item.SubItems),
		})
		item.ItemLastUpdated = now
		s.appendLog(item, logDraft{Type: domain.ChangeSubItemAdded, Description: "Added sub-item", Detail: in.Title}, now)
		return true
	})
	if !ok {
		return ""
	}
	return id
}

// SubItemPatch carries optional sub-item field updates.
type SubItemPatch struct {
	Title         *string
	Completed     *bool
	Priority      *domain.SubItemPriority
	StatusTagID   *string
	SubStageID    *string
	SubSwimlaneID *string
	Order         *int
}

// UpdateSubItem merges patch fields into the sub-item. Completing a sub-item
// logs subitem_completed on the rising edge only.
func (s *Store) UpdateSubItem(itemID, subItemID string, patch SubItemPatch) {
	s.mutate(func(doc *domain.Document, now time.Time) bool {
		idx := doc.ItemIndex(itemID)
		if idx < 0 {
			return false
		}
		item := &doc.Items[idx]
		for i := range item.SubItems {
			sub := &item.SubItems[i]
			if sub.ID != subItemID {
				continue
			}
			wasCompleted := sub.Completed
			if patch.Title != nil {
				sub.Title = *patch.Title
			}
			if patch.Completed != nil {
				sub.Completed = *patch.Completed
			}
			if patch.Priority != nil {
				sub.Priority = *patch.Priority
			}
			if patch.StatusTagID != nil {
				sub.StatusTagID = *patch.StatusTagID
			}
			if patch.SubStageID != nil {
				sub.SubStageID = *patch.SubStageID
			}
			if patch.SubSwimlaneID != nil {
				sub.SubSwimlaneID = *patch.SubSwimlaneID
			}
			if patch.Order != nil {
				sub.Order = *patch.Order
			}
			item.ItemLastUpdated = now
			if !wasCompleted && sub.Completed {
				s.appendLog(item, logDraft{Type: domain.ChangeSubItemCompleted, Description: "Completed sub-item", Detail: sub.Title}, now)
			}
			return true
		}
		return false
	})
}

// DeleteSubItem removes the sub-item from its parent.
func (s *Store) DeleteSubItem(itemID, subItemID string) {
	s.mutate(func(doc *domain.Document, now time.Time) bool {
		idx := doc.ItemIndex(itemID)
		if idx < 0 {
			return false
		}
		item := &doc.Items[idx]
		subItems := item.SubItems[:0:0]
		found := false
		for _, sub := range item.SubItems {
			if sub.ID == subItemID {
				found = true
				continue
			}
			subItems = append(subItems, sub)
		}
		if !found {
			return false
		}
		item.SubItems = subItems
		item.ItemLastUpdated = now
		return true
	})
}

// ReorderSubItems reassigns sub-item order to match ids, dropping unmatched.
func (s *Store) ReorderSubItems(itemID string, ids []string) {
	s.mutate(func(doc *domain.Document, now time.Time) bool {
		idx := doc.ItemIndex(itemID)
		if idx < 0 {
			return false
		}
		item := &doc.Items[idx]
		item.SubItems = reindexByID(item.SubItems, ids,
			func(sub domain.SubItem) string { return sub.ID },
			func(sub *domain.SubItem, order int) { sub.Order = order },
		)
		item.ItemLastUpdated = now
		return true
	})
}

// SetSubBoardViewType switches the nested board between tasks, kanban, and
// roadmap views.
func (s *Store) SetSubBoardViewType(itemID string, viewType domain.SubBoardViewType) {
	s.mutate(func(doc *domain.Document, now time.Time) bool {
		idx := doc.ItemIndex(itemID)
		if idx < 0 {
			return false
		}
		item := &doc.Items[idx]
		ensureConfig(item).ViewType = viewType
		item.ItemLastUpdated = now
		return true
	})
}

// AddSubStage appends a custom stage to the item's nested board.
func (s *Store) AddSubStage(itemID, name string) string {
	id := s.idGen()
	ok := s.mutate(func(doc *domain.Document, now time.Time) bool {
		idx := doc.ItemIndex(itemID)
		if idx < 0 {
			return false
		}
		item := &doc.Items[idx]
		cfg := ensureConfig(item)
		cfg.CustomStages = append(cfg.CustomStages, domain.SubStage{
			ID:    id,
			Name:  name,
			Order: len(cfg.CustomStages),
		})
		item.ItemLastUpdated = now
		return true
	})
	if !ok {
		return ""
	}
	return id
}

// UpdateSubStage renames the custom stage.
func (s *Store) UpdateSubStage(itemID, stageID, name string) {
	s.mutate(func(doc *domain.Document, now time.Time) bool {
		idx := doc.ItemIndex(itemID)
		if idx < 0 {
			return false
		}
		item := &doc.Items[idx]
		cfg := ensureConfig(item)
		for i := range cfg.CustomStages {
			if cfg.CustomStages[i].ID == stageID {
				cfg.CustomStages[i].Name = name
				item.ItemLastUpdated = now
				return true
			}
		}
		return false
	})
}

// DeleteSubStage removes the stage and relocates its sub-items to the first
// remaining stage by order rather than deleting them.
func (s *Store) DeleteSubStage(itemID, stageID string) {
	s.mutate(func(doc *domain.Document, now time.Time) bool {
		idx := doc.ItemIndex(itemID)
		if idx < 0 {
			return false
		}
		item := &doc.Items[idx]
		cfg := ensureConfig(item)
		stages := cfg.CustomStages[:0:0]
		found := false
		for _, stage := range cfg.CustomStages {
			if stage.ID == stageID {
				found = true
				continue
			}
			stages = append(stages, stage)
		}
		if !found {
			return false
		}
		cfg.CustomStages = stages
		fallback := ""
		if first, ok := firstByOrder(stages); ok {
			fallback = first.ID
		}
		for i := range item.SubItems {
			if item.SubItems[i].SubStageID == stageID {
				item.SubItems[i].SubStageID = fallback
			}
		}
		item.ItemLastUpdated = now
		return true
	})
}

// ReorderSubStages reassigns stage order to match ids, dropping unmatched.
func (s *Store) ReorderSubStages(itemID string, ids []string) {
	s.mutate(func(doc *domain.Document, now time.Time) bool {
		idx := doc.ItemIndex(itemID)
		if idx < 0 {
			return false
		}
		item := &doc.Items[idx]
		cfg := ensureConfig(item)
		cfg.CustomStages = reindexByID(cfg.CustomStages, ids,
			func(stage domain.SubStage) string { return stage.ID },
			func(stage *domain.SubStage, order int) { stage.Order = order },
		)
		item.ItemLastUpdated = now
		return true
	})
}

// AddSubSwimlane appends a custom lane to the item's nested board.
func (s *Store) AddSubSwimlane(itemID, name, color string) string {
	id := s.idGen()
	ok := s.mutate(func(doc *domain.Document, now time.Time) bool {
		idx := doc.ItemIndex(itemID)
		if idx < 0 {
			return false
		}
		item := &doc.Items[idx]
		cfg := ensureConfig(item)
		cfg.CustomSwimlanes = append(cfg.CustomSwimlanes, domain.SubSwimlane{
			ID:    id,
			Name:  name,
			Color: color,
			Order: len(cfg.CustomSwimlanes),
		})
		item.ItemLastUpdated = now
		return true
	})
	if !ok {
		return ""
	}
	return id
}

// UpdateSubSwimlane renames or recolors the custom lane.
func (s *Store) UpdateSubSwimlane(itemID, laneID string, name, color *string) {
	s.mutate(func(doc *domain.Document, now time.Time) bool {
		idx := doc.ItemIndex(itemID)
		if idx < 0 {
			return false
		}
		item := &doc.Items[idx]
		cfg := ensureConfig(item)
		for i := range cfg.CustomSwimlanes {
			if cfg.CustomSwimlanes[i].ID != laneID {
				continue
			}
			if name != nil {
				cfg.CustomSwimlanes[i].Name = *name
			}
			if color != nil {
				cfg.CustomSwimlanes[i].Color = *color
			}
			item.ItemLastUpdated = now
			return true
		}
		return false
	})
}

// DeleteSubSwimlane removes the lane; its sub-items fall back to no lane.
func (s *Store) DeleteSubSwimlane(itemID, laneID string) {
	s.mutate(func(doc *domain.Document, now time.Time) bool {
		idx := doc.ItemIndex(itemID)
		if idx < 0 {
			return false
		}
		item := &doc.Items[idx]
		cfg := ensureConfig(item)
		lanes := cfg.CustomSwimlanes[:0:0]
		found := false
		for _, lane := range cfg.CustomSwimlanes {
			if lane.ID == laneID {
				found = true
				continue
			}
			lanes = append(lanes, lane)
		}
		if !found {
			return false
		}
		cfg.CustomSwimlanes = lanes
		for i := range item.SubItems {
			if item.SubItems[i].SubSwimlaneID == laneID {
				item.SubItems[i].SubSwimlaneID = ""
			}
		}
		item.ItemLastUpdated = now
		return true
	})
}

// firstByOrder returns the stage with the lowest order value.
func firstByOrder(stages []domain.SubStage) (domain.SubStage, bool) {
	if len(stages) == 0 {
		return domain.SubStage{}, false
	}
	sorted := append([]domain.SubStage(nil), stages...)
	slices.SortStableFunc(sorted, func(a, b domain.SubStage) int {
		return a.Order - b.Order
	})
	return sorted[0], true
}
