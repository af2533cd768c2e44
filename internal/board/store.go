package board

import (
	"context"
	"sync"
	"time"

	"github.com/hylla/fardplan/internal/domain"
)

// IDGenerator returns unique identifiers for new entities.
type IDGenerator func() string

// Clock returns the current time.
type Clock func() time.Time

// StoreConfig holds configuration for the document store.
type StoreConfig struct {
	DefaultTitle string
}

// Store owns the canonical document and exposes atomic mutation operations.
// Every mutation computes a brand-new document value from the current one and
// replaces the published state; partial updates are never observable. Every
// mutation is a silent no-op while no document is loaded, and malformed ids
// leave the document unchanged.
type Store struct {
	mu       sync.RWMutex
	doc      *domain.Document
	idGen    IDGenerator
	clock    Clock
	title    string
	onChange []func(domain.Document)
}

// NewStore constructs an empty store. The document is absent until
// Initialize or LoadData runs.
func NewStore(idGen IDGenerator, clock Clock, cfg StoreConfig) *Store {
	if idGen == nil {
		idGen = func() string { return "" }
	}
	if clock == nil {
		clock = time.Now
	}
	title := cfg.DefaultTitle
	if title == "" {
		title = domain.DefaultDocumentTitle
	}
	return &Store{
		idGen: idGen,
		clock: clock,
		title: title,
	}
}

// OnChange registers an observer invoked synchronously with a snapshot of
// the document after every mutation. Register observers before the store is
// shared between goroutines.
func (s *Store) OnChange(fn func(domain.Document)) {
	if fn != nil {
		s.onChange = append(s.onChange, fn)
	}
}

// Initialize loads the persisted document from loader, falling back to a
// fresh empty document when none is available.
func (s *Store) Initialize(ctx context.Context, loader Loader) error {
	if loader != nil {
		doc, ok, err := loader.LoadDocument(ctx)
		if err != nil {
			return err
		}
		if ok {
			s.LoadData(doc)
			return nil
		}
	}
	s.LoadData(domain.NewDocument(s.title, s.clock()))
	return nil
}

// Loaded reports whether a document is present.
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc != nil
}

// Document returns a snapshot of the current document.
func (s *Store) Document() (domain.Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.doc == nil {
		return domain.Document{}, false
	}
	return s.doc.Clone(), true
}

// LoadData replaces the entire document, stamping lastUpdated. Used for the
// initial load and for import. Referential integrity of the input is not
// validated; a dangling swimlane reference renders as an item with no
// matching swimlane.
func (s *Store) LoadData(doc domain.Document) {
	s.mu.Lock()
	next := doc.Clone()
	if next.Swimlanes == nil {
		next.Swimlanes = []domain.Swimlane{}
	}
	if next.Items == nil {
		next.Items = []domain.RoadmapItem{}
	}
	next.LastUpdated = s.clock().UTC()
	s.doc = &next
	snapshot := next.Clone()
	s.mu.Unlock()
	s.notify(snapshot)
}

// SetTitle renames the document.
func (s *Store) SetTitle(title string) {
	s.mutate(func(doc *domain.Document, _ time.Time) bool {
		if title == "" {
			return false
		}
		doc.Title = title
		return true
	})
}

// mutate runs fn against a clone of the current document and publishes the
// result when fn reports a change. No-op when the document is absent.
func (s *Store) mutate(fn func(doc *domain.Document, now time.Time) bool) bool {
	s.mu.Lock()
	if s.doc == nil {
		s.mu.Unlock()
		return false
	}
	now := s.clock().UTC()
	next := s.doc.Clone()
	if !fn(&next, now) {
		s.mu.Unlock()
		return false
	}
	next.LastUpdated = now
	s.doc = &next
	snapshot := next.Clone()
	s.mu.Unlock()
	s.notify(snapshot)
	return true
}

func (s *Store) notify(doc domain.Document) {
	for _, fn := range s.onChange {
		fn(doc)
	}
}

// AddSwimlane appends a swimlane at the end of the display order and returns
// its generated id.
func (s *Store) AddSwimlane(name, color string) string {
	id := s.idGen()
	ok := s.mutate(func(doc *domain.Document, _ time.Time) bool {
		doc.Swimlanes = append(doc.Swimlanes, domain.Swimlane{
			ID:    id,
			Name:  name,
			Color: color,
			Order: len(doc.Swimlanes),
		})
		return true
	})
	if !ok {
		return ""
	}
	return id
}

// SwimlanePatch carries optional swimlane field updates.
type SwimlanePatch struct {
	Name  *string
	Color *string
}

// UpdateSwimlane merges patch fields into the swimlane.
func (s *Store) UpdateSwimlane(id string, patch SwimlanePatch) {
	s.mutate(func(doc *domain.Document, _ time.Time) bool {
		for i := range doc.Swimlanes {
			if doc.Swimlanes[i].ID != id {
				continue
			}
			if patch.Name != nil {
				doc.Swimlanes[i].Name = *patch.Name
			}
			if patch.Color != nil {
				doc.Swimlanes[i].Color = *patch.Color
			}
			return true
		}
		return false
	})
}

// DeleteSwimlane removes the swimlane and cascades deletion of every item
// referencing it. Dependency ids held by items in other swimlanes that
// pointed at the deleted items are left in place and resolve as not-found
// at read time.
func (s *Store) DeleteSwimlane(id string) {
	s.mutate(func(doc *domain.Document, _ time.Time) bool {
		lanes := doc.Swimlanes[:0:0]
		found := false
		for _, lane := range doc.Swimlanes {
			if lane.ID == id {
				found = true
				continue
			}
			lanes = append(lanes, lane)
		}
		if !found {
			return false
		}
		doc.Swimlanes = lanes
		items := doc.Items[:0:0]
		for _, item := range doc.Items {
			if item.SwimlaneID != id {
				items = append(items, item)
			}
		}
		doc.Items = items
		return true
	})
}

// ReorderSwimlanes reassigns every swimlane's order to its index in ids.
// Swimlanes missing from ids are dropped, so callers must pass the complete
// id set.
func (s *Store) ReorderSwimlanes(ids []string) {
	s.mutate(func(doc *domain.Document, _ time.Time) bool {
		doc.Swimlanes = reindexByID(doc.Swimlanes, ids,
			func(lane domain.Swimlane) string { return lane.ID },
			func(lane *domain.Swimlane, order int) { lane.Order = order },
		)
		return true
	})
}

// ItemInput holds the caller-supplied fields for a new item.
type ItemInput struct {
	Type          domain.ItemType
	Title         string
	Description   string
	Stage         domain.Stage
	SwimlaneID    string
	ReportedDate  string
	TargetDate    string
	BlockerStatus domain.BlockerStatus
	Order         int
}

// AddItem generates an id, appends a created change-log entry, and returns
// the new id synchronously so callers can issue optimistic follow-up updates.
func (s *Store) AddItem(in ItemInput) string {
	id := s.idGen()
	logID := s.idGen()
	ok := s.mutate(func(doc *domain.Document, now time.Time) bool {
		itemType, valid := domain.NormalizeItemType(in.Type)
		if !valid {
			itemType = domain.ItemTypeMilestone
		}
		stage, valid := domain.NormalizeStage(in.Stage)
		if !valid {
			stage = domain.StageShortTerm
		}
		item := domain.RoadmapItem{
			ID:              id,
			Type:            itemType,
			Title:           in.Title,
			Description:     in.Description,
			Stage:           stage,
			SwimlaneID:      in.SwimlaneID,
			ReportedDate:    in.ReportedDate,
			TargetDate:      in.TargetDate,
			BlockerStatus:   in.BlockerStatus,
			Order:           in.Order,
			ItemLastUpdated: now,
		}
		item.ChangeLog = domain.AppendChangeLog(nil, domain.ChangeLogEntry{
			ID:          logID,
			Type:        domain.ChangeCreated,
			Timestamp:   now,
			Description: "Created",
		})
		doc.Items = append(doc.Items, item)
		return true
	})
	if !ok {
		return ""
	}
	return id
}

// ItemPatch carries optional item field updates for UpdateItem.
type ItemPatch struct {
	Type          *domain.ItemType
	Title         *string
	Description   *string
	Stage         *domain.Stage
	SwimlaneID    *string
	ReportedDate  *string
	TargetDate    *string
	BlockerStatus *domain.BlockerStatus
	Completed     *bool
	IsWin         *bool
	Order         *int
	OutputIDs     *[]string
}

func (p ItemPatch) apply(item *domain.RoadmapItem) {
	if p.Type != nil {
		if t, ok := domain.NormalizeItemType(*p.Type); ok {
			item.Type = t
		}
	}
	if p.Title != nil {
		item.Title = *p.Title
	}
	if p.Description != nil {
		item.Description = *p.Description
	}
	if p.Stage != nil {
		if stage, ok := domain.NormalizeStage(*p.Stage); ok {
			item.Stage = stage
		}
	}
	if p.SwimlaneID != nil {
		item.SwimlaneID = *p.SwimlaneID
	}
	if p.ReportedDate != nil {
		item.ReportedDate = *p.ReportedDate
	}
	if p.TargetDate != nil {
		item.TargetDate = *p.TargetDate
	}
	if p.BlockerStatus != nil {
		item.BlockerStatus = *p.BlockerStatus
	}
	if p.Completed != nil {
		item.Completed = *p.Completed
	}
	if p.IsWin != nil {
		item.IsWin = *p.IsWin
	}
	if p.Order != nil {
		item.Order = *p.Order
	}
	if p.OutputIDs != nil {
		item.OutputIDs = append([]string(nil), (*p.OutputIDs)...)
	}
}

// UpdateItem merges patch fields into the item and appends change-log
// entries for tracked field transitions between the previous and next value.
func (s *Store) UpdateItem(id string, patch ItemPatch) {
	s.mutate(func(doc *domain.Document, now time.Time) bool {
		idx := doc.ItemIndex(id)
		if idx < 0 {
			return false
		}
		prev := doc.Items[idx].Clone()
		item := &doc.Items[idx]
		patch.apply(item)
		item.ItemLastUpdated = now
		for _, draft := range transitionEntries(prev, *item) {
			s.appendLog(item, draft, now)
		}
		return true
	})
}

// DeleteItem removes the item and scrubs its id from every other item's
// dependsOn, enables, and outputIds lists.
func (s *Store) DeleteItem(id string) {
	s.mutate(func(doc *domain.Document, _ time.Time) bool {
		idx := doc.ItemIndex(id)
		if idx < 0 {
			return false
		}
		doc.Items = append(doc.Items[:idx], doc.Items[idx+1:]...)
		for i := range doc.Items {
			doc.Items[i].ScrubReferences(id)
		}
		return true
	})
}

// ArchiveItem marks the item archived and forces completed. The item stays
// in the document and addressable by id.
func (s *Store) ArchiveItem(id string) {
	s.mutate(func(doc *domain.Document, now time.Time) bool {
		idx := doc.ItemIndex(id)
		if idx < 0 {
			return false
		}
		item := &doc.Items[idx]
		item.Archived = true
		item.Completed = true
		item.ItemLastUpdated = now
		s.appendLog(item, logDraft{Type: domain.ChangeArchived, Description: "Archived"}, now)
		return true
	})
}

// UnarchiveItem clears the archived flag. Completed stays set: unarchiving
// does not revert the completion forced by archiving.
func (s *Store) UnarchiveItem(id string) {
	s.mutate(func(doc *domain.Document, now time.Time) bool {
		idx := doc.ItemIndex(id)
		if idx < 0 {
			return false
		}
		item := &doc.Items[idx]
		item.Archived = false
		item.ItemLastUpdated = now
		s.appendLog(item, logDraft{Type: domain.ChangeUnarchived, Description: "Unarchived"}, now)
		return true
	})
}

// AddDependency records that fromID depends on toID, maintaining the
// reciprocal enables edge. Duplicate adds are no-ops.
func (s *Store) AddDependency(fromID, toID string) {
	s.mutate(func(doc *domain.Document, now time.Time) bool {
		if fromID == toID {
			return false
		}
		fromIdx := doc.ItemIndex(fromID)
		toIdx := doc.ItemIndex(toID)
		if fromIdx < 0 || toIdx < 0 {
			return false
		}
		from := &doc.Items[fromIdx]
		to := &doc.Items[toIdx]
		if from.DependsOnItem(toID) {
			return false
		}
		from.DependsOn = append(from.DependsOn, toID)
		if !to.EnablesItem(fromID) {
			to.Enables = append(to.Enables, fromID)
		}
		from.ItemLastUpdated = now
		to.ItemLastUpdated = now
		return true
	})
}

// RemoveDependency strips both sides of the dependency edge.
func (s *Store) RemoveDependency(fromID, toID string) {
	s.mutate(func(doc *domain.Document, now time.Time) bool {
		fromIdx := doc.ItemIndex(fromID)
		toIdx := doc.ItemIndex(toID)
		if fromIdx < 0 || toIdx < 0 {
			return false
		}
		from := &doc.Items[fromIdx]
		to := &doc.Items[toIdx]
		if !from.DependsOnItem(toID) && !to.EnablesItem(fromID) {
			return false
		}
		from.DependsOn = removeFrom(from.DependsOn, toID)
		to.Enables = removeFrom(to.Enables, fromID)
		from.ItemLastUpdated = now
		to.ItemLastUpdated = now
		return true
	})
}

// LinkInput holds the caller-supplied fields for a new external link.
type LinkInput struct {
	URL   string
	Label string
	Type  domain.LinkType
}

// AddLink appends an external link to the item and returns the link id.
// Output link types (publication, presentation, data) log output_added;
// anything else logs link_added.
func (s *Store) AddLink(itemID string, in LinkInput) string {
	id := s.idGen()
	ok := s.mutate(func(doc *domain.Document, now time.Time) bool {
		idx := doc.ItemIndex(itemID)
		if idx < 0 {
			return false
		}
		item := &doc.Items[idx]
		item.Links = append(item.Links, domain.ExternalLink{
			ID:    id,
			URL:   in.URL,
			Label: in.Label,
			Type:  in.Type,
		})
		item.ItemLastUpdated = now
		draft := logDraft{Type: domain.ChangeLinkAdded, Description: "Added link", Detail: in.Label}
		if in.Type.IsOutput() {
			draft = logDraft{Type: domain.ChangeOutputAdded, Description: "Added output", Detail: in.Label}
		}
		s.appendLog(item, draft, now)
		return true
	})
	if !ok {
		return ""
	}
	return id
}

// RemoveLink deletes the link from the item.
func (s *Store) RemoveLink(itemID, linkID string) {
	s.mutate(func(doc *domain.Document, now time.Time) bool {
		idx := doc.ItemIndex(itemID)
		if idx < 0 {
			return false
		}
		item := &doc.Items[idx]
		links := item.Links[:0:0]
		found := false
		for _, link := range item.Links {
			if link.ID == linkID {
				found = true
				continue
			}
			links = append(links, link)
		}
		if !found {
			return false
		}
		item.Links = links
		item.ItemLastUpdated = now
		return true
	})
}

// AddCheckIn appends a check-in to the item and returns its id.
func (s *Store) AddCheckIn(itemID, label string) string {
	id := s.idGen()
	ok := s.mutate(func(doc *domain.Document, now time.Time) bool {
		idx := doc.ItemIndex(itemID)
		if idx < 0 {
			return false
		}
		item := &doc.Items[idx]
		item.CheckIns = append(item.CheckIns, domain.CheckIn{ID: id, Label: label})
		item.ItemLastUpdated = now
		return true
	})
	if !ok {
		return ""
	}
	return id
}

// ToggleCheckIn flips the completed flag on the check-in.
func (s *Store) ToggleCheckIn(itemID, checkInID string) {
	s.mutate(func(doc *domain.Document, now time.Time) bool {
		idx := doc.ItemIndex(itemID)
		if idx < 0 {
			return false
		}
		item := &doc.Items[idx]
		for i := range item.CheckIns {
			if item.CheckIns[i].ID == checkInID {
				item.CheckIns[i].Completed = !item.CheckIns[i].Completed
				item.ItemLastUpdated = now
				return true
			}
		}
		return false
	})
}

// RemoveCheckIn deletes the check-in from the item.
func (s *Store) RemoveCheckIn(itemID, checkInID string) {
	s.mutate(func(doc *domain.Document, now time.Time) bool {
		idx := doc.ItemIndex(itemID)
		if idx < 0 {
			return false
		}
		item := &doc.Items[idx]
		checkIns := item.CheckIns[:0:0]
		found := false
		for _, checkIn := range item.CheckIns {
			if checkIn.ID == checkInID {
				found = true
				continue
			}
			checkIns = append(checkIns, checkIn)
		}
		if !found {
			return false
		}
		item.CheckIns = checkIns
		item.ItemLastUpdated = now
		return true
	})
}

// appendLog attaches a bounded change-log entry to the item.
func (s *Store) appendLog(item *domain.RoadmapItem, draft logDraft, now time.Time) {
	item.ChangeLog = domain.AppendChangeLog(item.ChangeLog, domain.ChangeLogEntry{
		ID:          s.idGen(),
		Type:        draft.Type,
		Timestamp:   now,
		Description: draft.Description,
		From:        draft.From,
		To:          draft.To,
		Detail:      draft.Detail,
	})
}

func removeFrom(ids []string, id string) []string {
	out := ids[:0:0]
	for _, candidate := range ids {
		if candidate != id {
			out = append(out, candidate)
		}
	}
	return out
}
