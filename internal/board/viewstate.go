package board

import (
	"sync"

	"github.com/hylla/fardplan/internal/domain"
)

// Filters selects the subset of the document the board renders. Every
// criterion is independently skippable: an empty swimlane list means all
// swimlanes, not none.
type Filters struct {
	Swimlanes       []string
	Stages          []domain.Stage
	Types           []domain.ItemType
	BlockerStatuses []domain.BlockerStatus
	ShowCompleted   bool
	Search          string
}

// DefaultFilters returns the unfiltered view with completed items shown.
func DefaultFilters() Filters {
	return Filters{ShowCompleted: true}
}

// ViewState holds ephemeral UI state: selection, filters, hover, expansion,
// tab, and edit mode. Independently constructible from the document store;
// mutating it never touches the document.
type ViewState struct {
	mu             sync.RWMutex
	filters        Filters
	editMode       bool
	selectedItemID string
	expandedItemID string
	hoveredItemID  string
	activeTab      string
}

// NewViewState returns view state with default filters and editing enabled.
func NewViewState() *ViewState {
	return &ViewState{
		filters:  DefaultFilters(),
		editMode: true,
	}
}

// Filters returns the active filter set.
func (v *ViewState) Filters() Filters {
	v.mu.RLock()
	defer v.mu.RUnlock()
	f := v.filters
	f.Swimlanes = append([]string(nil), v.filters.Swimlanes...)
	f.Stages = append([]domain.Stage(nil), v.filters.Stages...)
	f.Types = append([]domain.ItemType(nil), v.filters.Types...)
	f.BlockerStatuses = append([]domain.BlockerStatus(nil), v.filters.BlockerStatuses...)
	return f
}

// SetFilters replaces the active filter set.
func (v *ViewState) SetFilters(f Filters) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.filters = f
}

// ClearFilters restores the default unfiltered view.
func (v *ViewState) ClearFilters() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.filters = DefaultFilters()
}

// EditMode reports whether editing is enabled.
func (v *ViewState) EditMode() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.editMode
}

// SetEditMode toggles read-only presentation, applied once at startup from
// the read-only query parameter.
func (v *ViewState) SetEditMode(enabled bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.editMode = enabled
}

// SetFocusedItem selects and expands the item, used for item-focus
// bootstrapping.
func (v *ViewState) SetFocusedItem(id string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.selectedItemID = id
	v.expandedItemID = id
}

// SelectedItem returns the selected item id.
func (v *ViewState) SelectedItem() string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.selectedItemID
}

// SetSelectedItem records the selected item id.
func (v *ViewState) SetSelectedItem(id string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.selectedItemID = id
}

// ExpandedItem returns the expanded item id.
func (v *ViewState) ExpandedItem() string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.expandedItemID
}

// SetExpandedItem records the expanded item id.
func (v *ViewState) SetExpandedItem(id string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.expandedItemID = id
}

// HoveredItem returns the hovered item id.
func (v *ViewState) HoveredItem() string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.hoveredItemID
}

// SetHoveredItem records the hovered item id.
func (v *ViewState) SetHoveredItem(id string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.hoveredItemID = id
}

// ActiveTab returns the active tab name.
func (v *ViewState) ActiveTab() string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.activeTab
}

// SetActiveTab records the active tab name.
func (v *ViewState) SetActiveTab(tab string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.activeTab = tab
}
