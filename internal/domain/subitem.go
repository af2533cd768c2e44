package domain

// SubItemPriority ranks a nested task.
type SubItemPriority string

const (
	SubItemPriorityCritical SubItemPriority = "critical"
	SubItemPriorityHigh     SubItemPriority = "high"
	SubItemPriorityMedium   SubItemPriority = "medium"
	SubItemPriorityLow      SubItemPriority = "low"
)

// SubItem is a task nested under one roadmap item and destroyed with it.
// SubStageID, SubSwimlaneID, and StatusTagID reference the parent item's
// own mini-board configuration.
type SubItem struct {
	ID            string          `json:"id"`
	Title         string          `json:"title"`
	Completed     bool            `json:"completed"`
	Priority      SubItemPriority `json:"priority,omitempty"`
	StatusTagID   string          `json:"statusTagId,omitempty"`
	SubStageID    string          `json:"subStageId,omitempty"`
	SubSwimlaneID string          `json:"subSwimlaneId,omitempty"`
	Order         int             `json:"order"`
}

// SubBoardViewType selects how an item's nested board renders.
type SubBoardViewType string

const (
	SubBoardViewTasks   SubBoardViewType = "tasks"
	SubBoardViewKanban  SubBoardViewType = "kanban"
	SubBoardViewRoadmap SubBoardViewType = "roadmap"
)

// SubStage is one column of an item's nested board.
type SubStage struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Order int    `json:"order"`
}

// SubSwimlane is one lane of an item's nested board.
type SubSwimlane struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
	Order int    `json:"order"`
}

// StatusTag is a colored label assignable to sub-items.
type StatusTag struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// SubItemConfig is the per-item nested-board configuration. It is lazily
// materialized on the first sub-item, sub-stage, or sub-swimlane mutation.
type SubItemConfig struct {
	ViewType         SubBoardViewType `json:"viewType"`
	CustomStages     []SubStage       `json:"customStages"`
	CustomSwimlanes  []SubSwimlane    `json:"customSwimlanes"`
	CustomStatusTags []StatusTag      `json:"customStatusTags"`
}

// Clone returns a deep copy of the configuration.
func (c SubItemConfig) Clone() SubItemConfig {
	out := c
	out.CustomStages = append([]SubStage(nil), c.CustomStages...)
	out.CustomSwimlanes = append([]SubSwimlane(nil), c.CustomSwimlanes...)
	out.CustomStatusTags = append([]StatusTag(nil), c.CustomStatusTags...)
	return out
}

// DefaultSubStages returns the fixed four-stage set new configs start with.
func DefaultSubStages() []SubStage {
	return []SubStage{
		{ID: "backlog", Name: "Backlog", Order: 0},
		{ID: "up-next", Name: "Up Next", Order: 1},
		{ID: "in-progress", Name: "In Progress", Order: 2},
		{ID: "done", Name: "Done", Order: 3},
	}
}

// DefaultStatusTags returns the fixed five-tag set new configs start with.
func DefaultStatusTags() []StatusTag {
	return []StatusTag{
		{ID: "on-track", Name: "On Track", Color: "#22c55e"},
		{ID: "at-risk", Name: "At Risk", Color: "#eab308"},
		{ID: "blocked", Name: "Blocked", Color: "#ef4444"},
		{ID: "needs-review", Name: "Needs Review", Color: "#3b82f6"},
		{ID: "on-hold", Name: "On Hold", Color: "#a855f7"},
	}
}

// NewSubItemConfig returns the default configuration. Sub-swimlanes default
// to empty, not a fixed set.
func NewSubItemConfig() SubItemConfig {
	return SubItemConfig{
		ViewType:         SubBoardViewTasks,
		CustomStages:     DefaultSubStages(),
		CustomSwimlanes:  []SubSwimlane{},
		CustomStatusTags: DefaultStatusTags(),
	}
}
