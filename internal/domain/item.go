package domain

import (
	"slices"
	"strings"
	"time"
)

// ItemType classifies a roadmap item.
type ItemType string

const (
	ItemTypeMilestone ItemType = "milestone"
	ItemTypeBlocker   ItemType = "blocker"
	ItemTypeGoal      ItemType = "goal"
	ItemTypeOutput    ItemType = "output"
)

var validItemTypes = []ItemType{ItemTypeMilestone, ItemTypeBlocker, ItemTypeGoal, ItemTypeOutput}

// Stage is a timeline bucket forming the board's columns.
type Stage string

const (
	StageOld       Stage = "old"
	StageRecent    Stage = "recent"
	StageShortTerm Stage = "short-term"
	StageLongTerm  Stage = "long-term"
)

var validStages = []Stage{StageOld, StageRecent, StageShortTerm, StageLongTerm}

// Stages returns the board columns in timeline order.
func Stages() []Stage {
	return append([]Stage(nil), validStages...)
}

// Label returns the display name recorded in stage_changed log entries.
func (s Stage) Label() string {
	switch s {
	case StageOld:
		return "Earlier"
	case StageRecent:
		return "Recent"
	case StageShortTerm:
		return "Short Term"
	case StageLongTerm:
		return "Long Term"
	default:
		return string(s)
	}
}

// BlockerStatus tracks blocker mitigation, meaningful only for blockers.
type BlockerStatus string

const (
	BlockerStatusOpen      BlockerStatus = "open"
	BlockerStatusMitigated BlockerStatus = "mitigated"
	BlockerStatusResolved  BlockerStatus = "resolved"
)

// Label returns the display name recorded in status_changed log entries.
func (b BlockerStatus) Label() string {
	if b == "" {
		return ""
	}
	return strings.ToUpper(string(b[:1])) + string(b[1:])
}

// LinkType classifies an external link. Output link types produce an
// output_added log entry instead of link_added.
type LinkType string

const (
	LinkTypePublication  LinkType = "publication"
	LinkTypePresentation LinkType = "presentation"
	LinkTypeData         LinkType = "data"
	LinkTypeOther        LinkType = "other"
)

// IsOutput reports whether the link counts as a produced output.
func (l LinkType) IsOutput() bool {
	return l == LinkTypePublication || l == LinkTypePresentation || l == LinkTypeData
}

// ExternalLink is an owned value record with no independent lifecycle.
type ExternalLink struct {
	ID    string   `json:"id"`
	URL   string   `json:"url"`
	Label string   `json:"label"`
	Type  LinkType `json:"type,omitempty"`
}

// CheckIn is an owned progress marker, meaningful for goal items.
type CheckIn struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	Completed bool   `json:"completed"`
}

// RoadmapItem is the core entity: a unit of work at a swimlane×stage cell.
// SwimlaneID is a reference, not ownership; a dangling reference renders as
// an item with no matching swimlane rather than an error.
type RoadmapItem struct {
	ID              string          `json:"id"`
	Type            ItemType        `json:"type"`
	Title           string          `json:"title"`
	Description     string          `json:"description,omitempty"`
	Stage           Stage           `json:"stage"`
	SwimlaneID      string          `json:"swimlaneId"`
	ReportedDate    string          `json:"reportedDate,omitempty"`
	TargetDate      string          `json:"targetDate,omitempty"`
	BlockerStatus   BlockerStatus   `json:"blockerStatus,omitempty"`
	DependsOn       []string        `json:"dependsOn,omitempty"`
	Enables         []string        `json:"enables,omitempty"`
	OutputIDs       []string        `json:"outputIds,omitempty"`
	Links           []ExternalLink  `json:"links,omitempty"`
	CheckIns        []CheckIn       `json:"checkIns,omitempty"`
	Completed       bool            `json:"completed"`
	IsWin           bool            `json:"isWin"`
	Archived        bool            `json:"archived"`
	Order           int             `json:"order"`
	SubItems        []SubItem       `json:"subItems,omitempty"`
	SubItemConfig   *SubItemConfig  `json:"subItemConfig,omitempty"`
	ItemLastUpdated time.Time       `json:"itemLastUpdated"`
	ChangeLog       []ChangeLogEntry `json:"changeLog,omitempty"`
}

// Clone returns a deep copy of the item.
func (r RoadmapItem) Clone() RoadmapItem {
	out := r
	out.DependsOn = append([]string(nil), r.DependsOn...)
	out.Enables = append([]string(nil), r.Enables...)
	out.OutputIDs = append([]string(nil), r.OutputIDs...)
	out.Links = append([]ExternalLink(nil), r.Links...)
	out.CheckIns = append([]CheckIn(nil), r.CheckIns...)
	out.SubItems = append([]SubItem(nil), r.SubItems...)
	out.ChangeLog = append([]ChangeLogEntry(nil), r.ChangeLog...)
	if r.SubItemConfig != nil {
		cfg := r.SubItemConfig.Clone()
		out.SubItemConfig = &cfg
	}
	return out
}

// DependsOnItem reports whether the item holds a dependsOn edge to id.
func (r RoadmapItem) DependsOnItem(id string) bool {
	return slices.Contains(r.DependsOn, id)
}

// EnablesItem reports whether the item holds an enables edge to id.
func (r RoadmapItem) EnablesItem(id string) bool {
	return slices.Contains(r.Enables, id)
}

// ScrubReferences removes id from every reference list on the item.
func (r *RoadmapItem) ScrubReferences(id string) {
	r.DependsOn = removeID(r.DependsOn, id)
	r.Enables = removeID(r.Enables, id)
	r.OutputIDs = removeID(r.OutputIDs, id)
}

// NormalizeItemType canonicalizes an item type value.
func NormalizeItemType(t ItemType) (ItemType, bool) {
	t = ItemType(strings.TrimSpace(strings.ToLower(string(t))))
	return t, slices.Contains(validItemTypes, t)
}

// NormalizeStage canonicalizes a stage value.
func NormalizeStage(s Stage) (Stage, bool) {
	s = Stage(strings.TrimSpace(strings.ToLower(string(s))))
	return s, slices.Contains(validStages, s)
}

func removeID(ids []string, id string) []string {
	out := ids[:0:0]
	for _, candidate := range ids {
		if candidate != id {
			out = append(out, candidate)
		}
	}
	return out
}
