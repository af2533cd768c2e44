package board

import (
	"fmt"

	"github.com/hylla/fardplan/internal/domain"
)

// logDraft is a change-log entry before id and timestamp assignment.
type logDraft struct {
	Type        domain.ChangeType
	Description string
	From        string
	To          string
	Detail      string
}

// transitionRule pairs a predicate over a previous/next item pair with the
// entry it produces. Rules are evaluated in order on every item update.
type transitionRule struct {
	applies func(prev, next domain.RoadmapItem) bool
	build   func(prev, next domain.RoadmapItem) logDraft
}

var transitionRules = []transitionRule{
	{
		// Rising edge only: un-completing is not logged.
		applies: func(prev, next domain.RoadmapItem) bool {
			return !prev.Completed && next.Completed
		},
		build: func(_, _ domain.RoadmapItem) logDraft {
			return logDraft{Type: domain.ChangeCompleted, Description: "Completed"}
		},
	},
	{
		applies: func(prev, next domain.RoadmapItem) bool {
			return !prev.IsWin && next.IsWin
		},
		build: func(_, _ domain.RoadmapItem) logDraft {
			return logDraft{Type: domain.ChangeMarkedWin, Description: "Marked as win"}
		},
	},
	{
		applies: func(prev, next domain.RoadmapItem) bool {
			return next.Stage != "" && next.Stage != prev.Stage
		},
		build: func(prev, next domain.RoadmapItem) logDraft {
			return logDraft{
				Type:        domain.ChangeStageChanged,
				Description: fmt.Sprintf("Moved from %s to %s", prev.Stage.Label(), next.Stage.Label()),
				From:        prev.Stage.Label(),
				To:          next.Stage.Label(),
			}
		},
	},
	{
		applies: func(prev, next domain.RoadmapItem) bool {
			return next.BlockerStatus != "" && next.BlockerStatus != prev.BlockerStatus
		},
		build: func(prev, next domain.RoadmapItem) logDraft {
			return logDraft{
				Type:        domain.ChangeStatusChanged,
				Description: fmt.Sprintf("Status changed from %s to %s", prev.BlockerStatus.Label(), next.BlockerStatus.Label()),
				From:        prev.BlockerStatus.Label(),
				To:          next.BlockerStatus.Label(),
			}
		},
	},
}

// transitionEntries returns the log entries an update from prev to next
// produces, in rule order.
func transitionEntries(prev, next domain.RoadmapItem) []logDraft {
	var out []logDraft
	for _, rule := range transitionRules {
		if rule.applies(prev, next) {
			out = append(out, rule.build(prev, next))
		}
	}
	return out
}
