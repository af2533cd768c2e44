package domain

import "time"

// ChangeType names a tracked field transition recorded in an item's log.
type ChangeType string

const (
	ChangeCreated          ChangeType = "created"
	ChangeCompleted        ChangeType = "completed"
	ChangeArchived         ChangeType = "archived"
	ChangeUnarchived       ChangeType = "unarchived"
	ChangeStatusChanged    ChangeType = "status_changed"
	ChangeStageChanged     ChangeType = "stage_changed"
	ChangeLinkAdded        ChangeType = "link_added"
	ChangeSubItemAdded     ChangeType = "subitem_added"
	ChangeSubItemCompleted ChangeType = "subitem_completed"
	ChangeMarkedWin        ChangeType = "marked_win"
	ChangeOutputAdded      ChangeType = "output_added"
)

// MaxChangeLogEntries bounds per-item history; appending beyond the bound
// evicts the oldest entry.
const MaxChangeLogEntries = 2

// ChangeLogEntry is an immutable history record attached to an item.
type ChangeLogEntry struct {
	ID          string     `json:"id"`
	Type        ChangeType `json:"type"`
	Timestamp   time.Time  `json:"timestamp"`
	Description string     `json:"description"`
	From        string     `json:"from,omitempty"`
	To          string     `json:"to,omitempty"`
	Detail      string     `json:"detail,omitempty"`
}

// AppendChangeLog appends entry and keeps only the most recent entries, in
// append order.
func AppendChangeLog(log []ChangeLogEntry, entry ChangeLogEntry) []ChangeLogEntry {
	log = append(log, entry)
	if len(log) > MaxChangeLogEntries {
		log = log[len(log)-MaxChangeLogEntries:]
	}
	return log
}
