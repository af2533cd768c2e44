package domain

import (
	"strings"
	"time"
)

// DefaultDocumentTitle is used when no persisted document exists at startup.
const DefaultDocumentTitle = "Roadmap"

// Document is the root aggregate: one board of swimlanes and items.
// Field names follow the board's JSON wire format, so a marshalled Document
// is the export format and an exported file re-imports losslessly.
type Document struct {
	Title       string        `json:"title"`
	LastUpdated time.Time     `json:"lastUpdated"`
	Swimlanes   []Swimlane    `json:"swimlanes"`
	Items       []RoadmapItem `json:"items"`
}

// Swimlane is a named, colored horizontal lane. Order drives display sort
// and is the reorder target.
type Swimlane struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Order int    `json:"order"`
}

// NewDocument returns an empty board with the given title.
func NewDocument(title string, now time.Time) Document {
	title = strings.TrimSpace(title)
	if title == "" {
		title = DefaultDocumentTitle
	}
	return Document{
		Title:       title,
		LastUpdated: now.UTC(),
		Swimlanes:   []Swimlane{},
		Items:       []RoadmapItem{},
	}
}

// Clone returns a deep copy. Store mutations operate on a clone and publish
// it wholesale, so the previously observed value is never written through.
func (d Document) Clone() Document {
	out := d
	out.Swimlanes = append([]Swimlane(nil), d.Swimlanes...)
	out.Items = make([]RoadmapItem, len(d.Items))
	for i, item := range d.Items {
		out.Items[i] = item.Clone()
	}
	return out
}

// Swimlane returns the swimlane with the given id.
func (d Document) Swimlane(id string) (Swimlane, bool) {
	for _, lane := range d.Swimlanes {
		if lane.ID == id {
			return lane, true
		}
	}
	return Swimlane{}, false
}

// Item returns the item with the given id.
func (d Document) Item(id string) (RoadmapItem, bool) {
	for _, item := range d.Items {
		if item.ID == id {
			return item, true
		}
	}
	return RoadmapItem{}, false
}

// ItemIndex returns the position of the item with the given id, or -1.
func (d Document) ItemIndex(id string) int {
	for i, item := range d.Items {
		if item.ID == id {
			return i
		}
	}
	return -1
}
