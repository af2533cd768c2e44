package board

import (
	"encoding/json"
	"fmt"

	"github.com/hylla/fardplan/internal/domain"
)

// ExportData serializes the whole document as pretty-printed JSON,
// schema-identical to the live document shape and losslessly re-importable.
func (s *Store) ExportData() ([]byte, error) {
	doc, ok := s.Document()
	if !ok {
		return nil, ErrNoDocument
	}
	return marshalDocument(doc)
}

// ExportSwimlane serializes a synthetic document containing only the given
// swimlane and its items, titled "{docTitle} - {swimlaneName}".
func (s *Store) ExportSwimlane(id string) ([]byte, error) {
	doc, ok := s.Document()
	if !ok {
		return nil, ErrNoDocument
	}
	lane, ok := doc.Swimlane(id)
	if !ok {
		return nil, fmt.Errorf("swimlane %q: %w", id, ErrNotFound)
	}
	out := domain.Document{
		Title:       doc.Title + " - " + lane.Name,
		LastUpdated: doc.LastUpdated,
		Swimlanes:   []domain.Swimlane{lane},
		Items:       []domain.RoadmapItem{},
	}
	for _, item := range doc.Items {
		if item.SwimlaneID == id {
			out.Items = append(out.Items, item)
		}
	}
	return marshalDocument(out)
}

// ExportItem serializes a synthetic single-item document titled
// "{docTitle} - {itemTitle}".
func (s *Store) ExportItem(id string) ([]byte, error) {
	doc, ok := s.Document()
	if !ok {
		return nil, ErrNoDocument
	}
	item, ok := doc.Item(id)
	if !ok {
		return nil, fmt.Errorf("item %q: %w", id, ErrNotFound)
	}
	out := domain.Document{
		Title:       doc.Title + " - " + item.Title,
		LastUpdated: doc.LastUpdated,
		Swimlanes:   []domain.Swimlane{},
		Items:       []domain.RoadmapItem{item},
	}
	if lane, ok := doc.Swimlane(item.SwimlaneID); ok {
		out.Swimlanes = append(out.Swimlanes, lane)
	}
	return marshalDocument(out)
}

// Import parses data as a full document and loads it wholesale. No schema
// validation or migration runs; a parse failure leaves the store untouched.
func (s *Store) Import(data []byte) error {
	var doc domain.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	s.LoadData(doc)
	return nil
}

func marshalDocument(doc domain.Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}
	return data, nil
}
