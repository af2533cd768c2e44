// Package httpapi provides the REST HTTP adapter the browser board talks to.
package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/hylla/fardplan/internal/board"
	"github.com/hylla/fardplan/internal/domain"
)

// maxRequestBodyBytes limits decoded JSON payload size for fail-closed request handling.
const maxRequestBodyBytes int64 = 1 << 20

// Handler serves the versioned API subrouter mounted under `/api/v1`.
type Handler struct {
	store *board.Store
	view  *board.ViewState
}

// APIError represents one structured API failure response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorEnvelope wraps one structured API error.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// NewHandler constructs the HTTP API adapter over the document and
// view-state stores.
func NewHandler(store *board.Store, view *board.ViewState) *Handler {
	if view == nil {
		view = board.NewViewState()
	}
	return &Handler{store: store, view: view}
}

// ServeHTTP routes one versioned API request to the matching handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	segments := splitPath(r.URL.Path)
	if len(segments) == 0 {
		writeNotFound(w)
		return
	}
	switch segments[0] {
	case "document":
		h.routeDocument(w, r, segments[1:])
	case "view":
		h.routeView(w, r, segments[1:])
	case "export":
		h.routeExport(w, r, segments[1:])
	case "swimlanes":
		h.routeSwimlanes(w, r, segments[1:])
	case "items":
		h.routeItems(w, r, segments[1:])
	default:
		writeNotFound(w)
	}
}

type renameDocumentRequest struct {
	Title string `json:"title"`
}

func (h *Handler) routeDocument(w http.ResponseWriter, r *http.Request, rest []string) {
	if len(rest) != 0 {
		writeNotFound(w)
		return
	}
	switch r.Method {
	case http.MethodGet:
		doc, ok := h.store.Document()
		if !ok {
			writeJSONError(w, http.StatusServiceUnavailable, APIError{Code: "no_document", Message: "no document loaded"})
			return
		}
		writeJSON(w, http.StatusOK, doc)
	case http.MethodPut:
		if !h.requireEdit(w) {
			return
		}
		body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBodyBytes))
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, APIError{Code: "bad_request", Message: "read body"})
			return
		}
		if err := h.store.Import(body); err != nil {
			writeJSONError(w, http.StatusBadRequest, APIError{Code: "invalid_json", Message: err.Error()})
			return
		}
		w.WriteHeader(http.StatusNoContent)
	case http.MethodPatch:
		if !h.requireEdit(w) {
			return
		}
		var req renameDocumentRequest
		if !decodeBody(w, r, &req) {
			return
		}
		h.store.SetTitle(req.Title)
		w.WriteHeader(http.StatusNoContent)
	default:
		writeMethodNotAllowed(w, http.MethodGet, http.MethodPut, http.MethodPatch)
	}
}

// ViewResponse is the derived projection the board renders.
type ViewResponse struct {
	Title     string                 `json:"title"`
	EditMode  bool                   `json:"editMode"`
	Swimlanes []domain.Swimlane      `json:"swimlanes"`
	Items     []domain.RoadmapItem   `json:"items"`
	Edges     []board.DependencyEdge `json:"edges"`
	Archived  int                    `json:"archivedCount"`
}

func (h *Handler) routeView(w http.ResponseWriter, r *http.Request, rest []string) {
	if len(rest) != 0 {
		writeNotFound(w)
		return
	}
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}
	doc, ok := h.store.Document()
	if !ok {
		writeJSONError(w, http.StatusServiceUnavailable, APIError{Code: "no_document", Message: "no document loaded"})
		return
	}
	filters := filtersFromQuery(r, h.view.Filters())
	writeJSON(w, http.StatusOK, ViewResponse{
		Title:     doc.Title,
		EditMode:  h.view.EditMode(),
		Swimlanes: board.FilteredSwimlanes(doc, filters),
		Items:     board.FilteredItems(doc, filters),
		Edges:     board.DependencyEdges(doc, filters),
		Archived:  board.ArchivedCount(doc),
	})
}

func (h *Handler) routeExport(w http.ResponseWriter, r *http.Request, rest []string) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}
	var (
		data []byte
		err  error
	)
	switch {
	case len(rest) == 0:
		data, err = h.store.ExportData()
	case len(rest) == 2 && rest[0] == "swimlanes":
		data, err = h.store.ExportSwimlane(rest[1])
	case len(rest) == 2 && rest[0] == "items":
		data, err = h.store.ExportItem(rest[1])
	default:
		writeNotFound(w)
		return
	}
	if err != nil {
		writeErrorFrom(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

type swimlaneRequest struct {
	Name  *string `json:"name"`
	Color *string `json:"color"`
}

type reorderRequest struct {
	IDs []string `json:"ids"`
}

type createdResponse struct {
	ID string `json:"id"`
}

func (h *Handler) routeSwimlanes(w http.ResponseWriter, r *http.Request, rest []string) {
	switch {
	case len(rest) == 0:
		switch r.Method {
		case http.MethodGet:
			doc, ok := h.store.Document()
			if !ok {
				writeJSONError(w, http.StatusServiceUnavailable, APIError{Code: "no_document", Message: "no document loaded"})
				return
			}
			writeJSON(w, http.StatusOK, board.FilteredSwimlanes(doc, board.Filters{}))
		case http.MethodPost:
			if !h.requireEdit(w) {
				return
			}
			var req swimlaneRequest
			if !decodeBody(w, r, &req) {
				return
			}
			id := h.store.AddSwimlane(stringValue(req.Name), stringValue(req.Color))
			if id == "" {
				writeJSONError(w, http.StatusServiceUnavailable, APIError{Code: "no_document", Message: "no document loaded"})
				return
			}
			writeJSON(w, http.StatusCreated, createdResponse{ID: id})
		default:
			writeMethodNotAllowed(w, http.MethodGet, http.MethodPost)
		}
	case len(rest) == 1 && rest[0] == "reorder":
		if r.Method != http.MethodPost {
			writeMethodNotAllowed(w, http.MethodPost)
			return
		}
		if !h.requireEdit(w) {
			return
		}
		var req reorderRequest
		if !decodeBody(w, r, &req) {
			return
		}
		h.store.ReorderSwimlanes(req.IDs)
		w.WriteHeader(http.StatusNoContent)
	case len(rest) == 1:
		id := rest[0]
		switch r.Method {
		case http.MethodPatch:
			if !h.requireEdit(w) {
				return
			}
			var req swimlaneRequest
			if !decodeBody(w, r, &req) {
				return
			}
			h.store.UpdateSwimlane(id, board.SwimlanePatch{Name: req.Name, Color: req.Color})
			w.WriteHeader(http.StatusNoContent)
		case http.MethodDelete:
			if !h.requireEdit(w) {
				return
			}
			h.store.DeleteSwimlane(id)
			w.WriteHeader(http.StatusNoContent)
		default:
			writeMethodNotAllowed(w, http.MethodPatch, http.MethodDelete)
		}
	default:
		writeNotFound(w)
	}
}

type itemRequest struct {
	Type          *domain.ItemType      `json:"type"`
	Title         *string               `json:"title"`
	Description   *string               `json:"description"`
	Stage         *domain.Stage         `json:"stage"`
	SwimlaneID    *string               `json:"swimlaneId"`
	ReportedDate  *string               `json:"reportedDate"`
	TargetDate    *string               `json:"targetDate"`
	BlockerStatus *domain.BlockerStatus `json:"blockerStatus"`
	Completed     *bool                 `json:"completed"`
	IsWin         *bool                 `json:"isWin"`
	Order         *int                  `json:"order"`
	OutputIDs     *[]string             `json:"outputIds"`
}

func (req itemRequest) patch() board.ItemPatch {
	return board.ItemPatch{
		Type:          req.Type,
		Title:         req.Title,
		Description:   req.Description,
		Stage:         req.Stage,
		SwimlaneID:    req.SwimlaneID,
		ReportedDate:  req.ReportedDate,
		TargetDate:    req.TargetDate,
		BlockerStatus: req.BlockerStatus,
		Completed:     req.Completed,
		IsWin:         req.IsWin,
		Order:         req.Order,
		OutputIDs:     req.OutputIDs,
	}
}

func (h *Handler) routeItems(w http.ResponseWriter, r *http.Request, rest []string) {
	if len(rest) == 0 {
		if r.Method != http.MethodPost {
			writeMethodNotAllowed(w, http.MethodPost)
			return
		}
		if !h.requireEdit(w) {
			return
		}
		var req itemRequest
		if !decodeBody(w, r, &req) {
			return
		}
		in := board.ItemInput{
			Title:        stringValue(req.Title),
			Description:  stringValue(req.Description),
			SwimlaneID:   stringValue(req.SwimlaneID),
			ReportedDate: stringValue(req.ReportedDate),
			TargetDate:   stringValue(req.TargetDate),
		}
		if req.Type != nil {
			in.Type = *req.Type
		}
		if req.Stage != nil {
			in.Stage = *req.Stage
		}
		if req.BlockerStatus != nil {
			in.BlockerStatus = *req.BlockerStatus
		}
		if req.Order != nil {
			in.Order = *req.Order
		}
		id := h.store.AddItem(in)
		if id == "" {
			writeJSONError(w, http.StatusServiceUnavailable, APIError{Code: "no_document", Message: "no document loaded"})
			return
		}
		writeJSON(w, http.StatusCreated, createdResponse{ID: id})
		return
	}

	itemID := rest[0]
	rest = rest[1:]
	if len(rest) == 0 {
		h.handleItem(w, r, itemID)
		return
	}
	switch rest[0] {
	case "archive", "unarchive":
		if len(rest) != 1 {
			writeNotFound(w)
			return
		}
		if r.Method != http.MethodPost {
			writeMethodNotAllowed(w, http.MethodPost)
			return
		}
		if !h.requireEdit(w) {
			return
		}
		if rest[0] == "archive" {
			h.store.ArchiveItem(itemID)
		} else {
			h.store.UnarchiveItem(itemID)
		}
		w.WriteHeader(http.StatusNoContent)
	case "dependencies":
		h.routeDependencies(w, r, itemID, rest[1:])
	case "links":
		h.routeLinks(w, r, itemID, rest[1:])
	case "checkins":
		h.routeCheckIns(w, r, itemID, rest[1:])
	case "subitems":
		h.routeSubItems(w, r, itemID, rest[1:])
	case "substages":
		h.routeSubStages(w, r, itemID, rest[1:])
	case "subswimlanes":
		h.routeSubSwimlanes(w, r, itemID, rest[1:])
	case "viewtype":
		h.routeViewType(w, r, itemID, rest[1:])
	default:
		writeNotFound(w)
	}
}

// ItemDetail is one item with its derived context.
type ItemDetail struct {
	Item         domain.RoadmapItem   `json:"item"`
	Dependencies []domain.RoadmapItem `json:"dependencies"`
	Dependents   []domain.RoadmapItem `json:"dependents"`
	SubItems     board.SubItemCount   `json:"subItemCount"`
	SubStages    []domain.SubStage    `json:"subStages"`
	SubSwimlanes []domain.SubSwimlane `json:"subSwimlanes"`
}

func (h *Handler) handleItem(w http.ResponseWriter, r *http.Request, itemID string) {
	switch r.Method {
	case http.MethodGet:
		doc, ok := h.store.Document()
		if !ok {
			writeJSONError(w, http.StatusServiceUnavailable, APIError{Code: "no_document", Message: "no document loaded"})
			return
		}
		item, ok := doc.Item(itemID)
		if !ok {
			writeNotFound(w)
			return
		}
		writeJSON(w, http.StatusOK, ItemDetail{
			Item:         item,
			Dependencies: board.Dependencies(doc, itemID),
			Dependents:   board.Dependents(doc, itemID),
			SubItems:     board.CountSubItems(doc, itemID),
			SubStages:    board.SubStages(doc, itemID),
			SubSwimlanes: board.SubSwimlanes(doc, itemID),
		})
	case http.MethodPatch:
		if !h.requireEdit(w) {
			return
		}
		var req itemRequest
		if !decodeBody(w, r, &req) {
			return
		}
		h.store.UpdateItem(itemID, req.patch())
		w.WriteHeader(http.StatusNoContent)
	case http.MethodDelete:
		if !h.requireEdit(w) {
			return
		}
		h.store.DeleteItem(itemID)
		w.WriteHeader(http.StatusNoContent)
	default:
		writeMethodNotAllowed(w, http.MethodGet, http.MethodPatch, http.MethodDelete)
	}
}

func (h *Handler) routeDependencies(w http.ResponseWriter, r *http.Request, itemID string, rest []string) {
	if len(rest) != 1 {
		writeNotFound(w)
		return
	}
	if !h.requireEdit(w) {
		return
	}
	switch r.Method {
	case http.MethodPost:
		h.store.AddDependency(itemID, rest[0])
		w.WriteHeader(http.StatusNoContent)
	case http.MethodDelete:
		h.store.RemoveDependency(itemID, rest[0])
		w.WriteHeader(http.StatusNoContent)
	default:
		writeMethodNotAllowed(w, http.MethodPost, http.MethodDelete)
	}
}

type linkRequest struct {
	URL   string          `json:"url"`
	Label string          `json:"label"`
	Type  domain.LinkType `json:"type"`
}

func (h *Handler) routeLinks(w http.ResponseWriter, r *http.Request, itemID string, rest []string) {
	switch {
	case len(rest) == 0:
		if r.Method != http.MethodPost {
			writeMethodNotAllowed(w, http.MethodPost)
			return
		}
		if !h.requireEdit(w) {
			return
		}
		var req linkRequest
		if !decodeBody(w, r, &req) {
			return
		}
		id := h.store.AddLink(itemID, board.LinkInput{URL: req.URL, Label: req.Label, Type: req.Type})
		if id == "" {
			writeNotFound(w)
			return
		}
		writeJSON(w, http.StatusCreated, createdResponse{ID: id})
	case len(rest) == 1:
		if r.Method != http.MethodDelete {
			writeMethodNotAllowed(w, http.MethodDelete)
			return
		}
		if !h.requireEdit(w) {
			return
		}
		h.store.RemoveLink(itemID, rest[0])
		w.WriteHeader(http.StatusNoContent)
	default:
		writeNotFound(w)
	}
}

type checkInRequest struct {
	Label string `json:"label"`
}

func (h *Handler) routeCheckIns(w http.ResponseWriter, r *http.Request, itemID string, rest []string) {
	switch {
	case len(rest) == 0:
		if r.Method != http.MethodPost {
			writeMethodNotAllowed(w, http.MethodPost)
			return
		}
		if !h.requireEdit(w) {
			return
		}
		var req checkInRequest
		if !decodeBody(w, r, &req) {
			return
		}
		id := h.store.AddCheckIn(itemID, req.Label)
		if id == "" {
			writeNotFound(w)
			return
		}
		writeJSON(w, http.StatusCreated, createdResponse{ID: id})
	case len(rest) == 1:
		switch r.Method {
		case http.MethodPatch:
			if !h.requireEdit(w) {
				return
			}
			h.store.ToggleCheckIn(itemID, rest[0])
			w.WriteHeader(http.StatusNoContent)
		case http.MethodDelete:
			if !h.requireEdit(w) {
				return
			}
			h.store.RemoveCheckIn(itemID, rest[0])
			w.WriteHeader(http.StatusNoContent)
		default:
			writeMethodNotAllowed(w, http.MethodPatch, http.MethodDelete)
		}
	default:
		writeNotFound(w)
	}
}

type subItemRequest struct {
	Title         *string                 `json:"title"`
	Completed     *bool                   `json:"completed"`
	Priority      *domain.SubItemPriority `json:"priority"`
	StatusTagID   *string                 `json:"statusTagId"`
	SubStageID    *string                 `json:"subStageId"`
	SubSwimlaneID *string                 `json:"subSwimlaneId"`
	Order         *int                    `json:"order"`
}

func (h *Handler) routeSubItems(w http.ResponseWriter, r *http.Request, itemID string, rest []string) {
	switch {
	case len(rest) == 0:
		if r.Method != http.MethodPost {
			writeMethodNotAllowed(w, http.MethodPost)
			return
		}
		if !h.requireEdit(w) {
			return
		}
		var req subItemRequest
		if !decodeBody(w, r, &req) {
			return
		}
		in := board.SubItemInput{
			Title:         stringValue(req.Title),
			StatusTagID:   stringValue(req.StatusTagID),
			SubStageID:    stringValue(req.SubStageID),
			SubSwimlaneID: stringValue(req.SubSwimlaneID),
		}
		if req.Priority != nil {
			in.Priority = *req.Priority
		}
		id := h.store.AddSubItem(itemID, in)
		if id == "" {
			writeNotFound(w)
			return
		}
		writeJSON(w, http.StatusCreated, createdResponse{ID: id})
	case len(rest) == 1 && rest[0] == "reorder":
		if r.Method != http.MethodPost {
			writeMethodNotAllowed(w, http.MethodPost)
			return
		}
		if !h.requireEdit(w) {
			return
		}
		var req reorderRequest
		if !decodeBody(w, r, &req) {
			return
		}
		h.store.ReorderSubItems(itemID, req.IDs)
		w.WriteHeader(http.StatusNoContent)
	case len(rest) == 1:
		switch r.Method {
		case http.MethodPatch:
			if !h.requireEdit(w) {
				return
			}
			var req subItemRequest
			if !decodeBody(w, r, &req) {
				return
			}
			h.store.UpdateSubItem(itemID, rest[0], board.SubItemPatch{
				Title:         req.Title,
				Completed:     req.Completed,
				Priority:      req.Priority,
				StatusTagID:   req.StatusTagID,
				SubStageID:    req.SubStageID,
				SubSwimlaneID: req.SubSwimlaneID,
				Order:         req.Order,
			})
			w.WriteHeader(http.StatusNoContent)
		case http.MethodDelete:
			if !h.requireEdit(w) {
				return
			}
			h.store.DeleteSubItem(itemID, rest[0])
			w.WriteHeader(http.StatusNoContent)
		default:
			writeMethodNotAllowed(w, http.MethodPatch, http.MethodDelete)
		}
	default:
		writeNotFound(w)
	}
}

type namedRequest struct {
	Name  *string `json:"name"`
	Color *string `json:"color"`
}

func (h *Handler) routeSubStages(w http.ResponseWriter, r *http.Request, itemID string, rest []string) {
	switch {
	case len(rest) == 0:
		if r.Method != http.MethodPost {
			writeMethodNotAllowed(w, http.MethodPost)
			return
		}
		if !h.requireEdit(w) {
			return
		}
		var req namedRequest
		if !decodeBody(w, r, &req) {
			return
		}
		id := h.store.AddSubStage(itemID, stringValue(req.Name))
		if id == "" {
			writeNotFound(w)
			return
		}
		writeJSON(w, http.StatusCreated, createdResponse{ID: id})
	case len(rest) == 1 && rest[0] == "reorder":
		if r.Method != http.MethodPost {
			writeMethodNotAllowed(w, http.MethodPost)
			return
		}
		if !h.requireEdit(w) {
			return
		}
		var req reorderRequest
		if !decodeBody(w, r, &req) {
			return
		}
		h.store.ReorderSubStages(itemID, req.IDs)
		w.WriteHeader(http.StatusNoContent)
	case len(rest) == 1:
		switch r.Method {
		case http.MethodPatch:
			if !h.requireEdit(w) {
				return
			}
			var req namedRequest
			if !decodeBody(w, r, &req) {
				return
			}
			h.store.UpdateSubStage(itemID, rest[0], stringValue(req.Name))
			w.WriteHeader(http.StatusNoContent)
		case http.MethodDelete:
			if !h.requireEdit(w) {
				return
			}
			h.store.DeleteSubStage(itemID, rest[0])
			w.WriteHeader(http.StatusNoContent)
		default:
			writeMethodNotAllowed(w, http.MethodPatch, http.MethodDelete)
		}
	default:
		writeNotFound(w)
	}
}

func (h *Handler) routeSubSwimlanes(w http.ResponseWriter, r *http.Request, itemID string, rest []string) {
	switch {
	case len(rest) == 0:
		if r.Method != http.MethodPost {
			writeMethodNotAllowed(w, http.MethodPost)
			return
		}
		if !h.requireEdit(w) {
			return
		}
		var req namedRequest
		if !decodeBody(w, r, &req) {
			return
		}
		id := h.store.AddSubSwimlane(itemID, stringValue(req.Name), stringValue(req.Color))
		if id == "" {
			writeNotFound(w)
			return
		}
		writeJSON(w, http.StatusCreated, createdResponse{ID: id})
	case len(rest) == 1:
		switch r.Method {
		case http.MethodPatch:
			if !h.requireEdit(w) {
				return
			}
			var req namedRequest
			if !decodeBody(w, r, &req) {
				return
			}
			h.store.UpdateSubSwimlane(itemID, rest[0], req.Name, req.Color)
			w.WriteHeader(http.StatusNoContent)
		case http.MethodDelete:
			if !h.requireEdit(w) {
				return
			}
			h.store.DeleteSubSwimlane(itemID, rest[0])
			w.WriteHeader(http.StatusNoContent)
		default:
			writeMethodNotAllowed(w, http.MethodPatch, http.MethodDelete)
		}
	default:
		writeNotFound(w)
	}
}

type viewTypeRequest struct {
	ViewType domain.SubBoardViewType `json:"viewType"`
}

func (h *Handler) routeViewType(w http.ResponseWriter, r *http.Request, itemID string, rest []string) {
	if len(rest) != 0 {
		writeNotFound(w)
		return
	}
	if r.Method != http.MethodPut {
		writeMethodNotAllowed(w, http.MethodPut)
		return
	}
	if !h.requireEdit(w) {
		return
	}
	var req viewTypeRequest
	if !decodeBody(w, r, &req) {
		return
	}
	h.store.SetSubBoardViewType(itemID, req.ViewType)
	w.WriteHeader(http.StatusNoContent)
}

// requireEdit rejects mutations while the board runs in read-only mode.
func (h *Handler) requireEdit(w http.ResponseWriter) bool {
	if h.view.EditMode() {
		return true
	}
	writeJSONError(w, http.StatusForbidden, APIError{Code: "read_only", Message: "board is in read-only mode"})
	return false
}

// filtersFromQuery overlays request query parameters on the base filters.
func filtersFromQuery(r *http.Request, base board.Filters) board.Filters {
	q := r.URL.Query()
	if values, ok := q["swimlane"]; ok {
		base.Swimlanes = nonEmpty(values)
	}
	if values, ok := q["stage"]; ok {
		base.Stages = nil
		for _, raw := range nonEmpty(values) {
			if stage, ok := domain.NormalizeStage(domain.Stage(raw)); ok {
				base.Stages = append(base.Stages, stage)
			}
		}
	}
	if values, ok := q["type"]; ok {
		base.Types = nil
		for _, raw := range nonEmpty(values) {
			if itemType, ok := domain.NormalizeItemType(domain.ItemType(raw)); ok {
				base.Types = append(base.Types, itemType)
			}
		}
	}
	if values, ok := q["blockerStatus"]; ok {
		base.BlockerStatuses = nil
		for _, raw := range nonEmpty(values) {
			base.BlockerStatuses = append(base.BlockerStatuses, domain.BlockerStatus(raw))
		}
	}
	if raw := q.Get("showCompleted"); raw != "" {
		if parsed, err := strconv.ParseBool(raw); err == nil {
			base.ShowCompleted = parsed
		}
	}
	if raw := q.Get("q"); raw != "" {
		base.Search = raw
	}
	return base
}

func nonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func splitPath(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	decoder := json.NewDecoder(io.LimitReader(r.Body, maxRequestBodyBytes))
	if err := decoder.Decode(dst); err != nil {
		writeJSONError(w, http.StatusBadRequest, APIError{Code: "bad_request", Message: fmt.Sprintf("decode body: %v", err)})
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeJSONError(w http.ResponseWriter, status int, apiErr APIError) {
	writeJSON(w, status, ErrorEnvelope{Error: apiErr})
}

func writeNotFound(w http.ResponseWriter) {
	writeJSONError(w, http.StatusNotFound, APIError{Code: "not_found", Message: "endpoint not found"})
}

func writeMethodNotAllowed(w http.ResponseWriter, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	writeJSONError(w, http.StatusMethodNotAllowed, APIError{Code: "method_not_allowed", Message: "method not allowed"})
}

func writeErrorFrom(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, board.ErrNotFound):
		writeJSONError(w, http.StatusNotFound, APIError{Code: "not_found", Message: err.Error()})
	case errors.Is(err, board.ErrNoDocument):
		writeJSONError(w, http.StatusServiceUnavailable, APIError{Code: "no_document", Message: err.Error()})
	default:
		writeJSONError(w, http.StatusInternalServerError, APIError{Code: "internal", Message: err.Error()})
	}
}
