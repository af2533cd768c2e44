package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/hylla/fardplan/internal/board"
	"github.com/hylla/fardplan/internal/domain"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("230"))
	laneStyle   = lipgloss.NewStyle().Bold(true)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	winStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
)

// Board renders the filtered board as a swimlane×stage table.
func Board(doc domain.Document, filters board.Filters) string {
	lanes := board.FilteredSwimlanes(doc, filters)
	items := board.FilteredItems(doc, filters)

	byCell := make(map[string]map[domain.Stage][]domain.RoadmapItem)
	for _, item := range items {
		cell, ok := byCell[item.SwimlaneID]
		if !ok {
			cell = make(map[domain.Stage][]domain.RoadmapItem)
			byCell[item.SwimlaneID] = cell
		}
		cell[item.Stage] = append(cell[item.Stage], item)
	}

	stages := domain.Stages()
	headers := make([]string, 0, len(stages)+1)
	headers = append(headers, "Swimlane")
	for _, stage := range stages {
		headers = append(headers, stage.Label())
	}

	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("62"))).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == 0 {
				return headerStyle
			}
			if col == 0 {
				return laneStyle
			}
			return lipgloss.NewStyle()
		})

	for _, lane := range lanes {
		row := make([]string, 0, len(stages)+1)
		laneCell := lane.Name
		if lane.Color != "" {
			laneCell = lipgloss.NewStyle().Foreground(lipgloss.Color(lane.Color)).Render(lane.Name)
		}
		row = append(row, laneCell)
		for _, stage := range stages {
			row = append(row, renderCell(byCell[lane.ID][stage]))
		}
		tbl = tbl.Row(row...)
	}

	var out strings.Builder
	out.WriteString(titleStyle.Render(doc.Title))
	out.WriteByte('\n')
	out.WriteString(dimStyle.Render(fmt.Sprintf("%d items shown, %d archived", len(items), board.ArchivedCount(doc))))
	out.WriteByte('\n')
	out.WriteString(tbl.Render())
	return out.String()
}

func renderCell(items []domain.RoadmapItem) string {
	if len(items) == 0 {
		return ""
	}
	lines := make([]string, 0, len(items))
	for _, item := range items {
		line := typeGlyph(item.Type) + " " + item.Title
		if item.Completed {
			line += " ✓"
		}
		if item.IsWin {
			line = winStyle.Render(line + " ★")
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func typeGlyph(t domain.ItemType) string {
	switch t {
	case domain.ItemTypeMilestone:
		return "◆"
	case domain.ItemTypeBlocker:
		return "⛔"
	case domain.ItemTypeGoal:
		return "◎"
	case domain.ItemTypeOutput:
		return "↗"
	default:
		return "·"
	}
}

// ItemDetail renders one item for terminal display, including its
// description markdown, dependency lists, sub-items, and change log.
func ItemDetail(doc domain.Document, item domain.RoadmapItem, md *MarkdownRenderer, width int) string {
	var out strings.Builder
	header := typeGlyph(item.Type) + " " + item.Title
	if item.IsWin {
		header = winStyle.Render(header + " ★")
	}
	out.WriteString(titleStyle.Render(header))
	out.WriteByte('\n')

	meta := []string{string(item.Type), item.Stage.Label()}
	if lane, ok := doc.Swimlane(item.SwimlaneID); ok {
		meta = append(meta, lane.Name)
	}
	if item.Type == domain.ItemTypeBlocker && item.BlockerStatus != "" {
		meta = append(meta, item.BlockerStatus.Label())
	}
	if item.Completed {
		meta = append(meta, "completed")
	}
	if item.Archived {
		meta = append(meta, "archived")
	}
	out.WriteString(dimStyle.Render(strings.Join(meta, " · ")))
	out.WriteByte('\n')

	if item.TargetDate != "" {
		out.WriteString(dimStyle.Render("target: " + item.TargetDate))
		out.WriteByte('\n')
	}

	if item.Description != "" {
		out.WriteByte('\n')
		if md != nil {
			out.WriteString(md.Render(item.Description, width))
		} else {
			out.WriteString(item.Description)
		}
		out.WriteByte('\n')
	}

	writeItemList(&out, "Depends on", board.Dependencies(doc, item.ID))
	writeItemList(&out, "Enables", board.Dependents(doc, item.ID))

	if len(item.Links) > 0 {
		out.WriteByte('\n')
		out.WriteString(headerStyle.Render("Links"))
		out.WriteByte('\n')
		for _, link := range item.Links {
			label := link.Label
			if label == "" {
				label = link.URL
			}
			out.WriteString(fmt.Sprintf("  %s <%s>\n", label, link.URL))
		}
	}

	if len(item.SubItems) > 0 {
		counts := board.CountSubItems(doc, item.ID)
		out.WriteByte('\n')
		out.WriteString(headerStyle.Render(fmt.Sprintf("Sub-items (%d/%d)", counts.Completed, counts.Total)))
		out.WriteByte('\n')
		for _, sub := range item.SubItems {
			marker := "[ ]"
			if sub.Completed {
				marker = "[x]"
			}
			out.WriteString(fmt.Sprintf("  %s %s\n", marker, sub.Title))
		}
	}

	if len(item.ChangeLog) > 0 {
		out.WriteByte('\n')
		out.WriteString(headerStyle.Render("Recent changes"))
		out.WriteByte('\n')
		for _, entry := range item.ChangeLog {
			out.WriteString(fmt.Sprintf("  %s  %s\n", entry.Timestamp.Format("2006-01-02 15:04"), entry.Description))
		}
	}

	return strings.TrimRight(out.String(), "\n")
}

func writeItemList(out *strings.Builder, heading string, items []domain.RoadmapItem) {
	if len(items) == 0 {
		return
	}
	out.WriteByte('\n')
	out.WriteString(headerStyle.Render(heading))
	out.WriteByte('\n')
	for _, item := range items {
		out.WriteString("  " + typeGlyph(item.Type) + " " + item.Title + "\n")
	}
}
