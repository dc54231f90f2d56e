package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/planboard/internal/domain"
	"github.com/alexanderramin/planboard/internal/views"
	"github.com/charmbracelet/lipgloss"
)

const boardColumnWidth = 28

// FormatBoard lays the kanban columns side by side. Each card shows the task
// id, title, priority and assignee.
func FormatBoard(cols []views.Column) string {
	total, done := 0, 0
	rendered := make([]string, 0, len(cols))
	for _, col := range cols {
		total += len(col.Tasks)
		if col.Status == domain.StatusDone {
			done += len(col.Tasks)
		}
		rendered = append(rendered, formatColumn(col))
	}

	var b strings.Builder
	b.WriteString(Header("Board"))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
	b.WriteString("\n\n")
	pct := 0.0
	if total > 0 {
		pct = float64(done) / float64(total)
	}
	fmt.Fprintf(&b, "%s %s\n", Dim(fmt.Sprintf("%d/%d done", done, total)), RenderProgress(pct, 20))
	return b.String()
}

func formatColumn(col views.Column) string {
	var b strings.Builder
	title := fmt.Sprintf("%s (%d)", col.Title, len(col.Tasks))
	b.WriteString(StatusStyle(col.Status).Bold(true).Render(title))
	b.WriteString("\n")
	b.WriteString(Dim(strings.Repeat("─", boardColumnWidth-2)))
	b.WriteString("\n")
	if len(col.Tasks) == 0 {
		b.WriteString(Dim("(empty)"))
		b.WriteString("\n")
	}
	for _, t := range col.Tasks {
		b.WriteString(formatCard(t))
		b.WriteString("\n")
	}
	return lipgloss.NewStyle().Width(boardColumnWidth).PaddingRight(2).Render(b.String())
}

func formatCard(t domain.Task) string {
	line := PriorityStyle(t.Priority).Render("●") + " " + Bold(Truncate(t.Title, boardColumnWidth-4))
	meta := TruncID(t.ID)
	if t.Assignee != "" {
		meta += " " + Dim(Truncate(t.Assignee, boardColumnWidth-12))
	}
	return line + "\n  " + meta
}
