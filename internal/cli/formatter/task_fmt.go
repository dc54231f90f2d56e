package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/planboard/internal/domain"
)

// FormatTask renders a single task with its comments and attachments.
func FormatTask(t domain.Task, today domain.Date, now time.Time) string {
	var details strings.Builder
	fmt.Fprintf(&details, "%s %s\n", Dim("ID:      "), t.ID)
	fmt.Fprintf(&details, "%s %s\n", Dim("Story:   "), t.StoryID)
	fmt.Fprintf(&details, "%s %s\n", Dim("Status:  "), StatusStyle(t.Status).Render(t.Status.Title()))
	fmt.Fprintf(&details, "%s %s\n", Dim("Priority:"), PriorityBadge(t.Priority))
	fmt.Fprintf(&details, "%s %s\n", Dim("Assignee:"), displayAssignee(t.Assignee))
	fmt.Fprintf(&details, "%s %s  %s", Dim("Dates:   "), DateRange(t.StartDate, t.EndDate), DueStyled(t, today))
	if t.Description != "" {
		fmt.Fprintf(&details, "\n\n%s", t.Description)
	}

	var b strings.Builder
	b.WriteString(RenderBox(t.Title, details.String()))
	b.WriteString("\n")

	if len(t.Comments) > 0 {
		b.WriteString("\n")
		b.WriteString(Header(fmt.Sprintf("Comments (%d)", len(t.Comments))))
		b.WriteString("\n")
		for _, c := range t.Comments {
			fmt.Fprintf(&b, "%s %s\n  %s\n",
				Bold(displayAssignee(c.UserID)), Dim(HumanTimestamp(c.CreatedAt, now)), c.Content)
		}
	}

	if len(t.Attachments) > 0 {
		b.WriteString("\n")
		b.WriteString(Header(fmt.Sprintf("Attachments (%d)", len(t.Attachments))))
		b.WriteString("\n")
		rows := make([][]string, 0, len(t.Attachments))
		for _, a := range t.Attachments {
			rows = append(rows, []string{a.Name, Dim(a.Type), FormatSize(a.Size), StyleBlue.Render(a.URL)})
		}
		b.WriteString(RenderTable([]string{"NAME", "TYPE", "SIZE", "URL"}, rows))
	}
	return b.String()
}

// FormatSize renders a byte count as B, KB or MB.
func FormatSize(n int64) string {
	switch {
	case n <= 0:
		return "--"
	case n < 1024:
		return fmt.Sprintf("%d B", n)
	case n < 1024*1024:
		return fmt.Sprintf("%.1f KB", float64(n)/1024)
	default:
		return fmt.Sprintf("%.1f MB", float64(n)/(1024*1024))
	}
}
