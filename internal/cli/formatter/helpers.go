package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/planboard/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		return boxStyle.Render(titleRendered + "\n\n" + content)
	}

	return boxStyle.Render(content)
}

// RelativeDay describes d relative to today, e.g. "In 3d" or "2w ago".
func RelativeDay(d, today domain.Date) string {
	days := today.DaysUntil(d)

	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Tomorrow"
	case days == -1:
		return "Yesterday"
	case days > 0 && days < 14:
		return fmt.Sprintf("In %dd", days)
	case days > 0 && days < 60:
		return fmt.Sprintf("In %dw", days/7)
	case days > 0:
		return fmt.Sprintf("In %dmo", days/30)
	case days > -14:
		return fmt.Sprintf("%dd ago", -days)
	case days > -60:
		return fmt.Sprintf("%dw ago", -days/7)
	default:
		return fmt.Sprintf("%dmo ago", -days/30)
	}
}

// DueStyled colors a task end date by urgency. Done tasks are always dim.
func DueStyled(t domain.Task, today domain.Date) string {
	if t.EndDate.IsZero() {
		return Dim("--")
	}
	text := RelativeDay(t.EndDate, today)
	if t.Status == domain.StatusDone {
		return Dim(text)
	}
	days := today.DaysUntil(t.EndDate)
	switch {
	case days <= 2:
		return StyleRed.Render(text)
	case days <= 7:
		return StyleYellow.Render(text)
	default:
		return StyleFg.Render(text)
	}
}

// HumanTimestamp returns a relative timestamp for comments and attachments.
func HumanTimestamp(t, now time.Time) string {
	diff := now.Sub(t)

	switch {
	case t.IsZero():
		return "--"
	case diff < 0:
		return t.Format("Jan 2, 2006")
	case diff < time.Minute:
		return "Just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	default:
		return t.Format("Jan 2, 2006")
	}
}

// DateRange renders "Feb 1 – Feb 15" or "--" when both ends are unset.
func DateRange(start, end domain.Date) string {
	if start.IsZero() && end.IsZero() {
		return "--"
	}
	return fmt.Sprintf("%s – %s", shortDate(start), shortDate(end))
}

func shortDate(d domain.Date) string {
	if d.IsZero() {
		return "?"
	}
	return d.Format("Jan 2")
}

// RoleBadge renders a resource role in purple.
func RoleBadge(r domain.Role) string {
	if r == "" {
		return StyleDim.Render("--")
	}
	return StylePurple.Render(string(r))
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// Truncate shortens s to at most n visible runes, ending with "…".
func Truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}
