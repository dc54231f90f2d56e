package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/planboard/internal/domain"
	"github.com/alexanderramin/planboard/internal/views"
	"github.com/charmbracelet/lipgloss"
)

const weekCellWidth = 16

// FormatWeek renders the seven-day grid. today is highlighted when it falls
// inside the week.
func FormatWeek(days []views.Day, today domain.Date) string {
	if len(days) == 0 {
		return ""
	}

	var b strings.Builder
	first, last := days[0].Date, days[len(days)-1].Date
	b.WriteString(Header("Week of " + first.Format("Jan 2")))
	b.WriteString("\n")
	b.WriteString(Dim(DateRange(first, last)))
	b.WriteString("\n\n")

	cells := make([]string, 0, len(days))
	for _, d := range days {
		cells = append(cells, formatDay(d, today))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	b.WriteString("\n")
	return b.String()
}

func formatDay(d views.Day, today domain.Date) string {
	var b strings.Builder
	title := d.Date.Format("Mon 2")
	if d.Date.Equal(today) {
		b.WriteString(StyleHeader.Render(title + " •"))
	} else {
		b.WriteString(Bold(title))
	}
	b.WriteString("\n")
	b.WriteString(Dim(strings.Repeat("─", weekCellWidth-2)))
	b.WriteString("\n")
	if len(d.Tasks) == 0 {
		b.WriteString(Dim("·"))
	}
	for _, t := range d.Tasks {
		b.WriteString(PriorityStyle(t.Priority).Render(Truncate(t.Title, weekCellWidth-2)))
		b.WriteString("\n")
	}
	return lipgloss.NewStyle().Width(weekCellWidth).PaddingRight(1).Render(b.String())
}

// FormatReport renders the weekly report for the terminal. The downloadable
// text form is views.Report.Text.
func FormatReport(r views.Report) string {
	var b strings.Builder
	b.WriteString(Header("Weekly report"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s\n\n", Dim(fmt.Sprintf("Week of %s · %d tasks",
		r.WeekStart.Format("January 2, 2006"), r.TaskCount())))

	for _, e := range r.Epics {
		fmt.Fprintf(&b, "%s\n", StyleHeader.Render(e.Epic.Title))
		if e.Epic.Description != "" {
			fmt.Fprintf(&b, "%s\n", Dim(e.Epic.Description))
		}
		for _, st := range e.Stories {
			fmt.Fprintf(&b, "  %s %s\n", Bold(st.Story.Title), Dim(fmt.Sprintf("(%d pts)", st.Story.Points)))
			if len(st.Tasks) == 0 {
				fmt.Fprintf(&b, "    %s\n", Dim("no tasks this week"))
			}
			for _, t := range st.Tasks {
				fmt.Fprintf(&b, "    %s %s %s %s\n",
					PriorityStyle(t.Priority).Render("●"),
					t.Title,
					StatusStyle(t.Status).Render("["+t.Status.Title()+"]"),
					Dim(fmt.Sprintf("%s · due %s", displayAssignee(t.Assignee), t.EndDate.Format("Jan 2"))))
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

func displayAssignee(a string) string {
	if a == "" {
		return "unassigned"
	}
	return a
}
