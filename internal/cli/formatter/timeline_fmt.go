package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/planboard/internal/views"
	"github.com/charmbracelet/lipgloss"
)

const (
	timelineLabelWidth = 26
	timelineTrackWidth = 56
)

// FormatTimeline draws one bar per epic, story and task across a shared
// track. Week labels are placed at their offset in the window.
func FormatTimeline(tl views.Timeline) string {
	if tl.IsEmpty() {
		return Dim("No timeline yet. Generate a plan first.") + "\n"
	}

	var b strings.Builder
	b.WriteString(Header("Timeline"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s\n\n", Dim(fmt.Sprintf("%s → %s (%d days)",
		tl.Start.Format("Jan 2, 2006"), tl.End.Format("Jan 2, 2006"), tl.TotalDays)))

	b.WriteString(strings.Repeat(" ", timelineLabelWidth))
	b.WriteString(Dim(weekRuler(tl)))
	b.WriteString("\n")

	for _, e := range tl.Epics {
		b.WriteString(timelineRow(e.Title, 0, e.Span, StyleHeader.Render))
		for _, s := range e.Stories {
			b.WriteString(timelineRow(s.Title, 1, s.Span, StyleBlue.Render))
			for _, t := range s.Tasks {
				b.WriteString(timelineRow(t.Title, 2, t, StyleGreen.Render))
			}
		}
	}
	return b.String()
}

func timelineRow(title string, depth int, span views.Span, style func(...string) string) string {
	label := strings.Repeat("  ", depth) + Truncate(title, timelineLabelWidth-2-2*depth)
	label = lipgloss.NewStyle().Width(timelineLabelWidth).Render(label)
	bar := RenderBar(span.Left, span.Width, timelineTrackWidth, style)
	dates := Dim(DateRange(span.Start, span.End))
	return label + bar + " " + dates + "\n"
}

// weekRuler writes each week label at its position on the track. A label
// that would overlap the previous one is dropped.
func weekRuler(tl views.Timeline) string {
	ruler := []rune(strings.Repeat(" ", timelineTrackWidth))
	next := 0
	for _, w := range tl.Weeks {
		offset := tl.Start.DaysUntil(w.Date) * timelineTrackWidth / tl.TotalDays
		if offset < next || offset >= timelineTrackWidth {
			continue
		}
		label := []rune(w.Label)
		for i, r := range label {
			if offset+i < len(ruler) {
				ruler[offset+i] = r
			}
		}
		next = offset + len(label) + 1
	}
	return strings.TrimRight(string(ruler), " ")
}
