package views

import (
	"time"

	"github.com/alexanderramin/planboard/internal/domain"
)

// TimelineWeekStart is the first day of a timeline week.
const TimelineWeekStart = time.Sunday

// Span places one item on the timeline as fractions of the window.
type Span struct {
	ID    string
	Title string
	Start domain.Date
	End   domain.Date
	Left  float64
	Width float64
}

type TimelineStory struct {
	Span
	Tasks []Span
}

type TimelineEpic struct {
	Span
	Stories []TimelineStory
}

type WeekLabel struct {
	Date  domain.Date
	Label string
}

// Timeline is the milestone layout of a plan.
type Timeline struct {
	Start     domain.Date
	End       domain.Date
	TotalDays int
	Weeks     []WeekLabel
	Epics     []TimelineEpic
}

// IsEmpty reports whether there is nothing to draw.
func (tl Timeline) IsEmpty() bool { return tl.TotalDays == 0 }

// BuildTimeline lays out epics, derived story bars and task bars. The window
// runs from the week start on or before the earliest date to the latest date.
// Stories without tasks and items with dangling references are skipped.
func BuildTimeline(s domain.ProjectState) Timeline {
	var dates []domain.Date
	for _, e := range s.Epics {
		dates = append(dates, e.StartDate, e.EndDate)
	}
	for _, t := range s.Tasks {
		dates = append(dates, t.StartDate, t.EndDate)
	}
	lo, hi := domain.MinDate(dates...), domain.MaxDate(dates...)
	if lo.IsZero() {
		return Timeline{}
	}

	tl := Timeline{Start: lo.StartOfWeek(TimelineWeekStart), End: hi}
	tl.TotalDays = max(tl.Start.DaysUntil(tl.End)+1, 1)

	for i := 0; i < (tl.TotalDays+6)/7; i++ {
		d := tl.Start.AddDays(7 * i)
		tl.Weeks = append(tl.Weeks, WeekLabel{Date: d, Label: d.Format("Jan 2")})
	}

	for _, e := range s.Epics {
		row := TimelineEpic{Span: tl.place(e.ID, e.Title, e.StartDate, e.EndDate)}
		for _, st := range s.StoriesOf(e.ID) {
			tasks := s.TasksOf(st.ID)
			if len(tasks) == 0 {
				continue
			}
			story := TimelineStory{}
			var starts, ends []domain.Date
			for _, t := range tasks {
				starts = append(starts, t.StartDate)
				ends = append(ends, t.EndDate)
				story.Tasks = append(story.Tasks, tl.place(t.ID, t.Title, t.StartDate, t.EndDate))
			}
			story.Span = tl.place(st.ID, st.Title, domain.MinDate(starts...), domain.MaxDate(ends...))
			row.Stories = append(row.Stories, story)
		}
		tl.Epics = append(tl.Epics, row)
	}
	return tl
}

// place converts a date range to window fractions. An inverted range yields
// zero width.
func (tl Timeline) place(id, title string, start, end domain.Date) Span {
	total := float64(tl.TotalDays)
	sp := Span{ID: id, Title: title, Start: start, End: end}
	if start.IsZero() {
		return sp
	}
	if end.IsZero() {
		end = start
	}
	sp.Left = float64(tl.Start.DaysUntil(start)) / total
	sp.Width = max(float64(start.DaysUntil(end)+1), 0) / total
	return sp
}
