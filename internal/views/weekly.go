package views

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/alexanderramin/planboard/internal/domain"
)

// ReportWeekStart is the first day of a report week.
const ReportWeekStart = time.Monday

const reportDivider = "-------------------------------------------"

type ReportStory struct {
	Story domain.Story
	Tasks []domain.Task
}

type ReportEpic struct {
	Epic    domain.Epic
	Stories []ReportStory
}

// Report is the nested weekly report. Every epic and story appears; only
// tasks starting inside the week are listed.
type Report struct {
	WeekStart domain.Date
	WeekEnd   domain.Date
	Epics     []ReportEpic
}

// Week returns the Monday-based week containing ref.
func Week(ref domain.Date) (start, end domain.Date) {
	start = ref.StartOfWeek(ReportWeekStart)
	return start, start.AddDays(6)
}

func NextWeek(ref domain.Date) domain.Date { return ref.AddDays(7) }
func PrevWeek(ref domain.Date) domain.Date { return ref.AddDays(-7) }

// WeeklyReport builds the report for the week containing ref. Tasks within a
// story are ordered by priority class, keeping plan order among equals.
func WeeklyReport(s domain.ProjectState, ref domain.Date) Report {
	r := Report{Epics: []ReportEpic{}}
	r.WeekStart, r.WeekEnd = Week(ref)

	for _, e := range s.Epics {
		re := ReportEpic{Epic: e, Stories: []ReportStory{}}
		for _, st := range s.StoriesOf(e.ID) {
			rs := ReportStory{Story: st, Tasks: []domain.Task{}}
			for _, t := range s.TasksOf(st.ID) {
				if !t.StartDate.IsZero() && t.StartDate.Within(r.WeekStart, r.WeekEnd) {
					rs.Tasks = append(rs.Tasks, t)
				}
			}
			slices.SortStableFunc(rs.Tasks, func(a, b domain.Task) int {
				return cmp.Compare(domain.ClassifyPriority(a.Priority), domain.ClassifyPriority(b.Priority))
			})
			re.Stories = append(re.Stories, rs)
		}
		r.Epics = append(r.Epics, re)
	}
	return r
}

// TaskCount is the number of task lines in the report.
func (r Report) TaskCount() int {
	n := 0
	for _, e := range r.Epics {
		for _, st := range e.Stories {
			n += len(st.Tasks)
		}
	}
	return n
}

// Text renders the downloadable plain-text report.
func (r Report) Text() string {
	var b strings.Builder
	b.WriteString("Weekly Project Report\n")
	fmt.Fprintf(&b, "Week of %s\n\n", r.WeekStart.Format("January 2, 2006"))

	for _, e := range r.Epics {
		fmt.Fprintf(&b, "Epic: %s\n", e.Epic.Title)
		fmt.Fprintf(&b, "%s\n\n", e.Epic.Description)
		for _, st := range e.Stories {
			fmt.Fprintf(&b, "  Story: %s\n", st.Story.Title)
			fmt.Fprintf(&b, "  Points: %d\n", st.Story.Points)
			for _, t := range st.Tasks {
				fmt.Fprintf(&b, "    - %s (%s)\n", t.Title, t.Status)
				fmt.Fprintf(&b, "      Assigned to: %s\n", t.Assignee)
				fmt.Fprintf(&b, "      Priority: %s\n", t.Priority)
				fmt.Fprintf(&b, "      Due: %s\n", t.EndDate.Format("Jan 2, 2006"))
			}
			b.WriteString("\n")
		}
		b.WriteString(reportDivider + "\n\n")
	}
	return b.String()
}

// FileName is the download name of the report.
func (r Report) FileName() string {
	return "weekly-report-" + r.WeekStart.String() + ".txt"
}
