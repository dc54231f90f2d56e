package views

import (
	"strings"
	"testing"

	"github.com/alexanderramin/planboard/internal/domain"
	"github.com/alexanderramin/planboard/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) domain.Date { return domain.MustParseDate(s) }

func TestBoard_CountsSumToTotal(t *testing.T) {
	plan := testutil.NewTestPlan()
	plan.Tasks = append(plan.Tasks,
		testutil.NewTestTask("T2", "S1", testutil.WithStatus(domain.StatusInProgress)),
		testutil.NewTestTask("T3", "S1", testutil.WithStatus(domain.StatusReview)),
		testutil.NewTestTask("T4", "S1", testutil.WithStatus(domain.StatusDone)),
		testutil.NewTestTask("T5", "S1", testutil.WithStatus(domain.StatusDone)),
	)
	s := testutil.NewTestState(plan)

	cols := Board(s)
	require.Len(t, cols, 4)
	assert.Equal(t, []string{"To Do", "In Progress", "Review", "Done"},
		[]string{cols[0].Title, cols[1].Title, cols[2].Title, cols[3].Title})

	counts := Counts(cols)
	total := 0
	for _, n := range counts {
		total += n
	}
	assert.Equal(t, len(s.Tasks), total)
	assert.Equal(t, 2, counts[domain.StatusDone])
}

func TestBoard_EmptyState(t *testing.T) {
	for _, c := range Board(domain.EmptyState()) {
		assert.Empty(t, c.Tasks)
	}
}

func TestTimeline_FullSpanEpic(t *testing.T) {
	// 2024-02-04 is a Sunday so the window starts on the epic's first day.
	plan := domain.Plan{
		Epics:   []domain.Epic{testutil.NewTestEpic("E1", testutil.WithEpicSpan("2024-02-04", "2024-02-17"))},
		Stories: []domain.Story{testutil.NewTestStory("S1", "E1")},
		Tasks:   []domain.Task{testutil.NewTestTask("T1", "S1", testutil.WithTaskSpan("2024-02-05", "2024-02-06"))},
	}
	tl := BuildTimeline(testutil.NewTestState(plan))

	assert.Equal(t, d("2024-02-04"), tl.Start)
	assert.Equal(t, 14, tl.TotalDays)
	require.Len(t, tl.Epics, 1)
	epic := tl.Epics[0]
	assert.InDelta(t, 0, epic.Left, 1e-9)
	assert.InDelta(t, 1, epic.Left+epic.Width, 1e-9)
	assert.Len(t, tl.Weeks, 2)
	assert.Equal(t, "Feb 4", tl.Weeks[0].Label)
}

func TestTimeline_FloorsToSunday(t *testing.T) {
	tl := BuildTimeline(testutil.NewTestState(testutil.NewTestPlan()))
	// 2024-02-01 is a Thursday.
	assert.Equal(t, d("2024-01-28"), tl.Start)
	assert.Equal(t, d("2024-02-15"), tl.End)
	assert.Equal(t, 19, tl.TotalDays)
}

func TestTimeline_StoryBarsDerivedFromTasks(t *testing.T) {
	plan := domain.Plan{
		Epics: []domain.Epic{testutil.NewTestEpic("E1")},
		Stories: []domain.Story{
			testutil.NewTestStory("S1", "E1"),
			testutil.NewTestStory("S2", "E1"),
			testutil.NewTestStory("S3", "E404"),
		},
		Tasks: []domain.Task{
			testutil.NewTestTask("T1", "S1", testutil.WithTaskSpan("2024-02-03", "2024-02-05")),
			testutil.NewTestTask("T2", "S1", testutil.WithTaskSpan("2024-02-08", "2024-02-10")),
			testutil.NewTestTask("T3", "S3"),
		},
	}
	tl := BuildTimeline(testutil.NewTestState(plan))

	require.Len(t, tl.Epics, 1)
	require.Len(t, tl.Epics[0].Stories, 1, "story without tasks and dangling story are skipped")
	story := tl.Epics[0].Stories[0]
	assert.Equal(t, d("2024-02-03"), story.Start)
	assert.Equal(t, d("2024-02-10"), story.End)
	assert.Len(t, story.Tasks, 2)
}

func TestTimeline_DegenerateInput(t *testing.T) {
	assert.True(t, BuildTimeline(domain.EmptyState()).IsEmpty())

	plan := domain.Plan{
		Epics:   []domain.Epic{testutil.NewTestEpic("E1", testutil.WithEpicSpan("2024-02-04", "2024-02-04"))},
		Stories: []domain.Story{testutil.NewTestStory("S1", "E1")},
		Tasks:   []domain.Task{testutil.NewTestTask("T1", "S1", testutil.WithTaskSpan("2024-02-04", "2024-02-01"))},
	}
	tl := BuildTimeline(testutil.NewTestState(plan))
	assert.GreaterOrEqual(t, tl.TotalDays, 1)
	task := tl.Epics[0].Stories[0].Tasks[0]
	assert.Zero(t, task.Width, "inverted span has no width")
}

func TestWeeklyReport_TaskStartingInWeek(t *testing.T) {
	s := testutil.NewTestState(testutil.NewTestPlan())

	r := WeeklyReport(s, d("2024-01-29"))
	assert.Equal(t, d("2024-01-29"), r.WeekStart)
	assert.Equal(t, d("2024-02-04"), r.WeekEnd)
	require.Len(t, r.Epics, 1)
	require.Len(t, r.Epics[0].Stories, 1)
	require.Len(t, r.Epics[0].Stories[0].Tasks, 1)
	assert.Equal(t, domain.StatusTodo, r.Epics[0].Stories[0].Tasks[0].Status)
	assert.Equal(t, 1, strings.Count(r.Text(), "- Task T1 (todo)"))
}

func TestWeeklyReport_EmptyContainers(t *testing.T) {
	s := testutil.NewTestState(testutil.NewTestPlan())

	r := WeeklyReport(s, d("2024-02-12"))
	require.Len(t, r.Epics, 1)
	require.Len(t, r.Epics[0].Stories, 1)
	assert.Empty(t, r.Epics[0].Stories[0].Tasks)
	assert.Zero(t, r.TaskCount())
	assert.NotContains(t, r.Text(), "Task T1")
}

func TestWeeklyReport_IgnoresTasksOutsideWeek(t *testing.T) {
	plan := testutil.NewTestPlan()
	// Spans the whole report week but starts before it.
	plan.Tasks = append(plan.Tasks, testutil.NewTestTask("T2", "S1", testutil.WithTaskSpan("2024-01-20", "2024-02-20")))
	r := WeeklyReport(testutil.NewTestState(plan), d("2024-01-31"))
	assert.Equal(t, 1, r.TaskCount())
}

func TestWeeklyReport_OrdersByPriority(t *testing.T) {
	plan := testutil.NewTestPlan()
	plan.Tasks = []domain.Task{
		testutil.NewTestTask("low", "S1", testutil.WithPriority(domain.PriorityLow)),
		testutil.NewTestTask("med", "S1", testutil.WithPriority(domain.PriorityMedium)),
		testutil.NewTestTask("high", "S1", testutil.WithPriority(domain.PriorityHigh)),
	}
	r := WeeklyReport(testutil.NewTestState(plan), d("2024-02-01"))
	tasks := r.Epics[0].Stories[0].Tasks
	require.Len(t, tasks, 3)
	assert.Equal(t, []string{"high", "med", "low"}, []string{tasks[0].ID, tasks[1].ID, tasks[2].ID})
}

func TestWeeklyReport_Text(t *testing.T) {
	r := WeeklyReport(testutil.NewTestState(testutil.NewTestPlan()), d("2024-02-01"))
	want := "Weekly Project Report\n" +
		"Week of January 29, 2024\n\n" +
		"Epic: Epic E1\n" +
		"Description of E1\n\n" +
		"  Story: Story S1\n" +
		"  Points: 5\n" +
		"    - Task T1 (todo)\n" +
		"      Assigned to: dev@example.com\n" +
		"      Priority: high\n" +
		"      Due: Feb 2, 2024\n" +
		"\n" +
		"-------------------------------------------\n\n"
	assert.Equal(t, want, r.Text())
	assert.Equal(t, "weekly-report-2024-01-29.txt", r.FileName())
}

func TestWeekNavigation(t *testing.T) {
	ref := d("2024-02-01")
	assert.Equal(t, d("2024-02-08"), NextWeek(ref))
	assert.Equal(t, d("2024-01-25"), PrevWeek(ref))
	assert.Equal(t, ref, PrevWeek(NextWeek(ref)))
}

func TestDayBuckets_MultiDayTask(t *testing.T) {
	plan := testutil.NewTestPlan()
	plan.Tasks = append(plan.Tasks, testutil.NewTestTask("T2", "S1", testutil.WithTaskSpan("2024-01-31", "2024-02-03")))
	days := DayBuckets(testutil.NewTestState(plan), d("2024-02-01"))

	require.Len(t, days, 7)
	assert.Equal(t, d("2024-01-29"), days[0].Date)
	ids := func(day Day) []string {
		var out []string
		for _, t := range day.Tasks {
			out = append(out, t.ID)
		}
		return out
	}
	assert.Empty(t, ids(days[1]))                       // Tue 30
	assert.Equal(t, []string{"T2"}, ids(days[2]))       // Wed 31
	assert.Equal(t, []string{"T1", "T2"}, ids(days[3])) // Thu 1
	assert.Equal(t, []string{"T1", "T2"}, ids(days[4])) // Fri 2
	assert.Equal(t, []string{"T2"}, ids(days[5]))       // Sat 3
	assert.Empty(t, ids(days[6]))
}
