package testutil

import (
	"github.com/alexanderramin/planboard/internal/domain"
)

// Epic options
type EpicOption func(*domain.Epic)

func WithEpicSpan(start, end string) EpicOption {
	return func(e *domain.Epic) {
		e.StartDate = domain.MustParseDate(start)
		e.EndDate = domain.MustParseDate(end)
	}
}

func NewTestEpic(id string, opts ...EpicOption) domain.Epic {
	e := domain.Epic{
		ID:          id,
		Title:       "Epic " + id,
		Description: "Description of " + id,
		StartDate:   domain.MustParseDate("2024-02-01"),
		EndDate:     domain.MustParseDate("2024-02-15"),
	}
	for _, opt := range opts {
		opt(&e)
	}
	return e
}

// Story options
type StoryOption func(*domain.Story)

func WithPoints(n int) StoryOption {
	return func(s *domain.Story) { s.Points = n }
}

func NewTestStory(id, epicID string, opts ...StoryOption) domain.Story {
	s := domain.Story{
		ID:          id,
		EpicID:      epicID,
		Title:       "Story " + id,
		Description: "Description of " + id,
		Points:      3,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// Task options
type TaskOption func(*domain.Task)

func WithStatus(s domain.TaskStatus) TaskOption {
	return func(t *domain.Task) { t.Status = s }
}

func WithPriority(p domain.Priority) TaskOption {
	return func(t *domain.Task) { t.Priority = p }
}

func WithAssignee(a string) TaskOption {
	return func(t *domain.Task) { t.Assignee = a }
}

func WithTaskSpan(start, end string) TaskOption {
	return func(t *domain.Task) {
		t.StartDate = domain.MustParseDate(start)
		t.EndDate = domain.MustParseDate(end)
	}
}

func NewTestTask(id, storyID string, opts ...TaskOption) domain.Task {
	t := domain.Task{
		ID:          id,
		StoryID:     storyID,
		Title:       "Task " + id,
		Description: "Description of " + id,
		Assignee:    "dev@example.com",
		Status:      domain.StatusTodo,
		Priority:    domain.PriorityMedium,
		StartDate:   domain.MustParseDate("2024-02-01"),
		EndDate:     domain.MustParseDate("2024-02-02"),
	}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

func NewTestResource(name, email string, role domain.Role) domain.Resource {
	return domain.Resource{Name: name, Email: email, Role: role}
}

// NewTestPlan returns E1 (2024-02-01..15) > S1 > T1 (todo, 2024-02-01..02).
func NewTestPlan() domain.Plan {
	return domain.Plan{
		Epics:   []domain.Epic{NewTestEpic("E1")},
		Stories: []domain.Story{NewTestStory("S1", "E1", WithPoints(5))},
		Tasks:   []domain.Task{NewTestTask("T1", "S1", WithPriority(domain.PriorityHigh))},
	}
}

// NewTestProject returns a project spanning plan.
func NewTestProject(id string, plan domain.Plan) domain.Project {
	start, end := plan.DateSpan()
	return domain.Project{
		ID:          id,
		Name:        "Project " + id,
		Description: "A test project",
		StartDate:   start,
		EndDate:     end,
	}
}

// NewTestState builds a state holding plan under a test project.
func NewTestState(plan domain.Plan) domain.ProjectState {
	s := domain.EmptyState()
	project := NewTestProject("P1", plan)
	s.Project = &project
	s.Epics = plan.Epics
	s.Stories = plan.Stories
	s.Tasks = plan.Tasks
	return s
}
