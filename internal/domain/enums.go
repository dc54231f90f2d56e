package domain

type TaskStatus string

const (
	StatusTodo       TaskStatus = "todo"
	StatusInProgress TaskStatus = "inProgress"
	StatusReview     TaskStatus = "review"
	StatusDone       TaskStatus = "done"
)

// TaskStatuses lists the kanban buckets in board order.
var TaskStatuses = []TaskStatus{StatusTodo, StatusInProgress, StatusReview, StatusDone}

func (s TaskStatus) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusReview, StatusDone:
		return true
	}
	return false
}

// Title returns the column heading for the status.
func (s TaskStatus) Title() string {
	switch s {
	case StatusTodo:
		return "To Do"
	case StatusInProgress:
		return "In Progress"
	case StatusReview:
		return "Review"
	case StatusDone:
		return "Done"
	default:
		return string(s)
	}
}

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

type Role string

const (
	RoleDeveloper Role = "developer"
	RoleDesigner  Role = "designer"
	RolePM        Role = "pm"
	RoleBA        Role = "ba"
	RoleQA        Role = "qa"
)

// ValidRoles is the canonical set of accepted resource roles.
var ValidRoles = map[Role]bool{
	RoleDeveloper: true, RoleDesigner: true, RolePM: true, RoleBA: true, RoleQA: true,
}

func (r Role) Valid() bool { return ValidRoles[r] }

type Provider string

const (
	ProviderOpenAI Provider = "openai"
	ProviderGemini Provider = "gemini"
)

func (p Provider) Valid() bool {
	return p == ProviderOpenAI || p == ProviderGemini
}
