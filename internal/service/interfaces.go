package service

import (
	"context"

	"github.com/alexanderramin/planboard/internal/domain"
)

// ProjectInfo is what the intake collects before generating a plan.
type ProjectInfo struct {
	Name        string
	Description string
}

type PlanService interface {
	// CreateProjectPlan generates a plan and installs it in one step. On any
	// failure, including timeout or cancellation, the store is left as it was.
	CreateProjectPlan(ctx context.Context, info ProjectInfo) (*domain.Project, error)
}

type IntakeService interface {
	// Submit appends the user's text and the outcome to conv and returns the
	// new conversation. conv itself is never modified.
	Submit(ctx context.Context, conv Conversation, text string) (Conversation, *domain.Project, error)
}

type DataService interface {
	// Restore loads the last saved snapshot into the store. It reports whether
	// one was found.
	Restore(ctx context.Context) (bool, error)
	Export(ctx context.Context) (string, error)
	Import(ctx context.Context) (domain.ProjectState, error)
	Clear(ctx context.Context) error
}

// PlanStore is the part of the project store plan creation needs.
type PlanStore interface {
	ReplacePlan(ctx context.Context, project domain.Project, plan domain.Plan) error
}

// SnapshotStore is the part of the project store data operations need.
type SnapshotStore interface {
	State() domain.ProjectState
	Reload(ctx context.Context, s domain.ProjectState)
	Flush(ctx context.Context) error
}

// Synchronizer is the durable side of data operations.
type Synchronizer interface {
	Load(ctx context.Context) (*domain.ProjectState, error)
	ExportToFile(ctx context.Context, s domain.ProjectState) (string, error)
	ImportFromFile(ctx context.Context) (domain.ProjectState, error)
	Clear(ctx context.Context) error
}
