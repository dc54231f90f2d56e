package cli

import (
	"context"
	"time"

	"github.com/alexanderramin/planboard/internal/config"
	"github.com/alexanderramin/planboard/internal/domain"
	"github.com/alexanderramin/planboard/internal/service"
	"github.com/spf13/cobra"
)

// ProjectStore is the part of the project store the commands drive.
type ProjectStore interface {
	State() domain.ProjectState
	UpdateTask(ctx context.Context, id string, patch domain.TaskPatch) error
	MoveTask(ctx context.Context, id string, status domain.TaskStatus) error
	SetResources(ctx context.Context, resources []domain.Resource) error
	AddResource(ctx context.Context, r domain.Resource) error
	UpdateAIConfig(ctx context.Context, patch domain.AIConfigPatch) error
	AddComment(ctx context.Context, taskID string, c domain.Comment) error
	AddAttachment(ctx context.Context, taskID string, a domain.Attachment) error
}

// App holds everything the CLI commands use.
type App struct {
	Store  ProjectStore
	Plans  service.PlanService
	Intake service.IntakeService
	Data   service.DataService
	Config config.Config

	// Picker receives paths given on the command line for export and
	// import. Nil means those commands always prompt.
	Picker *PathPicker

	// Interactive enables prompts and the loading screen.
	Interactive bool

	// Now is the clock; nil means time.Now.
	Now func() time.Time
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) today() domain.Date {
	return domain.DateOf(a.now())
}

// NewRootCmd creates the top-level "planboard" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "planboard",
		Short:         "Project planner with kanban, timeline and weekly views",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newPlanCmd(app),
		newChatCmd(app),
		newBoardCmd(app),
		newTaskCmd(app),
		newTimelineCmd(app),
		newWeekCmd(app),
		newReportCmd(app),
		newResourceCmd(app),
		newConfigCmd(app),
		newExportCmd(app),
		newImportCmd(app),
		newClearCmd(app),
	)

	return root
}
