package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alexanderramin/planboard/internal/cli/formatter"
	"github.com/alexanderramin/planboard/internal/domain"
	"github.com/alexanderramin/planboard/internal/service"
	"github.com/spf13/cobra"
)

func newPlanCmd(app *App) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "plan DESCRIPTION...",
		Short: "Generate a project plan from a description",
		Long: "Generate a project plan from a free-text description and replace the\n" +
			"current plan with it. Resources and AI settings are kept.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			info := service.ProjectInfo{Name: name, Description: strings.Join(args, " ")}
			project, err := app.createPlan(cmd, func(ctx context.Context) (*domain.Project, error) {
				return app.Plans.CreateProjectPlan(ctx, info)
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created plan for %s\n\n", formatter.Bold(project.Name))
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatProjectSummary(app.Store.State()))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Project name (default \""+service.DefaultProjectName+"\")")

	return cmd
}

func newChatCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Describe a project conversationally and generate its plan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd, app)
		},
	}
}

// runChat reads one description per line until a plan is generated, the
// user types exit or input ends.
func runChat(cmd *cobra.Command, app *App) error {
	out := cmd.OutOrStdout()
	conv := service.NewConversation()
	fmt.Fprint(out, formatter.FormatConversation(conv.Messages(), 0))

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		fmt.Fprint(out, formatter.StyleBlue.Render("you ❯ "))
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		text := scanner.Text()
		switch strings.ToLower(strings.TrimSpace(text)) {
		case "exit", "quit":
			return nil
		}

		seen := conv.Len()
		var next service.Conversation
		project, err := app.createPlan(cmd, func(ctx context.Context) (*domain.Project, error) {
			var p *domain.Project
			var err error
			next, p, err = app.Intake.Submit(ctx, conv, text)
			return p, err
		})
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			fmt.Fprintln(out, formatter.Dim("Please describe the project you want to plan."))
			continue
		}
		// The echoed user line is already on screen.
		fmt.Fprint(out, formatter.FormatConversation(next.Messages(), seen+1))
		if err != nil {
			printPlanFailure(out, err)
			conv = next
			continue
		}
		fmt.Fprintln(out)
		fmt.Fprint(out, formatter.FormatProjectSummary(app.Store.State()))
		fmt.Fprintf(out, "%s\n", formatter.Dim("Plan for "+project.Name+" is ready. Try `planboard board`."))
		return nil
	}
}

// createPlan runs gen behind the loading screen when interactive.
func (a *App) createPlan(cmd *cobra.Command, gen func(context.Context) (*domain.Project, error)) (*domain.Project, error) {
	var project *domain.Project
	run := func(ctx context.Context) error {
		var err error
		project, err = gen(ctx)
		return err
	}

	var err error
	if a.Interactive {
		err = runWithLoading(cmd.Context(), cmd.InOrStdin(), cmd.ErrOrStderr(), service.ProcessingMessage, run)
	} else {
		err = run(cmd.Context())
	}
	return project, err
}

func printPlanFailure(out io.Writer, err error) {
	switch {
	case errors.Is(err, context.Canceled):
		fmt.Fprintln(out, formatter.Dim("Cancelled. The current plan was left unchanged."))
	case errors.Is(err, context.DeadlineExceeded):
		fmt.Fprintln(out, formatter.Dim("Plan generation timed out. The current plan was left unchanged."))
	default:
		fmt.Fprintln(out, formatter.Dim(err.Error()))
	}
}
