package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/alexanderramin/planboard/internal/cli/formatter"
	"github.com/alexanderramin/planboard/internal/domain"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Inspect and change tasks",
	}

	cmd.AddCommand(
		newTaskShowCmd(app),
		newTaskMoveCmd(app),
		newTaskUpdateCmd(app),
		newTaskCommentCmd(app),
		newTaskAttachCmd(app),
	)

	return cmd
}

// requireTask reports whether id exists. Changes to unknown tasks are
// ignored by the store, so the user gets a notice instead of an error.
func requireTask(app *App, out io.Writer, id string) bool {
	if _, ok := app.Store.State().TaskByID(id); ok {
		return true
	}
	fmt.Fprintf(out, "%s\n", formatter.Dim(fmt.Sprintf("No task with id %q. Nothing changed.", id)))
	return false
}

func newTaskShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show task details, comments and attachments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, ok := app.Store.State().TaskByID(args[0])
			if !ok {
				return &domain.NotFoundError{Kind: "task", ID: args[0]}
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTask(t, app.today(), app.now()))
			return nil
		},
	}
}

func parseStatus(s string) (domain.TaskStatus, error) {
	in := strings.TrimSpace(s)
	for _, st := range domain.TaskStatuses {
		if strings.EqualFold(string(st), in) {
			return st, nil
		}
	}
	return "", domain.NewValidationError("status", "invalid value %q (expected todo, inProgress, review or done)", s)
}

func newTaskMoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "move ID STATUS",
		Short: "Move a task to another board column",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := parseStatus(args[1])
			if err != nil {
				return err
			}
			if !requireTask(app, cmd.OutOrStdout(), args[0]) {
				return nil
			}
			if err := app.Store.MoveTask(cmd.Context(), args[0], status); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Moved %s to %s\n", args[0], formatter.StatusStyle(status).Render(status.Title()))
			return nil
		},
	}
}

func newTaskUpdateCmd(app *App) *cobra.Command {
	var (
		title, description, assignee, status, priority, story string
		start, end                                            domain.Date
	)

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Change task fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			var patch domain.TaskPatch
			if flags.Changed("title") {
				patch.Title = &title
			}
			if flags.Changed("description") {
				patch.Description = &description
			}
			if flags.Changed("assignee") {
				patch.Assignee = &assignee
			}
			if flags.Changed("story") {
				patch.StoryID = &story
			}
			if flags.Changed("status") {
				st, err := parseStatus(status)
				if err != nil {
					return err
				}
				patch.Status = &st
			}
			if flags.Changed("priority") {
				p := domain.Priority(strings.ToLower(priority))
				patch.Priority = &p
			}
			if flags.Changed("start") {
				patch.StartDate = &start
			}
			if flags.Changed("end") {
				patch.EndDate = &end
			}
			if patch.IsEmpty() {
				return fmt.Errorf("nothing to update: pass at least one field flag")
			}

			if !requireTask(app, cmd.OutOrStdout(), args[0]) {
				return nil
			}
			if err := app.Store.UpdateTask(cmd.Context(), args[0], patch); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated task %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Task title")
	cmd.Flags().StringVar(&description, "description", "", "Task description")
	cmd.Flags().StringVar(&assignee, "assignee", "", "Assignee email")
	cmd.Flags().StringVar(&story, "story", "", "Parent story id")
	cmd.Flags().StringVar(&status, "status", "", "todo, inProgress, review or done")
	cmd.Flags().StringVar(&priority, "priority", "", "high, medium or low")
	cmd.Flags().Var(newDateValue(&start), "start", "Start date (YYYY-MM-DD)")
	cmd.Flags().Var(newDateValue(&end), "end", "End date (YYYY-MM-DD)")

	return cmd
}

func newTaskCommentCmd(app *App) *cobra.Command {
	var user string

	cmd := &cobra.Command{
		Use:   "comment ID TEXT...",
		Short: "Add a comment to a task",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			content := strings.TrimSpace(strings.Join(args[1:], " "))
			if content == "" {
				return domain.NewValidationError("content", "is required")
			}
			if !requireTask(app, cmd.OutOrStdout(), args[0]) {
				return nil
			}
			c := domain.Comment{
				ID:        uuid.New().String(),
				UserID:    user,
				Content:   content,
				CreatedAt: app.now().UTC(),
			}
			if err := app.Store.AddComment(cmd.Context(), args[0], c); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added comment to %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "Comment author")

	return cmd
}

func newTaskAttachCmd(app *App) *cobra.Command {
	var (
		name, url, mime string
		size            int64
	)

	cmd := &cobra.Command{
		Use:   "attach ID",
		Short: "Attach a link or file reference to a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !requireTask(app, cmd.OutOrStdout(), args[0]) {
				return nil
			}
			a := domain.Attachment{
				ID:         uuid.New().String(),
				Name:       domain.CoalesceStr(name, lastPathElem(url)),
				URL:        url,
				Type:       mime,
				Size:       size,
				UploadedAt: app.now().UTC(),
			}
			if err := app.Store.AddAttachment(cmd.Context(), args[0], a); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Attached %s to %s\n", a.Name, args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&url, "url", "", "Location of the attachment")
	cmd.Flags().StringVar(&name, "name", "", "Display name (default last path element of --url)")
	cmd.Flags().StringVar(&mime, "type", "", "MIME type")
	cmd.Flags().Int64Var(&size, "size", 0, "Size in bytes")
	_ = cmd.MarkFlagRequired("url")

	return cmd
}

func lastPathElem(u string) string {
	u = strings.TrimRight(u, "/")
	if i := strings.LastIndex(u, "/"); i >= 0 {
		return u[i+1:]
	}
	return u
}
