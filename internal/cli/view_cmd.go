package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alexanderramin/planboard/internal/cli/formatter"
	"github.com/alexanderramin/planboard/internal/views"
	"github.com/spf13/cobra"
)

func newBoardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "board",
		Short: "Show the kanban board",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st := app.Store.State()
			if !st.HasPlan() {
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatProjectSummary(st))
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatBoard(views.Board(st)))
			return nil
		},
	}
}

func newTimelineCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "timeline",
		Short: "Show epics, stories and tasks on a timeline",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTimeline(views.BuildTimeline(app.Store.State())))
			return nil
		},
	}
}

func newWeekCmd(app *App) *cobra.Command {
	var wf weekFlags

	cmd := &cobra.Command{
		Use:   "week",
		Short: "Show the tasks of one week, day by day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			days := views.DayBuckets(app.Store.State(), wf.ref(app.today()))
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatWeek(days, app.today()))
			return nil
		},
	}

	wf.register(cmd.Flags())

	return cmd
}

func newReportCmd(app *App) *cobra.Command {
	var (
		wf  weekFlags
		out string
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show or save the weekly report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			report := views.WeeklyReport(app.Store.State(), wf.ref(app.today()))
			if out == "" {
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatReport(report))
				return nil
			}

			path := expandHome(out)
			if info, err := os.Stat(path); err == nil && info.IsDir() {
				path = filepath.Join(path, report.FileName())
			}
			if err := os.WriteFile(path, []byte(report.Text()), 0o644); err != nil {
				return fmt.Errorf("writing report: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved weekly report to %s\n", path)
			return nil
		},
	}

	wf.register(cmd.Flags())
	cmd.Flags().StringVar(&out, "out", "", "Write the plain-text report to this file or directory")

	return cmd
}
