package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/planboard/internal/cli/formatter"
	"github.com/alexanderramin/planboard/internal/persistence"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

// usePath points the next file prompt at path when one was given.
func (a *App) usePath(path string) func() {
	if path == "" || a.Picker == nil {
		return func() {}
	}
	return a.Picker.Use(path)
}

func newExportCmd(app *App) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a backup copy of the project to a file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			defer app.usePath(out)()
			path, err := app.Data.Export(cmd.Context())
			if errors.Is(err, persistence.ErrPickerDeclined) {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Export skipped. Pass --out to choose a file."))
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported project to %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "Destination file or directory (default: ask)")

	return cmd
}

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import [FILE]",
		Short: "Replace the project with the contents of a file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) == 1 {
				path = args[0]
			}
			defer app.usePath(path)()
			st, err := app.Data.Import(cmd.Context())
			if errors.Is(err, persistence.ErrPickerDeclined) {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Import skipped. Pass a FILE to import."))
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Imported project data")
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatProjectSummary(st))
			return nil
		},
	}
}

func newClearCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete the project, its plan and the team",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				if !app.Interactive {
					return fmt.Errorf("refusing to clear without --yes")
				}
				confirm := huh.NewConfirm().
					Title("Delete all project data?").
					Affirmative("Delete").
					Negative("Keep").
					Value(&yes)
				err := huh.NewForm(huh.NewGroup(confirm)).
					WithTheme(planboardHuhTheme()).
					WithShowHelp(false).
					RunWithContext(cmd.Context())
				if err != nil && !errors.Is(err, huh.ErrUserAborted) {
					return err
				}
				if !yes {
					fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Nothing deleted."))
					return nil
				}
			}
			if err := app.Data.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Cleared all project data")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")

	return cmd
}
