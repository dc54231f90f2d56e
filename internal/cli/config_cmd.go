package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/planboard/internal/cli/formatter"
	"github.com/alexanderramin/planboard/internal/domain"
	"github.com/spf13/cobra"
)

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show settings and configure the AI provider",
	}

	cmd.AddCommand(
		newConfigShowCmd(app),
		newConfigAICmd(app),
	)

	return cmd
}

func newConfigShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the resolved settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := app.Config.YAML()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Header("Settings"))
			fmt.Fprint(cmd.OutOrStdout(), out)
			fmt.Fprintln(cmd.OutOrStdout())
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Header("AI provider"))
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatAIConfig(app.Store.State().AIConfig))
			return nil
		},
	}
}

func newConfigAICmd(app *App) *cobra.Command {
	var provider, apiKey string

	cmd := &cobra.Command{
		Use:   "ai",
		Short: "Set the AI provider and api key",
		Long: "Set the AI provider and api key used for plan generation. Without\n" +
			"flags the current setting is printed.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch domain.AIConfigPatch
			if cmd.Flags().Changed("provider") {
				p := domain.Provider(strings.ToLower(strings.TrimSpace(provider)))
				patch.Provider = &p
			}
			if cmd.Flags().Changed("api-key") {
				patch.APIKey = &apiKey
			}
			if patch.Provider != nil || patch.APIKey != nil {
				if err := app.Store.UpdateAIConfig(cmd.Context(), patch); err != nil {
					return err
				}
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatAIConfig(app.Store.State().AIConfig))
			return nil
		},
	}

	cmd.Flags().StringVar(&provider, "provider", "", "openai or gemini")
	cmd.Flags().StringVar(&apiKey, "api-key", "", "API key for the provider (empty clears it)")

	return cmd
}
