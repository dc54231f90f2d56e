package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/planboard/internal/cli/formatter"
	"github.com/alexanderramin/planboard/internal/domain"
	"github.com/spf13/cobra"
)

func newResourceCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "resource",
		Aliases: []string{"team"},
		Short:   "Manage the team",
	}

	cmd.AddCommand(
		newResourceListCmd(app),
		newResourceAddCmd(app),
		newResourceSetCmd(app),
	)

	return cmd
}

func newResourceListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List team members",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatResources(app.Store.State().Resources))
			return nil
		},
	}
}

func newResourceAddCmd(app *App) *cobra.Command {
	var name, email, role string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a team member",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r := domain.Resource{Name: name, Email: email, Role: domain.Role(strings.ToLower(role))}
			if err := app.Store.AddResource(cmd.Context(), r); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s <%s>\n", r.Name, r.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Member name")
	cmd.Flags().StringVar(&email, "email", "", "Member email (unique)")
	cmd.Flags().StringVar(&role, "role", string(domain.RoleDeveloper), "developer, designer, pm, ba or qa")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func newResourceSetCmd(app *App) *cobra.Command {
	var members []string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Replace the whole team",
		Long: "Replace the whole team with the given members. Each --member is\n" +
			"\"Name,role,email\". Passing no --member empties the team.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resources := make([]domain.Resource, 0, len(members))
			for _, m := range members {
				r, err := parseMember(m)
				if err != nil {
					return err
				}
				resources = append(resources, r)
			}
			if err := app.Store.SetResources(cmd.Context(), resources); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Team now has %d members\n", len(resources))
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&members, "member", nil, "Member as \"Name,role,email\" (repeatable)")

	return cmd
}

func parseMember(s string) (domain.Resource, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return domain.Resource{}, domain.NewValidationError("member", "%q is not \"Name,role,email\"", s)
	}
	return domain.Resource{
		Name:  strings.TrimSpace(parts[0]),
		Role:  domain.Role(strings.ToLower(strings.TrimSpace(parts[1]))),
		Email: strings.TrimSpace(parts[2]),
	}, nil
}
