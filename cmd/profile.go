package cmd

import (
	"fmt"

	"github.com/bnema/guardcore-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newProfileCmd(app *app, flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage saved profiles",
	}

	cmd.AddCommand(
		newProfileListCmd(app, flags),
		newProfileUseCmd(app),
		newProfileRemoveCmd(app),
	)

	return cmd
}

func newProfileListCmd(app *app, flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved profiles",
		RunE: func(cmd *cobra.Command, _ []string) error {
			views, err := app.service.List(cmd.Context())
			if err != nil {
				return err
			}
			if flags.asJSON {
				return writeJSON(cmd, views)
			}

			rows := make([][]string, 0, len(views))
			for _, view := range views {
				marker := ""
				if view.Active {
					marker = "*"
				}
				auth := string(view.Profile.Auth.Method)
				if !view.Profile.LoggedIn() {
					auth = "logged out"
				}
				rows = append(rows, []string{
					marker,
					string(view.Profile.ID),
					view.Profile.Label(),
					view.Profile.Role,
					auth,
					formatTime(view.Profile.LastLoginAt),
				})
			}

			return writeTable(cmd, []string{"", "PROFILE", "ADMIN", "ROLE", "AUTH", "LAST LOGIN"}, rows)
		},
	}
}

func newProfileUseCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "use <profile>",
		Short: "Make a profile the active one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.service.Use(cmd.Context(), domain.ProfileID(args[0])); err != nil {
				return err
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "Active profile: %s\n", args[0])
			return err
		},
	}
}

func newProfileRemoveCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <profile>",
		Short: "Delete a profile and its stored credential",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.service.Remove(cmd.Context(), domain.ProfileID(args[0])); err != nil {
				return err
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "Removed profile %s\n", args[0])
			return err
		},
	}
}
