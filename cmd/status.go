package cmd

import (
	"context"
	"fmt"

	statusadapter "github.com/bnema/guardcore-cli/internal/adapters/render/status"
	"github.com/bnema/guardcore-cli/internal/application"
	"github.com/bnema/guardcore-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newStatusCmd(app *app, flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the current admin and subscription counters",
		RunE: hinted(func(cmd *cobra.Command, _ []string) error {
			var dashboard application.Dashboard
			fetch := func(ctx context.Context) error {
				var err error
				dashboard, err = app.service.Dashboard(ctx, domain.ProfileID(flags.profile))
				return err
			}

			if flags.asJSON {
				if err := fetch(cmd.Context()); err != nil {
					return err
				}
				return writeJSON(cmd, dashboard)
			}

			if err := runWithSpinner(cmd.Context(), cmd.ErrOrStderr(), "Fetching admin status...", fetch); err != nil {
				return err
			}

			rendered, err := app.statusRenderer(dashboard, statusadapter.RenderOptions{Now: app.now()})
			if err != nil {
				return fmt.Errorf("render status: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		}),
	}
}
