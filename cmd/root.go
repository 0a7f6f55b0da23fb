package cmd

import (
	"errors"
	"fmt"

	"github.com/bnema/guardcore-cli/internal/domain"
	"github.com/bnema/guardcore-cli/pkg/guardcore/core"
	"github.com/spf13/cobra"
)

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	app := &app{}
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:           "gc",
		Short:         "Guardcore CLI (gc): manage admins and subscriptions",
		Long:          "gc logs in to guardcore servers, keeps per-server profiles, and manages admins, subscriptions and usage stats from the terminal.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return app.wire(*flags, cmd.ErrOrStderr())
		},
	}

	rootCmd.PersistentFlags().StringVarP(&flags.profile, "profile", "p", "", "Profile to use (defaults to the active profile)")
	rootCmd.PersistentFlags().BoolVar(&flags.asJSON, "json", false, "Print raw JSON instead of tables")
	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Log level: trace, debug, info, warn, error")

	rootCmd.AddCommand(
		newVersionCmd(),
		newLoginCmd(app, flags),
		newLogoutCmd(app, flags),
		newProfileCmd(app, flags),
		newStatusCmd(app, flags),
		newAdminCmd(app, flags),
		newSubscriptionCmd(app, flags),
	)

	return rootCmd
}

// withHint turns failures the user can fix by logging in into actionable errors.
func withHint(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, core.ErrAuthentication):
		return fmt.Errorf("%w (run gc login)", err)
	case errors.Is(err, domain.ErrNotLoggedIn), errors.Is(err, domain.ErrNoActiveProfile):
		return fmt.Errorf("%w (run gc login --profile <name>)", err)
	default:
		return err
	}
}

type runFunc func(cmd *cobra.Command, args []string) error

func hinted(fn runFunc) runFunc {
	return func(cmd *cobra.Command, args []string) error {
		return withHint(fn(cmd, args))
	}
}
