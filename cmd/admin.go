package cmd

import (
	"fmt"
	"strconv"
	"strings"

	usagechart "github.com/bnema/guardcore-cli/internal/adapters/render/usage"
	"github.com/bnema/guardcore-cli/internal/domain"
	"github.com/bnema/guardcore-cli/pkg/guardcore/types"
	"github.com/spf13/cobra"
)

func newAdminCmd(app *app, flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage admins",
	}

	cmd.AddCommand(
		newAdminListCmd(app, flags),
		newAdminGetCmd(app, flags),
		newAdminCurrentCmd(app, flags),
		newAdminCreateCmd(app, flags),
		newAdminUpdateCmd(app, flags),
		newAdminDeleteCmd(app, flags),
		newAdminToggleCmd(app, flags, "enable"),
		newAdminToggleCmd(app, flags, "disable"),
		newAdminUsagesCmd(app, flags),
		newAdminSubscriptionsCmd(app, flags),
	)

	return cmd
}

func newAdminListCmd(app *app, flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List admins",
		RunE: hinted(func(cmd *cobra.Command, _ []string) error {
			s, err := app.session(cmd.Context(), flags)
			if err != nil {
				return err
			}

			admins, err := s.api.GetAllAdmins(cmd.Context(), s.creds)
			if err != nil {
				return err
			}
			if flags.asJSON {
				return writeJSON(cmd, admins)
			}

			rows := make([][]string, 0, len(admins))
			for _, admin := range admins {
				rows = append(rows, []string{
					strconv.FormatInt(admin.ID, 10),
					admin.Username,
					string(admin.Role),
					formatBool(admin.Enabled),
					formatUsage(admin.CurrentUsage, admin.UsageLimit),
					formatOptionalTime(admin.LastOnlineAt),
				})
			}

			return writeTable(cmd, []string{"ID", "USERNAME", "ROLE", "ENABLED", "USAGE", "LAST ONLINE"}, rows)
		}),
	}
}

func newAdminGetCmd(app *app, flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "get <username>",
		Short: "Show one admin",
		Args:  cobra.ExactArgs(1),
		RunE: hinted(func(cmd *cobra.Command, args []string) error {
			s, err := app.session(cmd.Context(), flags)
			if err != nil {
				return err
			}

			admin, err := s.api.GetAdmin(cmd.Context(), s.creds, args[0])
			if err != nil {
				return err
			}

			return writeAdmin(cmd, flags, admin)
		}),
	}
}

func newAdminCurrentCmd(app *app, flags *globalFlags) *cobra.Command {
	var data, file string

	cmd := &cobra.Command{
		Use:   "current",
		Short: "Show or update the logged-in admin",
		RunE: hinted(func(cmd *cobra.Command, _ []string) error {
			s, err := app.session(cmd.Context(), flags)
			if err != nil {
				return err
			}

			if data == "" && file == "" {
				admin, err := s.api.GetCurrentAdmin(cmd.Context(), s.creds)
				if err != nil {
					return err
				}
				return writeAdmin(cmd, flags, admin)
			}

			var update types.AdminCurrentUpdate
			if err := readJSONInput(cmd, data, file, &update); err != nil {
				return err
			}

			admin, err := s.api.UpdateCurrentAdmin(cmd.Context(), s.creds, update)
			if err != nil {
				return err
			}
			return writeAdmin(cmd, flags, admin)
		}),
	}

	cmd.Flags().StringVar(&data, "data", "", "JSON update for the current admin")
	cmd.Flags().StringVar(&file, "file", "", "File with the JSON update (- for stdin)")

	return cmd
}

func newAdminCreateCmd(app *app, flags *globalFlags) *cobra.Command {
	var data, file string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an admin from a JSON body",
		RunE: hinted(func(cmd *cobra.Command, _ []string) error {
			var create types.AdminCreate
			if err := readJSONInput(cmd, data, file, &create); err != nil {
				return err
			}

			s, err := app.session(cmd.Context(), flags)
			if err != nil {
				return err
			}

			admin, err := s.api.CreateAdmin(cmd.Context(), s.creds, create)
			if err != nil {
				return err
			}
			return writeAdmin(cmd, flags, admin)
		}),
	}

	cmd.Flags().StringVar(&data, "data", "", "JSON admin body")
	cmd.Flags().StringVar(&file, "file", "", "File with the JSON admin body (- for stdin)")

	return cmd
}

func newAdminUpdateCmd(app *app, flags *globalFlags) *cobra.Command {
	var data, file string

	cmd := &cobra.Command{
		Use:   "update <username>",
		Short: "Update an admin from a JSON body",
		Args:  cobra.ExactArgs(1),
		RunE: hinted(func(cmd *cobra.Command, args []string) error {
			var update types.AdminUpdate
			if err := readJSONInput(cmd, data, file, &update); err != nil {
				return err
			}

			s, err := app.session(cmd.Context(), flags)
			if err != nil {
				return err
			}

			admin, err := s.api.UpdateAdmin(cmd.Context(), s.creds, args[0], update)
			if err != nil {
				return err
			}
			return writeAdmin(cmd, flags, admin)
		}),
	}

	cmd.Flags().StringVar(&data, "data", "", "JSON update body")
	cmd.Flags().StringVar(&file, "file", "", "File with the JSON update body (- for stdin)")

	return cmd
}

func newAdminDeleteCmd(app *app, flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <username>",
		Short: "Delete an admin",
		Args:  cobra.ExactArgs(1),
		RunE: hinted(func(cmd *cobra.Command, args []string) error {
			s, err := app.session(cmd.Context(), flags)
			if err != nil {
				return err
			}

			result, err := s.api.DeleteAdmin(cmd.Context(), s.creds, args[0])
			if err != nil {
				return err
			}
			return writeResult(cmd, flags.asJSON, result, fmt.Sprintf("Deleted admin %s", args[0]))
		}),
	}
}

func newAdminToggleCmd(app *app, flags *globalFlags, action string) *cobra.Command {
	return &cobra.Command{
		Use:   action + " <username>",
		Short: strings.ToUpper(action[:1]) + action[1:] + " an admin",
		Args:  cobra.ExactArgs(1),
		RunE: hinted(func(cmd *cobra.Command, args []string) error {
			s, err := app.session(cmd.Context(), flags)
			if err != nil {
				return err
			}

			toggle := s.api.EnableAdmin
			if action == "disable" {
				toggle = s.api.DisableAdmin
			}

			admin, err := toggle(cmd.Context(), s.creds, args[0])
			if err != nil {
				return err
			}
			return writeAdmin(cmd, flags, admin)
		}),
	}
}

func newAdminUsagesCmd(app *app, flags *globalFlags) *cobra.Command {
	var width, height int

	cmd := &cobra.Command{
		Use:   "usages [username]",
		Short: "Plot usage logs of an admin (the logged-in admin by default)",
		Args:  cobra.MaximumNArgs(1),
		RunE: hinted(func(cmd *cobra.Command, args []string) error {
			var (
				usages types.AdminUsageLogsResponse
				err    error
			)
			if len(args) == 0 {
				usages, err = app.service.AdminUsages(cmd.Context(), domain.ProfileID(flags.profile))
			} else {
				var s session
				if s, err = app.session(cmd.Context(), flags); err != nil {
					return err
				}
				usages, err = s.api.GetAdminUsages(cmd.Context(), s.creds, args[0])
			}
			if err != nil {
				return err
			}
			if flags.asJSON {
				return writeJSON(cmd, usages)
			}

			chart := usagechart.Render(usagechart.FromAdminLogs(usages.UsageLogs), usagechart.Options{
				Width:   width,
				Height:  height,
				Caption: fmt.Sprintf("%s usage (MB)", usages.Admin.Username),
			})
			_, err = fmt.Fprintln(cmd.OutOrStdout(), chart)
			return err
		}),
	}

	cmd.Flags().IntVar(&width, "width", 60, "Chart width")
	cmd.Flags().IntVar(&height, "height", 10, "Chart height")

	return cmd
}

func newAdminSubscriptionsCmd(app *app, flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "subscriptions",
		Short: "Manage the subscriptions owned by an admin",
	}

	list := &cobra.Command{
		Use:   "list <username>",
		Short: "List subscriptions owned by an admin",
		Args:  cobra.ExactArgs(1),
		RunE: hinted(func(cmd *cobra.Command, args []string) error {
			s, err := app.session(cmd.Context(), flags)
			if err != nil {
				return err
			}

			subscriptions, err := s.api.GetAdminSubscriptions(cmd.Context(), s.creds, args[0])
			if err != nil {
				return err
			}
			return writeSubscriptions(cmd, flags, subscriptions)
		}),
	}

	cmd.AddCommand(list)
	for _, action := range []string{"delete", "activate", "deactivate"} {
		cmd.AddCommand(newAdminSubscriptionsActionCmd(app, flags, action))
	}

	return cmd
}

func newAdminSubscriptionsActionCmd(app *app, flags *globalFlags, action string) *cobra.Command {
	return &cobra.Command{
		Use:   action + " <username>",
		Short: strings.ToUpper(action[:1]) + action[1:] + " every subscription owned by an admin",
		Args:  cobra.ExactArgs(1),
		RunE: hinted(func(cmd *cobra.Command, args []string) error {
			s, err := app.session(cmd.Context(), flags)
			if err != nil {
				return err
			}

			run := s.api.DeleteAdminSubscriptions
			switch action {
			case "activate":
				run = s.api.ActivateAdminSubscriptions
			case "deactivate":
				run = s.api.DeactivateAdminSubscriptions
			}

			result, err := run(cmd.Context(), s.creds, args[0])
			if err != nil {
				return err
			}
			return writeResult(cmd, flags.asJSON, result, fmt.Sprintf("Subscriptions of %s: %sd", args[0], strings.TrimSuffix(action, "e")))
		}),
	}
}

func writeAdmin(cmd *cobra.Command, flags *globalFlags, admin types.AdminResponse) error {
	if flags.asJSON {
		return writeJSON(cmd, admin)
	}

	fields := []field{
		{key: "id", value: strconv.FormatInt(admin.ID, 10)},
		{key: "username", value: admin.Username},
		{key: "role", value: string(admin.Role)},
		{key: "enabled", value: formatBool(admin.Enabled)},
		{key: "usage", value: formatUsage(admin.CurrentUsage, admin.UsageLimit)},
		{key: "lifetime usage", value: formatOptionalBytes(admin.LifetimeUsage)},
		{key: "subscriptions", value: formatCount(admin.CurrentCount, admin.CountLimit)},
		{key: "services", value: formatIDs(admin.ServiceIDs)},
		{key: "placeholders", value: strconv.Itoa(len(admin.Placeholders))},
		{key: "created", value: formatTime(admin.CreatedAt)},
		{key: "last login", value: formatOptionalTime(admin.LastLoginAt)},
	}

	return writeFields(cmd, fields)
}

func formatCount(current, limit *int64) string {
	used := int64(0)
	if current != nil {
		used = *current
	}
	if limit == nil || *limit <= 0 {
		return fmt.Sprintf("%d / unlimited", used)
	}
	return fmt.Sprintf("%d / %d", used, *limit)
}

func formatIDs(ids []int64) string {
	if len(ids) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.FormatInt(id, 10))
	}
	return strings.Join(parts, ",")
}
