package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	usagechart "github.com/bnema/guardcore-cli/internal/adapters/render/usage"
	"github.com/bnema/guardcore-cli/pkg/guardcore/types"
	"github.com/spf13/cobra"
)

func newSubscriptionCmd(app *app, flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "subscription",
		Aliases: []string{"sub"},
		Short:   "Manage subscriptions",
	}

	cmd.AddCommand(
		newSubscriptionListCmd(app, flags),
		newSubscriptionGetCmd(app, flags),
		newSubscriptionCreateCmd(app, flags),
		newSubscriptionUpdateCmd(app, flags),
		newSubscriptionDeleteCmd(app, flags),
		newSubscriptionUsagesCmd(app, flags),
		newSubscriptionStatsCmd(app, flags),
	)
	for _, action := range []string{"enable", "disable", "revoke", "reset"} {
		cmd.AddCommand(newSubscriptionActionCmd(app, flags, action))
	}

	return cmd
}

func newSubscriptionListCmd(app *app, flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List subscriptions",
		RunE: hinted(func(cmd *cobra.Command, _ []string) error {
			s, err := app.session(cmd.Context(), flags)
			if err != nil {
				return err
			}

			subscriptions, err := s.api.GetAllSubscriptions(cmd.Context(), s.creds)
			if err != nil {
				return err
			}
			return writeSubscriptions(cmd, flags, subscriptions)
		}),
	}
}

func newSubscriptionGetCmd(app *app, flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "get <username>",
		Short: "Show one subscription",
		Args:  cobra.ExactArgs(1),
		RunE: hinted(func(cmd *cobra.Command, args []string) error {
			s, err := app.session(cmd.Context(), flags)
			if err != nil {
				return err
			}

			subscription, err := s.api.GetSubscription(cmd.Context(), s.creds, args[0])
			if err != nil {
				return err
			}
			return writeSubscription(cmd, flags, subscription)
		}),
	}
}

func newSubscriptionCreateCmd(app *app, flags *globalFlags) *cobra.Command {
	var (
		data        string
		file        string
		limitUsage  int64
		limitExpire int64
		serviceIDs  []int64
		note        string
	)

	cmd := &cobra.Command{
		Use:   "create [username...]",
		Short: "Create subscriptions from flags or a JSON array",
		Long:  "Create one subscription per username with the flag values, or pass a JSON array of subscriptions with --data/--file.",
		RunE: hinted(func(cmd *cobra.Command, args []string) error {
			var batch []types.SubscriptionCreate
			switch {
			case data != "" || file != "":
				if len(args) > 0 {
					return fmt.Errorf("usernames cannot be combined with --data or --file")
				}
				if err := readJSONInput(cmd, data, file, &batch); err != nil {
					return err
				}
			case len(args) == 0:
				return fmt.Errorf("pass at least one username, or --data/--file")
			default:
				for _, username := range args {
					create := types.SubscriptionCreate{
						Username:    username,
						LimitUsage:  limitUsage,
						LimitExpire: limitExpire,
						ServiceIDs:  serviceIDs,
					}
					if note != "" {
						create.Note = &note
					}
					batch = append(batch, create)
				}
			}

			s, err := app.session(cmd.Context(), flags)
			if err != nil {
				return err
			}

			created, err := s.api.CreateSubscriptions(cmd.Context(), s.creds, batch)
			if err != nil {
				return err
			}
			return writeSubscriptions(cmd, flags, created)
		}),
	}

	cmd.Flags().StringVar(&data, "data", "", "JSON array of subscriptions")
	cmd.Flags().StringVar(&file, "file", "", "File with a JSON array of subscriptions (- for stdin)")
	cmd.Flags().Int64Var(&limitUsage, "limit-usage", 0, "Traffic limit in bytes (0 for unlimited)")
	cmd.Flags().Int64Var(&limitExpire, "limit-expire", 0, "Expiry as a unix timestamp, or negative seconds counted from first use")
	cmd.Flags().Int64SliceVar(&serviceIDs, "service-id", []int64{}, "Service ID to attach (repeatable)")
	cmd.Flags().StringVar(&note, "note", "", "Free-form note")

	return cmd
}

func newSubscriptionUpdateCmd(app *app, flags *globalFlags) *cobra.Command {
	var data, file string

	cmd := &cobra.Command{
		Use:   "update <username>",
		Short: "Update a subscription from a JSON body",
		Args:  cobra.ExactArgs(1),
		RunE: hinted(func(cmd *cobra.Command, args []string) error {
			var update types.SubscriptionUpdate
			if err := readJSONInput(cmd, data, file, &update); err != nil {
				return err
			}

			s, err := app.session(cmd.Context(), flags)
			if err != nil {
				return err
			}

			subscription, err := s.api.UpdateSubscription(cmd.Context(), s.creds, args[0], update)
			if err != nil {
				return err
			}
			return writeSubscription(cmd, flags, subscription)
		}),
	}

	cmd.Flags().StringVar(&data, "data", "", "JSON update body")
	cmd.Flags().StringVar(&file, "file", "", "File with the JSON update body (- for stdin)")

	return cmd
}

func newSubscriptionDeleteCmd(app *app, flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <username>",
		Short: "Delete a subscription",
		Args:  cobra.ExactArgs(1),
		RunE: hinted(func(cmd *cobra.Command, args []string) error {
			s, err := app.session(cmd.Context(), flags)
			if err != nil {
				return err
			}

			result, err := s.api.DeleteSubscription(cmd.Context(), s.creds, args[0])
			if err != nil {
				return err
			}
			return writeResult(cmd, flags.asJSON, result, fmt.Sprintf("Deleted subscription %s", args[0]))
		}),
	}
}

func newSubscriptionActionCmd(app *app, flags *globalFlags, action string) *cobra.Command {
	return &cobra.Command{
		Use:   action + " <username>",
		Short: strings.ToUpper(action[:1]) + action[1:] + " a subscription",
		Args:  cobra.ExactArgs(1),
		RunE: hinted(func(cmd *cobra.Command, args []string) error {
			s, err := app.session(cmd.Context(), flags)
			if err != nil {
				return err
			}

			run := s.api.EnableSubscription
			switch action {
			case "disable":
				run = s.api.DisableSubscription
			case "revoke":
				run = s.api.RevokeSubscription
			case "reset":
				run = s.api.ResetSubscription
			}

			subscription, err := run(cmd.Context(), s.creds, args[0])
			if err != nil {
				return err
			}
			return writeSubscription(cmd, flags, subscription)
		}),
	}
}

func newSubscriptionUsagesCmd(app *app, flags *globalFlags) *cobra.Command {
	var width, height int

	cmd := &cobra.Command{
		Use:   "usages <username>",
		Short: "Plot usage logs of a subscription",
		Args:  cobra.ExactArgs(1),
		RunE: hinted(func(cmd *cobra.Command, args []string) error {
			s, err := app.session(cmd.Context(), flags)
			if err != nil {
				return err
			}

			usages, err := s.api.GetSubscriptionUsages(cmd.Context(), s.creds, args[0])
			if err != nil {
				return err
			}
			if flags.asJSON {
				return writeJSON(cmd, usages)
			}

			chart := usagechart.Render(usagechart.FromSubscriptionLogs(usages.UsageLogs), usagechart.Options{
				Width:   width,
				Height:  height,
				Caption: fmt.Sprintf("%s usage (MB)", usages.Subscription.Username),
			})
			_, err = fmt.Fprintln(cmd.OutOrStdout(), chart)
			return err
		}),
	}

	cmd.Flags().IntVar(&width, "width", 60, "Chart width")
	cmd.Flags().IntVar(&height, "height", 10, "Chart height")

	return cmd
}

func newSubscriptionStatsCmd(app *app, flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show subscription counters",
		RunE: hinted(func(cmd *cobra.Command, _ []string) error {
			s, err := app.session(cmd.Context(), flags)
			if err != nil {
				return err
			}

			stats, err := s.api.GetSubscriptionStats(cmd.Context(), s.creds)
			if err != nil {
				return err
			}
			return writeSubscriptionStats(cmd, flags, stats)
		}),
	}
}

func writeSubscriptions(cmd *cobra.Command, flags *globalFlags, subscriptions []types.SubscriptionResponse) error {
	if flags.asJSON {
		return writeJSON(cmd, subscriptions)
	}

	rows := make([][]string, 0, len(subscriptions))
	for _, sub := range subscriptions {
		limit := sub.LimitUsage
		used := sub.CurrentUsage
		rows = append(rows, []string{
			strconv.FormatInt(sub.ID, 10),
			sub.Username,
			string(sub.Status),
			formatBool(sub.Enabled),
			formatUsage(&used, &limit),
			formatExpire(sub.LimitExpire),
		})
	}

	return writeTable(cmd, []string{"ID", "USERNAME", "STATUS", "ENABLED", "USAGE", "EXPIRES"}, rows)
}

func writeSubscription(cmd *cobra.Command, flags *globalFlags, sub types.SubscriptionResponse) error {
	if flags.asJSON {
		return writeJSON(cmd, sub)
	}

	limit := sub.LimitUsage
	used := sub.CurrentUsage
	fields := []field{
		{key: "id", value: strconv.FormatInt(sub.ID, 10)},
		{key: "username", value: sub.Username},
		{key: "status", value: string(sub.Status)},
		{key: "enabled", value: formatBool(sub.Enabled)},
		{key: "usage", value: formatUsage(&used, &limit)},
		{key: "total usage", value: formatOptionalBytes(sub.TotalUsage)},
		{key: "expires", value: formatExpire(sub.LimitExpire)},
		{key: "services", value: formatIDs(sub.ServiceIDs)},
		{key: "access key", value: sub.AccessKey},
		{key: "online", value: formatOptionalTime(sub.OnlineAt)},
		{key: "created", value: formatTime(sub.CreatedAt)},
	}
	if sub.Owner != nil {
		fields = append(fields, field{key: "owner", value: *sub.Owner})
	}
	if sub.Link != nil {
		fields = append(fields, field{key: "link", value: *sub.Link})
	}
	if sub.Note != nil {
		fields = append(fields, field{key: "note", value: *sub.Note})
	}

	return writeFields(cmd, fields)
}

func writeSubscriptionStats(cmd *cobra.Command, flags *globalFlags, stats types.SubscriptionStatsResponse) error {
	if flags.asJSON {
		return writeJSON(cmd, stats)
	}

	return writeFields(cmd, []field{
		{key: "total", value: strconv.FormatInt(stats.Total, 10)},
		{key: "active", value: strconv.FormatInt(stats.Active, 10)},
		{key: "disabled", value: strconv.FormatInt(stats.Disabled, 10)},
		{key: "expired", value: strconv.FormatInt(stats.Expired, 10)},
		{key: "limited", value: strconv.FormatInt(stats.Limited, 10)},
		{key: "pending", value: strconv.FormatInt(stats.Pending, 10)},
		{key: "available", value: strconv.FormatInt(stats.Available, 10)},
		{key: "unavailable", value: strconv.FormatInt(stats.Unavailable, 10)},
		{key: "online", value: strconv.FormatInt(stats.Online, 10)},
		{key: "offline", value: strconv.FormatInt(stats.Offline, 10)},
		{key: "online (24h)", value: strconv.FormatInt(stats.Last24hOnline, 10)},
		{key: "usage (24h)", value: formatOptionalBytes(&stats.Last24hUsage)},
	})
}

// formatExpire renders limit_expire: 0 never expires, a negative value is a
// duration that starts on first use, anything else is a unix timestamp.
func formatExpire(limitExpire int64) string {
	switch {
	case limitExpire == 0:
		return "never"
	case limitExpire < 0:
		return fmt.Sprintf("%dd after first use", -limitExpire/86_400)
	default:
		return formatTime(unixTime(limitExpire))
	}
}

func unixTime(seconds int64) time.Time {
	return time.Unix(seconds, 0).UTC()
}
