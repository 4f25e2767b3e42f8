package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/expensenote/expensenote/internal/logging"
	"github.com/expensenote/expensenote/internal/notify"
)

func newNotifyCommand(opts *rootOptions) *cobra.Command {
	notifyCmd := &cobra.Command{
		Use:   "notify",
		Short: "Evaluate the weekly report trigger",
	}

	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Evaluate the trigger once",
		Args:  cobra.NoArgs,
		RunE: opts.withApp(func(cmd *cobra.Command, a *app, _ []string) error {
			fired, err := a.session.CheckNotifications(cmd.Context())
			if err != nil {
				return err
			}
			switch {
			case fired:
				fmt.Fprintln(cmd.OutOrStdout(), "Weekly report is ready")
			case a.session.State().HasUnreadReport:
				fmt.Fprintln(cmd.OutOrStdout(), "Weekly report is waiting to be read")
			default:
				fmt.Fprintln(cmd.OutOrStdout(), "No report due")
			}
			return nil
		}),
	}

	var interval time.Duration
	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "Evaluate the trigger on a heartbeat until interrupted",
		Args:  cobra.NoArgs,
		RunE: opts.withApp(func(cmd *cobra.Command, a *app, _ []string) error {
			ctx := cmd.Context()
			log := logging.FromContext(ctx)
			every := a.cfg.Notifications.Interval
			if interval > 0 {
				every = interval
			}

			log.Info().Dur("interval", every).Msg("watching for the weekly report")
			notify.Run(ctx, every, func(time.Time) {
				fired, err := a.session.CheckNotifications(ctx)
				if err != nil {
					log.Error().Err(err).Msg("notification check failed")
					return
				}
				if fired {
					fmt.Fprintln(cmd.OutOrStdout(), "Weekly report is ready")
				}
			})
			return nil
		}),
	}
	watchCmd.Flags().DurationVar(&interval, "interval", 0, "heartbeat, overrides notifications.interval")

	notifyCmd.AddCommand(checkCmd, watchCmd)
	return notifyCmd
}
