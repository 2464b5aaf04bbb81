package cmd

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kihana2077/countdown/internal/logging"
	"github.com/kihana2077/countdown/internal/notify"
	"github.com/kihana2077/countdown/internal/scheduler"
)

// daemonCmd runs the reminder scheduler in the foreground.
var daemonCmd = &cobra.Command{
	Use:     "daemon",
	Aliases: []string{"d", "serve"},
	Short:   "Run the reminder scheduler",
	Long: `Run the reminder scheduler in the foreground.

The scheduler scans all countdowns every scan interval (default 1h) and
fires a reminder when a countdown's remaining days hit a configured
threshold (default 7, 3 and 1 days). Reminders are posted to the
configured webhook, or logged when none is set.

Stop with Ctrl-C; the current scan finishes its in-flight record first.

Examples:
  countdown daemon
  COUNTDOWN_WEBHOOK_URL=https://example.com/hook countdown daemon
  COUNTDOWN_SCAN_INTERVAL=10m countdown daemon`,
	RunE: runDaemon,
}

func init() {
	rootCmd.AddCommand(daemonCmd)
}

func runDaemon(cmd *cobra.Command, args []string) error {
	sigCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var notifier notify.Notifier
	if url := ctx.Config.WebhookURL; url != "" {
		notifier = notify.NewWebhookNotifier(url)
		logging.Info("delivering reminders via webhook", "url", url)
	} else {
		notifier = notify.LogNotifier{}
		logging.Info("no webhook configured, reminders will be logged")
	}

	maint := scheduler.NewMaintenance(ctx.DB)
	if err := maint.Start(ctx.Config.Store.GCInterval); err != nil {
		return err
	}
	defer maint.Stop()

	sched := scheduler.New(ctx.Repo, notifier, ctx.Clock, ctx.Config.Reminder)
	return sched.Run(sigCtx)
}
