package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"inboxwatch/ledger"
	"inboxwatch/poller"
	"inboxwatch/term"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Poll every account and push notifications for new unread emails",
	RunE:  runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	sender, err := newGateway()
	if err != nil {
		return fmt.Errorf("cannot create messaging gateway: %w", err)
	}

	led := ledger.New(config.LedgerFile)
	led.Load()

	scanner := poller.NewScanner(debugLogger())
	watcher := poller.New(config.Accounts, scanner, sender, led, config.PollInterval)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	term.Infof("watching %d accounts every %s", len(config.Accounts), config.PollInterval)
	watcher.Run(ctx)
	term.Info("stopped")
	return nil
}
