package cmd

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"inboxwatch/poller"
	"inboxwatch/term"
	"inboxwatch/webhook"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Listen for chat webhook callbacks and answer report requests",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	sender, err := newGateway()
	if err != nil {
		return fmt.Errorf("cannot create messaging gateway: %w", err)
	}

	scanner := poller.NewScanner(debugLogger())
	reporter := func() string {
		return poller.CountsReport(config.Accounts, scanner)
	}

	if !config.Listen.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	handler := webhook.NewHandler(config.AuthorizedUsers, reporter, sender)
	addr := fmt.Sprintf("%s:%d", config.Listen.Host, config.Listen.Port)
	term.Infof("webhook listening on %s", addr)
	return handler.Router().Run(addr)
}
