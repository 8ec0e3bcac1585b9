package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"inboxwatch/poller"
)

var reportToGroup bool

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Run the counts-only report once and print it",
	RunE:  runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().BoolVar(&reportToGroup, "group", false, "also send the report to the configured group")
}

func runReport(cmd *cobra.Command, args []string) error {
	scanner := poller.NewScanner(debugLogger())
	text := poller.CountsReport(config.Accounts, scanner)
	fmt.Println(text)

	if reportToGroup {
		sender, err := newGateway()
		if err != nil {
			return fmt.Errorf("cannot create messaging gateway: %w", err)
		}
		if !sender.SendToGroup(text) {
			return errors.New("could not deliver the report to the group")
		}
	}
	return nil
}
