package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"inboxwatch/cfg"
	"inboxwatch/term"
)

var rootCmd = &cobra.Command{
	Use:   "inboxwatch",
	Short: "Watch IMAP mailboxes and relay reports to a chat group",
	Long:  "\nWatch IMAP mailboxes, relay read/unread summaries and new-mail notifications to a chat messaging API, and answer on-demand report requests",
}

func init() {
	cobra.OnInitialize(initConfig, initLog)
	flag := rootCmd.PersistentFlags()
	flag.BoolVarP(&global.quiet, "quiet", "q", false, "only display warnings and errors")
	flag.BoolVarP(&global.verbose, "verbose", "v", false, "display debugging information")
	flag.StringVar(&global.logFile, "log-file", "", "append logs to this file (overrides LOG_FILE)")
}

func initConfig() {
	var err error
	config, err = cfg.Load()
	if err != nil {
		term.Errorf("invalid configuration: %s", err)
		os.Exit(1)
	}
}

func initLog() {
	switch {
	case global.verbose:
		term.SetLevel(term.LevelDebug)
	case global.quiet:
		term.SetLevel(term.LevelWarn)
	}
	logFile := global.logFile
	if logFile == "" {
		logFile = config.LogFile
	}
	if logFile != "" {
		if err := term.SetLogFile(logFile); err != nil {
			term.Warnf("logging to console only: %s", err)
		}
	}
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		term.Error(err)
		os.Exit(1)
	}
}
