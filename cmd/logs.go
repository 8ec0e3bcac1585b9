package cmd

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"inboxwatch/term"
	"inboxwatch/weblog"
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Serve the log file as an HTML monitoring page",
	RunE:  runLogs,
}

func init() {
	rootCmd.AddCommand(logsCmd)
}

func runLogs(cmd *cobra.Command, args []string) error {
	logFile := global.logFile
	if logFile == "" {
		logFile = config.LogFile
	}

	if !config.Listen.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	addr := fmt.Sprintf("%s:%d", config.Listen.Host, config.Listen.Port)
	term.Infof("log page on http://%s/", addr)
	return weblog.Router(logFile).Run(addr)
}
