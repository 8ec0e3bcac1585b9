package cmd

import (
	"log"

	"inboxwatch/cfg"
	"inboxwatch/gateway"
	"inboxwatch/lib"
)

type GlobalFlags struct {
	quiet   bool
	verbose bool
	logFile string
}

var (
	global GlobalFlags
	config *cfg.Config
)

func debugLogger() lib.Logger {
	if global.verbose {
		return log.Default()
	}
	return &lib.NoLog{}
}

func newGateway() (*gateway.Gateway, error) {
	return gateway.New(gateway.Config{
		BaseURL:     config.API.BaseURL,
		APIKey:      config.API.APIKey,
		Token:       config.API.Token,
		GroupID:     config.API.GroupID,
		SendPause:   config.SendPause,
		DebugLogger: debugLogger(),
	})
}
