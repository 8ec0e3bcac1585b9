// Package cfg loads the process configuration from environment variables.
// The configuration is built once at startup and passed by reference into
// every component, there is no ambient lookup afterwards.
package cfg

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"inboxwatch/mailbox"
)

// Indexed account variables are read as EMAIL1_* up to EMAIL4_*.
const maxAccounts = 4

type APIConfig struct {
	BaseURL string
	APIKey  string
	Token   string
	GroupID string
}

type ListenConfig struct {
	Host  string
	Port  int
	Debug bool
}

type Config struct {
	Accounts        []mailbox.Account
	API             APIConfig
	AuthorizedUsers []string
	Listen          ListenConfig
	LedgerFile      string
	LogFile         string
	PollInterval    time.Duration
	SendPause       time.Duration
}

// Load reads and validates the environment. An account missing any of its
// four variables is silently excluded; no valid account at all, or missing
// API credentials, is an error the caller must treat as fatal.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("WHATSAPP_BASE_URL", "")
	v.SetDefault("LISTEN_HOST", "0.0.0.0")
	v.SetDefault("LISTEN_PORT", 8223)
	v.SetDefault("LISTEN_DEBUG", false)
	v.SetDefault("LEDGER_FILE", "messages.csv")
	v.SetDefault("LOG_FILE", "bot.log")
	v.SetDefault("POLL_INTERVAL", "10m")
	v.SetDefault("SEND_PAUSE", "3s")

	config := &Config{
		Accounts: loadAccounts(v),
		API: APIConfig{
			BaseURL: v.GetString("WHATSAPP_BASE_URL"),
			APIKey:  v.GetString("WHATSAPP_API_KEY"),
			Token:   v.GetString("WHATSAPP_TOKEN"),
			GroupID: v.GetString("WHATSAPP_GROUP_ID"),
		},
		AuthorizedUsers: splitUsers(v.GetString("AUTHORIZED_USERS")),
		Listen: ListenConfig{
			Host:  v.GetString("LISTEN_HOST"),
			Port:  v.GetInt("LISTEN_PORT"),
			Debug: v.GetBool("LISTEN_DEBUG"),
		},
		LedgerFile:   v.GetString("LEDGER_FILE"),
		LogFile:      v.GetString("LOG_FILE"),
		PollInterval: v.GetDuration("POLL_INTERVAL"),
		SendPause:    v.GetDuration("SEND_PAUSE"),
	}

	if len(config.Accounts) == 0 {
		return nil, errors.New("no email account configured: set EMAIL1_HOST, EMAIL1_USER, EMAIL1_PASS and EMAIL1_NAME")
	}
	if config.API.APIKey == "" || config.API.Token == "" {
		return nil, errors.New("messaging API credentials not configured: set WHATSAPP_API_KEY and WHATSAPP_TOKEN")
	}
	if config.PollInterval <= 0 {
		return nil, fmt.Errorf("invalid POLL_INTERVAL %q", v.GetString("POLL_INTERVAL"))
	}
	return config, nil
}

func loadAccounts(v *viper.Viper) []mailbox.Account {
	accounts := make([]mailbox.Account, 0, maxAccounts)
	for i := 1; i <= maxAccounts; i++ {
		prefix := fmt.Sprintf("EMAIL%d_", i)
		account := mailbox.Account{
			Name: v.GetString(prefix + "NAME"),
			Host: v.GetString(prefix + "HOST"),
			User: v.GetString(prefix + "USER"),
			Pass: v.GetString(prefix + "PASS"),
		}
		if account.Name == "" || account.Host == "" || account.User == "" || account.Pass == "" {
			continue
		}
		accounts = append(accounts, account)
	}
	return accounts
}

func splitUsers(list string) []string {
	users := make([]string, 0)
	for _, user := range strings.Split(list, ",") {
		user = strings.TrimSpace(user)
		if user == "" {
			continue
		}
		users = append(users, user)
	}
	return users
}
