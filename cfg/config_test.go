package cfg

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("EMAIL1_HOST", "mail.example.com")
	t.Setenv("EMAIL1_USER", "work@example.com")
	t.Setenv("EMAIL1_PASS", "secret")
	t.Setenv("EMAIL1_NAME", "Work")
	t.Setenv("WHATSAPP_API_KEY", "key123")
	t.Setenv("WHATSAPP_TOKEN", "token456")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	config, err := Load()
	require.NoError(t, err)

	require.Len(t, config.Accounts, 1)
	assert.Equal(t, "Work", config.Accounts[0].Name)
	assert.Equal(t, "mail.example.com", config.Accounts[0].Host)

	assert.Equal(t, "key123", config.API.APIKey)
	assert.Equal(t, "token456", config.API.Token)
	assert.Empty(t, config.API.GroupID)

	assert.Equal(t, "0.0.0.0", config.Listen.Host)
	assert.Equal(t, 8223, config.Listen.Port)
	assert.False(t, config.Listen.Debug)

	assert.Equal(t, "messages.csv", config.LedgerFile)
	assert.Equal(t, 10*time.Minute, config.PollInterval)
	assert.Equal(t, 3*time.Second, config.SendPause)
	assert.Empty(t, config.AuthorizedUsers)
}

func TestLoadMultipleAccountsInOrder(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("EMAIL2_HOST", "mail.example.com")
	t.Setenv("EMAIL2_USER", "me@example.com")
	t.Setenv("EMAIL2_PASS", "secret")
	t.Setenv("EMAIL2_NAME", "Personal")

	config, err := Load()
	require.NoError(t, err)
	require.Len(t, config.Accounts, 2)
	assert.Equal(t, "Work", config.Accounts[0].Name)
	assert.Equal(t, "Personal", config.Accounts[1].Name)
}

func TestIncompleteAccountIsExcluded(t *testing.T) {
	setRequiredEnv(t)
	// EMAIL2 has no password so it must be dropped silently
	t.Setenv("EMAIL2_HOST", "mail.example.com")
	t.Setenv("EMAIL2_USER", "me@example.com")
	t.Setenv("EMAIL2_NAME", "Personal")

	config, err := Load()
	require.NoError(t, err)
	require.Len(t, config.Accounts, 1)
	assert.Equal(t, "Work", config.Accounts[0].Name)
}

func TestNoAccountIsFatal(t *testing.T) {
	t.Setenv("WHATSAPP_API_KEY", "key123")
	t.Setenv("WHATSAPP_TOKEN", "token456")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no email account")
}

func TestMissingAPICredentialsIsFatal(t *testing.T) {
	t.Setenv("EMAIL1_HOST", "mail.example.com")
	t.Setenv("EMAIL1_USER", "work@example.com")
	t.Setenv("EMAIL1_PASS", "secret")
	t.Setenv("EMAIL1_NAME", "Work")
	t.Setenv("WHATSAPP_API_KEY", "key123")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "credentials")
}

func TestAuthorizedUsersAreTrimmed(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("AUTHORIZED_USERS", " 12345 ,, 99999,")

	config, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"12345", "99999"}, config.AuthorizedUsers)
}

func TestOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("WHATSAPP_GROUP_ID", "group789")
	t.Setenv("WHATSAPP_BASE_URL", "https://gateway.internal")
	t.Setenv("LISTEN_PORT", "9000")
	t.Setenv("LISTEN_DEBUG", "true")
	t.Setenv("POLL_INTERVAL", "90s")
	t.Setenv("SEND_PAUSE", "500ms")
	t.Setenv("LEDGER_FILE", "/var/lib/inboxwatch/messages.csv")

	config, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "group789", config.API.GroupID)
	assert.Equal(t, "https://gateway.internal", config.API.BaseURL)
	assert.Equal(t, 9000, config.Listen.Port)
	assert.True(t, config.Listen.Debug)
	assert.Equal(t, 90*time.Second, config.PollInterval)
	assert.Equal(t, 500*time.Millisecond, config.SendPause)
	assert.Equal(t, "/var/lib/inboxwatch/messages.csv", config.LedgerFile)
}
