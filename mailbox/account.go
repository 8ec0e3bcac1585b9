package mailbox

// Account is one watched mailbox. Accounts are built once at startup from
// the environment and never modified afterwards.
type Account struct {
	// Display label used in reports and notifications.
	Name string
	// IMAP server, host or host:port (993 assumed when the port is missing).
	Host string
	User string
	Pass string
}
