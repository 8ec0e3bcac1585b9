package mailbox

import "github.com/emersion/go-imap"

// Record is one normalized message from one polling cycle. Only the
// MessageID survives across cycles, through the ledger.
type Record struct {
	AccountName string
	AccountUser string
	// Value of the Message-ID header, unique within an account.
	MessageID string
	// Origination date in its display (Persian calendar) form, or the raw
	// header value when the date could not be parsed.
	Date    string
	From    string
	Subject string
	Seen    bool
	Body    string
}

// HasSeenFlag reports whether the flag set marks the message as read.
func HasSeenFlag(flags []string) bool {
	for _, flag := range flags {
		if flag == imap.SeenFlag {
			return true
		}
	}
	return false
}

// NewUnread returns the records that are unread and not yet known to the
// ledger, preserving input order.
func NewUnread(records []Record, notified func(id string) bool) []Record {
	output := make([]Record, 0, len(records))
	for _, record := range records {
		if record.Seen || notified(record.MessageID) {
			continue
		}
		output = append(output, record)
	}
	return output
}
