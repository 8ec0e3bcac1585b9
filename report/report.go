// Package report renders chat messages from aggregated mailbox records.
// Everything in here is a pure function of its inputs.
package report

import (
	"fmt"
	"strings"

	"inboxwatch/mailbox"
)

const (
	// Fixed answer when no account returned any message.
	NoMailMessage = "No emails found in any of the accounts."

	sectionDelimiter = "------------------------------------"
	totalDelimiter   = "===================="

	notificationBodyLimit = 300
)

// Generate builds the status report: one section per account holding at
// least one record, in account order, followed by a grand total section.
// Accounts with zero records are left out on purpose.
func Generate(accounts []mailbox.Account, records []mailbox.Record) string {
	if len(records) == 0 {
		return NoMailMessage
	}

	builder := &strings.Builder{}
	builder.WriteString("📊 *Email status report*\n")

	totalAll, readAll := 0, 0
	for _, account := range accounts {
		total, read := tally(records, account.User)
		if total == 0 {
			continue
		}
		fmt.Fprintf(builder,
			"\n%s\n📬 *Account: %s*\n▫️ Total: *%d* | ✅ Read: *%d* | 📩 Unread: *%d*",
			sectionDelimiter, account.Name, total, read, total-read)
		totalAll += total
		readAll += read
	}

	fmt.Fprintf(builder,
		"\n%s\n📈 *Grand total (all accounts):*\n▫️ Total: *%d* | ✅ Read: *%d* | 📩 Unread: *%d*",
		totalDelimiter, totalAll, readAll, totalAll-readAll)
	return builder.String()
}

// tally counts the records of one account and how many of them are read.
func tally(records []mailbox.Record, accountUser string) (total, read int) {
	for _, record := range records {
		if record.AccountUser != accountUser {
			continue
		}
		total++
		if record.Seen {
			read++
		}
	}
	return total, read
}

// AccountError is the message superseding the statistics when an account
// cannot be reached on the counts-only path.
func AccountError(accountName string) string {
	return fmt.Sprintf("❌ Cannot connect to email account: *%s*\nPlease check the host and credentials configured for this account.", accountName)
}

// Notification renders a single new-message alert.
func Notification(record mailbox.Record) string {
	body := record.Body
	if body == "" {
		body = "(no text found)"
	}
	return fmt.Sprintf(
		"📬 *New email for [%s]* 📬\n\n👤 *From:* %s\n📝 *Subject:* %s\n%s\n📄 *Body:*\n%s",
		record.AccountName, record.From, record.Subject,
		sectionDelimiter, mailbox.TruncateBody(body, notificationBodyLimit))
}

// NewMailSummary announces how many new unread messages a cycle found,
// sent once before the per-message notifications.
func NewMailSummary(count int) string {
	return fmt.Sprintf("🔔 *New email alert* 🔔\n\nYou have *%d* new emails across all accounts:", count)
}
