// Package ledger persists the set of message identifiers already notified,
// inside a flat CSV file that doubles as the message history.
package ledger

import (
	"encoding/csv"
	"fmt"
	"os"

	"inboxwatch/mailbox"
	"inboxwatch/term"
)

var columns = []string{"account_name", "account_user", "message_id", "date", "from", "subject", "status", "body"}

const messageIDColumn = 2

// Ledger is the in-memory set of already-notified message identifiers,
// backed by a CSV history file. It is only ever mutated by the polling
// loop, no locking needed.
type Ledger struct {
	path     string
	notified map[string]struct{}
}

func New(path string) *Ledger {
	return &Ledger{
		path:     path,
		notified: make(map[string]struct{}),
	}
}

// Load populates the ledger from the message_id column of the history
// file. A missing or unreadable file yields an empty ledger, never an
// error: losing the history only means repeating some notifications.
func (l *Ledger) Load() {
	file, err := os.Open(l.path)
	if err != nil {
		term.Debugf("no message history to load: %s", err)
		return
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		term.Warnf("cannot read message history %q, starting with an empty ledger: %s", l.path, err)
		return
	}
	for _, row := range rows {
		if len(row) <= messageIDColumn {
			continue
		}
		id := row[messageIDColumn]
		if id == "" || id == columns[messageIDColumn] {
			continue
		}
		l.notified[id] = struct{}{}
	}
	term.Infof("loaded %d previously notified message ids from %q", len(l.notified), l.path)
}

func (l *Ledger) Contains(id string) bool {
	_, found := l.notified[id]
	return found
}

func (l *Ledger) Add(id string) {
	l.notified[id] = struct{}{}
}

func (l *Ledger) Len() int {
	return len(l.notified)
}

// Flush rewrites the history file from this cycle's records, keeping one
// row per message identifier (the last record wins on conflict). The
// history is independent from the in-memory notified set.
func (l *Ledger) Flush(records []mailbox.Record) error {
	last := make(map[string]int, len(records))
	for index, record := range records {
		last[record.MessageID] = index
	}

	file, err := os.Create(l.path)
	if err != nil {
		return fmt.Errorf("cannot save message history: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(columns); err != nil {
		return fmt.Errorf("cannot write message history: %w", err)
	}
	saved := 0
	for index, record := range records {
		if last[record.MessageID] != index {
			// an older duplicate
			continue
		}
		err := writer.Write([]string{
			record.AccountName,
			record.AccountUser,
			record.MessageID,
			record.Date,
			record.From,
			record.Subject,
			status(record),
			record.Body,
		})
		if err != nil {
			return fmt.Errorf("cannot write message history: %w", err)
		}
		saved++
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("cannot write message history: %w", err)
	}
	term.Infof("saved %d unique messages to %q", saved, l.path)
	return nil
}

func status(record mailbox.Record) string {
	if record.Seen {
		return "read"
	}
	return "unread"
}
