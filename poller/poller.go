// Package poller drives the polling cycle: aggregate every account,
// broadcast the status report, notify new unread messages and persist the
// history ledger.
package poller

import (
	"context"
	"time"

	"inboxwatch/ledger"
	"inboxwatch/mailbox"
	"inboxwatch/report"
	"inboxwatch/term"
)

// Sender is the outbound side of the messaging gateway.
type Sender interface {
	SendDirect(recipient, text string) bool
	SendToGroup(text string) bool
}

type Poller struct {
	accounts []mailbox.Account
	fetcher  Fetcher
	sender   Sender
	ledger   *ledger.Ledger
	interval time.Duration
}

func New(accounts []mailbox.Account, fetcher Fetcher, sender Sender, led *ledger.Ledger, interval time.Duration) *Poller {
	return &Poller{
		accounts: accounts,
		fetcher:  fetcher,
		sender:   sender,
		ledger:   led,
		interval: interval,
	}
}

// Cycle runs one full-processing iteration. When no account returned any
// record there is nothing to report, notify or persist.
func (p *Poller) Cycle() {
	records := Aggregate(p.accounts, p.fetcher)
	if len(records) == 0 {
		term.Info("no messages fetched this cycle")
		return
	}

	p.sender.SendToGroup(report.Generate(p.accounts, records))

	newUnread := mailbox.NewUnread(records, p.ledger.Contains)
	if len(newUnread) == 0 {
		term.Info("no new unread messages")
	} else {
		term.Infof("found %d new unread messages, sending notifications", len(newUnread))
		p.sender.SendToGroup(report.NewMailSummary(len(newUnread)))
		for _, record := range newUnread {
			term.Infof("notifying %q from account %s", record.Subject, record.AccountName)
			if p.sender.SendToGroup(report.Notification(record)) {
				// only a confirmed send enters the ledger, a failed one
				// gets another chance next cycle
				p.ledger.Add(record.MessageID)
			}
		}
	}

	if err := p.ledger.Flush(records); err != nil {
		term.Error(err)
	}
}

// Run cycles until the context is canceled. There is no other exit path.
func (p *Poller) Run(ctx context.Context) {
	for {
		p.Cycle()
		term.Infof("waiting %s until the next cycle", p.interval)
		select {
		case <-time.After(p.interval):
		case <-ctx.Done():
			return
		}
	}
}
