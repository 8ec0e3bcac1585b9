package poller

import (
	"inboxwatch/lib"
	"inboxwatch/mailbox"
	"inboxwatch/remote"
	"inboxwatch/report"
	"inboxwatch/term"
)

// Fetcher retrieves the records of one account. Counts is the lightweight
// path (flags only, no identifiers), Fetch is the full-processing path.
type Fetcher interface {
	Counts(account mailbox.Account) ([]mailbox.Record, error)
	Fetch(account mailbox.Account) ([]mailbox.Record, error)
}

// Scanner implements Fetcher on top of a live IMAP connection per call.
// The connection is always released, whatever the exit path.
type Scanner struct {
	debug lib.Logger
}

func NewScanner(debug lib.Logger) *Scanner {
	if debug == nil {
		debug = &lib.NoLog{}
	}
	return &Scanner{debug: debug}
}

func (s *Scanner) connect(account mailbox.Account) (*remote.Imap, error) {
	return remote.NewImap(remote.Config{
		Host:        account.Host,
		User:        account.User,
		Pass:        account.Pass,
		DebugLogger: s.debug,
	})
}

func (s *Scanner) Counts(account mailbox.Account) ([]mailbox.Record, error) {
	mbox, err := s.connect(account)
	if err != nil {
		return nil, err
	}
	defer mbox.Close()

	flagSets, err := mbox.CountFlags()
	if err != nil {
		return nil, err
	}
	records := make([]mailbox.Record, 0, len(flagSets))
	for _, flags := range flagSets {
		records = append(records, mailbox.Record{
			AccountName: account.Name,
			AccountUser: account.User,
			Seen:        mailbox.HasSeenFlag(flags),
		})
	}
	return records, nil
}

func (s *Scanner) Fetch(account mailbox.Account) ([]mailbox.Record, error) {
	mbox, err := s.connect(account)
	if err != nil {
		return nil, err
	}
	defer mbox.Close()

	raw, err := mbox.FetchAll()
	if err != nil {
		return nil, err
	}
	records := make([]mailbox.Record, 0, len(raw))
	for _, msg := range raw {
		record, err := mailbox.Normalize(account, msg.Flags, msg.Body)
		if err != nil {
			term.Debugf("skipping message on account %s: %s", account.Name, err)
			continue
		}
		records = append(records, record)
	}
	return records, nil
}

// CountsReport runs the lightweight report path over every account, in
// configured order. The first account failure aborts the scan: its
// diagnostic message supersedes the statistics entirely, so the operator
// sees either a full report or the one connection error, never a mix.
func CountsReport(accounts []mailbox.Account, fetcher Fetcher) string {
	records := make([]mailbox.Record, 0)
	for _, account := range accounts {
		accountRecords, err := fetcher.Counts(account)
		if err != nil {
			term.Errorf("cannot process account %s: %s", account.Name, err)
			return report.AccountError(account.Name)
		}
		records = append(records, accountRecords...)
	}
	return report.Generate(accounts, records)
}

// Aggregate runs the full-processing path over every account, in
// configured order. An account failure is logged and only removes that
// account from the cycle, the others still contribute their records.
func Aggregate(accounts []mailbox.Account, fetcher Fetcher) []mailbox.Record {
	records := make([]mailbox.Record, 0)
	for _, account := range accounts {
		term.Infof("processing account %s (%s)", account.Name, account.User)
		accountRecords, err := fetcher.Fetch(account)
		if err != nil {
			term.Errorf("cannot process account %s: %s", account.Name, err)
			continue
		}
		term.Infof("account %s: %d messages", account.Name, len(accountRecords))
		records = append(records, accountRecords...)
	}
	return records
}

var _ Fetcher = &Scanner{}
