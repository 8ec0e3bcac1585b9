package remote

import (
	"bytes"
	"crypto/tls"
	"errors"
	"fmt"
	"strings"

	"github.com/emersion/go-imap"
	compress "github.com/emersion/go-imap-compress"
	"github.com/emersion/go-imap/client"

	"inboxwatch/lib"
)

const defaultPort = "993"

type Config struct {
	// Host or host:port of the IMAP server.
	Host                string
	User                string
	Pass                string
	NoTLS               bool
	SkipTLSVerification bool
	DebugLogger         lib.Logger
}

// Imap holds one authenticated session against one account.
type Imap struct {
	client *client.Client
	log    lib.Logger
}

// RawMessage is one fetched message before normalization.
type RawMessage struct {
	Flags []string
	Body  []byte
}

func NewImap(cfg Config) (*Imap, error) {
	log := cfg.DebugLogger
	if log == nil {
		log = &lib.NoLog{}
	}
	if cfg.Host == "" || cfg.User == "" || cfg.Pass == "" {
		return nil, errors.New("missing information from Config object")
	}

	addr := cfg.Host
	if !strings.Contains(addr, ":") {
		addr += ":" + defaultPort
	}

	var imapClient *client.Client
	var err error
	log.Printf("Connecting to server %s...", addr)
	if cfg.NoTLS {
		imapClient, err = client.Dial(addr)
	} else {
		tlsConfig := &tls.Config{}
		if cfg.SkipTLSVerification {
			tlsConfig.InsecureSkipVerify = true
		}
		imapClient, err = client.DialTLS(addr, tlsConfig)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot connect to server %s: %w", addr, err)
	}
	log.Print("Connected")

	if err := imapClient.Login(cfg.User, cfg.Pass); err != nil {
		return nil, fmt.Errorf("authentication failure: %w", err)
	}
	log.Printf("Logged in as %s", cfg.User)

	// try to enable the COMPRESS extension
	comp := compress.NewClient(imapClient)
	if ok, err := comp.SupportCompress(compress.Deflate); err == nil && ok {
		if err := comp.Compress(compress.Deflate); err != nil {
			log.Printf("cannot enable compression: %s", err)
		} else {
			log.Print("Compression enabled")
		}
	}

	return &Imap{
		client: imapClient,
		log:    log,
	}, nil
}

// Close logs out from the server. A failure to close the session is
// swallowed: the connection is unusable either way.
func (i *Imap) Close() {
	i.log.Print("Closing connection")
	_ = i.client.Logout()
}

func (i *Imap) selectInbox() (*imap.MailboxStatus, error) {
	status, err := i.client.Select("INBOX", true)
	if err != nil {
		return nil, fmt.Errorf("cannot select INBOX: %w", err)
	}
	i.log.Printf("INBOX selected, %d messages", status.Messages)
	return status, nil
}

// CountFlags selects the inbox read-only and returns the flag set of every
// message. Used by the counts-only report path.
func (i *Imap) CountFlags() ([][]string, error) {
	status, err := i.selectInbox()
	if err != nil {
		return nil, err
	}
	if status.Messages == 0 {
		return nil, nil
	}

	seqset := new(imap.SeqSet)
	seqset.AddRange(1, status.Messages)
	items := []imap.FetchItem{imap.FetchFlags}

	receiver := make(chan *imap.Message, 10)
	done := make(chan error, 1)
	go func() {
		done <- i.client.Fetch(seqset, items, receiver)
	}()

	flagSets := make([][]string, 0, status.Messages)
	for msg := range receiver {
		flagSets = append(flagSets, msg.Flags)
	}
	if err := <-done; err != nil {
		return nil, fmt.Errorf("cannot fetch message flags: %w", err)
	}
	return flagSets, nil
}

// FetchAll selects the inbox read-only and returns every message with its
// flags and full body. The body section is peeked so messages keep their
// unread state. A message arriving without a body is skipped, it never
// aborts the mailbox.
func (i *Imap) FetchAll() ([]RawMessage, error) {
	status, err := i.selectInbox()
	if err != nil {
		return nil, err
	}
	if status.Messages == 0 {
		return nil, nil
	}

	seqset := new(imap.SeqSet)
	seqset.AddRange(1, status.Messages)
	section := &imap.BodySectionName{Peek: true}
	items := []imap.FetchItem{section.FetchItem(), imap.FetchFlags, imap.FetchUid}

	receiver := make(chan *imap.Message, 10)
	done := make(chan error, 1)
	go func() {
		done <- i.client.Fetch(seqset, items, receiver)
	}()

	messages := make([]RawMessage, 0, status.Messages)
	for msg := range receiver {
		i.log.Printf("Received message seq=%d flags=%+v", msg.SeqNum, msg.Flags)
		literal := msg.GetBody(section)
		if literal == nil {
			i.log.Printf("message seq=%d has no body section, skipping", msg.SeqNum)
			continue
		}
		buffer := &bytes.Buffer{}
		if _, err := buffer.ReadFrom(literal); err != nil {
			i.log.Printf("cannot read body of message seq=%d, skipping: %s", msg.SeqNum, err)
			continue
		}
		messages = append(messages, RawMessage{
			Flags: msg.Flags,
			Body:  buffer.Bytes(),
		})
	}
	if err := <-done; err != nil {
		return nil, fmt.Errorf("cannot fetch messages: %w", err)
	}
	i.log.Print("All messages received")
	return messages, nil
}
