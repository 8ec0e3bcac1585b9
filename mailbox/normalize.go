package mailbox

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	_ "github.com/emersion/go-message/charset"
	"github.com/emersion/go-message/mail"
	ptime "github.com/yaa110/go-persian-calendar"

	"inboxwatch/lib"
)

// Display form of the origination date, in the Persian calendar.
const displayDateLayout = "yyyy/MM/dd HH:mm:ss"

// Normalize maps one raw message and its flag set to a Record.
// A message without a Message-ID header returns lib.ErrNoMessageID: it
// cannot be deduplicated safely so the caller must drop it.
func Normalize(account Account, flags []string, raw []byte) (Record, error) {
	reader, err := mail.CreateReader(bytes.NewReader(raw))
	if reader == nil {
		return Record{}, fmt.Errorf("cannot parse message: %w", err)
	}
	defer reader.Close()

	header := reader.Header
	messageID, err := header.MessageID()
	if err != nil || messageID == "" {
		messageID = bareMessageID(header.Get("Message-Id"))
		if messageID == "" {
			return Record{}, lib.ErrNoMessageID
		}
	}

	return Record{
		AccountName: account.Name,
		AccountUser: account.User,
		MessageID:   messageID,
		Date:        displayDate(header),
		From:        headerText(header, "From"),
		Subject:     headerText(header, "Subject"),
		Seen:        HasSeenFlag(flags),
		Body:        plainTextBody(reader),
	}, nil
}

// bareMessageID strips whitespace and angle brackets from a raw Message-Id
// header value. Deduplication keys must use the bare form whichever way the
// header was parsed.
func bareMessageID(raw string) string {
	return strings.Trim(strings.TrimSpace(raw), "<>")
}

// headerText decodes an encoded-word header, falling back to the raw value
// when the declared encoding cannot be decoded.
func headerText(header mail.Header, key string) string {
	value, err := header.Text(key)
	if err != nil {
		return header.Get(key)
	}
	return value
}

// displayDate converts the origination date to the Persian calendar, or
// returns the raw header value when the date does not parse.
func displayDate(header mail.Header) string {
	raw := header.Get("Date")
	date, err := header.Date()
	if err != nil || date.IsZero() {
		return raw
	}
	return ptime.New(date).Format(displayDateLayout)
}

// plainTextBody returns the first text/plain part that is not an
// attachment, or an empty string when the message has none.
func plainTextBody(reader *mail.Reader) string {
	for {
		part, err := reader.NextPart()
		if err != nil || part == nil {
			break
		}
		header, inline := part.Header.(*mail.InlineHeader)
		if !inline {
			// attachment, never the message text
			continue
		}
		contentType, _, err := header.ContentType()
		if err != nil || !strings.HasPrefix(contentType, "text/plain") {
			continue
		}
		body, err := io.ReadAll(part.Body)
		if err != nil {
			continue
		}
		return string(body)
	}
	return ""
}

// TruncateBody shortens a message body for chat notifications.
func TruncateBody(body string, max int) string {
	runes := []rune(body)
	if len(runes) <= max {
		return body
	}
	return string(runes[:max]) + "..."
}
