package mailbox

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/emersion/go-imap"
)

func TestHasSeenFlag(t *testing.T) {
	testCases := []struct {
		flags []string
		seen  bool
	}{
		{nil, false},
		{[]string{}, false},
		{[]string{imap.SeenFlag}, true},
		{[]string{imap.AnsweredFlag, imap.SeenFlag}, true},
		{[]string{imap.AnsweredFlag, imap.FlaggedFlag}, false},
		{[]string{"seen"}, false},
	}
	for _, testCase := range testCases {
		assert.Equal(t, testCase.seen, HasSeenFlag(testCase.flags), "flags: %v", testCase.flags)
	}
}

func TestNewUnreadDelta(t *testing.T) {
	notified := map[string]struct{}{"m1": {}, "m2": {}}
	inLedger := func(id string) bool {
		_, found := notified[id]
		return found
	}

	records := []Record{
		{MessageID: "m1", Seen: false},
		{MessageID: "m2", Seen: true},
		{MessageID: "m3", Seen: false},
		{MessageID: "m4", Seen: true},
	}

	delta := NewUnread(records, inLedger)
	assert.Len(t, delta, 1)
	assert.Equal(t, "m3", delta[0].MessageID)
}

func TestNewUnreadIsIdempotent(t *testing.T) {
	notified := map[string]struct{}{}
	inLedger := func(id string) bool {
		_, found := notified[id]
		return found
	}

	records := []Record{
		{MessageID: "m1", Seen: false},
		{MessageID: "m2", Seen: false},
		{MessageID: "m3", Seen: true},
	}

	first := NewUnread(records, inLedger)
	assert.Len(t, first, 2)
	for _, record := range first {
		notified[record.MessageID] = struct{}{}
	}

	// same cycle again with an unchanged ledger: empty delta, even though
	// the messages are still flagged unread
	second := NewUnread(records, inLedger)
	assert.Empty(t, second)
}

func TestNewUnreadPreservesOrder(t *testing.T) {
	records := []Record{
		{MessageID: "b"},
		{MessageID: "a"},
		{MessageID: "c"},
	}
	delta := NewUnread(records, func(string) bool { return false })
	ids := make([]string, 0, len(delta))
	for _, record := range delta {
		ids = append(ids, record.MessageID)
	}
	assert.Equal(t, []string{"b", "a", "c"}, ids)
}

func TestTruncateBody(t *testing.T) {
	assert.Equal(t, "hello", TruncateBody("hello", 10))
	assert.Equal(t, "hel...", TruncateBody("hello", 3))
	assert.Equal(t, "", TruncateBody("", 3))
	// counts runes, not bytes
	assert.Equal(t, "سلا...", TruncateBody("سلام دنیا", 3))
}
