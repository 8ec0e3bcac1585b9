package gateway

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inboxwatch/lib"
)

func newTestGateway(t *testing.T, handler http.HandlerFunc, groupID string) *Gateway {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	sender, err := New(Config{
		BaseURL:     server.URL,
		APIKey:      "key123",
		Token:       "token456",
		GroupID:     groupID,
		SendPause:   time.Millisecond,
		DebugLogger: lib.NewTestLogger(t, "gateway"),
	})
	require.NoError(t, err)
	return sender
}

func TestNewRequiresCredentials(t *testing.T) {
	_, err := New(Config{Token: "token"})
	assert.Error(t, err)
	_, err = New(Config{APIKey: "key"})
	assert.Error(t, err)
}

func TestSendDirect(t *testing.T) {
	var request *http.Request
	sender := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		request = r
		w.WriteHeader(http.StatusOK)
	}, "")

	ok := sender.SendDirect("12345", "hello there")
	assert.True(t, ok)

	require.NotNil(t, request)
	assert.Equal(t, http.MethodGet, request.Method)
	assert.Equal(t, "/sendMsg/key123", request.URL.Path)
	assert.Equal(t, "12345", request.URL.Query().Get("phonenumber"))
	assert.Equal(t, "hello there", request.URL.Query().Get("message"))
	assert.Equal(t, "Bearer token456", request.Header.Get("Authorization"))
}

func TestSendToGroup(t *testing.T) {
	var request *http.Request
	sender := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		request = r
		w.WriteHeader(http.StatusOK)
	}, "group789")

	ok := sender.SendToGroup("broadcast")
	assert.True(t, ok)

	require.NotNil(t, request)
	assert.Equal(t, "/sendGroup/key123", request.URL.Path)
	assert.Equal(t, "group789", request.URL.Query().Get("groupId"))
	assert.Equal(t, "broadcast", request.URL.Query().Get("message"))
}

func TestSendToGroupWithoutGroupID(t *testing.T) {
	called := false
	sender := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	}, "")

	assert.False(t, sender.SendToGroup("broadcast"))
	assert.False(t, called)
}

func TestSendFailureReturnsFalse(t *testing.T) {
	sender := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}, "group789")

	assert.False(t, sender.SendDirect("12345", "hello"))
	assert.False(t, sender.SendToGroup("hello"))
}

func TestSendNetworkFailureReturnsFalse(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close() // nothing is listening anymore

	sender, err := New(Config{
		BaseURL:   server.URL,
		APIKey:    "key123",
		Token:     "token456",
		SendPause: time.Millisecond,
	})
	require.NoError(t, err)
	assert.False(t, sender.SendDirect("12345", "hello"))
}
