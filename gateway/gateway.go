// Package gateway is the outbound client for the chat messaging API.
// Sends are fire and forget: a failure is logged and reported as false,
// never as an error, so the polling loop keeps going regardless.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"inboxwatch/lib"
	"inboxwatch/term"
)

const (
	DefaultBaseURL = "https://api.whatsiplus.com"

	sendTimeout      = 15 * time.Second
	defaultSendPause = 3 * time.Second
)

type Config struct {
	// BaseURL of the messaging API, DefaultBaseURL when empty.
	BaseURL string
	APIKey  string
	Token   string
	// GroupID of the broadcast group. Group sends are dropped without it.
	GroupID string
	// SendPause is the minimum delay between two consecutive sends.
	SendPause   time.Duration
	DebugLogger lib.Logger
}

type Gateway struct {
	client  *http.Client
	limiter *rate.Limiter
	log     lib.Logger
	baseURL string
	apiKey  string
	token   string
	groupID string
}

func New(cfg Config) (*Gateway, error) {
	if cfg.APIKey == "" || cfg.Token == "" {
		return nil, errors.New("missing information from Config object")
	}
	log := cfg.DebugLogger
	if log == nil {
		log = &lib.NoLog{}
	}
	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	pause := cfg.SendPause
	if pause <= 0 {
		pause = defaultSendPause
	}
	return &Gateway{
		client:  &http.Client{Timeout: sendTimeout},
		limiter: rate.NewLimiter(rate.Every(pause), 1),
		log:     log,
		baseURL: baseURL,
		apiKey:  cfg.APIKey,
		token:   cfg.Token,
		groupID: cfg.GroupID,
	}, nil
}

// SendDirect delivers text to a single recipient.
func (g *Gateway) SendDirect(recipient, text string) bool {
	return g.send(
		fmt.Sprintf("%s/sendMsg/%s", g.baseURL, g.apiKey),
		url.Values{"phonenumber": {recipient}, "message": {text}},
	)
}

// SendToGroup broadcasts text to the configured group.
func (g *Gateway) SendToGroup(text string) bool {
	if g.groupID == "" {
		term.Warn("no group configured, dropping group message")
		return false
	}
	return g.send(
		fmt.Sprintf("%s/sendGroup/%s", g.baseURL, g.apiKey),
		url.Values{"groupId": {g.groupID}, "message": {text}},
	)
}

func (g *Gateway) send(endpoint string, params url.Values) bool {
	// paces consecutive sends, the API is rate sensitive
	_ = g.limiter.Wait(context.Background())

	request, err := http.NewRequest(http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		term.Errorf("cannot build message request: %s", err)
		return false
	}
	request.Header.Set("Authorization", "Bearer "+g.token)

	response, err := g.client.Do(request)
	if err != nil {
		term.Errorf("cannot send message: %s", err)
		return false
	}
	defer response.Body.Close()

	body, _ := io.ReadAll(response.Body)
	g.log.Printf("messaging API answered %d: %s", response.StatusCode, body)

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		term.Errorf("cannot send message: API answered %s", response.Status)
		return false
	}
	return true
}
