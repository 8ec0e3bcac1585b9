// Package webhook receives inbound callbacks from the chat application and
// maps them to the on-demand report command.
package webhook

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"inboxwatch/term"
)

// Command text triggering the on-demand report.
const reportCommand = "1"

// Reporter produces the counts-only report text.
type Reporter func() string

// Sender is the direct-reply side of the messaging gateway.
type Sender interface {
	SendDirect(recipient, text string) bool
}

type inboundMessage struct {
	Chat string `json:"Chat" binding:"required"`
	From string `json:"From" binding:"required"`
}

type Handler struct {
	authorized map[string]struct{}
	report     Reporter
	sender     Sender
}

func NewHandler(authorizedUsers []string, report Reporter, sender Sender) *Handler {
	authorized := make(map[string]struct{}, len(authorizedUsers))
	for _, user := range authorizedUsers {
		authorized[user] = struct{}{}
	}
	return &Handler{
		authorized: authorized,
		report:     report,
		sender:     sender,
	}
}

// Router builds the gin engine serving the webhook endpoint.
func (h *Handler) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.POST("/whatsapp-webhook", h.handle)
	return router
}

func (h *Handler) handle(c *gin.Context) {
	var payload inboundMessage
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "missing Chat or From field"})
		return
	}

	sender := senderID(payload.From)
	if _, ok := h.authorized[sender]; !ok {
		term.Infof("ignoring message from unauthorized sender %s", sender)
		c.JSON(http.StatusOK, gin.H{"success": true})
		return
	}

	if strings.TrimSpace(payload.Chat) == reportCommand {
		term.Infof("report requested by %s", sender)
		if !h.sender.SendDirect(sender, h.report()) {
			term.Errorf("could not deliver the report to %s", sender)
		}
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// senderID truncates an address-like From field at its first "@".
func senderID(from string) string {
	if index := strings.Index(from, "@"); index >= 0 {
		return from[:index]
	}
	return from
}
