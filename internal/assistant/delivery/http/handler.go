package http

import (
	"github.com/gin-gonic/gin"

	"isms-assistant/internal/assistant"
	pkgResponse "isms-assistant/pkg/response"
)

const logPrefix = "internal.assistant.delivery.http"

// ChatRequest is the POST /chat body.
type ChatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message" binding:"required"`
}

// ChatResponse carries the response envelope plus the session ID the
// client must echo on its next message.
type ChatResponse struct {
	SessionID string         `json:"session_id"`
	Status    string         `json:"status"`
	Text      string         `json:"text"`
	Payload   map[string]any `json:"payload,omitempty"`
}

// Chat routes and executes one assistant message.
// @Summary Chat with the ISMS assistant
// @Description Routes one free-text message and executes the matching operation
// @Tags Assistant
// @Accept json
// @Produce json
// @Param body body ChatRequest true "Chat message; omit session_id to start a new conversation"
// @Success 200 {object} ChatResponse
// @Router /api/v1/chat [post]
func (h *handler) Chat(c *gin.Context) {
	ctx := c.Request.Context()

	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.l.Warnf(ctx, "%s.Chat: invalid request: %v", logPrefix, err)
		pkgResponse.Error(c, err, nil)
		return
	}

	out, err := h.uc.Chat(ctx, assistant.ChatInput{SessionID: req.SessionID, Message: req.Message})
	if err != nil {
		h.l.Errorf(ctx, "%s.Chat: usecase failed: %v", logPrefix, err)
		pkgResponse.InternalError(c, err)
		return
	}

	pkgResponse.OK(c, ChatResponse{
		SessionID: out.SessionID,
		Status:    string(out.Envelope.Status),
		Text:      out.Envelope.Text,
		Payload:   out.Envelope.Payload,
	})
}

// RoutingLogEntry is one recorded comparison in the routing log response.
type RoutingLogEntry struct {
	Time       pkgResponse.DateTime `json:"time"`
	Message    string               `json:"message"`
	Legacy     string               `json:"legacy"`
	Candidate  string               `json:"candidate"`
	Agreed     bool                 `json:"agreed"`
	Authority  string               `json:"authority"`
	Confidence float64              `json:"confidence"`
}

// RoutingLog exposes the shadow routing comparison log.
// @Summary Shadow routing comparison log
// @Description Recent legacy-vs-candidate routing decisions and the agreement rate
// @Tags Debug
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /debug/routing-log [get]
func (h *handler) RoutingLog(c *gin.Context) {
	if h.comparator == nil {
		pkgResponse.OK(c, gin.H{"enabled": false})
		return
	}
	recorded := h.comparator.Entries()
	entries := make([]RoutingLogEntry, 0, len(recorded))
	for _, e := range recorded {
		entries = append(entries, RoutingLogEntry{
			Time:       pkgResponse.DateTime(e.Time),
			Message:    e.Message,
			Legacy:     string(e.Legacy),
			Candidate:  string(e.Candidate),
			Agreed:     e.Agreed,
			Authority:  string(e.Authority),
			Confidence: e.Confidence,
		})
	}
	pkgResponse.OK(c, gin.H{
		"enabled":        true,
		"agreement_rate": h.comparator.AgreementRate(),
		"entries":        entries,
	})
}
