package assistant

import "isms-assistant/internal/model"

// ChatInput is one inbound user message. An empty SessionID starts a
// new conversation.
type ChatInput struct {
	SessionID string
	Message   string
}

// ChatOutput carries the response envelope and the session the caller
// must echo on the next turn.
type ChatOutput struct {
	SessionID string
	Envelope  model.Envelope
}
