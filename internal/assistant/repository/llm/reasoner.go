// Package llm adapts the provider fallback manager to the assistant's
// Reasoner port.
package llm

import (
	"context"
	"fmt"
	"strings"

	"isms-assistant/internal/assistant"
	"isms-assistant/pkg/llmprovider"
	pkgLog "isms-assistant/pkg/log"
)

const logPrefix = "internal.assistant.repository.llm"

const systemPrompt = "You are an ISMS compliance assistant. Answer briefly and " +
	"practically about information security management, ISO 27001 and the user's " +
	"ISMS objects. If the conversation context contains relevant facts, use them."

const reasonTemperature = 0.7

type implReasoner struct {
	manager *llmprovider.Manager
	l       pkgLog.Logger
}

var _ assistant.Reasoner = (*implReasoner)(nil)

// New wraps a provider manager as a Reasoner.
func New(manager *llmprovider.Manager, l pkgLog.Logger) *implReasoner {
	return &implReasoner{manager: manager, l: l}
}

// Available reports whether at least one provider is configured.
func (r *implReasoner) Available() bool {
	return r.manager != nil && r.manager.ProviderCount() > 0
}

// Reason asks the provider chain one question. history carries prior
// conversation turns and is optional.
func (r *implReasoner) Reason(ctx context.Context, query, history string) (string, error) {
	text := query
	if history != "" {
		text = fmt.Sprintf("Conversation so far:\n%s\nUser: %s", history, query)
	}
	req := &llmprovider.Request{
		SystemInstruction: &llmprovider.Message{
			Role:  "system",
			Parts: []llmprovider.Part{{Text: systemPrompt}},
		},
		Messages: []llmprovider.Message{
			{Role: "user", Parts: []llmprovider.Part{{Text: text}}},
		},
		Temperature: reasonTemperature,
	}
	resp, err := r.manager.GenerateContent(ctx, req)
	if err != nil {
		return "", fmt.Errorf("reasoning request failed: %w", err)
	}
	var b strings.Builder
	for _, part := range resp.Content.Parts {
		b.WriteString(part.Text)
	}
	answer := strings.TrimSpace(b.String())
	r.l.Debugf(ctx, "%s.Reason: provider=%s answer_length=%d", logPrefix, resp.ProviderName, len(answer))
	return answer, nil
}
