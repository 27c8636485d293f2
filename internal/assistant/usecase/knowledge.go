package usecase

import (
	"context"
	"strings"

	"isms-assistant/internal/assistant"
	"isms-assistant/internal/model"
)

// handleKnowledge answers a conceptual question: static knowledge base
// first, then the reasoner. Both paths degrade, never fail.
func (uc *implUseCase) handleKnowledge(ctx context.Context, s *model.SessionState, message string) model.Envelope {
	if answer, ok := assistant.KnowledgeAnswer(message); ok {
		return model.SuccessEnvelope(answer)
	}
	return uc.handleChat(ctx, s, message)
}

// handleChat is the terminal conversational path. The reasoner gets the
// recent history as context; without a reasoner the assistant still
// answers with guidance.
func (uc *implUseCase) handleChat(ctx context.Context, s *model.SessionState, message string) model.Envelope {
	if uc.reasoner == nil || !uc.reasoner.Available() {
		return model.SuccessEnvelope(assistant.MsgReasonerUnavailable)
	}
	answer, err := uc.reasoner.Reason(ctx, message, historyContext(s))
	if err != nil {
		uc.l.Warnf(ctx, "%s.handleChat: reasoner failed: %v", logPrefixChat, err)
		return model.SuccessEnvelope(assistant.MsgReasonerUnavailable)
	}
	if strings.TrimSpace(answer) == "" {
		return model.SuccessEnvelope(assistant.MsgFallback)
	}
	return model.SuccessEnvelope(answer)
}

// historyContext flattens the recent turns for the reasoner prompt.
func historyContext(s *model.SessionState) string {
	turns := s.RecentHistory(6)
	if len(turns) == 0 {
		return ""
	}
	var b strings.Builder
	for _, t := range turns {
		b.WriteString(string(t.Role))
		b.WriteString(": ")
		b.WriteString(t.Text)
		b.WriteString("\n")
	}
	return b.String()
}
