package intent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"isms-assistant/internal/model"
	"isms-assistant/internal/routing"
	"isms-assistant/pkg/llmprovider"
)

// Classify determines the intent of message. A transport or provider failure
// is returned as an error; a malformed or empty model answer degrades to
// IntentUnknown with zero confidence so the chain falls through either way.
func (c *Classifier) Classify(ctx context.Context, message string, history []model.HistoryEntry) (routing.IntentResult, error) {
	prompt := buildPrompt(message, history)

	resp, err := c.llm.GenerateContent(ctx, &llmprovider.Request{
		Messages: []llmprovider.Message{
			{
				Role:  "user",
				Parts: []llmprovider.Part{{Text: prompt}},
			},
		},
		Temperature: ClassifierTemperature,
	})
	if err != nil {
		return routing.IntentResult{}, fmt.Errorf("%s: %s: %w", LogPrefixClassify, ErrMsgLLMCallFailed, err)
	}

	text := responseText(resp)
	if text == "" {
		c.l.Warnf(ctx, "%s: %s", LogPrefixClassify, ErrMsgEmptyResponse)
		return routing.IntentResult{Intent: IntentUnknown}, nil
	}

	var out classifierOutput
	if err := json.Unmarshal([]byte(stripCodeFence(text)), &out); err != nil {
		c.l.Warnf(ctx, "%s: %s: %v", LogPrefixClassify, ErrMsgJSONParseFailed, err)
		return routing.IntentResult{Intent: IntentUnknown}, nil
	}

	out.Intent = strings.ToLower(strings.TrimSpace(out.Intent))
	if !knownIntents[out.Intent] {
		c.l.Warnf(ctx, "%s: model produced unlisted intent %q", LogPrefixClassify, out.Intent)
		out.Intent = IntentUnknown
	}
	if out.Confidence < 0 {
		out.Confidence = 0
	}
	if out.Confidence > 100 {
		out.Confidence = 100
	}

	c.l.Infof(ctx, "%s: classified as %s (confidence: %d%%)", LogPrefixClassify, out.Intent, out.Confidence)
	return routing.IntentResult{
		Intent:     out.Intent,
		Confidence: float64(out.Confidence) / 100,
		Reasoning:  out.Reasoning,
	}, nil
}

func buildPrompt(message string, history []model.HistoryEntry) string {
	if len(history) > historyWindow {
		history = history[len(history)-historyWindow:]
	}

	var b strings.Builder
	if len(history) > 0 {
		b.WriteString(PromptHistoryPrefix)
		for i, turn := range history {
			fmt.Fprintf(&b, "%d. %s: %s\n", i+1, turn.Role, turn.Text)
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, PromptClassifySystem, message)
	return b.String()
}

func responseText(resp *llmprovider.Response) string {
	if resp == nil {
		return ""
	}
	for _, part := range resp.Content.Parts {
		if part.Text != "" {
			return strings.TrimSpace(part.Text)
		}
	}
	return ""
}

// stripCodeFence removes a surrounding markdown code block, which some
// models add despite the JSON-only instruction.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
	} else {
		return s
	}
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
