package intent_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"isms-assistant/internal/intent"
	"isms-assistant/internal/model"
	"isms-assistant/pkg/llmprovider"
)

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Debugf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) Info(ctx context.Context, args ...any)                   {}
func (m *mockLogger) Infof(ctx context.Context, format string, args ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, args ...any)                   {}
func (m *mockLogger) Warnf(ctx context.Context, format string, args ...any)   {}
func (m *mockLogger) Error(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Errorf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, args ...any)                 {}
func (m *mockLogger) DPanicf(ctx context.Context, format string, args ...any) {}
func (m *mockLogger) Panic(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Panicf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Fatalf(ctx context.Context, format string, args ...any)  {}

type mockGenerator struct {
	text    string
	err     error
	lastReq *llmprovider.Request
}

func (m *mockGenerator) GenerateContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error) {
	m.lastReq = req
	if m.err != nil {
		return nil, m.err
	}
	return &llmprovider.Response{
		Content: llmprovider.Message{
			Role:  "assistant",
			Parts: []llmprovider.Part{{Text: m.text}},
		},
	}, nil
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name           string
		text           string
		wantIntent     string
		wantConfidence float64
	}{
		{
			name:           "plain json",
			text:           `{"intent": "create_object", "confidence": 90, "reasoning": "create verb"}`,
			wantIntent:     intent.IntentCreateObject,
			wantConfidence: 0.9,
		},
		{
			name:           "fenced json",
			text:           "```json\n{\"intent\": \"list_objects\", \"confidence\": 75, \"reasoning\": \"enumeration\"}\n```",
			wantIntent:     intent.IntentListObjects,
			wantConfidence: 0.75,
		},
		{
			name:           "bare fence",
			text:           "```\n{\"intent\": \"bulk_import\", \"confidence\": 80}\n```",
			wantIntent:     intent.IntentBulkImport,
			wantConfidence: 0.8,
		},
		{
			name:           "unlisted intent coerced to unknown",
			text:           `{"intent": "MAKE_COFFEE", "confidence": 99}`,
			wantIntent:     intent.IntentUnknown,
			wantConfidence: 0.99,
		},
		{
			name:           "confidence clamped",
			text:           `{"intent": "get_object", "confidence": 250}`,
			wantIntent:     intent.IntentGetObject,
			wantConfidence: 1,
		},
		{
			name:           "garbage degrades to unknown",
			text:           "sure, I will create that for you!",
			wantIntent:     intent.IntentUnknown,
			wantConfidence: 0,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gen := &mockGenerator{text: tc.text}
			c := intent.New(gen, &mockLogger{})

			got, err := c.Classify(context.Background(), "some message", nil)
			if err != nil {
				t.Fatalf("Classify err = %v", err)
			}
			if got.Intent != tc.wantIntent {
				t.Errorf("intent = %q, want %q", got.Intent, tc.wantIntent)
			}
			if got.Confidence != tc.wantConfidence {
				t.Errorf("confidence = %v, want %v", got.Confidence, tc.wantConfidence)
			}
		})
	}
}

func TestClassifyProviderError(t *testing.T) {
	gen := &mockGenerator{err: errors.New("all providers failed")}
	c := intent.New(gen, &mockLogger{})

	if _, err := c.Classify(context.Background(), "some message", nil); err == nil {
		t.Fatal("provider failure must surface as an error")
	}
}

func TestClassifyIncludesHistory(t *testing.T) {
	gen := &mockGenerator{text: `{"intent": "unknown", "confidence": 10}`}
	c := intent.New(gen, &mockLogger{})

	history := []model.HistoryEntry{
		{Role: model.RoleUser, Text: "create asset Server01"},
		{Role: model.RoleAssistant, Text: "Which subtype should it have?"},
	}
	if _, err := c.Classify(context.Background(), "the second one", history); err != nil {
		t.Fatal(err)
	}

	prompt := gen.lastReq.Messages[0].Parts[0].Text
	for _, want := range []string{"create asset Server01", "Which subtype", "the second one"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}
