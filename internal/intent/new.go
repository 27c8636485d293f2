package intent

import (
	"context"

	"isms-assistant/internal/routing"
	"isms-assistant/pkg/llmprovider"
	"isms-assistant/pkg/log"
)

// Generator is the slice of the provider manager the classifier needs.
type Generator interface {
	GenerateContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error)
}

// Classifier asks an LLM for the intent of a message the pattern steps could
// not place. It plugs into the routing chain as its confidence-gated step.
type Classifier struct {
	llm Generator
	l   log.Logger
}

var _ routing.IntentClassifier = (*Classifier)(nil)

// New creates a Classifier on top of the provider manager.
func New(llm Generator, l log.Logger) *Classifier {
	return &Classifier{
		llm: llm,
		l:   l,
	}
}
