package routing

import (
	"context"
	"strings"

	"isms-assistant/internal/model"
	"isms-assistant/pkg/log"
)

// Context carries the per-request facts the chain needs beyond the message
// text: whether a processed document is active and whether a file action is
// awaiting a short option reply.
type Context struct {
	HasActiveDocument bool
	SpreadsheetCount  int
	PendingFileAction bool

	// SkipIntent suppresses the classifier step. The comparator sets it
	// on the shadow side when the authoritative side classifies too, so
	// one message never produces a second classifier call.
	SkipIntent bool
}

// IntentResult is what the external intent classifier returns for a message.
type IntentResult struct {
	Intent     string
	Confidence float64
	Reasoning  string
}

// IntentClassifier is the LLM-backed classifier step consulted when no
// pattern matched. Its errors never fail routing; the chain falls through.
type IntentClassifier interface {
	Classify(ctx context.Context, message string, history []model.HistoryEntry) (IntentResult, error)
}

type classifierFunc func(ctx context.Context, s *model.SessionState, msg string, rc Context) (Decision, bool)

// Chain routes one normalized message through an ordered list of classifier
// steps and returns the first match. The order is a behavioral contract:
// pending follow-ups outrank everything, deterministic patterns outrank the
// LLM classifier, and the chat step at the end always matches, so Route is
// total.
type Chain struct {
	l         log.Logger
	normalize *Normalizer
	types     *ObjectTypeResolver
	ops       *OperationClassifier
	followUps *FollowUpStateMachine
	intents   IntentClassifier
	threshold float64
	steps     []classifierFunc
}

// NewChain builds the chain. intents may be nil, in which case the classifier
// step is skipped entirely. threshold <= 0 selects the default gate.
func NewChain(l log.Logger, followUps *FollowUpStateMachine, intents IntentClassifier, threshold float64) *Chain {
	if threshold <= 0 {
		threshold = DefaultIntentThreshold
	}
	c := &Chain{
		l:         l,
		normalize: NewNormalizer(),
		types:     NewObjectTypeResolver(),
		ops:       NewOperationClassifier(),
		followUps: followUps,
		intents:   intents,
		threshold: threshold,
	}
	c.steps = []classifierFunc{
		c.stepFollowUp,
		c.stepGreeting,
		c.stepObjectOperation,
		c.stepReport,
		c.stepIntent,
		c.stepDocument,
		c.stepKnowledge,
		c.stepChat,
	}
	return c
}

// Route classifies message against s. It never returns an error: every
// message resolves to some Decision, the chat step being the terminal match.
// Route reads session state but does not mutate it; handlers own mutation.
func (c *Chain) Route(ctx context.Context, s *model.SessionState, message string, rc Context) Decision {
	msg := c.normalize.Normalize(message)
	if msg == "" {
		return Decision{Route: RouteFallback, Confidence: confidenceFallback}
	}
	for _, step := range c.steps {
		if d, ok := step(ctx, s, msg, rc); ok {
			c.l.Debugf(ctx, "%s.Route: %q -> %s (%.2f)", LogPrefixChain, msg, d.Route, d.Confidence)
			return d
		}
	}
	// Unreachable: stepChat always matches.
	return Decision{Route: RouteFallback, Confidence: confidenceFallback}
}

// ClassifierBacked reports whether Route may consult the external intent
// classifier. A pattern-only chain returns false.
func (c *Chain) ClassifierBacked() bool {
	return c.intents != nil
}

func (c *Chain) stepFollowUp(_ context.Context, s *model.SessionState, _ string, _ Context) (Decision, bool) {
	if _, ok := c.followUps.Pending(s); !ok {
		return Decision{}, false
	}
	return Decision{Route: RouteFollowUp, Confidence: confidenceFollowUp}, true
}

func (c *Chain) stepGreeting(_ context.Context, _ *model.SessionState, msg string, _ Context) (Decision, bool) {
	trimmed := strings.Trim(msg, "!.?")
	for _, g := range greetings {
		if trimmed == g {
			return Decision{Route: RouteGreeting, Confidence: confidenceGreeting}, true
		}
	}
	if IsThanks(msg) {
		return Decision{Route: RouteGreeting, Confidence: confidenceGreeting}, true
	}
	return Decision{}, false
}

func (c *Chain) stepObjectOperation(_ context.Context, _ *model.SessionState, msg string, _ Context) (Decision, bool) {
	// "generate inventory of assets report" mentions an object type but
	// is a report request; leave it for the report step.
	if strings.Contains(msg, "report") && hasReportVerb(msg) {
		return Decision{}, false
	}
	objectType, okType := c.types.Resolve(msg)
	if !okType {
		return Decision{}, false
	}
	op, okOp := c.ops.Classify(msg)
	if !okOp {
		return Decision{}, false
	}
	return Decision{
		Route:      RouteObjectOperation,
		Confidence: confidenceObjectOp,
		Payload: map[string]any{
			PayloadObjectType: objectType,
			PayloadOperation:  string(op),
		},
	}, true
}

func (c *Chain) stepReport(_ context.Context, _ *model.SessionState, msg string, _ Context) (Decision, bool) {
	if !strings.Contains(msg, "report") || !hasReportVerb(msg) {
		return Decision{}, false
	}
	reportType, reportName := defaultReportType, defaultReportName
	for _, row := range reportTypeTable {
		all := true
		for _, phrase := range row.Phrases {
			if !strings.Contains(msg, phrase) {
				all = false
				break
			}
		}
		if all {
			reportType, reportName = row.Type, row.Name
			break
		}
	}
	return Decision{
		Route:      RouteReport,
		Confidence: confidenceReport,
		Payload: map[string]any{
			PayloadReportType: reportType,
			PayloadReportName: reportName,
		},
	}, true
}

// stepIntent consults the LLM classifier. It is confidence gated and its
// failures are swallowed: routing must work with the classifier down.
func (c *Chain) stepIntent(ctx context.Context, s *model.SessionState, msg string, rc Context) (Decision, bool) {
	if c.intents == nil || rc.SkipIntent {
		return Decision{}, false
	}
	res, err := c.intents.Classify(ctx, msg, s.RecentHistory(6))
	if err != nil {
		c.l.Warnf(ctx, "%s.stepIntent: classifier unavailable: %v", LogPrefixChain, err)
		return Decision{}, false
	}
	if res.Intent == "" || res.Intent == "unknown" || res.Confidence < c.threshold {
		return Decision{}, false
	}
	return Decision{
		Route:      RouteIntent,
		Confidence: res.Confidence,
		Payload: map[string]any{
			PayloadIntent:    res.Intent,
			PayloadReasoning: res.Reasoning,
		},
	}, true
}

func (c *Chain) stepDocument(_ context.Context, _ *model.SessionState, msg string, rc Context) (Decision, bool) {
	if rc.PendingFileAction {
		if opt, ok := optionReplies[msg]; ok {
			return Decision{
				Route:      RouteBulkImport,
				Confidence: confidenceBulk,
				Payload:    map[string]any{PayloadOption: opt},
			}, true
		}
	}
	if !rc.HasActiveDocument {
		return Decision{}, false
	}
	if rc.SpreadsheetCount > 0 {
		for _, trigger := range bulkImportTriggers {
			if msg == trigger || strings.Contains(msg, trigger) {
				return Decision{Route: RouteBulkImport, Confidence: confidenceBulk}, true
			}
		}
	}
	for _, kw := range documentQueryKeywords {
		if strings.Contains(msg, kw) {
			return Decision{Route: RouteDocumentQuery, Confidence: confidenceDocQuery}, true
		}
	}
	for _, kw := range []string{"analyze", "summarize", "review", "document", "file"} {
		if strings.Contains(msg, kw) {
			return Decision{Route: RouteDocumentAnalyze, Confidence: confidenceDocument}, true
		}
	}
	return Decision{}, false
}

func (c *Chain) stepKnowledge(_ context.Context, _ *model.SessionState, msg string, _ Context) (Decision, bool) {
	if !IsQuestion(msg) {
		return Decision{}, false
	}
	return Decision{Route: RouteKnowledge, Confidence: confidenceKnowledge}, true
}

// stepChat is the terminal step; it matches every message.
func (c *Chain) stepChat(_ context.Context, _ *model.SessionState, _ string, _ Context) (Decision, bool) {
	return Decision{Route: RouteChat, Confidence: confidenceChat}, true
}

func hasReportVerb(msg string) bool {
	for _, v := range reportVerbs {
		if containsWord(msg, v) {
			return true
		}
	}
	return false
}

func containsWord(msg, word string) bool {
	for _, f := range strings.FieldsFunc(msg, func(r rune) bool {
		return r == ' ' || r == ',' || r == '.' || r == '!' || r == '?'
	}) {
		if f == word {
			return true
		}
	}
	return false
}
