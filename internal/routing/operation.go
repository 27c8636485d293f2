package routing

import (
	"regexp"
	"strings"
)

// Operation is an operation token derived from a chat message.
type Operation string

const (
	OperationCreate         Operation = "create"
	OperationList           Operation = "list"
	OperationGet            Operation = "get"
	OperationUpdate         Operation = "update"
	OperationDelete         Operation = "delete"
	OperationAnalyze        Operation = "analyze"
	OperationGenerateReport Operation = "generate_report"
)

// OperationClassifier derives an operation token from a normalized message.
// Priority is fixed: update beats delete beats create beats list beats get
// beats analyze, so "update or create scope X" always resolves to update.
type OperationClassifier struct {
	keywordPatterns map[string]*regexp.Regexp
}

// NewOperationClassifier precompiles the word-boundary keyword patterns.
func NewOperationClassifier() *OperationClassifier {
	patterns := make(map[string]*regexp.Regexp)
	for _, row := range operationKeywords {
		for _, kw := range row.Keywords {
			if _, ok := patterns[kw]; !ok {
				patterns[kw] = regexp.MustCompile(`\b` + regexp.QuoteMeta(kw) + `\b`)
			}
		}
	}
	return &OperationClassifier{keywordPatterns: patterns}
}

// Classify returns the operation token for a normalized message, or false
// when the message is not an operation. Interrogative messages ("how do I
// create a scope?") are never operations: they fall through to the knowledge
// path.
func (c *OperationClassifier) Classify(message string) (Operation, bool) {
	if IsQuestion(message) {
		return "", false
	}

	containsQuestionWord := false
	for _, q := range questionWords {
		if strings.Contains(message, q) {
			containsQuestionWord = true
			break
		}
	}

	for _, row := range operationKeywords {
		if row.Interrogative && containsQuestionWord {
			continue
		}
		for _, kw := range row.Keywords {
			if c.keywordPatterns[kw].MatchString(message) {
				return row.Op, true
			}
		}
	}
	return "", false
}

// IsThanks reports whether a message is a bare acknowledgement. Those
// get a short reply rather than the capability greeting.
func IsThanks(message string) bool {
	m := strings.Trim(strings.ToLower(strings.TrimSpace(message)), "!.?")
	for _, t := range thanks {
		if m == t {
			return true
		}
	}
	return false
}

// IsQuestion reports whether a normalized message opens like a knowledge
// question rather than a command.
func IsQuestion(message string) bool {
	for _, starter := range questionStarters {
		if strings.HasPrefix(message, starter) {
			return true
		}
	}
	return false
}
