package routing_test

import (
	"testing"

	"isms-assistant/internal/routing"
)

func TestOperationClassify(t *testing.T) {
	c := routing.NewOperationClassifier()

	tests := []struct {
		name   string
		in     string
		want   routing.Operation
		wantOK bool
	}{
		{name: "create", in: "create asset server01", want: routing.OperationCreate, wantOK: true},
		{name: "add maps to create", in: "add a new person", want: routing.OperationCreate, wantOK: true},
		{name: "list", in: "list all scopes", want: routing.OperationList, wantOK: true},
		{name: "show maps to list", in: "show assets", want: routing.OperationList, wantOK: true},
		{name: "get", in: "get asset server01", want: routing.OperationGet, wantOK: true},
		{name: "update", in: "update the asset description", want: routing.OperationUpdate, wantOK: true},
		{name: "delete", in: "remove asset server01", want: routing.OperationDelete, wantOK: true},
		{name: "analyze", in: "analyze this document", want: routing.OperationAnalyze, wantOK: true},
		{name: "no operation", in: "the weather is nice", wantOK: false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := c.Classify(tc.in)
			if ok != tc.wantOK {
				t.Fatalf("Classify(%q) ok = %v, want %v", tc.in, ok, tc.wantOK)
			}
			if ok && got != tc.want {
				t.Errorf("Classify(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

// A message carrying keywords from several priority rows must always resolve
// to the highest-priority row, whatever the word order.
func TestOperationPriorityDeterminism(t *testing.T) {
	c := routing.NewOperationClassifier()

	tests := []struct {
		in   string
		want routing.Operation
	}{
		{in: "update or create scope x", want: routing.OperationUpdate},
		{in: "create or update scope x", want: routing.OperationUpdate},
		{in: "delete and create the asset", want: routing.OperationDelete},
		{in: "create then list assets", want: routing.OperationCreate},
		{in: "list and get scopes", want: routing.OperationList},
	}
	for _, tc := range tests {
		got, ok := c.Classify(tc.in)
		if !ok {
			t.Fatalf("Classify(%q) found no operation", tc.in)
		}
		if got != tc.want {
			t.Errorf("Classify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

// Knowledge questions must never classify as commands, and mid-message
// question words suppress the soft verbs but not the destructive ones.
func TestInterrogativeSuppression(t *testing.T) {
	c := routing.NewOperationClassifier()

	for _, in := range []string{
		"how do i create a scope?",
		"what is an asset",
		"how can i list my assets",
		"explain how to add a person",
	} {
		if op, ok := c.Classify(in); ok {
			t.Errorf("Classify(%q) = %q, want no operation", in, op)
		}
	}

	// Mid-message question words suppress create/list/get only.
	if op, ok := c.Classify("tell me what to create"); ok {
		t.Errorf("Classify(%q) = %q, want no operation", "tell me what to create", op)
	}
	op, ok := c.Classify("delete whatever asset is stale")
	if !ok || op != routing.OperationDelete {
		t.Errorf("delete must not be suppressed by a question word, got %q ok=%v", op, ok)
	}
}

func TestIsQuestion(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{in: "how do i create a scope?", want: true},
		{in: "what are assets", want: true},
		{in: "why is this failing", want: true},
		{in: "tell me about iso 27001", want: true},
		{in: "create asset server01", want: false},
		{in: "list scopes", want: false},
	}
	for _, tc := range tests {
		if got := routing.IsQuestion(tc.in); got != tc.want {
			t.Errorf("IsQuestion(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
