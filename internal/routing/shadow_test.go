package routing_test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"isms-assistant/internal/model"
	"isms-assistant/internal/routing"
)

type stubRouter struct {
	route routing.Route
	calls int
	seen  []*model.SessionState
}

func (r *stubRouter) Route(ctx context.Context, s *model.SessionState, message string, rc routing.Context) routing.Decision {
	r.calls++
	r.seen = append(r.seen, s)
	return routing.Decision{Route: r.route, Confidence: 0.9}
}

func TestComparatorAuthority(t *testing.T) {
	legacy := &stubRouter{route: routing.RouteChat}
	candidate := &stubRouter{route: routing.RouteKnowledge}
	s := &model.SessionState{ID: "s1"}

	t.Run("legacy authoritative", func(t *testing.T) {
		c := routing.NewComparator(&mockLogger{}, legacy, candidate, false, 10)
		d := c.Route(context.Background(), s, "some message", routing.Context{})
		if d.Route != routing.RouteChat {
			t.Errorf("decision = %s, want legacy's chat", d.Route)
		}
	})

	t.Run("candidate authoritative", func(t *testing.T) {
		c := routing.NewComparator(&mockLogger{}, legacy, candidate, true, 10)
		d := c.Route(context.Background(), s, "some message", routing.Context{})
		if d.Route != routing.RouteKnowledge {
			t.Errorf("decision = %s, want candidate's knowledge", d.Route)
		}
	})
}

// The non-authoritative side must see a snapshot, never the live session.
func TestComparatorShadowGetsSnapshot(t *testing.T) {
	legacy := &stubRouter{route: routing.RouteChat}
	candidate := &stubRouter{route: routing.RouteChat}
	c := routing.NewComparator(&mockLogger{}, legacy, candidate, false, 10)

	s := &model.SessionState{ID: "s1"}
	s.AppendHistory(model.RoleUser, "turn one", 10)
	c.Route(context.Background(), s, "some message", routing.Context{})

	if len(legacy.seen) != 1 || legacy.seen[0] != s {
		t.Error("authoritative side must receive the live session")
	}
	if len(candidate.seen) != 1 || candidate.seen[0] == s {
		t.Error("shadow side must receive a snapshot, not the live session")
	}
	if candidate.seen[0].ID != s.ID || len(candidate.seen[0].History) != 1 {
		t.Errorf("snapshot does not mirror the session: %+v", candidate.seen[0])
	}
}

// The intent classifier is an external port; one routed message must never
// reach it twice, but the shadow side may still classify when the
// authoritative side has no classifier of its own.
func TestComparatorShadowClassifierCalls(t *testing.T) {
	t.Run("both sides backed, second call suppressed", func(t *testing.T) {
		intents := &mockIntentClassifier{result: routing.IntentResult{Intent: "create_object", Confidence: 0.9}}
		legacy := newTestChain(intents)
		candidate := newTestChain(intents)
		c := routing.NewComparator(&mockLogger{}, legacy, candidate, false, 10)

		s := &model.SessionState{ID: "s1"}
		c.Route(context.Background(), s, "put server01 into the inventory", routing.Context{})

		if intents.calls != 1 {
			t.Errorf("external classifier called %d times for one message, want 1", intents.calls)
		}
	})

	t.Run("pattern-only authority, shadow candidate classifies", func(t *testing.T) {
		intents := &mockIntentClassifier{result: routing.IntentResult{Intent: "create_object", Confidence: 0.9}}
		legacy := newTestChain(nil)
		candidate := newTestChain(intents)
		c := routing.NewComparator(&mockLogger{}, legacy, candidate, false, 10)

		s := &model.SessionState{ID: "s1"}
		d := c.Route(context.Background(), s, "put server01 into the inventory", routing.Context{})

		if d.Route != routing.RouteChat {
			t.Errorf("authoritative decision = %s, want legacy's chat", d.Route)
		}
		if intents.calls != 1 {
			t.Errorf("shadow classifier called %d times, want 1", intents.calls)
		}
		entries := c.Entries()
		if len(entries) != 1 {
			t.Fatal("expected one comparison entry")
		}
		if entries[0].Legacy != routing.RouteChat || entries[0].Candidate != routing.RouteIntent {
			t.Errorf("comparison recorded legacy=%s candidate=%s, want chat vs intent", entries[0].Legacy, entries[0].Candidate)
		}
		if entries[0].Agreed {
			t.Error("differing routes recorded as agreement")
		}
	})
}

func TestComparatorLogBounded(t *testing.T) {
	legacy := &stubRouter{route: routing.RouteChat}
	candidate := &stubRouter{route: routing.RouteKnowledge}
	c := routing.NewComparator(&mockLogger{}, legacy, candidate, false, 5)

	s := &model.SessionState{ID: "s1"}
	for i := 0; i < 12; i++ {
		c.Route(context.Background(), s, fmt.Sprintf("message %d", i), routing.Context{})
	}

	entries := c.Entries()
	if len(entries) != 5 {
		t.Fatalf("retained %d entries, want 5", len(entries))
	}
	// Oldest retained entry is message 7, newest is message 11.
	if entries[0].Message != "message 7" || entries[4].Message != "message 11" {
		t.Errorf("entries out of order: first %q, last %q", entries[0].Message, entries[4].Message)
	}
	for _, e := range entries {
		if e.Agreed {
			t.Error("disagreeing routers recorded as agreement")
		}
	}
	if rate := c.AgreementRate(); rate != 0 {
		t.Errorf("agreement rate = %v, want 0", rate)
	}

	c.Clear()
	if len(c.Entries()) != 0 {
		t.Error("Clear left entries behind")
	}
}

func TestComparatorTruncatesMessages(t *testing.T) {
	legacy := &stubRouter{route: routing.RouteChat}
	candidate := &stubRouter{route: routing.RouteChat}
	c := routing.NewComparator(&mockLogger{}, legacy, candidate, false, 3)

	long := ""
	for i := 0; i < 30; i++ {
		long += "abcdefghij"
	}
	s := &model.SessionState{ID: "s1"}
	c.Route(context.Background(), s, long, routing.Context{})

	entries := c.Entries()
	if len(entries) != 1 {
		t.Fatal("expected one entry")
	}
	if len(entries[0].Message) >= len(long) {
		t.Errorf("message not truncated: %d bytes", len(entries[0].Message))
	}
	if rate := c.AgreementRate(); rate != 1 {
		t.Errorf("agreement rate = %v, want 1", rate)
	}
}

func TestComparatorTruncatesOnRuneBoundary(t *testing.T) {
	legacy := &stubRouter{route: routing.RouteChat}
	candidate := &stubRouter{route: routing.RouteChat}
	c := routing.NewComparator(&mockLogger{}, legacy, candidate, false, 3)

	long := strings.Repeat("ä", 200)
	s := &model.SessionState{ID: "s1"}
	c.Route(context.Background(), s, long, routing.Context{})

	entries := c.Entries()
	if len(entries) != 1 {
		t.Fatal("expected one entry")
	}
	if !utf8.ValidString(entries[0].Message) {
		t.Errorf("truncated message is not valid UTF-8: %q", entries[0].Message)
	}
	if len(entries[0].Message) >= len(long) {
		t.Errorf("message not truncated: %d bytes", len(entries[0].Message))
	}
}

type panickyRouter struct{}

func (panickyRouter) Route(ctx context.Context, s *model.SessionState, message string, rc routing.Context) routing.Decision {
	panic("shadow blew up")
}

func TestComparatorContainsShadowPanic(t *testing.T) {
	legacy := &stubRouter{route: routing.RouteChat}
	c := routing.NewComparator(&mockLogger{}, legacy, panickyRouter{}, false, 3)

	s := &model.SessionState{ID: "s1"}
	d := c.Route(context.Background(), s, "some message", routing.Context{})
	if d.Route != routing.RouteChat {
		t.Errorf("authoritative decision lost to shadow panic: %s", d.Route)
	}
}
