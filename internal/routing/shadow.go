package routing

import (
	"context"
	"sync"
	"time"
	"unicode/utf8"

	"isms-assistant/internal/model"
	"isms-assistant/pkg/log"
)

// Router is the routing surface the comparator wraps. Chain satisfies it.
type Router interface {
	Route(ctx context.Context, s *model.SessionState, message string, rc Context) Decision
}

var _ Router = (*Chain)(nil)

const comparisonMessageLimit = 80

// ComparisonEntry records one legacy-versus-candidate routing comparison.
// Message is truncated so the log never retains full user input.
type ComparisonEntry struct {
	Time       time.Time `json:"time"`
	Message    string    `json:"message"`
	Legacy     Route     `json:"legacy"`
	Candidate  Route     `json:"candidate"`
	Agreed     bool      `json:"agreed"`
	Authority  Route     `json:"authority"`
	Confidence float64   `json:"confidence"`
}

// Comparator routes every message through both a legacy and a candidate
// router and records whether they agree. Only the authoritative side's
// decision is returned; the shadow side runs against a deep-copied state
// snapshot so it can never influence the session, and its panics are
// contained.
type Comparator struct {
	l         log.Logger
	legacy    Router
	candidate Router

	// candidateAuthoritative selects which side's decision callers see.
	candidateAuthoritative bool

	mu      sync.Mutex
	entries []ComparisonEntry
	next    int
	full    bool
	total   int
	agreed  int
}

var _ Router = (*Comparator)(nil)

// NewComparator wires both routers. capacity <= 0 selects the default bound.
func NewComparator(l log.Logger, legacy, candidate Router, candidateAuthoritative bool, capacity int) *Comparator {
	if capacity <= 0 {
		capacity = DefaultComparisonLogCapacity
	}
	return &Comparator{
		l:                      l,
		legacy:                 legacy,
		candidate:              candidate,
		candidateAuthoritative: candidateAuthoritative,
		entries:                make([]ComparisonEntry, capacity),
	}
}

// Route runs both sides and returns the authoritative decision. The shadow
// side sees a snapshot of s, never s itself, and keeps its classifier step
// only when the authoritative side has none, so one message never costs two
// classifier calls.
func (c *Comparator) Route(ctx context.Context, s *model.SessionState, message string, rc Context) Decision {
	shadowRC := rc

	var authoritative, shadow Decision
	if c.candidateAuthoritative {
		shadowRC.SkipIntent = routerClassifies(c.candidate)
		authoritative = c.candidate.Route(ctx, s, message, rc)
		shadow = c.safeRoute(ctx, c.legacy, s.Clone(), message, shadowRC)
		c.record(ctx, message, shadow.Route, authoritative.Route, authoritative)
	} else {
		shadowRC.SkipIntent = routerClassifies(c.legacy)
		authoritative = c.legacy.Route(ctx, s, message, rc)
		shadow = c.safeRoute(ctx, c.candidate, s.Clone(), message, shadowRC)
		c.record(ctx, message, authoritative.Route, shadow.Route, authoritative)
	}
	return authoritative
}

// routerClassifies reports whether a router may call the external intent
// classifier. Routers that do not say are assumed to classify, which keeps
// the shadow side suppressed when in doubt.
func routerClassifies(r Router) bool {
	if cb, ok := r.(interface{ ClassifierBacked() bool }); ok {
		return cb.ClassifierBacked()
	}
	return true
}

// safeRoute contains shadow-side panics; a broken shadow router must not
// take the request down with it.
func (c *Comparator) safeRoute(ctx context.Context, r Router, s *model.SessionState, message string, rc Context) (d Decision) {
	defer func() {
		if rec := recover(); rec != nil {
			c.l.Errorf(ctx, "%s.safeRoute: shadow router panicked: %v", LogPrefixComparator, rec)
			d = Decision{Route: RouteFallback}
		}
	}()
	return r.Route(ctx, s, message, rc)
}

func (c *Comparator) record(ctx context.Context, message string, legacy, candidate Route, authoritative Decision) {
	truncated := message
	if len(truncated) > comparisonMessageLimit {
		// Back up to a rune boundary so the JSON log stays valid UTF-8.
		cut := comparisonMessageLimit
		for cut > 0 && !utf8.RuneStart(truncated[cut]) {
			cut--
		}
		truncated = truncated[:cut]
	}
	entry := ComparisonEntry{
		Time:       time.Now(),
		Message:    truncated,
		Legacy:     legacy,
		Candidate:  candidate,
		Agreed:     legacy == candidate,
		Authority:  authoritative.Route,
		Confidence: authoritative.Confidence,
	}

	c.mu.Lock()
	c.entries[c.next] = entry
	c.next = (c.next + 1) % len(c.entries)
	if c.next == 0 {
		c.full = true
	}
	c.total++
	if entry.Agreed {
		c.agreed++
	}
	c.mu.Unlock()

	if !entry.Agreed {
		c.l.Infof(ctx, "%s.record: disagreement legacy=%s candidate=%s msg=%q", LogPrefixComparator, legacy, candidate, truncated)
	}
}

// Entries returns the recorded comparisons, oldest first.
func (c *Comparator) Entries() []ComparisonEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.full {
		return append([]ComparisonEntry(nil), c.entries[:c.next]...)
	}
	out := make([]ComparisonEntry, 0, len(c.entries))
	out = append(out, c.entries[c.next:]...)
	out = append(out, c.entries[:c.next]...)
	return out
}

// AgreementRate reports the fraction of all comparisons, not just retained
// ones, where both sides chose the same route. It is 1 when nothing has been
// compared yet.
func (c *Comparator) AgreementRate() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.total == 0 {
		return 1
	}
	return float64(c.agreed) / float64(c.total)
}

// Clear drops the retained entries and counters.
func (c *Comparator) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.entries {
		c.entries[i] = ComparisonEntry{}
	}
	c.next, c.full, c.total, c.agreed = 0, false, 0, 0
}
