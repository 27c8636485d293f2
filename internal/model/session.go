package model

// Role identifies the author of a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// HistoryEntry is a single conversation turn.
type HistoryEntry struct {
	Role Role
	Text string
}

// FollowUpKind tags the pending follow-up variant.
type FollowUpKind string

const (
	FollowUpSubtypeSelection FollowUpKind = "subtype_selection"
	FollowUpReportScope      FollowUpKind = "report_scope_selection"
)

// SubtypeSelection is a pending object creation waiting for the user to pick
// a subtype from the domain catalog.
type SubtypeSelection struct {
	ObjectType        string
	Name              string
	Description       string
	Abbreviation      string
	DomainID          string
	UnitID            string
	AvailableSubTypes []string
}

// ScopeOption is one selectable scope in a report follow-up.
type ScopeOption struct {
	ID   string
	Name string
}

// ReportScopeSelection is a pending report generation waiting for the user to
// pick the target scope.
type ReportScopeSelection struct {
	ReportType string
	ReportName string
	DomainID   string
	Scopes     []ScopeOption
}

// PendingFollowUp is the tagged union of follow-up variants. Exactly one of
// Subtype/ReportScope is non-nil, matching Kind.
type PendingFollowUp struct {
	Kind        FollowUpKind
	Subtype     *SubtypeSelection
	ReportScope *ReportScopeSelection
}

// Defaults caches the resolved organizational containers for a session.
type Defaults struct {
	DomainID string
	UnitID   string
}

// SessionState is the per-conversation record. It is owned by exactly one
// session; the session manager serializes access so a state value is never
// mutated concurrently.
type SessionState struct {
	ID              string
	History         []HistoryEntry
	LastDocumentRef string
	Pending         *PendingFollowUp
	Defaults        Defaults
}

// AppendHistory records a turn, dropping the oldest entry beyond limit.
func (s *SessionState) AppendHistory(role Role, text string, limit int) {
	s.History = append(s.History, HistoryEntry{Role: role, Text: text})
	if limit > 0 && len(s.History) > limit {
		s.History = s.History[len(s.History)-limit:]
	}
}

// Clone deep-copies the state so a reader can work on a snapshot without
// observing later mutations of the original.
func (s *SessionState) Clone() *SessionState {
	if s == nil {
		return nil
	}
	cp := *s
	cp.History = append([]HistoryEntry(nil), s.History...)
	if s.Pending != nil {
		p := *s.Pending
		if s.Pending.Subtype != nil {
			sub := *s.Pending.Subtype
			sub.AvailableSubTypes = append([]string(nil), sub.AvailableSubTypes...)
			p.Subtype = &sub
		}
		if s.Pending.ReportScope != nil {
			rs := *s.Pending.ReportScope
			rs.Scopes = append([]ScopeOption(nil), rs.Scopes...)
			p.ReportScope = &rs
		}
		cp.Pending = &p
	}
	return &cp
}

// RecentHistory returns up to n most recent turns.
func (s *SessionState) RecentHistory(n int) []HistoryEntry {
	if n <= 0 || len(s.History) <= n {
		return s.History
	}
	return s.History[len(s.History)-n:]
}
