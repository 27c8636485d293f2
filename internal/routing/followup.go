package routing

import (
	"strconv"
	"strings"

	"isms-assistant/internal/model"
)

// FollowUpStateMachine owns the at-most-one pending follow-up per session.
// While a follow-up is pending it is consulted before every other classifier;
// a message meant as a follow-up answer must never be reinterpreted as a
// fresh command.
//
// Resolution does not clear the pending state: the handler that completes
// the original operation commits the clear only after its external call
// succeeds, so a timed-out create can be retried with the selection intact.
// A selection that cannot be resolved is the exception: it clears
// immediately so the user is not re-prompted forever.
type FollowUpStateMachine struct{}

// NewFollowUpStateMachine returns the state machine. All state lives in the
// session; the machine itself is stateless and shareable.
func NewFollowUpStateMachine() *FollowUpStateMachine {
	return &FollowUpStateMachine{}
}

// Pending returns the pending follow-up, if any.
func (m *FollowUpStateMachine) Pending(s *model.SessionState) (*model.PendingFollowUp, bool) {
	if s == nil || s.Pending == nil {
		return nil, false
	}
	return s.Pending, true
}

// Begin transitions Idle → AwaitingFollowUp. Opening a second follow-up
// while one is pending is an error, never a silent overwrite.
func (m *FollowUpStateMachine) Begin(s *model.SessionState, p model.PendingFollowUp) error {
	if s.Pending != nil {
		return ErrFollowUpPending
	}
	s.Pending = &p
	return nil
}

// Clear transitions AwaitingFollowUp → Idle.
func (m *FollowUpStateMachine) Clear(s *model.SessionState) {
	s.Pending = nil
}

// ResolveSubtype interprets message as an answer to a pending subtype
// selection: a numeric index into the offered list, or a fuzzy name match
// against it. On ErrAmbiguousSelection the pending state has been cleared.
func (m *FollowUpStateMachine) ResolveSubtype(s *model.SessionState, message string) (string, error) {
	pending, ok := m.Pending(s)
	if !ok || pending.Kind != model.FollowUpSubtypeSelection || pending.Subtype == nil {
		return "", ErrNoFollowUp
	}
	options := pending.Subtype.AvailableSubTypes

	answer := strings.TrimSpace(message)
	if idx, err := strconv.Atoi(answer); err == nil {
		if idx >= 1 && idx <= len(options) {
			return options[idx-1], nil
		}
		m.Clear(s)
		return "", ErrAmbiguousSelection
	}

	lower := strings.ToLower(answer)
	for _, opt := range options {
		if lower == strings.ToLower(opt) {
			return opt, nil
		}
	}
	for _, opt := range options {
		optLower := strings.ToLower(opt)
		if strings.Contains(optLower, lower) || strings.Contains(lower, optLower) {
			return opt, nil
		}
	}

	m.Clear(s)
	return "", ErrAmbiguousSelection
}

// ResolveReportScope interprets message as an answer to a pending report
// scope selection, by index or by name. On ErrAmbiguousSelection the pending
// state has been cleared.
func (m *FollowUpStateMachine) ResolveReportScope(s *model.SessionState, message string) (model.ScopeOption, error) {
	pending, ok := m.Pending(s)
	if !ok || pending.Kind != model.FollowUpReportScope || pending.ReportScope == nil {
		return model.ScopeOption{}, ErrNoFollowUp
	}
	scopes := pending.ReportScope.Scopes

	answer := strings.TrimSpace(message)
	if idx, err := strconv.Atoi(answer); err == nil {
		if idx >= 1 && idx <= len(scopes) {
			return scopes[idx-1], nil
		}
		m.Clear(s)
		return model.ScopeOption{}, ErrAmbiguousSelection
	}

	lower := strings.ToLower(answer)
	for _, scope := range scopes {
		name := strings.ToLower(scope.Name)
		if lower == name || strings.Contains(name, lower) || strings.Contains(lower, name) {
			return scope, nil
		}
	}

	m.Clear(s)
	return model.ScopeOption{}, ErrAmbiguousSelection
}
