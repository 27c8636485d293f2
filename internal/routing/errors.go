package routing

import "errors"

// Errors surfaced by the routing core.
var (
	// ErrFollowUpPending means a handler tried to open a second follow-up
	// while one is already awaiting an answer. The first must be cleared
	// before another may be issued; silent overwrites are forbidden.
	ErrFollowUpPending = errors.New("a follow-up is already pending for this session")

	// ErrNoFollowUp means a follow-up resolution was attempted with no
	// follow-up pending.
	ErrNoFollowUp = errors.New("no follow-up is pending for this session")

	// ErrAmbiguousSelection means a follow-up answer matched none of the
	// offered options. The pending state is cleared and the options are
	// re-listed to the user.
	ErrAmbiguousSelection = errors.New("selection did not match any offered option")

	// ErrInvalidOperation means the dispatcher received an operation token
	// it does not know.
	ErrInvalidOperation = errors.New("unknown operation")
)
