package assistant

import "errors"

// Domain-specific errors for the assistant package. Handlers return
// these; the dispatcher translates them into calm user-facing messages,
// so raw error text never reaches the caller.
var (
	ErrMissingTarget    = errors.New("no object name or id found in message")
	ErrObjectNotFound   = errors.New("object not found")
	ErrNoDomain         = errors.New("no domain available")
	ErrNoScopes         = errors.New("no scopes available")
	ErrStoreUnavailable = errors.New("object store unavailable")
	ErrNoDocument       = errors.New("no document gateway configured")
)
