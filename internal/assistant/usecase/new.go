package usecase

import (
	"isms-assistant/internal/assistant"
	"isms-assistant/internal/routing"
	"isms-assistant/internal/session"
	pkgLog "isms-assistant/pkg/log"
)

type implUseCase struct {
	l         pkgLog.Logger
	router    routing.Router
	followUps *routing.FollowUpStateMachine
	normalize *routing.Normalizer
	types     *routing.ObjectTypeResolver
	subtypes  *routing.SubtypeMatcher
	store     assistant.ObjectStore
	reasoner  assistant.Reasoner
	docs      assistant.DocumentGateway // optional, may be nil
	sessions  *session.Manager
}

var _ assistant.UseCase = (*implUseCase)(nil)

// New creates the assistant UseCase. docs may be nil; the document
// routes then answer with a guidance message.
func New(
	l pkgLog.Logger,
	router routing.Router,
	followUps *routing.FollowUpStateMachine,
	store assistant.ObjectStore,
	reasoner assistant.Reasoner,
	docs assistant.DocumentGateway,
	sessions *session.Manager,
) *implUseCase {
	return &implUseCase{
		l:         l,
		router:    router,
		followUps: followUps,
		normalize: routing.NewNormalizer(),
		types:     routing.NewObjectTypeResolver(),
		subtypes:  routing.NewSubtypeMatcher(),
		store:     store,
		reasoner:  reasoner,
		docs:      docs,
		sessions:  sessions,
	}
}
