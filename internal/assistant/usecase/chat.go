package usecase

import (
	"context"
	"errors"

	"isms-assistant/internal/assistant"
	"isms-assistant/internal/model"
	"isms-assistant/internal/routing"
)

const logPrefixChat = "internal.assistant.usecase"

// Chat routes and executes one user message. The session lock is held
// for the whole call, so messages of one session are handled strictly
// in arrival order.
func (uc *implUseCase) Chat(ctx context.Context, input assistant.ChatInput) (assistant.ChatOutput, error) {
	sessionID := input.SessionID
	if sessionID == "" {
		sessionID = uc.sessions.NewSessionID()
	}
	s, release := uc.sessions.Acquire(sessionID)
	defer release()

	decision := uc.router.Route(ctx, s, input.Message, uc.documentContext(s))
	uc.l.Infof(ctx, "%s.Chat: session=%s route=%s confidence=%.2f", logPrefixChat, sessionID, decision.Route, decision.Confidence)

	env := uc.dispatch(ctx, s, input.Message, decision)

	limit := uc.sessions.HistoryLimit()
	s.AppendHistory(model.RoleUser, input.Message, limit)
	s.AppendHistory(model.RoleAssistant, env.Text, limit)

	return assistant.ChatOutput{SessionID: sessionID, Envelope: env}, nil
}

func (uc *implUseCase) documentContext(s *model.SessionState) routing.Context {
	if uc.docs == nil {
		return routing.Context{}
	}
	dc := uc.docs.Context(s)
	return routing.Context{
		HasActiveDocument: dc.HasActiveDocument,
		SpreadsheetCount:  dc.SpreadsheetCount,
		PendingFileAction: dc.PendingFileAction,
	}
}

// dispatch executes the routed handler. The switch is exhaustive over
// the route set; an unknown route is a dispatcher fault and surfaces as
// an invalid-operation error, never as silence.
func (uc *implUseCase) dispatch(ctx context.Context, s *model.SessionState, message string, d routing.Decision) model.Envelope {
	var (
		env model.Envelope
		err error
	)
	switch d.Route {
	case routing.RouteFollowUp:
		env, err = uc.handleFollowUp(ctx, s, message)
	case routing.RouteGreeting:
		if routing.IsThanks(message) {
			env = model.SuccessEnvelope(assistant.MsgThanks)
		} else {
			env = model.SuccessEnvelope(assistant.MsgGreeting)
		}
	case routing.RouteObjectOperation:
		objectType, _ := d.Payload[routing.PayloadObjectType].(string)
		op, _ := d.Payload[routing.PayloadOperation].(string)
		env, err = uc.handleObjectOperation(ctx, s, objectType, routing.Operation(op), message)
	case routing.RouteReport:
		reportType, _ := d.Payload[routing.PayloadReportType].(string)
		reportName, _ := d.Payload[routing.PayloadReportName].(string)
		env, err = uc.handleReport(ctx, s, reportType, reportName)
	case routing.RouteIntent:
		intent, _ := d.Payload[routing.PayloadIntent].(string)
		env, err = uc.handleIntent(ctx, s, intent, message)
	case routing.RouteDocumentAnalyze:
		env, err = uc.handleDocumentAnalyze(ctx, s, message)
	case routing.RouteDocumentQuery:
		env, err = uc.handleDocumentQuery(ctx, s, message)
	case routing.RouteBulkImport:
		option, _ := d.Payload[routing.PayloadOption].(int)
		env, err = uc.handleBulkImport(ctx, s, message, option)
	case routing.RouteKnowledge:
		env = uc.handleKnowledge(ctx, s, message)
	case routing.RouteChat:
		env = uc.handleChat(ctx, s, message)
	case routing.RouteFallback:
		env = model.SuccessEnvelope(assistant.MsgFallback)
	default:
		err = routing.ErrInvalidOperation
	}
	if err != nil {
		env = uc.envelopeForError(ctx, err)
	}
	if env.Text == "" {
		env = model.SuccessEnvelope(assistant.MsgFallback)
	}
	return env
}

// envelopeForError maps handler errors to calm user-facing envelopes.
// Technical detail goes to the log, never to the user.
func (uc *implUseCase) envelopeForError(ctx context.Context, err error) model.Envelope {
	switch {
	case errors.Is(err, routing.ErrFollowUpPending):
		return model.ErrorEnvelope(assistant.MsgFollowUpPending())
	case errors.Is(err, routing.ErrNoFollowUp):
		return model.ErrorEnvelope(assistant.MsgFallback)
	case errors.Is(err, assistant.ErrNoDomain):
		return model.ErrorEnvelope(assistant.MsgNoDomain)
	case errors.Is(err, assistant.ErrNoScopes):
		return model.ErrorEnvelope(assistant.MsgNoScopes)
	case errors.Is(err, assistant.ErrNoDocument):
		return model.ErrorEnvelope(assistant.MsgNoDocument)
	case errors.Is(err, assistant.ErrStoreUnavailable):
		uc.l.Errorf(ctx, "%s: object store failure: %v", logPrefixChat, err)
		return model.ErrorEnvelope(assistant.MsgStoreUnavailable)
	case errors.Is(err, routing.ErrInvalidOperation):
		uc.l.Errorf(ctx, "%s: dispatcher fault: %v", logPrefixChat, err)
		return model.ErrorEnvelope(assistant.MsgFallback)
	default:
		uc.l.Errorf(ctx, "%s: unexpected handler error: %v", logPrefixChat, err)
		return model.ErrorEnvelope(assistant.MsgStoreUnavailable)
	}
}

// handleIntent translates a semantic classification into the matching
// structured handler. It shares the object handlers with the pattern
// path so both routes behave identically.
func (uc *implUseCase) handleIntent(ctx context.Context, s *model.SessionState, intent, message string) (model.Envelope, error) {
	var op routing.Operation
	switch intent {
	case "create_object":
		op = routing.OperationCreate
	case "list_objects":
		op = routing.OperationList
	case "get_object":
		op = routing.OperationGet
	case "update_object":
		op = routing.OperationUpdate
	case "delete_object":
		op = routing.OperationDelete
	case "analyze_document":
		return uc.handleDocumentAnalyze(ctx, s, message)
	case "query_document":
		return uc.handleDocumentQuery(ctx, s, message)
	case "bulk_import":
		return uc.handleBulkImport(ctx, s, message, 0)
	default:
		return uc.handleChat(ctx, s, message), nil
	}
	objectType, ok := uc.types.Resolve(uc.normalize.Normalize(message))
	if !ok {
		return model.ErrorEnvelope(assistant.MsgFallback), nil
	}
	return uc.handleObjectOperation(ctx, s, objectType, op, message)
}
