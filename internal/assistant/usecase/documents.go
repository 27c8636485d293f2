package usecase

import (
	"context"
	"fmt"

	"isms-assistant/internal/assistant"
	"isms-assistant/internal/model"
)

// Document handlers delegate to the optional document gateway. Without
// one, the document routes answer with guidance instead of failing.

func (uc *implUseCase) handleDocumentAnalyze(ctx context.Context, s *model.SessionState, message string) (model.Envelope, error) {
	if uc.docs == nil {
		return model.Envelope{}, assistant.ErrNoDocument
	}
	answer, err := uc.docs.Analyze(ctx, s, message)
	if err != nil {
		return model.Envelope{}, fmt.Errorf("%w: analyze document: %v", assistant.ErrStoreUnavailable, err)
	}
	return model.SuccessEnvelope(answer), nil
}

func (uc *implUseCase) handleDocumentQuery(ctx context.Context, s *model.SessionState, message string) (model.Envelope, error) {
	if uc.docs == nil {
		return model.Envelope{}, assistant.ErrNoDocument
	}
	answer, err := uc.docs.Query(ctx, s, message)
	if err != nil {
		return model.Envelope{}, fmt.Errorf("%w: query document: %v", assistant.ErrStoreUnavailable, err)
	}
	return model.SuccessEnvelope(answer), nil
}

func (uc *implUseCase) handleBulkImport(ctx context.Context, s *model.SessionState, message string, option int) (model.Envelope, error) {
	if uc.docs == nil {
		return model.Envelope{}, assistant.ErrNoDocument
	}
	answer, err := uc.docs.BulkImport(ctx, s, message, option)
	if err != nil {
		return model.Envelope{}, fmt.Errorf("%w: bulk import: %v", assistant.ErrStoreUnavailable, err)
	}
	return model.SuccessEnvelope(answer), nil
}
