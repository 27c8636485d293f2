package usecase

import (
	"context"
	"errors"
	"fmt"

	"isms-assistant/internal/assistant"
	"isms-assistant/internal/model"
	"isms-assistant/internal/routing"
	"isms-assistant/pkg/verinice"
)

// handleReport starts a report generation: it lists the candidate
// scopes and opens a scope-selection follow-up. The report itself is
// generated when the user answers.
func (uc *implUseCase) handleReport(ctx context.Context, s *model.SessionState, reportType, reportName string) (model.Envelope, error) {
	if reportType == "" {
		reportType, reportName = "inventory-of-assets", "Inventory of Assets"
	}
	domainID, unitID, err := uc.resolveDefaults(ctx, s)
	if err != nil {
		return model.Envelope{}, err
	}
	if domainID == "" {
		return model.Envelope{}, assistant.ErrNoDomain
	}

	// The report catalog varies per deployment. An unknown template is
	// rejected here instead of after the scope-selection turn. A failed
	// catalog fetch skips the check; GenerateReport is the authority.
	if reports, rerr := uc.store.ListReports(ctx); rerr != nil {
		uc.l.Warnf(ctx, "%s.handleReport: listing report templates failed: %v", logPrefixChat, rerr)
	} else if len(reports) > 0 && !reportAvailable(reports, reportType) {
		names := make([]string, 0, len(reports))
		for _, r := range reports {
			names = append(names, r.Name)
		}
		return model.ErrorEnvelope(assistant.MsgUnknownReport(reportName, names)), nil
	}

	scopes, err := uc.store.ListObjects(ctx, verinice.ListOptions{ObjectType: "scope", DomainID: domainID, UnitID: unitID})
	if err != nil {
		return model.Envelope{}, fmt.Errorf("%w: list scopes: %v", assistant.ErrStoreUnavailable, err)
	}
	if len(scopes) == 0 {
		return model.Envelope{}, assistant.ErrNoScopes
	}

	options := make([]model.ScopeOption, 0, len(scopes))
	names := make([]string, 0, len(scopes))
	for _, sc := range scopes {
		options = append(options, model.ScopeOption{ID: sc.ID, Name: sc.Name})
		names = append(names, sc.Name)
	}
	pending := model.PendingFollowUp{
		Kind: model.FollowUpReportScope,
		ReportScope: &model.ReportScopeSelection{
			ReportType: reportType,
			ReportName: reportName,
			DomainID:   domainID,
			Scopes:     options,
		},
	}
	if err := uc.followUps.Begin(s, pending); err != nil {
		return model.Envelope{}, err
	}
	return model.SuccessEnvelope(assistant.MsgReportScopeSelection(reportName, names)), nil
}

// handleFollowUp completes the operation a pending follow-up belongs
// to. The pending state is cleared only after the external call
// succeeds, so a failed call can be retried with the same answer.
func (uc *implUseCase) handleFollowUp(ctx context.Context, s *model.SessionState, message string) (model.Envelope, error) {
	pending, ok := uc.followUps.Pending(s)
	if !ok {
		return model.Envelope{}, routing.ErrNoFollowUp
	}
	switch pending.Kind {
	case model.FollowUpSubtypeSelection:
		return uc.completePendingCreate(ctx, s, pending.Subtype, message)
	case model.FollowUpReportScope:
		return uc.completePendingReport(ctx, s, pending.ReportScope, message)
	default:
		return model.Envelope{}, fmt.Errorf("%w: follow-up kind %q", routing.ErrInvalidOperation, pending.Kind)
	}
}

func reportAvailable(reports []verinice.Report, reportType string) bool {
	for _, r := range reports {
		if r.ID == reportType {
			return true
		}
	}
	return false
}

func (uc *implUseCase) completePendingCreate(ctx context.Context, s *model.SessionState, sel *model.SubtypeSelection, message string) (model.Envelope, error) {
	subType, err := uc.followUps.ResolveSubtype(s, message)
	if err != nil {
		if errors.Is(err, routing.ErrAmbiguousSelection) {
			return model.ErrorEnvelope(assistant.MsgAmbiguousSelection(sel.AvailableSubTypes)), nil
		}
		return model.Envelope{}, err
	}
	fields := createFields{
		Name:         sel.Name,
		Abbreviation: sel.Abbreviation,
		Description:  sel.Description,
	}
	env, err := uc.createObject(ctx, sel.ObjectType, sel.DomainID, sel.UnitID, fields, subType)
	if err != nil {
		return model.Envelope{}, err
	}
	uc.followUps.Clear(s)
	return env, nil
}

func (uc *implUseCase) completePendingReport(ctx context.Context, s *model.SessionState, sel *model.ReportScopeSelection, message string) (model.Envelope, error) {
	scope, err := uc.followUps.ResolveReportScope(s, message)
	if err != nil {
		if errors.Is(err, routing.ErrAmbiguousSelection) {
			names := make([]string, 0, len(sel.Scopes))
			for _, sc := range sel.Scopes {
				names = append(names, sc.Name)
			}
			return model.ErrorEnvelope(assistant.MsgAmbiguousSelection(names)), nil
		}
		return model.Envelope{}, err
	}
	out, err := uc.store.GenerateReport(ctx, verinice.GenerateReportOptions{
		ReportType: sel.ReportType,
		OutputType: verinice.OutputPDF,
		Targets:    []verinice.ReportTarget{{Type: "scope", ID: scope.ID}},
	})
	if err != nil {
		return model.Envelope{}, fmt.Errorf("%w: generate report %s: %v", assistant.ErrStoreUnavailable, sel.ReportType, err)
	}
	uc.followUps.Clear(s)

	env := model.SuccessEnvelope(assistant.MsgReportGenerated(sel.ReportName, scope.Name, len(out.Data)))
	env.Payload = map[string]any{
		"report": map[string]any{
			"type":         sel.ReportType,
			"format":       "pdf",
			"content_type": out.ContentType,
			"size":         len(out.Data),
			"scope":        scope.Name,
		},
	}
	return env, nil
}
