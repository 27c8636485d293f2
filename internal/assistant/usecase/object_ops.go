package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"isms-assistant/internal/assistant"
	"isms-assistant/internal/model"
	"isms-assistant/internal/routing"
	"isms-assistant/pkg/verinice"
)

// handleObjectOperation dispatches one classified object operation. The
// switch covers every operation token; an unknown token is a dispatcher
// fault, not a user error.
func (uc *implUseCase) handleObjectOperation(ctx context.Context, s *model.SessionState, objectType string, op routing.Operation, message string) (model.Envelope, error) {
	switch op {
	case routing.OperationCreate:
		return uc.handleCreate(ctx, s, objectType, message)
	case routing.OperationList:
		return uc.handleList(ctx, s, objectType)
	case routing.OperationGet:
		return uc.handleGet(ctx, s, objectType, message)
	case routing.OperationUpdate:
		return uc.handleUpdate(ctx, s, objectType, message)
	case routing.OperationDelete:
		return uc.handleDelete(ctx, s, objectType, message)
	case routing.OperationAnalyze:
		return uc.handleAnalyze(ctx, s, objectType, message)
	case routing.OperationGenerateReport:
		return uc.handleReport(ctx, s, "", "")
	default:
		return model.Envelope{}, fmt.Errorf("%w: %q", routing.ErrInvalidOperation, op)
	}
}

// resolveDefaults finds the session's domain and unit: first unit's
// first domain, falling back to the first domain overall. The result is
// cached on the session once a domain is known.
func (uc *implUseCase) resolveDefaults(ctx context.Context, s *model.SessionState) (string, string, error) {
	if s.Defaults.DomainID != "" {
		return s.Defaults.DomainID, s.Defaults.UnitID, nil
	}
	var domainID, unitID string
	units, err := uc.store.ListUnits(ctx)
	if err != nil {
		uc.l.Warnf(ctx, "%s.resolveDefaults: listing units failed: %v", logPrefixChat, err)
	} else if len(units) > 0 {
		unitID = units[0].ID
		if len(units[0].Domains) > 0 {
			domainID = units[0].Domains[0].ID
		}
	}
	if domainID == "" {
		domains, derr := uc.store.ListDomains(ctx)
		if derr != nil {
			if err != nil {
				return "", "", fmt.Errorf("%w: %v", assistant.ErrStoreUnavailable, derr)
			}
		} else if len(domains) > 0 {
			domainID = domains[0].ID
		}
	}
	if domainID != "" {
		s.Defaults = model.Defaults{DomainID: domainID, UnitID: unitID}
	}
	return domainID, unitID, nil
}

func (uc *implUseCase) handleCreate(ctx context.Context, s *model.SessionState, objectType, message string) (model.Envelope, error) {
	fields, ok := extractCreateFields(message, objectType)
	if !ok {
		return model.ErrorEnvelope(assistant.MsgMissingName(objectType)), nil
	}
	domainID, unitID, err := uc.resolveDefaults(ctx, s)
	if err != nil {
		return model.Envelope{}, err
	}
	if domainID == "" {
		return model.Envelope{}, assistant.ErrNoDomain
	}

	catalog, err := uc.store.GetSubTypes(ctx, domainID, objectType)
	if err != nil {
		// A missing catalog degrades to a subtype-less create.
		uc.l.Warnf(ctx, "%s.handleCreate: subtype catalog unavailable: %v", logPrefixChat, err)
		catalog = nil
	}

	subType := fields.SubType
	if subType != "" && len(catalog) > 0 {
		matched, ok := uc.subtypes.Match(subType, catalog)
		if !ok {
			return model.ErrorEnvelope(assistant.MsgInvalidSubType(subType, catalog)), nil
		}
		subType = matched
	}
	if subType == "" && len(catalog) > 0 {
		if len(catalog) == 1 {
			subType = catalog[0]
		} else if inferred, ok := uc.subtypes.Infer(fields.Name, fields.Abbreviation, fields.Description, catalog); ok {
			subType = inferred
		} else {
			pending := model.PendingFollowUp{
				Kind: model.FollowUpSubtypeSelection,
				Subtype: &model.SubtypeSelection{
					ObjectType:        objectType,
					Name:              fields.Name,
					Description:       fields.Description,
					Abbreviation:      fields.Abbreviation,
					DomainID:          domainID,
					UnitID:            unitID,
					AvailableSubTypes: catalog,
				},
			}
			if err := uc.followUps.Begin(s, pending); err != nil {
				return model.Envelope{}, err
			}
			return model.SuccessEnvelope(assistant.MsgSubtypeSelection(objectType, fields.Name, catalog)), nil
		}
	}

	return uc.createObject(ctx, objectType, domainID, unitID, fields, subType)
}

func (uc *implUseCase) createObject(ctx context.Context, objectType, domainID, unitID string, fields createFields, subType string) (model.Envelope, error) {
	res, err := uc.store.CreateObject(ctx, verinice.CreateObjectOptions{
		ObjectType:   objectType,
		DomainID:     domainID,
		UnitID:       unitID,
		Name:         fields.Name,
		SubType:      subType,
		Description:  fields.Description,
		Abbreviation: fields.Abbreviation,
	})
	if err != nil {
		return model.Envelope{}, fmt.Errorf("%w: create %s: %v", assistant.ErrStoreUnavailable, objectType, err)
	}
	env := model.SuccessEnvelope(assistant.MsgCreated(objectType, fields.Name, fields.Abbreviation, subType))
	if res.ResourceID != "" {
		env.Payload = map[string]any{"id": res.ResourceID}
	}
	return env, nil
}

func (uc *implUseCase) handleList(ctx context.Context, s *model.SessionState, objectType string) (model.Envelope, error) {
	domainID, unitID, err := uc.resolveDefaults(ctx, s)
	// Scope listing is domain optional: the store falls back to unit
	// level when no domain is known.
	if objectType != "scope" {
		if err != nil {
			return model.Envelope{}, err
		}
		if domainID == "" {
			return model.Envelope{}, assistant.ErrNoDomain
		}
	}
	objects, err := uc.store.ListObjects(ctx, verinice.ListOptions{
		ObjectType: objectType,
		DomainID:   domainID,
		UnitID:     unitID,
	})
	if err != nil {
		return model.Envelope{}, fmt.Errorf("%w: list %ss: %v", assistant.ErrStoreUnavailable, objectType, err)
	}
	if len(objects) == 0 {
		return model.SuccessEnvelope(assistant.MsgEmptyList(objectType)), nil
	}
	env := model.SuccessEnvelope(formatObjectList(objectType, objects))
	env.Payload = map[string]any{"count": len(objects)}
	return env, nil
}

func (uc *implUseCase) handleGet(ctx context.Context, s *model.SessionState, objectType, message string) (model.Envelope, error) {
	domainID, _, err := uc.resolveDefaults(ctx, s)
	if err != nil {
		return model.Envelope{}, err
	}
	id, _, err := uc.resolveToID(ctx, objectType, message, domainID)
	if err != nil {
		return targetErrorEnvelope(objectType, err)
	}
	obj, err := uc.store.GetObject(ctx, objectType, id)
	if err != nil {
		return model.Envelope{}, fmt.Errorf("%w: get %s: %v", assistant.ErrStoreUnavailable, objectType, err)
	}
	env := model.SuccessEnvelope(formatObject(objectType, obj))
	env.Payload = map[string]any{"id": obj.ID}
	return env, nil
}

func (uc *implUseCase) handleUpdate(ctx context.Context, s *model.SessionState, objectType, message string) (model.Envelope, error) {
	domainID, _, err := uc.resolveDefaults(ctx, s)
	if err != nil {
		return model.Envelope{}, err
	}
	if domainID == "" {
		return model.Envelope{}, assistant.ErrNoDomain
	}
	id, currentName, err := uc.resolveToID(ctx, objectType, message, domainID)
	if err != nil {
		return targetErrorEnvelope(objectType, err)
	}
	fields := extractUpdateArgs(message, objectType)
	if len(fields) == 0 {
		return model.ErrorEnvelope(assistant.MsgNothingToUpdate(objectType, currentName)), nil
	}
	if _, err := uc.store.UpdateObject(ctx, objectType, domainID, id, fields); err != nil {
		return model.Envelope{}, fmt.Errorf("%w: update %s: %v", assistant.ErrStoreUnavailable, objectType, err)
	}
	names := make([]string, 0, len(fields))
	for k := range fields {
		names = append(names, k)
	}
	sort.Strings(names)
	return model.SuccessEnvelope(assistant.MsgUpdated(objectType, currentName, names)), nil
}

func (uc *implUseCase) handleDelete(ctx context.Context, s *model.SessionState, objectType, message string) (model.Envelope, error) {
	domainID, _, err := uc.resolveDefaults(ctx, s)
	if err != nil {
		return model.Envelope{}, err
	}
	id, name, err := uc.resolveToID(ctx, objectType, message, domainID)
	if err != nil {
		return targetErrorEnvelope(objectType, err)
	}
	if err := uc.store.DeleteObject(ctx, objectType, id); err != nil {
		return model.Envelope{}, fmt.Errorf("%w: delete %s: %v", assistant.ErrStoreUnavailable, objectType, err)
	}
	return model.SuccessEnvelope(assistant.MsgDeleted(objectType, name)), nil
}

func (uc *implUseCase) handleAnalyze(ctx context.Context, s *model.SessionState, objectType, message string) (model.Envelope, error) {
	domainID, _, err := uc.resolveDefaults(ctx, s)
	if err != nil {
		return model.Envelope{}, err
	}
	id, _, err := uc.resolveToID(ctx, objectType, message, domainID)
	if err != nil {
		return targetErrorEnvelope(objectType, err)
	}
	obj, err := uc.store.GetObject(ctx, objectType, id)
	if err != nil {
		return model.Envelope{}, fmt.Errorf("%w: get %s: %v", assistant.ErrStoreUnavailable, objectType, err)
	}
	facts := formatObject(objectType, obj)
	if uc.reasoner == nil || !uc.reasoner.Available() {
		return model.SuccessEnvelope(facts), nil
	}
	answer, err := uc.reasoner.Reason(ctx,
		fmt.Sprintf("Assess this ISMS %s from an information security perspective. Point out missing details and risks.", objectType),
		facts)
	if err != nil {
		// Analysis is an enhancement; the raw facts are still an answer.
		uc.l.Warnf(ctx, "%s.handleAnalyze: reasoner failed: %v", logPrefixChat, err)
		return model.SuccessEnvelope(facts), nil
	}
	return model.SuccessEnvelope(answer), nil
}

// resolveToID turns the message's target reference into an object ID: a
// literal UUID wins, otherwise the name is searched in the default
// domain first and then in every other domain.
func (uc *implUseCase) resolveToID(ctx context.Context, objectType, message, domainID string) (string, string, error) {
	target, isUUID := extractTarget(message, objectType)
	if target == "" {
		return "", "", assistant.ErrMissingTarget
	}
	if isUUID {
		return target, target, nil
	}
	if domainID != "" {
		if id, name, ok := uc.findByName(ctx, objectType, domainID, target); ok {
			return id, name, nil
		}
	}
	domains, err := uc.store.ListDomains(ctx)
	if err == nil {
		for _, d := range domains {
			if d.ID == domainID {
				continue
			}
			if id, name, ok := uc.findByName(ctx, objectType, d.ID, target); ok {
				return id, name, nil
			}
		}
	}
	return "", "", fmt.Errorf("%w: %s %q", assistant.ErrObjectNotFound, objectType, target)
}

// findByName searches one domain, exact name match before substring.
func (uc *implUseCase) findByName(ctx context.Context, objectType, domainID, name string) (string, string, bool) {
	objects, err := uc.store.ListObjects(ctx, verinice.ListOptions{ObjectType: objectType, DomainID: domainID})
	if err != nil {
		uc.l.Warnf(ctx, "%s.findByName: list %ss in %s failed: %v", logPrefixChat, objectType, domainID, err)
		return "", "", false
	}
	lower := strings.ToLower(name)
	for _, o := range objects {
		if strings.ToLower(o.Name) == lower {
			return o.ID, o.Name, true
		}
	}
	for _, o := range objects {
		on := strings.ToLower(o.Name)
		if on == "" {
			continue
		}
		if strings.Contains(on, lower) || strings.Contains(lower, on) {
			return o.ID, o.Name, true
		}
	}
	return "", "", false
}

// targetErrorEnvelope turns target-resolution errors into guidance
// messages; anything else stays an error for the dispatcher.
func targetErrorEnvelope(objectType string, err error) (model.Envelope, error) {
	switch {
	case errors.Is(err, assistant.ErrMissingTarget):
		return model.ErrorEnvelope(assistant.MsgMissingTarget(objectType)), nil
	case errors.Is(err, assistant.ErrObjectNotFound):
		return model.ErrorEnvelope(assistant.MsgObjectNotFound(objectType)), nil
	default:
		return model.Envelope{}, err
	}
}

func formatObjectList(objectType string, objects []verinice.Object) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d %s(s):\n\n", len(objects), objectType)
	for i, o := range objects {
		fmt.Fprintf(&b, "%d. %s", i+1, o.Name)
		if o.Abbreviation != "" {
			fmt.Fprintf(&b, " (%s)", o.Abbreviation)
		}
		if o.Description != "" {
			fmt.Fprintf(&b, " - %s", o.Description)
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatObject(objectType string, o verinice.Object) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %q\n", strings.ToUpper(objectType[:1])+objectType[1:], o.Name)
	if o.Abbreviation != "" {
		fmt.Fprintf(&b, "- Abbreviation: %s\n", o.Abbreviation)
	}
	if o.Description != "" {
		fmt.Fprintf(&b, "- Description: %s\n", o.Description)
	}
	if o.SubType != "" {
		fmt.Fprintf(&b, "- Subtype: %s\n", o.SubType)
	}
	if o.Status != "" {
		fmt.Fprintf(&b, "- Status: %s\n", o.Status)
	}
	fmt.Fprintf(&b, "- ID: %s", o.ID)
	return b.String()
}
