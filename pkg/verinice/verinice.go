package verinice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
)

func pluralFor(objectType string) (string, error) {
	plural, ok := objectTypePlurals[objectType]
	if !ok {
		return "", fmt.Errorf("verinice: unknown object type %q", objectType)
	}
	return plural, nil
}

// CreateObject creates one object inside a domain and unit.
func (c *Client) CreateObject(ctx context.Context, opt CreateObjectOptions) (CreateResult, error) {
	plural, err := pluralFor(opt.ObjectType)
	if err != nil {
		return CreateResult{}, err
	}

	body := map[string]any{
		"name":  opt.Name,
		"owner": map[string]any{"targetUri": "/units/" + opt.UnitID},
	}
	if opt.SubType != "" {
		body["subType"] = opt.SubType
		body["status"] = "NEW"
	}
	if opt.Description != "" {
		body["description"] = opt.Description
	}
	if opt.Abbreviation != "" {
		body["abbreviation"] = opt.Abbreviation
	}

	var res CreateResult
	if err := c.do(ctx, http.MethodPost, "/domains/"+opt.DomainID+"/"+plural, nil, body, &res); err != nil {
		return CreateResult{}, err
	}
	return res, nil
}

// ListObjects lists objects of one type. Scopes are special: without a
// domain they are listed at unit level, falling back to the first unit when
// none was given.
func (c *Client) ListObjects(ctx context.Context, opt ListOptions) ([]Object, error) {
	plural, err := pluralFor(opt.ObjectType)
	if err != nil {
		return nil, err
	}

	var path string
	switch {
	case opt.ObjectType == "scope" && opt.DomainID == "":
		unitID := opt.UnitID
		if unitID == "" {
			units, err := c.ListUnits(ctx)
			if err != nil {
				return nil, fmt.Errorf("no domain given and unit lookup failed: %w", err)
			}
			if len(units) == 0 {
				return nil, fmt.Errorf("no unit available to list scopes")
			}
			unitID = units[0].ID
		}
		path = "/units/" + unitID + "/scopes"
	case opt.DomainID != "":
		path = "/domains/" + opt.DomainID + "/" + plural
	default:
		return nil, fmt.Errorf("a domain ID is required to list %s", plural)
	}

	query := url.Values{}
	if opt.SubType != "" {
		query.Set("subType", opt.SubType)
	}
	if opt.Status != "" {
		query.Set("status", opt.Status)
	}

	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, path, query, nil, &raw); err != nil {
		return nil, err
	}
	return decodeObjectList(raw)
}

// decodeObjectList accepts the backend's three list shapes: a bare array, a
// paginated {items} envelope, and a Spring-style {content} envelope.
func decodeObjectList(raw json.RawMessage) ([]Object, error) {
	var list []Object
	if err := json.Unmarshal(raw, &list); err == nil {
		return list, nil
	}
	var env listEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("failed to decode object list: %w", err)
	}
	if env.Items != nil {
		return env.Items, nil
	}
	return env.Content, nil
}

// GetObject fetches one object by ID. The backend serves reads from a
// top-level per-type endpoint, not the domain-scoped one.
func (c *Client) GetObject(ctx context.Context, objectType, id string) (Object, error) {
	plural, err := pluralFor(objectType)
	if err != nil {
		return Object{}, err
	}

	var full map[string]any
	if err := c.do(ctx, http.MethodGet, "/"+plural+"/"+id, nil, nil, &full); err != nil {
		return Object{}, err
	}
	return objectFromMap(full), nil
}

// UpdateObject changes fields on an existing object. The domain-scoped PUT
// endpoint requires the complete object, so the current version is fetched
// first and the changed fields merged over it.
func (c *Client) UpdateObject(ctx context.Context, objectType, domainID, id string, fields map[string]any) (Object, error) {
	plural, err := pluralFor(objectType)
	if err != nil {
		return Object{}, err
	}

	var full map[string]any
	if err := c.do(ctx, http.MethodGet, "/"+plural+"/"+id, nil, nil, &full); err != nil {
		return Object{}, err
	}
	for k, v := range fields {
		full[k] = v
	}

	var updated map[string]any
	if err := c.do(ctx, http.MethodPut, "/domains/"+domainID+"/"+plural+"/"+id, nil, full, &updated); err != nil {
		return Object{}, err
	}
	if updated == nil {
		updated = full
	}
	return objectFromMap(updated), nil
}

// DeleteObject removes one object by ID.
func (c *Client) DeleteObject(ctx context.Context, objectType, id string) error {
	plural, err := pluralFor(objectType)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodDelete, "/"+plural+"/"+id, nil, nil, nil)
}

// GetSubTypes returns the valid subtypes for an object type in a domain, in
// deterministic order.
func (c *Client) GetSubTypes(ctx context.Context, domainID, objectType string) ([]string, error) {
	if _, err := pluralFor(objectType); err != nil {
		return nil, err
	}

	var domain Domain
	if err := c.do(ctx, http.MethodGet, "/domains/"+domainID, nil, nil, &domain); err != nil {
		return nil, err
	}

	def, ok := domain.ElementTypeDefinitions[objectType]
	if !ok {
		return nil, nil
	}
	subTypes := make([]string, 0, len(def.SubTypes))
	for name := range def.SubTypes {
		subTypes = append(subTypes, name)
	}
	sort.Strings(subTypes)
	return subTypes, nil
}

// ListDomains lists all domains visible to the account.
func (c *Client) ListDomains(ctx context.Context) ([]Domain, error) {
	var domains []Domain
	if err := c.do(ctx, http.MethodGet, "/domains", nil, nil, &domains); err != nil {
		return nil, err
	}
	return domains, nil
}

// ListUnits lists all units visible to the account.
func (c *Client) ListUnits(ctx context.Context) ([]Unit, error) {
	var units []Unit
	if err := c.do(ctx, http.MethodGet, "/units", nil, nil, &units); err != nil {
		return nil, err
	}
	return units, nil
}

// ListReports lists the reporting templates known to the backend.
func (c *Client) ListReports(ctx context.Context) ([]Report, error) {
	var reports []Report
	if err := c.do(ctx, http.MethodGet, "/reporting/reports", nil, nil, &reports); err != nil {
		return nil, err
	}
	return reports, nil
}

// GenerateReport renders a report and returns the binary artifact.
func (c *Client) GenerateReport(ctx context.Context, opt GenerateReportOptions) (ReportOutput, error) {
	if opt.OutputType == "" {
		opt.OutputType = OutputPDF
	}

	tok, err := c.token(ctx)
	if err != nil {
		return ReportOutput{}, err
	}

	payload, err := json.Marshal(map[string]any{
		"outputType": opt.OutputType,
		"targets":    opt.Targets,
	})
	if err != nil {
		return ReportOutput{}, fmt.Errorf("failed to marshal report request: %w", err)
	}

	path := "/reporting/reports/" + opt.ReportType
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return ReportOutput{}, fmt.Errorf("failed to build report request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+tok)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ReportOutput{}, fmt.Errorf("failed to call reporting API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return ReportOutput{}, &APIError{Method: http.MethodPost, Path: path, StatusCode: resp.StatusCode, Body: string(raw)}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return ReportOutput{}, fmt.Errorf("failed to read report body: %w", err)
	}
	return ReportOutput{ContentType: resp.Header.Get("Content-Type"), Data: data}, nil
}

func objectFromMap(m map[string]any) Object {
	obj := Object{Raw: m}
	if v, ok := m["id"].(string); ok {
		obj.ID = v
	}
	if v, ok := m["name"].(string); ok {
		obj.Name = v
	}
	if v, ok := m["abbreviation"].(string); ok {
		obj.Abbreviation = v
	}
	if v, ok := m["description"].(string); ok {
		obj.Description = v
	}
	if v, ok := m["subType"].(string); ok {
		obj.SubType = v
	}
	if v, ok := m["status"].(string); ok {
		obj.Status = v
	}
	return obj
}
