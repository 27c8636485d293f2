package routing_test

import (
	"testing"

	"isms-assistant/internal/routing"
)

func TestSubtypeMatch(t *testing.T) {
	m := routing.NewSubtypeMatcher()
	catalog := []string{"AST_IT-System", "AST_Application", "AST_Datatype"}

	tests := []struct {
		name   string
		in     string
		want   string
		wantOK bool
	}{
		{name: "exact", in: "AST_Application", want: "AST_Application", wantOK: true},
		{name: "exact case-insensitive", in: "ast_application", want: "AST_Application", wantOK: true},
		{name: "prefix stripped", in: "it system", want: "AST_IT-System", wantOK: true},
		{name: "flattened", in: "itsystem", want: "AST_IT-System", wantOK: true},
		{name: "substring", in: "application", want: "AST_Application", wantOK: true},
		{name: "alias app", in: "app", want: "AST_Application", wantOK: true},
		{name: "alias server", in: "server", want: "AST_IT-System", wantOK: true},
		{name: "alias data type", in: "data type", want: "AST_Datatype", wantOK: true},
		{name: "no match", in: "quantum flux", wantOK: false},
		{name: "empty with many candidates", in: "", wantOK: false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := m.Match(tc.in, catalog)
			if ok != tc.wantOK {
				t.Fatalf("Match(%q) ok = %v, want %v", tc.in, ok, tc.wantOK)
			}
			if ok && got != tc.want {
				t.Errorf("Match(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestSubtypeMatchPersonCatalog(t *testing.T) {
	m := routing.NewSubtypeMatcher()
	catalog := []string{"PER_Person", "PER_DataProtectionOfficer"}

	got, ok := m.Match("dpo", catalog)
	if !ok || got != "PER_DataProtectionOfficer" {
		t.Errorf("Match(dpo) = %q ok=%v, want PER_DataProtectionOfficer", got, ok)
	}
	got, ok = m.Match("data protection officer", catalog)
	if !ok || got != "PER_DataProtectionOfficer" {
		t.Errorf("Match(data protection officer) = %q ok=%v", got, ok)
	}
	got, ok = m.Match("employee", catalog)
	if !ok || got != "PER_Person" {
		t.Errorf("Match(employee) = %q ok=%v, want PER_Person", got, ok)
	}
}

func TestSubtypeMatchSingleEntry(t *testing.T) {
	m := routing.NewSubtypeMatcher()
	catalog := []string{"SCP_Scope"}

	got, ok := m.Match("", catalog)
	if !ok || got != "SCP_Scope" {
		t.Errorf("lone catalog entry must auto-select on empty input, got %q ok=%v", got, ok)
	}
	got, ok = m.Match("anything at all", catalog)
	if !ok || got != "SCP_Scope" {
		t.Errorf("lone catalog entry must auto-select on mismatch, got %q ok=%v", got, ok)
	}
}

func TestSubtypeMatchEmptyCatalog(t *testing.T) {
	m := routing.NewSubtypeMatcher()
	if got, ok := m.Match("it system", nil); ok {
		t.Errorf("empty catalog must not match, got %q", got)
	}
}

func TestSubtypeInfer(t *testing.T) {
	m := routing.NewSubtypeMatcher()
	catalog := []string{"AST_IT-System", "AST_Application", "AST_Datatype"}

	tests := []struct {
		name        string
		objName     string
		abbr        string
		description string
		want        string
		wantOK      bool
	}{
		{name: "description word plural", objName: "CRM Records", description: "Customer datatypes", want: "AST_Datatype", wantOK: true},
		{name: "combined containment", objName: "Billing Application", want: "AST_Application", wantOK: true},
		{name: "alias in description", objName: "Server01", description: "Main production server", want: "AST_IT-System", wantOK: true},
		{name: "nothing inferable", objName: "Mystery", abbr: "MYS", description: "Unclassifiable thing", wantOK: false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := m.Infer(tc.objName, tc.abbr, tc.description, catalog)
			if ok != tc.wantOK {
				t.Fatalf("Infer ok = %v, want %v (got %q)", ok, tc.wantOK, got)
			}
			if ok && got != tc.want {
				t.Errorf("Infer = %q, want %q", got, tc.want)
			}
		})
	}
}
