package routing_test

import (
	"testing"

	"isms-assistant/internal/routing"
)

func TestObjectTypeResolve(t *testing.T) {
	r := routing.NewObjectTypeResolver()

	tests := []struct {
		name     string
		in       string
		want     string
		wantOK   bool
	}{
		{name: "singular", in: "create asset server01", want: "asset", wantOK: true},
		{name: "plural", in: "list assets", want: "asset", wantOK: true},
		{name: "plural processes keeps singular process", in: "list processes", want: "process", wantOK: true},
		{name: "people maps to person", in: "show all people", want: "person", wantOK: true},
		{name: "scope", in: "list scopes", want: "scope", wantOK: true},
		{name: "whole word only", in: "show the scoreboard", wantOK: false},
		{name: "no object type", in: "hello there", wantOK: false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := r.Resolve(tc.in)
			if ok != tc.wantOK {
				t.Fatalf("Resolve(%q) ok = %v, want %v", tc.in, ok, tc.wantOK)
			}
			if ok && got != tc.want {
				t.Errorf("Resolve(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

// Every surface form of a registered type must resolve to the same canonical
// token, including post-normalization typo variants.
func TestObjectTypeResolutionStability(t *testing.T) {
	n := routing.NewNormalizer()
	r := routing.NewObjectTypeResolver()

	variants := map[string][]string{
		"asset":   {"asset", "assets", "assest", "assests", "asets"},
		"scope":   {"scope", "scopes", "scop", "scops"},
		"person":  {"person", "persons", "people", "persn", "persns"},
		"process": {"process", "processes", "proces", "procesess"},
	}
	for want, forms := range variants {
		for _, form := range forms {
			got, ok := r.Resolve(n.Normalize("list " + form))
			if !ok {
				t.Errorf("form %q did not resolve", form)
				continue
			}
			if got != want {
				t.Errorf("form %q resolved to %q, want %q", form, got, want)
			}
		}
	}
}

func TestKnownTypes(t *testing.T) {
	r := routing.NewObjectTypeResolver()
	types := r.KnownTypes()
	want := []string{"scope", "asset", "person", "process", "control", "incident", "document", "scenario"}
	if len(types) != len(want) {
		t.Fatalf("KnownTypes() returned %d types, want %d", len(types), len(want))
	}
	for i, typ := range want {
		if types[i] != typ {
			t.Errorf("KnownTypes()[%d] = %q, want %q", i, types[i], typ)
		}
	}
}
