package routing_test

import (
	"testing"

	"isms-assistant/internal/routing"
)

func TestNormalize(t *testing.T) {
	n := routing.NewNormalizer()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "lowercase and trim", in: "  List Scopes  ", want: "list scopes"},
		{name: "collapse whitespace", in: "list\t\tall   scopes", want: "list all scopes"},
		{name: "typo create", in: "creat asset Server01", want: "create asset server01"},
		{name: "typo list", in: "lsit assests", want: "list assets"},
		{name: "typo whole word only", in: "the asset was created", want: "the asset was created"},
		{name: "typo scop", in: "shwo me the scop", want: "show me the scope"},
		{name: "empty", in: "   ", want: ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := n.Normalize(tc.in)
			if got != tc.want {
				t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	n := routing.NewNormalizer()

	inputs := []string{
		"  Creat a new ASSEST  called   Server01 ",
		"lsit scops",
		"hello there",
		"udpate the persn record",
		"",
	}
	for _, in := range inputs {
		once := n.Normalize(in)
		twice := n.Normalize(once)
		if once != twice {
			t.Errorf("normalization not idempotent for %q: first %q, second %q", in, once, twice)
		}
	}
}
