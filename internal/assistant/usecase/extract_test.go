package usecase

import "testing"

func TestExtractCreateFields(t *testing.T) {
	tests := []struct {
		name       string
		message    string
		objectType string
		want       createFields
		ok         bool
	}{
		{
			name:       "positional",
			message:    "create asset Server01 SRV Main server",
			objectType: "asset",
			want:       createFields{Name: "Server01", Abbreviation: "SRV", Description: "Main server"},
			ok:         true,
		},
		{
			name:       "create typo",
			message:    "creat asset Server01 SRV Main server",
			objectType: "asset",
			want:       createFields{Name: "Server01", Abbreviation: "SRV", Description: "Main server"},
			ok:         true,
		},
		{
			name:       "quoted multi-word values",
			message:    `create scope "Production ISMS" "PRD" "All production systems"`,
			objectType: "scope",
			want:       createFields{Name: "Production ISMS", Abbreviation: "PRD", Description: "All production systems"},
			ok:         true,
		},
		{
			name:       "quoted name bare abbreviation",
			message:    `add person "Jane Doe" JD "Security officer"`,
			objectType: "person",
			want:       createFields{Name: "Jane Doe", Abbreviation: "JD", Description: "Security officer"},
			ok:         true,
		},
		{
			name:       "four quoted values include subtype",
			message:    `create asset "Payroll" "PAY" "Payroll system" "AST_Application"`,
			objectType: "asset",
			want:       createFields{Name: "Payroll", Abbreviation: "PAY", Description: "Payroll system", SubType: "AST_Application"},
			ok:         true,
		},
		{
			name:       "keyword fallback",
			message:    "create control called Access Review abbreviation AR description Quarterly access review",
			objectType: "control",
			want:       createFields{Name: "Access Review", Abbreviation: "AR", Description: "Quarterly access review"},
			ok:         true,
		},
		{
			name:       "underscores become spaces",
			message:    "create asset Backup_NAS NAS Offsite backup",
			objectType: "asset",
			want:       createFields{Name: "Backup NAS", Abbreviation: "NAS", Description: "Offsite backup"},
			ok:         true,
		},
		{
			name:       "no name",
			message:    "create asset",
			objectType: "asset",
			ok:         false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := extractCreateFields(tt.message, tt.objectType)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v (got %+v)", ok, tt.ok, got)
			}
			if ok && got != tt.want {
				t.Errorf("fields = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestExtractTarget(t *testing.T) {
	tests := []struct {
		name       string
		message    string
		objectType string
		want       string
		isUUID     bool
	}{
		{
			name:       "uuid wins",
			message:    "get asset 123e4567-e89b-42d3-a456-426614174000",
			objectType: "asset",
			want:       "123e4567-e89b-42d3-a456-426614174000",
			isUUID:     true,
		},
		{
			name:       "name after get verb",
			message:    "show scope Production ISMS",
			objectType: "scope",
			want:       "Production ISMS",
		},
		{
			name:       "update stops at field keyword",
			message:    "update asset Server01 description New rack location",
			objectType: "asset",
			want:       "Server01",
		},
		{
			name:       "delete keeps casing",
			message:    "delete person Jane Doe",
			objectType: "person",
			want:       "Jane Doe",
		},
		{
			name:       "no target",
			message:    "delete asset",
			objectType: "asset",
			want:       "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, isUUID := extractTarget(tt.message, tt.objectType)
			if got != tt.want || isUUID != tt.isUUID {
				t.Errorf("extractTarget() = (%q, %v), want (%q, %v)", got, isUUID, tt.want, tt.isUUID)
			}
		})
	}
}

func TestExtractUpdateArgs(t *testing.T) {
	got := extractUpdateArgs("update asset Server01 Server02 SRV2 Moved to new rack", "asset")
	want := map[string]any{"name": "Server02", "abbreviation": "SRV2", "description": "Moved to new rack"}
	if len(got) != len(want) {
		t.Fatalf("args = %v, want %v", got, want)
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("args[%q] = %v, want %v", k, got[k], v)
		}
	}

	if got := extractUpdateArgs("update asset Server01", "asset"); len(got) != 0 {
		t.Errorf("no new values should yield empty args, got %v", got)
	}
}

func TestExtractUpdateArgsFieldKeyword(t *testing.T) {
	tests := []struct {
		name       string
		message    string
		objectType string
		want       map[string]any
	}{
		{
			name:       "description",
			message:    "update asset Server01 description New rack location",
			objectType: "asset",
			want:       map[string]any{"description": "New rack location"},
		},
		{
			name:       "multi word value repeating the keyword",
			message:    "update scope BLUETEAM description New description",
			objectType: "scope",
			want:       map[string]any{"description": "New description"},
		},
		{
			name:       "status",
			message:    "set control Access-Review status active",
			objectType: "control",
			want:       map[string]any{"status": "active"},
		},
		{
			name:       "abbreviation shorthand",
			message:    "update asset Server01 abbr SRV2",
			objectType: "asset",
			want:       map[string]any{"abbreviation": "SRV2"},
		},
		{
			name:       "subtype uses the store key",
			message:    "update asset Server01 subtype AST_Application",
			objectType: "asset",
			want:       map[string]any{"subType": "AST_Application"},
		},
		{
			name:       "rename",
			message:    "update asset Server01 name Server02",
			objectType: "asset",
			want:       map[string]any{"name": "Server02"},
		},
		{
			name:       "dangling keyword yields no values",
			message:    "update asset Server01 description",
			objectType: "asset",
			want:       map[string]any{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractUpdateArgs(tt.message, tt.objectType)
			if len(got) != len(tt.want) {
				t.Fatalf("args = %v, want %v", got, tt.want)
			}
			for k, v := range tt.want {
				if got[k] != v {
					t.Errorf("args[%q] = %v, want %v", k, got[k], v)
				}
			}
		})
	}
}
