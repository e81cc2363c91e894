package conventional

import (
	"strings"
	"testing"
)

func TestCommitFormat(t *testing.T) {
	tests := []struct {
		name   string
		commit Commit
		want   string
	}{
		{
			name:   "minimal",
			commit: Commit{Type: TypeFix, Subject: "handle nil pointer"},
			want:   "fix: handle nil pointer",
		},
		{
			name:   "with scope",
			commit: Commit{Type: TypeFeat, Scope: "api", Subject: "add pagination"},
			want:   "feat(api): add pagination",
		},
		{
			name:   "breaking without description",
			commit: Commit{Type: TypeFeat, Scope: "api", Subject: "change response format", Breaking: true},
			want:   "feat(api)!: change response format",
		},
		{
			name: "with body",
			commit: Commit{
				Type:    TypeRefactor,
				Subject: "extract parser",
				Body:    "Move parsing into its own package.",
			},
			want: "refactor: extract parser\n\nMove parsing into its own package.",
		},
		{
			name: "breaking with description and footer",
			commit: Commit{
				Type:                TypeFeat,
				Subject:             "drop v1 endpoints",
				Breaking:            true,
				BreakingDescription: "v1 API removed",
				Footer:              "Fixes #42",
			},
			want: "feat!: drop v1 endpoints\n\nBREAKING CHANGE: v1 API removed\n\nFixes #42",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.commit.Format()
			if got != tt.want {
				t.Errorf("Format() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCommitValidate(t *testing.T) {
	tests := []struct {
		name       string
		commit     Commit
		wantValid  bool
		wantErrSub string
	}{
		{
			name:      "valid",
			commit:    Commit{Type: TypeFix, Scope: "auth", Subject: "handle expired tokens"},
			wantValid: true,
		},
		{
			name:       "subject too long",
			commit:     Commit{Type: TypeFeat, Subject: strings.Repeat("a", 51)},
			wantValid:  false,
			wantErrSub: "Subject line too long (51 chars)",
		},
		{
			name:       "subject starts uppercase",
			commit:     Commit{Type: TypeFix, Subject: "Handle tokens"},
			wantValid:  false,
			wantErrSub: "lowercase letter",
		},
		{
			name:       "subject ends with period",
			commit:     Commit{Type: TypeFix, Subject: "handle tokens."},
			wantValid:  false,
			wantErrSub: "period",
		},
		{
			name:       "body line too long",
			commit:     Commit{Type: TypeFix, Subject: "x", Body: "ok\n" + strings.Repeat("b", 73)},
			wantValid:  false,
			wantErrSub: "Body line 2 too long (73 chars)",
		},
		{
			name:       "bad scope",
			commit:     Commit{Type: TypeFix, Scope: "API", Subject: "x"},
			wantValid:  false,
			wantErrSub: "Scope should be lowercase",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			valid, errs := tt.commit.Validate()
			if valid != tt.wantValid {
				t.Fatalf("Validate() valid = %v, want %v (errors: %v)", valid, tt.wantValid, errs)
			}
			if tt.wantErrSub == "" {
				return
			}
			found := false
			for _, e := range errs {
				if strings.Contains(e, tt.wantErrSub) {
					found = true
				}
			}
			if !found {
				t.Errorf("expected an error containing %q, got %v", tt.wantErrSub, errs)
			}
		})
	}
}

func TestValidateCollectsAllErrors(t *testing.T) {
	c := Commit{Type: TypeFix, Scope: "Bad_Scope", Subject: "Too uppercase and ends."}
	valid, errs := c.Validate()
	if valid {
		t.Fatal("expected invalid commit")
	}
	if len(errs) != 3 {
		t.Errorf("expected 3 errors (uppercase, period, scope), got %d: %v", len(errs), errs)
	}
}

func TestParseCommitType(t *testing.T) {
	got, err := ParseCommitType("FEAT")
	if err != nil {
		t.Fatalf("ParseCommitType failed: %v", err)
	}
	if got != TypeFeat {
		t.Errorf("expected %q, got %q", TypeFeat, got)
	}

	if _, err := ParseCommitType("feature"); err == nil {
		t.Error("expected error for unknown type")
	}
}

func TestAllTypes(t *testing.T) {
	names := AllTypes()
	if len(names) != 11 {
		t.Fatalf("expected 11 types, got %d", len(names))
	}
	if names[0] != "feat" || names[10] != "revert" {
		t.Errorf("unexpected ordering: %v", names)
	}
	for _, name := range names {
		ct := CommitType(name)
		if !ct.Valid() {
			t.Errorf("type %q should be valid", name)
		}
		if ct.Description() == "" {
			t.Errorf("type %q has no description", name)
		}
		if ct.Color() == "" {
			t.Errorf("type %q has no color", name)
		}
	}
}
