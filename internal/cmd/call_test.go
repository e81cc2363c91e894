package cmd

import (
	"testing"
)

func TestNormalizeToolName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"coverage", "cq_coverage"},
		{"cq_coverage", "cq_coverage"},
		{"split", "cq_split"},
		{"cq_split", "cq_split"},
		{"message", "cq_message"},
		{"check", "cq_check"},
		{"nonexistent", "cq_nonexistent"},
	}

	for _, tt := range tests {
		got := normalizeToolName(tt.input)
		if got != tt.want {
			t.Errorf("normalizeToolName(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestCallCmdRequiresToolOrFlag(t *testing.T) {
	// runCall with no args and no flags should error
	err := runCall(callCmd, []string{})
	if err == nil {
		t.Error("runCall with no args should return error")
	}
}
