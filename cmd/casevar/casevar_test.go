package casevar

import (
	"bytes"
	"strings"
	"testing"
)

func TestRun(t *testing.T) {
	tests := []struct {
		name     string
		params   *Params
		stdin    string
		expected string
	}{
		{"args", &Params{Words: []string{"abc"}}, "", "ABC\nAbc\nabc\n"},
		{"mixed case", &Params{Words: []string{"aBc"}}, "", "ABC\nAbc\naBc\nabc\n"},
		{"single char", &Params{Words: []string{"a"}}, "", "A\na\n"},
		{"stdin", &Params{}, "x\n\n7\n", "X\nx\n7\n"},
	}

	for _, tt := range tests {
		var stdout, stderr bytes.Buffer
		if exitCode := Run(tt.params, strings.NewReader(tt.stdin), &stdout, &stderr); exitCode != 0 {
			t.Errorf("%s: exit code = %d", tt.name, exitCode)
		}
		if stdout.String() != tt.expected {
			t.Errorf("%s: output = %q, want %q", tt.name, stdout.String(), tt.expected)
		}
	}
}
