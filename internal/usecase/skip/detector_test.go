package skip_test

import (
	"testing"

	"github.com/bkyoung/argus/internal/usecase/skip"
)

func TestContainsSkipTrigger(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected bool
	}{
		{
			name:     "bracket format with space",
			text:     "[skip review]",
			expected: true,
		},
		{
			name:     "bracket format with hyphen",
			text:     "chore: bump deps [skip-review]",
			expected: true,
		},
		{
			name:     "trigger at beginning",
			text:     "[skip review] WIP: initial commit",
			expected: true,
		},
		{
			name:     "uppercase",
			text:     "[SKIP REVIEW]",
			expected: true,
		},
		{
			name:     "mixed case hyphen",
			text:     "[Skip-Review]",
			expected: true,
		},
		{
			name:     "multiline description",
			text:     "Updates docs.\n\n[skip review]\n\nNo code changes.",
			expected: true,
		},
		{
			name:     "no trigger",
			text:     "fix: handle empty diff",
			expected: false,
		},
		{
			name:     "words without brackets",
			text:     "please skip review of the generated files",
			expected: false,
		},
		{
			name:     "empty text",
			text:     "",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := skip.ContainsSkipTrigger(tt.text); got != tt.expected {
				t.Errorf("ContainsSkipTrigger(%q) = %v, want %v", tt.text, got, tt.expected)
			}
		})
	}
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name       string
		req        skip.CheckRequest
		wantSkip   bool
		wantReason string
	}{
		{
			name:       "trigger in title",
			req:        skip.CheckRequest{PRTitle: "docs: typo fixes [skip review]"},
			wantSkip:   true,
			wantReason: "PR title",
		},
		{
			name:       "trigger in description",
			req:        skip.CheckRequest{PRTitle: "docs: typo fixes", PRDescription: "[skip-review] trivial"},
			wantSkip:   true,
			wantReason: "PR description",
		},
		{
			name:       "title wins over description",
			req:        skip.CheckRequest{PRTitle: "[skip review]", PRDescription: "[skip review]"},
			wantSkip:   true,
			wantReason: "PR title",
		},
		{
			name: "no trigger",
			req:  skip.CheckRequest{PRTitle: "feat: add cache", PRDescription: "adds an LRU"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := skip.Check(tt.req)
			if result.ShouldSkip != tt.wantSkip {
				t.Errorf("ShouldSkip = %v, want %v", result.ShouldSkip, tt.wantSkip)
			}
			if result.Reason != tt.wantReason {
				t.Errorf("Reason = %q, want %q", result.Reason, tt.wantReason)
			}
		})
	}
}
