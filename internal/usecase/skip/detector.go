// Package skip provides skip trigger detection for pull-request
// reviews. Authors can bypass the AI review by including a trigger
// pattern in the PR title or description.
package skip

import (
	"regexp"
	"strings"
)

// skipTriggerPattern matches [skip review] or [skip-review] (case-insensitive).
var skipTriggerPattern = regexp.MustCompile(`(?i)\[skip[ -]review\]`)

// ContainsSkipTrigger checks if text contains a skip trigger pattern.
func ContainsSkipTrigger(text string) bool {
	return skipTriggerPattern.MatchString(text)
}

// CheckRequest contains the inputs to check for skip triggers.
type CheckRequest struct {
	PRTitle       string
	PRDescription string
}

// CheckResult contains the result of checking for skip triggers.
type CheckResult struct {
	ShouldSkip bool
	Reason     string // Source where the trigger was found
}

// Check examines PR metadata for skip triggers, title first.
func Check(req CheckRequest) CheckResult {
	if ContainsSkipTrigger(strings.TrimSpace(req.PRTitle)) {
		return CheckResult{ShouldSkip: true, Reason: "PR title"}
	}
	if ContainsSkipTrigger(req.PRDescription) {
		return CheckResult{ShouldSkip: true, Reason: "PR description"}
	}
	return CheckResult{}
}
