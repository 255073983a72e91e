package domain

import "strings"

// Verdict classifies the outcome of a review.
type Verdict string

const (
	VerdictApprove        Verdict = "approve"
	VerdictRequestChanges Verdict = "request_changes"
	VerdictInconclusive   Verdict = "inconclusive"
)

// Verdict markers the model is instructed to end its review with.
// These are exact substrings, emphasis included; the prompt and the
// parser must agree on them byte for byte.
const (
	MarkerApprove        = "✅ **APPROVE**"
	MarkerRequestChanges = "⚠️ **REQUEST CHANGES**"
)

// ParseVerdict classifies review text by marker containment.
//
// The request-changes marker is checked first: a response quoting both
// markers (for example by echoing the instructions) must never pass as
// an approval, so ambiguity resolves to the blocking verdict.
func ParseVerdict(text string) Verdict {
	switch {
	case strings.Contains(text, MarkerRequestChanges):
		return VerdictRequestChanges
	case strings.Contains(text, MarkerApprove):
		return VerdictApprove
	default:
		return VerdictInconclusive
	}
}

// StatusState returns the commit status state for the verdict.
// Only a request-changes verdict maps to a failing status; an
// inconclusive review is reported as neutral success so that a model
// outage never blocks a merge on its own.
func (v Verdict) StatusState() string {
	if v == VerdictRequestChanges {
		return StatusFailure
	}
	return StatusSuccess
}

// StatusDescription returns the human-readable commit status line.
func (v Verdict) StatusDescription() string {
	switch v {
	case VerdictRequestChanges:
		return "AI found critical issues."
	case VerdictApprove:
		return "AI approved the changes."
	default:
		return "AI Review posted (Neutral)."
	}
}

// ExitCode returns the process exit code for the verdict. A non-zero
// code is what fails the surrounding CI job and blocks the merge.
func (v Verdict) ExitCode() int {
	if v == VerdictRequestChanges {
		return 1
	}
	return 0
}
