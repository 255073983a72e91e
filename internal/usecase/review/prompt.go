package review

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/bkyoung/argus/internal/domain"
)

// maxDiffChars caps the diff portion of the prompt. Anything beyond
// this would risk exceeding the model's input-size limit.
const maxDiffChars = 40000

// truncationNotice is appended after the cutoff point so the model
// (and anyone reading the logs) can see the diff was cut.
const truncationNotice = "\n... (Diff truncated for size)"

// promptTemplate is the review instruction document. The two verdict
// markers must match domain.MarkerApprove and
// domain.MarkerRequestChanges exactly, emphasis included; the verdict
// parser depends on them.
const promptTemplate = `You are 'Argus', a Senior Software Engineer bot.
Review this PR from @{{.Author}}.
PR Title: {{.Title}}

Code Changes (Diff):
` + "```diff\n{{.Diff}}\n```" + `

Instructions:
1. Look for **Security Vulnerabilities** (API keys, SQL injection).
2. Look for **Logic Bugs** or performance issues.
3. Be constructive and concise.
4. **CRITICAL**: End your review with exactly one of these two verdicts:
   - '{{.ApproveMarker}}' (if code looks safe)
   - '{{.RequestChangesMarker}}' (if there are security risks or major bugs)
`

var promptTmpl = template.Must(template.New("prompt").Parse(promptTemplate))

// TruncateDiff enforces the prompt size cap. Diffs at or under the cap
// pass through unmodified; longer diffs are cut at exactly maxDiffChars
// characters and terminated with the truncation notice.
func TruncateDiff(diff string) string {
	runes := []rune(diff)
	if len(runes) <= maxDiffChars {
		return diff
	}
	return string(runes[:maxDiffChars]) + truncationNotice
}

// BuildPrompt composes the bounded instruction document from the diff,
// PR title, and author handle.
func BuildPrompt(pr *domain.PullRequestEvent, diff string) (string, error) {
	var builder strings.Builder
	err := promptTmpl.Execute(&builder, struct {
		Author               string
		Title                string
		Diff                 string
		ApproveMarker        string
		RequestChangesMarker string
	}{
		Author:               pr.Author,
		Title:                pr.Title,
		Diff:                 TruncateDiff(diff),
		ApproveMarker:        domain.MarkerApprove,
		RequestChangesMarker: domain.MarkerRequestChanges,
	})
	if err != nil {
		return "", fmt.Errorf("render prompt: %w", err)
	}
	return builder.String(), nil
}
