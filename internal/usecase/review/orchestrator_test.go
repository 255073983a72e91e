package review

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bkyoung/argus/internal/domain"
)

type fakeEvents struct {
	pr  *domain.PullRequestEvent
	err error
}

func (f *fakeEvents) Load() (*domain.PullRequestEvent, error) {
	return f.pr, f.err
}

type fakeDiffs struct {
	diff   string
	err    error
	called bool
}

func (f *fakeDiffs) FetchDiff(ctx context.Context, diffURL string) (string, error) {
	f.called = true
	return f.diff, f.err
}

// recordingNotifier records calls so tests can assert ordering and payloads.
type recordingNotifier struct {
	comments   []string
	verdicts   []domain.Verdict
	calls      []string
	commentErr error
	statusErr  error
}

func (n *recordingNotifier) PostComment(ctx context.Context, commentsURL, reviewText string) error {
	n.calls = append(n.calls, "comment")
	n.comments = append(n.comments, reviewText)
	return n.commentErr
}

func (n *recordingNotifier) UpdateStatus(ctx context.Context, statusesURL string, verdict domain.Verdict) error {
	n.calls = append(n.calls, "status")
	n.verdicts = append(n.verdicts, verdict)
	return n.statusErr
}

func testPR() *domain.PullRequestEvent {
	return &domain.PullRequestEvent{
		Title:       "Fix bug",
		Author:      "octocat",
		DiffURL:     "https://github.com/octocat/hello-world/pull/1.diff",
		CommentsURL: "https://api.github.com/repos/octocat/hello-world/issues/1/comments",
		StatusesURL: "https://api.github.com/repos/octocat/hello-world/statuses/abc123",
	}
}

func newTestOrchestrator(events EventLoader, diffs DiffFetcher, provider Provider, notifier Notifier) *Orchestrator {
	return NewOrchestrator(OrchestratorDeps{
		Events:   events,
		Diffs:    diffs,
		Engine:   NewEngine(provider),
		Notifier: notifier,
	})
}

func TestRunApprovedReview(t *testing.T) {
	notifier := &recordingNotifier{}
	orch := newTestOrchestrator(
		&fakeEvents{pr: testPR()},
		&fakeDiffs{diff: "+ x=1"},
		&fakeProvider{name: "Gemini", text: "Looks fine. ✅ **APPROVE**"},
		notifier,
	)

	result, err := orch.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, domain.VerdictApprove, result.Verdict)
	assert.Equal(t, 0, result.ExitCode)

	require.Len(t, notifier.comments, 1)
	assert.Equal(t, "Looks fine. ✅ **APPROVE**", notifier.comments[0])
	require.Len(t, notifier.verdicts, 1)
	assert.Equal(t, domain.VerdictApprove, notifier.verdicts[0])
}

func TestRunRequestChangesBlocksMerge(t *testing.T) {
	notifier := &recordingNotifier{}
	orch := newTestOrchestrator(
		&fakeEvents{pr: testPR()},
		&fakeDiffs{diff: "+ query := \"SELECT * FROM users WHERE id=\" + id"},
		&fakeProvider{name: "Gemini", text: "Found SQL injection. ⚠️ **REQUEST CHANGES**"},
		notifier,
	)

	result, err := orch.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, domain.VerdictRequestChanges, result.Verdict)
	assert.Equal(t, 1, result.ExitCode)
	require.Len(t, notifier.verdicts, 1)
	assert.Equal(t, domain.VerdictRequestChanges, notifier.verdicts[0])
}

func TestRunModelFailureIsInconclusive(t *testing.T) {
	notifier := &recordingNotifier{}
	orch := newTestOrchestrator(
		&fakeEvents{pr: testPR()},
		&fakeDiffs{diff: "+ x=1"},
		&fakeProvider{name: "Gemini", err: errors.New("rate limited")},
		notifier,
	)

	result, err := orch.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, domain.VerdictInconclusive, result.Verdict)
	assert.Equal(t, 0, result.ExitCode)

	// The synthesized error message is still posted as a comment.
	require.Len(t, notifier.comments, 1)
	assert.Contains(t, notifier.comments[0], "⚠️ **AI Error:**")
	assert.Contains(t, notifier.comments[0], "rate limited")
}

func TestRunNonPullRequestEventExitsCleanly(t *testing.T) {
	diffs := &fakeDiffs{}
	notifier := &recordingNotifier{}
	orch := newTestOrchestrator(
		&fakeEvents{pr: nil},
		diffs,
		&fakeProvider{name: "Gemini"},
		notifier,
	)

	result, err := orch.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, result.ExitCode)
	assert.False(t, diffs.called, "no network calls expected for non-PR events")
	assert.Empty(t, notifier.calls)
}

func TestRunEmptyDiffExitsCleanly(t *testing.T) {
	tests := []struct {
		name string
		diff string
	}{
		{"empty diff", ""},
		{"whitespace-only diff", "  \n\t\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notifier := &recordingNotifier{}
			orch := newTestOrchestrator(
				&fakeEvents{pr: testPR()},
				&fakeDiffs{diff: tt.diff},
				&fakeProvider{name: "Gemini", text: "should never be called"},
				notifier,
			)

			result, err := orch.Run(context.Background())
			require.NoError(t, err)

			assert.Equal(t, 0, result.ExitCode)
			assert.Empty(t, notifier.calls, "no comment or status expected without a diff")
		})
	}
}

func TestRunSkipTriggerExitsCleanly(t *testing.T) {
	pr := testPR()
	pr.Title = "docs: fix typos [skip review]"

	diffs := &fakeDiffs{diff: "+ x=1"}
	notifier := &recordingNotifier{}
	orch := newTestOrchestrator(&fakeEvents{pr: pr}, diffs, &fakeProvider{name: "Gemini"}, notifier)

	result, err := orch.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, result.ExitCode)
	assert.False(t, diffs.called)
	assert.Empty(t, notifier.calls)
}

func TestRunEventLoadErrorIsFatal(t *testing.T) {
	orch := newTestOrchestrator(
		&fakeEvents{err: errors.New("event document missing")},
		&fakeDiffs{},
		&fakeProvider{name: "Gemini"},
		&recordingNotifier{},
	)

	_, err := orch.Run(context.Background())
	require.Error(t, err)
}

func TestRunCommentPostedBeforeStatus(t *testing.T) {
	notifier := &recordingNotifier{}
	orch := newTestOrchestrator(
		&fakeEvents{pr: testPR()},
		&fakeDiffs{diff: "+ x=1"},
		&fakeProvider{name: "Gemini", text: "✅ **APPROVE**"},
		notifier,
	)

	_, err := orch.Run(context.Background())
	require.NoError(t, err)

	require.Equal(t, []string{"comment", "status"}, notifier.calls)
}

func TestRunNotificationFailuresDoNotChangeExitCode(t *testing.T) {
	notifier := &recordingNotifier{
		commentErr: errors.New("403 forbidden"),
		statusErr:  errors.New("502 bad gateway"),
	}
	orch := newTestOrchestrator(
		&fakeEvents{pr: testPR()},
		&fakeDiffs{diff: "+ x=1"},
		&fakeProvider{name: "Gemini", text: "⚠️ **REQUEST CHANGES**"},
		notifier,
	)

	result, err := orch.Run(context.Background())
	require.NoError(t, err)

	// Exit code is determined by verdict logic, not notification success.
	assert.Equal(t, 1, result.ExitCode)
	assert.Equal(t, []string{"comment", "status"}, notifier.calls)
}

type upperCaseRedactor struct{}

func (upperCaseRedactor) Redact(input string) (string, error) {
	return strings.ToUpper(input), nil
}

func TestRunRedactsDiffBeforePrompting(t *testing.T) {
	var seenPrompt string
	orch := NewOrchestrator(OrchestratorDeps{
		Events:   &fakeEvents{pr: testPR()},
		Diffs:    &fakeDiffs{diff: "+ secret"},
		Engine:   NewEngine(&fakeProvider{name: "Gemini", text: "✅ **APPROVE**"}),
		Notifier: &recordingNotifier{},
		Redactor: upperCaseRedactor{},
		PromptBuilder: func(pr *domain.PullRequestEvent, diff string) (string, error) {
			seenPrompt = diff
			return BuildPrompt(pr, diff)
		},
	})

	_, err := orch.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "+ SECRET", seenPrompt)
}
