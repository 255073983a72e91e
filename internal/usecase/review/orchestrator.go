// Package review contains the review orchestration pipeline: fetch,
// truncate, prompt, parse verdict, notify.
package review

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bkyoung/argus/internal/domain"
	"github.com/bkyoung/argus/internal/usecase/skip"
)

// EventLoader defines the inbound port for the webhook payload.
type EventLoader interface {
	// Load returns the pull-request event, or nil when the payload is
	// not a pull-request event.
	Load() (*domain.PullRequestEvent, error)
}

// DiffFetcher defines the outbound port for retrieving the code change.
type DiffFetcher interface {
	// FetchDiff returns the raw diff text. An unretrievable diff is
	// reported as an empty string, not an error.
	FetchDiff(ctx context.Context, diffURL string) (string, error)
}

// Redactor defines the outbound port for secret redaction.
type Redactor interface {
	Redact(input string) (string, error)
}

// Notifier defines the outbound port for reporting the review back to
// the pull request. Both operations are best-effort: the orchestrator
// logs failures and continues.
type Notifier interface {
	PostComment(ctx context.Context, commentsURL, reviewText string) error
	UpdateStatus(ctx context.Context, statusesURL string, verdict domain.Verdict) error
}

// PromptBuilderFunc composes the instruction document for the model.
type PromptBuilderFunc func(pr *domain.PullRequestEvent, diff string) (string, error)

// Result is the terminal state of a pipeline run. ExitCode is the
// process exit code: non-zero blocks the merge in the surrounding CI
// job.
type Result struct {
	Verdict    domain.Verdict
	ExitCode   int
	Conclusion string
}

// OrchestratorDeps captures the collaborators for the pipeline.
type OrchestratorDeps struct {
	Events        EventLoader
	Diffs         DiffFetcher
	Engine        *Engine
	Notifier      Notifier
	Redactor      Redactor          // optional
	PromptBuilder PromptBuilderFunc // optional, defaults to BuildPrompt
	Logger        *slog.Logger      // optional
}

// Orchestrator sequences the pipeline stages. Execution is strictly
// linear and single-pass; each stage hands an immutable value to the
// next, and the comment is always posted before the status is updated.
type Orchestrator struct {
	events        EventLoader
	diffs         DiffFetcher
	engine        *Engine
	notifier      Notifier
	redactor      Redactor
	promptBuilder PromptBuilderFunc
	logger        *slog.Logger
}

// NewOrchestrator constructs an Orchestrator from its dependencies.
func NewOrchestrator(deps OrchestratorDeps) *Orchestrator {
	builder := deps.PromptBuilder
	if builder == nil {
		builder = BuildPrompt
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		events:        deps.Events,
		diffs:         deps.Diffs,
		engine:        deps.Engine,
		notifier:      deps.Notifier,
		redactor:      deps.Redactor,
		promptBuilder: builder,
		logger:        logger,
	}
}

// Run executes the pipeline once. An error return is a fatal
// misconfiguration or transport failure before the review was
// produced; every state after the model call resolves to a Result.
func (o *Orchestrator) Run(ctx context.Context) (Result, error) {
	pr, err := o.events.Load()
	if err != nil {
		return Result{}, err
	}
	if pr == nil {
		o.logger.Info("workflow triggered without pull request data, exiting")
		return Result{Conclusion: "not a pull-request event"}, nil
	}

	o.logger.Info("reviewing pull request", "title", pr.Title, "author", pr.Author)

	if result := skip.Check(skip.CheckRequest{PRTitle: pr.Title, PRDescription: pr.Body}); result.ShouldSkip {
		o.logger.Info("skip trigger found, review skipped", "source", result.Reason)
		return Result{Conclusion: "skip trigger in " + result.Reason}, nil
	}

	diff, err := o.diffs.FetchDiff(ctx, pr.DiffURL)
	if err != nil {
		return Result{}, fmt.Errorf("fetch diff: %w", err)
	}
	if strings.TrimSpace(diff) == "" {
		o.logger.Info("could not retrieve code diff, exiting")
		return Result{Conclusion: "no retrievable diff"}, nil
	}

	if o.redactor != nil {
		diff, err = o.redactor.Redact(diff)
		if err != nil {
			return Result{}, fmt.Errorf("redact diff: %w", err)
		}
	}

	prompt, err := o.promptBuilder(pr, diff)
	if err != nil {
		return Result{}, err
	}

	o.logger.Info("sending code to model", "prompt_chars", len(prompt))
	outcome := o.engine.Review(ctx, prompt)
	if outcome.Failed() {
		o.logger.Warn("model invocation failed, posting synthesized message", "cause", outcome.Cause)
	}

	text := o.engine.Message(outcome)
	verdict := domain.ParseVerdict(text)
	o.logger.Info("verdict determined", "verdict", string(verdict))

	// Comment first, then status. Both best-effort.
	if err := o.notifier.PostComment(ctx, pr.CommentsURL, text); err != nil {
		o.logger.Warn("failed to post comment", "error", err)
	}
	if err := o.notifier.UpdateStatus(ctx, pr.StatusesURL, verdict); err != nil {
		o.logger.Warn("failed to update status", "error", err)
	}

	return Result{
		Verdict:    verdict,
		ExitCode:   verdict.ExitCode(),
		Conclusion: "review posted",
	}, nil
}
