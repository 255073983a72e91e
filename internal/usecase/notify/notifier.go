// Package notify reports review results back to the pull request: a
// comment with the review text and a merge-gating commit status.
package notify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bkyoung/argus/internal/domain"
)

// attributionSuffix is appended to every posted review comment.
const attributionSuffix = "\n\n_— Reviewed by Argus (Serverless AI) 🤖_"

// Client defines the interface for the GitHub endpoints the notifier
// writes to. This interface allows for mocking in tests.
type Client interface {
	PostComment(ctx context.Context, commentsURL, body string) error
	CreateStatus(ctx context.Context, statusesURL string, update domain.StatusUpdate) error
}

// Notifier posts review comments and commit statuses.
type Notifier struct {
	client        Client
	statusContext string
	targetURL     string
	logger        *slog.Logger
}

// NewNotifier creates a Notifier. statusContext names this check on
// the commit; targetURL links the status to the invoking job's logs.
func NewNotifier(client Client, statusContext, targetURL string, logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Notifier{
		client:        client,
		statusContext: statusContext,
		targetURL:     targetURL,
		logger:        logger,
	}
}

// PostComment appends the attribution suffix to the review text and
// submits it to the comments endpoint.
func (n *Notifier) PostComment(ctx context.Context, commentsURL, reviewText string) error {
	body := reviewText + attributionSuffix
	if err := n.client.PostComment(ctx, commentsURL, body); err != nil {
		return fmt.Errorf("post comment: %w", err)
	}
	n.logger.Info("comment posted")
	return nil
}

// UpdateStatus pushes the commit status derived from the verdict. The
// response body is not inspected; a rejected status update is a known
// limitation, surfaced only through the returned error.
func (n *Notifier) UpdateStatus(ctx context.Context, statusesURL string, verdict domain.Verdict) error {
	update := domain.StatusUpdate{
		State:       verdict.StatusState(),
		Description: verdict.StatusDescription(),
		TargetURL:   n.targetURL,
		Context:     n.statusContext,
	}
	if err := n.client.CreateStatus(ctx, statusesURL, update); err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	n.logger.Info("status updated", "state", update.State, "context", update.Context)
	return nil
}
