package github

// GitHub REST API types consumed by the reviewer.
// See: https://docs.github.com/en/rest/issues/comments#create-an-issue-comment
// and: https://docs.github.com/en/rest/commits/statuses#create-a-commit-status

// CreateCommentRequest is the request body for POST {comments_url}.
type CreateCommentRequest struct {
	Body string `json:"body"`
}

// CreateStatusRequest is the request body for POST {statuses_url}.
type CreateStatusRequest struct {
	// State is one of success, failure, error, or pending.
	State string `json:"state"`

	// TargetURL links the status to the invoking job's logs.
	TargetURL string `json:"target_url"`

	// Description is the short human-readable status line.
	Description string `json:"description"`

	// Context names this check, distinguishing it from other checks on
	// the same commit.
	Context string `json:"context"`
}

// ErrorResponse is the standard GitHub API error body.
type ErrorResponse struct {
	Message          string `json:"message"`
	DocumentationURL string `json:"documentation_url"`
}
