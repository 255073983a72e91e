package domain

// Status states accepted by the GitHub commit status API.
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
	StatusError   = "error"
	StatusPending = "pending"
)

// PullRequestEvent is the pull-request portion of a webhook payload,
// reduced to the fields the pipeline consumes. Immutable after creation.
type PullRequestEvent struct {
	Title       string
	Body        string
	Author      string
	DiffURL     string
	CommentsURL string
	StatusesURL string
}

// Review is the model's raw free-text response. The text is used
// verbatim as the comment body (with an attribution suffix appended)
// and as the verdict parser input.
type Review struct {
	ProviderName string
	ModelName    string
	Text         string
}

// StatusUpdate is a commit status payload, constructed fresh per run.
type StatusUpdate struct {
	State       string
	Description string
	TargetURL   string
	Context     string
}
