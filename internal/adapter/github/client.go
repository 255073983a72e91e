// Package github is a thin HTTP client for the three GitHub endpoints
// the pipeline touches: the diff download, the issue comments endpoint,
// and the commit status endpoint. Requests are never retried.
package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bkyoung/argus/internal/domain"
)

const (
	defaultTimeout = 30 * time.Second

	acceptJSON = "application/vnd.github.v3+json"
	acceptDiff = "application/vnd.github.v3.diff"

	apiVersion = "2022-11-28"
)

// Client is an HTTP client for the GitHub REST API. URLs are taken
// from the webhook payload verbatim rather than rebuilt from parts.
type Client struct {
	token      string
	httpClient *http.Client
}

// NewClient creates a new GitHub API client with the given token.
// The token should be a GitHub personal access token or GITHUB_TOKEN
// from Actions, with write access to comments and statuses.
func NewClient(token string) *Client {
	return &Client{
		token:      token,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// SetTimeout sets the HTTP timeout.
func (c *Client) SetTimeout(timeout time.Duration) {
	c.httpClient.Timeout = timeout
}

// SetHTTPClient replaces the underlying HTTP client (for testing).
func (c *Client) SetHTTPClient(client *http.Client) {
	c.httpClient = client
}

// FetchDiff issues a read request for the raw diff. The Accept header
// negotiates diff format instead of JSON metadata.
//
// A non-2xx response or an empty body yields ("", nil): an
// unretrievable diff is an expected early-exit condition for the
// caller, not a failure. Transport errors are still returned.
func (c *Client) FetchDiff(ctx context.Context, diffURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, diffURL, nil)
	if err != nil {
		return "", fmt.Errorf("build diff request: %w", err)
	}
	c.setHeaders(req, acceptDiff)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch diff: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read diff body: %w", err)
	}
	return string(body), nil
}

// PostComment submits a comment body to the comments endpoint.
// GitHub answers 201 on creation; any other status is an error.
func (c *Client) PostComment(ctx context.Context, commentsURL, body string) error {
	payload, err := json.Marshal(CreateCommentRequest{Body: body})
	if err != nil {
		return fmt.Errorf("marshal comment: %w", err)
	}

	resp, err := c.post(ctx, commentsURL, payload)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return mapHTTPError(resp)
	}
	return nil
}

// CreateStatus submits a commit status update to the statuses endpoint.
func (c *Client) CreateStatus(ctx context.Context, statusesURL string, update domain.StatusUpdate) error {
	payload, err := json.Marshal(CreateStatusRequest{
		State:       update.State,
		TargetURL:   update.TargetURL,
		Description: update.Description,
		Context:     update.Context,
	})
	if err != nil {
		return fmt.Errorf("marshal status: %w", err)
	}

	resp, err := c.post(ctx, statusesURL, payload)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return mapHTTPError(resp)
	}
	return nil
}

func (c *Client) post(ctx context.Context, url string, payload []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	c.setHeaders(req, acceptJSON)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("github request: %w", err)
	}
	return resp, nil
}

func (c *Client) setHeaders(req *http.Request, accept string) {
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", accept)
	req.Header.Set("X-GitHub-Api-Version", apiVersion)
}
