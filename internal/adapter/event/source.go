// Package event reads the webhook payload file delivered by the CI
// runner and maps it onto domain types.
package event

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/bkyoung/argus/internal/domain"
)

// payload mirrors the subset of the GitHub webhook document we consume.
type payload struct {
	PullRequest *pullRequest `json:"pull_request"`
}

type pullRequest struct {
	Title       string `json:"title"`
	Body        string `json:"body"`
	DiffURL     string `json:"diff_url"`
	CommentsURL string `json:"comments_url"`
	StatusesURL string `json:"statuses_url"`
	User        user   `json:"user"`
}

type user struct {
	Login string `json:"login"`
}

// Source loads webhook payloads from the filesystem.
type Source struct {
	path string
}

// NewSource creates a Source reading from the given payload path.
func NewSource(path string) *Source {
	return &Source{path: path}
}

// Load parses the payload file. A missing or unreadable file is an
// environment misconfiguration and returns an error; a payload without
// a pull_request section is a normal occurrence (issue comments and the
// like also trigger workflows) and returns (nil, nil).
func (s *Source) Load() (*domain.PullRequestEvent, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read event document %s: %w", s.path, err)
	}

	var p payload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse event document %s: %w", s.path, err)
	}

	if p.PullRequest == nil {
		return nil, nil
	}

	return &domain.PullRequestEvent{
		Title:       p.PullRequest.Title,
		Body:        p.PullRequest.Body,
		Author:      p.PullRequest.User.Login,
		DiffURL:     p.PullRequest.DiffURL,
		CommentsURL: p.PullRequest.CommentsURL,
		StatusesURL: p.PullRequest.StatusesURL,
	}, nil
}
