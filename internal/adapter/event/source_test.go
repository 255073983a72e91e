package event_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bkyoung/argus/internal/adapter/event"
)

func writePayload(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "event.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadPullRequestEvent(t *testing.T) {
	path := writePayload(t, `{
		"action": "opened",
		"pull_request": {
			"title": "Fix bug",
			"body": "Fixes the off-by-one in pagination.",
			"diff_url": "https://github.com/octocat/hello-world/pull/1.diff",
			"comments_url": "https://api.github.com/repos/octocat/hello-world/issues/1/comments",
			"statuses_url": "https://api.github.com/repos/octocat/hello-world/statuses/abc123",
			"user": {"login": "octocat"}
		}
	}`)

	pr, err := event.NewSource(path).Load()
	require.NoError(t, err)
	require.NotNil(t, pr)

	assert.Equal(t, "Fix bug", pr.Title)
	assert.Equal(t, "Fixes the off-by-one in pagination.", pr.Body)
	assert.Equal(t, "octocat", pr.Author)
	assert.Equal(t, "https://github.com/octocat/hello-world/pull/1.diff", pr.DiffURL)
	assert.Equal(t, "https://api.github.com/repos/octocat/hello-world/issues/1/comments", pr.CommentsURL)
	assert.Equal(t, "https://api.github.com/repos/octocat/hello-world/statuses/abc123", pr.StatusesURL)
}

func TestLoadNonPullRequestEvent(t *testing.T) {
	// Issue comment payloads also trigger workflows; they are not errors.
	path := writePayload(t, `{"action": "created", "issue": {"number": 7}}`)

	pr, err := event.NewSource(path).Load()
	require.NoError(t, err)
	assert.Nil(t, pr)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := event.NewSource(filepath.Join(t.TempDir(), "absent.json")).Load()
	require.Error(t, err)
}

func TestLoadMalformedPayload(t *testing.T) {
	path := writePayload(t, "{not json")

	_, err := event.NewSource(path).Load()
	require.Error(t, err)
}
