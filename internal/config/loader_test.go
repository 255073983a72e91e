package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(LoaderOptions{})
	require.NoError(t, err)

	assert.Equal(t, "gemini", cfg.Model.Provider)
	assert.Equal(t, "gemini-2.5-flash", cfg.Model.Name)
	assert.Equal(t, "60s", cfg.Model.Timeout)
	assert.Equal(t, "Argus / AI-Reviewer", cfg.Status.Context)
	assert.True(t, cfg.Redaction.Enabled)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadBindsCIEnvironment(t *testing.T) {
	t.Setenv("REPO_TOKEN", "ghp_testtoken")
	t.Setenv("MODEL_API_KEY", "AIzaTestKey")
	t.Setenv("EVENT_DOCUMENT_PATH", "/tmp/event.json")
	t.Setenv("RUN_ID", "1234567")
	t.Setenv("REPOSITORY_NAME", "octocat/hello-world")

	cfg, err := Load(LoaderOptions{})
	require.NoError(t, err)

	assert.Equal(t, "ghp_testtoken", cfg.GitHub.Token)
	assert.Equal(t, "AIzaTestKey", cfg.Model.APIKey)
	assert.Equal(t, "/tmp/event.json", cfg.GitHub.EventPath)
	assert.Equal(t, "1234567", cfg.Run.ID)
	assert.Equal(t, "octocat/hello-world", cfg.Run.Repository)
}

func TestLoadReadsConfigFile(t *testing.T) {
	dir := t.TempDir()
	configContent := `
model:
  provider: openai
  name: gpt-4o-mini
status:
  context: "Argus / Security"
redaction:
  enabled: false
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "argus.yaml"), []byte(configContent), 0o644))

	cfg, err := Load(LoaderOptions{ConfigPaths: []string{dir}})
	require.NoError(t, err)

	assert.Equal(t, "openai", cfg.Model.Provider)
	assert.Equal(t, "gpt-4o-mini", cfg.Model.Name)
	assert.Equal(t, "Argus / Security", cfg.Status.Context)
	assert.False(t, cfg.Redaction.Enabled)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "argus.yaml"), []byte("model:\n  provider: openai\n"), 0o644))
	t.Setenv("MODEL_PROVIDER", "gemini")

	cfg, err := Load(LoaderOptions{ConfigPaths: []string{dir}})
	require.NoError(t, err)

	assert.Equal(t, "gemini", cfg.Model.Provider)
}

func TestValidate(t *testing.T) {
	base := Config{
		GitHub: GitHubConfig{Token: "token", EventPath: "/tmp/event.json"},
		Model:  ModelConfig{Provider: "gemini", APIKey: "key"},
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:   "complete config",
			mutate: func(c *Config) {},
		},
		{
			name:    "missing repo token",
			mutate:  func(c *Config) { c.GitHub.Token = "" },
			wantErr: true,
		},
		{
			name:    "missing event path",
			mutate:  func(c *Config) { c.GitHub.EventPath = "" },
			wantErr: true,
		},
		{
			name:    "missing model key",
			mutate:  func(c *Config) { c.Model.APIKey = "" },
			wantErr: true,
		},
		{
			name: "static provider needs no key",
			mutate: func(c *Config) {
				c.Model.Provider = "static"
				c.Model.APIKey = ""
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				require.ErrorIs(t, err, ErrMissingCredentials)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestRunConfigTargetURL(t *testing.T) {
	run := RunConfig{ID: "42", Repository: "octocat/hello-world"}
	assert.Equal(t, "https://github.com/octocat/hello-world/actions/runs/42", run.TargetURL())

	assert.Empty(t, RunConfig{}.TargetURL())
	assert.Empty(t, RunConfig{ID: "42"}.TargetURL())
}
