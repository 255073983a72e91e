package config

// Config represents the full application configuration.
type Config struct {
	GitHub    GitHubConfig    `yaml:"github"`
	Model     ModelConfig     `yaml:"model"`
	Run       RunConfig       `yaml:"run"`
	Status    StatusConfig    `yaml:"status"`
	Redaction RedactionConfig `yaml:"redaction"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// GitHubConfig holds the credential and the path to the delivered
// webhook payload. Both arrive from the CI environment.
type GitHubConfig struct {
	Token     string `yaml:"token"`
	EventPath string `yaml:"eventPath"`
}

// ModelConfig configures the LLM provider used for reviews.
type ModelConfig struct {
	Provider string `yaml:"provider"` // gemini, openai, static
	Name     string `yaml:"name"`
	APIKey   string `yaml:"apiKey"`
	Timeout  string `yaml:"timeout"`
}

// RunConfig identifies the invoking CI job. Used only to build the
// human-readable target URL on the commit status.
type RunConfig struct {
	ID         string `yaml:"id"`
	Repository string `yaml:"repository"`
}

// StatusConfig configures the commit status check.
type StatusConfig struct {
	// Context names this check, distinguishing it from other checks
	// on the same commit.
	Context string `yaml:"context"`
}

// RedactionConfig toggles secret redaction of the diff before it is
// embedded in the model prompt.
type RedactionConfig struct {
	Enabled bool `yaml:"enabled"`
}

// LoggingConfig configures the application logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // auto, text, json
}

// TargetURL returns the link to the invoking job's logs, attached to
// the commit status so reviewers can reach the full review output.
func (r RunConfig) TargetURL() string {
	if r.Repository == "" || r.ID == "" {
		return ""
	}
	return "https://github.com/" + r.Repository + "/actions/runs/" + r.ID
}
