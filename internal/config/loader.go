package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// ErrMissingCredentials indicates a required credential or input is
// absent. This is an environment misconfiguration: the caller must
// abort before any network call is attempted.
var ErrMissingCredentials = errors.New("missing required configuration")

// LoaderOptions describes how configuration should be discovered.
type LoaderOptions struct {
	ConfigPaths []string
	FileName    string
}

// Load returns the merged configuration from the optional config file
// and the CI environment. Environment variables use the names GitHub
// Actions workflows conventionally export (REPO_TOKEN, MODEL_API_KEY,
// EVENT_DOCUMENT_PATH, RUN_ID, REPOSITORY_NAME) rather than a prefix
// scheme, so the workflow YAML stays readable.
func Load(opts LoaderOptions) (Config, error) {
	v := viper.New()

	name := opts.FileName
	if name == "" {
		name = "argus"
	}

	configFile := locateConfigFile(name, opts.ConfigPaths)
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(name)
	}

	v.AllowEmptyEnv(true)
	bindEnv(v, "github.token", "REPO_TOKEN")
	bindEnv(v, "github.eventPath", "EVENT_DOCUMENT_PATH")
	bindEnv(v, "model.apiKey", "MODEL_API_KEY")
	bindEnv(v, "model.provider", "MODEL_PROVIDER")
	bindEnv(v, "model.name", "MODEL_NAME")
	bindEnv(v, "run.id", "RUN_ID")
	bindEnv(v, "run.repository", "REPOSITORY_NAME")

	setDefaults(v)

	if configFile != "" {
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", configFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	return cfg, nil
}

// Validate checks the fatal-at-startup requirements. The static
// provider needs no API key, so dry runs work without secrets.
func (c Config) Validate() error {
	if c.GitHub.Token == "" {
		return fmt.Errorf("%w: REPO_TOKEN is not set", ErrMissingCredentials)
	}
	if c.GitHub.EventPath == "" {
		return fmt.Errorf("%w: EVENT_DOCUMENT_PATH is not set", ErrMissingCredentials)
	}
	if c.Model.APIKey == "" && c.Model.Provider != "static" {
		return fmt.Errorf("%w: MODEL_API_KEY is not set", ErrMissingCredentials)
	}
	return nil
}

func bindEnv(v *viper.Viper, key, envName string) {
	// BindEnv only errors on an empty key, which cannot happen here.
	_ = v.BindEnv(key, envName)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("model.provider", "gemini")
	v.SetDefault("model.name", "gemini-2.5-flash")
	v.SetDefault("model.timeout", "60s")
	v.SetDefault("status.context", "Argus / AI-Reviewer")
	v.SetDefault("redaction.enabled", true)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "auto")
}

func locateConfigFile(name string, paths []string) string {
	extensions := []string{"yaml", "yml", "json", "toml"}
	for _, dir := range paths {
		for _, ext := range extensions {
			candidate := filepath.Join(dir, strings.Join([]string{name, ext}, "."))
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate
			}
		}
	}
	return ""
}
