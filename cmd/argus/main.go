package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/bkyoung/argus/internal/adapter/cli"
	"github.com/bkyoung/argus/internal/adapter/event"
	githubadapter "github.com/bkyoung/argus/internal/adapter/github"
	"github.com/bkyoung/argus/internal/adapter/llm/gemini"
	llmhttp "github.com/bkyoung/argus/internal/adapter/llm/http"
	"github.com/bkyoung/argus/internal/adapter/llm/openai"
	"github.com/bkyoung/argus/internal/adapter/llm/static"
	"github.com/bkyoung/argus/internal/adapter/observability"
	"github.com/bkyoung/argus/internal/config"
	"github.com/bkyoung/argus/internal/redaction"
	"github.com/bkyoung/argus/internal/usecase/notify"
	"github.com/bkyoung/argus/internal/usecase/review"
	"github.com/bkyoung/argus/internal/version"
)

func main() {
	err := run()
	switch {
	case err == nil, errors.Is(err, cli.ErrVersionRequested):
		return
	case errors.Is(err, cli.ErrChangesRequested):
		// Verdict already logged and posted; the non-zero exit is what
		// fails the CI job and blocks the merge.
		os.Exit(1)
	default:
		// Redact API keys from URLs in error messages before logging.
		log.Println(llmhttp.RedactURLSecrets(err.Error()))
		os.Exit(1)
	}
}

func run() error {
	// Cancellable context with signal handling for graceful shutdown.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Local runs keep secrets in .env; in CI the file is absent.
	_ = godotenv.Load()

	cfg, err := config.Load(config.LoaderOptions{
		ConfigPaths: []string{"."},
		FileName:    "argus",
	})
	if err != nil {
		return fmt.Errorf("config load failed: %w", err)
	}

	logger := observability.NewLogger(cfg.Logging)

	factory := func(dryRun bool) (cli.Reviewer, error) {
		effective := cfg
		if dryRun {
			effective.Model.Provider = "static"
		}
		if err := effective.Validate(); err != nil {
			return nil, err
		}
		return buildOrchestrator(effective, logger)
	}

	root := cli.NewRootCommand(cli.Dependencies{
		NewReviewer: factory,
		Version:     version.Value(),
	})

	return root.ExecuteContext(ctx)
}

func buildOrchestrator(cfg config.Config, logger *slog.Logger) (*review.Orchestrator, error) {
	provider, err := buildProvider(cfg, logger)
	if err != nil {
		return nil, err
	}

	githubClient := githubadapter.NewClient(cfg.GitHub.Token)

	var redactor review.Redactor
	if cfg.Redaction.Enabled {
		redactor = redaction.NewEngine()
	}

	notifier := notify.NewNotifier(githubClient, cfg.Status.Context, cfg.Run.TargetURL(), logger)

	return review.NewOrchestrator(review.OrchestratorDeps{
		Events:   event.NewSource(cfg.GitHub.EventPath),
		Diffs:    githubClient,
		Engine:   review.NewEngine(provider),
		Notifier: notifier,
		Redactor: redactor,
		Logger:   logger,
	}), nil
}

func buildProvider(cfg config.Config, logger *slog.Logger) (review.Provider, error) {
	timeout, err := time.ParseDuration(cfg.Model.Timeout)
	if err != nil {
		log.Printf("warning: invalid model timeout %q, using default", cfg.Model.Timeout)
		timeout = 0
	}

	callLogger := llmhttp.NewSlogLogger(logger)

	switch cfg.Model.Provider {
	case "gemini":
		client := gemini.NewHTTPClient(cfg.Model.APIKey, cfg.Model.Name, timeout)
		client.SetLogger(callLogger)
		return gemini.NewProvider(cfg.Model.Name, client), nil

	case "openai":
		client := openai.NewHTTPClient(cfg.Model.APIKey, cfg.Model.Name, timeout)
		client.SetLogger(callLogger)
		return openai.NewProvider(cfg.Model.Name, client), nil

	case "static":
		return static.NewProvider(cfg.Model.Name), nil

	default:
		return nil, fmt.Errorf("unsupported model provider %q (supported: gemini, openai, static)", cfg.Model.Provider)
	}
}

// Compile-time interface compliance checks
var _ review.EventLoader = (*event.Source)(nil)
var _ review.DiffFetcher = (*githubadapter.Client)(nil)
var _ review.Notifier = (*notify.Notifier)(nil)
var _ notify.Client = (*githubadapter.Client)(nil)
var _ review.Redactor = (*redaction.Engine)(nil)
var _ review.Provider = (*gemini.Provider)(nil)
var _ review.Provider = (*openai.Provider)(nil)
var _ review.Provider = (*static.Provider)(nil)
