// Package cli wires the review pipeline behind a cobra command.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/bkyoung/argus/internal/usecase/review"
)

// ErrVersionRequested indicates the user requested the CLI version and
// no further work should be done.
var ErrVersionRequested = errors.New("version requested")

// ErrChangesRequested indicates the review verdict blocks the merge.
// The process must exit non-zero so the surrounding CI job turns red.
var ErrChangesRequested = errors.New("changes requested")

// Reviewer defines the dependency required to run the review command.
type Reviewer interface {
	Run(ctx context.Context) (review.Result, error)
}

// ReviewerFactory builds the pipeline once flags are known. dryRun
// substitutes the static model provider so no secrets or quota are
// needed.
type ReviewerFactory func(dryRun bool) (Reviewer, error)

// Arguments encapsulates IO writers injected from the host process.
type Arguments struct {
	OutWriter io.Writer
	ErrWriter io.Writer
}

// Dependencies captures the collaborators for the CLI.
type Dependencies struct {
	NewReviewer ReviewerFactory
	Args        Arguments
	Version     string
}

// NewRootCommand constructs the root Cobra command.
func NewRootCommand(deps Dependencies) *cobra.Command {
	versionString := deps.Version
	if versionString == "" {
		versionString = "v0.0.0"
	}

	root := &cobra.Command{
		Use:   "argus",
		Short: "Serverless AI pull-request reviewer",
		Long: "Argus reviews a pull request once per webhook event: it fetches the\n" +
			"diff, asks a language model for a review, posts the review as a\n" +
			"comment, and sets a merge-gating commit status.",
	}
	root.SilenceUsage = true
	root.SilenceErrors = true

	outWriter := deps.Args.OutWriter
	if outWriter == nil {
		outWriter = os.Stdout
	}
	errWriter := deps.Args.ErrWriter
	if errWriter == nil {
		errWriter = os.Stderr
	}
	root.SetOut(outWriter)
	root.SetErr(errWriter)

	var showVersion bool
	var dryRun bool
	root.Flags().BoolVarP(&showVersion, "version", "v", false, "Show version and exit")
	root.Flags().BoolVar(&dryRun, "dry-run", false, "Use the static model provider instead of a live API")

	root.RunE = func(cmd *cobra.Command, args []string) error {
		if showVersion {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), versionString)
			return ErrVersionRequested
		}

		reviewer, err := deps.NewReviewer(dryRun)
		if err != nil {
			return err
		}

		result, err := reviewer.Run(cmd.Context())
		if err != nil {
			return err
		}
		if result.ExitCode != 0 {
			return ErrChangesRequested
		}
		return nil
	}

	return root
}
