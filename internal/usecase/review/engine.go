package review

import (
	"context"
	"fmt"

	"github.com/bkyoung/argus/internal/domain"
)

// Provider defines the outbound port for LLM reviews.
type Provider interface {
	// Name is the human-readable provider name used in synthesized
	// error messages ("Gemini", "OpenAI").
	Name() string

	// Generate sends the prompt and returns the model's free-text review.
	Generate(ctx context.Context, prompt string) (domain.Review, error)
}

// Outcome is the tagged result of a model invocation: either the
// review the model produced, or the failure cause. A failure is not a
// pipeline error; it is converted into a postable review message so
// the notification path stays available even when the model backend
// is down.
type Outcome struct {
	Review domain.Review
	Cause  error
}

// Failed reports whether the model invocation failed.
func (o Outcome) Failed() bool {
	return o.Cause != nil
}

// Engine forwards prompts to the model provider and converts failures
// into reviewable outcomes.
type Engine struct {
	provider Provider
}

// NewEngine creates an Engine backed by the given provider.
func NewEngine(provider Provider) *Engine {
	return &Engine{provider: provider}
}

// Review invokes the model. Failures are captured in the Outcome, not
// returned: callers always receive something they can post.
func (e *Engine) Review(ctx context.Context, prompt string) Outcome {
	review, err := e.provider.Generate(ctx, prompt)
	if err != nil {
		return Outcome{Cause: err}
	}
	return Outcome{Review: review}
}

// Message returns the text to post and parse: the model's review on
// success, or a synthesized error message on failure. The synthesized
// message carries no verdict marker, so it parses as inconclusive.
func (e *Engine) Message(o Outcome) string {
	if o.Failed() {
		return fmt.Sprintf("⚠️ **AI Error:** %s failed to respond. Details: %v", e.provider.Name(), o.Cause)
	}
	return o.Review.Text
}
