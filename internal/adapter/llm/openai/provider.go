package openai

import (
	"context"
	"fmt"

	"github.com/bkyoung/argus/internal/domain"
)

const providerName = "openai"

// Client abstracts the OpenAI HTTP client behaviour we need.
type Client interface {
	Generate(ctx context.Context, prompt string) (*APIResponse, error)
}

// Provider implements the review usecase Provider port.
type Provider struct {
	model  string
	client Client
}

// NewProvider constructs a Provider for the supplied model.
func NewProvider(model string, client Client) *Provider {
	return &Provider{
		model:  model,
		client: client,
	}
}

// Name returns the human-readable provider name.
func (p *Provider) Name() string {
	return "OpenAI"
}

// Generate sends the prompt to OpenAI and translates the response.
func (p *Provider) Generate(ctx context.Context, prompt string) (domain.Review, error) {
	if p.client == nil {
		return domain.Review{}, fmt.Errorf("openai client missing")
	}

	response, err := p.client.Generate(ctx, prompt)
	if err != nil {
		return domain.Review{}, err
	}

	return domain.Review{
		ProviderName: providerName,
		ModelName:    p.model,
		Text:         response.Text,
	}, nil
}
