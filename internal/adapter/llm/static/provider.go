package static

import (
	"context"

	"github.com/bkyoung/argus/internal/domain"
)

const providerName = "static"

// Provider implements the review usecase Provider port.
type Provider struct {
	model string
}

// NewProvider constructs a static Provider.
func NewProvider(model string) *Provider {
	return &Provider{
		model: model,
	}
}

// Name returns the human-readable provider name.
func (p *Provider) Name() string {
	return "Static"
}

// Generate returns a static, pre-determined review. The text carries
// the approval marker so dry runs exercise the full verdict path.
func (p *Provider) Generate(ctx context.Context, prompt string) (domain.Review, error) {
	return domain.Review{
		ProviderName: providerName,
		ModelName:    p.model,
		Text:         "This is a static review from a mock provider.\n\n" + domain.MarkerApprove,
	}, nil
}
