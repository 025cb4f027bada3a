package generation

import (
	"context"

	"github.com/trendia-ai/trendia/internal/domain/entities"
	"github.com/trendia-ai/trendia/internal/domain/providers"
	"github.com/trendia-ai/trendia/internal/infrastructure/clients/gemini"
)

// GeminiProvider implements idea generation backed by the Gemini client.
type GeminiProvider struct {
	client *gemini.Client
}

// NewGeminiProvider creates a new Gemini-backed generation provider.
func NewGeminiProvider(client *gemini.Client) providers.GenerationProvider {
	return &GeminiProvider{client: client}
}

// GenerateIdeas asks the model for candidate product ideas for the prompt.
func (p *GeminiProvider) GenerateIdeas(ctx context.Context, prompt string) ([]*entities.Product, error) {
	return p.client.GenerateIdeas(ctx, prompt)
}
