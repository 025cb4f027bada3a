package generation

import (
	"context"
	"errors"

	"github.com/trendia-ai/trendia/internal/domain/entities"
	"github.com/trendia-ai/trendia/internal/domain/providers"
	"github.com/trendia-ai/trendia/internal/infrastructure/clients/gemini"
	"github.com/trendia-ai/trendia/internal/infrastructure/observability"
)

// ProviderConfig configures generation providers.
type ProviderConfig struct {
	GeminiClient      *gemini.Client
	AllowMockFallback bool
}

// NewGenerationProvider creates a resilient provider with optional mock fallback.
func NewGenerationProvider(cfg ProviderConfig) providers.GenerationProvider {
	if cfg.GeminiClient == nil {
		// No real provider configured; use mock provider for dev.
		return NewMockGenerationProvider()
	}

	primary := NewGeminiProvider(cfg.GeminiClient)
	if !cfg.AllowMockFallback {
		return primary
	}

	return &FallbackProvider{
		primary:  primary,
		fallback: NewMockGenerationProvider(),
	}
}

// FallbackProvider wraps a primary provider with a mock fallback so idea
// generation keeps working when the model API is unreachable.
type FallbackProvider struct {
	primary  providers.GenerationProvider
	fallback providers.GenerationProvider
}

// GenerateIdeas tries the primary provider and falls back on failure.
func (p *FallbackProvider) GenerateIdeas(ctx context.Context, prompt string) ([]*entities.Product, error) {
	if p.primary == nil {
		if p.fallback != nil {
			return p.fallback.GenerateIdeas(ctx, prompt)
		}
		return nil, errors.New("generation provider not configured")
	}

	ideas, err := p.primary.GenerateIdeas(ctx, prompt)
	if err != nil && p.fallback != nil {
		observability.GetLogger().Warn().Err(err).Msg("primary generation provider failed, using fallback")
		return p.fallback.GenerateIdeas(ctx, prompt)
	}
	return ideas, err
}
