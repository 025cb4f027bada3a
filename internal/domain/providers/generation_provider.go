package providers

import (
	"context"

	"github.com/trendia-ai/trendia/internal/domain/entities"
)

// GenerationProvider synthesizes candidate product ideas from a free-text
// prompt. Implementations own their own timeout and retry policy and hand
// the core a fully-resolved list; an unusable model response surfaces as
// an empty slice plus an error, never a panic.
type GenerationProvider interface {
	GenerateIdeas(ctx context.Context, prompt string) ([]*entities.Product, error)
}

// ListingProvider retrieves pre-scraped product listings from the external
// collection worker.
type ListingProvider interface {
	FetchListings(ctx context.Context, keyword string) ([]*entities.Product, error)
}
