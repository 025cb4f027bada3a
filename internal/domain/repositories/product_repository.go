package repositories

import (
	"context"

	"github.com/trendia-ai/trendia/internal/domain/entities"
)

// ProductRepository defines the interface for the product corpus, keyed by
// product URL. Upserts merge by key and never delete.
type ProductRepository interface {
	Upsert(ctx context.Context, products []*entities.Product) error
	GetByURL(ctx context.Context, url string) (*entities.Product, error)
	All(ctx context.Context) ([]*entities.Product, error)
}

// ProductSearchRepository defines the keyword-search index over the corpus.
type ProductSearchRepository interface {
	Index(ctx context.Context, product *entities.Product) error
	Search(ctx context.Context, query string, limit int) ([]*entities.Product, error)
}
