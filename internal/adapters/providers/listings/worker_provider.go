package listings

import (
	"context"

	"github.com/trendia-ai/trendia/internal/domain/entities"
	"github.com/trendia-ai/trendia/internal/domain/providers"
	"github.com/trendia-ai/trendia/internal/infrastructure/clients/scrapeworker"
	apperrors "github.com/trendia-ai/trendia/pkg/errors"
)

// WorkerProvider implements the listing provider backed by the external
// scrape worker.
type WorkerProvider struct {
	client scrapeworker.Client
	limit  int
}

// Ensure WorkerProvider implements ListingProvider
var _ providers.ListingProvider = (*WorkerProvider)(nil)

// NewWorkerProvider creates a new scrape-worker listing provider.
func NewWorkerProvider(client scrapeworker.Client, limit int) *WorkerProvider {
	if limit <= 0 {
		limit = 50
	}
	return &WorkerProvider{client: client, limit: limit}
}

// FetchListings pulls the latest collected batch for the keyword and
// converts it into corpus products.
func (p *WorkerProvider) FetchListings(ctx context.Context, keyword string) ([]*entities.Product, error) {
	response, err := p.client.GetListings(ctx, scrapeworker.ListingsRequest{
		Keyword: keyword,
		Limit:   p.limit,
	})
	if err != nil {
		return nil, apperrors.NewExternalError("failed to fetch listings from scrape worker", err)
	}

	products := make([]*entities.Product, 0, len(response.Listings))
	for _, record := range response.Listings {
		if record.ProductURL == "" || record.Title == "" {
			continue
		}
		products = append(products, record.Product())
	}
	return products, nil
}
