package search

import (
	"context"
	"fmt"
	"time"

	"github.com/typesense/typesense-go/v2/typesense/api"
	"github.com/typesense/typesense-go/v2/typesense/api/pointer"
	"github.com/trendia-ai/trendia/internal/domain/entities"
	"github.com/trendia-ai/trendia/internal/domain/repositories"
	tsclient "github.com/trendia-ai/trendia/internal/infrastructure/clients/typesense"
)

const collectionName = "products"

// TypesenseAdapter implements product keyword search using Typesense.
type TypesenseAdapter struct {
	client *tsclient.Client
}

// Ensure TypesenseAdapter implements ProductSearchRepository
var _ repositories.ProductSearchRepository = (*TypesenseAdapter)(nil)

// NewTypesenseAdapter creates a new Typesense adapter
func NewTypesenseAdapter(client *tsclient.Client) *TypesenseAdapter {
	return &TypesenseAdapter{client: client}
}

// InitSchema ensures the products collection exists
func (a *TypesenseAdapter) InitSchema(ctx context.Context) error {
	_, err := a.client.Client().Collection(collectionName).Retrieve(ctx)
	if err == nil {
		return nil // Collection exists
	}

	schema := &api.CollectionSchema{
		Name: collectionName,
		Fields: []api.Field{
			{Name: "id", Type: "string"},
			{Name: "title", Type: "string"},
			{Name: "description", Type: "string"},
			{Name: "price_brl", Type: "float"},
			{Name: "image_url", Type: "string", Index: pointer.False(), Optional: pointer.True()},
			{Name: "source", Type: "string", Facet: pointer.True()},
			{Name: "marketing_persona", Type: "string", Optional: pointer.True()},
			{Name: "innovation_score", Type: "int32"},
			{Name: "created_at", Type: "int64"},
		},
		DefaultSortingField: pointer.String("created_at"),
	}

	_, err = a.client.Client().Collections().Create(ctx, schema)
	if err != nil {
		return fmt.Errorf("failed to create typesense collection: %w", err)
	}

	return nil
}

// Index upserts a product document. The product URL is the document ID so
// re-indexing the same product replaces the previous version.
func (a *TypesenseAdapter) Index(ctx context.Context, product *entities.Product) error {
	document := map[string]interface{}{
		"id":                product.URL,
		"title":             product.Title,
		"description":       product.Description,
		"price_brl":         product.PriceBRL,
		"image_url":         product.ImageURL,
		"source":            product.Source,
		"marketing_persona": product.MarketingPersona,
		"innovation_score":  product.InnovationScore,
		"created_at":        product.CreatedAt.Unix(),
	}

	_, err := a.client.Client().Collection(collectionName).Documents().Upsert(ctx, document)
	if err != nil {
		return fmt.Errorf("failed to index product: %w", err)
	}

	return nil
}

// Search runs a keyword query over titles and descriptions.
func (a *TypesenseAdapter) Search(ctx context.Context, query string, limit int) ([]*entities.Product, error) {
	if limit <= 0 {
		limit = 20
	}

	searchParams := &api.SearchCollectionParams{
		Q:       pointer.String(query),
		QueryBy: pointer.String("title,description"),
		PerPage: pointer.Int(limit),
	}

	result, err := a.client.Client().Collection(collectionName).Documents().Search(ctx, searchParams)
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}

	products := []*entities.Product{}
	if result.Hits == nil {
		return products, nil
	}

	for _, hit := range *result.Hits {
		doc := *hit.Document

		// Typesense returns map[string]interface{}, so cast safely
		product := &entities.Product{}
		if val, ok := doc["id"].(string); ok {
			product.URL = val
		}
		if val, ok := doc["title"].(string); ok {
			product.Title = val
		}
		if val, ok := doc["description"].(string); ok {
			product.Description = val
		}
		if val, ok := doc["price_brl"].(float64); ok {
			product.PriceBRL = val
		}
		if val, ok := doc["image_url"].(string); ok {
			product.ImageURL = val
		}
		if val, ok := doc["source"].(string); ok {
			product.Source = val
		}
		if val, ok := doc["marketing_persona"].(string); ok {
			product.MarketingPersona = val
		}
		if val, ok := doc["innovation_score"].(float64); ok {
			product.InnovationScore = int(val)
		}
		if val, ok := doc["created_at"].(float64); ok {
			product.CreatedAt = time.Unix(int64(val), 0).UTC()
		}

		products = append(products, product)
	}

	return products, nil
}
