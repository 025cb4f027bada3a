package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/trendia-ai/trendia/internal/domain/entities"
	"github.com/trendia-ai/trendia/internal/domain/repositories"
	"github.com/trendia-ai/trendia/internal/infrastructure/clients/postgres"
	apperrors "github.com/trendia-ai/trendia/pkg/errors"
)

const productColumns = "product_url, title, description, price_brl, image_url, source, marketing_persona, innovation_score, created_at"

// ProductAdapter implements the product corpus in Postgres, keyed by URL.
type ProductAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewProductAdapter creates a new product adapter.
func NewProductAdapter(client *postgres.Client) repositories.ProductRepository {
	return &ProductAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Upsert merges a batch into the corpus: existing URLs are overwritten,
// new ones inserted, nothing is deleted.
func (a *ProductAdapter) Upsert(ctx context.Context, products []*entities.Product) error {
	if len(products) == 0 {
		return nil
	}

	rows := make([]goqu.Record, 0, len(products))
	for _, p := range products {
		if p == nil || p.URL == "" {
			return apperrors.NewValidationError("product without url")
		}
		rows = append(rows, goqu.Record{
			"product_url":       p.URL,
			"title":             p.Title,
			"description":       sql.NullString{String: p.Description, Valid: p.Description != ""},
			"price_brl":         p.PriceBRL,
			"image_url":         sql.NullString{String: p.ImageURL, Valid: p.ImageURL != ""},
			"source":            p.Source,
			"marketing_persona": sql.NullString{String: p.MarketingPersona, Valid: p.MarketingPersona != ""},
			"innovation_score":  p.InnovationScore,
			"created_at":        p.CreatedAt,
		})
	}

	query, args, err := a.db.Insert("products").
		Rows(rows).
		OnConflict(goqu.DoUpdate("product_url", goqu.Record{
			"title":             goqu.I("excluded.title"),
			"description":       goqu.I("excluded.description"),
			"price_brl":         goqu.I("excluded.price_brl"),
			"image_url":         goqu.I("excluded.image_url"),
			"source":            goqu.I("excluded.source"),
			"marketing_persona": goqu.I("excluded.marketing_persona"),
			"innovation_score":  goqu.I("excluded.innovation_score"),
		})).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build product upsert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to upsert products", err)
	}
	return nil
}

// GetByURL retrieves a single product.
func (a *ProductAdapter) GetByURL(ctx context.Context, url string) (*entities.Product, error) {
	query := fmt.Sprintf("SELECT %s FROM products WHERE product_url = $1", productColumns)

	product, err := scanProduct(a.client.DB().QueryRowContext(ctx, query, url))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError("product not found")
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get product", err)
	}
	return product, nil
}

// All returns the full corpus.
func (a *ProductAdapter) All(ctx context.Context) ([]*entities.Product, error) {
	query := fmt.Sprintf("SELECT %s FROM products ORDER BY created_at DESC", productColumns)

	rows, err := a.client.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list products", err)
	}
	defer rows.Close()

	var products []*entities.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan product", err)
		}
		products = append(products, product)
	}
	return products, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row rowScanner) (*entities.Product, error) {
	product := &entities.Product{}
	var description, imageURL, persona sql.NullString

	err := row.Scan(
		&product.URL,
		&product.Title,
		&description,
		&product.PriceBRL,
		&imageURL,
		&product.Source,
		&persona,
		&product.InnovationScore,
		&product.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	product.Description = description.String
	product.ImageURL = imageURL.String
	product.MarketingPersona = persona.String
	return product, nil
}
