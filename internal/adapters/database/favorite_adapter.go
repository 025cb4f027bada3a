package database

import (
	"context"

	"github.com/doug-martin/goqu/v9"
	"github.com/trendia-ai/trendia/internal/domain/entities"
	"github.com/trendia-ai/trendia/internal/domain/repositories"
	"github.com/trendia-ai/trendia/internal/infrastructure/clients/postgres"
	apperrors "github.com/trendia-ai/trendia/pkg/errors"
)

// FavoriteAdapter persists per-user product favorites in Postgres.
type FavoriteAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewFavoriteAdapter creates a new favorite adapter.
func NewFavoriteAdapter(client *postgres.Client) repositories.FavoriteRepository {
	return &FavoriteAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Add stores a favorite. Saving the same product twice for one user is a
// no-op.
func (a *FavoriteAdapter) Add(ctx context.Context, favorite *entities.Favorite) error {
	if favorite == nil || favorite.Username == "" || favorite.ProductURL == "" {
		return apperrors.NewValidationError("username and product URL are required")
	}

	query, args, err := a.db.Insert("favorites").
		Rows(goqu.Record{
			"id":          favorite.ID,
			"username":    favorite.Username,
			"product_url": favorite.ProductURL,
			"created_at":  favorite.CreatedAt,
		}).
		OnConflict(goqu.DoNothing()).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build favorite insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to save favorite", err)
	}
	return nil
}

// Remove deletes a favorite by user and product URL.
func (a *FavoriteAdapter) Remove(ctx context.Context, username, productURL string) error {
	query := `DELETE FROM favorites WHERE username = $1 AND product_url = $2`
	if _, err := a.client.DB().ExecContext(ctx, query, username, productURL); err != nil {
		return apperrors.NewInternalError("failed to remove favorite", err)
	}
	return nil
}

// ListByUser returns the user's favorited products, newest favorites first.
func (a *FavoriteAdapter) ListByUser(ctx context.Context, username string) ([]*entities.Product, error) {
	query := `
		SELECT p.product_url, p.title, p.description, p.price_brl, p.image_url,
		       p.source, p.marketing_persona, p.innovation_score, p.created_at
		FROM favorites f
		JOIN products p ON p.product_url = f.product_url
		WHERE f.username = $1
		ORDER BY f.created_at DESC`

	rows, err := a.client.DB().QueryContext(ctx, query, username)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list favorites", err)
	}
	defer rows.Close()

	var products []*entities.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, rows.Err()
}
