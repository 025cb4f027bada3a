package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/trendia-ai/trendia/internal/domain/entities"
	"github.com/trendia-ai/trendia/internal/domain/repositories"
)

// FavoriteService manages per-user saved products.
type FavoriteService struct {
	repo repositories.FavoriteRepository
}

// NewFavoriteService creates a favorite service.
func NewFavoriteService(repo repositories.FavoriteRepository) *FavoriteService {
	return &FavoriteService{repo: repo}
}

// Add saves a product for a user. Saving the same product twice is a no-op
// at the persistence layer.
func (s *FavoriteService) Add(ctx context.Context, username, productURL string) error {
	return s.repo.Add(ctx, &entities.Favorite{
		ID:         uuid.New().String(),
		Username:   username,
		ProductURL: productURL,
		CreatedAt:  time.Now().UTC(),
	})
}

// Remove drops a saved product.
func (s *FavoriteService) Remove(ctx context.Context, username, productURL string) error {
	return s.repo.Remove(ctx, username, productURL)
}

// List returns the user's saved products, newest first.
func (s *FavoriteService) List(ctx context.Context, username string) ([]*entities.Product, error) {
	return s.repo.ListByUser(ctx, username)
}
