package repositories

import (
	"context"

	"github.com/trendia-ai/trendia/internal/domain/entities"
)

// SearchHistoryRepository persists search prompts for the history and
// word-frequency side-channels.
type SearchHistoryRepository interface {
	Save(ctx context.Context, entry *entities.SearchEntry) error
	List(ctx context.Context, limit int) ([]*entities.SearchEntry, error)
	AllPromptsText(ctx context.Context) (string, error)
	Delete(ctx context.Context, id string) error
	Clear(ctx context.Context) error
}

// FavoriteRepository persists per-user saved products.
type FavoriteRepository interface {
	Add(ctx context.Context, favorite *entities.Favorite) error
	Remove(ctx context.Context, username, productURL string) error
	ListByUser(ctx context.Context, username string) ([]*entities.Product, error)
}
