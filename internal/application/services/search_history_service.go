package services

import (
	"context"

	"github.com/trendia-ai/trendia/internal/domain/entities"
	"github.com/trendia-ai/trendia/internal/domain/repositories"
)

const defaultHistoryLimit = 25

// SearchHistoryService exposes the prompt history side-channel: listing,
// deletion and the concatenated prompt text used by the word-frequency
// display.
type SearchHistoryService struct {
	repo repositories.SearchHistoryRepository
}

// NewSearchHistoryService creates a search history service.
func NewSearchHistoryService(repo repositories.SearchHistoryRepository) *SearchHistoryService {
	return &SearchHistoryService{repo: repo}
}

// List returns the most recent prompts, newest first.
func (s *SearchHistoryService) List(ctx context.Context, limit int) ([]*entities.SearchEntry, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	return s.repo.List(ctx, limit)
}

// AllPromptsText returns every stored prompt joined into one blob.
func (s *SearchHistoryService) AllPromptsText(ctx context.Context) (string, error) {
	return s.repo.AllPromptsText(ctx)
}

// Delete removes a single history entry.
func (s *SearchHistoryService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// Clear removes all history entries.
func (s *SearchHistoryService) Clear(ctx context.Context) error {
	return s.repo.Clear(ctx)
}
