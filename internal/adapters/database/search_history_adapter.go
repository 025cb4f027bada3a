package database

import (
	"context"
	"strings"

	"github.com/doug-martin/goqu/v9"
	"github.com/trendia-ai/trendia/internal/domain/entities"
	"github.com/trendia-ai/trendia/internal/domain/repositories"
	"github.com/trendia-ai/trendia/internal/infrastructure/clients/postgres"
	apperrors "github.com/trendia-ai/trendia/pkg/errors"
)

// SearchHistoryAdapter persists search prompts in Postgres.
type SearchHistoryAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewSearchHistoryAdapter creates a new search history adapter.
func NewSearchHistoryAdapter(client *postgres.Client) repositories.SearchHistoryRepository {
	return &SearchHistoryAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Save stores one prompt.
func (a *SearchHistoryAdapter) Save(ctx context.Context, entry *entities.SearchEntry) error {
	if entry == nil || entry.Prompt == "" {
		return apperrors.NewValidationError("search prompt is required")
	}

	query, args, err := a.db.Insert("search_history").
		Rows(goqu.Record{
			"id":         entry.ID,
			"prompt":     entry.Prompt,
			"created_at": entry.CreatedAt,
		}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build search history insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to save search prompt", err)
	}
	return nil
}

// List returns the most recent prompts, newest first.
func (a *SearchHistoryAdapter) List(ctx context.Context, limit int) ([]*entities.SearchEntry, error) {
	query := `SELECT id, prompt, created_at FROM search_history ORDER BY created_at DESC LIMIT $1`

	rows, err := a.client.DB().QueryContext(ctx, query, limit)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list search history", err)
	}
	defer rows.Close()

	var entries []*entities.SearchEntry
	for rows.Next() {
		entry := &entities.SearchEntry{}
		if err := rows.Scan(&entry.ID, &entry.Prompt, &entry.CreatedAt); err != nil {
			return nil, apperrors.NewInternalError("failed to scan search entry", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// AllPromptsText concatenates every stored prompt for the word-frequency
// display.
func (a *SearchHistoryAdapter) AllPromptsText(ctx context.Context) (string, error) {
	rows, err := a.client.DB().QueryContext(ctx, `SELECT prompt FROM search_history`)
	if err != nil {
		return "", apperrors.NewInternalError("failed to read search prompts", err)
	}
	defer rows.Close()

	var prompts []string
	for rows.Next() {
		var prompt string
		if err := rows.Scan(&prompt); err != nil {
			return "", apperrors.NewInternalError("failed to scan search prompt", err)
		}
		prompts = append(prompts, prompt)
	}
	return strings.Join(prompts, " "), rows.Err()
}

// Delete removes one history entry.
func (a *SearchHistoryAdapter) Delete(ctx context.Context, id string) error {
	if _, err := a.client.DB().ExecContext(ctx, `DELETE FROM search_history WHERE id = $1`, id); err != nil {
		return apperrors.NewInternalError("failed to delete search entry", err)
	}
	return nil
}

// Clear removes all history entries.
func (a *SearchHistoryAdapter) Clear(ctx context.Context) error {
	if _, err := a.client.DB().ExecContext(ctx, `DELETE FROM search_history`); err != nil {
		return apperrors.NewInternalError("failed to clear search history", err)
	}
	return nil
}
