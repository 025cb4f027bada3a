package database

import (
	"context"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
	"github.com/trendia-ai/trendia/internal/domain/entities"
	"github.com/trendia-ai/trendia/internal/domain/repositories"
	"github.com/trendia-ai/trendia/internal/infrastructure/clients/postgres"
	apperrors "github.com/trendia-ai/trendia/pkg/errors"
)

// FeedbackAdapter implements the append-only feedback ledger in Postgres.
type FeedbackAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewFeedbackAdapter creates a new feedback adapter.
func NewFeedbackAdapter(client *postgres.Client) repositories.FeedbackRepository {
	return &FeedbackAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Append inserts one immutable feedback event.
func (a *FeedbackAdapter) Append(ctx context.Context, event *entities.FeedbackEvent) error {
	if event == nil {
		return apperrors.NewValidationError("feedback event is nil")
	}
	if event.ID == "" {
		event.ID = uuid.New().String()
	}

	query, args, err := a.db.Insert("feedback").
		Rows(goqu.Record{
			"id":           event.ID,
			"product_url":  event.ProductURL,
			"user_profile": event.Profile,
			"action":       string(event.Action),
			"created_at":   event.CreatedAt,
		}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build feedback insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to append feedback", err)
	}
	return nil
}

// ReadAll returns every pending event in insertion order.
func (a *FeedbackAdapter) ReadAll(ctx context.Context) ([]*entities.FeedbackEvent, error) {
	query := `SELECT id, product_url, user_profile, action, created_at FROM feedback ORDER BY created_at, id`

	rows, err := a.client.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to read feedback ledger", err)
	}
	defer rows.Close()

	var events []*entities.FeedbackEvent
	for rows.Next() {
		event := &entities.FeedbackEvent{}
		var action string
		if err := rows.Scan(&event.ID, &event.ProductURL, &event.Profile, &action, &event.CreatedAt); err != nil {
			return nil, apperrors.NewInternalError("failed to scan feedback event", err)
		}
		event.Action = entities.FeedbackAction(action)
		events = append(events, event)
	}
	return events, rows.Err()
}

// Clear empties the ledger.
func (a *FeedbackAdapter) Clear(ctx context.Context) error {
	if _, err := a.client.DB().ExecContext(ctx, `DELETE FROM feedback`); err != nil {
		return apperrors.NewInternalError("failed to clear feedback ledger", err)
	}
	return nil
}
