package repositories

import (
	"context"

	"github.com/trendia-ai/trendia/internal/domain/entities"
)

// FeedbackRepository is the append-only feedback ledger: events are
// appended, bulk-read and bulk-cleared, never mutated in place.
type FeedbackRepository interface {
	Append(ctx context.Context, event *entities.FeedbackEvent) error
	ReadAll(ctx context.Context) ([]*entities.FeedbackEvent, error)
	Clear(ctx context.Context) error
}
