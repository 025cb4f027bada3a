package database

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/trendia-ai/trendia/internal/domain/entities"
)

func TestFeedbackAdapter_Append(t *testing.T) {
	client, mock := setupMockDB(t)
	adapter := NewFeedbackAdapter(client)

	mock.ExpectExec(`INSERT INTO "feedback"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	event := &entities.FeedbackEvent{
		ProductURL: "https://example.com/p1",
		Profile:    "jovem",
		Action:     entities.ActionLike,
		CreatedAt:  time.Now().UTC(),
	}
	err := adapter.Append(context.Background(), event)

	assert.NoError(t, err)
	assert.NotEmpty(t, event.ID, "append assigns an id when missing")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFeedbackAdapter_Append_NilEvent(t *testing.T) {
	client, _ := setupMockDB(t)
	adapter := NewFeedbackAdapter(client)

	assert.Error(t, adapter.Append(context.Background(), nil))
}

func TestFeedbackAdapter_ReadAll(t *testing.T) {
	client, mock := setupMockDB(t)
	adapter := NewFeedbackAdapter(client)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT id, product_url, user_profile, action, created_at FROM feedback ORDER BY created_at, id`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "product_url", "user_profile", "action", "created_at"}).
			AddRow("e1", "https://example.com/p1", "jovem", "like", base).
			AddRow("e2", "https://example.com/p2", "geral", "dislike", base.Add(time.Minute)))

	events, err := adapter.ReadAll(context.Background())

	assert.NoError(t, err)
	assert.Len(t, events, 2)
	assert.Equal(t, entities.ActionLike, events[0].Action)
	assert.Equal(t, entities.ActionDislike, events[1].Action)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFeedbackAdapter_ReadAll_EmptyLedger(t *testing.T) {
	client, mock := setupMockDB(t)
	adapter := NewFeedbackAdapter(client)

	mock.ExpectQuery(`SELECT id, product_url, user_profile, action, created_at FROM feedback`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "product_url", "user_profile", "action", "created_at"}))

	events, err := adapter.ReadAll(context.Background())

	assert.NoError(t, err)
	assert.Empty(t, events)
}

func TestFeedbackAdapter_Clear(t *testing.T) {
	client, mock := setupMockDB(t)
	adapter := NewFeedbackAdapter(client)

	mock.ExpectExec(`DELETE FROM feedback`).
		WillReturnResult(sqlmock.NewResult(0, 3))

	assert.NoError(t, adapter.Clear(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
