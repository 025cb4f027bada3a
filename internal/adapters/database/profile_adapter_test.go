package database

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/trendia-ai/trendia/internal/domain/entities"
	apperrors "github.com/trendia-ai/trendia/pkg/errors"
)

func TestProfileAdapter_Get(t *testing.T) {
	client, mock := setupMockDB(t)
	adapter := NewProfileAdapter(client)

	updatedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT name, w_innovation, w_price, updated_at FROM profiles WHERE name`).
		WithArgs("jovem").
		WillReturnRows(sqlmock.NewRows([]string{"name", "w_innovation", "w_price", "updated_at"}).
			AddRow("jovem", 0.7, 0.3, updatedAt))

	profile, err := adapter.Get(context.Background(), "jovem")

	assert.NoError(t, err)
	assert.Equal(t, "jovem", profile.Name)
	assert.InDelta(t, 0.7, profile.Weights.Innovation, 1e-9)
	assert.InDelta(t, 0.3, profile.Weights.Price, 1e-9)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileAdapter_Get_NotFound(t *testing.T) {
	client, mock := setupMockDB(t)
	adapter := NewProfileAdapter(client)

	mock.ExpectQuery(`SELECT name, w_innovation, w_price, updated_at FROM profiles WHERE name`).
		WithArgs("fantasma").
		WillReturnRows(sqlmock.NewRows([]string{"name", "w_innovation", "w_price", "updated_at"}))

	profile, err := adapter.Get(context.Background(), "fantasma")

	assert.Nil(t, profile)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestProfileAdapter_Set(t *testing.T) {
	client, mock := setupMockDB(t)
	adapter := NewProfileAdapter(client)

	mock.ExpectExec(`INSERT INTO "profiles"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := adapter.Set(context.Background(), &entities.Profile{
		Name:      "jovem",
		Weights:   entities.WeightVector{Innovation: 0.7, Price: 0.3},
		UpdatedAt: time.Now().UTC(),
	})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileAdapter_Set_RequiresName(t *testing.T) {
	client, _ := setupMockDB(t)
	adapter := NewProfileAdapter(client)

	assert.Error(t, adapter.Set(context.Background(), &entities.Profile{}))
	assert.Error(t, adapter.Set(context.Background(), nil))
}

func TestProfileAdapter_Names(t *testing.T) {
	client, mock := setupMockDB(t)
	adapter := NewProfileAdapter(client)

	mock.ExpectQuery(`SELECT name FROM profiles ORDER BY name`).
		WillReturnRows(sqlmock.NewRows([]string{"name"}).
			AddRow("adulto").
			AddRow("geral").
			AddRow("jovem"))

	names, err := adapter.Names(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, []string{"adulto", "geral", "jovem"}, names)
	assert.NoError(t, mock.ExpectationsWereMet())
}
