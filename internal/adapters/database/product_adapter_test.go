package database

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/trendia-ai/trendia/internal/domain/entities"
	"github.com/trendia-ai/trendia/internal/infrastructure/clients/postgres"
	apperrors "github.com/trendia-ai/trendia/pkg/errors"
)

func setupMockDB(t *testing.T) (*postgres.Client, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to create mock database: %v", err)
	}
	t.Cleanup(func() { mockDB.Close() })
	return postgres.NewClientWithDB(mockDB), mock
}

func productRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"product_url", "title", "description", "price_brl", "image_url",
		"source", "marketing_persona", "innovation_score", "created_at",
	})
}

func TestProductAdapter_Upsert(t *testing.T) {
	client, mock := setupMockDB(t)
	adapter := NewProductAdapter(client)

	mock.ExpectExec(`INSERT INTO "products"`).
		WillReturnResult(sqlmock.NewResult(0, 2))

	err := adapter.Upsert(context.Background(), []*entities.Product{
		{URL: "https://example.com/p1", Title: "Caneca Térmica", PriceBRL: 45, Source: entities.SourceGenerated, CreatedAt: time.Now()},
		{URL: "https://example.com/p2", Title: "Luminária Lua", PriceBRL: 90, Source: entities.SourceMercadoLivre, CreatedAt: time.Now()},
	})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductAdapter_Upsert_EmptyBatchSkipsQuery(t *testing.T) {
	client, mock := setupMockDB(t)
	adapter := NewProductAdapter(client)

	assert.NoError(t, adapter.Upsert(context.Background(), nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductAdapter_Upsert_RejectsMissingURL(t *testing.T) {
	client, _ := setupMockDB(t)
	adapter := NewProductAdapter(client)

	err := adapter.Upsert(context.Background(), []*entities.Product{
		{Title: "sem url"},
	})

	assert.Error(t, err)
}

func TestProductAdapter_GetByURL(t *testing.T) {
	client, mock := setupMockDB(t)
	adapter := NewProductAdapter(client)

	createdAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT (.+) FROM products WHERE product_url`).
		WithArgs("https://example.com/p1").
		WillReturnRows(productRows().AddRow(
			"https://example.com/p1", "Caneca Térmica", "mantém a temperatura", 45.0,
			nil, "generated", "jovem", 2, createdAt,
		))

	product, err := adapter.GetByURL(context.Background(), "https://example.com/p1")

	assert.NoError(t, err)
	assert.Equal(t, "Caneca Térmica", product.Title)
	assert.Equal(t, 2, product.InnovationScore)
	assert.Empty(t, product.ImageURL)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductAdapter_GetByURL_NotFound(t *testing.T) {
	client, mock := setupMockDB(t)
	adapter := NewProductAdapter(client)

	mock.ExpectQuery(`SELECT (.+) FROM products WHERE product_url`).
		WithArgs("https://example.com/missing").
		WillReturnRows(productRows())

	product, err := adapter.GetByURL(context.Background(), "https://example.com/missing")

	assert.Nil(t, product)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestProductAdapter_All(t *testing.T) {
	client, mock := setupMockDB(t)
	adapter := NewProductAdapter(client)

	createdAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT (.+) FROM products ORDER BY created_at DESC`).
		WillReturnRows(productRows().
			AddRow("https://example.com/p2", "Luminária Lua", nil, 90.0, nil, "mercadolivre", nil, 0, createdAt).
			AddRow("https://example.com/p1", "Caneca Térmica", "mantém a temperatura", 45.0, nil, "generated", "jovem", 2, createdAt.Add(-time.Hour)))

	products, err := adapter.All(context.Background())

	assert.NoError(t, err)
	assert.Len(t, products, 2)
	assert.Equal(t, "https://example.com/p2", products[0].URL)
	assert.Empty(t, products[0].Description)
	assert.NoError(t, mock.ExpectationsWereMet())
}
