package database

import (
	"context"
	"database/sql"

	"github.com/doug-martin/goqu/v9"
	"github.com/trendia-ai/trendia/internal/domain/entities"
	"github.com/trendia-ai/trendia/internal/domain/repositories"
	"github.com/trendia-ai/trendia/internal/infrastructure/clients/postgres"
	apperrors "github.com/trendia-ai/trendia/pkg/errors"
)

// ProfileAdapter implements the weight store in Postgres, one row per
// profile name.
type ProfileAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewProfileAdapter creates a new profile adapter.
func NewProfileAdapter(client *postgres.Client) repositories.ProfileRepository {
	return &ProfileAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Get retrieves a profile's weight vector.
func (a *ProfileAdapter) Get(ctx context.Context, name string) (*entities.Profile, error) {
	query := `SELECT name, w_innovation, w_price, updated_at FROM profiles WHERE name = $1`

	profile := &entities.Profile{}
	err := a.client.DB().QueryRowContext(ctx, query, name).Scan(
		&profile.Name,
		&profile.Weights.Innovation,
		&profile.Weights.Price,
		&profile.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError("profile not found")
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get profile", err)
	}
	return profile, nil
}

// Set persists the profile's weight vector, overwriting any previous value.
func (a *ProfileAdapter) Set(ctx context.Context, profile *entities.Profile) error {
	if profile == nil || profile.Name == "" {
		return apperrors.NewValidationError("profile name is required")
	}

	query, args, err := a.db.Insert("profiles").
		Rows(goqu.Record{
			"name":         profile.Name,
			"w_innovation": profile.Weights.Innovation,
			"w_price":      profile.Weights.Price,
			"updated_at":   profile.UpdatedAt,
		}).
		OnConflict(goqu.DoUpdate("name", goqu.Record{
			"w_innovation": goqu.I("excluded.w_innovation"),
			"w_price":      goqu.I("excluded.w_price"),
			"updated_at":   goqu.I("excluded.updated_at"),
		})).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build profile upsert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to persist profile", err)
	}
	return nil
}

// Names lists every profile with a persisted record.
func (a *ProfileAdapter) Names(ctx context.Context) ([]string, error) {
	rows, err := a.client.DB().QueryContext(ctx, `SELECT name FROM profiles ORDER BY name`)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list profiles", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, apperrors.NewInternalError("failed to scan profile name", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
