package repositories

import (
	"context"

	"github.com/trendia-ai/trendia/internal/domain/entities"
)

// ProfileRepository persists one weight vector per profile name.
type ProfileRepository interface {
	// Get returns the persisted vector. A missing profile yields a
	// NOT_FOUND error; callers are expected to fall back to defaults.
	Get(ctx context.Context, name string) (*entities.Profile, error)

	// Set persists the vector, overwriting any previous value.
	Set(ctx context.Context, profile *entities.Profile) error

	// Names lists all profiles that currently have a persisted record.
	Names(ctx context.Context) ([]string, error)
}
