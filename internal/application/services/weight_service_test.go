package services_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/trendia-ai/trendia/internal/application/services"
	"github.com/trendia-ai/trendia/internal/domain/entities"
	apperrors "github.com/trendia-ai/trendia/pkg/errors"
)

// fakeProfileRepo is an in-memory profile store.
type fakeProfileRepo struct {
	mu       sync.Mutex
	profiles map[string]entities.WeightVector
	getErr   error
	setErr   error
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[string]entities.WeightVector)}
}

func (f *fakeProfileRepo) Get(ctx context.Context, name string) (*entities.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	weights, ok := f.profiles[name]
	if !ok {
		return nil, apperrors.NewNotFoundError("profile not found: " + name)
	}
	return &entities.Profile{Name: name, Weights: weights}, nil
}

func (f *fakeProfileRepo) Set(ctx context.Context, profile *entities.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.setErr != nil {
		return f.setErr
	}
	f.profiles[profile.Name] = profile.Weights
	return nil
}

func (f *fakeProfileRepo) Names(ctx context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	names := make([]string, 0, len(f.profiles))
	for name := range f.profiles {
		names = append(names, name)
	}
	return names, nil
}

func TestWeightService_Weights_UnknownProfileGetsDefaultsAndRegisters(t *testing.T) {
	repo := newFakeProfileRepo()
	service := services.NewWeightService(repo)

	weights := service.Weights(context.Background(), "jovem")

	assert.Equal(t, entities.DefaultWeights(), weights)

	// First access must persist the profile so a later learning pass
	// recognizes it.
	known, err := service.KnownProfiles(context.Background())
	assert.NoError(t, err)
	assert.True(t, known["jovem"])
}

func TestWeightService_Weights_ReturnsPersistedVector(t *testing.T) {
	repo := newFakeProfileRepo()
	repo.profiles["adulto"] = entities.WeightVector{Innovation: 0.7, Price: 0.3}
	service := services.NewWeightService(repo)

	weights := service.Weights(context.Background(), "adulto")

	assert.InDelta(t, 0.7, weights.Innovation, 1e-9)
	assert.InDelta(t, 0.3, weights.Price, 1e-9)
}

func TestWeightService_Weights_StoreErrorDegradesToDefaults(t *testing.T) {
	repo := newFakeProfileRepo()
	repo.getErr = apperrors.NewInternalError("db down", nil)
	service := services.NewWeightService(repo)

	weights := service.Weights(context.Background(), "geral")

	assert.Equal(t, entities.DefaultWeights(), weights)
}

func TestWeightService_SetWeights_RoundTrip(t *testing.T) {
	repo := newFakeProfileRepo()
	service := services.NewWeightService(repo)

	in := entities.WeightVector{Innovation: 0.6, Price: 0.4}
	assert.NoError(t, service.SetWeights(context.Background(), "geral", in))

	out := service.Weights(context.Background(), "geral")
	assert.Equal(t, in, out)
}

func TestWeightService_Update_AppliesFunctionUnderLock(t *testing.T) {
	repo := newFakeProfileRepo()
	service := services.NewWeightService(repo)

	err := service.Update(context.Background(), "geral", func(current entities.WeightVector) entities.WeightVector {
		current.Innovation += 0.05
		return current.Renormalize()
	})
	assert.NoError(t, err)

	weights := service.Weights(context.Background(), "geral")
	assert.InDelta(t, 0.55/1.05, weights.Innovation, 1e-9)
	assert.InDelta(t, 0.5/1.05, weights.Price, 1e-9)
}
