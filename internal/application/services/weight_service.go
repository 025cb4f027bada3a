package services

import (
	"context"
	"sync"
	"time"

	"github.com/trendia-ai/trendia/internal/domain/entities"
	"github.com/trendia-ai/trendia/internal/domain/repositories"
	"github.com/trendia-ai/trendia/internal/infrastructure/observability"
	apperrors "github.com/trendia-ai/trendia/pkg/errors"
)

// WeightService is the weight store: one persisted weight vector per
// profile, defaulted to (0.5, 0.5) when a profile is first referenced.
// Every read-modify-write runs under a per-profile mutex so concurrent
// feedback processing cannot lose updates.
type WeightService struct {
	repo repositories.ProfileRepository

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewWeightService creates a weight service.
func NewWeightService(repo repositories.ProfileRepository) *WeightService {
	return &WeightService{
		repo:  repo,
		locks: make(map[string]*sync.Mutex),
	}
}

// Weights returns the persisted vector for the profile, or the default
// pair when none exists. It never fails: persistence errors degrade to the
// default vector with a logged diagnostic. First access registers the
// profile so the learning engine recognizes it later.
func (s *WeightService) Weights(ctx context.Context, name string) entities.WeightVector {
	profile, err := s.repo.Get(ctx, name)
	if err == nil {
		return profile.Weights
	}

	if apperrors.IsNotFound(err) {
		defaults := entities.DefaultWeights()
		if setErr := s.repo.Set(ctx, &entities.Profile{Name: name, Weights: defaults, UpdatedAt: time.Now().UTC()}); setErr != nil {
			observability.LoggerFromContext(ctx).Warn().Err(setErr).Str("profile", name).Msg("could not register profile, serving defaults")
		}
		return defaults
	}

	observability.LoggerFromContext(ctx).Warn().Err(err).Str("profile", name).Msg("weight store unavailable, serving defaults")
	return entities.DefaultWeights()
}

// SetWeights persists the vector for the profile, overwriting.
func (s *WeightService) SetWeights(ctx context.Context, name string, weights entities.WeightVector) error {
	return s.repo.Set(ctx, &entities.Profile{Name: name, Weights: weights, UpdatedAt: time.Now().UTC()})
}

// Update applies fn to the profile's current vector and persists the
// result, all under that profile's lock.
func (s *WeightService) Update(ctx context.Context, name string, fn func(entities.WeightVector) entities.WeightVector) error {
	lock := s.profileLock(name)
	lock.Lock()
	defer lock.Unlock()

	current := s.Weights(ctx, name)
	return s.SetWeights(ctx, name, fn(current))
}

// KnownProfiles returns the set of profiles with a persisted record.
func (s *WeightService) KnownProfiles(ctx context.Context) (map[string]bool, error) {
	names, err := s.repo.Names(ctx)
	if err != nil {
		return nil, err
	}
	known := make(map[string]bool, len(names))
	for _, name := range names {
		known[name] = true
	}
	return known, nil
}

func (s *WeightService) profileLock(name string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[name]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[name] = lock
	}
	return lock
}
