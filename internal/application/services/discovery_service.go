package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/trendia-ai/trendia/internal/domain/entities"
	"github.com/trendia-ai/trendia/internal/domain/providers"
	"github.com/trendia-ai/trendia/internal/domain/repositories"
	"github.com/trendia-ai/trendia/internal/infrastructure/observability"
)

const rankedCacheTTLSeconds = 600

// DiscoveryService is the ranking orchestrator: it obtains candidates from
// the generation provider or the collected corpus, ranks them with the
// profile's learned weights, and records searches and generated items for
// future learning.
type DiscoveryService struct {
	generator providers.GenerationProvider
	products  repositories.ProductRepository
	search    repositories.ProductSearchRepository
	history   repositories.SearchHistoryRepository
	feedback  repositories.FeedbackRepository
	weights   *WeightService
	ranking   *RankingService
	scoring   *ScoringService
	learning  *LearningService
	cache     providers.CacheProvider
}

// NewDiscoveryService creates the orchestrator. The search index and cache
// are optional; a nil search repository falls back to a corpus scan and a
// nil cache disables result caching.
func NewDiscoveryService(
	generator providers.GenerationProvider,
	products repositories.ProductRepository,
	search repositories.ProductSearchRepository,
	history repositories.SearchHistoryRepository,
	feedback repositories.FeedbackRepository,
	weights *WeightService,
	ranking *RankingService,
	scoring *ScoringService,
	learning *LearningService,
	cache providers.CacheProvider,
) *DiscoveryService {
	return &DiscoveryService{
		generator: generator,
		products:  products,
		search:    search,
		history:   history,
		feedback:  feedback,
		weights:   weights,
		ranking:   ranking,
		scoring:   scoring,
		learning:  learning,
		cache:     cache,
	}
}

// GenerateAndRank asks the generation provider for fresh product ideas,
// persists them into the corpus and returns them ranked for the profile.
// A failed or unparseable generation yields an empty list, never an error
// propagated to the UI layer.
func (s *DiscoveryService) GenerateAndRank(ctx context.Context, prompt, profile string) []*entities.Product {
	logger := observability.LoggerFromContext(ctx)

	if cached, ok := s.cachedResults(ctx, "generate", prompt, profile); ok {
		return cached
	}

	ideas, err := s.generator.GenerateIdeas(ctx, prompt)
	if err != nil {
		logger.Warn().Err(err).Str("prompt", prompt).Msg("idea generation failed, returning no results")
		return []*entities.Product{}
	}
	if len(ideas) == 0 {
		logger.Info().Str("prompt", prompt).Msg("idea generation returned no usable products")
		return []*entities.Product{}
	}

	for _, idea := range ideas {
		idea.InnovationScore = s.scoring.InnovationScore(idea)
	}

	// Persist for future learning; ranking proceeds even if persistence is down.
	if err := s.products.Upsert(ctx, ideas); err != nil {
		logger.Warn().Err(err).Msg("failed to persist generated products")
	}
	s.indexAll(ctx, ideas)
	s.trackSearch(ctx, prompt)

	ranked := s.ranking.Rank(ideas, s.weights.Weights(ctx, profile), nil, 0)
	s.cacheResults(ctx, "generate", prompt, profile, ranked)
	return ranked
}

// FindAndRank answers a prompt from the collected corpus: keyword search
// via the index when available, otherwise a filtered corpus scan. The
// prompt's "N reais" price ceiling is honored either way.
func (s *DiscoveryService) FindAndRank(ctx context.Context, prompt, profile string, cap int) []*entities.Product {
	logger := observability.LoggerFromContext(ctx)
	parsed := ParsePrompt(prompt)

	var candidates []*entities.Product
	var constraints *RankConstraints

	if s.search != nil {
		found, err := s.search.Search(ctx, prompt, 100)
		if err == nil {
			candidates = found
			constraints = &RankConstraints{MaxPrice: parsed.MaxPrice}
		} else {
			logger.Warn().Err(err).Msg("search index unavailable, scanning corpus")
		}
	}

	if candidates == nil {
		all, err := s.products.All(ctx)
		if err != nil {
			logger.Warn().Err(err).Msg("product corpus unavailable, returning no results")
			return []*entities.Product{}
		}
		candidates = all
		constraints = &RankConstraints{Keywords: parsed.Keywords, MaxPrice: parsed.MaxPrice}
	}

	s.trackSearch(ctx, prompt)
	return s.ranking.Rank(candidates, s.weights.Weights(ctx, profile), constraints, cap)
}

// RecordFeedback appends a like/dislike signal to the ledger.
func (s *DiscoveryService) RecordFeedback(ctx context.Context, productURL, profile string, action entities.FeedbackAction) error {
	return s.feedback.Append(ctx, &entities.FeedbackEvent{
		ID:         uuid.New().String(),
		ProductURL: productURL,
		Profile:    profile,
		Action:     action,
		CreatedAt:  time.Now().UTC(),
	})
}

// Learn triggers one learning pass over the pending feedback.
func (s *DiscoveryService) Learn(ctx context.Context) (*LearningReport, error) {
	return s.learning.UpdateWeightsFromFeedback(ctx)
}

// WeightsFor returns the profile's current weight vector.
func (s *DiscoveryService) WeightsFor(ctx context.Context, profile string) entities.WeightVector {
	return s.weights.Weights(ctx, profile)
}

func (s *DiscoveryService) indexAll(ctx context.Context, products []*entities.Product) {
	if s.search == nil {
		return
	}
	logger := observability.LoggerFromContext(ctx)
	for _, p := range products {
		if err := s.search.Index(ctx, p); err != nil {
			logger.Warn().Err(err).Str("url", p.URL).Msg("failed to index product")
		}
	}
}

// trackSearch records the prompt in the background so persistence latency
// never blocks the caller.
func (s *DiscoveryService) trackSearch(ctx context.Context, prompt string) {
	if s.history == nil {
		return
	}
	logger := observability.LoggerFromContext(ctx)
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		entry := &entities.SearchEntry{
			ID:        uuid.New().String(),
			Prompt:    prompt,
			CreatedAt: time.Now().UTC(),
		}
		if err := s.history.Save(bgCtx, entry); err != nil {
			logger.Warn().Err(err).Msg("failed to record search prompt")
		}
	}()
}

func (s *DiscoveryService) cachedResults(ctx context.Context, kind, prompt, profile string) ([]*entities.Product, bool) {
	if s.cache == nil {
		return nil, false
	}
	data, err := s.cache.Get(ctx, resultCacheKey(kind, prompt, profile))
	if err != nil {
		return nil, false
	}
	var products []*entities.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, false
	}
	return products, true
}

func (s *DiscoveryService) cacheResults(ctx context.Context, kind, prompt, profile string, products []*entities.Product) {
	if s.cache == nil || len(products) == 0 {
		return
	}
	data, err := json.Marshal(products)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, resultCacheKey(kind, prompt, profile), data, rankedCacheTTLSeconds); err != nil {
		observability.LoggerFromContext(ctx).Debug().Err(err).Msg("failed to cache ranked results")
	}
}

func resultCacheKey(kind, prompt, profile string) string {
	return fmt.Sprintf("ranked:%s:%s:%s", kind, profile, prompt)
}
