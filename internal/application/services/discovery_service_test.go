package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/trendia-ai/trendia/internal/application/services"
	"github.com/trendia-ai/trendia/internal/domain/entities"
)

// stubGenerator returns a fixed idea list or an error.
type stubGenerator struct {
	ideas []*entities.Product
	err   error
	calls int
}

func (s *stubGenerator) GenerateIdeas(ctx context.Context, prompt string) ([]*entities.Product, error) {
	s.calls++
	return s.ideas, s.err
}

func newDiscoveryFixture(generator *stubGenerator, products *fakeProductRepo) (*services.DiscoveryService, *fakeProfileRepo, *fakeFeedbackRepo) {
	profiles := newFakeProfileRepo()
	feedback := &fakeFeedbackRepo{}
	scoring := newScoringService()
	weights := services.NewWeightService(profiles)
	ranking := newRankingService()
	learning := services.NewLearningService(feedback, products, weights, scoring, learningConfig())

	discovery := services.NewDiscoveryService(
		generator,
		products,
		nil, // no search index: corpus scan path
		nil, // history recording disabled
		feedback,
		weights,
		ranking,
		scoring,
		learning,
		nil, // no cache
	)
	return discovery, profiles, feedback
}

func TestDiscoveryService_GenerateAndRank_ScoresPersistsAndRanks(t *testing.T) {
	generator := &stubGenerator{ideas: []*entities.Product{
		{URL: "u1", Title: "produto comum", PriceBRL: 80},
		{URL: "u2", Title: "produto inovador e inteligente", PriceBRL: 40},
	}}
	products := newFakeProductRepo()
	discovery, _, _ := newDiscoveryFixture(generator, products)

	ranked := discovery.GenerateAndRank(context.Background(), "presente criativo", "geral")

	assert.Len(t, ranked, 2)
	assert.Equal(t, "u2", ranked[0].URL)
	assert.Equal(t, 2, ranked[0].InnovationScore)

	// Generated ideas join the corpus for future learning.
	assert.Len(t, products.products, 2)
}

func TestDiscoveryService_GenerateAndRank_ProviderFailureYieldsEmptyList(t *testing.T) {
	generator := &stubGenerator{err: assert.AnError}
	discovery, _, _ := newDiscoveryFixture(generator, newFakeProductRepo())

	ranked := discovery.GenerateAndRank(context.Background(), "qualquer coisa", "geral")

	assert.NotNil(t, ranked)
	assert.Empty(t, ranked)
}

func TestDiscoveryService_GenerateAndRank_EmptyGeneration(t *testing.T) {
	generator := &stubGenerator{}
	discovery, _, _ := newDiscoveryFixture(generator, newFakeProductRepo())

	ranked := discovery.GenerateAndRank(context.Background(), "prompt", "geral")

	assert.Empty(t, ranked)
}

func TestDiscoveryService_FindAndRank_CorpusScanHonorsPromptConstraints(t *testing.T) {
	products := newFakeProductRepo(
		&entities.Product{URL: "a", Title: "Caneca Térmica", PriceBRL: 45, InnovationScore: 1},
		&entities.Product{URL: "b", Title: "Caneca Premium", PriceBRL: 120, InnovationScore: 2},
		&entities.Product{URL: "c", Title: "Luminária", PriceBRL: 30, InnovationScore: 1},
	)
	discovery, _, _ := newDiscoveryFixture(&stubGenerator{}, products)

	ranked := discovery.FindAndRank(context.Background(), "caneca até 50 reais", "geral", 0)

	assert.Len(t, ranked, 1)
	assert.Equal(t, "a", ranked[0].URL)
}

func TestDiscoveryService_FindAndRank_UsesProfileWeights(t *testing.T) {
	products := newFakeProductRepo(
		&entities.Product{URL: "cheap", Title: "presente comum", PriceBRL: 10, InnovationScore: 0},
		&entities.Product{URL: "novel", Title: "presente inovador", PriceBRL: 100, InnovationScore: 3},
	)
	discovery, profiles, _ := newDiscoveryFixture(&stubGenerator{}, products)
	profiles.profiles["inovacao"] = entities.WeightVector{Innovation: 0.9, Price: 0.1}
	profiles.profiles["economia"] = entities.WeightVector{Innovation: 0.1, Price: 0.9}

	forInnovation := discovery.FindAndRank(context.Background(), "presente", "inovacao", 0)
	forEconomy := discovery.FindAndRank(context.Background(), "presente", "economia", 0)

	assert.Equal(t, "novel", forInnovation[0].URL)
	assert.Equal(t, "cheap", forEconomy[0].URL)
}

func TestDiscoveryService_RecordFeedback_AppendsToLedger(t *testing.T) {
	discovery, _, feedback := newDiscoveryFixture(&stubGenerator{}, newFakeProductRepo())

	err := discovery.RecordFeedback(context.Background(), "https://example.com/p", "geral", entities.ActionLike)

	assert.NoError(t, err)
	assert.Len(t, feedback.events, 1)
	event := feedback.events[0]
	assert.NotEmpty(t, event.ID)
	assert.Equal(t, "https://example.com/p", event.ProductURL)
	assert.Equal(t, "geral", event.Profile)
	assert.Equal(t, entities.ActionLike, event.Action)
	assert.False(t, event.CreatedAt.IsZero())
}

func TestDiscoveryService_FeedbackThenLearnAdjustsProfile(t *testing.T) {
	product := &entities.Product{URL: "https://example.com/p", Title: "produto inovador", PriceBRL: 50}
	products := newFakeProductRepo(product)
	discovery, profiles, _ := newDiscoveryFixture(&stubGenerator{}, products)
	profiles.profiles["jovem"] = entities.DefaultWeights()

	assert.NoError(t, discovery.RecordFeedback(context.Background(), product.URL, "jovem", entities.ActionLike))

	report, err := discovery.Learn(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 1, report.EventsProcessed)

	weights := discovery.WeightsFor(context.Background(), "jovem")
	assert.Greater(t, weights.Innovation, 0.5)
}
