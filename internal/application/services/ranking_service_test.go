package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/trendia-ai/trendia/internal/application/services"
	"github.com/trendia-ai/trendia/internal/domain/entities"
	"github.com/trendia-ai/trendia/pkg/config"
)

func newRankingService() *services.RankingService {
	return services.NewRankingService(newScoringService(), config.RankingConfig{ResultCap: 10})
}

func TestRankingService_Rank_OrdersByUtilityDescending(t *testing.T) {
	ranking := newRankingService()

	candidates := []*entities.Product{
		{URL: "a", Title: "comum", PriceBRL: 100, InnovationScore: 1},
		{URL: "b", Title: "inovador barato", PriceBRL: 10, InnovationScore: 3},
		{URL: "c", Title: "meio termo", PriceBRL: 50, InnovationScore: 2},
	}

	ranked := ranking.Rank(candidates, entities.DefaultWeights(), nil, 0)

	assert.Len(t, ranked, 3)
	assert.Equal(t, "b", ranked[0].URL)
	assert.Equal(t, "c", ranked[1].URL)
	assert.Equal(t, "a", ranked[2].URL)
	assert.GreaterOrEqual(t, ranked[0].Utility, ranked[1].Utility)
	assert.GreaterOrEqual(t, ranked[1].Utility, ranked[2].Utility)
}

func TestRankingService_Rank_TiesKeepInputOrder(t *testing.T) {
	ranking := newRankingService()

	// Identical items tie exactly; stable sort must preserve input order.
	candidates := []*entities.Product{
		{URL: "first", Title: "caneca", PriceBRL: 30, InnovationScore: 1},
		{URL: "second", Title: "caneca", PriceBRL: 30, InnovationScore: 1},
		{URL: "third", Title: "caneca", PriceBRL: 30, InnovationScore: 1},
	}

	ranked := ranking.Rank(candidates, entities.DefaultWeights(), nil, 0)

	assert.Equal(t, "first", ranked[0].URL)
	assert.Equal(t, "second", ranked[1].URL)
	assert.Equal(t, "third", ranked[2].URL)
}

func TestRankingService_Rank_Idempotent(t *testing.T) {
	ranking := newRankingService()

	candidates := []*entities.Product{
		{URL: "a", Title: "x", PriceBRL: 20, InnovationScore: 2},
		{URL: "b", Title: "y", PriceBRL: 20, InnovationScore: 2},
		{URL: "c", Title: "z", PriceBRL: 80, InnovationScore: 1},
	}

	first := ranking.Rank(candidates, entities.DefaultWeights(), nil, 0)
	second := ranking.Rank(first, entities.DefaultWeights(), nil, 0)

	for i := range first {
		assert.Equal(t, first[i].URL, second[i].URL)
	}
}

func TestRankingService_Rank_EmptyPool(t *testing.T) {
	ranking := newRankingService()

	ranked := ranking.Rank(nil, entities.DefaultWeights(), nil, 0)

	assert.NotNil(t, ranked)
	assert.Empty(t, ranked)
}

func TestRankingService_Rank_TruncatesToCap(t *testing.T) {
	ranking := newRankingService()

	candidates := make([]*entities.Product, 0, 15)
	for i := 0; i < 15; i++ {
		candidates = append(candidates, &entities.Product{
			URL:             string(rune('a' + i)),
			Title:           "item",
			PriceBRL:        float64(10 + i),
			InnovationScore: 1,
		})
	}

	assert.Len(t, ranking.Rank(candidates, entities.DefaultWeights(), nil, 0), 10)
	assert.Len(t, ranking.Rank(candidates, entities.DefaultWeights(), nil, 5), 5)
}

func TestRankingService_Rank_MaxPriceFilter(t *testing.T) {
	ranking := newRankingService()

	candidates := []*entities.Product{
		{URL: "cheap", Title: "caneca", PriceBRL: 30, InnovationScore: 1},
		{URL: "boundary", Title: "caneca", PriceBRL: 50, InnovationScore: 1},
		{URL: "expensive", Title: "caneca", PriceBRL: 51, InnovationScore: 1},
	}

	ranked := ranking.Rank(candidates, entities.DefaultWeights(), &services.RankConstraints{MaxPrice: 50}, 0)

	urls := make([]string, 0, len(ranked))
	for _, p := range ranked {
		urls = append(urls, p.URL)
	}
	assert.ElementsMatch(t, []string{"cheap", "boundary"}, urls)
}

func TestRankingService_Rank_KeywordFilterMatchesAllTerms(t *testing.T) {
	ranking := newRankingService()

	candidates := []*entities.Product{
		{URL: "both", Title: "Caneca Térmica Azul", PriceBRL: 30, InnovationScore: 1},
		{URL: "one", Title: "Caneca Simples", PriceBRL: 30, InnovationScore: 1},
		{URL: "none", Title: "Luminária", PriceBRL: 30, InnovationScore: 1},
	}

	ranked := ranking.Rank(candidates, entities.DefaultWeights(), &services.RankConstraints{
		Keywords: []string{"caneca", "térmica"},
	}, 0)

	assert.Len(t, ranked, 1)
	assert.Equal(t, "both", ranked[0].URL)
}

func TestRankingService_Rank_ScoresUnscoredCandidates(t *testing.T) {
	ranking := newRankingService()

	candidates := []*entities.Product{
		{URL: "a", Title: "produto inovador e inteligente", PriceBRL: 30},
		{URL: "b", Title: "produto comum", PriceBRL: 30},
	}

	ranked := ranking.Rank(candidates, entities.DefaultWeights(), nil, 0)

	assert.Equal(t, "a", ranked[0].URL)
	assert.Equal(t, 2, ranked[0].InnovationScore)
}
