package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/trendia-ai/trendia/internal/application/services"
	"github.com/trendia-ai/trendia/internal/domain/entities"
	"github.com/trendia-ai/trendia/pkg/config"
)

func newScoringService() *services.ScoringService {
	return services.NewScoringService(config.ScoringConfig{
		Keywords: []string{"inovador", "inteligente", "exclusivo", "smart", "unique"},
	})
}

func TestScoringService_InnovationScore_CountsDistinctKeywords(t *testing.T) {
	scoring := newScoringService()

	product := &entities.Product{
		Title:       "Caneca Inteligente",
		Description: "Design inovador e exclusivo para presentear",
	}

	assert.Equal(t, 3, scoring.InnovationScore(product))
}

func TestScoringService_InnovationScore_RepeatsCountOnce(t *testing.T) {
	scoring := newScoringService()

	product := &entities.Product{
		Title:       "Produto inovador",
		Description: "muito inovador, extremamente inovador",
	}

	assert.Equal(t, 1, scoring.InnovationScore(product))
}

func TestScoringService_InnovationScore_CaseInsensitive(t *testing.T) {
	scoring := newScoringService()

	product := &entities.Product{Title: "SMART Watch UNIQUE edition"}

	assert.Equal(t, 2, scoring.InnovationScore(product))
}

func TestScoringService_InnovationScore_NoMatches(t *testing.T) {
	scoring := newScoringService()

	product := &entities.Product{Title: "Caneca comum", Description: "uma caneca"}

	assert.Equal(t, 0, scoring.InnovationScore(product))
}

func TestNormalize_LinearScaling(t *testing.T) {
	assert.InDelta(t, 0.0, services.Normalize(10, 10, 20), 1e-9)
	assert.InDelta(t, 0.5, services.Normalize(15, 10, 20), 1e-9)
	assert.InDelta(t, 1.0, services.Normalize(20, 10, 20), 1e-9)
}

func TestNormalize_DegenerateRangeReturnsOne(t *testing.T) {
	assert.Equal(t, 1.0, services.Normalize(7, 7, 7))
	assert.Equal(t, 1.0, services.Normalize(0, 0, 0))
}

func TestScoringService_Utility_BlendsAxes(t *testing.T) {
	scoring := newScoringService()

	pool := []*entities.Product{
		{PriceBRL: 50, InnovationScore: 0},
		{PriceBRL: 100, InnovationScore: 2},
	}
	stats := services.NewPoolStats(pool)
	weights := entities.WeightVector{Innovation: 0.5, Price: 0.5}

	// Cheapest, least innovative: innovation norm 0, price norm 1.
	assert.InDelta(t, 0.5, scoring.Utility(pool[0], stats, weights), 1e-9)
	// Most expensive, most innovative: innovation norm 1, price norm 0.
	assert.InDelta(t, 0.5, scoring.Utility(pool[1], stats, weights), 1e-9)
}

func TestScoringService_Utility_CheaperScoresHigherOnPriceAxis(t *testing.T) {
	scoring := newScoringService()

	pool := []*entities.Product{
		{PriceBRL: 10, InnovationScore: 1},
		{PriceBRL: 90, InnovationScore: 1},
	}
	stats := services.NewPoolStats(pool)
	weights := entities.WeightVector{Innovation: 0.2, Price: 0.8}

	cheap := scoring.Utility(pool[0], stats, weights)
	expensive := scoring.Utility(pool[1], stats, weights)

	assert.Greater(t, cheap, expensive)
}

func TestScoringService_Utility_UniformPoolScoresOne(t *testing.T) {
	scoring := newScoringService()

	pool := []*entities.Product{
		{PriceBRL: 30, InnovationScore: 1},
		{PriceBRL: 30, InnovationScore: 1},
	}
	stats := services.NewPoolStats(pool)

	// Both axes degenerate, so every item gets the full weighted sum.
	utility := scoring.Utility(pool[0], stats, entities.WeightVector{Innovation: 0.5, Price: 0.5})
	assert.InDelta(t, 1.0, utility, 1e-9)
}
