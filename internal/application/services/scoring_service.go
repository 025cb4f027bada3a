package services

import (
	"strings"

	"github.com/trendia-ai/trendia/internal/domain/entities"
	"github.com/trendia-ai/trendia/pkg/config"
)

// ScoringService computes innovation and utility scores. All methods are
// pure; the only state is the configured keyword set.
type ScoringService struct {
	keywords []string
}

// NewScoringService creates a scoring service from the injected keyword
// configuration.
func NewScoringService(cfg config.ScoringConfig) *ScoringService {
	return &ScoringService{keywords: cfg.Keywords}
}

// InnovationScore counts how many configured keywords appear as substrings
// in the product's lower-cased title+description blob. One point per
// distinct keyword, regardless of how often it repeats.
func (s *ScoringService) InnovationScore(product *entities.Product) int {
	text := product.Text()
	score := 0
	for _, keyword := range s.keywords {
		if strings.Contains(text, keyword) {
			score++
		}
	}
	return score
}

// Normalize linearly scales value into [0,1] against [min,max]. A
// degenerate range (max == min) returns 1.0: a pool with a single distinct
// value is treated as maximally informative, not neutral.
func Normalize(value, min, max float64) float64 {
	if max == min {
		return 1.0
	}
	return (value - min) / (max - min)
}

// PoolStats holds the min/max bounds of the current candidate pool. Utility
// is only meaningful relative to these bounds.
type PoolStats struct {
	MinPrice      float64
	MaxPrice      float64
	MinInnovation float64
	MaxInnovation float64
}

// NewPoolStats computes the bounds of a non-empty candidate pool.
func NewPoolStats(pool []*entities.Product) PoolStats {
	stats := PoolStats{
		MinPrice:      pool[0].PriceBRL,
		MaxPrice:      pool[0].PriceBRL,
		MinInnovation: float64(pool[0].InnovationScore),
		MaxInnovation: float64(pool[0].InnovationScore),
	}
	for _, p := range pool[1:] {
		if p.PriceBRL < stats.MinPrice {
			stats.MinPrice = p.PriceBRL
		}
		if p.PriceBRL > stats.MaxPrice {
			stats.MaxPrice = p.PriceBRL
		}
		innov := float64(p.InnovationScore)
		if innov < stats.MinInnovation {
			stats.MinInnovation = innov
		}
		if innov > stats.MaxInnovation {
			stats.MaxInnovation = innov
		}
	}
	return stats
}

// Utility blends the pool-normalized innovation score with the inverted
// pool-normalized price: cheaper items score higher on the price axis.
func (s *ScoringService) Utility(product *entities.Product, stats PoolStats, weights entities.WeightVector) float64 {
	innovNorm := Normalize(float64(product.InnovationScore), stats.MinInnovation, stats.MaxInnovation)

	priceNorm := 1.0
	if stats.MaxPrice != stats.MinPrice {
		priceNorm = (stats.MaxPrice - product.PriceBRL) / (stats.MaxPrice - stats.MinPrice)
	}

	return innovNorm*weights.Innovation + priceNorm*weights.Price
}
