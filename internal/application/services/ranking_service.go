package services

import (
	"sort"
	"strings"

	"github.com/trendia-ai/trendia/internal/domain/entities"
	"github.com/trendia-ai/trendia/pkg/config"
)

// RankConstraints narrows a candidate pool before scoring. Zero values
// disable the corresponding filter.
type RankConstraints struct {
	// Keywords must all appear as case-insensitive substrings of the title.
	Keywords []string
	// MaxPrice excludes items priced strictly above it when positive.
	MaxPrice float64
}

// RankingService orders candidate pools by weighted utility.
type RankingService struct {
	scoring   *ScoringService
	resultCap int
}

// NewRankingService creates a ranking service.
func NewRankingService(scoring *ScoringService, cfg config.RankingConfig) *RankingService {
	cap := cfg.ResultCap
	if cap <= 0 {
		cap = 10
	}
	return &RankingService{scoring: scoring, resultCap: cap}
}

// Rank filters, scores and sorts the candidates descending by utility,
// truncated to cap (the configured default when cap <= 0). Ties keep the
// input order: the sort is stable and no secondary key is applied, so a
// re-run over the same pool and weights is idempotent.
func (r *RankingService) Rank(candidates []*entities.Product, weights entities.WeightVector, constraints *RankConstraints, cap int) []*entities.Product {
	pool := r.filter(candidates, constraints)
	if len(pool) == 0 {
		return []*entities.Product{}
	}

	for _, p := range pool {
		if p.InnovationScore == 0 {
			p.InnovationScore = r.scoring.InnovationScore(p)
		}
	}

	stats := NewPoolStats(pool)
	for _, p := range pool {
		p.Utility = r.scoring.Utility(p, stats, weights)
	}

	sort.SliceStable(pool, func(i, j int) bool {
		return pool[i].Utility > pool[j].Utility
	})

	if cap <= 0 {
		cap = r.resultCap
	}
	if len(pool) > cap {
		pool = pool[:cap]
	}
	return pool
}

func (r *RankingService) filter(candidates []*entities.Product, constraints *RankConstraints) []*entities.Product {
	filtered := make([]*entities.Product, 0, len(candidates))
	for _, p := range candidates {
		if constraints != nil {
			if constraints.MaxPrice > 0 && p.PriceBRL > constraints.MaxPrice {
				continue
			}
			if !matchesKeywords(p.Title, constraints.Keywords) {
				continue
			}
		}
		filtered = append(filtered, p)
	}
	return filtered
}

func matchesKeywords(title string, keywords []string) bool {
	if len(keywords) == 0 {
		return true
	}
	lowered := strings.ToLower(title)
	for _, keyword := range keywords {
		if !strings.Contains(lowered, strings.ToLower(keyword)) {
			return false
		}
	}
	return true
}
