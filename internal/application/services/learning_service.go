package services

import (
	"context"

	"github.com/trendia-ai/trendia/internal/domain/entities"
	"github.com/trendia-ai/trendia/internal/domain/repositories"
	"github.com/trendia-ai/trendia/internal/infrastructure/observability"
	"github.com/trendia-ai/trendia/pkg/config"
)

// LearningReport summarizes one learning pass.
type LearningReport struct {
	EventsProcessed int  `json:"events_processed"`
	EventsSkipped   int  `json:"events_skipped"`
	LedgerCleared   bool `json:"ledger_cleared"`
}

// LearningService consumes the feedback ledger and nudges each profile's
// weight vector toward past signals via bounded online updates.
type LearningService struct {
	feedback repositories.FeedbackRepository
	products repositories.ProductRepository
	weights  *WeightService
	scoring  *ScoringService
	cfg      config.LearningConfig
}

// NewLearningService creates a learning service.
func NewLearningService(
	feedback repositories.FeedbackRepository,
	products repositories.ProductRepository,
	weights *WeightService,
	scoring *ScoringService,
	cfg config.LearningConfig,
) *LearningService {
	return &LearningService{
		feedback: feedback,
		products: products,
		weights:  weights,
		scoring:  scoring,
		cfg:      cfg,
	}
}

// UpdateWeightsFromFeedback runs one learning pass. A missing ledger,
// corpus or profile store makes the whole pass a logged no-op, never an
// error surfaced to the caller's user. Events referencing unknown profiles
// or products are skipped silently, per filtering rule.
func (s *LearningService) UpdateWeightsFromFeedback(ctx context.Context) (*LearningReport, error) {
	logger := observability.LoggerFromContext(ctx)
	report := &LearningReport{}

	events, err := s.feedback.ReadAll(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("learning deferred: feedback ledger unavailable")
		return report, nil
	}
	if len(events) == 0 {
		logger.Info().Msg("learning skipped: no pending feedback")
		return report, nil
	}

	corpus, err := s.loadCorpus(ctx)
	if err != nil || len(corpus) == 0 {
		logger.Warn().Err(err).Msg("learning deferred: product corpus unavailable or empty")
		return report, nil
	}

	known, err := s.weights.KnownProfiles(ctx)
	if err != nil || len(known) == 0 {
		logger.Warn().Err(err).Msg("learning deferred: profile store unavailable or empty")
		return report, nil
	}

	logger.Info().Int("events", len(events)).Msg("processing feedback to adjust profile weights")

	for _, event := range events {
		if !known[event.Profile] {
			report.EventsSkipped++
			continue
		}
		product, ok := corpus[event.ProductURL]
		if !ok {
			report.EventsSkipped++
			continue
		}

		if err := s.applyEvent(ctx, event, product); err != nil {
			logger.Warn().Err(err).Str("profile", event.Profile).Msg("failed to persist adjusted weights")
			report.EventsSkipped++
			continue
		}
		report.EventsProcessed++
	}

	if s.cfg.ClearLedger {
		if err := s.feedback.Clear(ctx); err != nil {
			logger.Warn().Err(err).Msg("failed to clear feedback ledger; next run will double-apply")
		} else {
			report.LedgerCleared = true
		}
	}

	observability.RecordLearningPass(ctx, report.EventsProcessed, report.EventsSkipped)
	logger.Info().
		Int("processed", report.EventsProcessed).
		Int("skipped", report.EventsSkipped).
		Bool("ledger_cleared", report.LedgerCleared).
		Msg("profile weights updated")
	return report, nil
}

// Adjust applies a single feedback signal to a weight vector: a hard
// branch moves exactly one component by the learning rate, then the pair
// is clamped and renormalized to sum 1.
func (s *LearningService) Adjust(current entities.WeightVector, positive, hasHighInnovation bool) entities.WeightVector {
	adjustment := s.cfg.LearningRate
	if !positive {
		adjustment = -s.cfg.LearningRate
	}

	if hasHighInnovation {
		current.Innovation += adjustment
	} else {
		// Feedback on a non-innovative product is read as a price/style
		// signal.
		current.Price += adjustment
	}

	return current.Clamp(s.cfg.ClampMin, s.cfg.ClampMax).Renormalize()
}

func (s *LearningService) applyEvent(ctx context.Context, event *entities.FeedbackEvent, product *entities.Product) error {
	// Binary signal only: any keyword hit counts as high innovation.
	hasHighInnovation := s.scoring.InnovationScore(product) > 0

	return s.weights.Update(ctx, event.Profile, func(current entities.WeightVector) entities.WeightVector {
		return s.Adjust(current, event.Action.Positive(), hasHighInnovation)
	})
}

func (s *LearningService) loadCorpus(ctx context.Context) (map[string]*entities.Product, error) {
	products, err := s.products.All(ctx)
	if err != nil {
		return nil, err
	}
	corpus := make(map[string]*entities.Product, len(products))
	for _, p := range products {
		corpus[p.URL] = p
	}
	return corpus, nil
}
