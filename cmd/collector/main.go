package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/trendia-ai/trendia/internal/adapters/database"
	"github.com/trendia-ai/trendia/internal/adapters/providers/listings"
	"github.com/trendia-ai/trendia/internal/adapters/search"
	"github.com/trendia-ai/trendia/internal/application/services"
	"github.com/trendia-ai/trendia/internal/domain/repositories"
	"github.com/trendia-ai/trendia/internal/infrastructure/clients/postgres"
	"github.com/trendia-ai/trendia/internal/infrastructure/clients/scrapeworker"
	"github.com/trendia-ai/trendia/internal/infrastructure/clients/typesense"
	"github.com/trendia-ai/trendia/internal/infrastructure/observability"
	"github.com/trendia-ai/trendia/pkg/config"
)

// collector pulls scraped listings from the external worker on a fixed
// interval and folds them into the product corpus.
func main() {
	var once bool
	var keywordsFlag string
	flag.BoolVar(&once, "once", false, "run a single collection cycle and exit")
	flag.StringVar(&keywordsFlag, "keywords", "", "comma-separated keywords overriding SCRAPE_KEYWORDS")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("failed to load configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	observability.InitLogger("trendia-collector", cfg.Environment)
	logger := observability.GetLogger()

	keywords := cfg.ScrapeWorker.Keywords
	if keywordsFlag != "" {
		keywords = nil
		for _, kw := range strings.Split(keywordsFlag, ",") {
			if kw = strings.TrimSpace(kw); kw != "" {
				keywords = append(keywords, kw)
			}
		}
	}
	if len(keywords) == 0 {
		logger.Fatal().Msg("no scrape keywords configured")
	}

	interval := time.Duration(cfg.ScrapeWorker.IntervalSeconds) * time.Second

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()

	products := database.NewProductAdapter(pgClient)
	scoring := services.NewScoringService(cfg.Scoring)

	var searchRepo repositories.ProductSearchRepository
	if tsClient, err := typesense.NewClient(&cfg.Typesense); err != nil {
		logger.Warn().Err(err).Msg("Typesense unavailable, collected products will not be indexed")
	} else {
		adapter := search.NewTypesenseAdapter(tsClient)
		if err := adapter.InitSchema(ctx); err != nil {
			logger.Warn().Err(err).Msg("failed to init Typesense schema")
		}
		searchRepo = adapter
	}

	workerClient := scrapeworker.NewClient(cfg.ScrapeWorker.BaseURL)
	provider := listings.NewWorkerProvider(workerClient, 0)

	for {
		collectOnce(ctx, logger, provider, products, searchRepo, scoring, keywords)

		if once || interval <= 0 {
			return
		}

		logger.Info().Dur("interval", interval).Msg("collection cycle complete")

		select {
		case <-ctx.Done():
			logger.Info().Msg("collector shutting down")
			return
		case <-time.After(interval):
		}
	}
}

func collectOnce(
	ctx context.Context,
	logger *zerolog.Logger,
	provider *listings.WorkerProvider,
	products repositories.ProductRepository,
	searchRepo repositories.ProductSearchRepository,
	scoring *services.ScoringService,
	keywords []string,
) {
	for _, keyword := range keywords {
		if ctx.Err() != nil {
			return
		}

		batch, err := provider.FetchListings(ctx, keyword)
		if err != nil {
			logger.Warn().Err(err).Str("keyword", keyword).Msg("failed to fetch listings")
			continue
		}
		if len(batch) == 0 {
			logger.Info().Str("keyword", keyword).Msg("no listings collected")
			continue
		}

		for _, product := range batch {
			product.InnovationScore = scoring.InnovationScore(product)
		}

		if err := products.Upsert(ctx, batch); err != nil {
			logger.Error().Err(err).Str("keyword", keyword).Msg("failed to upsert listings")
			continue
		}

		if searchRepo != nil {
			for _, product := range batch {
				if err := searchRepo.Index(ctx, product); err != nil {
					logger.Warn().Err(err).Str("url", product.URL).Msg("failed to index product")
				}
			}
		}

		logger.Info().Str("keyword", keyword).Int("count", len(batch)).Msg("listings collected")
	}
}
