package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/trendia-ai/trendia/internal/adapters/cache"
	"github.com/trendia-ai/trendia/internal/adapters/database"
	"github.com/trendia-ai/trendia/internal/adapters/providers/generation"
	"github.com/trendia-ai/trendia/internal/adapters/search"
	"github.com/trendia-ai/trendia/internal/api/handlers"
	"github.com/trendia-ai/trendia/internal/api/middleware"
	"github.com/trendia-ai/trendia/internal/api/routes"
	"github.com/trendia-ai/trendia/internal/application/services"
	"github.com/trendia-ai/trendia/internal/domain/providers"
	"github.com/trendia-ai/trendia/internal/domain/repositories"
	"github.com/trendia-ai/trendia/internal/infrastructure/clients/gemini"
	"github.com/trendia-ai/trendia/internal/infrastructure/clients/postgres"
	"github.com/trendia-ai/trendia/internal/infrastructure/clients/redis"
	"github.com/trendia-ai/trendia/internal/infrastructure/clients/typesense"
	"github.com/trendia-ai/trendia/internal/infrastructure/observability"
	"github.com/trendia-ai/trendia/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Environment)
	logger := observability.GetLogger()

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	var shutdown func(context.Context) error
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err = observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			logger.Warn().Err(err).Msg("failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					logger.Error().Err(err).Msg("error shutting down OpenTelemetry")
				}
			}()
			logger.Info().Msg("OpenTelemetry initialized")
		}
	}

	// Initialize metrics
	metrics, err := observability.InitMetrics()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize metrics")
	}

	// Initialize database client
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()
	logger.Info().Msg("PostgreSQL client initialized")

	// Initialize Redis client. The app works without caching.
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to initialize Redis client, continuing without cache")
		redisClient = nil
	} else {
		defer redisClient.Close()
		logger.Info().Msg("Redis client initialized")
	}

	// Initialize Typesense client. The app falls back to corpus scans
	// without it.
	typesenseClient, err := typesense.NewClient(&cfg.Typesense)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to initialize Typesense client, continuing without search index")
		typesenseClient = nil
	} else {
		logger.Info().Msg("Typesense client initialized")
	}

	// Initialize adapters
	productAdapter := database.NewProductAdapter(pgClient)
	profileAdapter := database.NewProfileAdapter(pgClient)
	feedbackAdapter := database.NewFeedbackAdapter(pgClient)
	historyAdapter := database.NewSearchHistoryAdapter(pgClient)
	favoriteAdapter := database.NewFavoriteAdapter(pgClient)

	var cacheProvider providers.CacheProvider
	if redisClient != nil {
		cacheProvider = cache.NewRedisAdapter(redisClient)
	}

	var searchRepo repositories.ProductSearchRepository
	if typesenseClient != nil {
		adapter := search.NewTypesenseAdapter(typesenseClient)
		if err := adapter.InitSchema(ctx); err != nil {
			logger.Warn().Err(err).Msg("failed to init Typesense schema")
		}
		searchRepo = adapter
	}

	// Initialize generation provider
	var geminiClient *gemini.Client
	if cfg.Gemini.APIKey == "" {
		logger.Warn().Msg("GEMINI_API_KEY is not set; using mock generation provider")
	} else {
		geminiClient, err = gemini.NewClient(&cfg.Gemini)
		if err != nil {
			logger.Warn().Err(err).Msg("failed to initialize Gemini client; using mock generation provider")
			geminiClient = nil
		}
	}
	generationProvider := generation.NewGenerationProvider(generation.ProviderConfig{
		GeminiClient:      geminiClient,
		AllowMockFallback: cfg.Environment == "development",
	})

	// Initialize services
	scoringService := services.NewScoringService(cfg.Scoring)
	rankingService := services.NewRankingService(scoringService, cfg.Ranking)
	weightService := services.NewWeightService(profileAdapter)
	learningService := services.NewLearningService(
		feedbackAdapter,
		productAdapter,
		weightService,
		scoringService,
		cfg.Learning,
	)
	discoveryService := services.NewDiscoveryService(
		generationProvider,
		productAdapter,
		searchRepo,
		historyAdapter,
		feedbackAdapter,
		weightService,
		rankingService,
		scoringService,
		learningService,
		cacheProvider,
	)
	historyService := services.NewSearchHistoryService(historyAdapter)
	favoriteService := services.NewFavoriteService(favoriteAdapter)

	// Initialize handlers
	ideaHandler := handlers.NewIdeaHandler(discoveryService)
	feedbackHandler := handlers.NewFeedbackHandler(discoveryService, cacheProvider)
	profileHandler := handlers.NewProfileHandler(weightService, cfg.Learning)
	learningHandler := handlers.NewLearningHandler(discoveryService)
	historyHandler := handlers.NewHistoryHandler(historyService)
	favoriteHandler := handlers.NewFavoriteHandler(favoriteService)

	// Initialize cache middleware
	var cacheMiddleware *middleware.CacheMiddleware
	if cacheProvider != nil {
		cacheMiddleware = middleware.NewCacheMiddleware(cacheProvider, metrics)
		logger.Info().Msg("cache middleware initialized")
	}

	// Set up router
	router := routes.NewRouter(
		ideaHandler,
		feedbackHandler,
		profileHandler,
		learningHandler,
		historyHandler,
		favoriteHandler,
		cacheMiddleware,
		metrics,
	)
	handler := router.SetupRoutes()

	// Create HTTP server
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info().Str("addr", serverAddr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("server shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("error during server shutdown")
	}

	logger.Info().Msg("server stopped")
}
