package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/trendia-ai/trendia/internal/adapters/database"
	"github.com/trendia-ai/trendia/internal/application/services"
	"github.com/trendia-ai/trendia/internal/infrastructure/clients/postgres"
	"github.com/trendia-ai/trendia/internal/infrastructure/observability"
	"github.com/trendia-ai/trendia/pkg/config"
)

// learner consumes the feedback ledger and adjusts profile weights. It
// runs a single pass by default, or repeats when -interval is set.
func main() {
	var intervalFlag string
	flag.StringVar(&intervalFlag, "interval", "", "repeat interval for learning passes (e.g. 1h, 30m)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("failed to load configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	observability.InitLogger("trendia-learner", cfg.Environment)
	logger := observability.GetLogger()

	var interval time.Duration
	if intervalFlag != "" {
		interval, err = time.ParseDuration(intervalFlag)
		if err != nil || interval <= 0 {
			logger.Fatal().Str("interval", intervalFlag).Msg("invalid interval")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()

	productAdapter := database.NewProductAdapter(pgClient)
	profileAdapter := database.NewProfileAdapter(pgClient)
	feedbackAdapter := database.NewFeedbackAdapter(pgClient)

	scoring := services.NewScoringService(cfg.Scoring)
	weights := services.NewWeightService(profileAdapter)
	learning := services.NewLearningService(
		feedbackAdapter,
		productAdapter,
		weights,
		scoring,
		cfg.Learning,
	)

	for {
		report, err := learning.UpdateWeightsFromFeedback(ctx)
		if err != nil {
			logger.Error().Err(err).Msg("learning pass failed")
		} else {
			logger.Info().
				Int("processed", report.EventsProcessed).
				Int("skipped", report.EventsSkipped).
				Bool("ledger_cleared", report.LedgerCleared).
				Msg("learning pass complete")
		}

		if interval <= 0 {
			return
		}

		select {
		case <-ctx.Done():
			logger.Info().Msg("learner shutting down")
			return
		case <-time.After(interval):
		}
	}
}
