package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/helixml/listingllm/application/service"
	"github.com/helixml/listingllm/domain/content"
	"github.com/helixml/listingllm/infrastructure/enricher"
	"github.com/helixml/listingllm/infrastructure/metrics"
	"github.com/helixml/listingllm/infrastructure/persistence"
	"github.com/helixml/listingllm/infrastructure/provider"
	"github.com/helixml/listingllm/internal/config"
	"github.com/helixml/listingllm/internal/log"
)

func rewriteCmd() *cobra.Command {
	var (
		envFile     string
		limit       int
		offset      int
		metricsFile string
		sourceTable string
	)

	cmd := &cobra.Command{
		Use:   "rewrite",
		Short: "Enrich one batch of scraped listings",
		Long: `Enrich one batch of scraped listings.

Each listing in the batch gets a rewritten title, a description, a summary and
a rating with a review. A listing is saved only if all of its model calls
succeed; a failed listing is logged and skipped.

Configuration is loaded in the following order (later sources override earlier):
  1. Default values
  2. .env file (if --env-file specified or .env exists in current directory)
  3. Environment variables
  4. Command line flags

Environment variables:
  DATA_DIR                     Data directory (default: ~/.listingllm)
  DB_URL                       Database URL (default: sqlite:///{data_dir}/listings.db)
  LOG_LEVEL                    Log level: DEBUG, INFO, WARN, ERROR (default: INFO)
  LOG_FORMAT                   Log format: pretty, json (default: pretty)
  METRICS_FILE                 Write Prometheus metrics to this file after the batch
  BATCH_LIMIT                  Listings per batch (default: 10)
  BATCH_OFFSET                 Listings to skip (default: 0)

  MODEL_ENDPOINT_*             Generative model configuration
    PROVIDER                   gemini or openai (default: gemini)
    BASE_URL                   API root
    MODEL                      Model name (default: gemini-1.5-flash)
    API_KEY                    API key
    TIMEOUT                    Request timeout in seconds (default: 30)
    MAX_ATTEMPTS               Attempts per call (default: 5)
    INITIAL_DELAY              First backoff in seconds (default: 1.0)
    BACKOFF_FACTOR             Backoff multiplier (default: 2.0)

  MAX_TITLE_LENGTH             (default: 100)
  MAX_DESCRIPTION_LENGTH       (default: 200)
  MAX_SUMMARY_LENGTH           (default: 100)
  MAX_REVIEW_LENGTH            (default: 100)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(envFile)
			if err != nil {
				return err
			}

			var overrides []config.AppConfigOption
			if cmd.Flags().Changed("limit") {
				overrides = append(overrides, config.WithBatchLimit(limit))
			}
			if cmd.Flags().Changed("offset") {
				overrides = append(overrides, config.WithBatchOffset(offset))
			}
			if metricsFile != "" {
				overrides = append(overrides, config.WithMetricsFile(metricsFile))
			}

			return runRewrite(cmd.Context(), cfg.Apply(overrides...), sourceTable)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to .env file (default: .env in current directory)")
	cmd.Flags().IntVar(&limit, "limit", config.DefaultBatchLimit, "Number of listings to process")
	cmd.Flags().IntVar(&offset, "offset", config.DefaultBatchOffset, "Number of listings to skip")
	cmd.Flags().StringVar(&metricsFile, "metrics-file", "", "Write Prometheus metrics to this file after the batch")
	cmd.Flags().StringVar(&sourceTable, "source-table", persistence.DefaultSourceTable, "Table holding the scraped listings")

	return cmd
}

func runRewrite(ctx context.Context, cfg config.AppConfig, sourceTable string) error {
	logger := log.Configure(cfg)
	logger.Info("starting listingllm", "version", version)
	logger.Slog().LogAttrs(ctx, slog.LevelDebug, "configuration", cfg.LogAttrs()...)

	generator, err := provider.New(cfg.Endpoint(), logger.Slog())
	if err != nil {
		return err
	}

	db, err := openDatabase(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	if err := persistence.ValidateSchema(db); err != nil {
		return err
	}

	recorder := metrics.NewRecorder()
	limits := cfg.Limits()
	parser := content.NewParser(content.NewLimits(
		limits.Title(), limits.Description(), limits.Summary(), limits.Review(),
	))
	endpoint := cfg.Endpoint()

	client := enricher.NewModelClient(generator, parser,
		enricher.WithMaxAttempts(endpoint.MaxAttempts()),
		enricher.WithBackoff(endpoint.InitialDelay(), endpoint.BackoffFactor()),
		enricher.WithObserver(recorder),
		enricher.WithLogger(logger.Slog()),
	)

	rewriter := service.NewRewriter(
		persistence.NewPropertySource(db, persistence.WithSourceTable(sourceTable)),
		persistence.NewUnitOfWork(db),
		client,
		parser,
		service.WithMetrics(recorder),
		service.WithLogger(logger.Slog()),
	)

	_, runErr := rewriter.Run(ctx, cfg.BatchLimit(), cfg.BatchOffset())

	if path := cfg.MetricsFile(); path != "" {
		if err := recorder.WriteTextfile(path); err != nil {
			logger.Error("failed to write metrics", "path", path, "error", err)
		}
	}

	if runErr != nil {
		return fmt.Errorf("rewrite: %w", runErr)
	}
	return nil
}
