package main

import (
	"context"
	"crypto/tls"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/robfig/cron/v3"

	"newspulse/internal/handler/http/respond"
	pgRepo "newspulse/internal/infra/adapter/persistence/postgres"
	"newspulse/internal/infra/db"
	"newspulse/internal/infra/fetcher"
	"newspulse/internal/infra/sentiment"
	"newspulse/internal/infra/summarizer"
	"newspulse/internal/infra/upstream"
	workerPkg "newspulse/internal/infra/worker"
	"newspulse/internal/observability/logging"
	"newspulse/internal/usecase/ingest"
)

func main() {
	logger := initLogger()
	database := initDatabase(logger)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	workerMetrics := workerPkg.NewWorkerMetrics()
	workerConfig, err := workerPkg.LoadConfigFromEnv(logger, workerMetrics)
	if err != nil {
		logger.Error("failed to load worker configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("worker configuration loaded",
		slog.String("cron_schedule", workerConfig.CronSchedule),
		slog.String("timezone", workerConfig.Timezone),
		slog.Duration("crawl_timeout", workerConfig.CrawlTimeout),
		slog.Int("crawl_parallelism", workerConfig.CrawlParallelism),
		slog.Int("health_port", workerConfig.HealthPort),
		slog.String("sources_path", workerConfig.SourcesPath))

	sources, err := workerPkg.LoadSources(workerConfig.SourcesPath)
	if err != nil {
		logger.Error("failed to load sources", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("sources loaded",
		slog.Int("categories", len(sources.Categories)),
		slog.Int("feeds", sources.FeedCount()))

	startMetricsServer(ctx, logger)

	healthAddr := fmt.Sprintf(":%d", workerConfig.HealthPort)
	healthServer := workerPkg.NewHealthServer(healthAddr, logger)
	go func() {
		if err := healthServer.Start(ctx); err != nil && err != http.ErrServerClosed {
			logger.Error("health server failed", slog.Any("error", err))
		}
	}()

	crawler := setupCrawler(logger, database, workerConfig, sources)

	startCronWorker(logger, crawler, workerConfig, workerMetrics, healthServer)
}

// initLogger initializes the structured logger and installs it as the
// process default.
func initLogger() *slog.Logger {
	logger := logging.WithComponent(logging.NewLogger(), "worker")
	slog.SetDefault(logger)
	return logger
}

// initDatabase opens the database connection and waits for migrations to
// complete. The API service owns the migrations; the worker only probes.
func initDatabase(logger *slog.Logger) *sql.DB {
	database := db.Open()
	waitForMigrations(logger, database)
	return database
}

func waitForMigrations(logger *slog.Logger, db *sql.DB) {
	const probe = "SELECT 1 FROM sources LIMIT 1"
	for i := 0; i < 10; i++ {
		if _, err := db.Exec(probe); err == nil {
			return
		}
		logger.Info("waiting for migrations, retrying in 3s", slog.Int("attempt", i+1))
		time.Sleep(3 * time.Second)
	}
	logger.Error("migrations did not complete in time")
	os.Exit(1)
}

// setupCrawler wires the crawl pipeline: RSS fetching, optional content
// enhancement, and the ingestion engine.
func setupCrawler(logger *slog.Logger, database *sql.DB, cfg *workerPkg.WorkerConfig, sources *workerPkg.SourcesConfig) *workerPkg.Crawler {
	artRepo := pgRepo.NewArticleRepo(database)
	srcRepo := pgRepo.NewSourceRepo(database)
	catRepo := pgRepo.NewCategoryRepo(database)

	engine := ingest.NewService(artRepo, srcRepo, catRepo, sentiment.NewClassifier(), createSummarizer(logger))

	feedFetcher := upstream.NewRSSFetcher(createHTTPClient())

	upstreamCfg := upstream.LoadConfigFromEnv()
	if upstreamCfg.FallbackMode() {
		logger.Info("headlines client running in fallback mode, no upstream credential configured")
	}

	return &workerPkg.Crawler{
		Fetcher:     feedFetcher,
		Headlines:   upstream.NewClient(upstreamCfg),
		Enhancer:    createEnhancer(logger),
		Ingester:    engine,
		Sources:     sources,
		Parallelism: cfg.CrawlParallelism,
		Logger:      logger,
	}
}

// createEnhancer builds the content enhancer, or nil when content
// fetching is disabled.
func createEnhancer(logger *slog.Logger) workerPkg.ContentEnhancer {
	contentCfg, err := fetcher.LoadConfigFromEnv()
	if err != nil {
		logger.Warn("content fetching disabled due to configuration error", slog.Any("error", err))
		return nil
	}
	if !contentCfg.Enabled {
		logger.Info("content fetching disabled")
		return nil
	}

	logger.Info("content fetching enabled",
		slog.Int("threshold", contentCfg.Threshold),
		slog.Int("parallelism", contentCfg.Parallelism),
		slog.Duration("timeout", contentCfg.Timeout))
	return fetcher.NewEnhancer(fetcher.NewReadabilityFetcher(contentCfg), contentCfg)
}

// createSummarizer selects the summarizer implementation from the
// SUMMARIZER_TYPE environment variable.
func createSummarizer(logger *slog.Logger) ingest.Summarizer {
	summarizerType := os.Getenv("SUMMARIZER_TYPE")
	if summarizerType == "" {
		summarizerType = "extractive"
	}

	switch summarizerType {
	case "extractive":
		logger.Info("using extractive summarizer", slog.String("type", "extractive"))
		return summarizer.NewExtractive(summarizer.DefaultSentenceCount)
	case "claude":
		apiKey := os.Getenv("ANTHROPIC_API_KEY")
		if apiKey == "" {
			logger.Error("ANTHROPIC_API_KEY is required when SUMMARIZER_TYPE=claude")
			os.Exit(1)
		}
		logger.Info("using Claude API for summarization", slog.String("type", "claude"))
		return summarizer.NewClaude(apiKey)
	case "openai":
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			logger.Error("OPENAI_API_KEY is required when SUMMARIZER_TYPE=openai")
			os.Exit(1)
		}
		cfg, err := summarizer.LoadOpenAIConfig()
		if err != nil {
			logger.Error("failed to load OpenAI configuration", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("using OpenAI API for summarization", slog.String("type", "openai"))
		return summarizer.NewOpenAI(apiKey, cfg)
	case "noop":
		logger.Info("summarization disabled", slog.String("type", "noop"))
		return summarizer.NewNoOp()
	default:
		logger.Error("invalid SUMMARIZER_TYPE",
			slog.String("type", summarizerType),
			slog.String("expected", "extractive, claude, openai or noop"))
		os.Exit(1)
		return nil
	}
}

// createHTTPClient creates the HTTP client used for feed fetching.
// TLS 1.2+ is enforced.
func createHTTPClient() *http.Client {
	return &http.Client{
		Timeout: 30 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
		},
	}
}

// startCronWorker starts the cron scheduler and runs crawls on schedule.
func startCronWorker(logger *slog.Logger, crawler *workerPkg.Crawler, cfg *workerPkg.WorkerConfig, metrics *workerPkg.WorkerMetrics, healthServer *workerPkg.HealthServer) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Error("invalid timezone, using UTC", slog.String("timezone", cfg.Timezone), slog.Any("error", err))
		loc = time.UTC
	}
	c := cron.New(cron.WithLocation(loc))

	_, err = c.AddFunc(cfg.CronSchedule, func() {
		runCrawlJob(logger, crawler, cfg, metrics)
	})
	if err != nil {
		logger.Error("failed to add cron job", slog.Any("error", err))
		os.Exit(1)
	}
	c.Start()

	healthServer.SetReady(true)
	logger.Info("worker started", slog.String("schedule", cfg.CronSchedule), slog.String("timezone", cfg.Timezone))
	select {}
}

// runCrawlJob executes a single crawl run with timeout and error handling.
func runCrawlJob(logger *slog.Logger, crawler *workerPkg.Crawler, cfg *workerPkg.WorkerConfig, metrics *workerPkg.WorkerMetrics) {
	startTime := time.Now()
	logger.Info("crawl started")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.CrawlTimeout)
	defer cancel()

	stats, err := crawler.Run(ctx)
	if err != nil {
		// 機密情報をマスクしてログ出力
		logger.Error("crawl failed", slog.String("error", respond.SanitizeError(err)))
		metrics.RecordRun("failure")
		metrics.RecordRunDuration(time.Since(startTime).Seconds())
		return
	}

	metrics.RecordRun("success")
	metrics.RecordRunDuration(time.Since(startTime).Seconds())
	metrics.RecordFeedsProcessed(stats.Feeds - stats.FeedErrors)
	metrics.RecordLastSuccess()

	logger.Info("crawl completed",
		slog.Int("feeds", stats.Feeds),
		slog.Int("feed_errors", stats.FeedErrors),
		slog.Int("headlines", stats.Headlines),
		slog.Int("headline_errors", stats.HeadlineErrors),
		slog.Int("articles", stats.Articles),
		slog.Duration("duration", stats.Duration),
	)
}
