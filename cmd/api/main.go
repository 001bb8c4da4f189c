package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"newspulse/internal/common/pagination"
	pgRepo "newspulse/internal/infra/adapter/persistence/postgres"
	"newspulse/internal/infra/db"
	"newspulse/internal/infra/sentiment"
	"newspulse/internal/infra/summarizer"
	"newspulse/internal/infra/upstream"
	"newspulse/internal/observability/logging"
	"newspulse/internal/observability/tracing"

	artUC "newspulse/internal/usecase/article"
	"newspulse/internal/usecase/feed"
	"newspulse/internal/usecase/ingest"

	hhttp "newspulse/internal/handler/http"
	harticle "newspulse/internal/handler/http/article"
	hnews "newspulse/internal/handler/http/news"
	"newspulse/internal/handler/http/requestid"
)

func main() {
	logger := initLogger()
	database := initDatabase(logger)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	version := getVersion()

	handler, dispatcher := setupServer(logger, database, version)
	defer dispatcher.Close()

	runServer(logger, handler, version)
}

// initLogger initializes the structured logger and installs it as the
// process default.
func initLogger() *slog.Logger {
	logger := logging.NewLogger()
	slog.SetDefault(logger)
	return logger
}

// initDatabase opens the database connection and runs migrations.
func initDatabase(logger *slog.Logger) *sql.DB {
	database := db.Open()
	if err := db.MigrateUp(database); err != nil {
		logger.Error("failed to migrate database", slog.Any("error", err))
		os.Exit(1)
	}
	return database
}

// getVersion returns the application version from environment or default.
func getVersion() string {
	version := os.Getenv("VERSION")
	if version == "" {
		version = "dev"
	}
	return version
}

// setupServer wires the services and returns the HTTP handler plus the
// ingestion dispatcher, which the caller must Close on shutdown.
func setupServer(logger *slog.Logger, database *sql.DB, version string) (http.Handler, *ingest.Dispatcher) {
	artRepo := pgRepo.NewArticleRepo(database)
	srcRepo := pgRepo.NewSourceRepo(database)
	catRepo := pgRepo.NewCategoryRepo(database)

	engine := ingest.NewService(artRepo, srcRepo, catRepo, sentiment.NewClassifier(), createSummarizer(logger))
	dispatcher := ingest.NewDispatcher(engine, getIngestQueueSize())

	upstreamCfg := upstream.LoadConfigFromEnv()
	if upstreamCfg.FallbackMode() {
		logger.Info("headlines client running in fallback mode, no upstream credential configured")
	} else {
		logger.Info("headlines client initialized",
			slog.String("base_url", upstreamCfg.BaseURL),
			slog.String("country", upstreamCfg.Country),
			slog.Int("page_size", upstreamCfg.PageSize))
	}
	feedSvc := feed.NewService(upstream.NewClient(upstreamCfg), dispatcher)

	artSvc := &artUC.Service{Repo: artRepo}

	paginationCfg := pagination.LoadFromEnv()

	mux := http.NewServeMux()
	harticle.Register(mux, artSvc, paginationCfg, logger)
	hnews.Register(mux, feedSvc, logger)

	// ヘルスチェックと計測エンドポイント
	mux.Handle("/health", &hhttp.HealthHandler{DB: database, Version: version})
	mux.Handle("/ready", &hhttp.ReadyHandler{DB: database})
	mux.Handle("/live", &hhttp.LiveHandler{})
	mux.Handle("/metrics", hhttp.MetricsHandler())

	return applyMiddleware(logger, mux), dispatcher
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

// getIngestQueueSize reads INGEST_QUEUE_SIZE, defaulting on missing or
// invalid values.
func getIngestQueueSize() int {
	raw := os.Getenv("INGEST_QUEUE_SIZE")
	if raw == "" {
		return ingest.DefaultQueueSize
	}
	size, err := strconv.Atoi(raw)
	if err != nil || size <= 0 {
		return ingest.DefaultQueueSize
	}
	return size
}

// applyMiddleware wraps the handler with the middleware chain.
// Order outermost to innermost: Request ID → Tracing → Rate Limit →
// Recovery → Logging → Body Limit → Metrics.
func applyMiddleware(logger *slog.Logger, handler http.Handler) http.Handler {
	// レート制限: 1分間に100リクエストまで
	rateLimiter := hhttp.NewRateLimiter(100, 1*time.Minute)

	chain := handler
	chain = hhttp.MetricsMiddleware(chain)
	chain = hhttp.LimitRequestBody(1 << 20)(chain) // 1MB limit
	chain = hhttp.Logging(logger)(chain)
	chain = hhttp.Recover(logger)(chain)
	chain = rateLimiter.Limit(chain)
	chain = tracing.Middleware(chain)
	chain = requestid.Middleware(chain)

	return chain
}

// runServer starts the HTTP server and handles graceful shutdown.
func runServer(logger *slog.Logger, handler http.Handler, version string) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srv := &http.Server{
		Addr:              ":8080",
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		logger.Info("server starting",
			slog.String("addr", ":8080"),
			slog.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	logger.Info("server stopped")
}
