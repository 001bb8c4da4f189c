// Package feed implements the ingestion orchestrator: it serves feed
// requests synchronously and hands the fetched batch to the background
// ingestion queue so the caller never waits on persistence.
package feed

import (
	"context"
	"fmt"
	"log/slog"

	"newspulse/internal/domain/entity"
	"newspulse/internal/usecase/ingest"
)

// Result is one page of headline articles in the upstream provider's shape.
type Result struct {
	Status       string
	TotalResults int
	Articles     []ingest.RawArticle
}

// Fetcher retrieves a page of headline articles for a category.
// The production implementation substitutes a fixed fallback dataset on any
// upstream failure, so it only returns an error when misused.
type Fetcher interface {
	FetchHeadlines(ctx context.Context, category string, page int) (*Result, error)
}

// Enqueuer accepts background ingestion jobs. Satisfied by *ingest.Dispatcher.
type Enqueuer interface {
	Enqueue(job ingest.Job) bool
}

// Service is the ingestion orchestrator.
type Service struct {
	Fetcher Fetcher
	Queue   Enqueuer
}

// NewService creates the orchestrator with its dependencies.
func NewService(fetcher Fetcher, queue Enqueuer) *Service {
	return &Service{Fetcher: fetcher, Queue: queue}
}

// HandleFetch fetches a page of headlines and returns it to the caller
// immediately. When the feed contains at least one article the batch is
// enqueued for background ingestion; its outcome is logged, never awaited,
// and never surfaced to the caller.
func (s *Service) HandleFetch(ctx context.Context, category string, page int) (*Result, error) {
	if category == "" {
		category = entity.DefaultCategory
	}
	if page < 1 {
		page = 1
	}

	result, err := s.Fetcher.FetchHeadlines(ctx, category, page)
	if err != nil {
		return nil, fmt.Errorf("fetch headlines: %w", err)
	}

	if len(result.Articles) > 0 {
		if !s.Queue.Enqueue(ingest.Job{Articles: result.Articles, Category: category}) {
			// 取り込みはベストエフォート。破棄してもレスポンスには影響しない
			slog.Warn("ingest enqueue rejected",
				slog.String("category", category),
				slog.Int("articles", len(result.Articles)))
		}
	}

	return result, nil
}
