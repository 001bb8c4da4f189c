package fetcher

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"newspulse/internal/observability/metrics"
	"newspulse/internal/usecase/ingest"
	"newspulse/internal/utils/text"
)

// ContentFetcher fetches the full body text for an article URL.
type ContentFetcher interface {
	FetchContent(ctx context.Context, url string) (string, error)
}

// Enhancer upgrades short feed content to full article bodies before
// ingestion. Articles whose content already meets the threshold are left
// untouched, and any fetch failure keeps the feed content: enhancement is
// strictly best-effort.
type Enhancer struct {
	fetcher ContentFetcher
	config  ContentFetchConfig
}

// NewEnhancer creates an Enhancer using the given fetcher.
func NewEnhancer(fetcher ContentFetcher, config ContentFetchConfig) *Enhancer {
	return &Enhancer{
		fetcher: fetcher,
		config:  config,
	}
}

// Enhance replaces each article's content with the fetched full body where
// the feed content falls below the threshold. Fetches run concurrently up
// to the configured parallelism. The input slice is modified in place and
// returned; the only error is context cancellation.
func (e *Enhancer) Enhance(ctx context.Context, articles []ingest.RawArticle) ([]ingest.RawArticle, error) {
	if !e.config.Enabled {
		return articles, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.config.Parallelism)

	for i := range articles {
		if articles[i].URL == "" {
			continue
		}
		if text.CountRunes(articles[i].Content) >= e.config.Threshold {
			metrics.RecordContentFetchSkipped()
			continue
		}

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			start := time.Now()
			content, err := e.fetcher.FetchContent(ctx, articles[i].URL)
			if err != nil {
				metrics.RecordContentFetchFailed(time.Since(start))
				slog.Debug("content fetch failed, keeping feed content",
					slog.String("url", articles[i].URL),
					slog.String("error", err.Error()))
				return nil
			}

			metrics.RecordContentFetchSuccess(time.Since(start), len(content))

			// 取得本文が元より短ければ採用しない
			if len(content) > len(articles[i].Content) {
				articles[i].Content = content
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return articles, err
	}

	return articles, nil
}
