package worker

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"newspulse/internal/usecase/feed"
	"newspulse/internal/usecase/ingest"
)

// FeedFetcher retrieves the articles of one RSS feed. Satisfied by
// *upstream.RSSFetcher.
type FeedFetcher interface {
	Fetch(ctx context.Context, feedURL string) ([]ingest.RawArticle, error)
}

// ContentEnhancer fills in thin article bodies before ingestion. Satisfied
// by *fetcher.Enhancer.
type ContentEnhancer interface {
	Enhance(ctx context.Context, articles []ingest.RawArticle) ([]ingest.RawArticle, error)
}

// Crawler runs one crawl pass over the configured sources: a page of
// headlines per category when a headlines fetcher is set, then every RSS
// feed, each batch enhanced and ingested under its category.
type Crawler struct {
	Fetcher     FeedFetcher
	Headlines   feed.Fetcher
	Enhancer    ContentEnhancer
	Ingester    ingest.Engine
	Sources     *SourcesConfig
	Parallelism int
	Logger      *slog.Logger
}

// CrawlStats summarizes one crawl run.
type CrawlStats struct {
	Feeds          int
	FeedErrors     int
	Headlines      int
	HeadlineErrors int
	Articles       int
	Duration       time.Duration
}

// Run crawls every configured feed. Feed failures are counted and logged
// but do not abort the run; only context cancellation stops it early.
func (c *Crawler) Run(ctx context.Context) (*CrawlStats, error) {
	start := time.Now()
	stats := &CrawlStats{}

	if c.Headlines != nil {
		if err := c.runHeadlines(ctx, stats); err != nil {
			stats.Duration = time.Since(start)
			return stats, err
		}
	}

	type feedJob struct {
		category string
		url      string
	}

	var jobs []feedJob
	for _, cat := range c.Sources.Categories {
		for _, feedURL := range cat.Feeds {
			jobs = append(jobs, feedJob{category: cat.Name, url: feedURL})
		}
	}
	stats.Feeds = len(jobs)

	type feedResult struct {
		category string
		url      string
		articles []ingest.RawArticle
		err      error
	}

	results := make([]feedResult, len(jobs))

	parallelism := c.Parallelism
	if parallelism < 1 {
		parallelism = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallelism)

	for i, job := range jobs {
		g.Go(func() error {
			articles, err := c.Fetcher.Fetch(gctx, job.url)
			results[i] = feedResult{
				category: job.category,
				url:      job.url,
				articles: articles,
				err:      err,
			}
			// フィード単体の失敗でクロール全体は止めない
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return stats, err
	}
	if err := ctx.Err(); err != nil {
		stats.Duration = time.Since(start)
		return stats, err
	}

	// 取り込みはカテゴリ順に直列で行い、DBへの書き込みを穏やかに保つ
	for _, res := range results {
		if res.err != nil {
			stats.FeedErrors++
			c.Logger.Warn("feed crawl failed",
				slog.String("feed_url", res.url),
				slog.String("category", res.category),
				slog.Any("error", res.err))
			continue
		}
		if len(res.articles) == 0 {
			continue
		}

		articles := res.articles
		if c.Enhancer != nil {
			enhanced, err := c.Enhancer.Enhance(ctx, articles)
			if err != nil {
				stats.Duration = time.Since(start)
				return stats, err
			}
			articles = enhanced
		}

		stats.Articles += len(articles)
		c.Ingester.Ingest(ctx, articles, res.category)
	}

	stats.Duration = time.Since(start)
	return stats, nil
}

// runHeadlines ingests one page of headlines per configured category.
// Headline fetch failures are counted and logged but do not abort the run.
func (c *Crawler) runHeadlines(ctx context.Context, stats *CrawlStats) error {
	for _, cat := range c.Sources.Categories {
		if err := ctx.Err(); err != nil {
			return err
		}

		result, err := c.Headlines.FetchHeadlines(ctx, cat.Name, 1)
		if err != nil {
			stats.HeadlineErrors++
			c.Logger.Warn("headlines fetch failed",
				slog.String("category", cat.Name),
				slog.Any("error", err))
			continue
		}
		if len(result.Articles) == 0 {
			continue
		}

		stats.Headlines += len(result.Articles)
		stats.Articles += len(result.Articles)
		c.Ingester.Ingest(ctx, result.Articles, cat.Name)
	}
	return nil
}
