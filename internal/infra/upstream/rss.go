package upstream

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
	"github.com/sony/gobreaker"

	"newspulse/internal/observability/metrics"
	"newspulse/internal/resilience/circuitbreaker"
	"newspulse/internal/resilience/retry"
	"newspulse/internal/usecase/ingest"
)

// RSSFetcher retrieves and parses RSS/Atom feeds using gofeed. Unlike the
// headlines client it has no fallback dataset: the worker's scheduled
// crawls retry with backoff and report failures per feed instead.
type RSSFetcher struct {
	client         *http.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
}

// NewRSSFetcher creates an RSSFetcher with the given HTTP client.
func NewRSSFetcher(client *http.Client) *RSSFetcher {
	return &RSSFetcher{
		client:         client,
		circuitBreaker: circuitbreaker.New(circuitbreaker.FeedFetchConfig()),
		retryConfig:    retry.FeedFetchConfig(),
	}
}

// Fetch retrieves and parses the feed at feedURL, returning its entries as
// raw articles ready for ingestion. The feed title becomes the source name
// for every entry.
func (f *RSSFetcher) Fetch(ctx context.Context, feedURL string) ([]ingest.RawArticle, error) {
	var articles []ingest.RawArticle
	start := time.Now()

	retryErr := retry.WithBackoff(ctx, f.retryConfig, func() error {
		cbResult, err := f.circuitBreaker.Execute(func() (interface{}, error) {
			return f.doFetch(ctx, feedURL)
		})

		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("feed fetch circuit breaker open, request rejected",
					slog.String("service", "feed-fetch"),
					slog.String("url", feedURL),
					slog.String("state", f.circuitBreaker.State().String()))
				return err
			}
			return err
		}

		articles = cbResult.([]ingest.RawArticle)
		return nil
	})

	if retryErr != nil {
		metrics.RecordFeedCrawlError(feedURL, "fetch")
		return nil, retryErr
	}

	metrics.RecordFeedCrawl(feedURL, time.Since(start))
	return articles, nil
}

// doFetch performs the actual feed fetch without retry or circuit breaker.
func (f *RSSFetcher) doFetch(ctx context.Context, feedURL string) ([]ingest.RawArticle, error) {
	fp := gofeed.NewParser()
	fp.UserAgent = "NewsPulseBot"
	fp.Client = f.client

	parsed, err := fp.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, err
	}

	articles := make([]ingest.RawArticle, 0, len(parsed.Items))
	for _, it := range parsed.Items {
		var publishedAt time.Time
		if it.PublishedParsed != nil {
			publishedAt = *it.PublishedParsed
		}

		// Content優先、なければDescriptionを使用
		content := it.Content
		if content == "" {
			content = it.Description
		}

		author := ""
		if len(it.Authors) > 0 {
			author = it.Authors[0].Name
		}

		imageURL := ""
		if it.Image != nil {
			imageURL = it.Image.URL
		}

		articles = append(articles, ingest.RawArticle{
			SourceName:  parsed.Title,
			Author:      author,
			Title:       it.Title,
			Description: stripHTML(it.Description),
			Content:     stripHTML(content),
			URL:         it.Link,
			ImageURL:    imageURL,
			PublishedAt: publishedAt,
		})
	}

	return articles, nil
}

// stripHTML reduces feed markup to plain text so the classifier and
// summarizer see prose, not tags. Input without markup passes through
// unchanged apart from whitespace trimming.
func stripHTML(s string) string {
	if !strings.Contains(s, "<") {
		return strings.TrimSpace(s)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return strings.TrimSpace(s)
	}

	return strings.TrimSpace(doc.Text())
}
