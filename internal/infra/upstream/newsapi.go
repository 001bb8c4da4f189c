package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"newspulse/internal/observability/metrics"
	"newspulse/internal/resilience/circuitbreaker"
	"newspulse/internal/usecase/feed"
	"newspulse/internal/usecase/ingest"
)

// maxResponseBytes caps how much of an upstream response body is read.
const maxResponseBytes = 4 << 20

// Client fetches headline pages from a NewsAPI-compatible provider.
// It implements feed.Fetcher.
//
// Failure handling is a single immediate substitution: one attempt against
// the upstream, and on any transport error, non-success status, or open
// circuit the fixed fallback dataset is returned instead. No retries, no
// backoff, and no error ever crosses the boundary.
type Client struct {
	cfg            Config
	httpClient     *http.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	limiter        *rate.Limiter
}

// NewClient creates a headlines client from the given configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		cfg:            cfg,
		httpClient:     &http.Client{Timeout: cfg.Timeout},
		circuitBreaker: circuitbreaker.New(circuitbreaker.HeadlinesAPIConfig()),
		limiter:        rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
	}
}

// FetchHeadlines returns one page of headlines for the category. The error
// result is always nil; it exists to satisfy feed.Fetcher.
func (c *Client) FetchHeadlines(ctx context.Context, category string, page int) (*feed.Result, error) {
	// 資格情報がなければネットワークに触れずフォールバックを返す
	if c.cfg.FallbackMode() {
		metrics.RecordHeadlinesFetch("fallback", category)
		return FallbackResult(), nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		slog.Warn("headlines rate limiter wait aborted, serving fallback dataset",
			slog.String("category", category),
			slog.String("error", err.Error()))
		metrics.RecordHeadlinesFetch("fallback", category)
		return FallbackResult(), nil
	}

	cbResult, err := c.circuitBreaker.Execute(func() (interface{}, error) {
		return c.doFetch(ctx, category, page)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) {
			slog.Warn("headlines circuit breaker open, serving fallback dataset",
				slog.String("service", "headlines-api"),
				slog.String("category", category),
				slog.String("state", c.circuitBreaker.State().String()))
		} else {
			slog.Warn("headlines fetch failed, serving fallback dataset",
				slog.String("category", category),
				slog.Int("page", page),
				slog.String("error", err.Error()))
		}
		metrics.RecordHeadlinesFetch("fallback", category)
		return FallbackResult(), nil
	}

	metrics.RecordHeadlinesFetch("upstream", category)
	return cbResult.(*feed.Result), nil
}

// doFetch performs one attempt against the upstream top-headlines endpoint.
func (c *Client) doFetch(ctx context.Context, category string, page int) (*feed.Result, error) {
	endpoint := c.cfg.BaseURL + "/top-headlines"

	params := url.Values{}
	params.Set("country", c.cfg.Country)
	params.Set("category", category)
	params.Set("page", strconv.Itoa(page))
	params.Set("pageSize", strconv.Itoa(c.cfg.PageSize))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build headlines request: %w", err)
	}
	req.Header.Set("X-Api-Key", c.cfg.APIKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("headlines request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read headlines response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("headlines request: unexpected status %d", resp.StatusCode)
	}

	var decoded headlinesResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("decode headlines response: %w", err)
	}
	if decoded.Status != "ok" {
		return nil, fmt.Errorf("headlines response status %q: %s", decoded.Status, decoded.Message)
	}

	return decoded.toResult(), nil
}

// headlinesResponse mirrors the upstream provider's JSON schema.
type headlinesResponse struct {
	Status       string            `json:"status"`
	TotalResults int               `json:"totalResults"`
	Articles     []headlineArticle `json:"articles"`

	// Populated on error responses only.
	Code    string `json:"code"`
	Message string `json:"message"`
}

type headlineArticle struct {
	Source struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"source"`
	Author      string `json:"author"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	URLToImage  string `json:"urlToImage"`
	PublishedAt string `json:"publishedAt"`
	Content     string `json:"content"`
}

func (r *headlinesResponse) toResult() *feed.Result {
	articles := make([]ingest.RawArticle, 0, len(r.Articles))
	for _, a := range r.Articles {
		// タイムスタンプが壊れていてもゼロ値で取り込む
		publishedAt, _ := time.Parse(time.RFC3339, a.PublishedAt)

		articles = append(articles, ingest.RawArticle{
			SourceName:  a.Source.Name,
			Author:      a.Author,
			Title:       a.Title,
			Description: a.Description,
			Content:     a.Content,
			URL:         a.URL,
			ImageURL:    a.URLToImage,
			PublishedAt: publishedAt,
		})
	}

	return &feed.Result{
		Status:       r.Status,
		TotalResults: r.TotalResults,
		Articles:     articles,
	}
}
