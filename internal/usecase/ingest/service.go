// Package ingest implements the persistence and enrichment engine of the
// pipeline. It normalizes raw feed articles against existing Source and
// Category rows, deduplicates by canonical URL, classifies and summarizes
// each new article, and writes the rows plus category links.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"newspulse/internal/domain/entity"
	"newspulse/internal/observability/metrics"
	"newspulse/internal/repository"
)

// RawArticle is one article as delivered by a feed, before enrichment.
type RawArticle struct {
	SourceName  string
	Author      string
	Title       string
	Description string
	Content     string
	URL         string
	ImageURL    string
	PublishedAt time.Time
}

// Classifier assigns a sentiment label to free text.
// A non-nil error reports that scoring failed; callers decide the fallback.
type Classifier interface {
	Classify(ctx context.Context, text string) (entity.Sentiment, error)
}

// Summarizer produces a condensed version of an article's text.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// Stats contains counts for one ingestion batch.
type Stats struct {
	Articles         int
	Inserted         int
	Duplicated       int
	Invalid          int
	ClassifyFallback int
	SummarizeErrors  int
	Duration         time.Duration
}

// Service is the persistence/upsert engine.
//
// Batches are deliberately not wrapped in a transaction: each article's
// find-or-create/insert sequence is its own unit of work, and rows written
// before a failure stay written. Partial progress over batch atomicity.
type Service struct {
	ArticleRepo  repository.ArticleRepository
	SourceRepo   repository.SourceRepository
	CategoryRepo repository.CategoryRepository
	Classifier   Classifier
	Summarizer   Summarizer
}

// NewService creates the ingestion engine with its dependencies.
func NewService(
	articleRepo repository.ArticleRepository,
	sourceRepo repository.SourceRepository,
	categoryRepo repository.CategoryRepository,
	classifier Classifier,
	summarizer Summarizer,
) *Service {
	return &Service{
		ArticleRepo:  articleRepo,
		SourceRepo:   sourceRepo,
		CategoryRepo: categoryRepo,
		Classifier:   classifier,
		Summarizer:   summarizer,
	}
}

// Ingest persists a batch of raw articles under the given category.
// Articles whose URL is already stored are skipped, as are articles that
// fail validation. Returns true when the batch ran to completion, false when
// it was aborted by an unexpected error; rows written before the abort
// remain written.
//
// Re-running Ingest with an identical batch is a no-op for already-seen URLs.
func (s *Service) Ingest(ctx context.Context, articles []RawArticle, categoryName string) bool {
	logger := slog.Default()
	start := time.Now()

	if categoryName == "" {
		categoryName = entity.DefaultCategory
	}

	stats := &Stats{Articles: len(articles)}

	category, err := s.CategoryRepo.FindOrCreate(ctx, categoryName)
	if err != nil {
		logger.Error("find or create category failed",
			slog.String("category", categoryName),
			slog.Any("error", err))
		return false
	}

	// 既存URLを1クエリでまとめて引き、記事ごとの存在チェックのN+1を避ける。
	// 失敗時はknown=nilとし、記事ごとの個別チェックにフォールバックする
	var known map[string]bool
	if len(articles) > 0 {
		urls := make([]string, 0, len(articles))
		for _, raw := range articles {
			urls = append(urls, raw.URL)
		}
		known, err = s.ArticleRepo.ExistsByURLBatch(ctx, urls)
		if err != nil {
			logger.Warn("batch url check failed, falling back to per-article checks",
				slog.String("category", categoryName),
				slog.Any("error", err))
			known = nil
		}
	}

	// 記事はバッチ内の入力順で逐次処理する。同一バッチ内のSource/Categoryの
	// find-or-create競合を避けるため並列化しない。
	for _, raw := range articles {
		if err := s.ingestOne(ctx, raw, category, known, stats); err != nil {
			if errors.Is(err, entity.ErrValidationFailed) {
				// 永続化できない不正な記事はスキップし、バッチは継続する
				stats.Invalid++
				logger.Warn("skipping invalid article",
					slog.String("url", raw.URL),
					slog.String("title", raw.Title),
					slog.Any("error", err))
				continue
			}
			stats.Duration = time.Since(start)
			logger.Error("ingest batch aborted",
				slog.String("category", categoryName),
				slog.Int("articles", stats.Articles),
				slog.Int("inserted", stats.Inserted),
				slog.Int("duplicated", stats.Duplicated),
				slog.Any("error", err))
			metrics.RecordIngestBatch(categoryName, stats.Duration)
			return false
		}
	}

	stats.Duration = time.Since(start)
	metrics.RecordIngestBatch(categoryName, stats.Duration)

	logger.Info("ingest batch completed",
		slog.String("category", categoryName),
		slog.Int("articles", stats.Articles),
		slog.Int("inserted", stats.Inserted),
		slog.Int("duplicated", stats.Duplicated),
		slog.Int("invalid", stats.Invalid),
		slog.Int("classify_fallbacks", stats.ClassifyFallback),
		slog.Int("summarize_errors", stats.SummarizeErrors),
		slog.Duration("duration", stats.Duration))

	return true
}

// ingestOne processes a single raw article: validation, source find-or-create,
// URL dedup, concurrent classify+summarize, insert, category link.
//
// known is the batch-wide set of already-stored URLs; when nil each URL is
// checked individually against the repository.
func (s *Service) ingestOne(ctx context.Context, raw RawArticle, category *entity.Category, known map[string]bool, stats *Stats) error {
	logger := slog.Default()

	if err := entity.ValidateURL(raw.URL); err != nil {
		return fmt.Errorf("validate article url: %w", err)
	}

	var sourceID *int64
	if raw.SourceName != "" {
		src := &entity.Source{
			Name:     raw.SourceName,
			Category: category.Name,
			Language: entity.DefaultSourceLanguage,
			Country:  entity.DefaultSourceCountry,
		}
		if err := src.Validate(); err != nil {
			return fmt.Errorf("validate source %q: %w", raw.SourceName, err)
		}
		created, err := s.SourceRepo.FindOrCreate(ctx, src)
		if err != nil {
			return fmt.Errorf("find or create source %q: %w", raw.SourceName, err)
		}
		sourceID = &created.ID
	}

	exists := known[raw.URL]
	if known == nil {
		var err error
		exists, err = s.ArticleRepo.ExistsByURL(ctx, raw.URL)
		if err != nil {
			return fmt.Errorf("check article url: %w", err)
		}
	}
	if exists {
		// 既に存在するURLはスキップ
		stats.Duplicated++
		metrics.RecordArticleDuplicated(category.Name)
		return nil
	}

	art := &entity.Article{
		SourceID:    sourceID,
		Title:       raw.Title,
		Description: raw.Description,
		Content:     raw.Content,
		URL:         raw.URL,
		ImageURL:    raw.ImageURL,
		PublishedAt: raw.PublishedAt,
	}
	if art.PublishedAt.IsZero() {
		art.PublishedAt = time.Now()
	}

	text := art.RichestText()

	var (
		sentiment entity.Sentiment
		summary   string
		fellBack  bool
	)

	// 分類と要約は独立した計算なので並行実行し、書き込み前に合流する
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		label, cerr := s.Classifier.Classify(gctx, text)
		if cerr != nil {
			// 失敗時は決定的にNEUTRALへフォールバックし、件数を記録する
			label = entity.SentimentNeutral
			fellBack = true
			logger.Warn("classification failed, defaulting to neutral",
				slog.String("url", raw.URL),
				slog.Any("error", cerr))
		}
		sentiment = label
		return nil
	})
	g.Go(func() error {
		summaryStart := time.Now()
		sum, serr := s.Summarizer.Summarize(gctx, text)
		metrics.RecordSummarizationDuration(time.Since(summaryStart))
		if serr != nil {
			if errors.Is(serr, context.Canceled) || errors.Is(serr, context.DeadlineExceeded) {
				return serr
			}
			metrics.RecordArticleSummarized(false)
			return fmt.Errorf("summarize: %w", serr)
		}
		metrics.RecordArticleSummarized(true)
		summary = sum
		return nil
	})
	if err := g.Wait(); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		// 要約失敗はこの記事だけスキップし、バッチは継続する
		stats.SummarizeErrors++
		logger.Warn("summarization failed, skipping article",
			slog.String("url", raw.URL),
			slog.String("title", raw.Title),
			slog.Any("error", err))
		return nil
	}

	if fellBack {
		stats.ClassifyFallback++
		metrics.RecordClassificationFallback()
	}
	metrics.RecordClassification(string(sentiment))

	art.Sentiment = sentiment
	art.Summary = summary

	if err := s.ArticleRepo.Create(ctx, art); err != nil {
		return fmt.Errorf("create article: %w", err)
	}

	if err := s.ArticleRepo.AttachCategory(ctx, art.ID, category.ID); err != nil {
		return fmt.Errorf("attach category: %w", err)
	}

	if known != nil {
		// 同一バッチ内で同じURLが再登場したら重複として扱う
		known[raw.URL] = true
	}

	stats.Inserted++
	metrics.RecordArticleIngested(category.Name)

	return nil
}
