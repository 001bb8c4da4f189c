package article

import (
	"context"
	"fmt"

	"newspulse/internal/common/pagination"
	"newspulse/internal/domain/entity"
	"newspulse/internal/observability/metrics"
	"newspulse/internal/repository"
)

// Service provides article query use cases over the repository.
type Service struct {
	Repo repository.ArticleRepository
}

// PaginatedResult is one page of articles plus pagination metadata.
type PaginatedResult struct {
	Data       []repository.ArticleWithSource
	Pagination pagination.Metadata
}

// ListWithSourcePaginated retrieves one page of articles with their source
// names, newest first, along with the total count for metadata.
func (s *Service) ListWithSourcePaginated(ctx context.Context, params pagination.Params) (*PaginatedResult, error) {
	offset := pagination.CalculateOffset(params.Page, params.Limit)

	total, err := s.Repo.CountArticles(ctx)
	if err != nil {
		return nil, fmt.Errorf("count articles: %w", err)
	}
	metrics.UpdateArticlesTotal(int(total))

	articles, err := s.Repo.ListWithSourcePaginated(ctx, offset, params.Limit)
	if err != nil {
		return nil, fmt.Errorf("list articles with source paginated: %w", err)
	}

	return &PaginatedResult{
		Data:       articles,
		Pagination: pagination.BuildMetadata(params, total),
	}, nil
}

// Get retrieves a single article by ID. Returns ErrInvalidArticleID for a
// non-positive ID and ErrArticleNotFound when no row matches.
func (s *Service) Get(ctx context.Context, id int64) (*entity.Article, error) {
	if id <= 0 {
		return nil, ErrInvalidArticleID
	}

	article, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get article: %w", err)
	}
	if article == nil {
		return nil, ErrArticleNotFound
	}
	return article, nil
}

// Count returns the total number of stored articles.
func (s *Service) Count(ctx context.Context) (int64, error) {
	total, err := s.Repo.CountArticles(ctx)
	if err != nil {
		return 0, fmt.Errorf("count articles: %w", err)
	}
	return total, nil
}
