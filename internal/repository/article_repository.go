package repository

import (
	"context"

	"newspulse/internal/domain/entity"
)

// ArticleWithSource represents an article along with its source name.
// SourceName is empty when the article carries no source reference.
type ArticleWithSource struct {
	Article    *entity.Article
	SourceName string
}

type ArticleRepository interface {
	// Create inserts a new article row. The article's ID is populated on
	// success. The url column carries a unique constraint; inserting an
	// already stored URL fails, callers are expected to check existence
	// first via ExistsByURL or ExistsByURLBatch.
	Create(ctx context.Context, article *entity.Article) error
	ExistsByURL(ctx context.Context, url string) (bool, error)
	// ExistsByURLBatch はバッチでURL存在チェックを行い、N+1問題を解消する
	ExistsByURLBatch(ctx context.Context, urls []string) (map[string]bool, error)
	Get(ctx context.Context, id int64) (*entity.Article, error)
	// ListWithSourcePaginated retrieves paginated articles with their source
	// names, ordered by published_at DESC. offset is the number of rows to
	// skip, limit the maximum number of rows to return.
	ListWithSourcePaginated(ctx context.Context, offset, limit int) ([]ArticleWithSource, error)
	CountArticles(ctx context.Context) (int64, error)
	// AttachCategory links an article to a category. The link table carries
	// a composite unique constraint on (article_id, category_id); attaching
	// an existing pair is a no-op.
	AttachCategory(ctx context.Context, articleID, categoryID int64) error
}
