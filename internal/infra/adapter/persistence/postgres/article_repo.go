// Package postgres implements the repository interfaces on PostgreSQL
// using database/sql with the pgx stdlib driver.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"newspulse/internal/domain/entity"
	"newspulse/internal/repository"
)

type ArticleRepo struct{ db *sql.DB }

func NewArticleRepo(db *sql.DB) repository.ArticleRepository {
	return &ArticleRepo{db: db}
}

func (repo *ArticleRepo) Create(ctx context.Context, article *entity.Article) error {
	defer observe("insert_article")()
	const query = `
INSERT INTO articles
	   (source_id, title, description, content, url, image_url, sentiment, summary, published_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING id, created_at, updated_at`
	err := repo.db.QueryRowContext(ctx, query,
		article.SourceID, article.Title, article.Description, article.Content,
		article.URL, article.ImageURL, string(article.Sentiment), article.Summary,
		article.PublishedAt,
	).Scan(&article.ID, &article.CreatedAt, &article.UpdatedAt)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (repo *ArticleRepo) ExistsByURL(ctx context.Context, url string) (bool, error) {
	defer observe("exists_article_url")()
	const query = `SELECT EXISTS (SELECT 1 FROM articles WHERE url = $1)`
	var existsFlag bool
	err := repo.db.QueryRowContext(ctx, query, url).Scan(&existsFlag)
	if err != nil {
		return false, fmt.Errorf("ExistsByURL: %w", err)
	}
	return existsFlag, nil
}

// ExistsByURLBatch はバッチでURL存在チェックを行い、N+1問題を解消する
func (repo *ArticleRepo) ExistsByURLBatch(ctx context.Context, urls []string) (map[string]bool, error) {
	if len(urls) == 0 {
		return make(map[string]bool), nil
	}
	defer observe("exists_article_url_batch")()

	placeholders := make([]string, len(urls))
	args := make([]any, len(urls))
	for i, u := range urls {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = u
	}
	query := `SELECT url FROM articles WHERE url IN (` + strings.Join(placeholders, ", ") + `)`

	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ExistsByURLBatch: QueryContext: %w", err)
	}
	defer func() { _ = rows.Close() }()

	result := make(map[string]bool)
	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			return nil, fmt.Errorf("ExistsByURLBatch: Scan: %w", err)
		}
		result[url] = true
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ExistsByURLBatch: rows.Err: %w", err)
	}

	return result, nil
}

func (repo *ArticleRepo) Get(ctx context.Context, id int64) (*entity.Article, error) {
	defer observe("select_article")()
	const query = `
SELECT id, source_id, title, description, content, url, image_url, sentiment, summary, published_at, created_at, updated_at
FROM articles
WHERE id = $1
LIMIT 1`
	article, err := scanArticle(repo.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return article, nil
}

func (repo *ArticleRepo) ListWithSourcePaginated(ctx context.Context, offset, limit int) ([]repository.ArticleWithSource, error) {
	defer observe("select_articles")()
	const query = `
SELECT a.id, a.source_id, a.title, a.description, a.content, a.url, a.image_url,
       a.sentiment, a.summary, a.published_at, a.created_at, a.updated_at,
       COALESCE(s.name, '') AS source_name
FROM articles a
LEFT JOIN sources s ON a.source_id = s.id
ORDER BY a.published_at DESC
LIMIT $1 OFFSET $2`

	rows, err := repo.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("ListWithSourcePaginated: %w", err)
	}
	defer func() { _ = rows.Close() }()

	result := make([]repository.ArticleWithSource, 0, limit)
	for rows.Next() {
		var article entity.Article
		var sentiment sql.NullString
		var sourceName string
		if err := rows.Scan(&article.ID, &article.SourceID, &article.Title,
			&article.Description, &article.Content, &article.URL, &article.ImageURL,
			&sentiment, &article.Summary, &article.PublishedAt,
			&article.CreatedAt, &article.UpdatedAt, &sourceName); err != nil {
			return nil, fmt.Errorf("ListWithSourcePaginated: Scan: %w", err)
		}
		article.Sentiment = entity.Sentiment(sentiment.String)
		result = append(result, repository.ArticleWithSource{
			Article:    &article,
			SourceName: sourceName,
		})
	}
	return result, rows.Err()
}

func (repo *ArticleRepo) CountArticles(ctx context.Context) (int64, error) {
	defer observe("count_articles")()
	const query = `SELECT COUNT(*) FROM articles`
	var count int64
	err := repo.db.QueryRowContext(ctx, query).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("CountArticles: %w", err)
	}
	return count, nil
}

func (repo *ArticleRepo) AttachCategory(ctx context.Context, articleID, categoryID int64) error {
	defer observe("insert_article_category")()
	// 複合ユニーク制約により、既存ペアへの再リンクはno-op
	const query = `
INSERT INTO article_categories (article_id, category_id)
VALUES ($1, $2)
ON CONFLICT (article_id, category_id) DO NOTHING`
	_, err := repo.db.ExecContext(ctx, query, articleID, categoryID)
	if err != nil {
		return fmt.Errorf("AttachCategory: %w", err)
	}
	return nil
}

// scanArticle scans a single article row including the nullable sentiment column.
func scanArticle(row *sql.Row) (*entity.Article, error) {
	var article entity.Article
	var sentiment sql.NullString
	if err := row.Scan(&article.ID, &article.SourceID, &article.Title,
		&article.Description, &article.Content, &article.URL, &article.ImageURL,
		&sentiment, &article.Summary, &article.PublishedAt,
		&article.CreatedAt, &article.UpdatedAt); err != nil {
		return nil, err
	}
	article.Sentiment = entity.Sentiment(sentiment.String)
	return &article, nil
}
