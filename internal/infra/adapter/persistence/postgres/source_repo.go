package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"newspulse/internal/domain/entity"
	"newspulse/internal/repository"
)

type SourceRepo struct{ db *sql.DB }

func NewSourceRepo(db *sql.DB) repository.SourceRepository {
	return &SourceRepo{db: db}
}

const sourceColumns = `id, name, description, url, category, language, country, created_at, updated_at`

func (repo *SourceRepo) GetByName(ctx context.Context, name string) (*entity.Source, error) {
	defer observe("select_source")()
	const query = `
SELECT id, name, description, url, category, language, country, created_at, updated_at
FROM sources
WHERE name = $1
LIMIT 1`
	source, err := scanSourceRow(repo.db.QueryRowContext(ctx, query, name))
	if err == sql.ErrNoRows {
		return nil, entity.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("GetByName: %w", err)
	}
	return source, nil
}

// FindOrCreate returns the source with the given name, creating it when absent.
// The insert goes first and yields to the unique constraint on name, so two
// batches racing on the same source name converge on a single row instead of
// both passing an existence check and double-inserting.
func (repo *SourceRepo) FindOrCreate(ctx context.Context, source *entity.Source) (*entity.Source, error) {
	defer observe("upsert_source")()
	const insert = `
INSERT INTO sources (name, description, url, category, language, country)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (name) DO NOTHING
RETURNING ` + sourceColumns

	created, err := scanSourceRow(repo.db.QueryRowContext(ctx, insert,
		source.Name, source.Description, source.URL, source.Category,
		source.Language, source.Country,
	))
	if err == nil {
		return created, nil
	}
	if err != sql.ErrNoRows {
		return nil, fmt.Errorf("FindOrCreate: insert: %w", err)
	}

	// 衝突した場合は既存行を取得
	existing, err := repo.GetByName(ctx, source.Name)
	if err != nil {
		return nil, fmt.Errorf("FindOrCreate: %w", err)
	}
	return existing, nil
}

func (repo *SourceRepo) List(ctx context.Context) ([]*entity.Source, error) {
	defer observe("select_sources")()
	const query = `
SELECT id, name, description, url, category, language, country, created_at, updated_at
FROM sources
ORDER BY id ASC`
	rows, err := repo.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	defer func() { _ = rows.Close() }()

	sources := make([]*entity.Source, 0, 20)
	for rows.Next() {
		var source entity.Source
		if err := rows.Scan(&source.ID, &source.Name, &source.Description,
			&source.URL, &source.Category, &source.Language, &source.Country,
			&source.CreatedAt, &source.UpdatedAt); err != nil {
			return nil, fmt.Errorf("List: Scan: %w", err)
		}
		sources = append(sources, &source)
	}
	return sources, rows.Err()
}

func (repo *SourceRepo) CountSources(ctx context.Context) (int64, error) {
	defer observe("count_sources")()
	const query = `SELECT COUNT(*) FROM sources`
	var count int64
	err := repo.db.QueryRowContext(ctx, query).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("CountSources: %w", err)
	}
	return count, nil
}

// scanSourceRow scans a single source row.
func scanSourceRow(row *sql.Row) (*entity.Source, error) {
	var source entity.Source
	if err := row.Scan(&source.ID, &source.Name, &source.Description,
		&source.URL, &source.Category, &source.Language, &source.Country,
		&source.CreatedAt, &source.UpdatedAt); err != nil {
		return nil, err
	}
	return &source, nil
}
