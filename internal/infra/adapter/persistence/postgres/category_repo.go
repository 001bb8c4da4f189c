package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"newspulse/internal/domain/entity"
	"newspulse/internal/repository"
)

type CategoryRepo struct{ db *sql.DB }

func NewCategoryRepo(db *sql.DB) repository.CategoryRepository {
	return &CategoryRepo{db: db}
}

func (repo *CategoryRepo) GetByName(ctx context.Context, name string) (*entity.Category, error) {
	defer observe("select_category")()
	const query = `
SELECT id, name, created_at, updated_at
FROM categories
WHERE name = $1
LIMIT 1`
	var category entity.Category
	err := repo.db.QueryRowContext(ctx, query, name).
		Scan(&category.ID, &category.Name, &category.CreatedAt, &category.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, entity.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("GetByName: %w", err)
	}
	return &category, nil
}

// FindOrCreate returns the category with the given name, creating it when
// absent. Insert-first against the unique constraint on name, same strategy
// as SourceRepo.FindOrCreate.
func (repo *CategoryRepo) FindOrCreate(ctx context.Context, name string) (*entity.Category, error) {
	defer observe("upsert_category")()
	const insert = `
INSERT INTO categories (name)
VALUES ($1)
ON CONFLICT (name) DO NOTHING
RETURNING id, name, created_at, updated_at`

	var category entity.Category
	err := repo.db.QueryRowContext(ctx, insert, name).
		Scan(&category.ID, &category.Name, &category.CreatedAt, &category.UpdatedAt)
	if err == nil {
		return &category, nil
	}
	if err != sql.ErrNoRows {
		return nil, fmt.Errorf("FindOrCreate: insert: %w", err)
	}

	// 衝突した場合は既存行を取得
	existing, err := repo.GetByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("FindOrCreate: %w", err)
	}
	return existing, nil
}
