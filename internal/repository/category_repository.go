package repository

import (
	"context"

	"newspulse/internal/domain/entity"
)

type CategoryRepository interface {
	// GetByName looks a category up by its unique name.
	// Returns entity.ErrNotFound when no such category exists.
	GetByName(ctx context.Context, name string) (*entity.Category, error)
	// FindOrCreate returns the category with the given name, creating it
	// when absent. Implementations use a unique-constraint-first insert so
	// that concurrent batches racing on the same label converge on a single
	// row.
	FindOrCreate(ctx context.Context, name string) (*entity.Category, error)
}
