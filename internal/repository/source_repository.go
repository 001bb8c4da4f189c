package repository

import (
	"context"

	"newspulse/internal/domain/entity"
)

type SourceRepository interface {
	// GetByName looks a source up by its unique name.
	// Returns entity.ErrNotFound when no such source exists.
	GetByName(ctx context.Context, name string) (*entity.Source, error)
	// FindOrCreate returns the source with the given name, creating it when
	// absent. Implementations use a unique-constraint-first insert so that
	// concurrent callers racing on the same name converge on a single row.
	FindOrCreate(ctx context.Context, source *entity.Source) (*entity.Source, error)
	List(ctx context.Context) ([]*entity.Source, error)
	CountSources(ctx context.Context) (int64, error)
}
