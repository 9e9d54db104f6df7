package repository

import (
	"context"

	"shape-gallery/internal/domain"
)

// ShapeRepository exposes persistence operations for Shape records.
//
// List returns at most limit records starting at offset, newest first
// (ids are monotonic and createdAt is immutable, so id order is creation order).
// Count returns the total number of records; the two are separate statements
// and are not atomic with respect to concurrent writes.
type ShapeRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, shape *domain.Shape) (int64, error)
	Update(ctx context.Context, shape *domain.Shape) error
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (*domain.Shape, error)
	List(ctx context.Context, offset, limit int) ([]domain.Shape, error)
	Count(ctx context.Context) (int64, error)
}
