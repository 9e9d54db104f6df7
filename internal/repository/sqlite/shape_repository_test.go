package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"shape-gallery/internal/domain"
	"shape-gallery/internal/repository"
)

func newShapeRepo(t *testing.T) repository.ShapeRepository {
	t.Helper()

	db, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := NewShapeRepository(db)
	require.NoError(t, repo.Init(context.Background()))
	return repo
}

func seedShapes(t *testing.T, repo repository.ShapeRepository, names ...string) []int64 {
	t.Helper()

	ids := make([]int64, len(names))
	for i, name := range names {
		id, err := repo.Create(context.Background(), &domain.Shape{
			Name:  name,
			Color: domain.ColorRed,
			Shape: domain.GeometryCircle,
		})
		require.NoError(t, err)
		ids[i] = id
	}
	return ids
}

func TestShapeRepositoryCreate(t *testing.T) {
	repo := newShapeRepo(t)
	ctx := context.Background()

	shape := &domain.Shape{Name: "Happy Circle", Color: domain.ColorRed, Shape: domain.GeometryCircle}
	id, err := repo.Create(ctx, shape)
	require.NoError(t, err)
	require.Equal(t, int64(1), id)
	require.False(t, shape.CreatedAt.IsZero())

	got, err := repo.Get(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "Happy Circle", got.Name)
	require.Equal(t, domain.ColorRed, got.Color)
	require.Equal(t, domain.GeometryCircle, got.Shape)
}

func TestShapeRepositoryIDsAreSequential(t *testing.T) {
	repo := newShapeRepo(t)

	ids := seedShapes(t, repo, "a", "b", "c")
	require.Equal(t, []int64{1, 2, 3}, ids)
}

func TestShapeRepositoryIDsNotReusedAfterDelete(t *testing.T) {
	repo := newShapeRepo(t)
	ctx := context.Background()

	ids := seedShapes(t, repo, "a", "b")
	require.NoError(t, repo.Delete(ctx, ids[1]))

	next := seedShapes(t, repo, "c")
	require.Greater(t, next[0], ids[1])
}

func TestShapeRepositoryListNewestFirst(t *testing.T) {
	repo := newShapeRepo(t)
	ctx := context.Background()

	seedShapes(t, repo, "first", "second", "third")

	shapes, err := repo.List(ctx, 0, 10)
	require.NoError(t, err)
	require.Len(t, shapes, 3)
	require.Equal(t, "third", shapes[0].Name)
	require.Equal(t, "second", shapes[1].Name)
	require.Equal(t, "first", shapes[2].Name)
}

func TestShapeRepositoryListOffsetAndCount(t *testing.T) {
	repo := newShapeRepo(t)
	ctx := context.Background()

	seedShapes(t, repo, "a", "b", "c", "d", "e")

	shapes, err := repo.List(ctx, 2, 2)
	require.NoError(t, err)
	require.Len(t, shapes, 2)
	require.Equal(t, "c", shapes[0].Name)
	require.Equal(t, "b", shapes[1].Name)

	total, err := repo.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(5), total)
}

func TestShapeRepositoryUpdate(t *testing.T) {
	repo := newShapeRepo(t)
	ctx := context.Background()

	ids := seedShapes(t, repo, "before")

	got, err := repo.Get(ctx, ids[0])
	require.NoError(t, err)
	created := got.CreatedAt

	got.Name = "after"
	got.Color = domain.ColorBlue
	require.NoError(t, repo.Update(ctx, got))

	updated, err := repo.Get(ctx, ids[0])
	require.NoError(t, err)
	require.Equal(t, "after", updated.Name)
	require.Equal(t, domain.ColorBlue, updated.Color)
	require.Equal(t, created, updated.CreatedAt)
}

func TestShapeRepositoryNotFound(t *testing.T) {
	repo := newShapeRepo(t)
	ctx := context.Background()

	_, err := repo.Get(ctx, 42)
	require.ErrorIs(t, err, repository.ErrNotFound)

	err = repo.Update(ctx, &domain.Shape{ID: 42, Name: "x", Color: domain.ColorRed, Shape: domain.GeometryCircle})
	require.ErrorIs(t, err, repository.ErrNotFound)

	require.ErrorIs(t, repo.Delete(ctx, 42), repository.ErrNotFound)
}

func TestShapeRepositoryDeleteIsNotIdempotent(t *testing.T) {
	repo := newShapeRepo(t)
	ctx := context.Background()

	ids := seedShapes(t, repo, "gone")
	require.NoError(t, repo.Delete(ctx, ids[0]))
	require.ErrorIs(t, repo.Delete(ctx, ids[0]), repository.ErrNotFound)
}
