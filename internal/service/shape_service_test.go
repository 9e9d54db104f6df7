package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"shape-gallery/internal/repository"
	"shape-gallery/internal/repository/sqlite"
)

func newShapeService(t *testing.T) ShapeService {
	t.Helper()

	db, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := sqlite.NewShapeRepository(db)
	require.NoError(t, repo.Init(context.Background()))
	return NewShapeService(repo)
}

func strPtr(s string) *string { return &s }

func TestShapeServiceCreate(t *testing.T) {
	svc := newShapeService(t)
	ctx := context.Background()

	before := time.Now().UTC().Add(-time.Second)
	shape, err := svc.Create(ctx, CreateShapeInput{Name: "Happy Circle", Color: "red", Shape: "circle"})
	require.NoError(t, err)
	require.Equal(t, int64(1), shape.ID)
	require.Equal(t, "Happy Circle", shape.Name)
	require.True(t, shape.CreatedAt.After(before))

	// id stays stable across subsequent fetches
	got, err := svc.Get(ctx, shape.ID)
	require.NoError(t, err)
	require.Equal(t, shape.ID, got.ID)
	require.Equal(t, "Happy Circle", got.Name)
}

func TestShapeServiceCreateRejectsInvalidPayload(t *testing.T) {
	svc := newShapeService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateShapeInput{Name: strings.Repeat("n", 101), Color: "red", Shape: "circle"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "name", verr.Fields[0].Field)

	// nothing persisted
	page, err := svc.List(ctx, 1, 10)
	require.NoError(t, err)
	require.Zero(t, page.Total)
}

func TestShapeServiceCreateTrimsName(t *testing.T) {
	svc := newShapeService(t)

	shape, err := svc.Create(context.Background(), CreateShapeInput{Name: "  Spaced  ", Color: "blue", Shape: "square"})
	require.NoError(t, err)
	require.Equal(t, "Spaced", shape.Name)
}

func TestShapeServiceUpdateMergesProvidedFields(t *testing.T) {
	svc := newShapeService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateShapeInput{Name: "Original", Color: "red", Shape: "circle"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, UpdateShapeInput{Color: strPtr("green")})
	require.NoError(t, err)
	require.Equal(t, "Original", updated.Name)
	require.Equal(t, "green", string(updated.Color))
	require.Equal(t, "circle", string(updated.Shape))
	require.WithinDuration(t, created.CreatedAt, updated.CreatedAt, time.Second)
}

func TestShapeServiceUpdateValidatesBeforeLookup(t *testing.T) {
	svc := newShapeService(t)

	_, err := svc.Update(context.Background(), 999, UpdateShapeInput{Color: strPtr("magenta")})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestShapeServiceUpdateMissingRecord(t *testing.T) {
	svc := newShapeService(t)

	_, err := svc.Update(context.Background(), 999, UpdateShapeInput{Color: strPtr("green")})
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestShapeServiceDeleteAlreadyDeleted(t *testing.T) {
	svc := newShapeService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateShapeInput{Name: "Victim", Color: "red", Shape: "circle"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))
	require.ErrorIs(t, svc.Delete(ctx, created.ID), repository.ErrNotFound)
	require.ErrorIs(t, svc.Delete(ctx, created.ID), repository.ErrNotFound)
}

func TestShapeServiceListPagination(t *testing.T) {
	svc := newShapeService(t)
	ctx := context.Background()

	for i := 0; i < 7; i++ {
		_, err := svc.Create(ctx, CreateShapeInput{Name: "shape", Color: "red", Shape: "circle"})
		require.NoError(t, err)
	}

	page, err := svc.List(ctx, 1, 3)
	require.NoError(t, err)
	require.Len(t, page.Shapes, 3)
	require.Equal(t, int64(7), page.Total)
	require.Equal(t, int64(3), page.TotalPages) // ceil(7/3)

	last, err := svc.List(ctx, 3, 3)
	require.NoError(t, err)
	require.Len(t, last.Shapes, 1)

	// past the end: empty slice, same total
	beyond, err := svc.List(ctx, 4, 3)
	require.NoError(t, err)
	require.Empty(t, beyond.Shapes)
	require.Equal(t, int64(7), beyond.Total)
}

func TestShapeServiceListDefaultsAndClamp(t *testing.T) {
	svc := newShapeService(t)
	ctx := context.Background()

	page, err := svc.List(ctx, 0, 0)
	require.NoError(t, err)
	require.Equal(t, 1, page.Page)
	require.Equal(t, 10, page.Limit)

	clamped, err := svc.List(ctx, 1, 100000)
	require.NoError(t, err)
	require.Equal(t, 100, clamped.Limit)

	negative, err := svc.List(ctx, -3, -5)
	require.NoError(t, err)
	require.Equal(t, 1, negative.Page)
	require.Equal(t, 10, negative.Limit)
}
