package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"shape-gallery/internal/domain"
	"shape-gallery/internal/repository"
)

const createShapesTable = `
CREATE TABLE IF NOT EXISTS shapes (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	color TEXT NOT NULL,
	shape TEXT NOT NULL,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
`

type ShapeRepository struct {
	db *sql.DB
}

func NewShapeRepository(db *sql.DB) repository.ShapeRepository {
	return &ShapeRepository{db: db}
}

func (r *ShapeRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createShapesTable); err != nil {
		return fmt.Errorf("create shapes table: %w", err)
	}
	return nil
}

func (r *ShapeRepository) Create(ctx context.Context, shape *domain.Shape) (int64, error) {
	now := time.Now().UTC()
	shape.CreatedAt = now
	shape.UpdatedAt = now

	res, err := r.db.ExecContext(ctx, `
INSERT INTO shapes (name, color, shape, created_at, updated_at)
VALUES (?, ?, ?, ?, ?)`,
		shape.Name,
		string(shape.Color),
		string(shape.Shape),
		shape.CreatedAt,
		shape.UpdatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert shape: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("shape last insert id: %w", err)
	}
	shape.ID = id
	return id, nil
}

func (r *ShapeRepository) Update(ctx context.Context, shape *domain.Shape) error {
	shape.UpdatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
UPDATE shapes
SET name=?, color=?, shape=?, updated_at=?
WHERE id=?`,
		shape.Name,
		string(shape.Color),
		string(shape.Shape),
		shape.UpdatedAt,
		shape.ID,
	)
	if err != nil {
		return fmt.Errorf("update shape: %w", err)
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("shape update rows affected: %w", err)
	}
	if aff == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ShapeRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM shapes WHERE id=?`, id)
	if err != nil {
		return fmt.Errorf("delete shape: %w", err)
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("shape delete rows affected: %w", err)
	}
	if aff == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ShapeRepository) Get(ctx context.Context, id int64) (*domain.Shape, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, name, color, shape, created_at, updated_at
FROM shapes
WHERE id=?`,
		id,
	)
	return scanShape(row)
}

func (r *ShapeRepository) List(ctx context.Context, offset, limit int) ([]domain.Shape, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, name, color, shape, created_at, updated_at
FROM shapes
ORDER BY id DESC
LIMIT ? OFFSET ?`,
		limit,
		offset,
	)
	if err != nil {
		return nil, fmt.Errorf("query shapes: %w", err)
	}
	defer rows.Close()

	var shapes []domain.Shape
	for rows.Next() {
		shape, err := scanShape(rows)
		if err != nil {
			return nil, err
		}
		shapes = append(shapes, *shape)
	}

	return shapes, rows.Err()
}

func (r *ShapeRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM shapes`).Scan(&total); err != nil {
		return 0, fmt.Errorf("count shapes: %w", err)
	}
	return total, nil
}

func scanShape(row interface {
	Scan(dest ...any) error
}) (*domain.Shape, error) {
	var (
		shape     domain.Shape
		color     string
		geometry  string
		createdAt time.Time
		updatedAt time.Time
	)
	if err := row.Scan(
		&shape.ID,
		&shape.Name,
		&color,
		&geometry,
		&createdAt,
		&updatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan shape: %w", err)
	}
	shape.Color = domain.Color(color)
	shape.Shape = domain.Geometry(geometry)
	shape.CreatedAt = createdAt.UTC()
	shape.UpdatedAt = updatedAt.UTC()
	return &shape, nil
}
