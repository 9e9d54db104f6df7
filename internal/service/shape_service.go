package service

import (
	"context"
	"strings"

	"shape-gallery/internal/domain"
	"shape-gallery/internal/repository"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// ShapePage is one page of the collection together with pagination metadata.
type ShapePage struct {
	Shapes     []domain.Shape
	Page       int
	Limit      int
	Total      int64
	TotalPages int64
}

// ShapeService coordinates validated CRUD over the shape collection.
type ShapeService interface {
	Create(ctx context.Context, input CreateShapeInput) (*domain.Shape, error)
	Update(ctx context.Context, id int64, input UpdateShapeInput) (*domain.Shape, error)
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (*domain.Shape, error)
	List(ctx context.Context, page, limit int) (*ShapePage, error)
}

type shapeService struct {
	shapes repository.ShapeRepository
}

func NewShapeService(shapes repository.ShapeRepository) ShapeService {
	return &shapeService{shapes: shapes}
}

func (s *shapeService) Create(ctx context.Context, input CreateShapeInput) (*domain.Shape, error) {
	if verr := input.Validate(); verr != nil {
		return nil, verr
	}

	shape := &domain.Shape{
		Name:  strings.TrimSpace(input.Name),
		Color: domain.Color(input.Color),
		Shape: domain.Geometry(input.Shape),
	}
	if _, err := s.shapes.Create(ctx, shape); err != nil {
		return nil, err
	}
	return shape, nil
}

func (s *shapeService) Update(ctx context.Context, id int64, input UpdateShapeInput) (*domain.Shape, error) {
	if verr := input.Validate(); verr != nil {
		return nil, verr
	}

	shape, err := s.shapes.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		shape.Name = strings.TrimSpace(*input.Name)
	}
	if input.Color != nil {
		shape.Color = domain.Color(*input.Color)
	}
	if input.Shape != nil {
		shape.Shape = domain.Geometry(*input.Shape)
	}

	if err := s.shapes.Update(ctx, shape); err != nil {
		return nil, err
	}
	return shape, nil
}

func (s *shapeService) Delete(ctx context.Context, id int64) error {
	return s.shapes.Delete(ctx, id)
}

func (s *shapeService) Get(ctx context.Context, id int64) (*domain.Shape, error) {
	return s.shapes.Get(ctx, id)
}

func (s *shapeService) List(ctx context.Context, page, limit int) (*ShapePage, error) {
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	offset := (page - 1) * limit
	shapes, err := s.shapes.List(ctx, offset, limit)
	if err != nil {
		return nil, err
	}
	total, err := s.shapes.Count(ctx)
	if err != nil {
		return nil, err
	}

	totalPages := total / int64(limit)
	if total%int64(limit) != 0 {
		totalPages++
	}

	return &ShapePage{
		Shapes:     shapes,
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}, nil
}
