package repository

import (
	"context"

	"shape-gallery/internal/domain"
)

// AdminRepository defines persistence operations for Admin identities.
type AdminRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, admin *domain.Admin) error
	GetByUsername(ctx context.Context, username string) (*domain.Admin, error)
	GetByID(ctx context.Context, id string) (*domain.Admin, error)
}
