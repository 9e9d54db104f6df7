package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"shape-gallery/internal/domain"
	"shape-gallery/internal/repository"
)

// ErrInvalidCredentials is the single failure returned for every bad login:
// unknown username and wrong password are indistinguishable to the caller.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService verifies admin credentials and provisions the admin identity.
type AuthService interface {
	Authenticate(ctx context.Context, username, password string) (*domain.Admin, error)
	GetByID(ctx context.Context, id string) (*domain.Admin, error)
	EnsureAdmin(ctx context.Context, username, password string) (*domain.Admin, error)
}

type authService struct {
	admins repository.AdminRepository
}

func NewAuthService(admins repository.AdminRepository) AuthService {
	return &authService{admins: admins}
}

func (s *authService) Authenticate(ctx context.Context, username, password string) (*domain.Admin, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	admin, err := s.admins.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return sanitizeAdmin(admin), nil
}

func (s *authService) GetByID(ctx context.Context, id string) (*domain.Admin, error) {
	admin, err := s.admins.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return sanitizeAdmin(admin), nil
}

// EnsureAdmin provisions the admin identity at boot if it does not exist yet.
// Safe to call on every start.
func (s *authService) EnsureAdmin(ctx context.Context, username, password string) (*domain.Admin, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, errors.New("admin username is required")
	}
	if password == "" {
		return nil, errors.New("admin password is required")
	}

	existing, err := s.admins.GetByUsername(ctx, username)
	if err == nil {
		return sanitizeAdmin(existing), nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	admin := &domain.Admin{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}
	if err := s.admins.Create(ctx, admin); err != nil {
		return nil, err
	}
	return sanitizeAdmin(admin), nil
}

func sanitizeAdmin(admin *domain.Admin) *domain.Admin {
	if admin == nil {
		return nil
	}
	return &domain.Admin{
		ID:        admin.ID,
		Username:  admin.Username,
		CreatedAt: admin.CreatedAt,
		UpdatedAt: admin.UpdatedAt,
	}
}
