package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/salonkita/salonkita-api/internal/domain/entity"
)

// TenantRepository defines the interface for tenant data operations.
// Tenants are the scope root, so lookups here are deliberately
// unscoped; everything else goes through TenantScope.
type TenantRepository interface {
	Create(ctx context.Context, tenant *entity.Tenant) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Tenant, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Tenant, error)
	Update(ctx context.Context, tenant *entity.Tenant) error
	// UpdateSettings replaces the settings document, including the
	// pricing rule set, without touching other columns
	UpdateSettings(ctx context.Context, id uuid.UUID, settings entity.TenantSettings) error
	SlugExists(ctx context.Context, slug string) (bool, error)
}

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, user *entity.User) error
}
