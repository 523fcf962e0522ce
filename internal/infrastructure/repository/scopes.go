package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ctxKey string

const tenantIDKey ctxKey = "tenant_id"

// WithTenant returns a context scoped to the given tenant. Every
// request context passes through here before reaching a repository.
func WithTenant(ctx context.Context, tenantID uuid.UUID) context.Context {
	return context.WithValue(ctx, tenantIDKey, tenantID)
}

// GetTenantID extracts the tenant from the context
func GetTenantID(ctx context.Context) (uuid.UUID, bool) {
	tenantID, ok := ctx.Value(tenantIDKey).(uuid.UUID)
	return tenantID, ok
}

// TenantScope filters a query to the context's tenant. A context
// without a tenant matches nothing rather than everything, so a missed
// WithTenant can never leak rows across salons.
func TenantScope(ctx context.Context) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		tenantID, ok := GetTenantID(ctx)
		if !ok {
			return db.Where("1 = 0")
		}
		return db.Where("tenant_id = ?", tenantID)
	}
}
