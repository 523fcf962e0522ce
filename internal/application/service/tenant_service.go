package service

import (
	"context"

	"github.com/salonkita/salonkita-api/internal/domain/entity"
	"github.com/salonkita/salonkita-api/internal/domain/repository"
	infraRepo "github.com/salonkita/salonkita-api/internal/infrastructure/repository"
	"github.com/salonkita/salonkita-api/pkg/apperror"
)

// TenantService handles tenant profile and settings operations
type TenantService struct {
	tenantRepo repository.TenantRepository
}

// NewTenantService creates a new tenant service
func NewTenantService(tenantRepo repository.TenantRepository) *TenantService {
	return &TenantService{tenantRepo: tenantRepo}
}

// GetCurrentTenant retrieves the tenant the request is scoped to
func (s *TenantService) GetCurrentTenant(ctx context.Context) (*entity.Tenant, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Tenant context required")
	}

	tenant, err := s.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, apperror.NewNotFoundError("Tenant")
	}
	return tenant, nil
}

// UpdateSettings replaces the tenant's settings document. The embedded
// pricing rule set is validated as a whole; a rejected update leaves the
// stored settings untouched. Accepted changes affect future quotes only,
// never existing transactions.
func (s *TenantService) UpdateSettings(ctx context.Context, settings entity.TenantSettings) (*entity.Tenant, error) {
	tenant, err := s.GetCurrentTenant(ctx)
	if err != nil {
		return nil, err
	}

	if err := settings.Pricing.Validate(); err != nil {
		return nil, err
	}
	if settings.InvoiceGraceDays < 0 {
		return nil, apperror.NewInvalidInputError("invoice_grace_days", "must not be negative")
	}

	if err := s.tenantRepo.UpdateSettings(ctx, tenant.ID, settings); err != nil {
		return nil, err
	}

	tenant.Settings = settings
	return tenant, nil
}
