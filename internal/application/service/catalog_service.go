package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/salonkita/salonkita-api/internal/domain/entity"
	"github.com/salonkita/salonkita-api/internal/domain/repository"
	infraRepo "github.com/salonkita/salonkita-api/internal/infrastructure/repository"
	"github.com/salonkita/salonkita-api/pkg/apperror"
	"github.com/salonkita/salonkita-api/pkg/pagination"
)

// CatalogService manages the tenant's service catalog
type CatalogService struct {
	serviceRepo repository.ServiceRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(serviceRepo repository.ServiceRepository) *CatalogService {
	return &CatalogService{serviceRepo: serviceRepo}
}

// CreateServiceInput represents the create service input
type CreateServiceInput struct {
	Name            string
	Description     *string
	BasePrice       int64
	DurationMinutes int
	HomeVisit       bool
}

// CreateService adds a new entry to the catalog
func (s *CatalogService) CreateService(ctx context.Context, input *CreateServiceInput) (*entity.Service, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Tenant context required")
	}

	if input.BasePrice < 0 {
		return nil, apperror.NewInvalidInputError("base_price", "must not be negative")
	}

	service := &entity.Service{
		TenantID:        tenantID,
		Name:            input.Name,
		Description:     input.Description,
		BasePrice:       input.BasePrice,
		DurationMinutes: input.DurationMinutes,
		HomeVisit:       input.HomeVisit,
		Active:          true,
	}
	if service.DurationMinutes <= 0 {
		service.DurationMinutes = 60
	}

	if err := s.serviceRepo.Create(ctx, service); err != nil {
		return nil, err
	}
	return service, nil
}

// GetService retrieves a catalog entry by ID
func (s *CatalogService) GetService(ctx context.Context, id uuid.UUID) (*entity.Service, error) {
	service, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if service == nil {
		return nil, apperror.NewNotFoundError("Service")
	}
	return service, nil
}

// ListServices lists catalog entries
func (s *CatalogService) ListServices(ctx context.Context, params *pagination.PaginationParams, activeOnly bool) (*pagination.PaginatedResult[entity.Service], error) {
	services, total, err := s.serviceRepo.List(ctx, params, activeOnly)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(services, pag), nil
}

// UpdateServiceInput represents the update service input
type UpdateServiceInput struct {
	ID              uuid.UUID
	Name            *string
	Description     *string
	BasePrice       *int64
	DurationMinutes *int
	HomeVisit       *bool
	Active          *bool
}

// UpdateService updates a catalog entry. Price changes affect future
// quotes only; settled transactions keep their snapshotted prices.
func (s *CatalogService) UpdateService(ctx context.Context, input *UpdateServiceInput) (*entity.Service, error) {
	service, err := s.GetService(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.BasePrice != nil && *input.BasePrice < 0 {
		return nil, apperror.NewInvalidInputError("base_price", "must not be negative")
	}

	if input.Name != nil {
		service.Name = *input.Name
	}
	if input.Description != nil {
		service.Description = input.Description
	}
	if input.BasePrice != nil {
		service.BasePrice = *input.BasePrice
	}
	if input.DurationMinutes != nil {
		service.DurationMinutes = *input.DurationMinutes
	}
	if input.HomeVisit != nil {
		service.HomeVisit = *input.HomeVisit
	}
	if input.Active != nil {
		service.Active = *input.Active
	}

	if err := s.serviceRepo.Update(ctx, service); err != nil {
		return nil, err
	}
	return service, nil
}

// DeleteService soft-deletes a catalog entry
func (s *CatalogService) DeleteService(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetService(ctx, id); err != nil {
		return err
	}
	return s.serviceRepo.Delete(ctx, id)
}
