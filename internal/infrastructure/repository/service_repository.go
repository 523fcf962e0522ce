package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/salonkita/salonkita-api/internal/domain/entity"
	domainRepo "github.com/salonkita/salonkita-api/internal/domain/repository"
	"github.com/salonkita/salonkita-api/pkg/pagination"
	"gorm.io/gorm"
)

type serviceRepository struct {
	db *gorm.DB
}

// NewServiceRepository creates a new service catalog repository
func NewServiceRepository(db *gorm.DB) domainRepo.ServiceRepository {
	return &serviceRepository{db: db}
}

func (r *serviceRepository) Create(ctx context.Context, service *entity.Service) error {
	return r.db.WithContext(ctx).Create(service).Error
}

func (r *serviceRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Service, error) {
	var service entity.Service
	err := r.db.WithContext(ctx).
		Scopes(TenantScope(ctx)).
		First(&service, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &service, err
}

// GetByIDs retrieves multiple catalog entries in a single query
func (r *serviceRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Service, error) {
	if len(ids) == 0 {
		return []entity.Service{}, nil
	}
	var services []entity.Service
	err := r.db.WithContext(ctx).
		Scopes(TenantScope(ctx)).
		Where("id IN ?", ids).
		Find(&services).Error
	return services, err
}

func (r *serviceRepository) Update(ctx context.Context, service *entity.Service) error {
	return r.db.WithContext(ctx).Save(service).Error
}

func (r *serviceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Scopes(TenantScope(ctx)).
		Delete(&entity.Service{}, "id = ?", id).Error
}

func (r *serviceRepository) List(ctx context.Context, params *pagination.PaginationParams, activeOnly bool) ([]entity.Service, int64, error) {
	var services []entity.Service
	var total int64

	query := r.db.WithContext(ctx).
		Model(&entity.Service{}).
		Scopes(TenantScope(ctx))
	if activeOnly {
		query = query.Where("active = ?", true)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order("name ASC").
		Offset(params.Offset()).
		Limit(params.PerPage).
		Find(&services).Error
	return services, total, err
}
