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

type bookingRepository struct {
	db *gorm.DB
}

// NewBookingRepository creates a new booking repository
func NewBookingRepository(db *gorm.DB) domainRepo.BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	return r.db.WithContext(ctx).Create(booking).Error
}

func (r *bookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	var booking entity.Booking
	err := r.db.WithContext(ctx).
		Scopes(TenantScope(ctx)).
		Preload("Customer").Preload("Service").
		First(&booking, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &booking, err
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	return r.db.WithContext(ctx).
		Model(&entity.Booking{}).
		Scopes(TenantScope(ctx)).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *bookingRepository) List(ctx context.Context, params *pagination.PaginationParams, status string) ([]entity.Booking, int64, error) {
	var bookings []entity.Booking
	var total int64

	query := r.db.WithContext(ctx).
		Model(&entity.Booking{}).
		Scopes(TenantScope(ctx))
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Customer").Preload("Service").
		Order("scheduled_at DESC").
		Offset(params.Offset()).
		Limit(params.PerPage).
		Find(&bookings).Error
	return bookings, total, err
}
