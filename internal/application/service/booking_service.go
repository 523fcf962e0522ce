package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/salonkita/salonkita-api/internal/domain/entity"
	"github.com/salonkita/salonkita-api/internal/domain/repository"
	infraRepo "github.com/salonkita/salonkita-api/internal/infrastructure/repository"
	"github.com/salonkita/salonkita-api/pkg/apperror"
	"github.com/salonkita/salonkita-api/pkg/pagination"
)

// BookingService manages scheduled bookings. Settlement of a booking
// into a sales transaction is the transaction service's job; this
// service only records and cancels bookings.
type BookingService struct {
	customerRepo repository.CustomerRepository
	serviceRepo  repository.ServiceRepository
	bookingRepo  repository.BookingRepository
}

// NewBookingService creates a new booking service
func NewBookingService(
	customerRepo repository.CustomerRepository,
	serviceRepo repository.ServiceRepository,
	bookingRepo repository.BookingRepository,
) *BookingService {
	return &BookingService{
		customerRepo: customerRepo,
		serviceRepo:  serviceRepo,
		bookingRepo:  bookingRepo,
	}
}

// CreateBookingInput represents the create booking input. TotalAmount
// is the agreed price, fixed at booking time; nil means charge the
// catalog base price.
type CreateBookingInput struct {
	CustomerID  uuid.UUID
	ServiceID   uuid.UUID
	ScheduledAt time.Time
	TotalAmount *int64
	Notes       *string
}

// CreateBooking records a confirmed booking with a fixed price
func (s *BookingService) CreateBooking(ctx context.Context, input *CreateBookingInput) (*entity.Booking, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Tenant context required")
	}

	customer, err := s.customerRepo.GetByID(ctx, input.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}

	service, err := s.serviceRepo.GetByID(ctx, input.ServiceID)
	if err != nil {
		return nil, err
	}
	if service == nil {
		return nil, apperror.NewNotFoundError("Service")
	}
	if !service.Active {
		return nil, apperror.NewInvalidInputError("service_id", "service is inactive")
	}

	totalAmount := service.BasePrice
	if input.TotalAmount != nil {
		if *input.TotalAmount < 0 {
			return nil, apperror.NewInvalidInputError("total_amount", "must not be negative")
		}
		totalAmount = *input.TotalAmount
	}

	booking := &entity.Booking{
		TenantID:    tenantID,
		CustomerID:  input.CustomerID,
		ServiceID:   input.ServiceID,
		ScheduledAt: input.ScheduledAt,
		TotalAmount: totalAmount,
		Status:      entity.BookingStatusConfirmed,
		Notes:       input.Notes,
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, err
	}
	return booking, nil
}

// GetBooking retrieves a booking by ID
func (s *BookingService) GetBooking(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, apperror.NewNotFoundError("Booking")
	}
	return booking, nil
}

// ListBookings lists bookings with optional status filter
func (s *BookingService) ListBookings(ctx context.Context, params *pagination.PaginationParams, status string) (*pagination.PaginatedResult[entity.Booking], error) {
	bookings, total, err := s.bookingRepo.List(ctx, params, status)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(bookings, pag), nil
}

// CancelBooking cancels a confirmed booking. Settled bookings are
// immutable history and cannot be cancelled.
func (s *BookingService) CancelBooking(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	booking, err := s.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking.Status == entity.BookingStatusSettled {
		return nil, apperror.NewConflictError("Booking is already settled")
	}
	if booking.Status == entity.BookingStatusCancelled {
		return booking, nil
	}

	if err := s.bookingRepo.UpdateStatus(ctx, id, entity.BookingStatusCancelled); err != nil {
		return nil, err
	}
	booking.Status = entity.BookingStatusCancelled
	return booking, nil
}
