package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/salonkita/salonkita-api/internal/domain/entity"
	domainRepo "github.com/salonkita/salonkita-api/internal/domain/repository"
	"gorm.io/gorm"
)

type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new sales transaction repository
func NewTransactionRepository(db *gorm.DB) domainRepo.TransactionRepository {
	return &transactionRepository{db: db}
}

// Create persists the transaction with its items and payment records in
// one database transaction. GORM inserts the associations alongside the
// parent row, so a failure anywhere rolls back everything.
//
// For a booking-backed transaction the booking flips to settled inside
// the same database transaction, guarded on its current status: a
// concurrent writer that settled the booking first makes the guarded
// update match zero rows, and the whole create rolls back with
// ErrBookingSettled. The unique index on booking_id backs this up at
// the storage level.
func (r *transactionRepository) Create(ctx context.Context, transaction *entity.SalesTransaction) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if transaction.BookingID != nil {
			res := tx.Model(&entity.Booking{}).
				Where("id = ? AND status = ?", *transaction.BookingID, entity.BookingStatusConfirmed).
				Update("status", entity.BookingStatusSettled)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return domainRepo.ErrBookingSettled
			}
		}
		return tx.Create(transaction).Error
	})
}

func (r *transactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.SalesTransaction, error) {
	var transaction entity.SalesTransaction
	err := r.db.WithContext(ctx).
		Scopes(TenantScope(ctx)).
		Preload("Customer").Preload("Items").Preload("Payments").
		First(&transaction, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &transaction, err
}

func (r *transactionRepository) GetByNumber(ctx context.Context, number string) (*entity.SalesTransaction, error) {
	var transaction entity.SalesTransaction
	err := r.db.WithContext(ctx).
		Scopes(TenantScope(ctx)).
		Preload("Customer").Preload("Items").Preload("Payments").
		First(&transaction, "transaction_number = ?", number).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &transaction, err
}

func (r *transactionRepository) List(ctx context.Context, params *domainRepo.TransactionFilterParams) ([]entity.SalesTransaction, int64, error) {
	var transactions []entity.SalesTransaction
	var total int64

	query := r.db.WithContext(ctx).
		Model(&entity.SalesTransaction{}).
		Scopes(TenantScope(ctx))

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.SourceType != nil {
		query = query.Where("source_type = ?", *params.SourceType)
	}
	if params.CustomerID != nil {
		query = query.Where("customer_id = ?", *params.CustomerID)
	}
	if params.StartDate != nil {
		query = query.Where("created_at >= ?", *params.StartDate)
	}
	if params.EndDate != nil {
		query = query.Where("created_at < ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Customer").Preload("Items").
		Order("created_at DESC").
		Offset(params.Pagination.Offset()).
		Limit(params.Pagination.PerPage).
		Find(&transactions).Error
	return transactions, total, err
}
