package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/salonkita/salonkita-api/internal/domain/entity"
	"github.com/salonkita/salonkita-api/internal/domain/enum"
	domainRepo "github.com/salonkita/salonkita-api/internal/domain/repository"
	"gorm.io/gorm"
)

type invoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository creates a new invoice repository
func NewInvoiceRepository(db *gorm.DB) domainRepo.InvoiceRepository {
	return &invoiceRepository{db: db}
}

func (r *invoiceRepository) Create(ctx context.Context, invoice *entity.Invoice) error {
	return r.db.WithContext(ctx).Create(invoice).Error
}

func (r *invoiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := r.db.WithContext(ctx).
		Scopes(TenantScope(ctx)).
		Preload("Items").
		First(&invoice, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &invoice, err
}

func (r *invoiceRepository) GetByTransactionID(ctx context.Context, transactionID uuid.UUID) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := r.db.WithContext(ctx).
		Scopes(TenantScope(ctx)).
		Preload("Items").
		First(&invoice, "transaction_id = ?", transactionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &invoice, err
}

func (r *invoiceRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.InvoiceStatus, paidDate *time.Time) error {
	updates := map[string]interface{}{"status": status}
	if paidDate != nil {
		updates["paid_date"] = *paidDate
		// A paid invoice is collected in full.
		updates["total_paid"] = gorm.Expr("grand_total")
	}
	return r.db.WithContext(ctx).
		Model(&entity.Invoice{}).
		Scopes(TenantScope(ctx)).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *invoiceRepository) List(ctx context.Context, params *domainRepo.InvoiceFilterParams) ([]entity.Invoice, int64, error) {
	var invoices []entity.Invoice
	var total int64

	query := r.db.WithContext(ctx).
		Model(&entity.Invoice{}).
		Scopes(TenantScope(ctx))

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.CustomerID != nil {
		query = query.Where("customer_id = ?", *params.CustomerID)
	}
	if params.StartDate != nil {
		query = query.Where("issue_date >= ?", *params.StartDate)
	}
	if params.EndDate != nil {
		query = query.Where("issue_date < ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Items").
		Order("issue_date DESC").
		Offset(params.Pagination.Offset()).
		Limit(params.Pagination.PerPage).
		Find(&invoices).Error
	return invoices, total, err
}

func (r *invoiceRepository) ListByIssueDateRange(ctx context.Context, start, end time.Time) ([]entity.Invoice, error) {
	var invoices []entity.Invoice
	err := r.db.WithContext(ctx).
		Scopes(TenantScope(ctx)).
		Where("issue_date >= ? AND issue_date < ?", start, end).
		Order("issue_date ASC").
		Find(&invoices).Error
	return invoices, err
}

func (r *invoiceRepository) MarkOverdue(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&entity.Invoice{}).
		Scopes(TenantScope(ctx)).
		Where("status = ? AND due_date < ?", enum.InvoiceStatusSent, now).
		Update("status", enum.InvoiceStatusOverdue)
	return result.RowsAffected, result.Error
}

func (r *invoiceRepository) MarkOverdueAll(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&entity.Invoice{}).
		Where("status = ? AND due_date < ?", enum.InvoiceStatusSent, now).
		Update("status", enum.InvoiceStatusOverdue)
	return result.RowsAffected, result.Error
}
