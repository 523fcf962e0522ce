package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/salonkita/salonkita-api/internal/domain/entity"
	"github.com/salonkita/salonkita-api/internal/domain/enum"
	"github.com/salonkita/salonkita-api/pkg/pagination"
)

// InvoiceFilterParams contains filtering parameters for invoice queries
type InvoiceFilterParams struct {
	Pagination *pagination.PaginationParams
	Status     *enum.InvoiceStatus
	CustomerID *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
}

// InvoiceRepository defines the interface for invoice persistence
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)
	// GetByTransactionID returns nil, nil when the transaction has no
	// invoice yet; the composer uses this as its idempotency check.
	GetByTransactionID(ctx context.Context, transactionID uuid.UUID) (*entity.Invoice, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.InvoiceStatus, paidDate *time.Time) error
	List(ctx context.Context, params *InvoiceFilterParams) ([]entity.Invoice, int64, error)
	// ListByIssueDateRange returns all invoices issued inside [start, end)
	// with items preloaded, for aggregation
	ListByIssueDateRange(ctx context.Context, start, end time.Time) ([]entity.Invoice, error)
	// MarkOverdue flips every sent invoice whose due date passed before
	// now to overdue, returning how many rows changed
	MarkOverdue(ctx context.Context, now time.Time) (int64, error)
	// MarkOverdueAll is the unscoped variant used by the background
	// sweep, which runs without a tenant on the context
	MarkOverdueAll(ctx context.Context, now time.Time) (int64, error)
}
