package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/salonkita/salonkita-api/internal/domain/entity"
	"github.com/salonkita/salonkita-api/internal/domain/enum"
	"github.com/salonkita/salonkita-api/pkg/pagination"
)

// TransactionFilterParams contains filtering parameters for transaction queries
type TransactionFilterParams struct {
	Pagination *pagination.PaginationParams
	Status     *enum.TransactionStatus
	SourceType *enum.SourceType
	CustomerID *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
}

// ErrBookingSettled is returned by Create when the referenced booking is
// no longer confirmed, or another transaction already settled it.
var ErrBookingSettled = errors.New("booking already settled")

// TransactionRepository defines the interface for sales transaction
// persistence. Create persists the transaction together with its items
// and payment records in a single database transaction: either the whole
// record lands or nothing does. When the transaction references a
// booking, flipping that booking to settled is part of the same database
// transaction, and Create fails with ErrBookingSettled if the booking
// was not confirmed anymore.
type TransactionRepository interface {
	Create(ctx context.Context, transaction *entity.SalesTransaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.SalesTransaction, error)
	GetByNumber(ctx context.Context, number string) (*entity.SalesTransaction, error)
	List(ctx context.Context, params *TransactionFilterParams) ([]entity.SalesTransaction, int64, error)
}

// SequenceRepository hands out per-tenant monotonic document numbers.
// Next must be atomic: two concurrent callers for the same (tenant,
// scope) must never receive the same value.
type SequenceRepository interface {
	Next(ctx context.Context, tenantID uuid.UUID, scope string) (int64, error)
}
