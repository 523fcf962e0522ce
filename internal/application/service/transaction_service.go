package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/salonkita/salonkita-api/internal/domain/billing"
	"github.com/salonkita/salonkita-api/internal/domain/entity"
	"github.com/salonkita/salonkita-api/internal/domain/enum"
	"github.com/salonkita/salonkita-api/internal/domain/repository"
	infraRepo "github.com/salonkita/salonkita-api/internal/infrastructure/repository"
	"github.com/salonkita/salonkita-api/pkg/apperror"
	"github.com/salonkita/salonkita-api/pkg/pagination"
	"github.com/salonkita/salonkita-api/pkg/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransactionService assembles validated, fully-settled sales
// transactions. It is the only writer of transaction records.
type TransactionService struct {
	tenantRepo      repository.TenantRepository
	customerRepo    repository.CustomerRepository
	serviceRepo     repository.ServiceRepository
	bookingRepo     repository.BookingRepository
	transactionRepo repository.TransactionRepository
	sequenceRepo    repository.SequenceRepository
}

// NewTransactionService creates a new transaction service
func NewTransactionService(
	tenantRepo repository.TenantRepository,
	customerRepo repository.CustomerRepository,
	serviceRepo repository.ServiceRepository,
	bookingRepo repository.BookingRepository,
	transactionRepo repository.TransactionRepository,
	sequenceRepo repository.SequenceRepository,
) *TransactionService {
	return &TransactionService{
		tenantRepo:      tenantRepo,
		customerRepo:    customerRepo,
		serviceRepo:     serviceRepo,
		bookingRepo:     bookingRepo,
		transactionRepo: transactionRepo,
		sequenceRepo:    sequenceRepo,
	}
}

// CreateTransactionInput represents the create transaction input
type CreateTransactionInput struct {
	SourceType       enum.SourceType
	CustomerID       uuid.UUID
	BookingID        *uuid.UUID
	Items            []QuoteItemInput
	TravelDistanceKm *decimal.Decimal
	Payments         []billing.PaymentEntry
	Notes            *string
}

// CreateTransaction validates the cart and payments, prices the cart
// under the tenant's current rules, assigns the next transaction number
// and persists everything atomically. For a booking-backed transaction
// the booking settle rides in the same write, so the record and the
// booking status can never disagree. The quote and the rule set that
// produced it are frozen onto the record.
//
// Number assignment can collide under concurrency; the create is retried
// once with a fresh number before giving up.
func (s *TransactionService) CreateTransaction(ctx context.Context, input *CreateTransactionInput) (*entity.SalesTransaction, error) {
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

	customer, err := s.customerRepo.GetByID(ctx, input.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}

	var (
		quote        billing.Quote
		items        []entity.TransactionItem
		ruleSnapshot billing.PricingRuleSet
	)

	switch input.SourceType {
	case enum.SourceTypeOnTheSpot:
		lineItems, err := resolveLineItems(ctx, s.serviceRepo, input.Items)
		if err != nil {
			return nil, err
		}
		ruleSnapshot = tenant.Settings.Pricing
		quote, err = billing.ComputeQuote(lineItems, ruleSnapshot, input.TravelDistanceKm)
		if err != nil {
			return nil, err
		}
		items = make([]entity.TransactionItem, len(lineItems))
		for i, li := range lineItems {
			items[i] = entity.TransactionItem{
				ServiceID:   li.ServiceID,
				ServiceName: li.Name,
				Quantity:    li.Quantity,
				UnitPrice:   li.UnitPrice,
				Total:       int64(li.Quantity) * li.UnitPrice,
			}
		}

	case enum.SourceTypeFromBooking:
		booking, err := s.resolveBooking(ctx, input)
		if err != nil {
			return nil, err
		}
		// The booking price is final: it is carried as a single line
		// under an empty rule set, so no tax or fees are layered on top
		// and any later recomputation reproduces it exactly.
		serviceName := "Booked service"
		if booking.Service != nil {
			serviceName = booking.Service.Name
		}
		items = []entity.TransactionItem{{
			ServiceID:   booking.ServiceID,
			ServiceName: serviceName,
			Quantity:    1,
			UnitPrice:   booking.TotalAmount,
			Total:       booking.TotalAmount,
		}}
		ruleSnapshot = billing.PricingRuleSet{}
		quote = billing.Quote{
			Subtotal:     booking.TotalAmount,
			GrandTotal:   booking.TotalAmount,
			FeeBreakdown: []billing.FeeLine{},
		}

	default:
		return nil, apperror.NewInvalidInputError("source_type", "must be on_the_spot or from_booking")
	}

	settlement := billing.Reconcile(input.Payments, quote.GrandTotal)
	if err := settlement.Err(); err != nil {
		return nil, err
	}

	status := enum.TransactionStatusPending
	if settlement.Remaining == 0 {
		status = enum.TransactionStatusCompleted
	}

	payments := make([]entity.PaymentRecord, len(input.Payments))
	for i, p := range input.Payments {
		payments[i] = entity.PaymentRecord{Method: p.Method, Amount: p.Amount}
		if p.Reference != "" {
			ref := p.Reference
			payments[i].Reference = &ref
		}
	}

	var transaction *entity.SalesTransaction
	for attempt := 0; attempt < 2; attempt++ {
		seq, err := s.sequenceRepo.Next(ctx, tenantID, entity.SequenceScopeTransaction)
		if err != nil {
			return nil, err
		}

		transaction = &entity.SalesTransaction{
			TenantID:              tenantID,
			TransactionNumber:     utils.FormatDocumentNumber(tenant.Settings.TransactionPrefix, seq),
			SourceType:            input.SourceType,
			CustomerID:            input.CustomerID,
			BookingID:             input.BookingID,
			TravelDistanceKm:      input.TravelDistanceKm,
			Status:                status,
			Notes:                 input.Notes,
			Subtotal:              quote.Subtotal,
			TaxAmount:             quote.TaxAmount,
			ServiceChargeAmount:   quote.ServiceChargeAmount,
			TravelSurchargeAmount: quote.TravelSurchargeAmount,
			AdditionalFeesTotal:   quote.AdditionalFeesTotal,
			FeeBreakdown:          quote.FeeBreakdown,
			GrandTotal:            quote.GrandTotal,
			RuleSnapshot:          ruleSnapshot,
			TotalPaid:             settlement.TotalPaid,
			Items:                 cloneItems(items),
			Payments:              clonePayments(payments),
		}

		err = s.transactionRepo.Create(ctx, transaction)
		if err == nil {
			break
		}
		if errors.Is(err, repository.ErrBookingSettled) {
			// A concurrent create won the booking after our status check.
			return nil, apperror.NewConflictError("Booking is already settled")
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if attempt == 1 {
				return nil, apperror.NewConcurrencyError("Transaction number collision, please retry")
			}
			continue
		}
		return nil, err
	}

	return transaction, nil
}

// resolveBooking validates the booking reference on a from_booking input
func (s *TransactionService) resolveBooking(ctx context.Context, input *CreateTransactionInput) (*entity.Booking, error) {
	if input.BookingID == nil {
		return nil, apperror.NewInvalidInputError("booking_id", "required for from_booking transactions")
	}
	if len(input.Items) > 0 {
		return nil, apperror.NewInvalidInputError("items", "not allowed for from_booking transactions")
	}

	booking, err := s.bookingRepo.GetByID(ctx, *input.BookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, apperror.NewNotFoundError("Booking")
	}
	if booking.Status == entity.BookingStatusSettled {
		return nil, apperror.NewConflictError("Booking is already settled")
	}
	if booking.Status == entity.BookingStatusCancelled {
		return nil, apperror.NewConflictError("Booking is cancelled")
	}
	if booking.CustomerID != input.CustomerID {
		return nil, apperror.NewInvalidInputError("customer_id", "does not match the booking")
	}
	return booking, nil
}

// GetTransaction retrieves a transaction with its items and payments
func (s *TransactionService) GetTransaction(ctx context.Context, id uuid.UUID) (*entity.SalesTransaction, error) {
	transaction, err := s.transactionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if transaction == nil {
		return nil, apperror.NewNotFoundError("Transaction")
	}
	return transaction, nil
}

// ListTransactions lists transactions matching the filter
func (s *TransactionService) ListTransactions(ctx context.Context, params *repository.TransactionFilterParams) (*pagination.PaginatedResult[entity.SalesTransaction], error) {
	transactions, total, err := s.transactionRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(transactions, pag), nil
}

// cloneItems copies item slices so a create retry never reuses rows that
// already picked up generated IDs
func cloneItems(items []entity.TransactionItem) []entity.TransactionItem {
	out := make([]entity.TransactionItem, len(items))
	copy(out, items)
	return out
}

func clonePayments(payments []entity.PaymentRecord) []entity.PaymentRecord {
	out := make([]entity.PaymentRecord, len(payments))
	copy(out, payments)
	return out
}
