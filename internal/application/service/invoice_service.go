package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/salonkita/salonkita-api/internal/domain/billing"
	"github.com/salonkita/salonkita-api/internal/domain/entity"
	"github.com/salonkita/salonkita-api/internal/domain/enum"
	"github.com/salonkita/salonkita-api/internal/domain/repository"
	infraRepo "github.com/salonkita/salonkita-api/internal/infrastructure/repository"
	"github.com/salonkita/salonkita-api/pkg/apperror"
	"github.com/salonkita/salonkita-api/pkg/pagination"
	"github.com/salonkita/salonkita-api/pkg/qris"
	"github.com/salonkita/salonkita-api/pkg/utils"
	"gorm.io/gorm"
)

// InvoiceService composes invoice documents from sales transactions and
// drives their lifecycle. Composition is idempotent: one transaction
// yields exactly one invoice, ever.
type InvoiceService struct {
	tenantRepo      repository.TenantRepository
	transactionRepo repository.TransactionRepository
	invoiceRepo     repository.InvoiceRepository
	sequenceRepo    repository.SequenceRepository
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(
	tenantRepo repository.TenantRepository,
	transactionRepo repository.TransactionRepository,
	invoiceRepo repository.InvoiceRepository,
	sequenceRepo repository.SequenceRepository,
) *InvoiceService {
	return &InvoiceService{
		tenantRepo:      tenantRepo,
		transactionRepo: transactionRepo,
		invoiceRepo:     invoiceRepo,
		sequenceRepo:    sequenceRepo,
	}
}

// ComposeInvoice creates the invoice for a transaction, or returns the
// existing one when the transaction is already invoiced. The quote is
// recomputed from the stored line items under the rule set frozen at
// settlement time, so rule edits made since never change the document.
func (s *InvoiceService) ComposeInvoice(ctx context.Context, transactionID uuid.UUID) (*entity.Invoice, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Tenant context required")
	}

	existing, err := s.invoiceRepo.GetByTransactionID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	transaction, err := s.transactionRepo.GetByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if transaction == nil {
		return nil, apperror.NewNotFoundError("Transaction")
	}
	if transaction.Customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}

	tenant, err := s.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, apperror.NewNotFoundError("Tenant")
	}

	quote := recomputeQuote(transaction)

	seq, err := s.sequenceRepo.Next(ctx, tenantID, entity.SequenceScopeInvoice)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	invoice := &entity.Invoice{
		TenantID:      tenantID,
		TransactionID: transaction.ID,
		InvoiceNumber: utils.FormatDocumentNumber(tenant.Settings.InvoicePrefix, seq),
		Status:        enum.InvoiceStatusDraft,
		IssueDate:     now,
		DueDate:       now.AddDate(0, 0, tenant.Settings.InvoiceGraceDays),
		CustomerID:    transaction.CustomerID,
		CustomerName:  transaction.Customer.Name,
		CustomerPhone: transaction.Customer.Phone,
		HeaderText:    tenant.Name,
		FooterText:    tenant.Settings.InvoiceFooter,

		Subtotal:              quote.Subtotal,
		TaxAmount:             quote.TaxAmount,
		ServiceChargeAmount:   quote.ServiceChargeAmount,
		TravelSurchargeAmount: quote.TravelSurchargeAmount,
		AdditionalFeesTotal:   quote.AdditionalFeesTotal,
		FeeBreakdown:          quote.FeeBreakdown,
		GrandTotal:            quote.GrandTotal,
		TotalPaid:             transaction.TotalPaid,
	}

	// A fully settled transaction yields a paid invoice immediately;
	// there is nothing left to collect.
	if transaction.RemainingBalance() == 0 {
		invoice.Status = enum.InvoiceStatusPaid
		invoice.PaidDate = &now
	}

	invoice.PaymentReference = qris.Payload{
		TenantSlug:    tenant.Slug,
		InvoiceNumber: invoice.InvoiceNumber,
		Amount:        invoice.GrandTotal,
	}.Encode()

	invoice.Items = make([]entity.InvoiceItem, len(transaction.Items))
	for i, item := range transaction.Items {
		invoice.Items[i] = entity.InvoiceItem{
			ServiceName: item.ServiceName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Total:       item.Total,
		}
	}

	if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
		// Lost a compose race: the unique (tenant, transaction) index
		// fired, so hand back whichever invoice won.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			winner, getErr := s.invoiceRepo.GetByTransactionID(ctx, transactionID)
			if getErr == nil && winner != nil {
				return winner, nil
			}
			return nil, apperror.NewDuplicateInvoiceError(transaction.TransactionNumber)
		}
		return nil, err
	}

	return invoice, nil
}

// recomputeQuote re-derives the invoice totals from the transaction's
// stored items and frozen rule set. When recomputation is impossible the
// settlement-time snapshot is authoritative.
func recomputeQuote(transaction *entity.SalesTransaction) billing.Quote {
	if len(transaction.Items) > 0 {
		quote, err := billing.ComputeQuote(transaction.BillingItems(), transaction.RuleSnapshot, transaction.TravelDistanceKm)
		if err == nil {
			return quote
		}
	}
	return billing.Quote{
		Subtotal:              transaction.Subtotal,
		TaxAmount:             transaction.TaxAmount,
		ServiceChargeAmount:   transaction.ServiceChargeAmount,
		TravelSurchargeAmount: transaction.TravelSurchargeAmount,
		AdditionalFeesTotal:   transaction.AdditionalFeesTotal,
		FeeBreakdown:          transaction.FeeBreakdown,
		GrandTotal:            transaction.GrandTotal,
	}
}

// GetInvoice retrieves an invoice by ID
func (s *InvoiceService) GetInvoice(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	return invoice, nil
}

// ListInvoices lists invoices matching the filter
func (s *InvoiceService) ListInvoices(ctx context.Context, params *repository.InvoiceFilterParams) (*pagination.PaginatedResult[entity.Invoice], error) {
	invoices, total, err := s.invoiceRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(invoices, pag), nil
}

// MarkSent transitions a draft invoice to sent
func (s *InvoiceService) MarkSent(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	invoice, err := s.GetInvoice(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice.Status != enum.InvoiceStatusDraft {
		return nil, apperror.NewConflictError("Only draft invoices can be sent")
	}

	if err := s.invoiceRepo.UpdateStatus(ctx, id, enum.InvoiceStatusSent, nil); err != nil {
		return nil, err
	}
	invoice.Status = enum.InvoiceStatusSent
	return invoice, nil
}

// MarkPaid records full payment on an invoice. Overdue invoices can
// still be paid; paid ones cannot be paid twice.
func (s *InvoiceService) MarkPaid(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	invoice, err := s.GetInvoice(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice.Status == enum.InvoiceStatusPaid {
		return nil, apperror.NewConflictError("Invoice is already paid")
	}

	now := time.Now()
	if err := s.invoiceRepo.UpdateStatus(ctx, id, enum.InvoiceStatusPaid, &now); err != nil {
		return nil, err
	}
	invoice.Status = enum.InvoiceStatusPaid
	invoice.PaidDate = &now
	invoice.TotalPaid = invoice.GrandTotal
	return invoice, nil
}

// SweepOverdue flips every sent invoice past its due date to overdue and
// returns how many were flipped
func (s *InvoiceService) SweepOverdue(ctx context.Context) (int64, error) {
	return s.invoiceRepo.MarkOverdue(ctx, time.Now())
}

// SweepOverdueAll flips past-due sent invoices across every tenant.
// Driven by the background sweep ticker rather than a request.
func (s *InvoiceService) SweepOverdueAll(ctx context.Context) (int64, error) {
	return s.invoiceRepo.MarkOverdueAll(ctx, time.Now())
}
