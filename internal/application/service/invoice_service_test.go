package service

import (
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/salonkita/salonkita-api/internal/domain/billing"
	"github.com/salonkita/salonkita-api/internal/domain/entity"
	"github.com/salonkita/salonkita-api/internal/domain/enum"
	"github.com/salonkita/salonkita-api/pkg/apperror"
	"github.com/salonkita/salonkita-api/pkg/qris"
	"github.com/shopspring/decimal"
)

type invoiceFixture struct {
	*transactionFixture
	invoices *fakeInvoiceRepo
	service  *InvoiceService
	seqRepo  *fakeSequenceRepo
}

func newInvoiceFixture(pricing billing.PricingRuleSet) *invoiceFixture {
	base := newTransactionFixture(pricing)
	invoices := newFakeInvoiceRepo()
	seqRepo := newFakeSequenceRepo()

	return &invoiceFixture{
		transactionFixture: base,
		invoices:           invoices,
		seqRepo:            seqRepo,
		service: NewInvoiceService(
			base.tenantRepo,
			base.transRepo,
			invoices,
			seqRepo,
		),
	}
}

// settle creates a transaction to invoice against
func (fix *invoiceFixture) settle(t *testing.T, paid int64) *entity.SalesTransaction {
	t.Helper()
	trx, err := fix.transactionFixture.service.CreateTransaction(tenantCtx(fix.tenant.ID), &CreateTransactionInput{
		SourceType: enum.SourceTypeOnTheSpot,
		CustomerID: fix.customer.ID,
		Items:      []QuoteItemInput{{ServiceID: fix.haircut.ID, Quantity: 2}},
		Payments:   []billing.PaymentEntry{{Method: enum.PaymentMethodCash, Amount: paid}},
	})
	if err != nil {
		t.Fatalf("settle: %v", err)
	}
	// GetByID on the real repository preloads the customer; the fake
	// hands back what was stored, so attach it the same way.
	trx.Customer = fix.customer
	return trx
}

func TestComposeInvoice_SettledTransaction(t *testing.T) {
	pricing := billing.PricingRuleSet{TaxPercentage: decimal.NewFromInt(10)}
	fix := newInvoiceFixture(pricing)
	ctx := tenantCtx(fix.tenant.ID)

	trx := fix.settle(t, 110000)

	inv, err := fix.service.ComposeInvoice(ctx, trx.ID)
	if err != nil {
		t.Fatalf("ComposeInvoice: %v", err)
	}

	if inv.InvoiceNumber != "INV-000001" {
		t.Errorf("number = %q, want INV-000001", inv.InvoiceNumber)
	}
	if inv.Status != enum.InvoiceStatusPaid || inv.PaidDate == nil {
		t.Errorf("a fully settled transaction must invoice as paid, got %v", inv.Status)
	}
	if inv.Subtotal != trx.Subtotal || inv.GrandTotal != trx.GrandTotal {
		t.Errorf("totals drifted: invoice %d/%d vs transaction %d/%d",
			inv.Subtotal, inv.GrandTotal, trx.Subtotal, trx.GrandTotal)
	}
	if inv.CustomerName != "Rina" {
		t.Errorf("customer snapshot = %q", inv.CustomerName)
	}
	if len(inv.Items) != 1 || inv.Items[0].ServiceName != "Haircut" {
		t.Errorf("unexpected items %+v", inv.Items)
	}

	payload, err := qris.Decode(inv.PaymentReference)
	if err != nil {
		t.Fatalf("payment reference must decode: %v", err)
	}
	if payload.TenantSlug != "studio-sari" || payload.InvoiceNumber != inv.InvoiceNumber || payload.Amount != inv.GrandTotal {
		t.Errorf("unexpected payload %+v", payload)
	}
}

func TestComposeInvoice_Idempotent(t *testing.T) {
	fix := newInvoiceFixture(billing.PricingRuleSet{})
	ctx := tenantCtx(fix.tenant.ID)
	trx := fix.settle(t, 100000)

	first, err := fix.service.ComposeInvoice(ctx, trx.ID)
	if err != nil {
		t.Fatalf("first compose: %v", err)
	}
	second, err := fix.service.ComposeInvoice(ctx, trx.ID)
	if err != nil {
		t.Fatalf("second compose: %v", err)
	}

	if first.ID != second.ID {
		t.Errorf("compose created a second invoice: %s vs %s", first.ID, second.ID)
	}
	if second.InvoiceNumber != "INV-000001" {
		t.Errorf("number = %q; the sequence must not advance on replays", second.InvoiceNumber)
	}
	if len(fix.invoices.invoices) != 1 {
		t.Errorf("stored invoices = %d, want 1", len(fix.invoices.invoices))
	}
}

func TestComposeInvoice_RuleEditsDoNotLeak(t *testing.T) {
	pricing := billing.PricingRuleSet{TaxPercentage: decimal.NewFromInt(10)}
	fix := newInvoiceFixture(pricing)
	ctx := tenantCtx(fix.tenant.ID)
	trx := fix.settle(t, 110000)

	// Tenant doubles the tax rate between settlement and invoicing.
	fix.tenant.Settings.Pricing = billing.PricingRuleSet{TaxPercentage: decimal.NewFromInt(20)}

	inv, err := fix.service.ComposeInvoice(ctx, trx.ID)
	if err != nil {
		t.Fatalf("ComposeInvoice: %v", err)
	}
	if inv.TaxAmount != 10000 || inv.GrandTotal != 110000 {
		t.Errorf("invoice picked up the new rules: tax = %d grand = %d", inv.TaxAmount, inv.GrandTotal)
	}
}

func TestComposeInvoice_PartialPaymentDraft(t *testing.T) {
	fix := newInvoiceFixture(billing.PricingRuleSet{})
	fix.tenant.Settings.InvoiceGraceDays = 7
	ctx := tenantCtx(fix.tenant.ID)
	trx := fix.settle(t, 60000) // of 100000

	inv, err := fix.service.ComposeInvoice(ctx, trx.ID)
	if err != nil {
		t.Fatalf("ComposeInvoice: %v", err)
	}
	if inv.Status != enum.InvoiceStatusDraft || inv.PaidDate != nil {
		t.Errorf("partially paid transaction must invoice as draft, got %v", inv.Status)
	}
	if inv.TotalPaid != 60000 {
		t.Errorf("total paid = %d, want 60000", inv.TotalPaid)
	}
	if got := inv.DueDate.Sub(inv.IssueDate); got != 7*24*time.Hour {
		t.Errorf("due date offset = %v, want 7 days", got)
	}
}

func TestInvoiceLifecycle(t *testing.T) {
	fix := newInvoiceFixture(billing.PricingRuleSet{})
	ctx := tenantCtx(fix.tenant.ID)
	trx := fix.settle(t, 50000) // partial, drafts
	inv, err := fix.service.ComposeInvoice(ctx, trx.ID)
	if err != nil {
		t.Fatalf("ComposeInvoice: %v", err)
	}

	sent, err := fix.service.MarkSent(ctx, inv.ID)
	if err != nil {
		t.Fatalf("MarkSent: %v", err)
	}
	if sent.Status != enum.InvoiceStatusSent {
		t.Errorf("status = %v, want sent", sent.Status)
	}

	if _, err := fix.service.MarkSent(ctx, inv.ID); err == nil {
		t.Error("sending twice must fail")
	}

	paid, err := fix.service.MarkPaid(ctx, inv.ID)
	if err != nil {
		t.Fatalf("MarkPaid: %v", err)
	}
	if paid.Status != enum.InvoiceStatusPaid || paid.PaidDate == nil {
		t.Errorf("status = %v paidDate = %v", paid.Status, paid.PaidDate)
	}
	if paid.TotalPaid != paid.GrandTotal {
		t.Errorf("total paid = %d, want %d", paid.TotalPaid, paid.GrandTotal)
	}

	_, err = fix.service.MarkPaid(ctx, inv.ID)
	if err == nil {
		t.Fatal("paying twice must fail")
	}
	if code := apperror.GetAppError(err).Code; code != http.StatusConflict {
		t.Errorf("code = %d, want 409", code)
	}
}

func TestSweepOverdue(t *testing.T) {
	fix := newInvoiceFixture(billing.PricingRuleSet{})
	ctx := tenantCtx(fix.tenant.ID)

	now := time.Now()
	overdue := &entity.Invoice{TenantID: fix.tenant.ID, Status: enum.InvoiceStatusSent, DueDate: now.AddDate(0, 0, -3)}
	current := &entity.Invoice{TenantID: fix.tenant.ID, Status: enum.InvoiceStatusSent, DueDate: now.AddDate(0, 0, 3)}
	draft := &entity.Invoice{TenantID: fix.tenant.ID, Status: enum.InvoiceStatusDraft, DueDate: now.AddDate(0, 0, -3)}
	for _, inv := range []*entity.Invoice{overdue, current, draft} {
		inv.TransactionID = uuid.New()
		if err := fix.invoices.Create(ctx, inv); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	flipped, err := fix.service.SweepOverdue(ctx)
	if err != nil {
		t.Fatalf("SweepOverdue: %v", err)
	}
	if flipped != 1 {
		t.Errorf("flipped = %d, want 1", flipped)
	}
	if overdue.Status != enum.InvoiceStatusOverdue {
		t.Errorf("past-due sent invoice not flipped, status = %v", overdue.Status)
	}
	if current.Status != enum.InvoiceStatusSent || draft.Status != enum.InvoiceStatusDraft {
		t.Error("sweep must only touch sent invoices past their due date")
	}
}
