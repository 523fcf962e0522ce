package service

import (
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/salonkita/salonkita-api/internal/domain/entity"
	"github.com/salonkita/salonkita-api/internal/domain/enum"
)

func paidInvoice(amount int64, issue time.Time, daysToPay int) entity.Invoice {
	paid := issue.AddDate(0, 0, daysToPay)
	return entity.Invoice{
		CustomerID: uuid.New(),
		Status:     enum.InvoiceStatusPaid,
		IssueDate:  issue,
		PaidDate:   &paid,
		GrandTotal: amount,
		TotalPaid:  amount,
	}
}

func TestSummarizeInvoices(t *testing.T) {
	issue := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	invoices := []entity.Invoice{
		paidInvoice(100000, issue, 2),
		paidInvoice(200000, issue, 4),
		{Status: enum.InvoiceStatusDraft, IssueDate: issue, GrandTotal: 50000},
		{Status: enum.InvoiceStatusSent, IssueDate: issue, GrandTotal: 75000},
		{Status: enum.InvoiceStatusOverdue, IssueDate: issue, GrandTotal: 25000},
	}

	summary := summarizeInvoices(invoices)

	if summary.TotalRevenue != 450000 {
		t.Errorf("total = %d, want 450000", summary.TotalRevenue)
	}
	if summary.PaidRevenue != 300000 || summary.PaidCount != 2 {
		t.Errorf("paid = %d/%d, want 300000/2", summary.PaidRevenue, summary.PaidCount)
	}
	if summary.PendingRevenue != 125000 || summary.PendingCount != 2 {
		t.Errorf("pending = %d/%d, want 125000/2 (draft and sent)", summary.PendingRevenue, summary.PendingCount)
	}
	if summary.OverdueRevenue != 25000 || summary.OverdueCount != 1 {
		t.Errorf("overdue = %d/%d, want 25000/1", summary.OverdueRevenue, summary.OverdueCount)
	}
	if summary.PaymentRatePercent != 40 {
		t.Errorf("payment rate = %v, want 40", summary.PaymentRatePercent)
	}
	// Only the two paid invoices have a paid date: (2+4)/2.
	if math.Abs(summary.AveragePaymentDays-3) > 1e-9 {
		t.Errorf("average payment days = %v, want 3", summary.AveragePaymentDays)
	}
}

func TestSummarizeInvoices_Empty(t *testing.T) {
	summary := summarizeInvoices(nil)
	if summary.PaymentRatePercent != 0 {
		t.Errorf("payment rate on empty set = %v, want 0", summary.PaymentRatePercent)
	}
	if summary.AveragePaymentDays != 0 {
		t.Errorf("average payment days on empty set = %v, want 0", summary.AveragePaymentDays)
	}
}

func TestBucketByMonth_ZeroFilled(t *testing.T) {
	windowStart := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	invoices := []entity.Invoice{
		paidInvoice(100000, time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC), 0),
		{Status: enum.InvoiceStatusSent, IssueDate: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), GrandTotal: 40000},
		paidInvoice(60000, time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC), 1),
	}

	buckets := bucketByMonth(invoices, windowStart, 3)
	if len(buckets) != 3 {
		t.Fatalf("buckets = %d, want 3", len(buckets))
	}

	if buckets[0].Month != "2026-01" || buckets[0].TotalRevenue != 100000 {
		t.Errorf("january bucket = %+v", buckets[0])
	}
	// February has no invoices but must still appear.
	if buckets[1].Month != "2026-02" || buckets[1].TotalRevenue != 0 || buckets[1].InvoiceCount != 0 {
		t.Errorf("february bucket = %+v, want zero bucket", buckets[1])
	}
	if buckets[2].Month != "2026-03" || buckets[2].TotalRevenue != 100000 || buckets[2].PaidRevenue != 60000 {
		t.Errorf("march bucket = %+v", buckets[2])
	}
}

func TestBucketByCustomer(t *testing.T) {
	alice := uuid.New()
	budi := uuid.New()
	issue := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	invoices := []entity.Invoice{
		{CustomerID: alice, CustomerName: "Alice", Status: enum.InvoiceStatusPaid, IssueDate: issue, GrandTotal: 100000},
		{CustomerID: alice, CustomerName: "Alice", Status: enum.InvoiceStatusSent, IssueDate: issue, GrandTotal: 50000},
		{CustomerID: budi, CustomerName: "Budi", Status: enum.InvoiceStatusOverdue, IssueDate: issue, GrandTotal: 200000},
	}

	result := bucketByCustomer(invoices)
	if len(result) != 2 {
		t.Fatalf("customers = %d, want 2", len(result))
	}

	// Budi leads on total revenue.
	if result[0].CustomerName != "Budi" || result[0].OverdueRevenue != 200000 {
		t.Errorf("top customer = %+v", result[0])
	}
	if result[1].CustomerName != "Alice" || result[1].PaidRevenue != 100000 || result[1].PendingRevenue != 50000 || result[1].InvoiceCount != 2 {
		t.Errorf("second customer = %+v", result[1])
	}
}

func TestBucketByMonth_ZoneBoundary(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*3600)
	windowStart := time.Date(2026, 7, 1, 0, 0, 0, 0, jakarta)

	invoices := []entity.Invoice{
		// 2026-07-31 18:00 UTC is already 2026-08-01 01:00 in Jakarta.
		{Status: enum.InvoiceStatusSent, IssueDate: time.Date(2026, 7, 31, 18, 0, 0, 0, time.UTC), GrandTotal: 80000},
		// 2026-06-30 17:30 UTC is 2026-07-01 00:30 in Jakarta.
		{Status: enum.InvoiceStatusSent, IssueDate: time.Date(2026, 6, 30, 17, 30, 0, 0, time.UTC), GrandTotal: 30000},
	}

	buckets := bucketByMonth(invoices, windowStart, 2)
	if len(buckets) != 2 {
		t.Fatalf("buckets = %d, want 2", len(buckets))
	}
	if buckets[0].Month != "2026-07" || buckets[0].TotalRevenue != 30000 || buckets[0].InvoiceCount != 1 {
		t.Errorf("july bucket = %+v, want the late-june-UTC invoice", buckets[0])
	}
	if buckets[1].Month != "2026-08" || buckets[1].TotalRevenue != 80000 || buckets[1].InvoiceCount != 1 {
		t.Errorf("august bucket = %+v, want the late-july-UTC invoice", buckets[1])
	}
}

func TestBucketByCustomer_AveragePaymentDays(t *testing.T) {
	ani := uuid.New()
	citra := uuid.New()
	issue := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	paidIn4 := paidInvoice(100000, issue, 4)
	paidIn4.CustomerID = ani
	paidIn4.CustomerName = "Ani"
	paidIn2 := paidInvoice(50000, issue, 2)
	paidIn2.CustomerID = ani
	paidIn2.CustomerName = "Ani"

	invoices := []entity.Invoice{
		paidIn4,
		paidIn2,
		// Unpaid invoices never contribute a payment-time sample.
		{CustomerID: ani, CustomerName: "Ani", Status: enum.InvoiceStatusSent, IssueDate: issue, GrandTotal: 25000},
		{CustomerID: citra, CustomerName: "Citra", Status: enum.InvoiceStatusOverdue, IssueDate: issue, GrandTotal: 500000},
	}

	result := bucketByCustomer(invoices)
	if len(result) != 2 {
		t.Fatalf("customers = %d, want 2", len(result))
	}

	// Citra leads on total revenue but has no paid invoices.
	if result[0].CustomerName != "Citra" || result[0].AveragePaymentDays != 0 {
		t.Errorf("top customer = %+v, want Citra with zero payment days", result[0])
	}
	if result[1].CustomerName != "Ani" {
		t.Fatalf("second customer = %+v, want Ani", result[1])
	}
	if math.Abs(result[1].AveragePaymentDays-3) > 1e-9 {
		t.Errorf("average payment days = %v, want 3 ((4+2)/2, unpaid excluded)", result[1].AveragePaymentDays)
	}
}

func TestSummarize_DateRange(t *testing.T) {
	repo := newFakeInvoiceRepo()
	ctx := tenantCtx(uuid.New())

	inside := paidInvoice(100000, time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC), 0)
	inside.TransactionID = uuid.New()
	outside := paidInvoice(999999, time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC), 0)
	outside.TransactionID = uuid.New()
	for _, inv := range []*entity.Invoice{&inside, &outside} {
		if err := repo.Create(ctx, inv); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	svc := NewReportService(repo)
	summary, err := svc.Summarize(ctx,
		time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if summary.TotalRevenue != 100000 || summary.InvoiceCount != 1 {
		t.Errorf("summary = %+v, want only the june invoice", summary)
	}
}
