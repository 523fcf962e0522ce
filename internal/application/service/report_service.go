package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/salonkita/salonkita-api/internal/domain/entity"
	"github.com/salonkita/salonkita-api/internal/domain/enum"
	"github.com/salonkita/salonkita-api/internal/domain/repository"
)

// ReportService aggregates revenue figures from invoices. Invoices are
// the single revenue source of truth here: because a transaction can
// never be invoiced twice, nothing is ever double-counted.
type ReportService struct {
	invoiceRepo repository.InvoiceRepository
}

// NewReportService creates a new report service
func NewReportService(invoiceRepo repository.InvoiceRepository) *ReportService {
	return &ReportService{invoiceRepo: invoiceRepo}
}

// FinancialSummary is the headline revenue picture for a date range
type FinancialSummary struct {
	TotalRevenue       int64   `json:"total_revenue"`
	PaidRevenue        int64   `json:"paid_revenue"`
	PendingRevenue     int64   `json:"pending_revenue"`
	OverdueRevenue     int64   `json:"overdue_revenue"`
	InvoiceCount       int     `json:"invoice_count"`
	PaidCount          int     `json:"paid_count"`
	PendingCount       int     `json:"pending_count"`
	OverdueCount       int     `json:"overdue_count"`
	PaymentRatePercent float64 `json:"payment_rate_percent"`
	AveragePaymentDays float64 `json:"average_payment_days"`
}

// MonthlyBucket is one month's revenue in a trailing breakdown
type MonthlyBucket struct {
	Month        string `json:"month"` // "2006-01"
	TotalRevenue int64  `json:"total_revenue"`
	PaidRevenue  int64  `json:"paid_revenue"`
	InvoiceCount int    `json:"invoice_count"`
}

// CustomerRevenue is one customer's revenue standing. AveragePaymentDays
// follows the same rule as the summary: only invoices with a recorded
// paid date contribute, and it stays zero when the customer has none.
type CustomerRevenue struct {
	CustomerID         uuid.UUID `json:"customer_id"`
	CustomerName       string    `json:"customer_name"`
	TotalRevenue       int64     `json:"total_revenue"`
	PaidRevenue        int64     `json:"paid_revenue"`
	PendingRevenue     int64     `json:"pending_revenue"`
	OverdueRevenue     int64     `json:"overdue_revenue"`
	InvoiceCount       int       `json:"invoice_count"`
	AveragePaymentDays float64   `json:"average_payment_days"`
}

// Summarize computes the financial summary over invoices issued inside
// [start, end)
func (s *ReportService) Summarize(ctx context.Context, start, end time.Time) (*FinancialSummary, error) {
	invoices, err := s.invoiceRepo.ListByIssueDateRange(ctx, start, end)
	if err != nil {
		return nil, err
	}
	summary := summarizeInvoices(invoices)
	return &summary, nil
}

// summarizeInvoices folds a set of invoices into a summary. Draft and
// sent invoices count as pending; the payment rate is zero, not NaN,
// when there are no invoices at all. Average payment days considers
// only invoices with a recorded paid date.
func summarizeInvoices(invoices []entity.Invoice) FinancialSummary {
	var summary FinancialSummary
	var paymentDays float64
	var paymentSamples int

	for _, inv := range invoices {
		summary.InvoiceCount++
		summary.TotalRevenue += inv.GrandTotal

		switch inv.Status {
		case enum.InvoiceStatusPaid:
			summary.PaidCount++
			summary.PaidRevenue += inv.GrandTotal
		case enum.InvoiceStatusOverdue:
			summary.OverdueCount++
			summary.OverdueRevenue += inv.GrandTotal
		default:
			summary.PendingCount++
			summary.PendingRevenue += inv.GrandTotal
		}

		if days, ok := inv.PaymentDays(); ok {
			paymentDays += days
			paymentSamples++
		}
	}

	if summary.InvoiceCount > 0 {
		summary.PaymentRatePercent = float64(summary.PaidCount) / float64(summary.InvoiceCount) * 100
	}
	if paymentSamples > 0 {
		summary.AveragePaymentDays = paymentDays / float64(paymentSamples)
	}
	return summary
}

// MonthlyBreakdown returns revenue per month for the trailing window
// ending at the current month. Months with no invoices appear as zero
// buckets rather than being skipped. The window bounds and the bucket
// keys all come from the server's location, so an invoice issued in the
// boundary hours of a month lands in the same bucket the window query
// found it in.
func (s *ReportService) MonthlyBreakdown(ctx context.Context, months int) ([]MonthlyBucket, error) {
	if months < 1 {
		months = 1
	}

	now := time.Now()
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	windowStart := firstOfMonth.AddDate(0, -(months - 1), 0)
	windowEnd := firstOfMonth.AddDate(0, 1, 0)

	invoices, err := s.invoiceRepo.ListByIssueDateRange(ctx, windowStart, windowEnd)
	if err != nil {
		return nil, err
	}
	return bucketByMonth(invoices, windowStart, months), nil
}

// bucketByMonth keys every invoice in windowStart's location. Issue
// dates near midnight on the first of a month bucket by where they fall
// in that location, never by the zone they were stored in.
func bucketByMonth(invoices []entity.Invoice, windowStart time.Time, months int) []MonthlyBucket {
	loc := windowStart.Location()
	buckets := make([]MonthlyBucket, months)
	index := make(map[string]int, months)
	for i := 0; i < months; i++ {
		key := windowStart.AddDate(0, i, 0).Format("2006-01")
		buckets[i] = MonthlyBucket{Month: key}
		index[key] = i
	}

	for _, inv := range invoices {
		i, ok := index[inv.IssueDate.In(loc).Format("2006-01")]
		if !ok {
			continue
		}
		buckets[i].InvoiceCount++
		buckets[i].TotalRevenue += inv.GrandTotal
		if inv.Status == enum.InvoiceStatusPaid {
			buckets[i].PaidRevenue += inv.GrandTotal
		}
	}
	return buckets
}

// CustomerBreakdown aggregates revenue per customer over invoices issued
// inside [start, end), ordered by total revenue descending
func (s *ReportService) CustomerBreakdown(ctx context.Context, start, end time.Time) ([]CustomerRevenue, error) {
	invoices, err := s.invoiceRepo.ListByIssueDateRange(ctx, start, end)
	if err != nil {
		return nil, err
	}
	return bucketByCustomer(invoices), nil
}

func bucketByCustomer(invoices []entity.Invoice) []CustomerRevenue {
	index := make(map[uuid.UUID]int)
	result := make([]CustomerRevenue, 0)
	paymentDays := make([]float64, 0)
	paymentSamples := make([]int, 0)

	for _, inv := range invoices {
		i, ok := index[inv.CustomerID]
		if !ok {
			i = len(result)
			index[inv.CustomerID] = i
			result = append(result, CustomerRevenue{
				CustomerID:   inv.CustomerID,
				CustomerName: inv.CustomerName,
			})
			paymentDays = append(paymentDays, 0)
			paymentSamples = append(paymentSamples, 0)
		}

		result[i].InvoiceCount++
		result[i].TotalRevenue += inv.GrandTotal
		switch inv.Status {
		case enum.InvoiceStatusPaid:
			result[i].PaidRevenue += inv.GrandTotal
		case enum.InvoiceStatusOverdue:
			result[i].OverdueRevenue += inv.GrandTotal
		default:
			result[i].PendingRevenue += inv.GrandTotal
		}

		if days, ok := inv.PaymentDays(); ok {
			paymentDays[i] += days
			paymentSamples[i]++
		}
	}

	// Averages settle before the sort reorders the slice.
	for i := range result {
		if paymentSamples[i] > 0 {
			result[i].AveragePaymentDays = paymentDays[i] / float64(paymentSamples[i])
		}
	}

	sort.SliceStable(result, func(a, b int) bool {
		return result[a].TotalRevenue > result[b].TotalRevenue
	})
	return result
}
