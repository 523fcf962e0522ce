package billing

import (
	"fmt"

	"github.com/salonkita/salonkita-api/internal/domain/enum"
	"github.com/salonkita/salonkita-api/pkg/apperror"
)

// PaymentEntry is one user-entered payment towards a transaction total.
// A transaction may be split across any number of entries and methods.
type PaymentEntry struct {
	Method    enum.PaymentMethod `json:"method"`
	Amount    int64              `json:"amount"`
	Reference string             `json:"reference,omitempty"`
}

// Settlement is the outcome of reconciling payment entries against a
// quote total. A positive Remaining with Valid true is a down payment,
// not an error; the remaining balance is surfaced for the caller.
type Settlement struct {
	TotalPaid int64                `json:"total_paid"`
	Remaining int64                `json:"remaining"`
	Valid     bool                 `json:"valid"`
	Errors    []apperror.FieldError `json:"errors,omitempty"`
}

// Err converts an invalid settlement into a validation error carrying the
// per-field detail verbatim, so the UI can point at the exact entry.
func (s Settlement) Err() error {
	if s.Valid {
		return nil
	}
	return apperror.NewValidationError(s.Errors)
}

// Reconcile validates a set of payment entries against a quote's grand
// total. Enforcement is strict against the integral currency: any
// overpayment is rejected with no tolerance. A display layer may apply
// its own epsilon for float rendering, but never this engine.
func Reconcile(payments []PaymentEntry, quoteTotal int64) Settlement {
	if len(payments) == 0 {
		return Settlement{
			Remaining: quoteTotal,
			Errors:    []apperror.FieldError{{Field: "payments", Message: "no payments"}},
		}
	}

	var fieldErrors []apperror.FieldError
	var totalPaid int64
	for i, p := range payments {
		if !p.Method.IsValid() {
			fieldErrors = append(fieldErrors, apperror.FieldError{
				Field: fmt.Sprintf("payments[%d].method", i), Message: "unknown method",
			})
		}
		if p.Amount < 0 {
			fieldErrors = append(fieldErrors, apperror.FieldError{
				Field: fmt.Sprintf("payments[%d].amount", i), Message: "must not be negative",
			})
			continue
		}
		totalPaid += p.Amount
	}

	if totalPaid > quoteTotal {
		fieldErrors = append(fieldErrors, apperror.FieldError{
			Field: "payments", Message: "overpayment",
		})
	}

	if len(fieldErrors) > 0 {
		return Settlement{TotalPaid: totalPaid, Remaining: quoteTotal - totalPaid, Errors: fieldErrors}
	}

	return Settlement{
		TotalPaid: totalPaid,
		Remaining: quoteTotal - totalPaid,
		Valid:     true,
	}
}
