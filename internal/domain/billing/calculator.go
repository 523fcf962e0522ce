package billing

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/salonkita/salonkita-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

// LineItem is one service entry in a cart
type LineItem struct {
	ServiceID uuid.UUID `json:"service_id"`
	Name      string    `json:"name"`
	Quantity  int       `json:"quantity"`
	UnitPrice int64     `json:"unit_price"`
}

// FeeLine is one additional fee's contribution to a quote, retained
// individually for auditability rather than folded into a single sum.
type FeeLine struct {
	FeeID  string `json:"fee_id"`
	Name   string `json:"name"`
	Amount int64  `json:"amount"`
}

// Quote is the fully itemized price breakdown for a cart under a rule set.
// All amounts are whole rupiah. Derived, never persisted on its own.
type Quote struct {
	Subtotal              int64     `json:"subtotal"`
	TaxAmount             int64     `json:"tax_amount"`
	ServiceChargeAmount   int64     `json:"service_charge_amount"`
	TravelSurchargeAmount int64     `json:"travel_surcharge_amount"`
	AdditionalFeesTotal   int64     `json:"additional_fees_total"`
	FeeBreakdown          []FeeLine `json:"fee_breakdown"`
	GrandTotal            int64     `json:"grand_total"`
}

// ComputeQuote turns a cart plus a tenant's pricing rules into an itemized
// Quote. It is a pure function: no side effects, fully deterministic, and
// it is the only total-calculation path in the system. Live UI previews
// and final transaction creation both call it, so the preview can never
// drift from what is charged.
//
// travelKm is the already-resolved home-visit distance; pass nil for
// walk-in transactions. The surcharge applies only when the rule set
// requires it and a distance was supplied.
func ComputeQuote(items []LineItem, rules PricingRuleSet, travelKm *decimal.Decimal) (Quote, error) {
	if travelKm != nil && travelKm.IsNegative() {
		return Quote{}, apperror.NewInvalidInputError("travel_distance_km", "must not be negative")
	}

	var subtotal int64
	for i, item := range items {
		if item.Quantity < 1 {
			return Quote{}, apperror.NewInvalidInputError(
				fmt.Sprintf("items[%d].quantity", i), "must be at least 1")
		}
		if item.UnitPrice < 0 {
			return Quote{}, apperror.NewInvalidInputError(
				fmt.Sprintf("items[%d].unit_price", i), "must not be negative")
		}
		subtotal += int64(item.Quantity) * item.UnitPrice
	}

	quote := Quote{
		Subtotal:     subtotal,
		TaxAmount:    percentOf(subtotal, rules.TaxPercentage),
		FeeBreakdown: make([]FeeLine, 0, len(rules.AdditionalFees)),
	}

	if rules.ServiceCharge.Required {
		quote.ServiceChargeAmount = chargeAmount(subtotal, rules.ServiceCharge.Type, rules.ServiceCharge.Value)
	}

	if rules.TravelSurcharge.Required && travelKm != nil {
		quote.TravelSurchargeAmount = travelSurchargeAmount(rules.TravelSurcharge, *travelKm)
	}

	for _, fee := range rules.AdditionalFees {
		amount := chargeAmount(subtotal, fee.Type, fee.Value)
		quote.FeeBreakdown = append(quote.FeeBreakdown, FeeLine{
			FeeID:  fee.ID,
			Name:   fee.Name,
			Amount: amount,
		})
		quote.AdditionalFeesTotal += amount
	}

	quote.GrandTotal = quote.Subtotal + quote.TaxAmount + quote.ServiceChargeAmount +
		quote.TravelSurchargeAmount + quote.AdditionalFeesTotal

	return quote, nil
}

// travelSurchargeAmount bills base + perKm x distance, with the distance
// clamped to the configured [min, max] bounds when set.
func travelSurchargeAmount(rule TravelSurcharge, distanceKm decimal.Decimal) int64 {
	effective := distanceKm
	if rule.MinDistanceKm != nil && effective.LessThan(*rule.MinDistanceKm) {
		effective = *rule.MinDistanceKm
	}
	if rule.MaxDistanceKm != nil && effective.GreaterThan(*rule.MaxDistanceKm) {
		effective = *rule.MaxDistanceKm
	}

	variable := decimal.NewFromInt(rule.PerKmAmount).Mul(effective)
	return rule.BaseAmount + roundRupiah(variable)
}

func chargeAmount(subtotal int64, feeType FeeType, value decimal.Decimal) int64 {
	if feeType == FeeTypePercentage {
		return percentOf(subtotal, value)
	}
	return roundRupiah(value)
}

// percentOf computes pct% of a rupiah amount, rounded half-up to whole rupiah
func percentOf(amount int64, pct decimal.Decimal) int64 {
	return roundRupiah(decimal.NewFromInt(amount).Mul(pct).Div(decimal.NewFromInt(100)))
}

// roundRupiah rounds to the currency's zero-decimal precision. Decimal's
// Round is half away from zero, which is half-up for the non-negative
// amounts this engine deals in.
func roundRupiah(d decimal.Decimal) int64 {
	return d.Round(0).IntPart()
}
