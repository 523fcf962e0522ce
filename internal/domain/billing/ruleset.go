package billing

import (
	"fmt"

	"github.com/salonkita/salonkita-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

// FeeType determines how a charge value is interpreted
type FeeType string

const (
	// FeeTypeFixed charges the value as a flat rupiah amount
	FeeTypeFixed FeeType = "fixed"
	// FeeTypePercentage charges value percent (0-100) of the subtotal
	FeeTypePercentage FeeType = "percentage"
)

// IsValid reports whether the fee type is recognized
func (t FeeType) IsValid() bool {
	return t == FeeTypeFixed || t == FeeTypePercentage
}

// ServiceCharge is an optional tenant-wide charge on every transaction
type ServiceCharge struct {
	Type     FeeType         `json:"type"`
	Value    decimal.Decimal `json:"value"`
	Required bool            `json:"required"`
}

// TravelSurcharge is the distance-based fee for home-visit services.
// MinDistanceKm/MaxDistanceKm only clamp the billed distance, they never
// gate eligibility: a 1km visit under a 2km minimum is billed at 2km.
type TravelSurcharge struct {
	BaseAmount    int64            `json:"base_amount"`
	PerKmAmount   int64            `json:"per_km_amount"`
	MinDistanceKm *decimal.Decimal `json:"min_distance_km,omitempty"`
	MaxDistanceKm *decimal.Decimal `json:"max_distance_km,omitempty"`
	Required      bool             `json:"required"`
}

// AdditionalFee is one tenant-configured extra charge. Order matters:
// fees appear on quotes and invoices in the order the tenant defined them.
type AdditionalFee struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Type  FeeType         `json:"type"`
	Value decimal.Decimal `json:"value"`
}

// PricingRuleSet is the tenant-scoped pricing configuration. It is pure
// data with a single validated construction point: every consumer (live
// preview and final transaction creation) goes through the same rule set
// so the quote a customer sees is the quote they are charged.
type PricingRuleSet struct {
	TaxPercentage   decimal.Decimal `json:"tax_percentage"`
	ServiceCharge   ServiceCharge   `json:"service_charge"`
	TravelSurcharge TravelSurcharge `json:"travel_surcharge"`
	AdditionalFees  []AdditionalFee `json:"additional_fees"`
}

// DefaultPricingRuleSet returns the rule set new tenants start from:
// Indonesian PPN at 11%, no service charge, no travel surcharge, no fees.
func DefaultPricingRuleSet() PricingRuleSet {
	return PricingRuleSet{
		TaxPercentage: decimal.NewFromInt(11),
		ServiceCharge: ServiceCharge{
			Type:  FeeTypeFixed,
			Value: decimal.Zero,
		},
		TravelSurcharge: TravelSurcharge{},
	}
}

// Validate checks every value in the rule set and reports all problems at
// once as field-level errors.
func (r PricingRuleSet) Validate() error {
	var fieldErrors []apperror.FieldError

	if r.TaxPercentage.IsNegative() {
		fieldErrors = append(fieldErrors, apperror.FieldError{
			Field: "tax_percentage", Message: "must not be negative",
		})
	}

	if !r.ServiceCharge.Type.IsValid() {
		fieldErrors = append(fieldErrors, apperror.FieldError{
			Field: "service_charge.type", Message: "must be fixed or percentage",
		})
	}
	if err := validateChargeValue("service_charge.value", r.ServiceCharge.Type, r.ServiceCharge.Value); err != nil {
		fieldErrors = append(fieldErrors, *err)
	}

	if r.TravelSurcharge.BaseAmount < 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{
			Field: "travel_surcharge.base_amount", Message: "must not be negative",
		})
	}
	if r.TravelSurcharge.PerKmAmount < 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{
			Field: "travel_surcharge.per_km_amount", Message: "must not be negative",
		})
	}
	if min := r.TravelSurcharge.MinDistanceKm; min != nil && min.IsNegative() {
		fieldErrors = append(fieldErrors, apperror.FieldError{
			Field: "travel_surcharge.min_distance_km", Message: "must not be negative",
		})
	}
	if max := r.TravelSurcharge.MaxDistanceKm; max != nil {
		if max.IsNegative() {
			fieldErrors = append(fieldErrors, apperror.FieldError{
				Field: "travel_surcharge.max_distance_km", Message: "must not be negative",
			})
		} else if min := r.TravelSurcharge.MinDistanceKm; min != nil && max.LessThan(*min) {
			fieldErrors = append(fieldErrors, apperror.FieldError{
				Field: "travel_surcharge.max_distance_km", Message: "must not be below min_distance_km",
			})
		}
	}

	for i, fee := range r.AdditionalFees {
		if fee.Name == "" {
			fieldErrors = append(fieldErrors, apperror.FieldError{
				Field: fmt.Sprintf("additional_fees[%d].name", i), Message: "must not be empty",
			})
		}
		if !fee.Type.IsValid() {
			fieldErrors = append(fieldErrors, apperror.FieldError{
				Field: fmt.Sprintf("additional_fees[%d].type", i), Message: "must be fixed or percentage",
			})
		}
		if err := validateChargeValue(fmt.Sprintf("additional_fees[%d].value", i), fee.Type, fee.Value); err != nil {
			fieldErrors = append(fieldErrors, *err)
		}
	}

	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}
	return nil
}

func validateChargeValue(field string, feeType FeeType, value decimal.Decimal) *apperror.FieldError {
	if value.IsNegative() {
		return &apperror.FieldError{Field: field, Message: "must not be negative"}
	}
	if feeType == FeeTypePercentage && value.GreaterThan(decimal.NewFromInt(100)) {
		return &apperror.FieldError{Field: field, Message: "percentage must be between 0 and 100"}
	}
	return nil
}
