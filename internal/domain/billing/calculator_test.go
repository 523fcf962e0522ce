package billing

import (
	"math/rand"
	"testing"

	"github.com/salonkita/salonkita-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func TestComputeQuote_ZeroRuleSetMatchesSubtotal(t *testing.T) {
	items := []LineItem{
		{Name: "Haircut", Quantity: 2, UnitPrice: 50000},
		{Name: "Creambath", Quantity: 1, UnitPrice: 75000},
	}

	quote, err := ComputeQuote(items, PricingRuleSet{ServiceCharge: ServiceCharge{Type: FeeTypeFixed}}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quote.Subtotal != 175000 {
		t.Fatalf("subtotal = %d, want 175000", quote.Subtotal)
	}
	if quote.GrandTotal != quote.Subtotal {
		t.Fatalf("grand total = %d, want subtotal %d for zero-valued rule set", quote.GrandTotal, quote.Subtotal)
	}
}

func TestComputeQuote_TaxAndFixedServiceCharge(t *testing.T) {
	// Worked example: 2 x 50000 with 10% tax and a required fixed 5000
	// service charge must come out at exactly 115000.
	items := []LineItem{{Name: "Hair Spa", Quantity: 2, UnitPrice: 50000}}
	rules := PricingRuleSet{
		TaxPercentage: dec("10"),
		ServiceCharge: ServiceCharge{Type: FeeTypeFixed, Value: dec("5000"), Required: true},
	}

	quote, err := ComputeQuote(items, rules, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quote.Subtotal != 100000 {
		t.Errorf("subtotal = %d, want 100000", quote.Subtotal)
	}
	if quote.TaxAmount != 10000 {
		t.Errorf("tax = %d, want 10000", quote.TaxAmount)
	}
	if quote.ServiceChargeAmount != 5000 {
		t.Errorf("service charge = %d, want 5000", quote.ServiceChargeAmount)
	}
	if quote.GrandTotal != 115000 {
		t.Errorf("grand total = %d, want 115000", quote.GrandTotal)
	}
}

func TestComputeQuote_PercentageServiceCharge(t *testing.T) {
	items := []LineItem{{Name: "Facial", Quantity: 1, UnitPrice: 200000}}
	rules := PricingRuleSet{
		ServiceCharge: ServiceCharge{Type: FeeTypePercentage, Value: dec("5"), Required: true},
	}

	quote, err := ComputeQuote(items, rules, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quote.ServiceChargeAmount != 10000 {
		t.Errorf("service charge = %d, want 10000", quote.ServiceChargeAmount)
	}
}

func TestComputeQuote_ServiceChargeNotRequired(t *testing.T) {
	items := []LineItem{{Name: "Facial", Quantity: 1, UnitPrice: 200000}}
	rules := PricingRuleSet{
		ServiceCharge: ServiceCharge{Type: FeeTypeFixed, Value: dec("5000"), Required: false},
	}

	quote, err := ComputeQuote(items, rules, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quote.ServiceChargeAmount != 0 {
		t.Errorf("service charge = %d, want 0 when not required", quote.ServiceChargeAmount)
	}
}

func TestComputeQuote_TravelSurcharge(t *testing.T) {
	rules := PricingRuleSet{
		TravelSurcharge: TravelSurcharge{
			BaseAmount:    25000,
			PerKmAmount:   5000,
			MinDistanceKm: decPtr("2"),
			MaxDistanceKm: decPtr("50"),
			Required:      true,
		},
	}
	items := []LineItem{{Name: "Home Visit Makeup", Quantity: 1, UnitPrice: 300000}}

	tests := []struct {
		name     string
		distance *decimal.Decimal
		want     int64
	}{
		{"12km inside bounds", decPtr("12"), 25000 + 5000*12},
		{"below min clamps to 2km, not zeroed", decPtr("1"), 25000 + 5000*2},
		{"above max clamps to 50km", decPtr("80"), 25000 + 5000*50},
		{"fractional distance rounds half up", decPtr("3.5"), 25000 + 17500},
		{"no distance supplied means no surcharge", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quote, err := ComputeQuote(items, rules, tt.distance)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if quote.TravelSurchargeAmount != tt.want {
				t.Errorf("travel surcharge = %d, want %d", quote.TravelSurchargeAmount, tt.want)
			}
		})
	}
}

func TestComputeQuote_TravelSurchargeNotRequired(t *testing.T) {
	rules := PricingRuleSet{
		TravelSurcharge: TravelSurcharge{BaseAmount: 25000, PerKmAmount: 5000, Required: false},
	}

	quote, err := ComputeQuote([]LineItem{{Name: "Haircut", Quantity: 1, UnitPrice: 50000}}, rules, decPtr("12"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quote.TravelSurchargeAmount != 0 {
		t.Errorf("travel surcharge = %d, want 0 when rule not required", quote.TravelSurchargeAmount)
	}
}

func TestComputeQuote_AdditionalFeesKeptIndividually(t *testing.T) {
	items := []LineItem{{Name: "Bridal Package", Quantity: 1, UnitPrice: 1000000}}
	rules := PricingRuleSet{
		AdditionalFees: []AdditionalFee{
			{ID: "fee-equip", Name: "Equipment", Type: FeeTypeFixed, Value: dec("50000")},
			{ID: "fee-admin", Name: "Admin", Type: FeeTypePercentage, Value: dec("2.5")},
		},
	}

	quote, err := ComputeQuote(items, rules, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(quote.FeeBreakdown) != 2 {
		t.Fatalf("fee breakdown has %d lines, want 2", len(quote.FeeBreakdown))
	}
	if quote.FeeBreakdown[0].Amount != 50000 {
		t.Errorf("equipment fee = %d, want 50000", quote.FeeBreakdown[0].Amount)
	}
	if quote.FeeBreakdown[1].Amount != 25000 {
		t.Errorf("admin fee = %d, want 25000", quote.FeeBreakdown[1].Amount)
	}
	if quote.AdditionalFeesTotal != 75000 {
		t.Errorf("fees total = %d, want 75000", quote.AdditionalFeesTotal)
	}
}

func TestComputeQuote_InvalidInput(t *testing.T) {
	rules := PricingRuleSet{}

	tests := []struct {
		name     string
		items    []LineItem
		distance *decimal.Decimal
	}{
		{"zero quantity", []LineItem{{Name: "Haircut", Quantity: 0, UnitPrice: 50000}}, nil},
		{"negative quantity", []LineItem{{Name: "Haircut", Quantity: -1, UnitPrice: 50000}}, nil},
		{"negative unit price", []LineItem{{Name: "Haircut", Quantity: 1, UnitPrice: -1}}, nil},
		{"negative distance", []LineItem{{Name: "Haircut", Quantity: 1, UnitPrice: 50000}}, decPtr("-3")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeQuote(tt.items, rules, tt.distance)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			appErr := apperror.GetAppError(err)
			if appErr.Code != 400 {
				t.Errorf("code = %d, want 400", appErr.Code)
			}
			if len(appErr.Errors) == 0 {
				t.Error("expected a field-level error")
			}
		})
	}
}

// TestComputeQuote_NoDrift checks the grand-total identity across random
// rule sets and carts: the total is always exactly the sum of its parts.
func TestComputeQuote_NoDrift(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 500; i++ {
		items := make([]LineItem, 1+rng.Intn(6))
		for j := range items {
			items[j] = LineItem{
				Name:      "Service",
				Quantity:  1 + rng.Intn(5),
				UnitPrice: int64(rng.Intn(500)) * 1000,
			}
		}

		rules := PricingRuleSet{
			TaxPercentage: decimal.NewFromFloat(float64(rng.Intn(2200)) / 100),
			ServiceCharge: ServiceCharge{
				Type:     []FeeType{FeeTypeFixed, FeeTypePercentage}[rng.Intn(2)],
				Value:    decimal.NewFromInt(int64(rng.Intn(100))),
				Required: rng.Intn(2) == 0,
			},
			TravelSurcharge: TravelSurcharge{
				BaseAmount:  int64(rng.Intn(50)) * 1000,
				PerKmAmount: int64(rng.Intn(10)) * 1000,
				Required:    rng.Intn(2) == 0,
			},
		}
		for f := 0; f < rng.Intn(4); f++ {
			rules.AdditionalFees = append(rules.AdditionalFees, AdditionalFee{
				ID:    "fee",
				Name:  "Fee",
				Type:  []FeeType{FeeTypeFixed, FeeTypePercentage}[rng.Intn(2)],
				Value: decimal.NewFromInt(int64(rng.Intn(50))),
			})
		}

		var distance *decimal.Decimal
		if rng.Intn(2) == 0 {
			d := decimal.NewFromFloat(float64(rng.Intn(300)) / 10)
			distance = &d
		}

		quote, err := ComputeQuote(items, rules, distance)
		if err != nil {
			t.Fatalf("iteration %d: unexpected error: %v", i, err)
		}

		var feeSum int64
		for _, line := range quote.FeeBreakdown {
			feeSum += line.Amount
		}
		if feeSum != quote.AdditionalFeesTotal {
			t.Fatalf("iteration %d: fee breakdown sums to %d, total says %d", i, feeSum, quote.AdditionalFeesTotal)
		}

		want := quote.Subtotal + quote.TaxAmount + quote.ServiceChargeAmount +
			quote.TravelSurchargeAmount + feeSum
		if quote.GrandTotal != want {
			t.Fatalf("iteration %d: grand total %d drifted from component sum %d", i, quote.GrandTotal, want)
		}
	}
}

func TestComputeQuote_Deterministic(t *testing.T) {
	items := []LineItem{{Name: "Smoothing", Quantity: 3, UnitPrice: 123457}}
	rules := PricingRuleSet{
		TaxPercentage: dec("11"),
		ServiceCharge: ServiceCharge{Type: FeeTypePercentage, Value: dec("3.33"), Required: true},
	}

	first, err := ComputeQuote(items, rules, decPtr("7.25"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := ComputeQuote(items, rules, decPtr("7.25"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if again.GrandTotal != first.GrandTotal {
			t.Fatalf("grand total changed between identical calls: %d vs %d", again.GrandTotal, first.GrandTotal)
		}
	}
}

func TestPricingRuleSet_Validate(t *testing.T) {
	tests := []struct {
		name    string
		rules   PricingRuleSet
		wantErr bool
	}{
		{"default rule set is valid", DefaultPricingRuleSet(), false},
		{"negative tax", PricingRuleSet{TaxPercentage: dec("-1"), ServiceCharge: ServiceCharge{Type: FeeTypeFixed}}, true},
		{"percentage over 100", PricingRuleSet{ServiceCharge: ServiceCharge{Type: FeeTypePercentage, Value: dec("150")}}, true},
		{"bad fee type", PricingRuleSet{ServiceCharge: ServiceCharge{Type: "weekly"}}, true},
		{"max below min", PricingRuleSet{
			ServiceCharge:   ServiceCharge{Type: FeeTypeFixed},
			TravelSurcharge: TravelSurcharge{MinDistanceKm: decPtr("10"), MaxDistanceKm: decPtr("5")},
		}, true},
		{"unnamed additional fee", PricingRuleSet{
			ServiceCharge:  ServiceCharge{Type: FeeTypeFixed},
			AdditionalFees: []AdditionalFee{{ID: "x", Type: FeeTypeFixed}},
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.rules.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
