package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// QuoteItemRequest is one cart line. A nil unit price means charge the
// catalog base price; a set value overrides it (negotiated discounts).
type QuoteItemRequest struct {
	ServiceID uuid.UUID `json:"service_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
	UnitPrice *int64    `json:"unit_price" binding:"omitempty,min=0"`
}

// QuoteRequest represents a price preview request
type QuoteRequest struct {
	Items            []QuoteItemRequest `json:"items" binding:"required,min=1,dive"`
	TravelDistanceKm *decimal.Decimal   `json:"travel_distance_km"`
}

// PaymentRequest is one payment entry towards a transaction.
// Method is cash, card, transfer or qris.
type PaymentRequest struct {
	Method    string `json:"method" binding:"required"`
	Amount    int64  `json:"amount" binding:"required,min=0"`
	Reference string `json:"reference" binding:"omitempty,max=255"`
}

// CreateTransactionRequest represents a transaction creation request.
// Source type on_the_spot requires items; from_booking requires a
// booking_id and takes no items.
type CreateTransactionRequest struct {
	SourceType       string             `json:"source_type" binding:"required"`
	CustomerID       uuid.UUID          `json:"customer_id" binding:"required"`
	BookingID        *uuid.UUID         `json:"booking_id"`
	Items            []QuoteItemRequest `json:"items" binding:"omitempty,dive"`
	TravelDistanceKm *decimal.Decimal   `json:"travel_distance_km"`
	Payments         []PaymentRequest   `json:"payments" binding:"required,min=1,dive"`
	Notes            *string            `json:"notes"`
}
