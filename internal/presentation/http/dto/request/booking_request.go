package request

import (
	"time"

	"github.com/google/uuid"
)

// CreateBookingRequest represents a booking creation request. A nil
// total amount means the catalog base price applies.
type CreateBookingRequest struct {
	CustomerID  uuid.UUID `json:"customer_id" binding:"required"`
	ServiceID   uuid.UUID `json:"service_id" binding:"required"`
	ScheduledAt time.Time `json:"scheduled_at" binding:"required"`
	TotalAmount *int64    `json:"total_amount" binding:"omitempty,min=0"`
	Notes       *string   `json:"notes"`
}
