package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Booking statuses
const (
	BookingStatusConfirmed = "confirmed"
	BookingStatusSettled   = "settled"
	BookingStatusCancelled = "cancelled"
)

// Booking is a scheduled service whose price was fixed at booking time.
// Settling a booking produces a from_booking sales transaction that
// trusts TotalAmount instead of recomputing from a cart.
type Booking struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	TenantID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"tenant_id"`
	CustomerID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"customer_id"`
	ServiceID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"service_id"`
	ScheduledAt time.Time      `gorm:"not null" json:"scheduled_at"`
	TotalAmount int64          `gorm:"not null" json:"total_amount"`
	Status      string         `gorm:"size:50;default:'confirmed'" json:"status"`
	Notes       *string        `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Customer *Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Service  *Service  `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
}

// BeforeCreate generates a UUID before creating a new booking
func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Booking model
func (Booking) TableName() string {
	return "bookings"
}
