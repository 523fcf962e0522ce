package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service represents one catalog entry a tenant offers. BasePrice is
// whole rupiah and is the default unit price for cart line items.
type Service struct {
	ID              uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	TenantID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"tenant_id"`
	Name            string         `gorm:"size:255;not null" json:"name"`
	Description     *string        `gorm:"type:text" json:"description,omitempty"`
	BasePrice       int64          `gorm:"not null" json:"base_price"`
	DurationMinutes int            `gorm:"default:60" json:"duration_minutes"`
	HomeVisit       bool           `gorm:"default:false" json:"home_visit"`
	Active          bool           `gorm:"default:true" json:"active"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new service
func (s *Service) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Service model
func (Service) TableName() string {
	return "services"
}
