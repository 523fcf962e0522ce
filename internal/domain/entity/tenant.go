package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/salonkita/salonkita-api/internal/domain/billing"
	"gorm.io/gorm"
)

// Tenant represents one business (salon/studio) on the platform.
// All other data is scoped by tenant.
type Tenant struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Slug      string         `gorm:"size:255;unique;not null" json:"slug"`
	OwnerID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"owner_id"`
	Settings  TenantSettings `gorm:"type:jsonb;serializer:json" json:"settings"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new tenant
func (t *Tenant) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Tenant model
func (Tenant) TableName() string {
	return "tenants"
}

// TenantSettings holds all customizable tenant configuration: branding
// printed on invoices, numbering prefixes, and the pricing rule set.
// Rule sets are versionless: editing them affects future quotes only,
// never the frozen snapshots on existing transactions.
type TenantSettings struct {
	// Branding printed on invoice headers/footers
	LogoURL       string `json:"logo_url,omitempty"`
	Address       string `json:"address,omitempty"`
	Phone         string `json:"phone,omitempty"`
	InvoiceFooter string `json:"invoice_footer,omitempty"`

	// Localization
	Currency string `json:"currency,omitempty"`
	Timezone string `json:"timezone,omitempty"`

	// Document numbering
	InvoicePrefix     string `json:"invoice_prefix,omitempty"`
	TransactionPrefix string `json:"transaction_prefix,omitempty"`

	// Days after issue before an invoice is due. Zero means due
	// immediately, the default for already-settled transactions.
	InvoiceGraceDays int `json:"invoice_grace_days"`

	// Pricing rules applied to every quote computed for this tenant
	Pricing billing.PricingRuleSet `json:"pricing"`
}

// Scan implements the sql.Scanner interface for TenantSettings
func (ts *TenantSettings) Scan(value interface{}) error {
	if value == nil {
		*ts = TenantSettings{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan TenantSettings: unsupported type")
	}

	return json.Unmarshal(bytes, ts)
}

// Value implements the driver.Valuer interface for TenantSettings
func (ts TenantSettings) Value() (driver.Value, error) {
	return json.Marshal(ts)
}

// DefaultTenantSettings returns the settings new tenants start with
func DefaultTenantSettings() TenantSettings {
	return TenantSettings{
		Currency:          "IDR",
		Timezone:          "Asia/Jakarta",
		InvoicePrefix:     "INV-",
		TransactionPrefix: "TRX-",
		InvoiceGraceDays:  0,
		Pricing:           billing.DefaultPricingRuleSet(),
	}
}
