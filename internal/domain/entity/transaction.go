package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/salonkita/salonkita-api/internal/domain/billing"
	"github.com/salonkita/salonkita-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SalesTransaction is the authoritative, immutable settlement record.
// Once created it is never updated: the embedded quote snapshot and the
// rule set that produced it are frozen, so later rule edits cannot change
// what was charged. TransactionNumber is unique per tenant, assigned from
// a per-tenant monotonic sequence. BookingID carries a unique index so at
// most one transaction can ever settle a given booking.
type SalesTransaction struct {
	ID                uuid.UUID              `gorm:"type:uuid;primary_key" json:"id"`
	TenantID          uuid.UUID              `gorm:"type:uuid;not null;uniqueIndex:idx_tenant_trx_number" json:"tenant_id"`
	TransactionNumber string                 `gorm:"size:100;not null;uniqueIndex:idx_tenant_trx_number" json:"transaction_number"`
	SourceType        enum.SourceType        `gorm:"default:0" json:"source_type"`
	CustomerID        uuid.UUID              `gorm:"type:uuid;not null;index" json:"customer_id"`
	BookingID         *uuid.UUID             `gorm:"type:uuid;uniqueIndex:idx_trx_booking" json:"booking_id,omitempty"`
	TravelDistanceKm  *decimal.Decimal       `gorm:"type:numeric(8,2)" json:"travel_distance_km,omitempty"`
	Status            enum.TransactionStatus `gorm:"default:0" json:"status"`
	Notes             *string                `gorm:"type:text" json:"notes,omitempty"`

	// Quote snapshot, whole rupiah
	Subtotal              int64             `gorm:"not null" json:"subtotal"`
	TaxAmount             int64             `gorm:"default:0" json:"tax_amount"`
	ServiceChargeAmount   int64             `gorm:"default:0" json:"service_charge_amount"`
	TravelSurchargeAmount int64             `gorm:"default:0" json:"travel_surcharge_amount"`
	AdditionalFeesTotal   int64             `gorm:"default:0" json:"additional_fees_total"`
	FeeBreakdown          []billing.FeeLine `gorm:"type:jsonb;serializer:json" json:"fee_breakdown"`
	GrandTotal            int64             `gorm:"not null" json:"grand_total"`

	// Rule set in force at creation time, kept so invoices can recompute
	// the quote without being affected by later rule edits
	RuleSnapshot billing.PricingRuleSet `gorm:"type:jsonb;serializer:json" json:"-"`

	TotalPaid int64     `gorm:"default:0" json:"total_paid"`
	CreatedAt time.Time `json:"created_at"`

	// Relationships
	Customer *Customer         `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Items    []TransactionItem `gorm:"foreignKey:TransactionID" json:"items,omitempty"`
	Payments []PaymentRecord   `gorm:"foreignKey:TransactionID" json:"payments,omitempty"`
}

// BeforeCreate generates a UUID before creating a new transaction
func (t *SalesTransaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SalesTransaction model
func (SalesTransaction) TableName() string {
	return "sales_transactions"
}

// RemainingBalance is the unpaid part of the grand total
func (t *SalesTransaction) RemainingBalance() int64 {
	return t.GrandTotal - t.TotalPaid
}

// BillingItems converts the stored line items into calculator input
func (t *SalesTransaction) BillingItems() []billing.LineItem {
	items := make([]billing.LineItem, len(t.Items))
	for i, item := range t.Items {
		items[i] = billing.LineItem{
			ServiceID: item.ServiceID,
			Name:      item.ServiceName,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		}
	}
	return items
}

// TransactionItem is one settled line item. ServiceName is snapshotted
// because catalog entries can be renamed or deleted after settlement.
type TransactionItem struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	TransactionID uuid.UUID `gorm:"type:uuid;not null;index" json:"transaction_id"`
	ServiceID     uuid.UUID `gorm:"type:uuid;index" json:"service_id"`
	ServiceName   string    `gorm:"size:255;not null" json:"service_name"`
	Quantity      int       `gorm:"not null" json:"quantity"`
	UnitPrice     int64     `gorm:"not null" json:"unit_price"`
	Total         int64     `gorm:"not null" json:"total"`
	CreatedAt     time.Time `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new transaction item
func (ti *TransactionItem) BeforeCreate(tx *gorm.DB) error {
	if ti.ID == uuid.Nil {
		ti.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the TransactionItem model
func (TransactionItem) TableName() string {
	return "transaction_items"
}

// PaymentRecord is one reconciled payment entry on a transaction
type PaymentRecord struct {
	ID            uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	TransactionID uuid.UUID          `gorm:"type:uuid;not null;index" json:"transaction_id"`
	Method        enum.PaymentMethod `gorm:"not null" json:"method"`
	Amount        int64              `gorm:"not null" json:"amount"`
	Reference     *string            `gorm:"size:255" json:"reference,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new payment record
func (p *PaymentRecord) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the PaymentRecord model
func (PaymentRecord) TableName() string {
	return "payment_records"
}
