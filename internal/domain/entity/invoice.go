package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/salonkita/salonkita-api/internal/domain/billing"
	"github.com/salonkita/salonkita-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Invoice is the document derived from a sales transaction. The unique
// index on (tenant_id, transaction_id) is the database-level idempotency
// guard: a transaction can never yield two invoices, so revenue is never
// double-counted in aggregation.
type Invoice struct {
	ID            uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	TenantID      uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex:idx_tenant_invoice_trx;uniqueIndex:idx_tenant_invoice_number" json:"tenant_id"`
	TransactionID uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex:idx_tenant_invoice_trx" json:"transaction_id"`
	InvoiceNumber string             `gorm:"size:100;not null;uniqueIndex:idx_tenant_invoice_number" json:"invoice_number"`
	Status        enum.InvoiceStatus `gorm:"default:0" json:"status"`
	IssueDate     time.Time          `gorm:"not null" json:"issue_date"`
	DueDate       time.Time          `gorm:"not null" json:"due_date"`
	PaidDate      *time.Time         `json:"paid_date,omitempty"`

	// Customer snapshot at composition time
	CustomerID    uuid.UUID `gorm:"type:uuid;not null;index" json:"customer_id"`
	CustomerName  string    `gorm:"size:255;not null" json:"customer_name"`
	CustomerPhone *string   `gorm:"size:50" json:"customer_phone,omitempty"`

	// Branding snapshot rendered on the document
	HeaderText string `gorm:"size:500" json:"header_text"`
	FooterText string `gorm:"size:500" json:"footer_text"`

	// Recomputed quote, whole rupiah
	Subtotal              int64             `gorm:"not null" json:"subtotal"`
	TaxAmount             int64             `gorm:"default:0" json:"tax_amount"`
	ServiceChargeAmount   int64             `gorm:"default:0" json:"service_charge_amount"`
	TravelSurchargeAmount int64             `gorm:"default:0" json:"travel_surcharge_amount"`
	AdditionalFeesTotal   int64             `gorm:"default:0" json:"additional_fees_total"`
	FeeBreakdown          []billing.FeeLine `gorm:"type:jsonb;serializer:json" json:"fee_breakdown"`
	GrandTotal            int64             `gorm:"not null" json:"grand_total"`
	TotalPaid             int64             `gorm:"default:0" json:"total_paid"`

	// Structured payload for the external QR renderer
	PaymentReference string `gorm:"size:500" json:"payment_reference"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Items []InvoiceItem `gorm:"foreignKey:InvoiceID" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new invoice
func (inv *Invoice) BeforeCreate(tx *gorm.DB) error {
	if inv.ID == uuid.Nil {
		inv.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Invoice model
func (Invoice) TableName() string {
	return "invoices"
}

// PaymentDays returns the days between issue and payment, and false when
// the invoice has no recorded paid date.
func (inv *Invoice) PaymentDays() (float64, bool) {
	if inv.PaidDate == nil {
		return 0, false
	}
	return inv.PaidDate.Sub(inv.IssueDate).Hours() / 24, true
}

// InvoiceItem is one itemized body line of an invoice
type InvoiceItem struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceID   uuid.UUID `gorm:"type:uuid;not null;index" json:"invoice_id"`
	ServiceName string    `gorm:"size:255;not null" json:"service_name"`
	Quantity    int       `gorm:"not null" json:"quantity"`
	UnitPrice   int64     `gorm:"not null" json:"unit_price"`
	Total       int64     `gorm:"not null" json:"total"`
}

// BeforeCreate generates a UUID before creating a new invoice item
func (ii *InvoiceItem) BeforeCreate(tx *gorm.DB) error {
	if ii.ID == uuid.Nil {
		ii.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the InvoiceItem model
func (InvoiceItem) TableName() string {
	return "invoice_items"
}
