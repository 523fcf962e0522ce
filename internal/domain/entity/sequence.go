package entity

import (
	"github.com/google/uuid"
)

// Sequence scopes
const (
	SequenceScopeTransaction = "transaction"
	SequenceScopeInvoice     = "invoice"
)

// NumberSequence backs per-tenant monotonic document numbering. Each
// (tenant, scope) pair holds the last issued value; the repository
// increments it atomically so concurrent creations never collide.
type NumberSequence struct {
	TenantID uuid.UUID `gorm:"type:uuid;primaryKey" json:"tenant_id"`
	Scope    string    `gorm:"size:50;primaryKey" json:"scope"`
	Value    int64     `gorm:"not null;default:0" json:"value"`
}

// TableName returns the table name for the NumberSequence model
func (NumberSequence) TableName() string {
	return "number_sequences"
}
