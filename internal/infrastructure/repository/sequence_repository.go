package repository

import (
	"context"

	"github.com/google/uuid"
	domainRepo "github.com/salonkita/salonkita-api/internal/domain/repository"
	"gorm.io/gorm"
)

type sequenceRepository struct {
	db *gorm.DB
}

// NewSequenceRepository creates a new number sequence repository
func NewSequenceRepository(db *gorm.DB) domainRepo.SequenceRepository {
	return &sequenceRepository{db: db}
}

// Next atomically increments and returns the sequence value for the
// (tenant, scope) pair. The single upsert statement makes concurrent
// callers serialize on the row lock, so no two callers ever see the
// same value.
func (r *sequenceRepository) Next(ctx context.Context, tenantID uuid.UUID, scope string) (int64, error) {
	var value int64
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO number_sequences (tenant_id, scope, value)
		VALUES (?, ?, 1)
		ON CONFLICT (tenant_id, scope)
		DO UPDATE SET value = number_sequences.value + 1
		RETURNING value`,
		tenantID, scope,
	).Scan(&value).Error
	return value, err
}
