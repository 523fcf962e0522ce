package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/salonkita/salonkita-api/internal/domain/entity"
)

// IdempotencyRepository persists idempotency keys for request replay
type IdempotencyRepository interface {
	// GetByKey looks up a key recorded by the given user; nil, nil when
	// the key was never seen
	GetByKey(ctx context.Context, key string, userID uuid.UUID) (*entity.IdempotencyKey, error)
	Create(ctx context.Context, ikey *entity.IdempotencyKey) error
	// DeleteExpired prunes keys past their replay window
	DeleteExpired(ctx context.Context) error
}
