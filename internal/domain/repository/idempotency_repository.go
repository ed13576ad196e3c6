package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/commandes-api/internal/domain/entity"
)

// ErrKeyReused is returned for a live key that was stored for another endpoint
var ErrKeyReused = errors.New("idempotency key already used for another endpoint")

// IdempotencyRepository stores the responses replayed for repeated keys
type IdempotencyRepository interface {
	// FindLive returns the response stored for key on endpoint that has not
	// expired at now, or nil. A live key bound to another endpoint is ErrKeyReused.
	FindLive(ctx context.Context, key string, userID uuid.UUID, endpoint string, now time.Time) (*entity.IdempotencyKey, error)
	// Save stores ikey, taking over an expired row that holds the same key
	Save(ctx context.Context, ikey *entity.IdempotencyKey) error
	// DeleteExpired removes keys expired at now and reports how many were removed
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
