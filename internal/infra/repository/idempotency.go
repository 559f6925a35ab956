package repository

import (
	"context"
	"time"

	"presale-engine/internal/infra/db"

	"github.com/google/uuid"
)

type IdempotencyRepository struct {
	db db.DBTX
}

func NewIdempotencyRepository(dbtx db.DBTX) *IdempotencyRepository {
	return &IdempotencyRepository{db: dbtx}
}

const tryInsertIdempotencySQL = `
INSERT INTO idempotency_keys (key, user_id, endpoint, request_hash, status, expires_at, created_at)
VALUES ($1, $2, $3, $4, 'processing', $5, now())
ON CONFLICT (key, user_id) DO NOTHING`

// TryInsert claims the key. A false return means another request already
// holds it; the existing record decides whether that request is a replay or
// a concurrent duplicate.
func (r *IdempotencyRepository) TryInsert(ctx context.Context, key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error) {
	tag, err := r.db.Exec(ctx, tryInsertIdempotencySQL, key, userID, endpoint, requestHash, expiresAt)
	if err != nil {
		return false, wrapWriteErr("failed to insert idempotency key", err)
	}
	return tag.RowsAffected() == 1, nil
}

const markIdempotencyCompletedSQL = `
UPDATE idempotency_keys
SET status = 'completed', result_id = $3
WHERE key = $1 AND user_id = $2`

func (r *IdempotencyRepository) MarkCompleted(ctx context.Context, key, userID uuid.UUID, resultID uuid.UUID) error {
	if _, err := r.db.Exec(ctx, markIdempotencyCompletedSQL, key, userID, resultID); err != nil {
		return wrapWriteErr("failed to complete idempotency key", err)
	}
	return nil
}
