package repository

import (
	"context"
	"time"

	"presale-engine/internal/domain/market"
	"presale-engine/internal/infra/db"
	"presale-engine/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type ListingRepository struct {
	db db.DBTX
}

func NewListingRepository(dbtx db.DBTX) *ListingRepository {
	return &ListingRepository{db: dbtx}
}

const createListingSQL = `
INSERT INTO listings (id, project_id, round_id, seller_user_id, slots, ask_cents, currency, status, filled_at, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING id`

func (r *ListingRepository) Create(ctx context.Context, l *market.Listing) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.db.QueryRow(ctx, createListingSQL,
		l.ID(),
		l.ProjectID(),
		l.RoundID(),
		l.SellerUserID(),
		l.Slots(),
		l.AskCents(),
		l.Currency(),
		l.Status().String(),
		pgconv.TimePtrToPgtype(l.FilledAt()),
		l.CreatedAt(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, wrapWriteErr("failed to create listing", err)
	}
	return id, nil
}

const fillListingSQL = `
UPDATE listings
SET status = 'sold', filled_at = $2
WHERE id = $1 AND status = 'active'`

// FillIfActive is a compare-and-swap on the status column: of two racing fill
// requests exactly one affects a row, the other sees zero and reports false.
func (r *ListingRepository) FillIfActive(ctx context.Context, id uuid.UUID, filledAt time.Time) (bool, error) {
	tag, err := r.db.Exec(ctx, fillListingSQL, id, pgconv.TimeToPgtype(filledAt))
	if err != nil {
		return false, wrapWriteErr("failed to fill listing", err)
	}
	return tag.RowsAffected() == 1, nil
}
