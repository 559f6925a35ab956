package repository

import (
	"context"

	"presale-engine/internal/domain/market"
	"presale-engine/internal/infra/db"

	"github.com/google/uuid"
)

type TradeRepository struct {
	db db.DBTX
}

func NewTradeRepository(dbtx db.DBTX) *TradeRepository {
	return &TradeRepository{db: dbtx}
}

const createTradeSQL = `
INSERT INTO trades (id, listing_id, buyer_user_id, price_cents, slots, created_at)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id`

func (r *TradeRepository) Create(ctx context.Context, t *market.Trade) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.db.QueryRow(ctx, createTradeSQL,
		t.ID(),
		t.ListingID(),
		t.BuyerUserID(),
		t.PriceCents(),
		t.Slots(),
		t.CreatedAt(),
	).Scan(&id)
	if err != nil {
		// unique index on listing_id backs the one-trade-per-listing invariant
		return uuid.Nil, wrapWriteErr("failed to create trade", err)
	}
	return id, nil
}
