package repository

import (
	"context"

	"presale-engine/internal/domain/market"
	"presale-engine/internal/infra/db"
)

type PriceHistoryRepository struct {
	db db.DBTX
}

func NewPriceHistoryRepository(dbtx db.DBTX) *PriceHistoryRepository {
	return &PriceHistoryRepository{db: dbtx}
}

const appendPricePointSQL = `
INSERT INTO price_points (project_id, observed_at, price_per_slot_cents, volume)
VALUES ($1, $2, $3, $4)`

// Append only ever inserts; the history has no update or delete path.
func (r *PriceHistoryRepository) Append(ctx context.Context, p market.PricePoint) error {
	if _, err := r.db.Exec(ctx, appendPricePointSQL,
		p.ProjectID,
		p.Timestamp,
		p.PricePerSlotCents,
		p.Volume,
	); err != nil {
		return wrapWriteErr("failed to append price point", err)
	}
	return nil
}
