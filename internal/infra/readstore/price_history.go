package readstore

import (
	"context"

	"presale-engine/internal/domain/market"
	"presale-engine/internal/infra"
	"presale-engine/internal/infra/db"
	"presale-engine/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type PriceHistoryReadStore struct {
	db db.DBTX
}

func NewPriceHistoryReadStore(dbtx db.DBTX) *PriceHistoryReadStore {
	return &PriceHistoryReadStore{db: dbtx}
}

const listPricePointsSQL = `
SELECT project_id, observed_at, price_per_slot_cents, volume
FROM price_points
WHERE project_id = $1
ORDER BY observed_at ASC`

func (r *PriceHistoryReadStore) ListByProject(ctx context.Context, projectID uuid.UUID) ([]market.PricePoint, error) {
	rows, err := r.db.Query(ctx, listPricePointsSQL, projectID)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to list price points", err)
	}
	defer rows.Close()

	points := []market.PricePoint{}
	for rows.Next() {
		var (
			p          market.PricePoint
			observedAt pgtype.Timestamptz
		)
		if err := rows.Scan(&p.ProjectID, &observedAt, &p.PricePerSlotCents, &p.Volume); err != nil {
			return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to scan price point", err)
		}
		p.Timestamp = pgconv.TimeFromPgtype(observedAt)
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to read price points", err)
	}
	return points, nil
}
