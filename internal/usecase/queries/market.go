package queries

import (
	"context"

	"presale-engine/internal/domain/market"
	"presale-engine/internal/pkg/errs"

	"github.com/google/uuid"
)

type PriceHistoryReadStore interface {
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]market.PricePoint, error)
}

type MarketQueries interface {
	// PriceHistory returns the per-slot trade prices for a project in
	// chronological order.
	PriceHistory(ctx context.Context, projectID uuid.UUID) ([]market.PricePoint, error)
}

type marketQueriesImpl struct {
	store PriceHistoryReadStore
}

func NewMarketQueries(store PriceHistoryReadStore) MarketQueries {
	return &marketQueriesImpl{store: store}
}

func (q *marketQueriesImpl) PriceHistory(ctx context.Context, projectID uuid.UUID) ([]market.PricePoint, error) {
	points, err := q.store.ListByProject(ctx, projectID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return points, nil
}
