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

type ListingReadStore struct {
	db db.DBTX
}

func NewListingReadStore(dbtx db.DBTX) *ListingReadStore {
	return &ListingReadStore{db: dbtx}
}

const findListingByIDSQL = `
SELECT id, project_id, round_id, seller_user_id, slots, ask_cents, currency, status, filled_at, created_at
FROM listings
WHERE id = $1`

func (r *ListingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*market.Listing, error) {
	var (
		listingID, projectID, roundID, sellerID uuid.UUID
		slots                                   int32
		askCents                                int64
		currency                                string
		status                                  string
		filledAt                                pgtype.Timestamptz
		createdAt                               pgtype.Timestamptz
	)
	err := r.db.QueryRow(ctx, findListingByIDSQL, id).Scan(
		&listingID, &projectID, &roundID, &sellerID, &slots, &askCents, &currency, &status, &filledAt, &createdAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(infra.KindNotFound, "listing not found", err)
		}
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to find listing by ID", err)
	}

	return market.ReconstructListing(
		listingID, projectID, roundID, sellerID,
		slots,
		askCents,
		currency,
		market.ListingStatus(status),
		pgconv.TimePtrFromPgtype(filledAt),
		pgconv.TimeFromPgtype(createdAt),
	), nil
}
