package readstore

import (
	"context"

	"presale-engine/internal/domain/reservation"
	"presale-engine/internal/infra"
	"presale-engine/internal/infra/db"
	"presale-engine/internal/pkg/pgconv"
	"presale-engine/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type ReservationReadStore struct {
	db db.DBTX
}

func NewReservationReadStore(dbtx db.DBTX) *ReservationReadStore {
	return &ReservationReadStore{db: dbtx}
}

const findReservationByIDSQL = `
SELECT id, round_id, user_id, slots, amount_cents, status,
	kyc_full_name, kyc_country, kyc_phone, created_at
FROM reservations
WHERE id = $1`

func (r *ReservationReadStore) FindByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	var (
		resID, roundID, userID          uuid.UUID
		slots                           int32
		amountCents                     int64
		status                          string
		kycFullName, kycCountry, kycPhn string
		createdAt                       pgtype.Timestamptz
	)
	err := r.db.QueryRow(ctx, findReservationByIDSQL, id).Scan(
		&resID, &roundID, &userID, &slots, &amountCents, &status,
		&kycFullName, &kycCountry, &kycPhn, &createdAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(infra.KindNotFound, "reservation not found", err)
		}
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to find reservation by ID", err)
	}

	kyc, err := reservation.NewKYC(kycFullName, kycCountry, kycPhn)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "stored reservation has invalid kyc", err)
	}

	return reservation.ReconstructReservation(
		resID, roundID, userID,
		slots,
		amountCents,
		reservation.Status(status),
		kyc,
		pgconv.TimeFromPgtype(createdAt),
	), nil
}

const listReservationsByUserSQL = `
SELECT id, round_id, slots, amount_cents, status, created_at
FROM reservations
WHERE user_id = $1
ORDER BY created_at DESC`

func (r *ReservationReadStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*queries.ReservationListItem, error) {
	rows, err := r.db.Query(ctx, listReservationsByUserSQL, userID)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to list reservations by user", err)
	}
	defer rows.Close()

	var items []*queries.ReservationListItem
	for rows.Next() {
		var (
			item      queries.ReservationListItem
			createdAt pgtype.Timestamptz
		)
		if err := rows.Scan(&item.ID, &item.RoundID, &item.Slots, &item.AmountCents, &item.Status, &createdAt); err != nil {
			return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to scan reservation list item", err)
		}
		item.CreatedAt = pgconv.TimeFromPgtype(createdAt)
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to read reservation list", err)
	}
	return items, nil
}
