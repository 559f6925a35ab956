package repository

import (
	"context"

	"presale-engine/internal/domain/reservation"
	"presale-engine/internal/infra"
	"presale-engine/internal/infra/db"

	"github.com/google/uuid"
)

type ReservationRepository struct {
	db db.DBTX
}

func NewReservationRepository(dbtx db.DBTX) *ReservationRepository {
	return &ReservationRepository{db: dbtx}
}

const createReservationSQL = `
INSERT INTO reservations (
	id, round_id, user_id, slots, amount_cents, status,
	kyc_full_name, kyc_country, kyc_phone, created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING id`

func (r *ReservationRepository) Create(ctx context.Context, res *reservation.Reservation) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.db.QueryRow(ctx, createReservationSQL,
		res.ID(),
		res.RoundID(),
		res.UserID(),
		res.Slots(),
		res.AmountCents(),
		res.Status().String(),
		res.KYC().FullName(),
		res.KYC().Country(),
		res.KYC().Phone(),
		res.CreatedAt(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, wrapWriteErr("failed to create reservation", err)
	}
	return id, nil
}

const updateReservationStatusSQL = `UPDATE reservations SET status = $2 WHERE id = $1`

func (r *ReservationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status reservation.Status) error {
	tag, err := r.db.Exec(ctx, updateReservationStatusSQL, id, status.String())
	if err != nil {
		return wrapWriteErr("failed to update reservation status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(infra.KindNotFound, "reservation not found", nil)
	}
	return nil
}

const refundFundedSQL = `
UPDATE reservations
SET status = 'refunded'
WHERE round_id = $1 AND status IN ('confirmed', 'assigned')
RETURNING id`

// RefundFunded is the reservation half of the cascade. The WHERE clause makes
// a re-run against an already cascaded round a no-op.
func (r *ReservationRepository) RefundFunded(ctx context.Context, roundID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx, refundFundedSQL, roundID)
	if err != nil {
		return nil, wrapWriteErr("failed to cascade reservation refunds", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to scan refunded reservation id", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to read refunded reservation ids", err)
	}
	return ids, nil
}
