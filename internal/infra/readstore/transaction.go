package readstore

import (
	"context"

	"presale-engine/internal/domain/reservation"
	"presale-engine/internal/infra"
	"presale-engine/internal/infra/db"
	"presale-engine/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type TransactionReadStore struct {
	db db.DBTX
}

func NewTransactionReadStore(dbtx db.DBTX) *TransactionReadStore {
	return &TransactionReadStore{db: dbtx}
}

const findTransactionByReservationSQL = `
SELECT id, reservation_id, provider, amount_cents, currency, status, created_at
FROM transactions
WHERE reservation_id = $1`

func (r *TransactionReadStore) FindByReservation(ctx context.Context, reservationID uuid.UUID) (*reservation.Transaction, error) {
	var (
		id, resID   uuid.UUID
		provider    string
		amountCents int64
		currency    string
		status      string
		createdAt   pgtype.Timestamptz
	)
	err := r.db.QueryRow(ctx, findTransactionByReservationSQL, reservationID).Scan(
		&id, &resID, &provider, &amountCents, &currency, &status, &createdAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(infra.KindNotFound, "transaction not found", err)
		}
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to find transaction by reservation", err)
	}

	return reservation.ReconstructTransaction(
		id, resID,
		provider,
		amountCents,
		currency,
		reservation.TransactionStatus(status),
		pgconv.TimeFromPgtype(createdAt),
	), nil
}
