package repository

import (
	"context"

	"presale-engine/internal/domain/reservation"
	"presale-engine/internal/infra"
	"presale-engine/internal/infra/db"

	"github.com/google/uuid"
)

type TransactionRepository struct {
	db db.DBTX
}

func NewTransactionRepository(dbtx db.DBTX) *TransactionRepository {
	return &TransactionRepository{db: dbtx}
}

const createTransactionSQL = `
INSERT INTO transactions (id, reservation_id, provider, amount_cents, currency, status, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id`

func (r *TransactionRepository) Create(ctx context.Context, t *reservation.Transaction) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.db.QueryRow(ctx, createTransactionSQL,
		t.ID(),
		t.ReservationID(),
		t.Provider(),
		t.AmountCents(),
		t.Currency(),
		t.Status().String(),
		t.CreatedAt(),
	).Scan(&id)
	if err != nil {
		// unique index on reservation_id enforces the 1:1 invariant
		return uuid.Nil, wrapWriteErr("failed to create transaction", err)
	}
	return id, nil
}

const updateTransactionStatusSQL = `UPDATE transactions SET status = $2 WHERE id = $1`

func (r *TransactionRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status reservation.TransactionStatus) error {
	tag, err := r.db.Exec(ctx, updateTransactionStatusSQL, id, status.String())
	if err != nil {
		return wrapWriteErr("failed to update transaction status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(infra.KindNotFound, "transaction not found", nil)
	}
	return nil
}

const refundTransactionsSQL = `
UPDATE transactions
SET status = 'refunded'
WHERE reservation_id = ANY($1) AND status = 'succeeded'`

func (r *TransactionRepository) RefundByReservationIDs(ctx context.Context, reservationIDs []uuid.UUID) (int64, error) {
	if len(reservationIDs) == 0 {
		return 0, nil
	}
	tag, err := r.db.Exec(ctx, refundTransactionsSQL, reservationIDs)
	if err != nil {
		return 0, wrapWriteErr("failed to cascade transaction refunds", err)
	}
	return tag.RowsAffected(), nil
}
