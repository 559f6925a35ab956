package reservation

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrTransactionNotPending  = errors.New("transaction is not pending")
	ErrTransactionNotRefunded = errors.New("transaction does not hold a succeeded payment")
)

// Transaction is the single payment record tied 1:1 to a reservation. Its
// status tracks the reservation's: confirmed pairs with succeeded, refunded
// with refunded.
type Transaction struct {
	id            uuid.UUID
	reservationID uuid.UUID
	provider      string
	amountCents   int64
	currency      string
	status        TransactionStatus
	createdAt     time.Time
}

func NewTransaction(reservationID uuid.UUID, provider string, amountCents int64, currency string, now time.Time) *Transaction {
	return &Transaction{
		id:            uuid.New(),
		reservationID: reservationID,
		provider:      provider,
		amountCents:   amountCents,
		currency:      currency,
		status:        TransactionPending,
		createdAt:     now,
	}
}

func ReconstructTransaction(
	id, reservationID uuid.UUID,
	provider string,
	amountCents int64,
	currency string,
	status TransactionStatus,
	createdAt time.Time,
) *Transaction {
	return &Transaction{
		id:            id,
		reservationID: reservationID,
		provider:      provider,
		amountCents:   amountCents,
		currency:      currency,
		status:        status,
		createdAt:     createdAt,
	}
}

func (t *Transaction) MarkSucceeded() error {
	if t.status != TransactionPending {
		return ErrTransactionNotPending
	}
	t.status = TransactionSucceeded
	return nil
}

func (t *Transaction) MarkRefunded() error {
	if t.status != TransactionSucceeded {
		return ErrTransactionNotRefunded
	}
	t.status = TransactionRefunded
	return nil
}

func (t *Transaction) ID() uuid.UUID             { return t.id }
func (t *Transaction) ReservationID() uuid.UUID  { return t.reservationID }
func (t *Transaction) Provider() string          { return t.provider }
func (t *Transaction) AmountCents() int64        { return t.amountCents }
func (t *Transaction) Currency() string          { return t.currency }
func (t *Transaction) Status() TransactionStatus { return t.status }
func (t *Transaction) CreatedAt() time.Time      { return t.createdAt }
