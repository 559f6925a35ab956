package shared

import (
	"context"
	"time"

	"presale-engine/internal/domain/market"
	"presale-engine/internal/domain/reservation"
	"presale-engine/internal/domain/round"
	"presale-engine/internal/infra/db"

	"github.com/google/uuid"
)

// UnitOfWork is the ledger's mutation funnel: every write to rounds,
// reservations, transactions, listings, trades and price history goes through
// Within, which provides per-round serializability (round row locks) and the
// atomicity the refund cascade and listing fill require.
type UnitOfWork interface {
	// Within: full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error
	// CommandReads: direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Rounds() RoundRepository
	Reservations() ReservationRepository
	Transactions() TransactionRepository
	Listings() ListingRepository
	Trades() TradeRepository
	PriceHistory() PriceHistoryRepository
	Idempotency() IdempotencyRepository
	Notifications() NotificationRepository
	Reads() CommandReads
}

type CommandReads interface {
	RoundByID(ctx context.Context, id uuid.UUID) (*round.Round, error)
	// StakesByRound feeds the progress calculator; rows carry only what it needs.
	StakesByRound(ctx context.Context, roundID uuid.UUID) ([]round.Stake, error)
	// UserSlotsInRound sums non-refunded slots for the per-person cap check.
	UserSlotsInRound(ctx context.Context, roundID, userID uuid.UUID) (int32, error)
	ReservationByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	TransactionByReservation(ctx context.Context, reservationID uuid.UUID) (*reservation.Transaction, error)
	ListingByID(ctx context.Context, id uuid.UUID) (*market.Listing, error)
	IdempotencyByKey(ctx context.Context, key, userID uuid.UUID) (*IdempotencyRecord, error)
}

type IdempotencyRecord struct {
	Key         uuid.UUID
	UserID      uuid.UUID
	Status      string
	RequestHash string
	ResultID    *uuid.UUID
	ExpiresAt   time.Time
}

type RoundRepository interface {
	Create(ctx context.Context, r *round.Round) (uuid.UUID, error)
	// FindForUpdate takes the round row lock that serializes admission,
	// closure and cascade for one round.
	FindForUpdate(ctx context.Context, id uuid.UUID) (*round.Round, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status round.Status) error
}

type ReservationRepository interface {
	Create(ctx context.Context, res *reservation.Reservation) (uuid.UUID, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status reservation.Status) error
	// RefundFunded flips every confirmed/assigned reservation of the round to
	// refunded and returns the ids it touched. Running it against an already
	// cascaded round touches nothing.
	RefundFunded(ctx context.Context, roundID uuid.UUID) ([]uuid.UUID, error)
}

type TransactionRepository interface {
	Create(ctx context.Context, t *reservation.Transaction) (uuid.UUID, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status reservation.TransactionStatus) error
	// RefundByReservationIDs mirrors the reservation cascade onto the 1:1
	// payment records.
	RefundByReservationIDs(ctx context.Context, reservationIDs []uuid.UUID) (int64, error)
}

type ListingRepository interface {
	Create(ctx context.Context, l *market.Listing) (uuid.UUID, error)
	// FillIfActive is the serialization point of settlement: a conditional
	// status flip keyed on listing id. It reports false when the listing was
	// not active, without error.
	FillIfActive(ctx context.Context, id uuid.UUID, filledAt time.Time) (bool, error)
}

type TradeRepository interface {
	Create(ctx context.Context, t *market.Trade) (uuid.UUID, error)
}

type PriceHistoryRepository interface {
	Append(ctx context.Context, p market.PricePoint) error
}

type IdempotencyRepository interface {
	TryInsert(ctx context.Context, key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error)
	MarkCompleted(ctx context.Context, key, userID uuid.UUID, resultID uuid.UUID) error
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, kind, topic string, payload []byte, runAt time.Time) error
}
