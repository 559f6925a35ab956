//go:build unit

// Package fake provides an in-memory unit of work for exercising command
// logic without a database. Each Within call snapshots the stores and rolls
// back on error, mirroring transaction semantics closely enough for the
// refund cascade and idempotency tests.
package fake

import (
	"context"
	"sync"
	"time"

	"presale-engine/internal/domain/market"
	"presale-engine/internal/domain/reservation"
	"presale-engine/internal/domain/round"
	"presale-engine/internal/infra"
	"presale-engine/internal/infra/db"
	"presale-engine/internal/usecase/queries"
	"presale-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

type NotificationJob struct {
	Kind    string
	Topic   string
	Payload []byte
	RunAt   time.Time
}

type idemKey struct {
	Key    uuid.UUID
	UserID uuid.UUID
}

type Ledger struct {
	mu sync.Mutex

	Rounds       map[uuid.UUID]*round.Round
	Reservations map[uuid.UUID]*reservation.Reservation
	Transactions map[uuid.UUID]*reservation.Transaction
	Listings     map[uuid.UUID]*market.Listing
	Trades       map[uuid.UUID]*market.Trade
	PricePoints  []market.PricePoint
	Idempotency  map[idemKey]*shared.IdempotencyRecord
	Jobs         []NotificationJob
}

func NewLedger() *Ledger {
	return &Ledger{
		Rounds:       make(map[uuid.UUID]*round.Round),
		Reservations: make(map[uuid.UUID]*reservation.Reservation),
		Transactions: make(map[uuid.UUID]*reservation.Transaction),
		Listings:     make(map[uuid.UUID]*market.Listing),
		Trades:       make(map[uuid.UUID]*market.Trade),
		Idempotency:  make(map[idemKey]*shared.IdempotencyRecord),
	}
}

func (l *Ledger) PutRound(r *round.Round) {
	l.Rounds[r.ID()] = r
}

func (l *Ledger) PutReservation(r *reservation.Reservation) {
	l.Reservations[r.ID()] = r
}

func (l *Ledger) PutTransaction(t *reservation.Transaction) {
	l.Transactions[t.ID()] = t
}

func (l *Ledger) PutListing(lst *market.Listing) {
	l.Listings[lst.ID()] = lst
}

func (l *Ledger) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	snap := l.snapshot()
	if err := fn(ctx, &fakeTx{ledger: l}); err != nil {
		l.restore(snap)
		return err
	}
	return nil
}

func (l *Ledger) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error {
	return fn(ctx, nil)
}

func (l *Ledger) CommandReads() shared.CommandReads {
	return &fakeReads{ledger: l}
}

type ledgerSnapshot struct {
	rounds       map[uuid.UUID]*round.Round
	reservations map[uuid.UUID]*reservation.Reservation
	transactions map[uuid.UUID]*reservation.Transaction
	listings     map[uuid.UUID]*market.Listing
	trades       map[uuid.UUID]*market.Trade
	pricePoints  []market.PricePoint
	idempotency  map[idemKey]*shared.IdempotencyRecord
	jobs         []NotificationJob
}

func (l *Ledger) snapshot() ledgerSnapshot {
	snap := ledgerSnapshot{
		rounds:       make(map[uuid.UUID]*round.Round, len(l.Rounds)),
		reservations: make(map[uuid.UUID]*reservation.Reservation, len(l.Reservations)),
		transactions: make(map[uuid.UUID]*reservation.Transaction, len(l.Transactions)),
		listings:     make(map[uuid.UUID]*market.Listing, len(l.Listings)),
		trades:       make(map[uuid.UUID]*market.Trade, len(l.Trades)),
		pricePoints:  append([]market.PricePoint(nil), l.PricePoints...),
		idempotency:  make(map[idemKey]*shared.IdempotencyRecord, len(l.Idempotency)),
		jobs:         append([]NotificationJob(nil), l.Jobs...),
	}
	for id, r := range l.Rounds {
		snap.rounds[id] = cloneRound(r)
	}
	for id, r := range l.Reservations {
		snap.reservations[id] = cloneReservation(r)
	}
	for id, t := range l.Transactions {
		snap.transactions[id] = cloneTransaction(t)
	}
	for id, lst := range l.Listings {
		snap.listings[id] = cloneListing(lst)
	}
	for id, t := range l.Trades {
		snap.trades[id] = t
	}
	for k, rec := range l.Idempotency {
		copied := *rec
		snap.idempotency[k] = &copied
	}
	return snap
}

func (l *Ledger) restore(snap ledgerSnapshot) {
	l.Rounds = snap.rounds
	l.Reservations = snap.reservations
	l.Transactions = snap.transactions
	l.Listings = snap.listings
	l.Trades = snap.trades
	l.PricePoints = snap.pricePoints
	l.Idempotency = snap.idempotency
	l.Jobs = snap.jobs
}

func cloneRound(r *round.Round) *round.Round {
	return round.ReconstructRound(
		r.ID(), r.ProjectID(), r.GoalType(), r.GoalValue(), r.DepositCents(),
		r.SlotsPerPerson(), r.DeadlineAt(), r.Rule(), r.PartialThreshold(),
		r.Status(), r.Currency(), r.GroupSlots(), r.CreatedAt(),
	)
}

func cloneReservation(r *reservation.Reservation) *reservation.Reservation {
	return reservation.ReconstructReservation(
		r.ID(), r.RoundID(), r.UserID(), r.Slots(), r.AmountCents(),
		r.Status(), r.KYC(), r.CreatedAt(),
	)
}

func cloneTransaction(t *reservation.Transaction) *reservation.Transaction {
	return reservation.ReconstructTransaction(
		t.ID(), t.ReservationID(), t.Provider(), t.AmountCents(),
		t.Currency(), t.Status(), t.CreatedAt(),
	)
}

func cloneListing(lst *market.Listing) *market.Listing {
	return market.ReconstructListing(
		lst.ID(), lst.ProjectID(), lst.RoundID(), lst.SellerUserID(),
		lst.Slots(), lst.AskCents(), lst.Currency(), lst.Status(),
		lst.FilledAt(), lst.CreatedAt(),
	)
}

type fakeTx struct {
	ledger *Ledger
}

func (t *fakeTx) Rounds() shared.RoundRepository             { return &roundRepo{t.ledger} }
func (t *fakeTx) Reservations() shared.ReservationRepository { return &reservationRepo{t.ledger} }
func (t *fakeTx) Transactions() shared.TransactionRepository { return &transactionRepo{t.ledger} }
func (t *fakeTx) Listings() shared.ListingRepository         { return &listingRepo{t.ledger} }
func (t *fakeTx) Trades() shared.TradeRepository             { return &tradeRepo{t.ledger} }
func (t *fakeTx) PriceHistory() shared.PriceHistoryRepository {
	return &priceHistoryRepo{t.ledger}
}
func (t *fakeTx) Idempotency() shared.IdempotencyRepository {
	return &idempotencyRepo{t.ledger}
}
func (t *fakeTx) Notifications() shared.NotificationRepository {
	return &notificationRepo{t.ledger}
}
func (t *fakeTx) Reads() shared.CommandReads { return &fakeReads{ledger: t.ledger} }

type roundRepo struct{ ledger *Ledger }

func (r *roundRepo) Create(_ context.Context, rd *round.Round) (uuid.UUID, error) {
	r.ledger.Rounds[rd.ID()] = rd
	return rd.ID(), nil
}

func (r *roundRepo) FindForUpdate(_ context.Context, id uuid.UUID) (*round.Round, error) {
	rd, ok := r.ledger.Rounds[id]
	if !ok {
		return nil, infra.WrapRepoErr(infra.KindNotFound, "round not found", errNotFound)
	}
	return rd, nil
}

func (r *roundRepo) UpdateStatus(_ context.Context, id uuid.UUID, status round.Status) error {
	rd, ok := r.ledger.Rounds[id]
	if !ok {
		return infra.WrapRepoErr(infra.KindNotFound, "round not found", errNotFound)
	}
	r.ledger.Rounds[id] = round.ReconstructRound(
		rd.ID(), rd.ProjectID(), rd.GoalType(), rd.GoalValue(), rd.DepositCents(),
		rd.SlotsPerPerson(), rd.DeadlineAt(), rd.Rule(), rd.PartialThreshold(),
		status, rd.Currency(), rd.GroupSlots(), rd.CreatedAt(),
	)
	return nil
}

type reservationRepo struct{ ledger *Ledger }

func (r *reservationRepo) Create(_ context.Context, res *reservation.Reservation) (uuid.UUID, error) {
	r.ledger.Reservations[res.ID()] = res
	return res.ID(), nil
}

func (r *reservationRepo) UpdateStatus(_ context.Context, id uuid.UUID, status reservation.Status) error {
	res, ok := r.ledger.Reservations[id]
	if !ok {
		return infra.WrapRepoErr(infra.KindNotFound, "reservation not found", errNotFound)
	}
	r.ledger.Reservations[id] = reservation.ReconstructReservation(
		res.ID(), res.RoundID(), res.UserID(), res.Slots(), res.AmountCents(),
		status, res.KYC(), res.CreatedAt(),
	)
	return nil
}

func (r *reservationRepo) RefundFunded(_ context.Context, roundID uuid.UUID) ([]uuid.UUID, error) {
	var touched []uuid.UUID
	for id, res := range r.ledger.Reservations {
		if res.RoundID() == roundID && res.Status().HoldsFunds() {
			r.ledger.Reservations[id] = reservation.ReconstructReservation(
				res.ID(), res.RoundID(), res.UserID(), res.Slots(), res.AmountCents(),
				reservation.StatusRefunded, res.KYC(), res.CreatedAt(),
			)
			touched = append(touched, id)
		}
	}
	return touched, nil
}

type transactionRepo struct{ ledger *Ledger }

func (r *transactionRepo) Create(_ context.Context, tr *reservation.Transaction) (uuid.UUID, error) {
	r.ledger.Transactions[tr.ID()] = tr
	return tr.ID(), nil
}

func (r *transactionRepo) UpdateStatus(_ context.Context, id uuid.UUID, status reservation.TransactionStatus) error {
	tr, ok := r.ledger.Transactions[id]
	if !ok {
		return infra.WrapRepoErr(infra.KindNotFound, "transaction not found", errNotFound)
	}
	r.ledger.Transactions[id] = reservation.ReconstructTransaction(
		tr.ID(), tr.ReservationID(), tr.Provider(), tr.AmountCents(),
		tr.Currency(), status, tr.CreatedAt(),
	)
	return nil
}

func (r *transactionRepo) RefundByReservationIDs(_ context.Context, ids []uuid.UUID) (int64, error) {
	want := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	var n int64
	for id, tr := range r.ledger.Transactions {
		if want[tr.ReservationID()] && tr.Status() == reservation.TransactionSucceeded {
			r.ledger.Transactions[id] = reservation.ReconstructTransaction(
				tr.ID(), tr.ReservationID(), tr.Provider(), tr.AmountCents(),
				tr.Currency(), reservation.TransactionRefunded, tr.CreatedAt(),
			)
			n++
		}
	}
	return n, nil
}

type listingRepo struct{ ledger *Ledger }

func (r *listingRepo) Create(_ context.Context, lst *market.Listing) (uuid.UUID, error) {
	r.ledger.Listings[lst.ID()] = lst
	return lst.ID(), nil
}

func (r *listingRepo) FillIfActive(_ context.Context, id uuid.UUID, filledAt time.Time) (bool, error) {
	lst, ok := r.ledger.Listings[id]
	if !ok || !lst.IsActive() {
		return false, nil
	}
	r.ledger.Listings[id] = market.ReconstructListing(
		lst.ID(), lst.ProjectID(), lst.RoundID(), lst.SellerUserID(),
		lst.Slots(), lst.AskCents(), lst.Currency(), market.ListingSold,
		&filledAt, lst.CreatedAt(),
	)
	return true, nil
}

type tradeRepo struct{ ledger *Ledger }

func (r *tradeRepo) Create(_ context.Context, tr *market.Trade) (uuid.UUID, error) {
	r.ledger.Trades[tr.ID()] = tr
	return tr.ID(), nil
}

type priceHistoryRepo struct{ ledger *Ledger }

func (r *priceHistoryRepo) Append(_ context.Context, p market.PricePoint) error {
	r.ledger.PricePoints = append(r.ledger.PricePoints, p)
	return nil
}

type idempotencyRepo struct{ ledger *Ledger }

func (r *idempotencyRepo) TryInsert(_ context.Context, key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error) {
	k := idemKey{Key: key, UserID: userID}
	if _, exists := r.ledger.Idempotency[k]; exists {
		return false, nil
	}
	r.ledger.Idempotency[k] = &shared.IdempotencyRecord{
		Key:         key,
		UserID:      userID,
		Status:      "processing",
		RequestHash: requestHash,
		ExpiresAt:   expiresAt,
	}
	return true, nil
}

func (r *idempotencyRepo) MarkCompleted(_ context.Context, key, userID uuid.UUID, resultID uuid.UUID) error {
	k := idemKey{Key: key, UserID: userID}
	rec, ok := r.ledger.Idempotency[k]
	if !ok {
		return infra.WrapRepoErr(infra.KindNotFound, "idempotency key not found", errNotFound)
	}
	rec.Status = "completed"
	rec.ResultID = &resultID
	return nil
}

type notificationRepo struct{ ledger *Ledger }

func (r *notificationRepo) CreateJob(_ context.Context, kind, topic string, payload []byte, runAt time.Time) error {
	r.ledger.Jobs = append(r.ledger.Jobs, NotificationJob{
		Kind:    kind,
		Topic:   topic,
		Payload: payload,
		RunAt:   runAt,
	})
	return nil
}

type fakeReads struct {
	ledger *Ledger
}

// FindByID satisfies the query-side read store so query services can run
// against the same ledger.
func (f *fakeReads) FindByID(ctx context.Context, id uuid.UUID) (*round.Round, error) {
	return f.RoundByID(ctx, id)
}

func (f *fakeReads) RoundByID(_ context.Context, id uuid.UUID) (*round.Round, error) {
	rd, ok := f.ledger.Rounds[id]
	if !ok {
		return nil, infra.WrapRepoErr(infra.KindNotFound, "round not found", errNotFound)
	}
	return rd, nil
}

func (f *fakeReads) StakesByRound(_ context.Context, roundID uuid.UUID) ([]round.Stake, error) {
	var stakes []round.Stake
	for _, res := range f.ledger.Reservations {
		if res.RoundID() != roundID {
			continue
		}
		stakes = append(stakes, round.Stake{
			Slots:       res.Slots(),
			AmountCents: res.AmountCents(),
			Confirmed:   res.Status().HoldsFunds(),
		})
	}
	return stakes, nil
}

func (f *fakeReads) UserSlotsInRound(_ context.Context, roundID, userID uuid.UUID) (int32, error) {
	var total int32
	for _, res := range f.ledger.Reservations {
		if res.RoundID() == roundID && res.UserID() == userID && res.Status().CountsTowardCap() {
			total += res.Slots()
		}
	}
	return total, nil
}

func (f *fakeReads) ReservationByID(_ context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	res, ok := f.ledger.Reservations[id]
	if !ok {
		return nil, infra.WrapRepoErr(infra.KindNotFound, "reservation not found", errNotFound)
	}
	return res, nil
}

func (f *fakeReads) TransactionByReservation(_ context.Context, reservationID uuid.UUID) (*reservation.Transaction, error) {
	for _, tr := range f.ledger.Transactions {
		if tr.ReservationID() == reservationID {
			return tr, nil
		}
	}
	return nil, infra.WrapRepoErr(infra.KindNotFound, "transaction not found", errNotFound)
}

func (f *fakeReads) ListingByID(_ context.Context, id uuid.UUID) (*market.Listing, error) {
	lst, ok := f.ledger.Listings[id]
	if !ok {
		return nil, infra.WrapRepoErr(infra.KindNotFound, "listing not found", errNotFound)
	}
	return lst, nil
}

func (f *fakeReads) IdempotencyByKey(_ context.Context, key, userID uuid.UUID) (*shared.IdempotencyRecord, error) {
	rec, ok := f.ledger.Idempotency[idemKey{Key: key, UserID: userID}]
	if !ok {
		return nil, infra.WrapRepoErr(infra.KindNotFound, "idempotency key not found", errNotFound)
	}
	return rec, nil
}

var errNotFound = pgxNoRows{}

type pgxNoRows struct{}

func (pgxNoRows) Error() string { return "no rows in result set" }

var _ shared.UnitOfWork = (*Ledger)(nil)
var _ queries.RoundReadStore = (*fakeReads)(nil)
