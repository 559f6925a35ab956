package queries

import (
	"context"

	"presale-engine/internal/domain/round"
	"presale-engine/internal/infra"
	"presale-engine/internal/pkg/clock"
	"presale-engine/internal/pkg/errs"

	"github.com/google/uuid"
)

type RoundReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*round.Round, error)
	StakesByRound(ctx context.Context, roundID uuid.UUID) ([]round.Stake, error)
}

type RoundQueries interface {
	// GetRound returns the round with live progress and the status a caller
	// should display. The stored status lags until a close is requested, so
	// the display status is recomputed from current totals and clock.
	GetRound(ctx context.Context, id uuid.UUID) (*RoundView, error)
	GetProgress(ctx context.Context, id uuid.UUID) (round.Summary, error)
}

type roundQueriesImpl struct {
	store RoundReadStore
	clock clock.Clock
}

func NewRoundQueries(store RoundReadStore, clock clock.Clock) RoundQueries {
	return &roundQueriesImpl{store: store, clock: clock}
}

func (q *roundQueriesImpl) GetRound(ctx context.Context, id uuid.UUID) (*RoundView, error) {
	rd, progress, err := q.load(ctx, id)
	if err != nil {
		return nil, err
	}

	display := round.NextStatus(rd, progress.Percent, q.clock.Now())
	return &RoundView{
		ID:               rd.ID(),
		ProjectID:        rd.ProjectID(),
		GoalType:         rd.GoalType().String(),
		GoalValue:        rd.GoalValue(),
		DepositCents:     rd.DepositCents(),
		SlotsPerPerson:   rd.SlotsPerPerson(),
		DeadlineAt:       rd.DeadlineAt(),
		Rule:             rd.Rule().String(),
		PartialThreshold: rd.PartialThreshold(),
		StoredStatus:     rd.Status().String(),
		DisplayStatus:    display.String(),
		Currency:         rd.Currency(),
		GroupSlots:       rd.GroupSlots(),
		Progress:         progress,
		CreatedAt:        rd.CreatedAt(),
	}, nil
}

func (q *roundQueriesImpl) GetProgress(ctx context.Context, id uuid.UUID) (round.Summary, error) {
	_, progress, err := q.load(ctx, id)
	return progress, err
}

func (q *roundQueriesImpl) load(ctx context.Context, id uuid.UUID) (*round.Round, round.Summary, error) {
	rd, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, round.Summary{}, errs.ErrRoundNotFound
		}
		return nil, round.Summary{}, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	stakes, err := q.store.StakesByRound(ctx, id)
	if err != nil {
		return nil, round.Summary{}, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return rd, round.Progress(rd, stakes), nil
}
