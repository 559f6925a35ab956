package commands

import (
	"context"
	"encoding/json"
	"time"

	"presale-engine/internal/domain/round"
	"presale-engine/internal/infra"
	"presale-engine/internal/pkg/clock"
	"presale-engine/internal/pkg/errs"
	"presale-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateRoundParams struct {
	ProjectID        uuid.UUID `json:"project_id"`
	GoalType         string    `json:"goal_type"`
	GoalValue        int64     `json:"goal_value"`
	DepositCents     int64     `json:"deposit_cents"`
	SlotsPerPerson   int32     `json:"slots_per_person"`
	DeadlineAt       time.Time `json:"deadline_at"`
	Rule             string    `json:"rule"`
	PartialThreshold float64   `json:"partial_threshold"`
	Currency         string    `json:"currency"`
	GroupSlots       *int32    `json:"group_slots"`
}

type CloseResult struct {
	Status            round.Status
	RefundedCount     int
	ProgressAtClosure round.Summary
}

type RoundCommands interface {
	Create(ctx context.Context, params CreateRoundParams) (*round.Round, error)
	// Close evaluates the round under its row lock and persists the outcome.
	// This is the only code path that writes a terminal status; a round past
	// its deadline keeps reporting a computed status until Close runs. When
	// the outcome is not_met every held deposit is released in the same
	// transaction.
	Close(ctx context.Context, roundID uuid.UUID) (*CloseResult, error)
}

type roundCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewRoundCommands(uow shared.UnitOfWork, clock clock.Clock) RoundCommands {
	return &roundCommandsImpl{uow: uow, clock: clock}
}

func (c *roundCommandsImpl) Create(ctx context.Context, params CreateRoundParams) (*round.Round, error) {
	rd, err := round.NewRound(
		params.ProjectID,
		round.GoalType(params.GoalType),
		params.GoalValue,
		params.DepositCents,
		params.SlotsPerPerson,
		params.DeadlineAt,
		round.Rule(params.Rule),
		params.PartialThreshold,
		params.Currency,
		params.GroupSlots,
	)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Rounds().Create(ctx, rd); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rd, nil
}

func (c *roundCommandsImpl) Close(ctx context.Context, roundID uuid.UUID) (*CloseResult, error) {
	var result *CloseResult
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		rd, err := tx.Rounds().FindForUpdate(ctx, roundID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.ErrRoundNotFound
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		stakes, err := tx.Reads().StakesByRound(ctx, roundID)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		progress := round.Progress(rd, stakes)

		next := round.NextStatus(rd, progress.Percent, c.clock.Now())
		if next != rd.Status() && next.IsTerminal() {
			if err := tx.Rounds().UpdateStatus(ctx, roundID, next); err != nil {
				return errs.Mark(err, errs.ErrDatabaseOperationFailed)
			}
		}

		refunded := 0
		if next == round.StatusNotMet {
			// Re-running after a crash re-enters here; the cascade queries
			// only touch rows still holding funds, so it settles to zero.
			refunded, err = c.runRefundCascade(ctx, tx, roundID)
			if err != nil {
				return err
			}
		}

		if next.IsTerminal() && next != rd.Status() {
			if err := createRoundJob(ctx, tx, roundID, next, c.clock.Now()); err != nil {
				return errs.Mark(err, errs.ErrDatabaseOperationFailed)
			}
		}

		result = &CloseResult{
			Status:            next,
			RefundedCount:     refunded,
			ProgressAtClosure: progress,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (c *roundCommandsImpl) runRefundCascade(ctx context.Context, tx shared.Tx, roundID uuid.UUID) (int, error) {
	ids, err := tx.Reservations().RefundFunded(ctx, roundID)
	if err != nil {
		return 0, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if _, err := tx.Transactions().RefundByReservationIDs(ctx, ids); err != nil {
		return 0, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return len(ids), nil
}

func createRoundJob(ctx context.Context, tx shared.Tx, roundID uuid.UUID, outcome round.Status, runAt time.Time) error {
	payload, err := json.Marshal(map[string]any{
		"round_id": roundID,
		"outcome":  outcome.String(),
	})
	if err != nil {
		return err
	}
	return tx.Notifications().CreateJob(ctx, "email", "round_closed", payload, runAt)
}
