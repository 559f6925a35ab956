package readstore

import (
	"context"

	"presale-engine/internal/domain/reservation"
	"presale-engine/internal/domain/round"
	"presale-engine/internal/infra"
	"presale-engine/internal/infra/db"
	"presale-engine/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type RoundReadStore struct {
	db db.DBTX
}

func NewRoundReadStore(dbtx db.DBTX) *RoundReadStore {
	return &RoundReadStore{db: dbtx}
}

const findRoundByIDSQL = `
SELECT id, project_id, goal_type, goal_value, deposit_cents, slots_per_person,
	deadline_at, rule, partial_threshold, status, currency, group_slots, created_at
FROM rounds
WHERE id = $1`

func (r *RoundReadStore) FindByID(ctx context.Context, id uuid.UUID) (*round.Round, error) {
	var (
		roundID, projectID uuid.UUID
		goalType, rule     string
		goalValue          int64
		depositCents       int64
		slotsPerPerson     int32
		deadlineAt         pgtype.Timestamptz
		partialThreshold   float64
		status             string
		currency           string
		groupSlots         pgtype.Int4
		createdAt          pgtype.Timestamptz
	)
	err := r.db.QueryRow(ctx, findRoundByIDSQL, id).Scan(
		&roundID, &projectID, &goalType, &goalValue, &depositCents, &slotsPerPerson,
		&deadlineAt, &rule, &partialThreshold, &status, &currency, &groupSlots, &createdAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(infra.KindNotFound, "round not found", err)
		}
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to find round by ID", err)
	}

	return round.ReconstructRound(
		roundID, projectID,
		round.GoalType(goalType),
		goalValue,
		depositCents,
		slotsPerPerson,
		pgconv.TimeFromPgtype(deadlineAt),
		round.Rule(rule),
		partialThreshold,
		round.Status(status),
		currency,
		pgconv.Int32PtrFromPgtype(groupSlots),
		pgconv.TimeFromPgtype(createdAt),
	), nil
}

const stakesByRoundSQL = `
SELECT slots, amount_cents, status
FROM reservations
WHERE round_id = $1`

func (r *RoundReadStore) StakesByRound(ctx context.Context, roundID uuid.UUID) ([]round.Stake, error) {
	rows, err := r.db.Query(ctx, stakesByRoundSQL, roundID)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to list round stakes", err)
	}
	defer rows.Close()

	var stakes []round.Stake
	for rows.Next() {
		var (
			slots       int32
			amountCents int64
			status      string
		)
		if err := rows.Scan(&slots, &amountCents, &status); err != nil {
			return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to scan round stake", err)
		}
		stakes = append(stakes, round.Stake{
			Slots:       slots,
			AmountCents: amountCents,
			Confirmed:   reservation.Status(status).HoldsFunds(),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to read round stakes", err)
	}
	return stakes, nil
}

const userSlotsInRoundSQL = `
SELECT COALESCE(SUM(slots), 0)
FROM reservations
WHERE round_id = $1 AND user_id = $2 AND status <> 'refunded'`

func (r *RoundReadStore) UserSlotsInRound(ctx context.Context, roundID, userID uuid.UUID) (int32, error) {
	var total int64
	if err := r.db.QueryRow(ctx, userSlotsInRoundSQL, roundID, userID).Scan(&total); err != nil {
		return 0, infra.WrapRepoErr(infra.KindDBFailure, "failed to sum user slots", err)
	}
	return int32(total), nil
}
