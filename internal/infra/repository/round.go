package repository

import (
	"context"

	"presale-engine/internal/domain/round"
	"presale-engine/internal/infra"
	"presale-engine/internal/infra/db"
	"presale-engine/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type RoundRepository struct {
	db db.DBTX
}

func NewRoundRepository(dbtx db.DBTX) *RoundRepository {
	return &RoundRepository{db: dbtx}
}

const createRoundSQL = `
INSERT INTO rounds (
	id, project_id, goal_type, goal_value, deposit_cents, slots_per_person,
	deadline_at, rule, partial_threshold, status, currency, group_slots, created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, now())
RETURNING id`

func (r *RoundRepository) Create(ctx context.Context, rd *round.Round) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.db.QueryRow(ctx, createRoundSQL,
		rd.ID(),
		rd.ProjectID(),
		rd.GoalType().String(),
		rd.GoalValue(),
		rd.DepositCents(),
		rd.SlotsPerPerson(),
		pgconv.TimeToPgtype(rd.DeadlineAt()),
		rd.Rule().String(),
		rd.PartialThreshold(),
		rd.Status().String(),
		rd.Currency(),
		pgconv.Int32PtrToPgtype(rd.GroupSlots()),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, wrapWriteErr("failed to create round", err)
	}
	return id, nil
}

const findRoundForUpdateSQL = `
SELECT id, project_id, goal_type, goal_value, deposit_cents, slots_per_person,
	deadline_at, rule, partial_threshold, status, currency, group_slots, created_at
FROM rounds
WHERE id = $1
FOR UPDATE`

// FindForUpdate blocks concurrent writers of the same round until this
// transaction finishes; admission, closure and cascade all enter through it.
func (r *RoundRepository) FindForUpdate(ctx context.Context, id uuid.UUID) (*round.Round, error) {
	row := r.db.QueryRow(ctx, findRoundForUpdateSQL, id)
	rd, err := scanRound(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(infra.KindNotFound, "round not found", err)
		}
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to lock round", err)
	}
	return rd, nil
}

const updateRoundStatusSQL = `UPDATE rounds SET status = $2 WHERE id = $1`

func (r *RoundRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status round.Status) error {
	tag, err := r.db.Exec(ctx, updateRoundStatusSQL, id, status.String())
	if err != nil {
		return wrapWriteErr("failed to update round status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(infra.KindNotFound, "round not found", nil)
	}
	return nil
}

type roundScanner interface {
	Scan(dest ...any) error
}

func scanRound(row roundScanner) (*round.Round, error) {
	var (
		id, projectID    uuid.UUID
		goalType, rule   string
		goalValue        int64
		depositCents     int64
		slotsPerPerson   int32
		deadlineAt       pgtype.Timestamptz
		partialThreshold float64
		status           string
		currency         string
		groupSlots       pgtype.Int4
		createdAt        pgtype.Timestamptz
	)
	if err := row.Scan(
		&id, &projectID, &goalType, &goalValue, &depositCents, &slotsPerPerson,
		&deadlineAt, &rule, &partialThreshold, &status, &currency, &groupSlots, &createdAt,
	); err != nil {
		return nil, err
	}
	return round.ReconstructRound(
		id, projectID,
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
