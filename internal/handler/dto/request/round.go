package request

import (
	"time"

	"presale-engine/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateRoundRequest struct {
	ProjectID        uuid.UUID `json:"project_id" binding:"required"`
	GoalType         string    `json:"goal_type" binding:"required"`
	GoalValue        int64     `json:"goal_value" binding:"required"`
	DepositCents     int64     `json:"deposit_cents" binding:"required"`
	SlotsPerPerson   int32     `json:"slots_per_person" binding:"required"`
	DeadlineAt       time.Time `json:"deadline_at" binding:"required"`
	Rule             string    `json:"rule" binding:"required"`
	PartialThreshold float64   `json:"partial_threshold"`
	Currency         string    `json:"currency" binding:"required"`
	GroupSlots       *int32    `json:"group_slots,omitempty"`
}

func (r CreateRoundRequest) ToParams() commands.CreateRoundParams {
	return commands.CreateRoundParams{
		ProjectID:        r.ProjectID,
		GoalType:         r.GoalType,
		GoalValue:        r.GoalValue,
		DepositCents:     r.DepositCents,
		SlotsPerPerson:   r.SlotsPerPerson,
		DeadlineAt:       r.DeadlineAt,
		Rule:             r.Rule,
		PartialThreshold: r.PartialThreshold,
		Currency:         r.Currency,
		GroupSlots:       r.GroupSlots,
	}
}
