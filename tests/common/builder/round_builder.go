//go:build unit || e2e

package builder

import (
	"time"

	domround "presale-engine/internal/domain/round"
	reqdto "presale-engine/internal/handler/dto/request"
	"presale-engine/internal/usecase/commands"
	"presale-engine/internal/usecase/queries"

	"github.com/google/uuid"
)

type RoundBuilder struct {
	ID               uuid.UUID
	ProjectID        uuid.UUID
	GoalType         domround.GoalType
	GoalValue        int64
	DepositCents     int64
	SlotsPerPerson   int32
	DeadlineAt       time.Time
	Rule             domround.Rule
	PartialThreshold float64
	Status           domround.Status
	Currency         string
	GroupSlots       *int32
	CreatedAt        time.Time
}

func NewRoundBuilder() *RoundBuilder {
	now := time.Now().UTC().Truncate(time.Second)
	return &RoundBuilder{
		ID:               uuid.New(),
		ProjectID:        uuid.New(),
		GoalType:         domround.GoalSlots,
		GoalValue:        100,
		DepositCents:     5000,
		SlotsPerPerson:   10,
		DeadlineAt:       now.Add(72 * time.Hour),
		Rule:             domround.RuleAllOrNothing,
		PartialThreshold: 0,
		Status:           domround.StatusOpen,
		Currency:         "USD",
		CreatedAt:        now,
	}
}

func (b *RoundBuilder) With(mutate func(*RoundBuilder)) *RoundBuilder {
	mutate(b)
	return b
}

func (b *RoundBuilder) BuildDomain() (*domround.Round, error) {
	return domround.NewRound(
		b.ProjectID,
		b.GoalType,
		b.GoalValue,
		b.DepositCents,
		b.SlotsPerPerson,
		b.DeadlineAt,
		b.Rule,
		b.PartialThreshold,
		b.Currency,
		b.GroupSlots,
	)
}

func (b *RoundBuilder) BuildReconstructed() *domround.Round {
	return domround.ReconstructRound(
		b.ID,
		b.ProjectID,
		b.GoalType,
		b.GoalValue,
		b.DepositCents,
		b.SlotsPerPerson,
		b.DeadlineAt,
		b.Rule,
		b.PartialThreshold,
		b.Status,
		b.Currency,
		b.GroupSlots,
		b.CreatedAt,
	)
}

func (b *RoundBuilder) BuildCreateParams() commands.CreateRoundParams {
	return commands.CreateRoundParams{
		ProjectID:        b.ProjectID,
		GoalType:         b.GoalType.String(),
		GoalValue:        b.GoalValue,
		DepositCents:     b.DepositCents,
		SlotsPerPerson:   b.SlotsPerPerson,
		DeadlineAt:       b.DeadlineAt,
		Rule:             b.Rule.String(),
		PartialThreshold: b.PartialThreshold,
		Currency:         b.Currency,
		GroupSlots:       b.GroupSlots,
	}
}

func (b *RoundBuilder) BuildCreateRequestDTO() reqdto.CreateRoundRequest {
	return reqdto.CreateRoundRequest{
		ProjectID:        b.ProjectID,
		GoalType:         b.GoalType.String(),
		GoalValue:        b.GoalValue,
		DepositCents:     b.DepositCents,
		SlotsPerPerson:   b.SlotsPerPerson,
		DeadlineAt:       b.DeadlineAt,
		Rule:             b.Rule.String(),
		PartialThreshold: b.PartialThreshold,
		Currency:         b.Currency,
		GroupSlots:       b.GroupSlots,
	}
}

func (b *RoundBuilder) BuildView(progress domround.Summary, displayStatus domround.Status) *queries.RoundView {
	return &queries.RoundView{
		ID:               b.ID,
		ProjectID:        b.ProjectID,
		GoalType:         b.GoalType.String(),
		GoalValue:        b.GoalValue,
		DepositCents:     b.DepositCents,
		SlotsPerPerson:   b.SlotsPerPerson,
		DeadlineAt:       b.DeadlineAt,
		Rule:             b.Rule.String(),
		PartialThreshold: b.PartialThreshold,
		StoredStatus:     b.Status.String(),
		DisplayStatus:    displayStatus.String(),
		Currency:         b.Currency,
		GroupSlots:       b.GroupSlots,
		Progress:         progress,
		CreatedAt:        b.CreatedAt,
	}
}
