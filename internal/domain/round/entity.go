package round

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidGoalType  = errors.New("invalid goal type")
	ErrInvalidGoalValue = errors.New("goal value must be positive")
	ErrInvalidDeposit   = errors.New("deposit amount must be positive")
	ErrInvalidCap       = errors.New("slots per person must be positive")
	ErrInvalidRule      = errors.New("invalid closure rule")
	ErrInvalidThreshold = errors.New("partial threshold must be in (0,1]")
)

// Round is one funding campaign for one project. goalValue counts slots when
// goalType is GoalSlots, cents when GoalAmount.
type Round struct {
	id               uuid.UUID
	projectID        uuid.UUID
	goalType         GoalType
	goalValue        int64
	depositCents     int64
	slotsPerPerson   int32
	deadlineAt       time.Time
	rule             Rule
	partialThreshold float64
	status           Status
	currency         string
	groupSlots       *int32
	createdAt        time.Time
}

func NewRound(
	projectID uuid.UUID,
	goalType GoalType,
	goalValue int64,
	depositCents int64,
	slotsPerPerson int32,
	deadlineAt time.Time,
	rule Rule,
	partialThreshold float64,
	currency string,
	groupSlots *int32,
) (*Round, error) {
	if !goalType.IsValid() {
		return nil, ErrInvalidGoalType
	}
	if goalValue <= 0 {
		return nil, ErrInvalidGoalValue
	}
	if depositCents <= 0 {
		return nil, ErrInvalidDeposit
	}
	if slotsPerPerson <= 0 {
		return nil, ErrInvalidCap
	}
	if !rule.IsValid() {
		return nil, ErrInvalidRule
	}
	if rule == RulePartial && (partialThreshold <= 0 || partialThreshold > 1) {
		return nil, ErrInvalidThreshold
	}

	return &Round{
		id:               uuid.New(),
		projectID:        projectID,
		goalType:         goalType,
		goalValue:        goalValue,
		depositCents:     depositCents,
		slotsPerPerson:   slotsPerPerson,
		deadlineAt:       deadlineAt,
		rule:             rule,
		partialThreshold: partialThreshold,
		status:           StatusOpen,
		currency:         currency,
		groupSlots:       groupSlots,
	}, nil
}

func ReconstructRound(
	id, projectID uuid.UUID,
	goalType GoalType,
	goalValue int64,
	depositCents int64,
	slotsPerPerson int32,
	deadlineAt time.Time,
	rule Rule,
	partialThreshold float64,
	status Status,
	currency string,
	groupSlots *int32,
	createdAt time.Time,
) *Round {
	return &Round{
		id:               id,
		projectID:        projectID,
		goalType:         goalType,
		goalValue:        goalValue,
		depositCents:     depositCents,
		slotsPerPerson:   slotsPerPerson,
		deadlineAt:       deadlineAt,
		rule:             rule,
		partialThreshold: partialThreshold,
		status:           status,
		currency:         currency,
		groupSlots:       groupSlots,
		createdAt:        createdAt,
	}
}

func (r *Round) ID() uuid.UUID             { return r.id }
func (r *Round) ProjectID() uuid.UUID      { return r.projectID }
func (r *Round) GoalType() GoalType        { return r.goalType }
func (r *Round) GoalValue() int64          { return r.goalValue }
func (r *Round) DepositCents() int64       { return r.depositCents }
func (r *Round) SlotsPerPerson() int32     { return r.slotsPerPerson }
func (r *Round) DeadlineAt() time.Time     { return r.deadlineAt }
func (r *Round) Rule() Rule                { return r.rule }
func (r *Round) PartialThreshold() float64 { return r.partialThreshold }
func (r *Round) Status() Status            { return r.status }
func (r *Round) Currency() string          { return r.currency }
func (r *Round) GroupSlots() *int32        { return r.groupSlots }
func (r *Round) CreatedAt() time.Time      { return r.createdAt }
