package queries

import (
	"time"

	"presale-engine/internal/domain/round"

	"github.com/google/uuid"
)

// Read models (DTO for read side)

// RoundView carries both the stored status and the status computed from
// current progress; display follows DisplayStatus, which may run ahead of the
// stored one until an explicit close persists it.
type RoundView struct {
	ID               uuid.UUID     `json:"id"`
	ProjectID        uuid.UUID     `json:"project_id"`
	GoalType         string        `json:"goal_type"`
	GoalValue        int64         `json:"goal_value"`
	DepositCents     int64         `json:"deposit_cents"`
	SlotsPerPerson   int32         `json:"slots_per_person"`
	DeadlineAt       time.Time     `json:"deadline_at"`
	Rule             string        `json:"rule"`
	PartialThreshold float64       `json:"partial_threshold"`
	StoredStatus     string        `json:"stored_status"`
	DisplayStatus    string        `json:"display_status"`
	Currency         string        `json:"currency"`
	GroupSlots       *int32        `json:"group_slots,omitempty"`
	Progress         round.Summary `json:"progress"`
	CreatedAt        time.Time     `json:"created_at"`
}

type ReservationListItem struct {
	ID          uuid.UUID `json:"id"`
	RoundID     uuid.UUID `json:"round_id"`
	Slots       int32     `json:"slots"`
	AmountCents int64     `json:"amount_cents"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}
