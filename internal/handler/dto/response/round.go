package response

import (
	"time"

	"presale-engine/internal/domain/round"
	"presale-engine/internal/usecase/commands"
	"presale-engine/internal/usecase/queries"

	"github.com/google/uuid"
)

type RoundResponse struct {
	ID               uuid.UUID      `json:"id"`
	ProjectID        uuid.UUID      `json:"projectId"`
	GoalType         string         `json:"goalType"`
	GoalValue        int64          `json:"goalValue"`
	DepositCents     int64          `json:"depositCents"`
	SlotsPerPerson   int32          `json:"slotsPerPerson"`
	DeadlineAt       time.Time      `json:"deadlineAt"`
	Rule             string         `json:"rule"`
	PartialThreshold float64        `json:"partialThreshold"`
	Status           string         `json:"status"`
	Currency         string         `json:"currency"`
	GroupSlots       *int32         `json:"groupSlots,omitempty"`
	Progress         ProgressDetail `json:"progress"`
	CreatedAt        time.Time      `json:"createdAt"`
}

type ProgressDetail struct {
	TotalSlots           int32 `json:"totalSlots"`
	ConfirmedSlots       int32 `json:"confirmedSlots"`
	TotalAmountCents     int64 `json:"totalAmountCents"`
	ConfirmedAmountCents int64 `json:"confirmedAmountCents"`
	Percent              int   `json:"percent"`
}

type CloseRoundResponse struct {
	Status        string         `json:"status"`
	RefundedCount int            `json:"refundedCount"`
	Progress      ProgressDetail `json:"progress"`
}

type CreatedRoundResponse struct {
	ID     uuid.UUID `json:"id"`
	Status string    `json:"status"`
}

func FromRoundView(view *queries.RoundView) *RoundResponse {
	return &RoundResponse{
		ID:               view.ID,
		ProjectID:        view.ProjectID,
		GoalType:         view.GoalType,
		GoalValue:        view.GoalValue,
		DepositCents:     view.DepositCents,
		SlotsPerPerson:   view.SlotsPerPerson,
		DeadlineAt:       view.DeadlineAt,
		Rule:             view.Rule,
		PartialThreshold: view.PartialThreshold,
		Status:           view.DisplayStatus,
		Currency:         view.Currency,
		GroupSlots:       view.GroupSlots,
		Progress:         fromSummary(view.Progress),
		CreatedAt:        view.CreatedAt,
	}
}

func FromCloseResult(result *commands.CloseResult) *CloseRoundResponse {
	return &CloseRoundResponse{
		Status:        result.Status.String(),
		RefundedCount: result.RefundedCount,
		Progress:      fromSummary(result.ProgressAtClosure),
	}
}

func FromProgress(summary round.Summary) ProgressDetail {
	return fromSummary(summary)
}

func fromSummary(s round.Summary) ProgressDetail {
	return ProgressDetail{
		TotalSlots:           s.TotalSlots,
		ConfirmedSlots:       s.ConfirmedSlots,
		TotalAmountCents:     s.TotalAmountCents,
		ConfirmedAmountCents: s.ConfirmedAmountCents,
		Percent:              s.Percent,
	}
}
