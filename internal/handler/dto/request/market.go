package request

import (
	"presale-engine/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateListingRequest struct {
	ProjectID uuid.UUID `json:"project_id" binding:"required"`
	RoundID   uuid.UUID `json:"round_id" binding:"required"`
	Slots     int32     `json:"slots" binding:"required"`
	AskCents  int64     `json:"ask_cents" binding:"required"`
	Currency  string    `json:"currency" binding:"required"`
}

func (r CreateListingRequest) ToParams() commands.CreateListingParams {
	return commands.CreateListingParams{
		ProjectID: r.ProjectID,
		RoundID:   r.RoundID,
		Slots:     r.Slots,
		AskCents:  r.AskCents,
		Currency:  r.Currency,
	}
}
