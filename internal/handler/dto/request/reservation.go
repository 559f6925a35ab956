package request

import (
	"presale-engine/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateReservationRequest struct {
	Slots    int32  `json:"slots" binding:"required"`
	FullName string `json:"full_name" binding:"required"`
	Country  string `json:"country" binding:"required"`
	Phone    string `json:"phone" binding:"required"`
}

func (r CreateReservationRequest) ToParams(roundID uuid.UUID) commands.AdmitReservationParams {
	return commands.AdmitReservationParams{
		RoundID:  roundID,
		Slots:    r.Slots,
		FullName: r.FullName,
		Country:  r.Country,
		Phone:    r.Phone,
	}
}

type CheckoutRequest struct {
	Provider string `json:"provider"`
}

func (r CheckoutRequest) GetProvider() string {
	if r.Provider == "" {
		return "card"
	}
	return r.Provider
}
