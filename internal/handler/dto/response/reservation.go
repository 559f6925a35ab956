package response

import (
	"time"

	"presale-engine/internal/domain/reservation"
	"presale-engine/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationResponse struct {
	ID          uuid.UUID `json:"id"`
	RoundID     uuid.UUID `json:"roundId"`
	UserID      uuid.UUID `json:"userId"`
	Slots       int32     `json:"slots"`
	AmountCents int64     `json:"amountCents"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

type ReservationListResponse struct {
	ID          uuid.UUID `json:"id"`
	RoundID     uuid.UUID `json:"roundId"`
	Slots       int32     `json:"slots"`
	AmountCents int64     `json:"amountCents"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

type CheckoutResponse struct {
	TransactionID uuid.UUID `json:"transactionId"`
}

func FromReservation(res *reservation.Reservation) *ReservationResponse {
	return &ReservationResponse{
		ID:          res.ID(),
		RoundID:     res.RoundID(),
		UserID:      res.UserID(),
		Slots:       res.Slots(),
		AmountCents: res.AmountCents(),
		Status:      res.Status().String(),
		CreatedAt:   res.CreatedAt(),
	}
}

func FromReservationListItem(item *queries.ReservationListItem) *ReservationListResponse {
	return &ReservationListResponse{
		ID:          item.ID,
		RoundID:     item.RoundID,
		Slots:       item.Slots,
		AmountCents: item.AmountCents,
		Status:      item.Status,
		CreatedAt:   item.CreatedAt,
	}
}
