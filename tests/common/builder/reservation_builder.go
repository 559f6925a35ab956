//go:build unit || e2e

package builder

import (
	"time"

	domres "presale-engine/internal/domain/reservation"
	reqdto "presale-engine/internal/handler/dto/request"
	"presale-engine/internal/usecase/commands"
	"presale-engine/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationBuilder struct {
	ID          uuid.UUID
	RoundID     uuid.UUID
	UserID      uuid.UUID
	Slots       int32
	AmountCents int64
	Status      domres.Status
	FullName    string
	Country     string
	Phone       string
	CreatedAt   time.Time
}

func NewReservationBuilder() *ReservationBuilder {
	return &ReservationBuilder{
		ID:          uuid.New(),
		RoundID:     uuid.New(),
		UserID:      uuid.New(),
		Slots:       2,
		AmountCents: 10000,
		Status:      domres.StatusPending,
		FullName:    "Ada Lovelace",
		Country:     "GB",
		Phone:       "+44 20 7946 0958",
		CreatedAt:   time.Now().UTC().Truncate(time.Second),
	}
}

func (b *ReservationBuilder) With(mutate func(*ReservationBuilder)) *ReservationBuilder {
	mutate(b)
	return b
}

func (b *ReservationBuilder) BuildDomain() *domres.Reservation {
	kyc, err := domres.NewKYC(b.FullName, b.Country, b.Phone)
	if err != nil {
		panic(err)
	}
	return domres.ReconstructReservation(
		b.ID,
		b.RoundID,
		b.UserID,
		b.Slots,
		b.AmountCents,
		b.Status,
		kyc,
		b.CreatedAt,
	)
}

func (b *ReservationBuilder) BuildKYC() domres.KYC {
	kyc, err := domres.NewKYC(b.FullName, b.Country, b.Phone)
	if err != nil {
		panic(err)
	}
	return kyc
}

func (b *ReservationBuilder) BuildAdmitParams() commands.AdmitReservationParams {
	return commands.AdmitReservationParams{
		RoundID:  b.RoundID,
		Slots:    b.Slots,
		FullName: b.FullName,
		Country:  b.Country,
		Phone:    b.Phone,
	}
}

func (b *ReservationBuilder) BuildCreateRequestDTO() reqdto.CreateReservationRequest {
	return reqdto.CreateReservationRequest{
		Slots:    b.Slots,
		FullName: b.FullName,
		Country:  b.Country,
		Phone:    b.Phone,
	}
}

func (b *ReservationBuilder) BuildListItem() *queries.ReservationListItem {
	return &queries.ReservationListItem{
		ID:          b.ID,
		RoundID:     b.RoundID,
		Slots:       b.Slots,
		AmountCents: b.AmountCents,
		Status:      b.Status.String(),
		CreatedAt:   b.CreatedAt,
	}
}
