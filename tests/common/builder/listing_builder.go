//go:build unit || e2e

package builder

import (
	"time"

	dommarket "presale-engine/internal/domain/market"
	reqdto "presale-engine/internal/handler/dto/request"
	"presale-engine/internal/usecase/commands"

	"github.com/google/uuid"
)

type ListingBuilder struct {
	ID           uuid.UUID
	ProjectID    uuid.UUID
	RoundID      uuid.UUID
	SellerUserID uuid.UUID
	Slots        int32
	AskCents     int64
	Currency     string
	Status       dommarket.ListingStatus
	FilledAt     *time.Time
	CreatedAt    time.Time
}

func NewListingBuilder() *ListingBuilder {
	return &ListingBuilder{
		ID:           uuid.New(),
		ProjectID:    uuid.New(),
		RoundID:      uuid.New(),
		SellerUserID: uuid.New(),
		Slots:        3,
		AskCents:     21000,
		Currency:     "USD",
		Status:       dommarket.ListingActive,
		CreatedAt:    time.Now().UTC().Truncate(time.Second),
	}
}

func (b *ListingBuilder) With(mutate func(*ListingBuilder)) *ListingBuilder {
	mutate(b)
	return b
}

func (b *ListingBuilder) BuildDomain() (*dommarket.Listing, error) {
	return dommarket.NewListing(
		b.ProjectID,
		b.RoundID,
		b.SellerUserID,
		b.Slots,
		b.AskCents,
		b.Currency,
		b.CreatedAt,
	)
}

func (b *ListingBuilder) BuildReconstructed() *dommarket.Listing {
	return dommarket.ReconstructListing(
		b.ID,
		b.ProjectID,
		b.RoundID,
		b.SellerUserID,
		b.Slots,
		b.AskCents,
		b.Currency,
		b.Status,
		b.FilledAt,
		b.CreatedAt,
	)
}

func (b *ListingBuilder) BuildCreateParams() commands.CreateListingParams {
	return commands.CreateListingParams{
		ProjectID: b.ProjectID,
		RoundID:   b.RoundID,
		Slots:     b.Slots,
		AskCents:  b.AskCents,
		Currency:  b.Currency,
	}
}

func (b *ListingBuilder) BuildCreateRequestDTO() reqdto.CreateListingRequest {
	return reqdto.CreateListingRequest{
		ProjectID: b.ProjectID,
		RoundID:   b.RoundID,
		Slots:     b.Slots,
		AskCents:  b.AskCents,
		Currency:  b.Currency,
	}
}
