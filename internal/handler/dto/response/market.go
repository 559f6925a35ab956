package response

import (
	"time"

	"presale-engine/internal/domain/market"
	"presale-engine/internal/usecase/commands"

	"github.com/google/uuid"
)

type ListingResponse struct {
	ID           uuid.UUID `json:"id"`
	ProjectID    uuid.UUID `json:"projectId"`
	RoundID      uuid.UUID `json:"roundId"`
	SellerUserID uuid.UUID `json:"sellerUserId"`
	Slots        int32     `json:"slots"`
	AskCents     int64     `json:"askCents"`
	Currency     string    `json:"currency"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
}

type TradeResponse struct {
	TradeID           uuid.UUID `json:"tradeId"`
	ListingID         uuid.UUID `json:"listingId"`
	BuyerUserID       uuid.UUID `json:"buyerUserId"`
	PriceCents        int64     `json:"priceCents"`
	Slots             int32     `json:"slots"`
	PricePerSlotCents int64     `json:"pricePerSlotCents"`
	CreatedAt         time.Time `json:"createdAt"`
}

type PricePointResponse struct {
	Timestamp         time.Time `json:"timestamp"`
	PricePerSlotCents int64     `json:"pricePerSlotCents"`
	Volume            int32     `json:"volume"`
}

func FromListing(l *market.Listing) *ListingResponse {
	return &ListingResponse{
		ID:           l.ID(),
		ProjectID:    l.ProjectID(),
		RoundID:      l.RoundID(),
		SellerUserID: l.SellerUserID(),
		Slots:        l.Slots(),
		AskCents:     l.AskCents(),
		Currency:     l.Currency(),
		Status:       l.Status().String(),
		CreatedAt:    l.CreatedAt(),
	}
}

func FromFillResult(result *commands.FillResult) *TradeResponse {
	t := result.Trade
	return &TradeResponse{
		TradeID:           t.ID(),
		ListingID:         t.ListingID(),
		BuyerUserID:       t.BuyerUserID(),
		PriceCents:        t.PriceCents(),
		Slots:             t.Slots(),
		PricePerSlotCents: result.PricePoint.PricePerSlotCents,
		CreatedAt:         t.CreatedAt(),
	}
}

func FromPricePoint(p market.PricePoint) PricePointResponse {
	return PricePointResponse{
		Timestamp:         p.Timestamp,
		PricePerSlotCents: p.PricePerSlotCents,
		Volume:            p.Volume,
	}
}
