package market

import (
	"time"

	"github.com/google/uuid"
)

// Trade records a listing being filled. priceCents is frozen from the
// listing's ask at fill time and never recomputed.
type Trade struct {
	id          uuid.UUID
	listingID   uuid.UUID
	buyerUserID uuid.UUID
	priceCents  int64
	slots       int32
	createdAt   time.Time
}

func NewTradeFromListing(l *Listing, buyerUserID uuid.UUID, now time.Time) *Trade {
	return &Trade{
		id:          uuid.New(),
		listingID:   l.ID(),
		buyerUserID: buyerUserID,
		priceCents:  l.AskCents(),
		slots:       l.Slots(),
		createdAt:   now,
	}
}

func ReconstructTrade(
	id, listingID, buyerUserID uuid.UUID,
	priceCents int64,
	slots int32,
	createdAt time.Time,
) *Trade {
	return &Trade{
		id:          id,
		listingID:   listingID,
		buyerUserID: buyerUserID,
		priceCents:  priceCents,
		slots:       slots,
		createdAt:   createdAt,
	}
}

func (t *Trade) ID() uuid.UUID          { return t.id }
func (t *Trade) ListingID() uuid.UUID   { return t.listingID }
func (t *Trade) BuyerUserID() uuid.UUID { return t.buyerUserID }
func (t *Trade) PriceCents() int64      { return t.priceCents }
func (t *Trade) Slots() int32           { return t.slots }
func (t *Trade) CreatedAt() time.Time   { return t.createdAt }
