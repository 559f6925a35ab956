package market

import (
	"time"

	"github.com/google/uuid"
)

// PricePoint is one observation in a project's resale price history. The
// history is append-only: one point per settled trade, never mutated.
type PricePoint struct {
	ProjectID         uuid.UUID `json:"project_id"`
	Timestamp         time.Time `json:"timestamp"`
	PricePerSlotCents int64     `json:"price_per_slot_cents"`
	Volume            int32     `json:"volume"`
}

// PricePointFromTrade derives the per-slot price by integer division, so a
// price that does not divide evenly is floored to the whole cent.
func PricePointFromTrade(projectID uuid.UUID, t *Trade) PricePoint {
	return PricePoint{
		ProjectID:         projectID,
		Timestamp:         t.CreatedAt(),
		PricePerSlotCents: t.PriceCents() / int64(t.Slots()),
		Volume:            t.Slots(),
	}
}
