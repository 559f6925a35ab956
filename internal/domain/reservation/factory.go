package reservation

import (
	"presale-engine/internal/domain/round"
	"presale-engine/internal/pkg/clock"

	"github.com/google/uuid"
)

type Factory struct {
	Clock clock.Clock
}

func NewFactory(clock clock.Clock) *Factory {
	return &Factory{Clock: clock}
}

// Admit classifies a new reservation request against the per-person cap and
// the round's confirmed progress. existingUserSlots must be the sum of the
// user's non-refunded slots in this round, read under the same round lock as
// progress so that concurrent admissions see a settled snapshot.
//
// A request arriving after the goal is already reached is admitted as
// waitlisted rather than rejected; it holds no funds and is not guaranteed to
// convert.
func (f *Factory) Admit(
	r *round.Round,
	userID uuid.UUID,
	slots int32,
	kyc KYC,
	existingUserSlots int32,
	progress round.Summary,
) (*Reservation, error) {
	if slots < 1 {
		return nil, ErrInvalidSlots
	}
	if existingUserSlots+slots > r.SlotsPerPerson() {
		return nil, ErrCapacityExceeded
	}

	status := StatusPending
	if progress.GoalReached() {
		status = StatusWaitlisted
	}

	return &Reservation{
		id:          uuid.New(),
		roundID:     r.ID(),
		userID:      userID,
		slots:       slots,
		amountCents: int64(slots) * r.DepositCents(),
		status:      status,
		kyc:         kyc,
		createdAt:   f.Clock.Now(),
	}, nil
}
