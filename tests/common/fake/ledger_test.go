//go:build unit

package fake_test

import (
	"context"
	"testing"

	"presale-engine/internal/domain/reservation"
	"presale-engine/internal/domain/round"
	"presale-engine/tests/common/builder"
	"presale-engine/tests/common/fake"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedStake(t *testing.T, ledger *fake.Ledger, rd *round.Round, status reservation.Status, slots int32) {
	t.Helper()
	res := builder.NewReservationBuilder().With(func(b *builder.ReservationBuilder) {
		b.RoundID = rd.ID()
		b.Slots = slots
		b.AmountCents = int64(slots) * rd.DepositCents()
		b.Status = status
	}).BuildDomain()
	ledger.PutReservation(res)
}

func TestLedgerStakesByRound(t *testing.T) {
	ledger := fake.NewLedger()
	rd := builder.NewRoundBuilder().BuildReconstructed()
	ledger.PutRound(rd)

	seedStake(t, ledger, rd, reservation.StatusConfirmed, 4)
	seedStake(t, ledger, rd, reservation.StatusPending, 3)
	seedStake(t, ledger, rd, reservation.StatusWaitlisted, 2)
	seedStake(t, ledger, rd, reservation.StatusRefunded, 5)

	stakes, err := ledger.CommandReads().StakesByRound(context.Background(), rd.ID())
	require.NoError(t, err)

	// Every reservation feeds the totals, refunded ones included; only
	// funds-holding statuses count as confirmed.
	require.Len(t, stakes, 4)

	s := round.Progress(rd, stakes)
	assert.Equal(t, int32(14), s.TotalSlots)
	assert.Equal(t, int32(4), s.ConfirmedSlots)
	assert.Equal(t, int64(14)*rd.DepositCents(), s.TotalAmountCents)
	assert.Equal(t, int64(4)*rd.DepositCents(), s.ConfirmedAmountCents)
}
