//go:build unit

package round_test

import (
	"testing"

	"presale-engine/internal/domain/round"
	"presale-engine/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestProgress(t *testing.T) {
	t.Run("slots goal counts only confirmed stakes toward percent", func(t *testing.T) {
		r := builder.NewRoundBuilder().With(func(b *builder.RoundBuilder) {
			b.GoalType = round.GoalSlots
			b.GoalValue = 100
		}).BuildReconstructed()

		stakes := []round.Stake{
			{Slots: 30, AmountCents: 150000, Confirmed: true},
			{Slots: 20, AmountCents: 100000, Confirmed: true},
			{Slots: 40, AmountCents: 200000, Confirmed: false},
		}

		s := round.Progress(r, stakes)
		want := round.Summary{
			TotalSlots:           90,
			ConfirmedSlots:       50,
			TotalAmountCents:     450000,
			ConfirmedAmountCents: 250000,
			Percent:              50,
		}
		if diff := cmp.Diff(want, s); diff != "" {
			t.Errorf("summary mismatch (-want +got):\n%s", diff)
		}
		assert.False(t, s.GoalReached())
	})

	t.Run("amount goal uses confirmed cents", func(t *testing.T) {
		r := builder.NewRoundBuilder().With(func(b *builder.RoundBuilder) {
			b.GoalType = round.GoalAmount
			b.GoalValue = 1000000
		}).BuildReconstructed()

		stakes := []round.Stake{
			{Slots: 10, AmountCents: 400000, Confirmed: true},
			{Slots: 5, AmountCents: 350000, Confirmed: false},
		}

		s := round.Progress(r, stakes)
		assert.Equal(t, 40, s.Percent)
	})

	t.Run("percent rounds half away from zero", func(t *testing.T) {
		r := builder.NewRoundBuilder().With(func(b *builder.RoundBuilder) {
			b.GoalType = round.GoalSlots
			b.GoalValue = 200
		}).BuildReconstructed()

		// 101/200 = 50.5% rounds to 51
		s := round.Progress(r, []round.Stake{{Slots: 101, Confirmed: true}})
		assert.Equal(t, 51, s.Percent)
	})

	t.Run("percent is clamped at 100", func(t *testing.T) {
		r := builder.NewRoundBuilder().With(func(b *builder.RoundBuilder) {
			b.GoalType = round.GoalSlots
			b.GoalValue = 10
		}).BuildReconstructed()

		s := round.Progress(r, []round.Stake{{Slots: 25, Confirmed: true}})
		assert.Equal(t, 100, s.Percent)
		assert.True(t, s.GoalReached())
	})

	t.Run("no stakes yields zero summary", func(t *testing.T) {
		r := builder.NewRoundBuilder().BuildReconstructed()

		s := round.Progress(r, nil)
		assert.Equal(t, round.Summary{}, s)
	})
}
