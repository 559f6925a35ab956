//go:build unit

package reservation_test

import (
	"testing"

	"presale-engine/internal/domain/reservation"
	"presale-engine/tests/common/builder"

	"github.com/stretchr/testify/assert"
)

func TestReservationTransitions(t *testing.T) {
	build := func(status reservation.Status) *reservation.Reservation {
		return builder.NewReservationBuilder().With(func(b *builder.ReservationBuilder) {
			b.Status = status
		}).BuildDomain()
	}

	t.Run("confirm", func(t *testing.T) {
		cases := []struct {
			name  string
			from  reservation.Status
			errIs error
		}{
			{name: "pending confirms", from: reservation.StatusPending},
			{name: "confirmed cannot confirm again", from: reservation.StatusConfirmed, errIs: reservation.ErrNotPending},
			{name: "waitlisted cannot confirm", from: reservation.StatusWaitlisted, errIs: reservation.ErrNotPending},
			{name: "refunded cannot confirm", from: reservation.StatusRefunded, errIs: reservation.ErrNotPending},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				r := build(tc.from)
				err := r.Confirm()
				if tc.errIs != nil {
					assert.ErrorIs(t, err, tc.errIs)
					assert.Equal(t, tc.from, r.Status())
					return
				}
				assert.NoError(t, err)
				assert.Equal(t, reservation.StatusConfirmed, r.Status())
			})
		}
	})

	t.Run("refund", func(t *testing.T) {
		cases := []struct {
			name  string
			from  reservation.Status
			errIs error
		}{
			{name: "confirmed refunds", from: reservation.StatusConfirmed},
			{name: "assigned refunds", from: reservation.StatusAssigned},
			{name: "pending holds no funds", from: reservation.StatusPending, errIs: reservation.ErrNotRefundable},
			{name: "waitlisted holds no funds", from: reservation.StatusWaitlisted, errIs: reservation.ErrNotRefundable},
			{name: "refunding twice fails", from: reservation.StatusRefunded, errIs: reservation.ErrAlreadyRefunded},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				r := build(tc.from)
				err := r.Refund()
				if tc.errIs != nil {
					assert.ErrorIs(t, err, tc.errIs)
					return
				}
				assert.NoError(t, err)
				assert.Equal(t, reservation.StatusRefunded, r.Status())
			})
		}
	})

	t.Run("promote", func(t *testing.T) {
		r := build(reservation.StatusWaitlisted)
		assert.NoError(t, r.Promote())
		assert.Equal(t, reservation.StatusPending, r.Status())

		for _, from := range []reservation.Status{
			reservation.StatusPending,
			reservation.StatusConfirmed,
			reservation.StatusRefunded,
		} {
			assert.ErrorIs(t, build(from).Promote(), reservation.ErrNotWaitlisted)
		}
	})
}

func TestStatusPredicates(t *testing.T) {
	assert.True(t, reservation.StatusConfirmed.HoldsFunds())
	assert.True(t, reservation.StatusAssigned.HoldsFunds())
	assert.False(t, reservation.StatusPending.HoldsFunds())
	assert.False(t, reservation.StatusWaitlisted.HoldsFunds())
	assert.False(t, reservation.StatusRefunded.HoldsFunds())

	assert.True(t, reservation.StatusPending.CountsTowardCap())
	assert.True(t, reservation.StatusWaitlisted.CountsTowardCap())
	assert.False(t, reservation.StatusRefunded.CountsTowardCap())
}
