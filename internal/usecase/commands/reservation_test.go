//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"presale-engine/internal/domain/reservation"
	"presale-engine/internal/domain/round"
	"presale-engine/internal/pkg/clock"
	"presale-engine/internal/pkg/errs"
	"presale-engine/internal/usecase/commands"
	"presale-engine/tests/common/builder"
	"presale-engine/tests/common/fake"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type ReservationCommandsTestSuite struct {
	suite.Suite
	ledger   *fake.Ledger
	clock    *clock.MockClock
	commands commands.ReservationCommands
	ctx      context.Context
}

func (s *ReservationCommandsTestSuite) SetupTest() {
	s.ledger = fake.NewLedger()
	s.clock = clock.NewMockClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	factory := reservation.NewFactory(s.clock)
	s.commands = commands.NewReservationCommands(s.ledger, factory, s.clock)
	s.ctx = context.Background()
}

func TestReservationCommandsSuite(t *testing.T) {
	suite.Run(t, new(ReservationCommandsTestSuite))
}

func (s *ReservationCommandsTestSuite) seedRound(mutate func(*builder.RoundBuilder)) *round.Round {
	b := builder.NewRoundBuilder().With(func(b *builder.RoundBuilder) {
		b.DeadlineAt = s.clock.Now().Add(72 * time.Hour)
	})
	if mutate != nil {
		b.With(mutate)
	}
	rd := b.BuildReconstructed()
	s.ledger.PutRound(rd)
	return rd
}

func (s *ReservationCommandsTestSuite) seedReservation(rd *round.Round, status reservation.Status, slots int32) *reservation.Reservation {
	res := builder.NewReservationBuilder().With(func(b *builder.ReservationBuilder) {
		b.RoundID = rd.ID()
		b.Slots = slots
		b.AmountCents = int64(slots) * rd.DepositCents()
		b.Status = status
	}).BuildDomain()
	s.ledger.PutReservation(res)
	return res
}

func (s *ReservationCommandsTestSuite) admitParams(rd *round.Round, slots int32) commands.AdmitReservationParams {
	return builder.NewReservationBuilder().With(func(b *builder.ReservationBuilder) {
		b.RoundID = rd.ID()
		b.Slots = slots
	}).BuildAdmitParams()
}

func (s *ReservationCommandsTestSuite) TestAdmit() {
	s.Run("admits pending reservation below goal", func() {
		s.SetupTest()
		rd := s.seedRound(nil)
		userID := uuid.New()

		result, err := s.commands.Admit(s.ctx, s.admitParams(rd, 2), userID, uuid.New())
		require.NoError(s.T(), err)
		require.NotNil(s.T(), result)

		res := result.Reservation
		assert.False(s.T(), result.IsReplayed)
		assert.Equal(s.T(), reservation.StatusPending, res.Status())
		assert.Equal(s.T(), int64(2)*rd.DepositCents(), res.AmountCents())
		assert.Len(s.T(), s.ledger.Reservations, 1)
		assert.Len(s.T(), s.ledger.Jobs, 1)
		assert.Equal(s.T(), "reservation_admitted", s.ledger.Jobs[0].Topic)
	})

	s.Run("waitlists once confirmed progress reaches the goal", func() {
		s.SetupTest()
		rd := s.seedRound(func(b *builder.RoundBuilder) {
			b.GoalType = round.GoalSlots
			b.GoalValue = 10
			b.SlotsPerPerson = 20
		})
		s.seedReservation(rd, reservation.StatusConfirmed, 10)

		result, err := s.commands.Admit(s.ctx, s.admitParams(rd, 1), uuid.New(), uuid.New())
		require.NoError(s.T(), err)
		assert.Equal(s.T(), reservation.StatusWaitlisted, result.Reservation.Status())
	})

	s.Run("pending reservations do not trigger the waitlist", func() {
		s.SetupTest()
		rd := s.seedRound(func(b *builder.RoundBuilder) {
			b.GoalType = round.GoalSlots
			b.GoalValue = 10
			b.SlotsPerPerson = 20
		})
		s.seedReservation(rd, reservation.StatusPending, 10)

		result, err := s.commands.Admit(s.ctx, s.admitParams(rd, 1), uuid.New(), uuid.New())
		require.NoError(s.T(), err)
		assert.Equal(s.T(), reservation.StatusPending, result.Reservation.Status())
	})

	s.Run("rejects when per-person cap would be exceeded", func() {
		s.SetupTest()
		rd := s.seedRound(func(b *builder.RoundBuilder) { b.SlotsPerPerson = 5 })
		userID := uuid.New()

		first, err := s.commands.Admit(s.ctx, s.admitParams(rd, 3), userID, uuid.New())
		require.NoError(s.T(), err)
		require.NotNil(s.T(), first)

		params := s.admitParams(rd, 3)
		_, err = s.commands.Admit(s.ctx, params, userID, uuid.New())
		assert.ErrorIs(s.T(), err, errs.ErrCapacityExceeded)
		assert.Len(s.T(), s.ledger.Reservations, 1)
	})

	s.Run("refunded slots free the cap", func() {
		s.SetupTest()
		rd := s.seedRound(func(b *builder.RoundBuilder) { b.SlotsPerPerson = 5 })
		res := s.seedReservation(rd, reservation.StatusRefunded, 5)

		result, err := s.commands.Admit(s.ctx, s.admitParams(rd, 5), res.UserID(), uuid.New())
		require.NoError(s.T(), err)
		assert.Equal(s.T(), reservation.StatusPending, result.Reservation.Status())
	})

	s.Run("unknown round", func() {
		s.SetupTest()
		params := builder.NewReservationBuilder().BuildAdmitParams()
		_, err := s.commands.Admit(s.ctx, params, uuid.New(), uuid.New())
		assert.ErrorIs(s.T(), err, errs.ErrRoundNotFound)
	})

	s.Run("rejects terminal round", func() {
		s.SetupTest()
		rd := s.seedRound(func(b *builder.RoundBuilder) { b.Status = round.StatusNotMet })

		_, err := s.commands.Admit(s.ctx, s.admitParams(rd, 1), uuid.New(), uuid.New())
		assert.ErrorIs(s.T(), err, errs.ErrInvalidTransition)
	})

	s.Run("invalid kyc is a validation error and writes nothing", func() {
		s.SetupTest()
		rd := s.seedRound(nil)
		params := s.admitParams(rd, 1)
		params.FullName = "  "

		_, err := s.commands.Admit(s.ctx, params, uuid.New(), uuid.New())
		assert.ErrorIs(s.T(), err, errs.ErrDomainValidation)
		assert.Empty(s.T(), s.ledger.Reservations)
		assert.Empty(s.T(), s.ledger.Idempotency)
	})

	s.Run("same key replays the original result", func() {
		s.SetupTest()
		rd := s.seedRound(nil)
		userID := uuid.New()
		key := uuid.New()
		params := s.admitParams(rd, 2)

		first, err := s.commands.Admit(s.ctx, params, userID, key)
		require.NoError(s.T(), err)

		second, err := s.commands.Admit(s.ctx, params, userID, key)
		require.NoError(s.T(), err)
		assert.True(s.T(), second.IsReplayed)
		assert.Equal(s.T(), first.Reservation.ID(), second.Reservation.ID())
		assert.Len(s.T(), s.ledger.Reservations, 1)
	})

	s.Run("same key with different body is rejected", func() {
		s.SetupTest()
		rd := s.seedRound(nil)
		userID := uuid.New()
		key := uuid.New()

		_, err := s.commands.Admit(s.ctx, s.admitParams(rd, 2), userID, key)
		require.NoError(s.T(), err)

		_, err = s.commands.Admit(s.ctx, s.admitParams(rd, 3), userID, key)
		assert.ErrorIs(s.T(), err, errs.ErrDomainValidation)
	})
}

func (s *ReservationCommandsTestSuite) TestCheckout() {
	s.Run("confirms and records a succeeded transaction", func() {
		s.SetupTest()
		rd := s.seedRound(nil)
		res := s.seedReservation(rd, reservation.StatusPending, 2)

		txID, err := s.commands.Checkout(s.ctx, res.ID(), "card")
		require.NoError(s.T(), err)
		require.NotEqual(s.T(), uuid.Nil, txID)

		stored := s.ledger.Reservations[res.ID()]
		assert.Equal(s.T(), reservation.StatusConfirmed, stored.Status())

		tr := s.ledger.Transactions[txID]
		require.NotNil(s.T(), tr)
		assert.Equal(s.T(), reservation.TransactionSucceeded, tr.Status())
		assert.Equal(s.T(), res.AmountCents(), tr.AmountCents())
		assert.Equal(s.T(), rd.Currency(), tr.Currency())
	})

	s.Run("waitlisted reservation cannot check out", func() {
		s.SetupTest()
		rd := s.seedRound(nil)
		res := s.seedReservation(rd, reservation.StatusWaitlisted, 1)

		_, err := s.commands.Checkout(s.ctx, res.ID(), "card")
		assert.ErrorIs(s.T(), err, errs.ErrInvalidTransition)
		assert.Empty(s.T(), s.ledger.Transactions)
	})

	s.Run("unknown reservation", func() {
		s.SetupTest()
		_, err := s.commands.Checkout(s.ctx, uuid.New(), "card")
		assert.ErrorIs(s.T(), err, errs.ErrReservationNotFound)
	})
}

func (s *ReservationCommandsTestSuite) TestRefund() {
	s.Run("refunds a confirmed reservation and mirrors the transaction", func() {
		s.SetupTest()
		rd := s.seedRound(nil)
		res := s.seedReservation(rd, reservation.StatusPending, 2)

		txID, err := s.commands.Checkout(s.ctx, res.ID(), "card")
		require.NoError(s.T(), err)

		refunded, err := s.commands.Refund(s.ctx, res.ID())
		require.NoError(s.T(), err)
		assert.Equal(s.T(), reservation.StatusRefunded, refunded.Status())
		assert.Equal(s.T(), reservation.TransactionRefunded, s.ledger.Transactions[txID].Status())
	})

	s.Run("pending reservation holds no funds", func() {
		s.SetupTest()
		rd := s.seedRound(nil)
		res := s.seedReservation(rd, reservation.StatusPending, 1)

		_, err := s.commands.Refund(s.ctx, res.ID())
		assert.ErrorIs(s.T(), err, errs.ErrInvalidTransition)
	})

	s.Run("pending transaction blocks the refund and rolls back", func() {
		s.SetupTest()
		rd := s.seedRound(nil)
		res := s.seedReservation(rd, reservation.StatusConfirmed, 2)
		tr := reservation.NewTransaction(res.ID(), "card", res.AmountCents(), rd.Currency(), s.clock.Now())
		s.ledger.PutTransaction(tr)

		_, err := s.commands.Refund(s.ctx, res.ID())
		assert.ErrorIs(s.T(), err, errs.ErrInvalidTransition)
		assert.Equal(s.T(), reservation.StatusConfirmed, s.ledger.Reservations[res.ID()].Status())
		assert.Equal(s.T(), reservation.TransactionPending, s.ledger.Transactions[tr.ID()].Status())
	})

	s.Run("second refund fails without touching state", func() {
		s.SetupTest()
		rd := s.seedRound(nil)
		res := s.seedReservation(rd, reservation.StatusConfirmed, 1)

		_, err := s.commands.Refund(s.ctx, res.ID())
		require.NoError(s.T(), err)

		_, err = s.commands.Refund(s.ctx, res.ID())
		assert.ErrorIs(s.T(), err, errs.ErrInvalidTransition)
	})
}

func (s *ReservationCommandsTestSuite) TestPromote() {
	s.Run("waitlisted becomes pending", func() {
		s.SetupTest()
		rd := s.seedRound(nil)
		res := s.seedReservation(rd, reservation.StatusWaitlisted, 1)

		promoted, err := s.commands.Promote(s.ctx, res.ID())
		require.NoError(s.T(), err)
		assert.Equal(s.T(), reservation.StatusPending, promoted.Status())
		assert.Equal(s.T(), reservation.StatusPending, s.ledger.Reservations[res.ID()].Status())
	})

	s.Run("only waitlisted reservations promote", func() {
		s.SetupTest()
		rd := s.seedRound(nil)
		res := s.seedReservation(rd, reservation.StatusConfirmed, 1)

		_, err := s.commands.Promote(s.ctx, res.ID())
		assert.ErrorIs(s.T(), err, errs.ErrInvalidTransition)
	})
}
