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

type RoundCommandsTestSuite struct {
	suite.Suite
	ledger   *fake.Ledger
	clock    *clock.MockClock
	commands commands.RoundCommands
	ctx      context.Context
}

func (s *RoundCommandsTestSuite) SetupTest() {
	s.ledger = fake.NewLedger()
	s.clock = clock.NewMockClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	s.commands = commands.NewRoundCommands(s.ledger, s.clock)
	s.ctx = context.Background()
}

func TestRoundCommandsSuite(t *testing.T) {
	suite.Run(t, new(RoundCommandsTestSuite))
}

func (s *RoundCommandsTestSuite) seedRound(mutate func(*builder.RoundBuilder)) *round.Round {
	b := builder.NewRoundBuilder().With(func(b *builder.RoundBuilder) {
		b.GoalType = round.GoalSlots
		b.GoalValue = 10
		b.DeadlineAt = s.clock.Now().Add(72 * time.Hour)
	})
	if mutate != nil {
		b.With(mutate)
	}
	rd := b.BuildReconstructed()
	s.ledger.PutRound(rd)
	return rd
}

func (s *RoundCommandsTestSuite) seedFunded(rd *round.Round, status reservation.Status, slots int32) *reservation.Reservation {
	res := builder.NewReservationBuilder().With(func(b *builder.ReservationBuilder) {
		b.RoundID = rd.ID()
		b.Slots = slots
		b.AmountCents = int64(slots) * rd.DepositCents()
		b.Status = status
	}).BuildDomain()
	s.ledger.PutReservation(res)

	if status.HoldsFunds() {
		tr := reservation.NewTransaction(res.ID(), "card", res.AmountCents(), rd.Currency(), s.clock.Now())
		require.NoError(s.T(), tr.MarkSucceeded())
		s.ledger.PutTransaction(tr)
	}
	return res
}

func (s *RoundCommandsTestSuite) TestCreate() {
	s.Run("persists a new open round", func() {
		s.SetupTest()
		params := builder.NewRoundBuilder().BuildCreateParams()

		rd, err := s.commands.Create(s.ctx, params)
		require.NoError(s.T(), err)
		assert.Equal(s.T(), round.StatusOpen, rd.Status())
		assert.Contains(s.T(), s.ledger.Rounds, rd.ID())
	})

	s.Run("domain validation failure", func() {
		s.SetupTest()
		params := builder.NewRoundBuilder().With(func(b *builder.RoundBuilder) {
			b.GoalValue = 0
		}).BuildCreateParams()

		_, err := s.commands.Create(s.ctx, params)
		assert.ErrorIs(s.T(), err, errs.ErrDomainValidation)
		assert.Empty(s.T(), s.ledger.Rounds)
	})
}

func (s *RoundCommandsTestSuite) TestClose() {
	s.Run("fulfilled when confirmed progress reaches the goal", func() {
		s.SetupTest()
		rd := s.seedRound(nil)
		s.seedFunded(rd, reservation.StatusConfirmed, 10)

		result, err := s.commands.Close(s.ctx, rd.ID())
		require.NoError(s.T(), err)

		assert.Equal(s.T(), round.StatusFulfilled, result.Status)
		assert.Zero(s.T(), result.RefundedCount)
		assert.Equal(s.T(), round.StatusFulfilled, s.ledger.Rounds[rd.ID()].Status())
		require.Len(s.T(), s.ledger.Jobs, 1)
		assert.Equal(s.T(), "round_closed", s.ledger.Jobs[0].Topic)
	})

	s.Run("all or nothing failure cascades refunds", func() {
		s.SetupTest()
		rd := s.seedRound(func(b *builder.RoundBuilder) {
			b.DeadlineAt = s.clock.Now().Add(-time.Hour)
		})
		confirmed := s.seedFunded(rd, reservation.StatusConfirmed, 3)
		assigned := s.seedFunded(rd, reservation.StatusAssigned, 2)
		pending := s.seedFunded(rd, reservation.StatusPending, 1)
		waitlisted := s.seedFunded(rd, reservation.StatusWaitlisted, 1)

		result, err := s.commands.Close(s.ctx, rd.ID())
		require.NoError(s.T(), err)

		assert.Equal(s.T(), round.StatusNotMet, result.Status)
		assert.Equal(s.T(), 2, result.RefundedCount)
		assert.Equal(s.T(), round.StatusNotMet, s.ledger.Rounds[rd.ID()].Status())

		assert.Equal(s.T(), reservation.StatusRefunded, s.ledger.Reservations[confirmed.ID()].Status())
		assert.Equal(s.T(), reservation.StatusRefunded, s.ledger.Reservations[assigned.ID()].Status())
		assert.Equal(s.T(), reservation.StatusPending, s.ledger.Reservations[pending.ID()].Status())
		assert.Equal(s.T(), reservation.StatusWaitlisted, s.ledger.Reservations[waitlisted.ID()].Status())

		for _, tr := range s.ledger.Transactions {
			assert.Equal(s.T(), reservation.TransactionRefunded, tr.Status())
		}
	})

	s.Run("partial rule keeps deposits above threshold", func() {
		s.SetupTest()
		rd := s.seedRound(func(b *builder.RoundBuilder) {
			b.Rule = round.RulePartial
			b.PartialThreshold = 0.5
			b.DeadlineAt = s.clock.Now().Add(-time.Hour)
		})
		confirmed := s.seedFunded(rd, reservation.StatusConfirmed, 6)

		result, err := s.commands.Close(s.ctx, rd.ID())
		require.NoError(s.T(), err)

		assert.Equal(s.T(), round.StatusClosed, result.Status)
		assert.Zero(s.T(), result.RefundedCount)
		assert.Equal(s.T(), reservation.StatusConfirmed, s.ledger.Reservations[confirmed.ID()].Status())
	})

	s.Run("open round before deadline stays open and unpersisted", func() {
		s.SetupTest()
		rd := s.seedRound(nil)
		s.seedFunded(rd, reservation.StatusConfirmed, 5)

		result, err := s.commands.Close(s.ctx, rd.ID())
		require.NoError(s.T(), err)

		assert.Equal(s.T(), round.StatusOpen, result.Status)
		assert.Equal(s.T(), round.StatusOpen, s.ledger.Rounds[rd.ID()].Status())
		assert.Empty(s.T(), s.ledger.Jobs)
	})

	s.Run("closing a failed round again is a no-op that settles stragglers", func() {
		s.SetupTest()
		rd := s.seedRound(func(b *builder.RoundBuilder) {
			b.Status = round.StatusNotMet
			b.DeadlineAt = s.clock.Now().Add(-time.Hour)
		})
		confirmed := s.seedFunded(rd, reservation.StatusConfirmed, 2)

		result, err := s.commands.Close(s.ctx, rd.ID())
		require.NoError(s.T(), err)

		assert.Equal(s.T(), round.StatusNotMet, result.Status)
		assert.Equal(s.T(), 1, result.RefundedCount)
		assert.Equal(s.T(), reservation.StatusRefunded, s.ledger.Reservations[confirmed.ID()].Status())
		// no duplicate outcome notification on re-close
		assert.Empty(s.T(), s.ledger.Jobs)
	})

	s.Run("unknown round", func() {
		s.SetupTest()
		_, err := s.commands.Close(s.ctx, uuid.New())
		assert.ErrorIs(s.T(), err, errs.ErrRoundNotFound)
	})
}
