//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"presale-engine/internal/domain/market"
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

type ListingCommandsTestSuite struct {
	suite.Suite
	ledger   *fake.Ledger
	clock    *clock.MockClock
	commands commands.ListingCommands
	ctx      context.Context
}

func (s *ListingCommandsTestSuite) SetupTest() {
	s.ledger = fake.NewLedger()
	s.clock = clock.NewMockClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	s.commands = commands.NewListingCommands(s.ledger, s.clock)
	s.ctx = context.Background()
}

func TestListingCommandsSuite(t *testing.T) {
	suite.Run(t, new(ListingCommandsTestSuite))
}

func (s *ListingCommandsTestSuite) TestCreate() {
	s.Run("persists an active listing", func() {
		s.SetupTest()
		seller := uuid.New()
		params := builder.NewListingBuilder().BuildCreateParams()

		listing, err := s.commands.Create(s.ctx, params, seller)
		require.NoError(s.T(), err)

		assert.Equal(s.T(), seller, listing.SellerUserID())
		assert.True(s.T(), listing.IsActive())
		assert.Contains(s.T(), s.ledger.Listings, listing.ID())
	})

	s.Run("validation failure", func() {
		s.SetupTest()
		params := builder.NewListingBuilder().With(func(b *builder.ListingBuilder) {
			b.AskCents = 0
		}).BuildCreateParams()

		_, err := s.commands.Create(s.ctx, params, uuid.New())
		assert.ErrorIs(s.T(), err, errs.ErrDomainValidation)
		assert.Empty(s.T(), s.ledger.Listings)
	})
}

func (s *ListingCommandsTestSuite) TestFill() {
	s.Run("settles listing, trade and price point together", func() {
		s.SetupTest()
		lst := builder.NewListingBuilder().With(func(b *builder.ListingBuilder) {
			b.Slots = 4
			b.AskCents = 21000
		}).BuildReconstructed()
		s.ledger.PutListing(lst)
		buyer := uuid.New()

		result, err := s.commands.Fill(s.ctx, lst.ID(), buyer)
		require.NoError(s.T(), err)

		trade := result.Trade
		assert.Equal(s.T(), buyer, trade.BuyerUserID())
		assert.Equal(s.T(), int64(21000), trade.PriceCents())
		assert.Equal(s.T(), int32(4), trade.Slots())

		stored := s.ledger.Listings[lst.ID()]
		assert.Equal(s.T(), market.ListingSold, stored.Status())
		require.NotNil(s.T(), stored.FilledAt())
		assert.Equal(s.T(), s.clock.Now(), *stored.FilledAt())

		assert.Contains(s.T(), s.ledger.Trades, trade.ID())
		require.Len(s.T(), s.ledger.PricePoints, 1)
		assert.Equal(s.T(), int64(5250), s.ledger.PricePoints[0].PricePerSlotCents)
		assert.Equal(s.T(), int32(4), s.ledger.PricePoints[0].Volume)

		require.Len(s.T(), s.ledger.Jobs, 1)
		assert.Equal(s.T(), "listing_filled", s.ledger.Jobs[0].Topic)
	})

	s.Run("second fill is rejected and records nothing", func() {
		s.SetupTest()
		lst := builder.NewListingBuilder().BuildReconstructed()
		s.ledger.PutListing(lst)

		_, err := s.commands.Fill(s.ctx, lst.ID(), uuid.New())
		require.NoError(s.T(), err)

		_, err = s.commands.Fill(s.ctx, lst.ID(), uuid.New())
		assert.ErrorIs(s.T(), err, errs.ErrListingAlreadySold)
		assert.Len(s.T(), s.ledger.Trades, 1)
		assert.Len(s.T(), s.ledger.PricePoints, 1)
	})

	s.Run("unknown listing", func() {
		s.SetupTest()
		_, err := s.commands.Fill(s.ctx, uuid.New(), uuid.New())
		assert.ErrorIs(s.T(), err, errs.ErrListingNotFound)
	})
}
