//go:build unit

package market_test

import (
	"testing"
	"time"

	"presale-engine/internal/domain/market"
	"presale-engine/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewListing(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		l, err := builder.NewListingBuilder().BuildDomain()
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, l.ID())
		assert.Equal(t, market.ListingActive, l.Status())
		assert.True(t, l.IsActive())
		assert.Nil(t, l.FilledAt())
	})

	cases := []struct {
		name   string
		mutate func(*builder.ListingBuilder)
		errIs  error
	}{
		{
			name:   "zero slots",
			mutate: func(b *builder.ListingBuilder) { b.Slots = 0 },
			errIs:  market.ErrInvalidSlots,
		},
		{
			name:   "zero ask",
			mutate: func(b *builder.ListingBuilder) { b.AskCents = 0 },
			errIs:  market.ErrInvalidAsk,
		},
		{
			name:   "missing currency",
			mutate: func(b *builder.ListingBuilder) { b.Currency = "" },
			errIs:  market.ErrMissingCurrency,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := builder.NewListingBuilder().With(tc.mutate).BuildDomain()
			assert.ErrorIs(t, err, tc.errIs)
		})
	}
}

func TestListingFill(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("fills exactly once", func(t *testing.T) {
		l := builder.NewListingBuilder().BuildReconstructed()

		require.NoError(t, l.Fill(now))
		assert.Equal(t, market.ListingSold, l.Status())
		require.NotNil(t, l.FilledAt())
		assert.Equal(t, now, *l.FilledAt())

		assert.ErrorIs(t, l.Fill(now.Add(time.Minute)), market.ErrAlreadySold)
	})
}

func TestTradeFreezesListingTerms(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	l := builder.NewListingBuilder().With(func(b *builder.ListingBuilder) {
		b.Slots = 4
		b.AskCents = 21000
	}).BuildReconstructed()
	buyer := uuid.New()

	trade := market.NewTradeFromListing(l, buyer, now)
	assert.Equal(t, l.ID(), trade.ListingID())
	assert.Equal(t, buyer, trade.BuyerUserID())
	assert.Equal(t, int64(21000), trade.PriceCents())
	assert.Equal(t, int32(4), trade.Slots())
}

func TestPricePointFromTrade(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	projectID := uuid.New()

	t.Run("per-slot price is integer division of trade price", func(t *testing.T) {
		l := builder.NewListingBuilder().With(func(b *builder.ListingBuilder) {
			b.Slots = 4
			b.AskCents = 21000
		}).BuildReconstructed()

		trade := market.NewTradeFromListing(l, uuid.New(), now)
		p := market.PricePointFromTrade(projectID, trade)

		assert.Equal(t, projectID, p.ProjectID)
		assert.Equal(t, int64(5250), p.PricePerSlotCents)
		assert.Equal(t, int32(4), p.Volume)
	})

	t.Run("remainder is truncated", func(t *testing.T) {
		l := builder.NewListingBuilder().With(func(b *builder.ListingBuilder) {
			b.Slots = 3
			b.AskCents = 10000
		}).BuildReconstructed()

		trade := market.NewTradeFromListing(l, uuid.New(), now)
		p := market.PricePointFromTrade(projectID, trade)

		assert.Equal(t, int64(3333), p.PricePerSlotCents)
	})
}
