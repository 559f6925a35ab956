//go:build unit

package round_test

import (
	"testing"
	"time"

	"presale-engine/internal/domain/round"
	"presale-engine/tests/common/builder"

	"github.com/stretchr/testify/assert"
)

func TestNextStatus(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	before := now.Add(24 * time.Hour)
	after := now.Add(-24 * time.Hour)

	cases := []struct {
		name     string
		mutate   func(*builder.RoundBuilder)
		percent  int
		expected round.Status
	}{
		{
			name:     "open below nearly full",
			mutate:   func(b *builder.RoundBuilder) { b.DeadlineAt = before },
			percent:  79,
			expected: round.StatusOpen,
		},
		{
			name:     "nearly full at threshold",
			mutate:   func(b *builder.RoundBuilder) { b.DeadlineAt = before },
			percent:  80,
			expected: round.StatusNearlyFull,
		},
		{
			name:     "fulfilled at 100 before deadline",
			mutate:   func(b *builder.RoundBuilder) { b.DeadlineAt = before },
			percent:  100,
			expected: round.StatusFulfilled,
		},
		{
			name:     "fulfilled at 100 even past deadline",
			mutate:   func(b *builder.RoundBuilder) { b.DeadlineAt = after },
			percent:  100,
			expected: round.StatusFulfilled,
		},
		{
			name: "all or nothing past deadline fails regardless of progress",
			mutate: func(b *builder.RoundBuilder) {
				b.DeadlineAt = after
				b.Rule = round.RuleAllOrNothing
			},
			percent:  99,
			expected: round.StatusNotMet,
		},
		{
			name: "partial past deadline above threshold closes",
			mutate: func(b *builder.RoundBuilder) {
				b.DeadlineAt = after
				b.Rule = round.RulePartial
				b.PartialThreshold = 0.6
			},
			percent:  60,
			expected: round.StatusClosed,
		},
		{
			name: "partial past deadline below threshold fails",
			mutate: func(b *builder.RoundBuilder) {
				b.DeadlineAt = after
				b.Rule = round.RulePartial
				b.PartialThreshold = 0.6
			},
			percent:  59,
			expected: round.StatusNotMet,
		},
		{
			name: "deadline instant itself counts as expired",
			mutate: func(b *builder.RoundBuilder) {
				b.DeadlineAt = now
				b.Rule = round.RuleAllOrNothing
			},
			percent:  50,
			expected: round.StatusNotMet,
		},
		{
			name: "stored terminal status is sticky",
			mutate: func(b *builder.RoundBuilder) {
				b.DeadlineAt = before
				b.Status = round.StatusNotMet
			},
			percent:  100,
			expected: round.StatusNotMet,
		},
		{
			name: "fulfilled stays fulfilled after deadline",
			mutate: func(b *builder.RoundBuilder) {
				b.DeadlineAt = after
				b.Status = round.StatusFulfilled
			},
			percent:  0,
			expected: round.StatusFulfilled,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := builder.NewRoundBuilder().With(tc.mutate).BuildReconstructed()
			assert.Equal(t, tc.expected, round.NextStatus(r, tc.percent, now))
		})
	}
}
