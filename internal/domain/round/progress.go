package round

import "math"

// Stake is the slice of one reservation that progress accounting needs.
// Confirmed covers reservations whose funds are held (confirmed or assigned).
type Stake struct {
	Slots       int32
	AmountCents int64
	Confirmed   bool
}

// Summary is the funding state of a round at one point in time. Total* sums
// every reservation regardless of status and exists for display only; Percent
// is derived from confirmed figures against the goal, clamped to [0,100].
type Summary struct {
	TotalSlots           int32 `json:"total_slots"`
	ConfirmedSlots       int32 `json:"confirmed_slots"`
	TotalAmountCents     int64 `json:"total_amount_cents"`
	ConfirmedAmountCents int64 `json:"confirmed_amount_cents"`
	Percent              int   `json:"percent"`
}

// Progress is a pure read over the round and its reservations; callers may
// invoke it concurrently and repeatedly.
func Progress(r *Round, stakes []Stake) Summary {
	var s Summary
	for _, st := range stakes {
		s.TotalSlots += st.Slots
		s.TotalAmountCents += st.AmountCents
		if st.Confirmed {
			s.ConfirmedSlots += st.Slots
			s.ConfirmedAmountCents += st.AmountCents
		}
	}

	var achieved float64
	switch r.GoalType() {
	case GoalSlots:
		achieved = float64(s.ConfirmedSlots)
	case GoalAmount:
		achieved = float64(s.ConfirmedAmountCents)
	}

	percent := int(math.Round(100 * achieved / float64(r.GoalValue())))
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	s.Percent = percent
	return s
}

func (s Summary) GoalReached() bool {
	return s.Percent >= 100
}
