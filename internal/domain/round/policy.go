package round

import "time"

// nearlyFullPercent is the informational threshold below the goal at which a
// round is surfaced as nearly full.
const nearlyFullPercent = 80

// NextStatus derives the lifecycle status of a round from its rule, deadline
// and confirmed progress. It is the single source of truth for both display
// (computed, not persisted) and the explicit close operation (persisted).
// Terminal statuses are sticky: once a round is stored as closed, not_met or
// fulfilled, no input moves it elsewhere.
func NextStatus(r *Round, percent int, now time.Time) Status {
	if r.Status().IsTerminal() {
		return r.Status()
	}

	if percent >= 100 {
		return StatusFulfilled
	}

	if !now.Before(r.DeadlineAt()) {
		if r.Rule() == RuleAllOrNothing {
			return StatusNotMet
		}
		if float64(percent) >= r.PartialThreshold()*100 {
			return StatusClosed
		}
		return StatusNotMet
	}

	if percent >= nearlyFullPercent {
		return StatusNearlyFull
	}
	return StatusOpen
}
