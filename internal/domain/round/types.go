package round

type GoalType string

const (
	GoalSlots  GoalType = "slots"
	GoalAmount GoalType = "amount"
)

func (g GoalType) String() string {
	return string(g)
}

func (g GoalType) IsValid() bool {
	switch g {
	case GoalSlots, GoalAmount:
		return true
	default:
		return false
	}
}

type Rule string

const (
	RuleAllOrNothing Rule = "all_or_nothing"
	RulePartial      Rule = "partial"
)

func (r Rule) String() string {
	return string(r)
}

func (r Rule) IsValid() bool {
	switch r {
	case RuleAllOrNothing, RulePartial:
		return true
	default:
		return false
	}
}

type Status string

const (
	StatusOpen       Status = "open"
	StatusNearlyFull Status = "nearly_full"
	StatusClosed     Status = "closed"
	StatusNotMet     Status = "not_met"
	StatusFulfilled  Status = "fulfilled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusOpen, StatusNearlyFull, StatusClosed, StatusNotMet, StatusFulfilled:
		return true
	default:
		return false
	}
}

// Terminal statuses are never transitioned out of automatically; reopening a
// round is a manual operation outside this engine.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusClosed, StatusNotMet, StatusFulfilled:
		return true
	default:
		return false
	}
}
