package reservation

type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusAssigned   Status = "assigned"
	StatusWaitlisted Status = "waitlisted"
	StatusRefunded   Status = "refunded"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusAssigned, StatusWaitlisted, StatusRefunded:
		return true
	default:
		return false
	}
}

// HoldsFunds reports whether the reservation's deposit is held, which is what
// both progress accounting and the refund cascade key on.
func (s Status) HoldsFunds() bool {
	return s == StatusConfirmed || s == StatusAssigned
}

// CountsTowardCap reports whether the reservation consumes the per-person
// slot cap. Only refunded reservations release their slots.
func (s Status) CountsTowardCap() bool {
	return s != StatusRefunded
}

type TransactionStatus string

const (
	TransactionPending   TransactionStatus = "pending"
	TransactionSucceeded TransactionStatus = "succeeded"
	TransactionRefunded  TransactionStatus = "refunded"
)

func (s TransactionStatus) String() string {
	return string(s)
}
