package errs

import "errors"

// Failure kinds shared across usecase layers. Handlers map these onto HTTP
// statuses; collaborators are expected to branch on kind, not message.
var (
	// Not found
	ErrRoundNotFound       = errors.New("round not found")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrListingNotFound     = errors.New("listing not found")

	// Validation
	ErrDomainValidation = errors.New("domain validation error")

	// Capacity
	ErrCapacityExceeded = errors.New("slots per person cap exceeded")

	// Invalid state
	ErrListingAlreadySold = errors.New("listing already sold")
	ErrInvalidTransition  = errors.New("operation not permitted in current status")

	// Idempotency
	ErrIdempotencyKeyRequired = errors.New("idempotency key required")
	ErrIdempotencyInProgress  = errors.New("idempotency in progress")
	ErrIdempotencyCheckFailed = errors.New("idempotency check failed")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
