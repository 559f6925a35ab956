package market

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidSlots    = errors.New("slots must be at least 1")
	ErrInvalidAsk      = errors.New("ask price must be positive")
	ErrMissingCurrency = errors.New("currency is required")
	ErrAlreadySold     = errors.New("listing is already sold")
)

type ListingStatus string

const (
	ListingActive ListingStatus = "active"
	ListingSold   ListingStatus = "sold"
)

func (s ListingStatus) String() string {
	return string(s)
}

// Listing is an offer to resell confirmed slots on the secondary market. The
// only status transition is active to sold, exactly once; the persistence
// layer enforces the same rule with a compare-and-swap on the status column.
type Listing struct {
	id           uuid.UUID
	projectID    uuid.UUID
	roundID      uuid.UUID
	sellerUserID uuid.UUID
	slots        int32
	askCents     int64
	currency     string
	status       ListingStatus
	filledAt     *time.Time
	createdAt    time.Time
}

func NewListing(
	projectID, roundID, sellerUserID uuid.UUID,
	slots int32,
	askCents int64,
	currency string,
	now time.Time,
) (*Listing, error) {
	if slots < 1 {
		return nil, ErrInvalidSlots
	}
	if askCents <= 0 {
		return nil, ErrInvalidAsk
	}
	if currency == "" {
		return nil, ErrMissingCurrency
	}
	return &Listing{
		id:           uuid.New(),
		projectID:    projectID,
		roundID:      roundID,
		sellerUserID: sellerUserID,
		slots:        slots,
		askCents:     askCents,
		currency:     currency,
		status:       ListingActive,
		createdAt:    now,
	}, nil
}

func ReconstructListing(
	id, projectID, roundID, sellerUserID uuid.UUID,
	slots int32,
	askCents int64,
	currency string,
	status ListingStatus,
	filledAt *time.Time,
	createdAt time.Time,
) *Listing {
	return &Listing{
		id:           id,
		projectID:    projectID,
		roundID:      roundID,
		sellerUserID: sellerUserID,
		slots:        slots,
		askCents:     askCents,
		currency:     currency,
		status:       status,
		filledAt:     filledAt,
		createdAt:    createdAt,
	}
}

// Fill settles the listing: it flips active to sold and stamps the fill time.
// A second call fails regardless of caller.
func (l *Listing) Fill(now time.Time) error {
	if l.status != ListingActive {
		return ErrAlreadySold
	}
	l.status = ListingSold
	l.filledAt = &now
	return nil
}

func (l *Listing) IsActive() bool {
	return l.status == ListingActive
}

func (l *Listing) ID() uuid.UUID           { return l.id }
func (l *Listing) ProjectID() uuid.UUID    { return l.projectID }
func (l *Listing) RoundID() uuid.UUID      { return l.roundID }
func (l *Listing) SellerUserID() uuid.UUID { return l.sellerUserID }
func (l *Listing) Slots() int32            { return l.slots }
func (l *Listing) AskCents() int64         { return l.askCents }
func (l *Listing) Currency() string        { return l.currency }
func (l *Listing) Status() ListingStatus   { return l.status }
func (l *Listing) FilledAt() *time.Time    { return l.filledAt }
func (l *Listing) CreatedAt() time.Time    { return l.createdAt }
