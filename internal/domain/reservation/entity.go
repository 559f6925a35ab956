package reservation

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidSlots     = errors.New("slots must be at least 1")
	ErrNotPending       = errors.New("reservation is not pending")
	ErrNotRefundable    = errors.New("reservation does not hold funds")
	ErrNotWaitlisted    = errors.New("reservation is not waitlisted")
	ErrAlreadyRefunded  = errors.New("reservation is already refunded")
	ErrCapacityExceeded = errors.New("slots per person cap exceeded")
)

// Reservation is one buyer's claim on slots within a round. amountCents is
// frozen at admission time from the round's deposit; later deposit changes
// never reprice existing reservations.
type Reservation struct {
	id          uuid.UUID
	roundID     uuid.UUID
	userID      uuid.UUID
	slots       int32
	amountCents int64
	status      Status
	kyc         KYC
	createdAt   time.Time
}

func ReconstructReservation(
	id, roundID, userID uuid.UUID,
	slots int32,
	amountCents int64,
	status Status,
	kyc KYC,
	createdAt time.Time,
) *Reservation {
	return &Reservation{
		id:          id,
		roundID:     roundID,
		userID:      userID,
		slots:       slots,
		amountCents: amountCents,
		status:      status,
		kyc:         kyc,
		createdAt:   createdAt,
	}
}

// Confirm records a successful checkout: pending reservations become
// confirmed and start holding funds.
func (r *Reservation) Confirm() error {
	if r.status != StatusPending {
		return ErrNotPending
	}
	r.status = StatusConfirmed
	return nil
}

// Refund releases a held deposit. Pending and waitlisted reservations never
// held funds, so refunding them is an invalid transition.
func (r *Reservation) Refund() error {
	if r.status == StatusRefunded {
		return ErrAlreadyRefunded
	}
	if !r.status.HoldsFunds() {
		return ErrNotRefundable
	}
	r.status = StatusRefunded
	return nil
}

// Promote moves a waitlisted reservation back into the pending queue. It is
// only ever invoked by an explicit admin action, never by a refund.
func (r *Reservation) Promote() error {
	if r.status != StatusWaitlisted {
		return ErrNotWaitlisted
	}
	r.status = StatusPending
	return nil
}

func (r *Reservation) ID() uuid.UUID        { return r.id }
func (r *Reservation) RoundID() uuid.UUID   { return r.roundID }
func (r *Reservation) UserID() uuid.UUID    { return r.userID }
func (r *Reservation) Slots() int32         { return r.slots }
func (r *Reservation) AmountCents() int64   { return r.amountCents }
func (r *Reservation) Status() Status       { return r.status }
func (r *Reservation) KYC() KYC             { return r.kyc }
func (r *Reservation) CreatedAt() time.Time { return r.createdAt }
