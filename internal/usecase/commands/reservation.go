package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"presale-engine/internal/domain/reservation"
	"presale-engine/internal/domain/round"
	"presale-engine/internal/infra"
	"presale-engine/internal/pkg/clock"
	"presale-engine/internal/pkg/errs"
	"presale-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

type AdmitReservationParams struct {
	RoundID  uuid.UUID `json:"round_id"`
	Slots    int32     `json:"slots"`
	FullName string    `json:"full_name"`
	Country  string    `json:"country"`
	Phone    string    `json:"phone"`
}

type AdmitResult struct {
	Reservation *reservation.Reservation
	IsReplayed  bool
}

type ReservationCommands interface {
	// Admit validates and classifies a reservation request as pending or
	// waitlisted. Strict snapshot semantics: the decision is made under the
	// round row lock, so bursts of concurrent admissions serialize and each
	// sees the totals the previous one left behind.
	Admit(ctx context.Context, params AdmitReservationParams, userID, idempotencyKey uuid.UUID) (*AdmitResult, error)
	// Checkout confirms a pending reservation and settles its payment record.
	Checkout(ctx context.Context, reservationID uuid.UUID, provider string) (uuid.UUID, error)
	// Refund releases one held deposit outside of a cascade.
	Refund(ctx context.Context, reservationID uuid.UUID) (*reservation.Reservation, error)
	// Promote moves a waitlisted reservation to pending. Admin-only; never
	// triggered automatically by freed capacity.
	Promote(ctx context.Context, reservationID uuid.UUID) (*reservation.Reservation, error)
}

type reservationCommandsImpl struct {
	uow     shared.UnitOfWork
	factory *reservation.Factory
	clock   clock.Clock
}

func NewReservationCommands(uow shared.UnitOfWork, factory *reservation.Factory, clock clock.Clock) ReservationCommands {
	return &reservationCommandsImpl{
		uow:     uow,
		factory: factory,
		clock:   clock,
	}
}

func (c *reservationCommandsImpl) Admit(
	ctx context.Context,
	params AdmitReservationParams,
	userID, idempotencyKey uuid.UUID,
) (*AdmitResult, error) {
	requestHash := calculateRequestHash(params)
	expiresAt := c.clock.Now().Add(24 * time.Hour)

	var result *AdmitResult
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		claimed, err := tx.Idempotency().TryInsert(ctx, idempotencyKey, userID, "POST /reservations", requestHash, expiresAt)
		if err != nil {
			return errs.Mark(err, errs.ErrIdempotencyCheckFailed)
		}
		if !claimed {
			replayed, err := c.resolveExistingKey(ctx, tx, idempotencyKey, userID, requestHash)
			if err != nil {
				return err
			}
			result = replayed
			return nil
		}

		admitted, err := c.admitUnderRoundLock(ctx, tx, params, userID)
		if err != nil {
			return err
		}

		if err := tx.Idempotency().MarkCompleted(ctx, idempotencyKey, userID, admitted.ID()); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		result = &AdmitResult{Reservation: admitted}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (c *reservationCommandsImpl) resolveExistingKey(
	ctx context.Context,
	tx shared.Tx,
	key, userID uuid.UUID,
	requestHash string,
) (*AdmitResult, error) {
	record, err := tx.Reads().IdempotencyByKey(ctx, key, userID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrIdempotencyCheckFailed)
	}

	switch record.Status {
	case "completed":
		if record.ResultID == nil {
			return nil, errs.New("completed idempotency key missing result id")
		}
		res, err := tx.Reads().ReservationByID(ctx, *record.ResultID)
		if err != nil {
			return nil, errs.Mark(err, errs.ErrIdempotencyCheckFailed)
		}
		return &AdmitResult{Reservation: res, IsReplayed: true}, nil

	case "processing":
		if record.RequestHash != requestHash {
			return nil, errs.Mark(errors.New("same key, different request body"), errs.ErrDomainValidation)
		}
		return nil, errs.ErrIdempotencyInProgress

	default:
		return nil, errs.New("invalid idempotency key status")
	}
}

func (c *reservationCommandsImpl) admitUnderRoundLock(
	ctx context.Context,
	tx shared.Tx,
	params AdmitReservationParams,
	userID uuid.UUID,
) (*reservation.Reservation, error) {
	rd, err := tx.Rounds().FindForUpdate(ctx, params.RoundID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrRoundNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	if rd.Status().IsTerminal() {
		return nil, errs.Mark(errors.New("round is no longer accepting reservations"), errs.ErrInvalidTransition)
	}

	kyc, err := reservation.NewKYC(params.FullName, params.Country, params.Phone)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	stakes, err := tx.Reads().StakesByRound(ctx, params.RoundID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	progress := round.Progress(rd, stakes)

	existingSlots, err := tx.Reads().UserSlotsInRound(ctx, params.RoundID, userID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	admitted, err := c.factory.Admit(rd, userID, params.Slots, kyc, existingSlots, progress)
	if err != nil {
		switch {
		case errors.Is(err, reservation.ErrCapacityExceeded):
			return nil, errs.Mark(err, errs.ErrCapacityExceeded)
		default:
			return nil, errs.Mark(err, errs.ErrDomainValidation)
		}
	}

	if _, err := tx.Reservations().Create(ctx, admitted); err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	if err := createReservationJob(ctx, tx, "reservation_admitted", admitted.ID(), c.clock.Now()); err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	return admitted, nil
}

func (c *reservationCommandsImpl) Checkout(ctx context.Context, reservationID uuid.UUID, provider string) (uuid.UUID, error) {
	var transactionID uuid.UUID
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := c.lockReservation(ctx, tx, reservationID)
		if err != nil {
			return err
		}

		if err := res.Confirm(); err != nil {
			return errs.Mark(err, errs.ErrInvalidTransition)
		}
		if err := tx.Reservations().UpdateStatus(ctx, res.ID(), res.Status()); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		existing, err := tx.Reads().TransactionByReservation(ctx, reservationID)
		switch {
		case err == nil:
			if err := existing.MarkSucceeded(); err != nil {
				return errs.Mark(err, errs.ErrInvalidTransition)
			}
			if err := tx.Transactions().UpdateStatus(ctx, existing.ID(), existing.Status()); err != nil {
				return errs.Mark(err, errs.ErrDatabaseOperationFailed)
			}
			transactionID = existing.ID()
		case infra.IsKind(err, infra.KindNotFound):
			pay := reservation.NewTransaction(reservationID, provider, res.AmountCents(), currencyOfRound(ctx, tx, res.RoundID()), c.clock.Now())
			if err := pay.MarkSucceeded(); err != nil {
				return errs.Mark(err, errs.ErrInvalidTransition)
			}
			if _, err := tx.Transactions().Create(ctx, pay); err != nil {
				return errs.Mark(err, errs.ErrDatabaseOperationFailed)
			}
			transactionID = pay.ID()
		default:
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		return createReservationJob(ctx, tx, "reservation_confirmed", res.ID(), c.clock.Now())
	})
	if err != nil {
		return uuid.Nil, err
	}
	return transactionID, nil
}

func (c *reservationCommandsImpl) Refund(ctx context.Context, reservationID uuid.UUID) (*reservation.Reservation, error) {
	var refunded *reservation.Reservation
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := c.lockReservation(ctx, tx, reservationID)
		if err != nil {
			return err
		}

		if err := res.Refund(); err != nil {
			return errs.Mark(err, errs.ErrInvalidTransition)
		}
		if err := tx.Reservations().UpdateStatus(ctx, res.ID(), res.Status()); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		pay, err := tx.Reads().TransactionByReservation(ctx, reservationID)
		switch {
		case err == nil:
			if markErr := pay.MarkRefunded(); markErr != nil {
				return errs.Mark(markErr, errs.ErrInvalidTransition)
			}
			if err := tx.Transactions().UpdateStatus(ctx, pay.ID(), pay.Status()); err != nil {
				return errs.Mark(err, errs.ErrDatabaseOperationFailed)
			}
		case infra.IsKind(err, infra.KindNotFound):
			// confirmed without a recorded payment; nothing to mirror
		default:
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		refunded = res
		return createReservationJob(ctx, tx, "reservation_refunded", res.ID(), c.clock.Now())
	})
	if err != nil {
		return nil, err
	}
	return refunded, nil
}

func (c *reservationCommandsImpl) Promote(ctx context.Context, reservationID uuid.UUID) (*reservation.Reservation, error) {
	var promoted *reservation.Reservation
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := c.lockReservation(ctx, tx, reservationID)
		if err != nil {
			return err
		}

		if err := res.Promote(); err != nil {
			return errs.Mark(err, errs.ErrInvalidTransition)
		}
		if err := tx.Reservations().UpdateStatus(ctx, res.ID(), res.Status()); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		promoted = res
		return nil
	})
	if err != nil {
		return nil, err
	}
	return promoted, nil
}

// lockReservation takes the round row lock before re-reading the reservation,
// so status changes serialize with admissions, closures and cascades on the
// same round.
func (c *reservationCommandsImpl) lockReservation(ctx context.Context, tx shared.Tx, reservationID uuid.UUID) (*reservation.Reservation, error) {
	res, err := tx.Reads().ReservationByID(ctx, reservationID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrReservationNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	if _, err := tx.Rounds().FindForUpdate(ctx, res.RoundID()); err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	// Re-read now that the lock is held; a cascade may have settled between
	// the first read and the lock.
	res, err = tx.Reads().ReservationByID(ctx, reservationID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return res, nil
}

func currencyOfRound(ctx context.Context, tx shared.Tx, roundID uuid.UUID) string {
	rd, err := tx.Reads().RoundByID(ctx, roundID)
	if err != nil {
		return ""
	}
	return rd.Currency()
}

func createReservationJob(ctx context.Context, tx shared.Tx, topic string, reservationID uuid.UUID, runAt time.Time) error {
	payload, err := json.Marshal(map[string]any{
		"reservation_id": reservationID,
		"type":           topic,
	})
	if err != nil {
		return err
	}
	return tx.Notifications().CreateJob(ctx, "email", topic, payload, runAt)
}

func calculateRequestHash(params AdmitReservationParams) string {
	data, _ := json.Marshal(params)
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
