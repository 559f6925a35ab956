package commands

import (
	"context"
	"encoding/json"
	"time"

	"presale-engine/internal/domain/market"
	"presale-engine/internal/infra"
	"presale-engine/internal/pkg/clock"
	"presale-engine/internal/pkg/errs"
	"presale-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateListingParams struct {
	ProjectID uuid.UUID `json:"project_id"`
	RoundID   uuid.UUID `json:"round_id"`
	Slots     int32     `json:"slots"`
	AskCents  int64     `json:"ask_cents"`
	Currency  string    `json:"currency"`
}

type FillResult struct {
	Trade      *market.Trade
	PricePoint market.PricePoint
}

type ListingCommands interface {
	Create(ctx context.Context, params CreateListingParams, sellerUserID uuid.UUID) (*market.Listing, error)
	// Fill settles a listing exactly once. The sold flip is a conditional
	// update on the active row, so exactly one of N concurrent buyers wins;
	// trade and price point land in the same transaction as the flip.
	Fill(ctx context.Context, listingID, buyerUserID uuid.UUID) (*FillResult, error)
}

type listingCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewListingCommands(uow shared.UnitOfWork, clock clock.Clock) ListingCommands {
	return &listingCommandsImpl{uow: uow, clock: clock}
}

func (c *listingCommandsImpl) Create(ctx context.Context, params CreateListingParams, sellerUserID uuid.UUID) (*market.Listing, error) {
	listing, err := market.NewListing(
		params.ProjectID,
		params.RoundID,
		sellerUserID,
		params.Slots,
		params.AskCents,
		params.Currency,
		c.clock.Now(),
	)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Listings().Create(ctx, listing); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return listing, nil
}

func (c *listingCommandsImpl) Fill(ctx context.Context, listingID, buyerUserID uuid.UUID) (*FillResult, error) {
	var result *FillResult
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		listing, err := tx.Reads().ListingByID(ctx, listingID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.ErrListingNotFound
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if !listing.IsActive() {
			return errs.ErrListingAlreadySold
		}

		now := c.clock.Now()
		won, err := tx.Listings().FillIfActive(ctx, listingID, now)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if !won {
			return errs.ErrListingAlreadySold
		}
		if err := listing.Fill(now); err != nil {
			return errs.Mark(err, errs.ErrInvalidTransition)
		}

		trade := market.NewTradeFromListing(listing, buyerUserID, now)
		if _, err := tx.Trades().Create(ctx, trade); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		point := market.PricePointFromTrade(listing.ProjectID(), trade)
		if err := tx.PriceHistory().Append(ctx, point); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		if err := createTradeJob(ctx, tx, trade, now); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		result = &FillResult{Trade: trade, PricePoint: point}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func createTradeJob(ctx context.Context, tx shared.Tx, trade *market.Trade, runAt time.Time) error {
	payload, err := json.Marshal(map[string]any{
		"trade_id":   trade.ID(),
		"listing_id": trade.ListingID(),
	})
	if err != nil {
		return err
	}
	return tx.Notifications().CreateJob(ctx, "email", "listing_filled", payload, runAt)
}
