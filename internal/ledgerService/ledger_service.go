package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Beyondthell/shopify-auction-backend/internal/auctionerrors"
	"github.com/Beyondthell/shopify-auction-backend/internal/models"
	"github.com/Beyondthell/shopify-auction-backend/internal/repository"
	"github.com/Beyondthell/shopify-auction-backend/utils"
)

// maxCommitAttempts bounds the reload-and-retry loop on a lost
// compare-and-swap so a ledger call never waits indefinitely.
const maxCommitAttempts = 8

// LedgerService defines the business logic for the auction bid ledger.
// Every operation that compares against a close time takes now as a
// parameter; the ledger never reads the clock itself.
type LedgerService struct {
	store repository.AuctionStore
	gate  *NotificationGate
}

// NewLedgerService creates a new LedgerService instance.
func NewLedgerService(store repository.AuctionStore) *LedgerService {
	return &LedgerService{
		store: store,
		gate:  NewNotificationGate(store),
	}
}

// PlaceBid validates and records a bid for a product. The state swap and
// the bid record commit atomically; when a concurrent bidder wins the
// swap, the call reloads the state and re-runs the checks, so the loser
// either fails ErrBidTooLow against the winner's amount or lands on top
// of it.
func (s *LedgerService) PlaceBid(ctx context.Context, productID, bidderEmail, bidderName string, amount decimal.Decimal, now time.Time) (models.AuctionStatus, error) {
	if err := validateBid(productID, bidderEmail, bidderName, amount); err != nil {
		return models.AuctionStatus{}, err
	}

	for attempt := 0; attempt < maxCommitAttempts; attempt++ {
		state, err := s.store.GetState(ctx, productID)
		if err != nil {
			return models.AuctionStatus{}, fmt.Errorf("service: failed to load state for product %s: %w", productID, err)
		}

		if state.Ended(now) {
			return models.AuctionStatus{}, fmt.Errorf("service: %w - product %s closed at %s", auctionerrors.ErrAuctionClosed, productID, state.CloseTime.UTC().Format(time.RFC3339))
		}
		if amount.LessThanOrEqual(state.CurrentHighest()) {
			return models.AuctionStatus{}, fmt.Errorf("service: %w - current highest bid is %s", auctionerrors.ErrBidTooLow, state.CurrentHighest())
		}

		bid := models.Bid{
			BidID:       utils.GenerateID(),
			ProductID:   productID,
			BidderEmail: bidderEmail,
			BidderName:  bidderName,
			Amount:      amount,
			SubmittedAt: now,
		}

		next := state
		next.HighestAmount = &amount
		next.LeaderName = bidderName
		next.LeaderEmail = bidderEmail
		next.LastUpdatedAt = now
		next.Version = state.Version + 1

		err = s.store.CommitBid(ctx, next, bid)
		if err == nil {
			return next.StatusAt(now), nil
		}
		if !errors.Is(err, auctionerrors.ErrVersionConflict) {
			return models.AuctionStatus{}, fmt.Errorf("service: failed to record bid for product %s: %w", productID, err)
		}
		// Lost the swap to a concurrent bid; reload and re-validate.
	}

	return models.AuctionStatus{}, fmt.Errorf("service: gave up placing bid for product %s after %d attempts: %w", productID, maxCommitAttempts, auctionerrors.ErrVersionConflict)
}

// validateBid checks input validity for bidding.
func validateBid(productID, bidderEmail, bidderName string, amount decimal.Decimal) error {
	if productID == "" {
		return fmt.Errorf("service: %w - empty product ID", auctionerrors.ErrValidation)
	}
	if bidderEmail == "" || bidderName == "" {
		return fmt.Errorf("service: %w - missing bidder email or name", auctionerrors.ErrValidation)
	}
	if !amount.IsPositive() {
		return fmt.Errorf("service: %w - non-positive bid amount", auctionerrors.ErrValidation)
	}
	return nil
}

// GetStatus returns the auction state plus the ended flag derived at now.
// Unseen products yield the default open state; nothing is written.
func (s *LedgerService) GetStatus(ctx context.Context, productID string, now time.Time) (models.AuctionStatus, error) {
	if productID == "" {
		return models.AuctionStatus{}, fmt.Errorf("service: %w - empty product ID", auctionerrors.ErrValidation)
	}

	state, err := s.store.GetState(ctx, productID)
	if err != nil {
		return models.AuctionStatus{}, fmt.Errorf("service: failed to load state for product %s: %w", productID, err)
	}
	return state.StatusAt(now), nil
}

// SetCloseTime upserts the close time for a product. Already-placed bids
// are unaffected; the leader fields carry over unchanged.
func (s *LedgerService) SetCloseTime(ctx context.Context, productID string, closeTime, now time.Time) (models.AuctionState, error) {
	if productID == "" {
		return models.AuctionState{}, fmt.Errorf("service: %w - empty product ID", auctionerrors.ErrValidation)
	}
	if closeTime.IsZero() {
		return models.AuctionState{}, fmt.Errorf("service: %w - zero instant", auctionerrors.ErrInvalidCloseTime)
	}

	for attempt := 0; attempt < maxCommitAttempts; attempt++ {
		state, err := s.store.GetState(ctx, productID)
		if err != nil {
			return models.AuctionState{}, fmt.Errorf("service: failed to load state for product %s: %w", productID, err)
		}

		next := state
		next.CloseTime = &closeTime
		next.LastUpdatedAt = now
		next.Version = state.Version + 1

		err = s.store.SaveState(ctx, next)
		if err == nil {
			return next, nil
		}
		if !errors.Is(err, auctionerrors.ErrVersionConflict) {
			return models.AuctionState{}, fmt.Errorf("service: failed to set close time for product %s: %w", productID, err)
		}
	}

	return models.AuctionState{}, fmt.Errorf("service: gave up setting close time for product %s: %w", productID, auctionerrors.ErrVersionConflict)
}

// ResetAuction clears the leader fields, the notification stamp and the
// bid history for a product, keeping the close time. Destructive: the
// history is gone for good.
func (s *LedgerService) ResetAuction(ctx context.Context, productID string, now time.Time) (models.AuctionState, error) {
	if productID == "" {
		return models.AuctionState{}, fmt.Errorf("service: %w - empty product ID", auctionerrors.ErrValidation)
	}

	for attempt := 0; attempt < maxCommitAttempts; attempt++ {
		state, err := s.store.GetState(ctx, productID)
		if err != nil {
			return models.AuctionState{}, fmt.Errorf("service: failed to load state for product %s: %w", productID, err)
		}

		next := state
		next.HighestAmount = nil
		next.LeaderName = ""
		next.LeaderEmail = ""
		next.NotifiedAt = nil
		next.LastUpdatedAt = now
		next.Version = state.Version + 1

		err = s.store.ResetProduct(ctx, next)
		if err == nil {
			return next, nil
		}
		if !errors.Is(err, auctionerrors.ErrVersionConflict) {
			return models.AuctionState{}, fmt.Errorf("service: failed to reset product %s: %w", productID, err)
		}
		// Lost the swap to a concurrent write; reload and rebuild.
	}

	return models.AuctionState{}, fmt.Errorf("service: gave up resetting product %s: %w", productID, auctionerrors.ErrVersionConflict)
}

// GetHighest returns the raw state for the admin view, without the
// ended-flag derivation.
func (s *LedgerService) GetHighest(ctx context.Context, productID string) (models.AuctionState, error) {
	if productID == "" {
		return models.AuctionState{}, fmt.Errorf("service: %w - empty product ID", auctionerrors.ErrValidation)
	}

	state, err := s.store.GetState(ctx, productID)
	if err != nil {
		return models.AuctionState{}, fmt.Errorf("service: failed to load state for product %s: %w", productID, err)
	}
	return state, nil
}

// ListBids returns the full bid history for a product.
func (s *LedgerService) ListBids(ctx context.Context, productID string) ([]models.Bid, error) {
	if productID == "" {
		return nil, fmt.Errorf("service: %w - empty product ID", auctionerrors.ErrValidation)
	}

	bids, err := s.store.ListBids(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list bids for product %s: %w", productID, err)
	}
	return bids, nil
}

// MarkNotified runs the notification gate for a product. On success the
// caller holds the one licence to send the winner email.
func (s *LedgerService) MarkNotified(ctx context.Context, productID string, now time.Time) (models.AuctionState, error) {
	if productID == "" {
		return models.AuctionState{}, fmt.Errorf("service: %w - empty product ID", auctionerrors.ErrValidation)
	}
	return s.gate.TryMarkNotified(ctx, productID, now)
}
