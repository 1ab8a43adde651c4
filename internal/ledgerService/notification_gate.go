package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Beyondthell/shopify-auction-backend/internal/auctionerrors"
	"github.com/Beyondthell/shopify-auction-backend/internal/models"
	"github.com/Beyondthell/shopify-auction-backend/internal/repository"
)

// NotificationGate decides whether a winner notification may be sent and
// records that it was. The compare-and-swap on the state version means
// that under concurrent attempts at most one caller ever sees success
// for a given winner; everyone else gets ErrAlreadyNotified.
type NotificationGate struct {
	store repository.AuctionStore
}

// NewNotificationGate creates a gate over the given store.
func NewNotificationGate(store repository.AuctionStore) *NotificationGate {
	return &NotificationGate{store: store}
}

// TryMarkNotified stamps NotifiedAt if the auction has a winner and has
// not been notified yet. The actual email send happens outside the gate;
// a transport failure afterwards leaves the stamp in place ("marked but
// unsent" beats "sent twice"), and a genuine resend requires clearing
// the stamp through an administrative reset.
func (g *NotificationGate) TryMarkNotified(ctx context.Context, productID string, now time.Time) (models.AuctionState, error) {
	for attempt := 0; attempt < maxCommitAttempts; attempt++ {
		state, err := g.store.GetState(ctx, productID)
		if err != nil {
			return models.AuctionState{}, fmt.Errorf("gate: failed to load state for product %s: %w", productID, err)
		}

		if !state.HasLeader() || state.LeaderEmail == "" {
			return models.AuctionState{}, fmt.Errorf("gate: %w - product %s", auctionerrors.ErrNoWinner, productID)
		}
		if state.NotifiedAt != nil {
			return models.AuctionState{}, fmt.Errorf("gate: %w - product %s notified at %s", auctionerrors.ErrAlreadyNotified, productID, state.NotifiedAt.UTC().Format(time.RFC3339))
		}

		notifiedAt := now
		next := state
		next.NotifiedAt = &notifiedAt
		next.LastUpdatedAt = now
		next.Version = state.Version + 1

		err = g.store.SaveState(ctx, next)
		if err == nil {
			return next, nil
		}
		if !errors.Is(err, auctionerrors.ErrVersionConflict) {
			return models.AuctionState{}, fmt.Errorf("gate: failed to mark product %s notified: %w", productID, err)
		}
		// A concurrent attempt touched the state; reload to see whether
		// it was the one that notified.
	}

	return models.AuctionState{}, fmt.Errorf("gate: gave up marking product %s notified: %w", productID, auctionerrors.ErrVersionConflict)
}
