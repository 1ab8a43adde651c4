package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/Beyondthell/shopify-auction-backend/internal/auctionerrors"
	model "github.com/Beyondthell/shopify-auction-backend/internal/models"
)

// AuctionStore defines the storage contract consumed by the bid ledger.
//
// State writes are versioned compare-and-swaps: callers read a state,
// build the successor with Version incremented by one, and the store
// persists it only if the stored version still matches. A lost swap
// fails with auctionerrors.ErrVersionConflict and mutates nothing.
type AuctionStore interface {
	// GetState returns the state for a product, or the default open
	// state with Version 0 when no record exists yet.
	GetState(ctx context.Context, productID string) (model.AuctionState, error)
	// SaveState persists state iff the stored version equals
	// state.Version-1 (a missing record counts as version 0).
	SaveState(ctx context.Context, state model.AuctionState) error
	// CommitBid persists state under the same version condition and
	// appends the bid record. Both writes land or neither does.
	CommitBid(ctx context.Context, state model.AuctionState, bid model.Bid) error
	// ListBids returns all bid records for a product in append order.
	ListBids(ctx context.Context, productID string) ([]model.Bid, error)
	// ResetProduct persists state under the same version condition and
	// deletes every bid record for the product. A lost swap leaves the
	// history untouched.
	ResetProduct(ctx context.Context, state model.AuctionState) error
}

// productRecord holds one product's state and bid history behind its own
// lock so that products never contend with each other.
type productRecord struct {
	mu    sync.Mutex
	state model.AuctionState
	bids  []model.Bid
}

// MemoryRepo is a concurrency-safe in-memory implementation of AuctionStore.
type MemoryRepo struct {
	mu       sync.RWMutex
	products map[string]*productRecord
}

// NewMemoryRepo creates a new in-memory store instance.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{products: make(map[string]*productRecord)}
}

// record returns the per-product record, creating it lazily. The map
// lock is held only for the lookup, never across a state mutation.
func (r *MemoryRepo) record(productID string) *productRecord {
	r.mu.RLock()
	rec, ok := r.products[productID]
	r.mu.RUnlock()
	if ok {
		return rec
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if rec, ok = r.products[productID]; ok {
		return rec
	}
	rec = &productRecord{state: model.NewAuctionState(productID)}
	r.products[productID] = rec
	return rec
}

// GetState returns the current state for a product.
func (r *MemoryRepo) GetState(_ context.Context, productID string) (model.AuctionState, error) {
	rec := r.record(productID)
	rec.mu.Lock()
	defer rec.mu.Unlock()
	return rec.state, nil
}

// SaveState swaps in a new state if the stored version matches.
func (r *MemoryRepo) SaveState(_ context.Context, state model.AuctionState) error {
	rec := r.record(state.ProductID)
	rec.mu.Lock()
	defer rec.mu.Unlock()

	if rec.state.Version != state.Version-1 {
		return fmt.Errorf("save state for product %s: %w", state.ProductID, auctionerrors.ErrVersionConflict)
	}
	rec.state = state
	return nil
}

// CommitBid swaps in a new state and appends the bid under one critical
// section, so concurrent committers serialize per product.
func (r *MemoryRepo) CommitBid(_ context.Context, state model.AuctionState, bid model.Bid) error {
	rec := r.record(state.ProductID)
	rec.mu.Lock()
	defer rec.mu.Unlock()

	if rec.state.Version != state.Version-1 {
		return fmt.Errorf("commit bid for product %s: %w", state.ProductID, auctionerrors.ErrVersionConflict)
	}
	rec.state = state
	rec.bids = append(rec.bids, bid)
	return nil
}

// ListBids returns a copy of the bid history for a product.
func (r *MemoryRepo) ListBids(_ context.Context, productID string) ([]model.Bid, error) {
	rec := r.record(productID)
	rec.mu.Lock()
	defer rec.mu.Unlock()
	return append([]model.Bid(nil), rec.bids...), nil
}

// ResetProduct swaps in a new state and drops the bid history under one
// critical section. A bid committed before the reset is purged with the
// rest; a bid committed after sees the cleared state. Nothing can land
// in between, so the cleared state never coexists with a live leader
// whose history is gone.
func (r *MemoryRepo) ResetProduct(_ context.Context, state model.AuctionState) error {
	rec := r.record(state.ProductID)
	rec.mu.Lock()
	defer rec.mu.Unlock()

	if rec.state.Version != state.Version-1 {
		return fmt.Errorf("reset product %s: %w", state.ProductID, auctionerrors.ErrVersionConflict)
	}
	rec.state = state
	rec.bids = nil
	return nil
}
