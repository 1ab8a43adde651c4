package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bid is one accepted offer on a product. Bids are append-only: once
// recorded they are never mutated, and only an administrative reset
// removes them.
type Bid struct {
	BidID       string          `json:"bid_id"`
	ProductID   string          `json:"product_id"`
	BidderEmail string          `json:"bidder_email"`
	BidderName  string          `json:"bidder_name"`
	Amount      decimal.Decimal `json:"amount"`
	SubmittedAt time.Time       `json:"submitted_at"`
}

// AuctionState is the single mutable record per product. HighestAmount,
// LeaderName and LeaderEmail are set and cleared together: all nil/empty
// means no accepted bids yet. Version is the storage compare-and-swap
// counter and is not exposed to API clients.
type AuctionState struct {
	ProductID     string           `json:"product_id"`
	CloseTime     *time.Time       `json:"close_time,omitempty"`
	HighestAmount *decimal.Decimal `json:"highest_amount,omitempty"`
	LeaderName    string           `json:"leader_name,omitempty"`
	LeaderEmail   string           `json:"leader_email,omitempty"`
	LastUpdatedAt time.Time        `json:"last_updated_at"`
	NotifiedAt    *time.Time       `json:"notified_at,omitempty"`
	Version       int64            `json:"-"`
}

// NewAuctionState returns the default open state for a product that has
// no stored record yet.
func NewAuctionState(productID string) AuctionState {
	return AuctionState{ProductID: productID}
}

// HasLeader reports whether any bid has been accepted since the last reset.
func (s AuctionState) HasLeader() bool {
	return s.HighestAmount != nil
}

// CurrentHighest returns the highest accepted amount, zero when no bids exist.
func (s AuctionState) CurrentHighest() decimal.Decimal {
	if s.HighestAmount == nil {
		return decimal.Zero
	}
	return *s.HighestAmount
}

// Ended reports whether the auction is closed at the given instant. A nil
// close time means the auction stays open indefinitely.
func (s AuctionState) Ended(now time.Time) bool {
	return s.CloseTime != nil && !now.Before(*s.CloseTime)
}

// AuctionStatus is an AuctionState plus the ended flag derived at read time.
type AuctionStatus struct {
	AuctionState
	AuctionEnded bool `json:"auction_ended"`
}

// StatusAt derives the caller-facing status for the given instant.
func (s AuctionState) StatusAt(now time.Time) AuctionStatus {
	return AuctionStatus{AuctionState: s, AuctionEnded: s.Ended(now)}
}
