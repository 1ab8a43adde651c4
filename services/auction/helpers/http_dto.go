package helpers

import (
	"time"

	"github.com/shopspring/decimal"

	model "github.com/Beyondthell/shopify-auction-backend/internal/models"
)

// Request/Response DTOs
type PlaceBidRequest struct {
	BidderEmail string          `json:"bidder_email" binding:"required,email"`
	BidderName  string          `json:"bidder_name" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
}

type SetCloseTimeRequest struct {
	CloseTime string `json:"close_time" binding:"required"`
}

type RegisterRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type BidResponse struct {
	BidID       string `json:"bid_id"`
	ProductID   string `json:"product_id"`
	BidderEmail string `json:"bidder_email"`
	BidderName  string `json:"bidder_name"`
	Amount      string `json:"amount"`
	SubmittedAt string `json:"submitted_at"`
}

type AuctionStateResponse struct {
	ProductID     string  `json:"product_id"`
	CloseTime     *string `json:"close_time,omitempty"`
	HighestAmount *string `json:"highest_amount,omitempty"`
	LeaderName    string  `json:"leader_name,omitempty"`
	LeaderEmail   string  `json:"leader_email,omitempty"`
	LastUpdatedAt string  `json:"last_updated_at"`
	NotifiedAt    *string `json:"notified_at,omitempty"`
}

type AuctionStatusResponse struct {
	AuctionStateResponse
	AuctionEnded bool `json:"auction_ended"`
}

// NewBidResponse formats a bid record for the wire.
func NewBidResponse(b model.Bid) BidResponse {
	return BidResponse{
		BidID:       b.BidID,
		ProductID:   b.ProductID,
		BidderEmail: b.BidderEmail,
		BidderName:  b.BidderName,
		Amount:      b.Amount.String(),
		SubmittedAt: b.SubmittedAt.UTC().Format(time.RFC3339),
	}
}

// NewAuctionStateResponse formats an auction state for the wire.
func NewAuctionStateResponse(s model.AuctionState) AuctionStateResponse {
	resp := AuctionStateResponse{
		ProductID:     s.ProductID,
		LeaderName:    s.LeaderName,
		LeaderEmail:   s.LeaderEmail,
		LastUpdatedAt: s.LastUpdatedAt.UTC().Format(time.RFC3339),
	}
	if s.CloseTime != nil {
		v := s.CloseTime.UTC().Format(time.RFC3339)
		resp.CloseTime = &v
	}
	if s.HighestAmount != nil {
		v := s.HighestAmount.String()
		resp.HighestAmount = &v
	}
	if s.NotifiedAt != nil {
		v := s.NotifiedAt.UTC().Format(time.RFC3339)
		resp.NotifiedAt = &v
	}
	return resp
}

// NewAuctionStatusResponse formats a status (state + ended flag) for the wire.
func NewAuctionStatusResponse(s model.AuctionStatus) AuctionStatusResponse {
	return AuctionStatusResponse{
		AuctionStateResponse: NewAuctionStateResponse(s.AuctionState),
		AuctionEnded:         s.AuctionEnded,
	}
}
