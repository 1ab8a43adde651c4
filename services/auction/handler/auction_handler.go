package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	model "github.com/Beyondthell/shopify-auction-backend/internal/models"
	"github.com/Beyondthell/shopify-auction-backend/services/auction/helpers"
	"github.com/Beyondthell/shopify-auction-backend/utils"
)

type AuctionLedgerInterface interface {
	PlaceBid(ctx context.Context, productID, bidderEmail, bidderName string, amount decimal.Decimal, now time.Time) (model.AuctionStatus, error)
	GetStatus(ctx context.Context, productID string, now time.Time) (model.AuctionStatus, error)
	SetCloseTime(ctx context.Context, productID string, closeTime, now time.Time) (model.AuctionState, error)
	ResetAuction(ctx context.Context, productID string, now time.Time) (model.AuctionState, error)
	GetHighest(ctx context.Context, productID string) (model.AuctionState, error)
	ListBids(ctx context.Context, productID string) ([]model.Bid, error)
	MarkNotified(ctx context.Context, productID string, now time.Time) (model.AuctionState, error)
}

type WinnerMailerInterface interface {
	SendWinnerEmail(ctx context.Context, to, bidderName, productID string, amount decimal.Decimal) error
}

type AuctionHandler struct {
	service AuctionLedgerInterface
	mailer  WinnerMailerInterface
}

func NewAuctionHandler(service AuctionLedgerInterface, mailer WinnerMailerInterface) *AuctionHandler {
	return &AuctionHandler{service: service, mailer: mailer}
}

// PlaceBidHandler handles POST /products/:product_id/bids
func (h *AuctionHandler) PlaceBidHandler(c *gin.Context) {
	productID := c.Param("product_id")

	var req helpers.PlaceBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "PlaceBidHandler", err)
		return
	}

	status, err := h.service.PlaceBid(c.Request.Context(), productID, req.BidderEmail, req.BidderName, req.Amount, time.Now().UTC())
	if err != nil {
		code, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, code, fmt.Errorf("%s: %w", message, err), message)
		utils.Error("PlaceBidHandler: failed to place bid", map[string]any{
			"handler":    "PlaceBidHandler",
			"product_id": productID,
			"bidder":     req.BidderEmail,
			"error":      err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, helpers.NewAuctionStatusResponse(status), "bid placed successfully")
	helpers.LogSuccess("PlaceBidHandler", "bid placed successfully", map[string]any{
		"product_id": productID,
		"bidder":     req.BidderEmail,
		"amount":     req.Amount.String(),
		"ended":      status.AuctionEnded,
	})
}

// GetStatusHandler handles GET /products/:product_id/status
func (h *AuctionHandler) GetStatusHandler(c *gin.Context) {
	productID := c.Param("product_id")

	status, err := h.service.GetStatus(c.Request.Context(), productID, time.Now().UTC())
	if err != nil {
		code, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, code, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("GetStatusHandler: error retrieving status", map[string]any{"product_id": productID, "error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.NewAuctionStatusResponse(status), "status retrieved successfully")
}

// ListBidsHandler handles GET /products/:product_id/bids
func (h *AuctionHandler) ListBidsHandler(c *gin.Context) {
	productID := c.Param("product_id")

	bids, err := h.service.ListBids(c.Request.Context(), productID)
	if err != nil {
		code, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, code, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("ListBidsHandler: error retrieving bids", map[string]any{"product_id": productID, "error": err.Error()})
		return
	}

	resp := make([]helpers.BidResponse, 0, len(bids))
	for _, b := range bids {
		resp = append(resp, helpers.NewBidResponse(b))
	}

	utils.JSONResponse(c, http.StatusOK, resp, "bids retrieved successfully")
	helpers.LogSuccess("ListBidsHandler", "bids retrieved successfully", map[string]any{
		"product_id": productID,
		"count":      len(resp),
	})
}

// RegisterHandler handles POST /register. Accepted but not persisted:
// the pre-registration semantics are undecided, so this stays a
// placeholder until product requirements pin them down.
func (h *AuctionHandler) RegisterHandler(c *gin.Context) {
	var req helpers.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "RegisterHandler", err)
		return
	}

	utils.JSONResponse(c, http.StatusAccepted, gin.H{"email": req.Email}, "registration accepted")
	helpers.LogSuccess("RegisterHandler", "registration accepted", map[string]any{"email": req.Email})
}

// GetHighestHandler handles GET /admin/products/:product_id/highest
func (h *AuctionHandler) GetHighestHandler(c *gin.Context) {
	productID := c.Param("product_id")

	state, err := h.service.GetHighest(c.Request.Context(), productID)
	if err != nil {
		code, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, code, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("GetHighestHandler: error retrieving state", map[string]any{"product_id": productID, "error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.NewAuctionStateResponse(state), "highest bid retrieved successfully")
}

// SetCloseTimeHandler handles PUT /admin/products/:product_id/close-time
func (h *AuctionHandler) SetCloseTimeHandler(c *gin.Context) {
	productID := c.Param("product_id")

	var req helpers.SetCloseTimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "SetCloseTimeHandler", err)
		return
	}

	closeTime, err := time.Parse(time.RFC3339, req.CloseTime)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, fmt.Errorf("invalid close time: %w", err), "invalid close time")
		utils.Warn("SetCloseTimeHandler: close time parse error", map[string]any{"product_id": productID, "error": err.Error()})
		return
	}

	state, err := h.service.SetCloseTime(c.Request.Context(), productID, closeTime, time.Now().UTC())
	if err != nil {
		code, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, code, fmt.Errorf("%s: %w", message, err), message)
		utils.Error("SetCloseTimeHandler: failed to set close time", map[string]any{"product_id": productID, "error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.NewAuctionStateResponse(state), "close time updated successfully")
	helpers.LogSuccess("SetCloseTimeHandler", "close time updated successfully", map[string]any{
		"product_id": productID,
		"close_time": closeTime.UTC().Format(time.RFC3339),
	})
}

// ResetAuctionHandler handles POST /admin/products/:product_id/reset.
// Destructive: the bid history for the product is deleted for good.
func (h *AuctionHandler) ResetAuctionHandler(c *gin.Context) {
	productID := c.Param("product_id")

	state, err := h.service.ResetAuction(c.Request.Context(), productID, time.Now().UTC())
	if err != nil {
		code, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, code, fmt.Errorf("%s: %w", message, err), message)
		utils.Error("ResetAuctionHandler: failed to reset auction", map[string]any{"product_id": productID, "error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.NewAuctionStateResponse(state), "auction reset; bid history deleted")
	helpers.LogSuccess("ResetAuctionHandler", "auction reset", map[string]any{"product_id": productID})
}

// NotifyWinnerHandler handles POST /admin/products/:product_id/notify.
// The gate is marked before the send; if the transport fails the stamp
// stays set, so a retry of this endpoint reports "already notified"
// rather than risking a duplicate email.
func (h *AuctionHandler) NotifyWinnerHandler(c *gin.Context) {
	productID := c.Param("product_id")

	state, err := h.service.MarkNotified(c.Request.Context(), productID, time.Now().UTC())
	if err != nil {
		code, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, code, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("NotifyWinnerHandler: notification not allowed", map[string]any{"product_id": productID, "error": err.Error()})
		return
	}

	if err := h.mailer.SendWinnerEmail(c.Request.Context(), state.LeaderEmail, state.LeaderName, productID, *state.HighestAmount); err != nil {
		utils.JSONError(c, http.StatusBadGateway, err, "winner marked as notified but email delivery failed")
		utils.Error("NotifyWinnerHandler: email delivery failed", map[string]any{
			"product_id": productID,
			"to":         state.LeaderEmail,
			"error":      err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.NewAuctionStateResponse(state), "winner notified successfully")
	helpers.LogSuccess("NotifyWinnerHandler", "winner notified successfully", map[string]any{
		"product_id": productID,
		"to":         state.LeaderEmail,
		"amount":     state.HighestAmount.String(),
	})
}
