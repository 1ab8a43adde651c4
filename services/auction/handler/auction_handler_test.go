package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/Beyondthell/shopify-auction-backend/internal/auctionerrors"
	model "github.com/Beyondthell/shopify-auction-backend/internal/models"
)

func newTestRouter(t *testing.T) (*gin.Engine, *MockAuctionLedgerInterface, *MockWinnerMailerInterface) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockService := NewMockAuctionLedgerInterface(ctrl)
	mockMailer := NewMockWinnerMailerInterface(ctrl)
	h := NewAuctionHandler(mockService, mockMailer)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/products/:product_id/bids", h.PlaceBidHandler)
	router.GET("/products/:product_id/status", h.GetStatusHandler)
	router.GET("/products/:product_id/bids", h.ListBidsHandler)
	router.POST("/register", h.RegisterHandler)
	router.GET("/admin/products/:product_id/highest", h.GetHighestHandler)
	router.PUT("/admin/products/:product_id/close-time", h.SetCloseTimeHandler)
	router.POST("/admin/products/:product_id/reset", h.ResetAuctionHandler)
	router.POST("/admin/products/:product_id/notify", h.NotifyWinnerHandler)

	return router, mockService, mockMailer
}

func doJSON(t *testing.T, router *gin.Engine, method, url string, body any) (map[string]any, *httptest.ResponseRecorder) {
	t.Helper()

	var reqBody []byte
	switch v := body.(type) {
	case nil:
	case string:
		reqBody = []byte(v)
	default:
		var err error
		reqBody, err = json.Marshal(v)
		require.NoError(t, err)
	}

	req := httptest.NewRequest(method, url, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp map[string]any
	if len(w.Body.Bytes()) > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return resp, w
}

func winnerState(t0 time.Time) model.AuctionState {
	amount := decimal.NewFromInt(15)
	notified := t0
	return model.AuctionState{
		ProductID:     "p1",
		HighestAmount: &amount,
		LeaderName:    "B",
		LeaderEmail:   "b@x.com",
		LastUpdatedAt: t0,
		NotifiedAt:    &notified,
		Version:       3,
	}
}

// Test PlaceBidHandler
func TestPlaceBidHandler(t *testing.T) {
	t0 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		requestBody    any
		mockSetup      func(mockService *MockAuctionLedgerInterface)
		expectedStatus int
		expectedMsg    string
		validateData   func(t *testing.T, data map[string]any)
	}{
		{
			name:        "success_valid_bid",
			requestBody: map[string]any{"bidder_email": "a@x.com", "bidder_name": "A", "amount": "10"},
			mockSetup: func(mockService *MockAuctionLedgerInterface) {
				mockService.EXPECT().
					PlaceBid(gomock.Any(), "p1", "a@x.com", "A", gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, productID, email, name string, amount decimal.Decimal, now time.Time) (model.AuctionStatus, error) {
						require.True(t, amount.Equal(decimal.NewFromInt(10)))
						state := model.NewAuctionState(productID)
						state.HighestAmount = &amount
						state.LeaderName = name
						state.LeaderEmail = email
						state.LastUpdatedAt = t0
						state.Version = 1
						return state.StatusAt(now), nil
					})
			},
			expectedStatus: http.StatusCreated,
			expectedMsg:    "bid placed successfully",
			validateData: func(t *testing.T, data map[string]any) {
				require.Equal(t, "p1", data["product_id"])
				require.Equal(t, "10", data["highest_amount"])
				require.Equal(t, "A", data["leader_name"])
				require.Equal(t, false, data["auction_ended"])
			},
		},
		{
			name:           "invalid_json",
			requestBody:    `{invalid json}`,
			mockSetup:      func(*MockAuctionLedgerInterface) {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "invalid request payload",
		},
		{
			name:           "missing_bidder_email",
			requestBody:    map[string]any{"bidder_name": "A", "amount": "10"},
			mockSetup:      func(*MockAuctionLedgerInterface) {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "invalid request payload",
		},
		{
			name:           "malformed_email",
			requestBody:    map[string]any{"bidder_email": "not-an-email", "bidder_name": "A", "amount": "10"},
			mockSetup:      func(*MockAuctionLedgerInterface) {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "invalid request payload",
		},
		{
			name:           "missing_amount",
			requestBody:    map[string]any{"bidder_email": "a@x.com", "bidder_name": "A"},
			mockSetup:      func(*MockAuctionLedgerInterface) {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "invalid request payload",
		},
		{
			name:        "service_bid_too_low",
			requestBody: map[string]any{"bidder_email": "a@x.com", "bidder_name": "A", "amount": "5"},
			mockSetup: func(mockService *MockAuctionLedgerInterface) {
				mockService.EXPECT().
					PlaceBid(gomock.Any(), "p1", "a@x.com", "A", gomock.Any(), gomock.Any()).
					Return(model.AuctionStatus{}, auctionerrors.ErrBidTooLow)
			},
			expectedStatus: http.StatusConflict,
			expectedMsg:    "bid amount too low",
		},
		{
			name:        "service_auction_closed",
			requestBody: map[string]any{"bidder_email": "a@x.com", "bidder_name": "A", "amount": "20"},
			mockSetup: func(mockService *MockAuctionLedgerInterface) {
				mockService.EXPECT().
					PlaceBid(gomock.Any(), "p1", "a@x.com", "A", gomock.Any(), gomock.Any()).
					Return(model.AuctionStatus{}, auctionerrors.ErrAuctionClosed)
			},
			expectedStatus: http.StatusConflict,
			expectedMsg:    "auction closed",
		},
		{
			name:        "service_generic_error",
			requestBody: map[string]any{"bidder_email": "a@x.com", "bidder_name": "A", "amount": "20"},
			mockSetup: func(mockService *MockAuctionLedgerInterface) {
				mockService.EXPECT().
					PlaceBid(gomock.Any(), "p1", "a@x.com", "A", gomock.Any(), gomock.Any()).
					Return(model.AuctionStatus{}, errors.New("storage offline"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedMsg:    "internal server error",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			router, mockService, _ := newTestRouter(t)
			tc.mockSetup(mockService)

			resp, w := doJSON(t, router, http.MethodPost, "/products/p1/bids", tc.requestBody)
			require.Equal(t, tc.expectedStatus, w.Code)
			require.Equal(t, tc.expectedMsg, resp["message"])

			if tc.validateData != nil {
				tc.validateData(t, resp["data"].(map[string]any))
			}
		})
	}
}

// Test GetStatusHandler
func TestGetStatusHandler(t *testing.T) {
	t0 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	router, mockService, _ := newTestRouter(t)

	state := model.NewAuctionState("p1")
	closeTime := t0.Add(time.Hour)
	state.CloseTime = &closeTime
	state.LastUpdatedAt = t0
	mockService.EXPECT().
		GetStatus(gomock.Any(), "p1", gomock.Any()).
		Return(model.AuctionStatus{AuctionState: state, AuctionEnded: true}, nil)

	resp, w := doJSON(t, router, http.MethodGet, "/products/p1/status", nil)
	require.Equal(t, http.StatusOK, w.Code)

	data := resp["data"].(map[string]any)
	require.Equal(t, "p1", data["product_id"])
	require.Equal(t, true, data["auction_ended"])
	require.Equal(t, closeTime.Format(time.RFC3339), data["close_time"])
	_, hasHighest := data["highest_amount"]
	require.False(t, hasHighest, "no-bid state must omit highest_amount")
}

// Test ListBidsHandler
func TestListBidsHandler(t *testing.T) {
	t0 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("with_bids", func(t *testing.T) {
		router, mockService, _ := newTestRouter(t)
		mockService.EXPECT().ListBids(gomock.Any(), "p1").Return([]model.Bid{
			{BidID: "bid1", ProductID: "p1", BidderEmail: "a@x.com", BidderName: "A", Amount: decimal.NewFromInt(10), SubmittedAt: t0},
		}, nil)

		resp, w := doJSON(t, router, http.MethodGet, "/products/p1/bids", nil)
		require.Equal(t, http.StatusOK, w.Code)

		bids := resp["data"].([]any)
		require.Len(t, bids, 1)
		bid := bids[0].(map[string]any)
		require.Equal(t, "10", bid["amount"])
		require.Equal(t, "a@x.com", bid["bidder_email"])
	})

	t.Run("empty_history", func(t *testing.T) {
		router, mockService, _ := newTestRouter(t)
		mockService.EXPECT().ListBids(gomock.Any(), "p1").Return(nil, nil)

		resp, w := doJSON(t, router, http.MethodGet, "/products/p1/bids", nil)
		require.Equal(t, http.StatusOK, w.Code)
		require.Len(t, resp["data"].([]any), 0)
	})
}

// Test RegisterHandler: accepted, nothing persisted, so no service calls.
func TestRegisterHandler(t *testing.T) {
	t.Run("accepted", func(t *testing.T) {
		router, _, _ := newTestRouter(t)
		resp, w := doJSON(t, router, http.MethodPost, "/register", map[string]any{"email": "a@x.com"})
		require.Equal(t, http.StatusAccepted, w.Code)
		require.Equal(t, "registration accepted", resp["message"])
	})

	t.Run("invalid_email", func(t *testing.T) {
		router, _, _ := newTestRouter(t)
		_, w := doJSON(t, router, http.MethodPost, "/register", map[string]any{"email": "nope"})
		require.Equal(t, http.StatusBadRequest, w.Code)
	})
}

// Test SetCloseTimeHandler
func TestSetCloseTimeHandler(t *testing.T) {
	t0 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	closeTime := t0.Add(time.Hour)

	t.Run("success", func(t *testing.T) {
		router, mockService, _ := newTestRouter(t)

		state := model.NewAuctionState("p1")
		state.CloseTime = &closeTime
		state.LastUpdatedAt = t0
		state.Version = 1
		mockService.EXPECT().
			SetCloseTime(gomock.Any(), "p1", closeTime, gomock.Any()).
			Return(state, nil)

		resp, w := doJSON(t, router, http.MethodPut, "/admin/products/p1/close-time",
			map[string]any{"close_time": closeTime.Format(time.RFC3339)})
		require.Equal(t, http.StatusOK, w.Code)

		data := resp["data"].(map[string]any)
		require.Equal(t, closeTime.Format(time.RFC3339), data["close_time"])
	})

	t.Run("unparseable_close_time", func(t *testing.T) {
		router, _, _ := newTestRouter(t)
		resp, w := doJSON(t, router, http.MethodPut, "/admin/products/p1/close-time",
			map[string]any{"close_time": "next tuesday"})
		require.Equal(t, http.StatusBadRequest, w.Code)
		require.Equal(t, "invalid close time", resp["message"])
	})

	t.Run("missing_close_time", func(t *testing.T) {
		router, _, _ := newTestRouter(t)
		_, w := doJSON(t, router, http.MethodPut, "/admin/products/p1/close-time", map[string]any{})
		require.Equal(t, http.StatusBadRequest, w.Code)
	})
}

// Test ResetAuctionHandler
func TestResetAuctionHandler(t *testing.T) {
	t0 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	router, mockService, _ := newTestRouter(t)

	state := model.NewAuctionState("p1")
	state.LastUpdatedAt = t0
	state.Version = 5
	mockService.EXPECT().ResetAuction(gomock.Any(), "p1", gomock.Any()).Return(state, nil)

	resp, w := doJSON(t, router, http.MethodPost, "/admin/products/p1/reset", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "auction reset; bid history deleted", resp["message"])

	data := resp["data"].(map[string]any)
	_, hasHighest := data["highest_amount"]
	require.False(t, hasHighest)
}

// Test GetHighestHandler
func TestGetHighestHandler(t *testing.T) {
	t0 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	router, mockService, _ := newTestRouter(t)
	mockService.EXPECT().GetHighest(gomock.Any(), "p1").Return(winnerState(t0), nil)

	resp, w := doJSON(t, router, http.MethodGet, "/admin/products/p1/highest", nil)
	require.Equal(t, http.StatusOK, w.Code)

	data := resp["data"].(map[string]any)
	require.Equal(t, "15", data["highest_amount"])
	require.Equal(t, "b@x.com", data["leader_email"])
	require.Equal(t, t0.Format(time.RFC3339), data["notified_at"])
	_, hasEnded := data["auction_ended"]
	require.False(t, hasEnded, "admin view carries no derived ended flag")
}

// Test NotifyWinnerHandler
func TestNotifyWinnerHandler(t *testing.T) {
	t0 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("success_sends_one_email", func(t *testing.T) {
		router, mockService, mockMailer := newTestRouter(t)

		state := winnerState(t0)
		gomock.InOrder(
			mockService.EXPECT().MarkNotified(gomock.Any(), "p1", gomock.Any()).Return(state, nil),
			mockMailer.EXPECT().SendWinnerEmail(gomock.Any(), "b@x.com", "B", "p1", gomock.Any()).Return(nil),
		)

		resp, w := doJSON(t, router, http.MethodPost, "/admin/products/p1/notify", nil)
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "winner notified successfully", resp["message"])
	})

	t.Run("mail_failure_keeps_gate_marked", func(t *testing.T) {
		router, mockService, mockMailer := newTestRouter(t)

		gomock.InOrder(
			mockService.EXPECT().MarkNotified(gomock.Any(), "p1", gomock.Any()).Return(winnerState(t0), nil),
			mockMailer.EXPECT().SendWinnerEmail(gomock.Any(), "b@x.com", "B", "p1", gomock.Any()).Return(errors.New("smtp: connection refused")),
		)

		resp, w := doJSON(t, router, http.MethodPost, "/admin/products/p1/notify", nil)
		require.Equal(t, http.StatusBadGateway, w.Code)
		require.Equal(t, "winner marked as notified but email delivery failed", resp["message"])
	})

	t.Run("already_notified_never_sends", func(t *testing.T) {
		router, mockService, _ := newTestRouter(t)
		mockService.EXPECT().MarkNotified(gomock.Any(), "p1", gomock.Any()).
			Return(model.AuctionState{}, auctionerrors.ErrAlreadyNotified)

		resp, w := doJSON(t, router, http.MethodPost, "/admin/products/p1/notify", nil)
		require.Equal(t, http.StatusConflict, w.Code)
		require.Equal(t, "winner already notified", resp["message"])
	})

	t.Run("no_winner", func(t *testing.T) {
		router, mockService, _ := newTestRouter(t)
		mockService.EXPECT().MarkNotified(gomock.Any(), "p1", gomock.Any()).
			Return(model.AuctionState{}, auctionerrors.ErrNoWinner)

		resp, w := doJSON(t, router, http.MethodPost, "/admin/products/p1/notify", nil)
		require.Equal(t, http.StatusNotFound, w.Code)
		require.Equal(t, "no winner to notify", resp["message"])
	})
}
