package server

import (
	"github.com/gin-gonic/gin"

	ledger "github.com/Beyondthell/shopify-auction-backend/internal/ledgerService"
	handler "github.com/Beyondthell/shopify-auction-backend/services/auction/handler"
)

// RouterConfig carries the surface-level settings the router needs.
type RouterConfig struct {
	AdminSecret      string
	BidRatePerMinute int
	BidRateBurst     int
}

// SetupRouter configures all Gin routes for the application
func SetupRouter(ledgerService *ledger.LedgerService, mailer handler.WinnerMailerInterface, cfg RouterConfig) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestLoggerMiddleware) // custom request logging
	router.Use(CORSMiddleware())

	auctionHandler := handler.NewAuctionHandler(ledgerService, mailer)

	limiter := NewLimiterStore(cfg.BidRatePerMinute, cfg.BidRateBurst)

	products := router.Group("/products")
	{
		products.POST("/:product_id/bids", RateLimitMiddleware(limiter), auctionHandler.PlaceBidHandler)
		products.GET("/:product_id/status", auctionHandler.GetStatusHandler)
		products.GET("/:product_id/bids", auctionHandler.ListBidsHandler)
	}

	router.POST("/register", auctionHandler.RegisterHandler)

	admin := router.Group("/admin", AdminAuthMiddleware(cfg.AdminSecret))
	{
		admin.GET("/products/:product_id/highest", auctionHandler.GetHighestHandler)
		admin.PUT("/products/:product_id/close-time", auctionHandler.SetCloseTimeHandler)
		admin.POST("/products/:product_id/reset", auctionHandler.ResetAuctionHandler)
		admin.POST("/products/:product_id/notify", auctionHandler.NotifyWinnerHandler)
	}

	return router
}
