package server

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Beyondthell/shopify-auction-backend/utils"
)

// adminSecretHeader carries the shared admin secret.
const adminSecretHeader = "X-Admin-Secret"

// RequestLoggerMiddleware logs incoming requests with timing
func RequestLoggerMiddleware(c *gin.Context) {
	start := time.Now()

	c.Next() // process request

	utils.Info("HTTP Request", map[string]any{
		"method":  c.Request.Method,
		"path":    c.Request.URL.Path,
		"status":  c.Writer.Status(),
		"latency": time.Since(start).String(),
	})
}

// AdminAuthMiddleware rejects requests whose shared-secret header does
// not match. The comparison is constant-time. An empty configured secret
// disables the admin surface entirely rather than leaving it open.
func AdminAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		provided := c.GetHeader(adminSecretHeader)
		if secret == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(secret)) != 1 {
			utils.Warn("admin auth failed", map[string]any{
				"path": c.Request.URL.Path,
				"ip":   c.ClientIP(),
			})
			utils.JSONError(c, http.StatusUnauthorized, errUnauthorized, "unauthorized")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RateLimitMiddleware throttles a route per client IP.
func RateLimitMiddleware(store *LimiterStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !store.Allow(c.ClientIP()) {
			utils.Warn("rate limit exceeded", map[string]any{
				"path": c.Request.URL.Path,
				"ip":   c.ClientIP(),
			})
			utils.JSONError(c, http.StatusTooManyRequests, errRateLimited, "too many requests")
			c.Abort()
			return
		}
		c.Next()
	}
}

// CORSMiddleware allows browser clients from any origin; the admin
// surface is still guarded by the shared secret.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, "+adminSecretHeader)

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
