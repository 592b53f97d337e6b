package middleware

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"afrieats_backend/internal/kvstore"
)

const (
	// Payment creation is the endpoint card testers hammer.
	PaymentMaxAttempts = 10
	PaymentWindow      = 1 * time.Minute

	CartMaxAdds = 20
	CartWindow  = 1 * time.Minute
)

// PaymentRateLimit caps payment-creation attempts per client IP. If
// the counter store is down the request goes through; rate limiting
// never takes checkout offline.
func PaymentRateLimit(kv kvstore.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "ratelimit:payment:" + c.ClientIP()

		count, err := kv.Incr(c.Request.Context(), key, PaymentWindow)
		if err != nil {
			log.Printf("⚠️ Rate limit counter unavailable: %v", err)
			c.Next()
			return
		}
		if count > PaymentMaxAttempts {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "too many payment attempts, try again in a minute",
				"retry_after": int(PaymentWindow.Seconds()),
			})
			c.Abort()
			return
		}

		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", PaymentMaxAttempts))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", PaymentMaxAttempts-count))
		c.Next()
	}
}

// CartRateLimit caps cart mutations per session (anti-spam).
func CartRateLimit(kv kvstore.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetHeader("X-Session-ID")
		if sessionID == "" {
			c.Next()
			return
		}

		key := "ratelimit:cart:" + sessionID
		count, err := kv.Incr(c.Request.Context(), key, CartWindow)
		if err != nil {
			c.Next()
			return
		}
		if count > CartMaxAdds {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "too many cart updates, slow down a little",
				"retry_after": int(CartWindow.Seconds()),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
