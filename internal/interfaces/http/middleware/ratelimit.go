package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"reldesk/internal/infrastructure/ratelimit"
	"reldesk/internal/shared/utils"
)

// RateLimit returns a Gin middleware that enforces the per-IP request limit
// through the configured limiter backend. A limiter failure lets the request
// through, an unreachable backend must not take the API down with it.
func RateLimit(limiter ratelimit.RateLimiter, requestsPerMinute int) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, err := limiter.Allow(c.ClientIP(), ratelimit.RateLimitConfig{
			RequestsPerMinute: requestsPerMinute,
		})
		if err != nil {
			c.Next()
			return
		}

		if !allowed {
			utils.ErrorResponse(c, http.StatusTooManyRequests, "rate limit exceeded, please try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}
