package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Beliver-247/sliit-choir-backend/pkg/security/auth"
)

// NewRateLimitMiddleware limits requests per client IP using the given
// limiter. Applied to the auth endpoints to slow brute-force attempts.
func NewRateLimitMiddleware(limiter auth.RateLimiter, scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := scope + ":" + c.ClientIP()
		allowed, remaining, resetTime, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			// Redis being down should not lock everyone out
			log.Warn("Rate limiter unavailable, allowing request", zap.Error(err))
			c.Next()
			return
		}

		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(resetTime.Unix(), 10))

		if !allowed {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"message": "too many attempts, try again later",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
