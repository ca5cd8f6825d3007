package ratelimit

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hanifadr/engagemeter/internal/errors"
	"github.com/hanifadr/engagemeter/internal/monitoring"
)

// Middleware enforces the per-IP limit on every request
func Middleware(rl *RateLimiter, metrics *monitoring.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		result := rl.Allow(c.Request.Context(), c.ClientIP())

		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.config.RequestsPerMin))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))

		if !result.Allowed {
			metrics.IncrementRateLimitBlock()
			c.Header("Retry-After", result.RetryAfter.String())
			appErr := errors.NewRateLimitError(result.RetryAfter.String())
			c.JSON(appErr.HTTPStatus, appErr)
			c.Abort()
			return
		}

		c.Next()
	}
}
