package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/daycare-scheduler/internal/httperr"
	"github.com/BruksfildServices01/daycare-scheduler/internal/ratelimit"
)

// RateLimit keys the limiter by route and client IP. A nil limiter lets
// every request through.
func RateLimit(l ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if l == nil {
			c.Next()
			return
		}

		key := c.FullPath() + ":" + c.ClientIP()
		if !l.Allow(c.Request.Context(), key) {
			httperr.Abort(c, httperr.New(httperr.KindRateLimited, "too many requests, try again later"))
			return
		}
		c.Next()
	}
}
