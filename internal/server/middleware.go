package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ppiankov/copycop/internal/worker"
)

// RateLimitByIP rejects clients that exceed their token bucket with 429
func RateLimitByIP(limiter *worker.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow(c.ClientIP()) {
			c.Header("Retry-After", "1")
			errorJSON(c, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		c.Next()
	}
}

// MaxBody caps request bodies; a non-positive limit disables the cap
func MaxBody(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limit > 0 {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		}
		c.Next()
	}
}
