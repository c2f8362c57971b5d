package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/verifydream/Sistem-Inventaris-Aset-JKT/internal/rate_limiter"
)

// RateLimitMiddleware rejects requests over the caller's window budget with
// 429. The remaining budget is surfaced in X-RateLimit-Remaining either way.
func RateLimitMiddleware(limiter *rate_limiter.RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := c.ClientIP()

		if !limiter.IsAllowed(clientIP) {
			c.Header("X-RateLimit-Remaining", "0")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many requests, try again later",
			})
			return
		}

		c.Header("X-RateLimit-Remaining", strconv.Itoa(limiter.GetRemainingRequests(clientIP)))
		c.Next()
	}
}
