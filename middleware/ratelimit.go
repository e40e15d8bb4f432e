package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"agency-site-server/logger"
	"agency-site-server/response"
)

// RateLimiter stores token buckets per route and client IP
type RateLimiter struct {
	limiters map[string]*rate.Limiter
	lastSeen map[string]time.Time
	mutex    sync.Mutex
}

// NewRateLimiter creates a new rate limiter
func NewRateLimiter() *RateLimiter {
	return &RateLimiter{
		limiters: make(map[string]*rate.Limiter),
		lastSeen: make(map[string]time.Time),
	}
}

// GetLimiter returns the bucket for key, creating it with the given limits
func (rl *RateLimiter) GetLimiter(key string, limit rate.Limit, burst int) *rate.Limiter {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	limiter, exists := rl.limiters[key]
	if !exists {
		limiter = rate.NewLimiter(limit, burst)
		rl.limiters[key] = limiter
	}
	rl.lastSeen[key] = time.Now()
	return limiter
}

// Cleanup removes buckets idle for longer than idle and reports how many went
func (rl *RateLimiter) Cleanup(idle time.Duration) int {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	removed := 0
	now := time.Now()
	for key, t := range rl.lastSeen {
		if now.Sub(t) > idle {
			delete(rl.limiters, key)
			delete(rl.lastSeen, key)
			removed++
		}
	}
	return removed
}

// Len is the number of live buckets
func (rl *RateLimiter) Len() int {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()
	return len(rl.limiters)
}

// RateLimit allows burst requests per route and IP, refilled at limit
func RateLimit(rl *RateLimiter, limit rate.Limit, burst int) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.FullPath()
		clientIP := c.ClientIP()

		if !rl.GetLimiter(path+"|"+clientIP, limit, burst).Allow() {
			logger.Warn().Str("method", c.Request.Method).Str("path", path).Str("ip", clientIP).Msg("Rate limit exceeded")
			c.Header("Retry-After", "60")
			response.Error(c, &response.AppError{
				HTTPStatus: http.StatusTooManyRequests,
				Message:    "Too many requests. Please try again later.",
			})
			return
		}

		c.Next()
	}
}
