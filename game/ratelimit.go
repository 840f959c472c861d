package game

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimitMiddleware keeps a token bucket per client IP. Clients poll the
// room endpoints, so the limit has to leave room for a heartbeat plus a
// snapshot refresh per second with some burst on top.
func RateLimitMiddleware(limit rate.Limit, burst int) gin.HandlerFunc {
	var mu sync.Mutex
	limiters := map[string]*rate.Limiter{}

	return func(ctx *gin.Context) {
		key := ctx.ClientIP()

		mu.Lock()
		limiter, ok := limiters[key]
		if !ok {
			limiter = rate.NewLimiter(limit, burst)
			limiters[key] = limiter
		}
		mu.Unlock()

		if !limiter.Allow() {
			ctx.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too-many-requests"})
			return
		}
		ctx.Next()
	}
}
