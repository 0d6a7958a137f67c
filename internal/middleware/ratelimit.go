package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimit throttles a route per client IP. Used on the login endpoints to
// slow down credential stuffing; limiters for idle IPs are dropped after an
// hour.
func RateLimit(perMinute int) gin.HandlerFunc {
	type entry struct {
		limiter  *rate.Limiter
		lastSeen time.Time
	}

	var mu sync.Mutex
	entries := map[string]*entry{}

	cleanup := func(now time.Time) {
		for ip, e := range entries {
			if now.Sub(e.lastSeen) > time.Hour {
				delete(entries, ip)
			}
		}
	}

	return func(c *gin.Context) {
		ip := c.ClientIP()
		now := time.Now()

		mu.Lock()
		e, ok := entries[ip]
		if !ok {
			e = &entry{limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), perMinute)}
			entries[ip] = e
		}
		e.lastSeen = now
		if len(entries) > 1000 {
			cleanup(now)
		}
		allowed := e.limiter.Allow()
		mu.Unlock()

		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}

		c.Next()
	}
}
