package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"deckbuilder/metrics"

	"github.com/gin-gonic/gin"
)

// RateLimiter is a per client IP token bucket refilled every interval
type RateLimiter struct {
	name     string
	visitors map[string]*Visitor
	mu       sync.Mutex
	rate     int           // Tokens added per interval
	burst    int           // Burst capacity
	interval time.Duration // Refill interval
}

type Visitor struct {
	tokens      int
	lastUpdated time.Time
}

var (
	limitersMu sync.Mutex
	limiters   []*RateLimiter
)

func NewRateLimiter(name string, rate int, burst int) *RateLimiter {
	rl := &RateLimiter{
		name:     name,
		visitors: make(map[string]*Visitor),
		rate:     rate,
		burst:    burst,
		interval: time.Minute,
	}
	limitersMu.Lock()
	limiters = append(limiters, rl)
	limitersMu.Unlock()
	return rl
}

func (rl *RateLimiter) Allow(ip string) bool {
	return rl.allowAt(ip, time.Now())
}

func (rl *RateLimiter) allowAt(ip string, now time.Time) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	visitor, exists := rl.visitors[ip]
	if !exists {
		visitor = &Visitor{tokens: rl.burst, lastUpdated: now}
		rl.visitors[ip] = visitor
	}

	// Refill tokens
	elapsed := now.Sub(visitor.lastUpdated)
	refill := int(elapsed / rl.interval)
	if refill > 0 {
		visitor.tokens += refill * rl.rate
		if visitor.tokens > rl.burst {
			visitor.tokens = rl.burst
		}
		visitor.lastUpdated = visitor.lastUpdated.Add(time.Duration(refill) * rl.interval)
	}

	if visitor.tokens > 0 {
		visitor.tokens--
		return true
	}
	return false
}

// Cleanup forgets visitors idle for longer than maxIdle
func (rl *RateLimiter) Cleanup(maxIdle time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := time.Now().Add(-maxIdle)
	for ip, v := range rl.visitors {
		if v.lastUpdated.Before(cutoff) {
			delete(rl.visitors, ip)
		}
	}
}

// CleanupRateLimiters periodically drops idle visitors from every limiter until ctx is done
func CleanupRateLimiters(ctx context.Context, every, maxIdle time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			limitersMu.Lock()
			all := append([]*RateLimiter(nil), limiters...)
			limitersMu.Unlock()
			for _, rl := range all {
				rl.Cleanup(maxIdle)
			}
		}
	}
}

func RateLimiterMiddleware(rl *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.Allow(c.ClientIP()) {
			metrics.RateLimiterRejections.WithLabelValues(rl.name).Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many requests. Please try again later.",
			})
			return
		}
		c.Next()
	}
}
