package handlers

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func (h *Handler) userIdMiddleware(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "missing Authorization header",
		})
		return
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid Authorization header format",
		})
		return
	}

	userId, err := h.services.ParseToken(parts[1])
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid or expired token",
		})
		return
	}

	// store in Gin context
	c.Set("userId", userId)
	c.Next()
}

func (h *Handler) rateLimitMiddleware(c *gin.Context) {
	if h.limiter == nil {
		c.Next()
		return
	}
	if !h.limiter.allow(c.ClientIP()) {
		if h.log != nil {
			h.log.Infow("rate_limited", "client_ip", c.ClientIP(), "path", c.FullPath())
		}
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"error": errRateLimited,
		})
		return
	}
	c.Next()
}

const errRateLimited = "rate limit exceeded"

const (
	limiterIdleTTL   = 10 * time.Minute
	limiterSweepSize = 1024
)

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// clientLimiter keeps one token bucket per client key.
type clientLimiter struct {
	mu      sync.Mutex
	rps     rate.Limit
	burst   int
	clients map[string]*limiterEntry
	now     func() time.Time
}

func newClientLimiter(rps float64, burst int) *clientLimiter {
	if burst < 1 {
		burst = 1
	}
	return &clientLimiter{
		rps:     rate.Limit(rps),
		burst:   burst,
		clients: make(map[string]*limiterEntry),
		now:     time.Now,
	}
}

func (l *clientLimiter) allow(key string) bool {
	if l == nil {
		return true
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if len(l.clients) >= limiterSweepSize {
		for k, e := range l.clients {
			if now.Sub(e.lastSeen) > limiterIdleTTL {
				delete(l.clients, k)
			}
		}
	}

	e, ok := l.clients[key]
	if !ok {
		e = &limiterEntry{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.clients[key] = e
	}
	e.lastSeen = now
	return e.limiter.AllowN(now, 1)
}
