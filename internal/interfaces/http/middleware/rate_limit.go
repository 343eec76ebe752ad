package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	domainerrors "complianceconnect.backend/internal/domain/errors"
	"complianceconnect.backend/internal/interfaces/http/response"
)

const limiterIdleTTL = 10 * time.Minute

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ipLimiter hands each client IP its own token bucket and forgets idle IPs.
type ipLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientLimiter
	rps     rate.Limit
	burst   int
	now     func() time.Time
	sweptAt time.Time
}

func newIPLimiter(rps float64, burst int) *ipLimiter {
	return &ipLimiter{
		clients: make(map[string]*clientLimiter),
		rps:     rate.Limit(rps),
		burst:   burst,
		now:     time.Now,
	}
}

func (l *ipLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.sweptAt) > limiterIdleTTL {
		for k, v := range l.clients {
			if now.Sub(v.lastSeen) > limiterIdleTTL {
				delete(l.clients, k)
			}
		}
		l.sweptAt = now
	}

	cl, ok := l.clients[ip]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.clients[ip] = cl
	}
	cl.lastSeen = now
	return cl.limiter.AllowN(now, 1)
}

// RateLimit answers 429 once a client IP exceeds rps with the given burst.
func RateLimit(rps float64, burst int) gin.HandlerFunc {
	l := newIPLimiter(rps, burst)
	return func(c *gin.Context) {
		if !l.allow(c.ClientIP()) {
			c.Header("Retry-After", "1")
			response.Error(c, domainerrors.NewAppError(429, "Too many requests", nil))
			return
		}
		c.Next()
	}
}
