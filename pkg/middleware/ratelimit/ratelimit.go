package ratelimit

import (
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"github.com/Skotchmaster/ecommerce_hub/pkg/logging"
)

type bucket struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// PerIP is a token bucket per client address. Buckets idle for longer than
// idleTTL are dropped on the next request.
type PerIP struct {
	rps     rate.Limit
	burst   int
	idleTTL time.Duration

	mu        sync.Mutex
	buckets   map[string]*bucket
	lastSweep time.Time
	now       func() time.Time
}

func NewPerIP(rps float64, burst int) *PerIP {
	return &PerIP{
		rps:     rate.Limit(rps),
		burst:   burst,
		idleTTL: 10 * time.Minute,
		buckets: make(map[string]*bucket),
		now:     time.Now,
	}
}

func (p *PerIP) allow(ip string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.now()
	if now.Sub(p.lastSweep) > p.idleTTL {
		for k, b := range p.buckets {
			if now.Sub(b.lastSeen) > p.idleTTL {
				delete(p.buckets, k)
			}
		}
		p.lastSweep = now
	}

	b, ok := p.buckets[ip]
	if !ok {
		b = &bucket{lim: rate.NewLimiter(p.rps, p.burst)}
		p.buckets[ip] = b
	}
	b.lastSeen = now
	return b.lim.AllowN(now, 1)
}

func (p *PerIP) Middleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ip := c.RealIP()
		if p.allow(ip) {
			return next(c)
		}
		logging.FromContext(c.Request().Context()).Warn("rate_limited", "remote_ip", ip, "path", c.Path())
		return echo.NewHTTPError(http.StatusTooManyRequests, "too many requests")
	}
}
