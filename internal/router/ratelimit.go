package router

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"golang.org/x/time/rate"
)

const (
	defaultRatePerSecond = 20
	// Limiters idle this long are dropped on the next new-IP lookup.
	limiterIdle = 10 * time.Minute
)

type ipLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimitMiddleware enforces a per-IP session rate with a token bucket.
// Throttled sessions get a one-line notice and are closed.
func RateLimitMiddleware(perSecond, burst int, logger *log.Logger) wish.Middleware {
	if perSecond <= 0 {
		perSecond = defaultRatePerSecond
	}
	if burst <= 0 {
		burst = perSecond
	}

	var mu sync.Mutex
	limiters := make(map[string]*ipLimiter)

	allow := func(ip string, now time.Time) bool {
		mu.Lock()
		defer mu.Unlock()

		entry, ok := limiters[ip]
		if !ok {
			for key, old := range limiters {
				if now.Sub(old.lastSeen) > limiterIdle {
					delete(limiters, key)
				}
			}
			entry = &ipLimiter{limiter: rate.NewLimiter(rate.Limit(perSecond), burst)}
			limiters[ip] = entry
		}
		entry.lastSeen = now
		return entry.limiter.AllowN(now, 1)
	}

	return func(next ssh.Handler) ssh.Handler {
		return func(s ssh.Session) {
			now := time.Now()
			ip := remoteIP(s)
			if !allow(ip, now) {
				logger.Warn("rate_limit_throttled", "remote_ip", ip)
				_, _ = s.Write([]byte("rate limit exceeded\n"))
				return
			}
			next(s)
		}
	}
}
