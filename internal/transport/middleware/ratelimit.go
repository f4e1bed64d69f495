package middleware

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/mkravets/polyglot-backend/internal/config"
)

// clientIdleEviction is how long a client bucket may sit untouched before
// the sweeper drops it.
const clientIdleEviction = 10 * time.Minute

// RateLimiter applies a token bucket per client IP. One limiter instance
// backs every route group it guards, so routes limited at the same rate
// also share their per-client budget.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*tokenBucket
	stop    chan struct{}
}

type tokenBucket struct {
	tokens   float64
	capacity float64
	perSec   float64
	refilled time.Time
}

// NewRateLimiter creates a limiter and starts the idle-client sweeper.
// Call Stop on shutdown.
func NewRateLimiter(sweepInterval time.Duration) *RateLimiter {
	rl := &RateLimiter{
		clients: make(map[string]*tokenBucket),
		stop:    make(chan struct{}),
	}
	go rl.sweep(sweepInterval)
	return rl
}

// Stop terminates the sweeper goroutine.
func (rl *RateLimiter) Stop() {
	close(rl.stop)
}

// Limit returns middleware enforcing cfg.RateLimitPerMinute requests per
// minute per client IP. The peer port is stripped before keying, so
// parallel connections from one host drain a single bucket.
func (rl *RateLimiter) Limit(cfg config.AdminConfig) Middleware {
	perMinute := cfg.RateLimitPerMinute
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !rl.take(clientIP(r), perMinute) {
				w.Header().Set("Retry-After", strconv.Itoa(int(60/float64(perMinute))+1))
				http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// take refills the client's bucket for the elapsed time and consumes one
// token. It reports false when the bucket is empty.
func (rl *RateLimiter) take(client string, perMinute int) bool {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	b, ok := rl.clients[client]
	if !ok {
		b = &tokenBucket{
			tokens:   float64(perMinute),
			capacity: float64(perMinute),
			perSec:   float64(perMinute) / 60,
			refilled: now,
		}
		rl.clients[client] = b
	}

	b.tokens += now.Sub(b.refilled).Seconds() * b.perSec
	if b.tokens > b.capacity {
		b.tokens = b.capacity
	}
	b.refilled = now

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

func (rl *RateLimiter) sweep(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-clientIdleEviction)
			rl.mu.Lock()
			for client, b := range rl.clients {
				if b.refilled.Before(cutoff) {
					delete(rl.clients, client)
				}
			}
			rl.mu.Unlock()
		}
	}
}

// clientIP strips the port from the peer address. A malformed address
// falls back to the raw string so the request still gets a bucket.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
