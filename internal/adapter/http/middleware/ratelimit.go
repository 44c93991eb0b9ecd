package middleware

import (
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// visitor pairs a limiter with its last activity, so idle entries can
// be swept out of the map.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter enforces a per-client request rate. Clients are keyed by
// remote address; the RealIP middleware runs earlier in the chain, so
// RemoteAddr already holds the forwarded client address.
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	rate     rate.Limit
	burst    int
}

// NewRateLimiter creates a limiter allowing r requests per second with
// bursts of up to b.
func NewRateLimiter(r float64, b int) *RateLimiter {
	return &RateLimiter{
		visitors: make(map[string]*visitor),
		rate:     rate.Limit(r),
		burst:    b,
	}
}

// Limit rejects requests over the configured rate with 429.
func (rl *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.allow(r.RemoteAddr) {
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (rl *RateLimiter) allow(addr string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, ok := rl.visitors[addr]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.visitors[addr] = v
	}
	v.lastSeen = time.Now()

	return v.limiter.Allow()
}

// SweepStale drops visitors idle for longer than maxIdle. Call it
// periodically to bound the map.
func (rl *RateLimiter) SweepStale(maxIdle time.Duration) {
	cutoff := time.Now().Add(-maxIdle)

	rl.mu.Lock()
	defer rl.mu.Unlock()

	for addr, v := range rl.visitors {
		if v.lastSeen.Before(cutoff) {
			delete(rl.visitors, addr)
		}
	}
}
