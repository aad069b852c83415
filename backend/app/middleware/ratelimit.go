package middleware

import (
	"net"
	"net/http"
	"sync"

	"golang.org/x/time/rate"

	"team-attendance/backend/app/apperr"
)

// RateLimiter hands out one token bucket per client IP. Used on the auth
// routes, which are the only unauthenticated mutating surface.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*rate.Limiter
	rps     rate.Limit
	burst   int
}

func NewRateLimiter(rps float64, burst int) *RateLimiter {
	return &RateLimiter{
		clients: make(map[string]*rate.Limiter),
		rps:     rate.Limit(rps),
		burst:   burst,
	}
}

func (rl *RateLimiter) limiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	l, ok := rl.clients[key]
	if !ok {
		l = rate.NewLimiter(rl.rps, rl.burst)
		rl.clients[key] = l
	}
	return l
}

func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		host, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			host = r.RemoteAddr
		}
		if !rl.limiter(host).Allow() {
			apperr.Write(w, r, &apperr.Error{Status: http.StatusTooManyRequests, Message: "Too many requests"})
			return
		}
		next.ServeHTTP(w, r)
	})
}
