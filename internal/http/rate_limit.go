package httpapi

import (
	"net"
	"net/http"
	"sync"
	"time"
)

type rateBucket struct {
	windowStart time.Time
	count       int
}

// authRateLimiter is a fixed-window counter per client IP.
type authRateLimiter struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	now     func() time.Time
	buckets map[string]rateBucket
}

func newAuthRateLimiter(limit int, window time.Duration) *authRateLimiter {
	return &authRateLimiter{
		limit:   limit,
		window:  window,
		now:     time.Now,
		buckets: map[string]rateBucket{},
	}
}

func (r *authRateLimiter) Allow(ip string) bool {
	now := r.now()
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, bucket := range r.buckets {
		if now.Sub(bucket.windowStart) >= r.window {
			delete(r.buckets, key)
		}
	}
	bucket, ok := r.buckets[ip]
	if !ok {
		r.buckets[ip] = rateBucket{windowStart: now, count: 1}
		return true
	}
	if bucket.count >= r.limit {
		return false
	}
	bucket.count++
	r.buckets[ip] = bucket
	return true
}

func withAuthRateLimit(next http.Handler, limiter *authRateLimiter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		host, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			host = r.RemoteAddr
		}
		if !limiter.Allow(host) {
			jsonError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}
