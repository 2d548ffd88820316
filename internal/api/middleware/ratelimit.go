package middleware

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/Rrens/weather-advisor/internal/api/response"
	"golang.org/x/time/rate"
)

// Limiter decides whether a request under a key may proceed.
// Implemented by the Redis-backed limiter and by LocalLimiter.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, int, time.Time, error)
}

// RateLimitMiddleware handles rate limiting keyed by client IP
type RateLimitMiddleware struct {
	limiter Limiter
}

// NewRateLimitMiddleware creates a new rate limit middleware
func NewRateLimitMiddleware(limiter Limiter) *RateLimitMiddleware {
	return &RateLimitMiddleware{limiter: limiter}
}

// Limit applies rate limiting based on the client IP
func (m *RateLimitMiddleware) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := clientIP(r)

		allowed, remaining, resetTime, err := m.limiter.Allow(r.Context(), key)
		if err != nil {
			// If the limiter fails, allow the request rather than
			// blocking all traffic.
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
		w.Header().Set("X-RateLimit-Reset", resetTime.Format(time.RFC3339))

		if !allowed {
			response.Error(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

// LocalLimiter is the in-process fallback used when Redis is not
// configured. One token bucket per key.
type LocalLimiter struct {
	mu       sync.Mutex
	buckets  map[string]*rate.Limiter
	perMin   int
	burst    int
	lastSeen map[string]time.Time
}

// NewLocalLimiter creates an in-process per-key limiter
func NewLocalLimiter(requestsPerMinute, burst int) *LocalLimiter {
	return &LocalLimiter{
		buckets:  make(map[string]*rate.Limiter),
		lastSeen: make(map[string]time.Time),
		perMin:   requestsPerMinute,
		burst:    burst,
	}
}

// Allow implements Limiter using a token bucket per key.
func (l *LocalLimiter) Allow(ctx context.Context, key string) (bool, int, time.Time, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	bucket, ok := l.buckets[key]
	if !ok {
		bucket = rate.NewLimiter(rate.Limit(float64(l.perMin)/60.0), l.burst)
		l.buckets[key] = bucket
	}
	l.lastSeen[key] = time.Now()
	l.evictStale()

	allowed := bucket.Allow()
	remaining := int(bucket.Tokens())
	if remaining < 0 {
		remaining = 0
	}

	return allowed, remaining, time.Now().Add(time.Minute), nil
}

// evictStale drops buckets idle for over an hour. Called with the lock
// held.
func (l *LocalLimiter) evictStale() {
	cutoff := time.Now().Add(-time.Hour)
	for key, seen := range l.lastSeen {
		if seen.Before(cutoff) {
			delete(l.lastSeen, key)
			delete(l.buckets, key)
		}
	}
}
