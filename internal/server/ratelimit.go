package server

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/riordanpawley/translate-ai/internal/domain"
)

// RateLimitedMessage is returned with 429 responses
const RateLimitedMessage = "rate-limit exceeded, slow down"

// ClientLimiter limits requests per client IP.
// Uses token bucket algorithm via golang.org/x/time/rate.
type ClientLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*limiterEntry
	rate      rate.Limit
	burst     int
	cleanupAt time.Time
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewClientLimiter allows perMinute requests per client with a burst of a
// tenth of that (at least one)
func NewClientLimiter(perMinute int) *ClientLimiter {
	burst := perMinute / 10
	if burst < 1 {
		burst = 1
	}
	return &ClientLimiter{
		limiters:  make(map[string]*limiterEntry),
		rate:      rate.Limit(float64(perMinute) / 60),
		burst:     burst,
		cleanupAt: time.Now().Add(5 * time.Minute),
	}
}

// Allow reports whether a request from client may proceed
func (l *ClientLimiter) Allow(client string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	// Periodic cleanup of inactive limiters
	if time.Now().After(l.cleanupAt) {
		l.cleanup()
		l.cleanupAt = time.Now().Add(5 * time.Minute)
	}

	entry, exists := l.limiters[client]
	if !exists {
		entry = &limiterEntry{limiter: rate.NewLimiter(l.rate, l.burst)}
		l.limiters[client] = entry
	}

	entry.lastSeen = time.Now()
	return entry.limiter.Allow()
}

// cleanup removes limiters unused for 10 minutes. Must be called with mu held.
func (l *ClientLimiter) cleanup() {
	cutoff := time.Now().Add(-10 * time.Minute)
	for client, entry := range l.limiters {
		if entry.lastSeen.Before(cutoff) {
			delete(l.limiters, client)
		}
	}
}

func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.limiter == nil {
			next.ServeHTTP(w, r)
			return
		}

		client := r.RemoteAddr
		if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
			client = host
		}

		if !s.limiter.Allow(client) {
			s.metrics.RateLimited.Inc()
			writeJSON(w, http.StatusTooManyRequests, domain.Response{Error: RateLimitedMessage})
			return
		}
		next.ServeHTTP(w, r)
	})
}
