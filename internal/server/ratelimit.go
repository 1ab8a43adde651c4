package server

import (
	"errors"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

var (
	errUnauthorized = errors.New("invalid or missing admin secret")
	errRateLimited  = errors.New("rate limit exceeded")
)

// staleAfter is how long an idle client entry survives before cleanup.
const staleAfter = 10 * time.Minute

// LimiterStore maintains per-client rate limiters and evicts idle ones.
type LimiterStore struct {
	mu      sync.Mutex
	limit   rate.Limit
	burst   int
	clients map[string]*clientEntry
}

type clientEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewLimiterStore creates a store allowing limitPerMinute events per
// minute per client with the given burst capacity.
func NewLimiterStore(limitPerMinute, burst int) *LimiterStore {
	if limitPerMinute <= 0 {
		limitPerMinute = 60
	}
	if burst <= 0 {
		burst = 1
	}
	return &LimiterStore{
		limit:   rate.Every(time.Minute / time.Duration(limitPerMinute)),
		burst:   burst,
		clients: map[string]*clientEntry{},
	}
}

// Allow reports whether the client may proceed, charging one event.
// Idle entries are swept opportunistically on the same lock.
func (s *LimiterStore) Allow(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	e, ok := s.clients[key]
	if !ok {
		cutoff := now.Add(-staleAfter)
		for k, v := range s.clients {
			if v.lastSeen.Before(cutoff) {
				delete(s.clients, k)
			}
		}
		e = &clientEntry{limiter: rate.NewLimiter(s.limit, s.burst)}
		s.clients[key] = e
	}
	e.lastSeen = now
	return e.limiter.Allow()
}
