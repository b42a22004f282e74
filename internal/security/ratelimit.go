package security

import (
	"sync"
	"time"
)

// Limiter caps upload staging across all clients with a sliding window.
// Counting is global on purpose: the service keeps no per-IP state.
type Limiter struct {
	mu     sync.Mutex
	window time.Duration
	max    int
	hits   []time.Time
}

func NewLimiter(max int, window time.Duration) *Limiter {
	return &Limiter{window: window, max: max}
}

// Allow records one request and reports whether it fits inside the window.
func (l *Limiter) Allow() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := time.Now().Add(-l.window)
	kept := 0
	for _, ts := range l.hits {
		if ts.After(cutoff) {
			l.hits[kept] = ts
			kept++
		}
	}
	l.hits = l.hits[:kept]

	if len(l.hits) >= l.max {
		return false
	}
	l.hits = append(l.hits, time.Now())
	return true
}
