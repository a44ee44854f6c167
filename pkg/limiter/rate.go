// Package limiter bookkeeps per-host fetch timing and resolves how long a
// caller must wait for a host's delay to pass since its last recorded
// fetch. Resolving a delay and recording a fetch are separate calls, so
// concurrent callers that resolve at the same moment get the same wait.
package limiter

import (
	"sync"
	"time"

	"github.com/falcongraph/crawler/pkg/timeutil"
)

// RateLimiter tracks each hostname's last fetch timestamp and resolves
// the delay a worker must wait before fetching that host again.
type RateLimiter interface {
	SetBaseDelay(baseDelay time.Duration)
	SetCrawlDelay(host string, delay time.Duration)
	MarkLastFetchAsNow(host string)
	ResolveDelay(host string) time.Duration
}

// ConcurrentRateLimiter is safe for concurrent use by multiple worker
// goroutines fetching different (or the same) hosts.
type ConcurrentRateLimiter struct {
	mu          sync.RWMutex
	baseDelay   time.Duration
	hostTimings map[string]hostTiming
	sleeper     timeutil.Sleeper
}

func NewConcurrentRateLimiter(sleeper timeutil.Sleeper) *ConcurrentRateLimiter {
	if sleeper == nil {
		sleeper = timeutil.RealSleeper{}
	}
	return &ConcurrentRateLimiter{
		hostTimings: make(map[string]hostTiming),
		sleeper:     sleeper,
	}
}

// SetBaseDelay sets the floor delay applied to every host; a host-specific
// crawl delay can only raise it.
func (r *ConcurrentRateLimiter) SetBaseDelay(baseDelay time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.baseDelay = baseDelay
}

// SetCrawlDelay records a host-specific delay, separate from the base delay.
func (r *ConcurrentRateLimiter) SetCrawlDelay(host string, delay time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	timing := r.hostTimings[host]
	timing.crawlDelay = delay
	r.hostTimings[host] = timing
}

// MarkLastFetchAsNow records the current time as the last fetch time for host.
func (r *ConcurrentRateLimiter) MarkLastFetchAsNow(host string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	timing := r.hostTimings[host]
	timing.lastFetchAt = r.sleeper.Now()
	r.hostTimings[host] = timing
}

// ResolveDelay computes how much longer a caller must wait before fetching
// host again: max(baseDelay, crawlDelay) minus elapsed time since the last
// recorded fetch, floored at zero. A host with no recorded fetch yet
// returns zero.
func (r *ConcurrentRateLimiter) ResolveDelay(host string) time.Duration {
	r.mu.RLock()
	timing, exists := r.hostTimings[host]
	base := r.baseDelay
	r.mu.RUnlock()

	if !exists {
		return 0
	}

	required := timeutil.MaxDuration([]time.Duration{base, timing.crawlDelay})
	elapsed := r.sleeper.Now().Sub(timing.lastFetchAt)
	if elapsed < required {
		return required - elapsed
	}
	return 0
}

// hostTiming tracks when a host was last fetched and any host-specific
// crawl delay discovered for it.
type hostTiming struct {
	lastFetchAt time.Time
	crawlDelay  time.Duration
}
