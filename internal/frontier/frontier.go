// Package frontier implements the crawler's shared work queue: a FIFO of
// URLs paired with queued/visited sets that guarantee each URL is
// processed at most once, plus the admission rules gating entry.
package frontier

import (
	"sync"
	"sync/atomic"

	"github.com/falcongraph/crawler/pkg/urlutil"
)

// Frontier is the admission authority for this crawl: Enqueue performs
// canonicalization, host allow-listing, and extension filtering in one
// place, then inserts into the shared pending/queued/visited state.
//
// Lock ordering: visited first, queue second, matching the documented
// rule that enqueue holds visited while appending to the queue.
type Frontier struct {
	visitedMu sync.Mutex
	visited   Set[string]

	queueMu sync.Mutex
	queued  Set[string]
	pending FIFOQueue[string]

	activeWorkers int64

	allowedDomains map[string]struct{}
	allowedExt     map[string]struct{}
}

// New constructs an empty Frontier gated by the given host allow-list and
// extension allow-list (both already normalized by the config loader).
func New(allowedDomains, allowedExtensions map[string]struct{}) *Frontier {
	return &Frontier{
		visited:        NewSet[string](),
		queued:         NewSet[string](),
		pending:        *NewFIFOQueue[string](),
		allowedDomains: allowedDomains,
		allowedExt:     allowedExtensions,
	}
}

// Enqueue canonicalizes raw, applies the admission rules (§4.7), and
// inserts it into queued+pending if it passes and isn't already known.
// Returns true iff the URL was admitted.
func (f *Frontier) Enqueue(raw string) bool {
	stripped := urlutil.StripFragment(raw)
	canonical, ok := urlutil.Parse(stripped)
	if !ok {
		return false
	}

	if _, allowed := f.allowedDomains[canonical.Host]; !allowed {
		return false
	}

	if ext := urlutil.Extension(canonical.String()); ext != "" {
		if _, allowed := f.allowedExt[ext]; !allowed {
			return false
		}
	}

	key := canonical.String()

	f.visitedMu.Lock()
	defer f.visitedMu.Unlock()

	if f.visited.Contains(key) {
		return false
	}

	f.queueMu.Lock()
	defer f.queueMu.Unlock()

	if f.queued.Contains(key) {
		return false
	}

	f.queued.Add(key)
	f.pending.Enqueue(key)
	return true
}

// Claim pops the head of pending, moves it into visited, and increments
// the active-worker count before returning it. The active count is
// incremented while the queue lock is still held, before the dequeue
// becomes visible, so ShouldStop cannot fire while a worker is mid-claim.
// Returns ok=false if pending is empty, leaving all state untouched.
func (f *Frontier) Claim() (string, bool) {
	f.visitedMu.Lock()
	defer f.visitedMu.Unlock()

	f.queueMu.Lock()
	url, ok := f.pending.Dequeue()
	if ok {
		atomic.AddInt64(&f.activeWorkers, 1)
		f.queued.Remove(url)
	}
	f.queueMu.Unlock()

	if !ok {
		return "", false
	}

	f.visited.Add(url)
	return url, true
}

// Release decrements the active-worker count, never below zero.
func (f *Frontier) Release() {
	for {
		current := atomic.LoadInt64(&f.activeWorkers)
		if current <= 0 {
			return
		}
		if atomic.CompareAndSwapInt64(&f.activeWorkers, current, current-1) {
			return
		}
	}
}

// ShouldStop reports whether pending is empty and no worker is active.
func (f *Frontier) ShouldStop() bool {
	f.queueMu.Lock()
	empty := f.pending.Size() == 0
	f.queueMu.Unlock()

	return empty && atomic.LoadInt64(&f.activeWorkers) == 0
}

// ActiveWorkers reports the current active-worker count, for observability.
func (f *Frontier) ActiveWorkers() int64 {
	return atomic.LoadInt64(&f.activeWorkers)
}
