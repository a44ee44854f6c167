// Package crawl holds the crawler's control-plane: a fixed-size worker pool
// that claims URLs from the frontier, fetches and persists each one, and
// discovers further links. The worker loop and termination shape are
// grounded in TheSnook-polyester/crawler/crawler.go's CrawlP (bounded
// concurrency, a WaitGroup-tracked completion signal) and the atomic
// active-worker counter pattern from the digster-scraper crawler.
package crawl

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/falcongraph/crawler/internal/config"
	"github.com/falcongraph/crawler/internal/extractor"
	"github.com/falcongraph/crawler/internal/fetcher"
	"github.com/falcongraph/crawler/internal/frontier"
	"github.com/falcongraph/crawler/internal/metadata"
	"github.com/falcongraph/crawler/internal/storage"
	"github.com/falcongraph/crawler/pkg/hashutil"
	"github.com/falcongraph/crawler/pkg/limiter"
	"github.com/falcongraph/crawler/pkg/timeutil"
	"github.com/falcongraph/crawler/pkg/urlutil"
)

// Crawler owns a single crawl's shared state: the frontier, the counters
// workers race on, and the collaborators (fetcher, sink, rate limiter,
// recorder) every worker shares.
type Crawler struct {
	cfg      config.Config
	frontier *frontier.Frontier
	fetcher  fetcher.Fetcher
	sink     *storage.Sink
	limiter  limiter.RateLimiter
	sleeper  timeutil.Sleeper
	recorder metadata.Recorder

	pagesDownloaded int64
	errorCount      int64
	stopped         int32
}

// New assembles a Crawler from cfg using the crawler's real collaborators:
// an HTTPFetcher bounded by cfg.Timeout, a disk Sink rooted at
// cfg.RawOutput, and a host-aware rate limiter seeded with cfg.Delay as its
// base delay.
func New(cfg config.Config, recorder metadata.Recorder) *Crawler {
	sleeper := timeutil.RealSleeper{}
	rateLimiter := limiter.NewConcurrentRateLimiter(sleeper)
	rateLimiter.SetBaseDelay(cfg.Delay())

	return &Crawler{
		cfg:      cfg,
		frontier: frontier.New(cfg.AllowedDomains(), cfg.Extensions()),
		fetcher:  fetcher.New(cfg.Timeout()),
		sink:     storage.New(cfg.RawOutput()),
		limiter:  rateLimiter,
		sleeper:  sleeper,
		recorder: recorder,
	}
}

// Run seeds the frontier with the configured start URL, spawns
// cfg.CrawlerThreads workers, and blocks until every worker has exited.
// Workers exit once the stop flag trips — set when the frontier is empty
// and no worker is active, or when the page cap is reached — or, for a
// single worker, after a fatal disk write failure.
func (c *Crawler) Run(ctx context.Context) {
	start := time.Now()

	c.frontier.Enqueue(c.cfg.StartURL())
	c.recorder.RecordCrawlStart(c.cfg.StartURL(), c.cfg.CrawlerThreads(), c.cfg.MaxPages())

	threads := c.cfg.CrawlerThreads()
	var wg sync.WaitGroup
	wg.Add(threads)
	for i := 0; i < threads; i++ {
		go func() {
			defer wg.Done()
			c.workerLoop(ctx)
		}()
	}
	wg.Wait()

	c.recorder.RecordCrawlFinished(
		int(atomic.LoadInt64(&c.pagesDownloaded)),
		int(atomic.LoadInt64(&c.errorCount)),
		time.Since(start),
	)
}

// workerLoop implements the per-worker repeat in spec §4.4: claim, and
// either process the claim or decide whether to exit. It returns when the
// global stop flag trips or this worker hits a fatal per-worker error
// (currently only a disk write failure).
func (c *Crawler) workerLoop(ctx context.Context) {
	for {
		if c.isStopped() {
			return
		}

		rawURL, ok := c.frontier.Claim()
		if !ok {
			if c.frontier.ShouldStop() {
				c.stop()
				return
			}
			runtime.Gosched()
			continue
		}

		if c.handleClaim(ctx, rawURL) {
			return
		}
	}
}

// handleClaim runs steps 2-8 of the worker loop for a single claimed URL.
// It always calls Release exactly once, regardless of which step aborted
// early. The bool it returns tells the caller whether this worker must now
// exit (a fatal disk write failure per §7), as distinct from the global
// stop flag.
func (c *Crawler) handleClaim(ctx context.Context, rawURL string) (exitWorker bool) {
	defer c.frontier.Release()

	maxPages := c.cfg.MaxPages()
	if maxPages >= 0 && atomic.LoadInt64(&c.pagesDownloaded) >= int64(maxPages) {
		c.stop()
		return false
	}

	canonical, ok := urlutil.Parse(rawURL)
	if !ok {
		return false
	}

	result, err := c.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		atomic.AddInt64(&c.errorCount, 1)
		c.recorder.RecordFetchError(rawURL, metadata.CauseNetworkFailure, err.Error())
		return false
	}

	if len(result.Body) == 0 {
		c.politenessSleep(canonical.Host)
		return false
	}

	relPath, writeErr := c.sink.Write(canonical, result.ContentType, result.Body)
	if writeErr != nil {
		atomic.AddInt64(&c.errorCount, 1)
		c.recorder.RecordWriteError(rawURL, relPath, writeErr.Error())
		return true
	}

	if storage.Classify(result.ContentType) {
		for _, link := range extractor.ExtractLinks(canonical, result.Body) {
			c.frontier.Enqueue(link)
		}
	}

	hash, _ := hashutil.HashBytes(result.Body, hashutil.HashAlgoBLAKE3)
	c.recorder.RecordFetchSuccess(rawURL, result.ContentType, hash, len(result.Body))

	newCount := atomic.AddInt64(&c.pagesDownloaded, 1)
	if maxPages >= 0 && newCount >= int64(maxPages) {
		c.stop()
	}

	c.politenessSleep(canonical.Host)
	return false
}

// politenessSleep runs after a fetch: it waits until the host's delay has
// passed since the last fetch recorded for that host, then records now.
// The wait is resolved and recorded in two separate steps and the next
// fetch is not gated, so workers that finish fetches to one host at about
// the same time can wake together; with N workers a host can still see up
// to N requests per delay interval.
func (c *Crawler) politenessSleep(host string) {
	if delay := c.limiter.ResolveDelay(host); delay > 0 {
		c.sleeper.Sleep(delay)
	}
	c.limiter.MarkLastFetchAsNow(host)
}

func (c *Crawler) stop() {
	atomic.StoreInt32(&c.stopped, 1)
}

func (c *Crawler) isStopped() bool {
	return atomic.LoadInt32(&c.stopped) == 1
}

// PagesDownloaded reports the number of pages successfully persisted so far.
func (c *Crawler) PagesDownloaded() int {
	return int(atomic.LoadInt64(&c.pagesDownloaded))
}

// Errors reports the number of fetch/write errors encountered so far.
func (c *Crawler) Errors() int {
	return int(atomic.LoadInt64(&c.errorCount))
}
