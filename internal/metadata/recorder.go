// Package metadata holds the crawler's observability event model: a
// closed, stable ErrorCause classification and a Recorder that renders
// crawl events through the structured logger. None of this feeds back
// into control flow — admission, retry, and termination decisions never
// consult it.
package metadata

import (
	"fmt"
	"time"

	"github.com/falcongraph/crawler/internal/logging"
)

// Recorder renders crawl events as structured log lines. It holds no
// state of its own beyond the logger it writes through.
type Recorder struct {
	logger *logging.Logger
}

func NewRecorder(logger *logging.Logger) Recorder {
	return Recorder{logger: logger}
}

// RecordCrawlStart logs the beginning of a run.
func (r Recorder) RecordCrawlStart(startURL string, threads, maxPages int) {
	r.logger.CrawlStart(startURL, threads, maxPages)
}

// RecordFetchSuccess logs a completed fetch's auditable attributes.
func (r Recorder) RecordFetchSuccess(url, contentType, contentHash string, size int) {
	r.logger.FetchOK(url, contentType, contentHash, size)
}

// RecordFetchError logs a failed fetch, tagging it with its ErrorCause
// for grep-ability without letting that classification drive behavior.
func (r Recorder) RecordFetchError(url string, cause ErrorCause, reason string) {
	r.logger.FetchError(url, fmt.Sprintf("%s: %s", cause, reason))
}

// RecordWriteError logs a fatal disk write failure.
func (r Recorder) RecordWriteError(url, path, reason string) {
	r.logger.WriteError(url, path, reason)
}

// RecordCrawlFinished logs the terminal summary line.
func (r Recorder) RecordCrawlFinished(pagesDownloaded, errors int, elapsed time.Duration) {
	r.logger.CrawlFinished(pagesDownloaded, errors, elapsed)
}
