// Package logging writes the crawler's user-visible progress lines: a
// start line, one line per failed fetch, and a terminal finished line.
// Each line is logfmt-encoded key=value pairs to stderr, the same shape
// the teacher's dependency graph carries (go-logfmt/logfmt) but never
// wires up to a concrete writer.
package logging

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/go-logfmt/logfmt"
)

// Logger emits logfmt-encoded lines. It is safe for concurrent use: each
// call to a log method acquires the encoder for the duration of one line.
type Logger struct {
	mu  sync.Mutex
	enc *logfmt.Encoder
}

// New returns a Logger writing to w.
func New(w io.Writer) *Logger {
	return &Logger{enc: logfmt.NewEncoder(w)}
}

// Stderr returns a Logger writing to os.Stderr, the crawler's default.
func Stderr() *Logger {
	return New(os.Stderr)
}

// CrawlStart logs the start of a crawl run.
func (l *Logger) CrawlStart(startURL string, threads int, maxPages int) {
	l.line(
		"event", "crawl_start",
		"start_url", startURL,
		"crawler_threads", threads,
		"max_pages", maxPages,
	)
}

// FetchError logs a single failed fetch: URL and the reason it failed.
func (l *Logger) FetchError(url string, reason string) {
	l.line(
		"event", "fetch_error",
		"url", url,
		"reason", reason,
	)
}

// FetchOK logs a successful fetch's auditable attributes: content type,
// size, and a content hash so repeated runs can be diffed.
func (l *Logger) FetchOK(url string, contentType string, contentHash string, size int) {
	l.line(
		"event", "fetch_ok",
		"url", url,
		"content_type", contentType,
		"content_hash", contentHash,
		"bytes", size,
	)
}

// WriteError logs a fatal disk write failure that is about to end a worker.
func (l *Logger) WriteError(url string, path string, reason string) {
	l.line(
		"event", "write_error",
		"url", url,
		"path", path,
		"reason", reason,
	)
}

// CrawlFinished logs the terminal summary line.
func (l *Logger) CrawlFinished(pagesDownloaded int, errors int, elapsed time.Duration) {
	l.line(
		"event", "crawl_finished",
		"pages_downloaded", pagesDownloaded,
		"errors", errors,
		"elapsed_ms", elapsed.Milliseconds(),
	)
}

func (l *Logger) line(keyvals ...interface{}) {
	keyvals = append([]interface{}{"ts", time.Now().Format(time.RFC3339)}, keyvals...)
	l.mu.Lock()
	defer l.mu.Unlock()
	_ = l.enc.EncodeKeyvals(keyvals...)
	_ = l.enc.EndRecord()
}
