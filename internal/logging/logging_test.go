package logging_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/falcongraph/crawler/internal/logging"
	"github.com/stretchr/testify/assert"
)

func TestCrawlStart_WritesEventLine(t *testing.T) {
	var buf bytes.Buffer
	l := logging.New(&buf)

	l.CrawlStart("https://t/", 4, 100)

	out := buf.String()
	assert.Contains(t, out, "event=crawl_start")
	assert.Contains(t, out, "start_url=https://t/")
	assert.Contains(t, out, "crawler_threads=4")
	assert.Contains(t, out, "max_pages=100")
}

func TestFetchError_WritesURLAndReason(t *testing.T) {
	var buf bytes.Buffer
	l := logging.New(&buf)

	l.FetchError("https://t/broken", "connection reset")

	out := buf.String()
	assert.Contains(t, out, "event=fetch_error")
	assert.Contains(t, out, "url=https://t/broken")
	assert.Contains(t, out, `reason="connection reset"`)
}

func TestCrawlFinished_WritesSummary(t *testing.T) {
	var buf bytes.Buffer
	l := logging.New(&buf)

	l.CrawlFinished(42, 3, 1500*time.Millisecond)

	out := buf.String()
	assert.Contains(t, out, "event=crawl_finished")
	assert.Contains(t, out, "pages_downloaded=42")
	assert.Contains(t, out, "errors=3")
	assert.Contains(t, out, "elapsed_ms=1500")
}

func TestEachCallProducesOneLine(t *testing.T) {
	var buf bytes.Buffer
	l := logging.New(&buf)

	l.CrawlStart("https://t/", 1, -1)
	l.FetchError("https://t/a", "timeout")

	lines := bytes.Count(buf.Bytes(), []byte("\n"))
	assert.Equal(t, 2, lines)
}
