// Package fetcher performs the crawler's single HTTP GET per URL: follow
// redirects, apply a whole-response timeout, capture the body and the
// final Content-Type header. There is no retry path — a failed fetch is
// reported to the caller as an error and the worker moves on.
package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Result is what a successful fetch captures: the response body and the
// trimmed Content-Type header value (which may be empty).
type Result struct {
	Body        []byte
	ContentType string
}

// Fetcher performs a single GET for a URL.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (Result, error)
}

// HTTPFetcher is the production Fetcher, backed by net/http.
type HTTPFetcher struct {
	client    *http.Client
	userAgent string
}

const defaultUserAgent = "FalconGraphCrawler/1.0"

// New constructs an HTTPFetcher with the given whole-request timeout. A
// non-positive timeout leaves the client without a deadline.
func New(timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{
		client:    &http.Client{Timeout: timeout},
		userAgent: defaultUserAgent,
	}
}

// Fetch issues a single GET, following redirects per the client's default
// policy. On any network-level failure, or a non-2xx response status, it
// returns a zero Result and an error; callers must not retry. http.Client
// does not itself treat 4xx/5xx as an error, so Fetch checks the status
// code explicitly — per spec, a 500/404/403 page is a fetch failure, not
// a successful body to persist.
func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string) (Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return Result{}, err
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return Result{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return Result{}, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Body:        body,
		ContentType: strings.TrimSpace(resp.Header.Get("Content-Type")),
	}, nil
}
