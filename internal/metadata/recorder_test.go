package metadata_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/falcongraph/crawler/internal/logging"
	"github.com/falcongraph/crawler/internal/metadata"
	"github.com/stretchr/testify/assert"
)

func TestErrorCause_String(t *testing.T) {
	tests := []struct {
		cause metadata.ErrorCause
		want  string
	}{
		{metadata.CauseUnknown, "unknown"},
		{metadata.CauseNetworkFailure, "network_failure"},
		{metadata.CausePolicyDisallow, "policy_disallow"},
		{metadata.CauseContentInvalid, "content_invalid"},
		{metadata.CauseStorageFailure, "storage_failure"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.cause.String())
	}
}

func TestRecorder_RecordFetchError_IncludesCause(t *testing.T) {
	var buf bytes.Buffer
	r := metadata.NewRecorder(logging.New(&buf))

	r.RecordFetchError("https://t/a", metadata.CauseNetworkFailure, "connection reset")

	out := buf.String()
	assert.Contains(t, out, "event=fetch_error")
	assert.Contains(t, out, "network_failure")
}

func TestRecorder_RecordCrawlFinished(t *testing.T) {
	var buf bytes.Buffer
	r := metadata.NewRecorder(logging.New(&buf))

	r.RecordCrawlFinished(10, 2, 500*time.Millisecond)

	out := buf.String()
	assert.Contains(t, out, "event=crawl_finished")
	assert.Contains(t, out, "pages_downloaded=10")
}
