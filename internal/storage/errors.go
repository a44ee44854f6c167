package storage

import (
	"fmt"

	"github.com/falcongraph/crawler/pkg/failure"
)

type StorageErrorCause string

const (
	ErrCauseWriteFailure    StorageErrorCause = "write failed"
	ErrCausePathError       StorageErrorCause = "path error"
	ErrCauseMetadataFailure StorageErrorCause = "metadata append failed"
)

// StorageError is always fatal for the worker that raised it: a disk
// write failure propagates and the worker exits, per the crawler's error
// handling policy for artifact writes.
type StorageError struct {
	Message string
	Cause   StorageErrorCause
	Path    string
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error: %s: %s", e.Cause, e.Message)
}

func (e *StorageError) Severity() failure.Severity {
	return failure.SeverityFatal
}
