// Package storage writes fetched pages to disk: HTML into one directory,
// other content into another, and appends a tab-separated metadata row
// per successful write. File naming is deterministic, derived from the
// canonical URL, never from a content hash.
package storage

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/falcongraph/crawler/pkg/failure"
	"github.com/falcongraph/crawler/pkg/fileutil"
	"github.com/falcongraph/crawler/pkg/urlutil"
)

const (
	htmlDir      = "html"
	filesDir     = "files"
	metadataFile = "metadata.tsv"
	maxNameLen   = 240
)

var sanitizeRe = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// Sink persists fetched artifacts under rawOutputDir and appends one
// metadata row per write, guarded by a single mutex (the spec's
// "exclusive access" requirement).
type Sink struct {
	rawOutputDir string

	mu            sync.Mutex
	headerWritten bool
}

// New constructs a Sink rooted at rawOutputDir. The directory and its
// html/files subdirectories are created lazily on first write.
func New(rawOutputDir string) *Sink {
	return &Sink{rawOutputDir: rawOutputDir}
}

// Classify reports whether contentType indicates HTML, per the rule that
// a Content-Type containing "text/html" (case-insensitive), or an empty
// Content-Type, is treated as HTML.
func Classify(contentType string) bool {
	if contentType == "" {
		return true
	}
	return strings.Contains(strings.ToLower(contentType), "text/html")
}

// Write classifies body by contentType, derives its deterministic file
// name from canonical, writes it under html/ or files/, and appends a
// metadata row. Returns the path relative to rawOutputDir.
func (s *Sink) Write(canonical urlutil.Canonical, contentType string, body []byte) (string, failure.ClassifiedError) {
	isHTML := Classify(contentType)

	prefix := filesDir[:len(filesDir)-1] // "file"
	subdir := filesDir
	ext := urlutil.Extension(canonical.String())
	if ext == "" {
		ext = ".bin"
	}
	if isHTML {
		prefix = htmlDir
		subdir = htmlDir
		ext = ".html"
	}

	name := buildFilename(prefix, canonical.Host, canonical.Path, ext)

	dir := filepath.Join(s.rawOutputDir, subdir)
	if classifiedErr := fileutil.EnsureDir(dir); classifiedErr != nil {
		return "", &StorageError{Message: classifiedErr.Error(), Cause: ErrCausePathError, Path: dir}
	}

	fullPath := filepath.Join(dir, name)
	if err := os.WriteFile(fullPath, body, 0644); err != nil {
		return "", &StorageError{Message: err.Error(), Cause: ErrCauseWriteFailure, Path: fullPath}
	}

	relPath := filepath.Join(subdir, name)
	if err := s.appendMetadata(canonical.String(), relPath, contentType); err != nil {
		return "", &StorageError{Message: err.Error(), Cause: ErrCauseMetadataFailure, Path: s.metadataPath()}
	}

	return relPath, nil
}

func (s *Sink) metadataPath() string {
	return filepath.Join(s.rawOutputDir, metadataFile)
}

// appendMetadata appends one url\tpath\tcontent_type\n row under the
// sink's mutex, writing the header line first if the file is new.
func (s *Sink) appendMetadata(url, path, contentType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if classifiedErr := fileutil.EnsureDir(s.rawOutputDir); classifiedErr != nil {
		return classifiedErr
	}

	path_ := s.metadataPath()
	writeHeader := false
	if !s.headerWritten {
		if _, err := os.Stat(path_); os.IsNotExist(err) {
			writeHeader = true
		}
		s.headerWritten = true
	}

	f, err := os.OpenFile(path_, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	if writeHeader {
		if _, err := f.WriteString("url\tpath\tcontent_type\n"); err != nil {
			return err
		}
	}

	_, err = f.WriteString(url + "\t" + path + "\t" + contentType + "\n")
	return err
}

// buildFilename derives a deterministic file name from a canonical URL's
// host and path, per the sink's naming rules:
//  1. empty path or "/" becomes "/index"
//  2. every "/" becomes "_"
//  3. "{prefix}__{host}{safePath}"
//  4. append ext unless already a substring of the name
//  5. collapse any run outside [A-Za-z0-9._-] to a single "_"
//  6. truncate to 240 bytes
func buildFilename(prefix, host, path, ext string) string {
	if path == "" || path == "/" {
		path = "/index"
	}
	path = strings.ReplaceAll(path, "/", "_")

	name := prefix + "__" + host + path
	if ext != "" && !strings.Contains(name, ext) {
		name += ext
	}

	name = sanitizeRe.ReplaceAllString(name, "_")
	if len(name) > maxNameLen {
		name = name[:maxNameLen]
	}
	return name
}
