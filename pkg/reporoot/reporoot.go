// Package reporoot locates the ancestor directory that anchors relative
// output paths in the configuration file. This is a process-start
// convenience, not part of the crawler's core library surface — callers
// needing a faithful in-memory crawl (tests, for instance) should pass an
// already-resolved root instead of calling Find.
package reporoot

import (
	"os"
	"path/filepath"
)

// marker is the relative path whose presence identifies the repo root.
const marker = "config/pipeline.json"

// Find walks upward from start looking for a directory containing
// config/pipeline.json. It returns the first ancestor (or start itself)
// where the marker exists, or start unchanged if no ancestor has it.
func Find(start string) string {
	dir, err := filepath.Abs(start)
	if err != nil {
		return start
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return start
		}
		dir = parent
	}
}
