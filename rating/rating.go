// Package rating provides access to the parsed files of a rating (one
// scheduling period's worth of TransitMaster export data).
package rating

import (
	"os"
	"path/filepath"
	"sort"
	"sync"

	"rating-manager/rating/hastus"
	"rating-manager/rating/merge"
)

// Rating wraps a directory of exported/merged HASTUS files. Files are
// parsed lazily, once per extension, and cached.
type Rating struct {
	path string

	mu    sync.Mutex
	cache map[string][]hastus.Record
}

// New returns a Rating for the given directory.
func New(path string) *Rating {
	return &Rating{
		path:  path,
		cache: map[string][]hastus.Record{},
	}
}

// Path returns the rating directory.
func (r *Rating) Path() string {
	return r.path
}

// Records parses (or returns the cached) records from every file in the
// rating directory matching the extension, case-insensitively.
func (r *Rating) Records(extension string) ([]hastus.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cached, ok := r.cache[extension]; ok {
		return cached, nil
	}

	matches, err := filepath.Glob(filepath.Join(r.path, merge.InsensitiveGlob(extension)))
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)

	var records []hastus.Record
	for _, match := range matches {
		file, err := os.Open(match)
		if err != nil {
			return nil, err
		}
		parsed, err := hastus.ParseReader(file)
		file.Close()
		if err != nil {
			return nil, err
		}
		records = append(records, parsed...)
	}

	r.cache[extension] = records
	return records, nil
}
