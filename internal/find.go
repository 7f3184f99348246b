package internal

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/gobwas/glob"
)

// FileEntry is a directory entry returned by FindFiles
type FileEntry struct {
	Path    string    `json:"path" yaml:"path"`
	Name    string    `json:"name" yaml:"name"`
	ModTime time.Time `json:"mod_time" yaml:"mod_time"`
}

// FindOptions narrows a FindFiles search
type FindOptions struct {
	// MaxAgeDays keeps only entries modified within the last N days. Zero disables the filter.
	MaxAgeDays int
	// Now is the reference time for MaxAgeDays; defaults to time.Now().
	Now time.Time
}

// FindFiles returns the regular files in dir whose names match the wildcard
// pattern ("*" and "?"), newest first. A missing directory yields no entries.
func FindFiles(dir, pattern string, opts FindOptions) ([]FileEntry, error) {
	matcher, err := glob.Compile(pattern)
	if err != nil {
		return nil, &FileError{Op: "scan", Path: filepath.Join(dir, pattern), Err: err}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []FileEntry{}, nil
		}
		return nil, &FileError{Op: "scan", Path: dir, Err: err}
	}

	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	maxAge := time.Duration(opts.MaxAgeDays) * 24 * time.Hour

	results := make([]FileEntry, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !matcher.Match(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			// Removed between ReadDir and Info
			continue
		}
		if opts.MaxAgeDays > 0 && now.Sub(info.ModTime()) > maxAge {
			continue
		}
		results = append(results, FileEntry{
			Path:    filepath.Join(dir, entry.Name()),
			Name:    entry.Name(),
			ModTime: info.ModTime(),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].ModTime.After(results[j].ModTime)
	})
	return results, nil
}
