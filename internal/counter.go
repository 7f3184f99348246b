package internal

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rogpeppe/go-internal/lockedfile"
)

// Counter remembers how many tool calls a session has made across independent
// hook processes.
type Counter interface {
	IncrementAndGet(ctx context.Context, key string) (int, error)
	Get(ctx context.Context, key string) (int, error)
	Reset(ctx context.Context, key string) error
	Close() error
}

// FileCounter keeps one "claude-tool-count-<key>" file per session in Dir
type FileCounter struct {
	Dir string
}

// NewFileCounter creates a file-backed counter rooted at dir
func NewFileCounter(dir string) *FileCounter {
	return &FileCounter{Dir: dir}
}

// Path returns the counter file for key
func (c *FileCounter) Path(key string) string {
	return filepath.Join(c.Dir, CounterFilePrefix+key)
}

// IncrementAndGet bumps the stored count under an advisory file lock.
// A missing or unparseable value counts as zero.
func (c *FileCounter) IncrementAndGet(ctx context.Context, key string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if err := EnsureDir(c.Dir); err != nil {
		return 0, &CounterError{Backend: "file", Key: key, Err: err}
	}

	var next int
	err := lockedfile.Transform(c.Path(key), func(data []byte) ([]byte, error) {
		next = parseCount(data) + 1
		return []byte(strconv.Itoa(next)), nil
	})
	if err != nil {
		return 0, &CounterError{Backend: "file", Key: key, Err: err}
	}
	return next, nil
}

// Get returns the stored count, zero when absent
func (c *FileCounter) Get(ctx context.Context, key string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	data, err := lockedfile.Read(c.Path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, nil
		}
		return 0, &CounterError{Backend: "file", Key: key, Err: err}
	}
	return parseCount(data), nil
}

// Reset removes the counter file
func (c *FileCounter) Reset(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.Remove(c.Path(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return &CounterError{Backend: "file", Key: key, Err: err}
	}
	return nil
}

// Close is a no-op for file counters
func (c *FileCounter) Close() error {
	return nil
}

func parseCount(data []byte) int {
	n, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// SanitizeKey maps a session identifier onto characters that are safe in a
// file name. An empty result becomes "default". The mapping is lossy: "a/b"
// and "a_b" share a counter, as do ids that agree in their first 128 bytes.
func SanitizeKey(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range strings.TrimSpace(raw) {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	out := b.String()
	if len(out) > 128 {
		out = out[:128]
	}
	if out == "" {
		return DefaultSessionKey
	}
	return out
}
