package internal

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rogpeppe/go-internal/lockedfile"
)

// EnsureDir creates path and any missing parents. An existing directory is not an error.
func EnsureDir(path string) error {
	if err := os.MkdirAll(path, 0755); err != nil {
		return &FileError{Op: "mkdir", Path: path, Err: err}
	}
	return nil
}

// ReadFile returns the full content of path. A missing file yields ("", false, nil).
func ReadFile(path string) (string, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, &FileError{Op: "read", Path: path, Err: err}
	}
	return string(data), true, nil
}

// WriteFile replaces the content of path, creating parent directories as needed.
func WriteFile(path, content string) error {
	if err := EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return &FileError{Op: "write", Path: path, Err: err}
	}
	return nil
}

// AppendFile appends content to path, creating it if absent. Concurrent
// appenders are serialized by an advisory lock on the file.
func AppendFile(path, content string) error {
	if err := EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}
	f, err := lockedfile.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return &FileError{Op: "append", Path: path, Err: err}
	}
	defer f.Close()

	if _, err := f.WriteString(content); err != nil {
		return &FileError{Op: "append", Path: path, Err: err}
	}
	return nil
}
