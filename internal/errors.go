package internal

import "fmt"

// FileError represents errors touching a hook-managed file or directory
type FileError struct {
	Op   string // "mkdir", "read", "write", "append", "scan"
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("file error: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// CounterError represents errors from a tool-call counter store
type CounterError struct {
	Backend string // "file", "sqlite"
	Key     string
	Err     error
}

func (e *CounterError) Error() string {
	return fmt.Sprintf("counter error [%s] %s: %v", e.Backend, e.Key, e.Err)
}

func (e *CounterError) Unwrap() error {
	return e.Err
}

// ConfigError represents errors loading configuration
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("config error: %v", e.Err)
	}
	return fmt.Sprintf("config error %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// HookError wraps the failure that ended a hook run early
type HookError struct {
	Hook string
	Err  error
}

func (e *HookError) Error() string {
	return fmt.Sprintf("hook %s failed: %v", e.Hook, e.Err)
}

func (e *HookError) Unwrap() error {
	return e.Err
}
