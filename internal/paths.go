package internal

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

const (
	// BaseDirName is the assistant's per-user configuration directory under $HOME.
	BaseDirName = ".claude"

	sessionsDirName = "sessions"
	learnedDirName  = "learned"

	// SessionLogName is the cumulative log appended to on every session end.
	SessionLogName = "session-log.txt"
	// SessionMarkerSuffix terminates every session marker file name.
	SessionMarkerSuffix = "-session.tmp"
	// CounterFilePrefix prefixes the per-session tool-call counter files.
	CounterFilePrefix = "claude-tool-count-"
)

// Paths holds the directories the hooks read from and write to
type Paths struct {
	BaseDir     string // <home>/.claude
	SessionsDir string // session markers and session-log.txt
	LearnedDir  string // learned skill markdown files
	TempDir     string // transient counter files
}

// DetectPaths resolves the hook directories. A non-empty baseOverride replaces
// <home>/.claude; everything else is derived from the base.
func DetectPaths(baseOverride string) (Paths, error) {
	base := baseOverride
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Paths{}, errors.Wrap(err, "failed to get home directory")
		}
		base = filepath.Join(home, BaseDirName)
	}
	abs, err := filepath.Abs(base)
	if err != nil {
		return Paths{}, errors.Wrapf(err, "failed to resolve %s", base)
	}
	return NewPaths(abs), nil
}

// NewPaths derives all hook directories from base.
func NewPaths(base string) Paths {
	return Paths{
		BaseDir:     base,
		SessionsDir: filepath.Join(base, sessionsDirName),
		LearnedDir:  filepath.Join(base, learnedDirName),
		TempDir:     os.TempDir(),
	}
}

// SessionLogPath returns the path of the cumulative session log
func (p Paths) SessionLogPath() string {
	return filepath.Join(p.SessionsDir, SessionLogName)
}

// EnsureSessionDirs creates the sessions and learned directories.
func (p Paths) EnsureSessionDirs() error {
	for _, dir := range []string{p.SessionsDir, p.LearnedDir} {
		if err := EnsureDir(dir); err != nil {
			return err
		}
	}
	return nil
}
