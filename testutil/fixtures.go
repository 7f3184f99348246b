package testutil

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"
)

// SessionsFixture describes a seeded <base>/sessions and <base>/learned tree
type SessionsFixture struct {
	BaseDir     string
	SessionsDir string
	LearnedDir  string
	Markers     []string // marker paths in creation order
}

// CreateSessionsFixture seeds one marker per entry in markerAges (age relative to now)
// and learnedCount markdown files under the learned directory.
func CreateSessionsFixture(t *testing.T, baseDir string, now time.Time, markerAges []time.Duration, learnedCount int) SessionsFixture {
	t.Helper()
	f := SessionsFixture{
		BaseDir:     baseDir,
		SessionsDir: filepath.Join(baseDir, "sessions"),
		LearnedDir:  filepath.Join(baseDir, "learned"),
	}

	for i, age := range markerAges {
		modTime := now.Add(-age)
		name := fmt.Sprintf("%s-fixt%04d-session.tmp", modTime.Format("2006-01-02"), i)
		path := filepath.Join(f.SessionsDir, name)
		WriteFile(t, path, fmt.Sprintf("Session ended: %s\nWorking directory: /fixture/%d\n", modTime.Format("2006-01-02 15:04:05"), i), modTime)
		f.Markers = append(f.Markers, path)
	}

	for i := 0; i < learnedCount; i++ {
		WriteFile(t, filepath.Join(f.LearnedDir, fmt.Sprintf("pattern-%d.md", i)), "# Learned pattern\n", time.Time{})
	}

	return f
}

// WriteSessionLog writes raw lines to <sessionsDir>/session-log.txt
func WriteSessionLog(t *testing.T, sessionsDir string, lines ...string) string {
	t.Helper()
	path := filepath.Join(sessionsDir, "session-log.txt")
	content := ""
	for _, line := range lines {
		content += line + "\n"
	}
	WriteFile(t, path, content, time.Time{})
	return path
}
