package internal

import (
	"bufio"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const (
	markerPattern  = "*" + SessionMarkerSuffix
	learnedPattern = "*.md"
)

// SessionRecord is one ended session as recorded in the session log
type SessionRecord struct {
	EndedAt    time.Time `json:"ended_at" yaml:"ended_at"`
	WorkingDir string    `json:"working_dir" yaml:"working_dir"`
}

// LogLine renders the record as a session-log.txt line including the newline
func (r SessionRecord) LogLine() string {
	return fmt.Sprintf("[%s] %s\n", DateTimeString(r.EndedAt), r.WorkingDir)
}

// MarkerContent renders the body of a session marker file
func (r SessionRecord) MarkerContent() string {
	return fmt.Sprintf("Session ended: %s\nWorking directory: %s\n", DateTimeString(r.EndedAt), r.WorkingDir)
}

// ParseLogLine parses a line written by LogLine
func ParseLogLine(line string) (SessionRecord, error) {
	line = strings.TrimRight(line, "\r\n")
	if !strings.HasPrefix(line, "[") {
		return SessionRecord{}, errors.Errorf("missing timestamp: %q", line)
	}
	end := strings.Index(line, "] ")
	if end < 0 {
		return SessionRecord{}, errors.Errorf("unterminated timestamp: %q", line)
	}
	endedAt, err := ParseDateTime(line[1:end])
	if err != nil {
		return SessionRecord{}, errors.Wrapf(err, "bad timestamp in %q", line)
	}
	return SessionRecord{EndedAt: endedAt, WorkingDir: line[end+2:]}, nil
}

// ParseMarker parses the body written by MarkerContent
func ParseMarker(content string) (SessionRecord, error) {
	var (
		record   SessionRecord
		haveTime bool
	)
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimRight(line, "\r")
		switch {
		case strings.HasPrefix(line, "Session ended: "):
			t, err := ParseDateTime(strings.TrimPrefix(line, "Session ended: "))
			if err != nil {
				return SessionRecord{}, errors.Wrap(err, "bad marker timestamp")
			}
			record.EndedAt, haveTime = t, true
		case strings.HasPrefix(line, "Working directory: "):
			record.WorkingDir = strings.TrimPrefix(line, "Working directory: ")
		}
	}
	if !haveTime {
		return SessionRecord{}, errors.New("marker has no end time")
	}
	return record, nil
}

// MarkerID extracts <shortid> from a marker file name
func MarkerID(name string) string {
	trimmed := strings.TrimSuffix(name, SessionMarkerSuffix)
	if len(trimmed) > len("2006-01-02-") && trimmed[10] == '-' {
		return trimmed[11:]
	}
	return trimmed
}

// SessionStore reads and writes session markers, the session log and the
// learned-skill listing beneath Paths.
type SessionStore struct {
	paths Paths
}

// NewSessionStore creates a store over paths
func NewSessionStore(paths Paths) *SessionStore {
	return &SessionStore{paths: paths}
}

// MarkerName builds "YYYY-MM-DD-<shortid>-session.tmp"
func MarkerName(t time.Time, shortID string) string {
	return fmt.Sprintf("%s-%s%s", DateString(t), shortID, SessionMarkerSuffix)
}

// RecordSessionEnd writes a fresh marker file and appends the log line.
// It returns the marker path.
func (s *SessionStore) RecordSessionEnd(record SessionRecord) (string, error) {
	if err := EnsureDir(s.paths.SessionsDir); err != nil {
		return "", err
	}

	markerPath := filepath.Join(s.paths.SessionsDir, MarkerName(record.EndedAt, ShortID()))
	if err := WriteFile(markerPath, record.MarkerContent()); err != nil {
		return "", err
	}
	if err := AppendFile(s.paths.SessionLogPath(), record.LogLine()); err != nil {
		return markerPath, err
	}
	return markerPath, nil
}

// RecentMarkers lists marker files modified within the last days, newest first.
// days <= 0 lists every marker.
func (s *SessionStore) RecentMarkers(days int, now time.Time) ([]FileEntry, error) {
	return FindFiles(s.paths.SessionsDir, markerPattern, FindOptions{MaxAgeDays: days, Now: now})
}

// FindMarker returns the marker whose short id or file name is id
func (s *SessionStore) FindMarker(id string) (FileEntry, error) {
	markers, err := s.RecentMarkers(0, time.Now())
	if err != nil {
		return FileEntry{}, err
	}
	for _, m := range markers {
		if m.Name == id || MarkerID(m.Name) == id {
			return m, nil
		}
	}
	return FileEntry{}, errors.Errorf("session marker %q not found in %s", id, s.paths.SessionsDir)
}

// LearnedSkills lists the markdown files in the learned directory
func (s *SessionStore) LearnedSkills() ([]FileEntry, error) {
	return FindFiles(s.paths.LearnedDir, learnedPattern, FindOptions{})
}

// LoadRecords parses the session log in file order. Lines that do not parse
// are skipped and counted.
func (s *SessionStore) LoadRecords() ([]SessionRecord, int, error) {
	content, ok, err := ReadFile(s.paths.SessionLogPath())
	if err != nil {
		return nil, 0, err
	}
	records := make([]SessionRecord, 0)
	if !ok {
		return records, 0, nil
	}

	skipped := 0
	scanner := bufio.NewScanner(strings.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		record, err := ParseLogLine(line)
		if err != nil {
			LogDebug("Skipping session log line: %v", err)
			skipped++
			continue
		}
		records = append(records, record)
	}
	if err := scanner.Err(); err != nil {
		return records, skipped, &FileError{Op: "read", Path: s.paths.SessionLogPath(), Err: err}
	}
	return records, skipped, nil
}
