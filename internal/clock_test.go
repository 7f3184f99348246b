package internal

import (
	"regexp"
	"testing"
	"time"
)

func TestTimestampFormats(t *testing.T) {
	ts := time.Date(2026, time.January, 2, 3, 4, 5, 0, time.Local)

	if got := DateTimeString(ts); got != "2026-01-02 03:04:05" {
		t.Errorf("DateTimeString() = %q", got)
	}
	if got := DateString(ts); got != "2026-01-02" {
		t.Errorf("DateString() = %q", got)
	}
	if got := TimeString(ts); got != "03:04" {
		t.Errorf("TimeString() = %q", got)
	}

	parsed, err := ParseDateTime(DateTimeString(ts))
	if err != nil {
		t.Fatalf("ParseDateTime() error = %v", err)
	}
	if !parsed.Equal(ts) {
		t.Errorf("ParseDateTime() = %v, want %v", parsed, ts)
	}
}

func TestShortID(t *testing.T) {
	pattern := regexp.MustCompile(`^[0-9a-f]{8}$`)
	seen := make(map[string]bool)

	for i := 0; i < 200; i++ {
		id := ShortID()
		if !pattern.MatchString(id) {
			t.Fatalf("ShortID() = %q, want 8 lowercase hex chars", id)
		}
		if seen[id] {
			t.Fatalf("ShortID() repeated %q", id)
		}
		seen[id] = true
	}
}
