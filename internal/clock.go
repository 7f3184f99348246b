package internal

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	dateTimeLayout = "2006-01-02 15:04:05"
	dateLayout     = "2006-01-02"
	timeLayout     = "15:04"
)

// DateTimeString formats t as "YYYY-MM-DD HH:MM:SS"
func DateTimeString(t time.Time) string {
	return t.Format(dateTimeLayout)
}

// DateString formats t as "YYYY-MM-DD"
func DateString(t time.Time) string {
	return t.Format(dateLayout)
}

// TimeString formats t as "HH:MM"
func TimeString(t time.Time) string {
	return t.Format(timeLayout)
}

// ParseDateTime parses a value produced by DateTimeString in local time
func ParseDateTime(s string) (time.Time, error) {
	return time.ParseInLocation(dateTimeLayout, s, time.Local)
}

// ShortID returns 8 lowercase hex characters, enough to tell apart session
// markers written on the same day.
func ShortID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}
