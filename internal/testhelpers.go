package internal

import (
	"time"
)

// CreateTestRecord creates a session record ending at a fixed local time
func CreateTestRecord(dir string, minute int) SessionRecord {
	return SessionRecord{
		EndedAt:    time.Date(2026, time.March, 14, 9, minute, 5, 0, time.Local),
		WorkingDir: dir,
	}
}

// CreateTestRecords creates n records in log order under /work/project-<i>
func CreateTestRecords(n int) []SessionRecord {
	records := make([]SessionRecord, 0, n)
	for i := 0; i < n; i++ {
		records = append(records, CreateTestRecord("/work/project-"+string(rune('a'+i)), i))
	}
	return records
}
