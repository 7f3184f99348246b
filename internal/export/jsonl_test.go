package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/iksnae/session-hooks/internal"
)

func TestJSONLExporter_Export(t *testing.T) {
	tests := []struct {
		name    string
		records []internal.SessionRecord
		want    []string
	}{
		{
			name:    "no records",
			records: []internal.SessionRecord{},
			want:    []string{},
		},
		{
			name:    "two records",
			records: internal.CreateTestRecords(2),
			want: []string{
				`"working_dir":"/work/project-a"`,
				`"working_dir":"/work/project-b"`,
			},
		},
		{
			name:    "timestamp format",
			records: []internal.SessionRecord{internal.CreateTestRecord("/tmp/x", 7)},
			want: []string{
				`"ended_at":"2026-03-14 09:07:05"`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exporter := &JSONLExporter{}
			var buf bytes.Buffer

			if err := exporter.Export(tt.records, &buf); err != nil {
				t.Fatalf("Export() error = %v", err)
			}

			output := buf.String()
			for _, want := range tt.want {
				if !strings.Contains(output, want) {
					t.Errorf("Export() output missing %q\noutput: %s", want, output)
				}
			}
		})
	}
}

func TestJSONLExporter_OneObjectPerLine(t *testing.T) {
	records := internal.CreateTestRecords(3)
	exporter := &JSONLExporter{}
	var buf bytes.Buffer

	if err := exporter.Export(records, &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != len(records) {
		t.Fatalf("Export() wrote %d lines, want %d", len(lines), len(records))
	}

	for i, line := range lines {
		var obj map[string]interface{}
		if err := json.Unmarshal([]byte(line), &obj); err != nil {
			t.Errorf("line %d is not valid JSON: %v", i, err)
			continue
		}
		if obj["working_dir"] != records[i].WorkingDir {
			t.Errorf("line %d working_dir = %v, want %q", i, obj["working_dir"], records[i].WorkingDir)
		}
	}
}

func TestJSONLExporter_Extension(t *testing.T) {
	exporter := &JSONLExporter{}
	if got := exporter.Extension(); got != "jsonl" {
		t.Errorf("Extension() = %v, want jsonl", got)
	}
}
