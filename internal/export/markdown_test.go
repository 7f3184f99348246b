package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/iksnae/session-hooks/internal"
)

func TestMarkdownExporter_Export(t *testing.T) {
	tests := []struct {
		name    string
		records []internal.SessionRecord
		want    []string
		notWant []string
	}{
		{
			name:    "no records",
			records: nil,
			want:    []string{"# Session History", "**Sessions:** 0"},
			notWant: []string{"| Ended |"},
		},
		{
			name:    "records",
			records: internal.CreateTestRecords(2),
			want: []string{
				"**Sessions:** 2",
				"| Ended | Working directory |",
				"| 2026-03-14 09:00:05 | /work/project-a |",
				"| 2026-03-14 09:01:05 | /work/project-b |",
			},
		},
		{
			name:    "pipe in directory",
			records: []internal.SessionRecord{internal.CreateTestRecord("/odd|dir", 0)},
			want:    []string{`/odd\|dir`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exporter := &MarkdownExporter{}
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
			for _, notWant := range tt.notWant {
				if strings.Contains(output, notWant) {
					t.Errorf("Export() output should not contain %q", notWant)
				}
			}
		})
	}
}

func TestMarkdownExporter_Extension(t *testing.T) {
	exporter := &MarkdownExporter{}
	if got := exporter.Extension(); got != "md" {
		t.Errorf("Extension() = %v, want md", got)
	}
}
