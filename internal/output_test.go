package internal

import (
	"bytes"
	"testing"
)

func TestPrintHelpers_PlainWhenNotTerminal(t *testing.T) {
	tests := []struct {
		name  string
		print func(*bytes.Buffer, string)
		want  string
	}{
		{"success", func(b *bytes.Buffer, m string) { PrintSuccess(b, m) }, "done\n"},
		{"info", func(b *bytes.Buffer, m string) { PrintInfo(b, m) }, "done\n"},
		{"warning", func(b *bytes.Buffer, m string) { PrintWarning(b, m) }, "WARNING: done\n"},
		{"error", func(b *bytes.Buffer, m string) { PrintError(b, m) }, "ERROR: done\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.print(&buf, "done")
			if buf.String() != tt.want {
				t.Errorf("got %q, want %q", buf.String(), tt.want)
			}
		})
	}
}
