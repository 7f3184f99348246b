package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/iksnae/session-hooks/internal"
)

// MarkdownExporter exports session records as a Markdown table
type MarkdownExporter struct{}

// Export writes records to w
func (e *MarkdownExporter) Export(records []internal.SessionRecord, w io.Writer) error {
	_, _ = fmt.Fprintf(w, "# Session History\n\n")
	_, _ = fmt.Fprintf(w, "**Sessions:** %d\n\n", len(records))

	if len(records) == 0 {
		return nil
	}

	_, _ = fmt.Fprintf(w, "| Ended | Working directory |\n")
	_, _ = fmt.Fprintf(w, "|---|---|\n")
	for _, record := range records {
		if _, err := fmt.Fprintf(w, "| %s | %s |\n", internal.DateTimeString(record.EndedAt), escapeCell(record.WorkingDir)); err != nil {
			return err
		}
	}

	return nil
}

// escapeCell keeps a value from breaking the table row
func escapeCell(text string) string {
	text = strings.ReplaceAll(text, "|", "\\|")
	return strings.ReplaceAll(text, "\n", " ")
}

// Extension returns the file extension for this format
func (e *MarkdownExporter) Extension() string {
	return "md"
}
