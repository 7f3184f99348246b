package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/iksnae/session-hooks/internal"
)

// JSONLExporter exports session records in JSONL format (one record per line)
type JSONLExporter struct{}

// Export writes records to w
func (e *JSONLExporter) Export(records []internal.SessionRecord, w io.Writer) error {
	enc := json.NewEncoder(w)

	for _, record := range records {
		obj := map[string]interface{}{
			"ended_at":    internal.DateTimeString(record.EndedAt),
			"working_dir": record.WorkingDir,
		}
		if err := enc.Encode(obj); err != nil {
			return fmt.Errorf("failed to encode record: %w", err)
		}
	}

	return nil
}

// Extension returns the file extension for this format
func (e *JSONLExporter) Extension() string {
	return "jsonl"
}
