package export

import (
	"encoding/json"
	"io"

	"github.com/iksnae/session-hooks/internal"
)

// JSONExporter exports session records as one pretty-printed JSON document
type JSONExporter struct{}

// Export writes records to w
func (e *JSONExporter) Export(records []internal.SessionRecord, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(newDocument(records))
}

// Extension returns the file extension for this format
func (e *JSONExporter) Extension() string {
	return "json"
}
