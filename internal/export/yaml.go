package export

import (
	"io"

	"github.com/iksnae/session-hooks/internal"
	"gopkg.in/yaml.v3"
)

// YAMLExporter exports session records in YAML format
type YAMLExporter struct{}

// Export writes records to w
func (e *YAMLExporter) Export(records []internal.SessionRecord, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	defer func() { _ = enc.Close() }()

	return enc.Encode(newDocument(records))
}

// Extension returns the file extension for this format
func (e *YAMLExporter) Extension() string {
	return "yaml"
}
