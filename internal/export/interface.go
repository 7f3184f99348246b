package export

import (
	"fmt"
	"io"

	"github.com/iksnae/session-hooks/internal"
)

// Exporter defines the interface for all export formats
type Exporter interface {
	Export(records []internal.SessionRecord, w io.Writer) error
	Extension() string
}

// NewExporter creates a new exporter based on format
func NewExporter(format string) (Exporter, error) {
	switch format {
	case "jsonl":
		return &JSONLExporter{}, nil
	case "md", "markdown":
		return &MarkdownExporter{}, nil
	case "yaml":
		return &YAMLExporter{}, nil
	case "json":
		return &JSONExporter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s (supported: jsonl, md, yaml, json)", format)
	}
}

// document is the envelope written by the whole-file formats
type document struct {
	Count    int                      `json:"count" yaml:"count"`
	Sessions []internal.SessionRecord `json:"sessions" yaml:"sessions"`
}

func newDocument(records []internal.SessionRecord) document {
	if records == nil {
		records = []internal.SessionRecord{}
	}
	return document{Count: len(records), Sessions: records}
}
