package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/iksnae/chat-composer/internal"
)

// Exporter writes one chat session in a specific format
type Exporter interface {
	Export(session *internal.Session, w io.Writer) error
	Extension() string
}

// Formats lists the accepted format names
func Formats() []string {
	return []string{"json", "jsonl", "yaml", "md"}
}

// NewExporter creates a new exporter based on format
func NewExporter(format string) (Exporter, error) {
	switch format {
	case "jsonl":
		return &JSONLExporter{}, nil
	case "md", "markdown":
		return &MarkdownExporter{}, nil
	case "yaml", "yml":
		return &YAMLExporter{}, nil
	case "json":
		return &JSONExporter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s (supported: jsonl, md, yaml, json)", format)
	}
}

// WriteFile exports session into dir as <session id>.<ext> and returns the path
func WriteFile(exporter Exporter, session *internal.Session, dir string) (string, error) {
	path := filepath.Join(dir, session.ID+"."+exporter.Extension())
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", &internal.ExportError{Format: exporter.Extension(), Path: dir, Err: err}
	}

	f, err := os.Create(path)
	if err != nil {
		return "", &internal.ExportError{Format: exporter.Extension(), Path: path, Err: err}
	}
	defer func() { _ = f.Close() }()

	if err := exporter.Export(session, f); err != nil {
		return "", &internal.ExportError{Format: exporter.Extension(), Path: path, Err: err}
	}
	return path, nil
}
