package export

import (
	"fmt"
	"io"

	"github.com/iksnae/chat-composer/internal"
	"gopkg.in/yaml.v3"
)

// YAMLExporter writes a session as a YAML document using snake_case keys
type YAMLExporter struct{}

// Export writes session to w
func (e *YAMLExporter) Export(session *internal.Session, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	if err := enc.Encode(newSessionRecord(session)); err != nil {
		_ = enc.Close()
		return fmt.Errorf("failed to encode session %s: %w", session.ID, err)
	}
	return enc.Close()
}

// Extension returns the file extension for this format
func (e *YAMLExporter) Extension() string {
	return "yaml"
}
