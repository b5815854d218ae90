package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/iksnae/chat-composer/internal"
)

// JSONExporter writes a session as one indented JSON document with UTC
// RFC 3339 timestamps, the same layout the store persists per session
type JSONExporter struct{}

// Export writes session to w
func (e *JSONExporter) Export(session *internal.Session, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	if err := enc.Encode(newSessionRecord(session)); err != nil {
		return fmt.Errorf("failed to encode session %s: %w", session.ID, err)
	}
	return nil
}

// Extension returns the file extension for this format
func (e *JSONExporter) Extension() string {
	return "json"
}
