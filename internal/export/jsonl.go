package export

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/iksnae/chat-composer/internal"
)

// jsonlRecord is one line of the JSONL export
type jsonlRecord struct {
	Session   string `json:"session"`
	ID        string `json:"id"`
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp,omitempty"`
}

// JSONLExporter exports sessions in JSONL format (one message per line)
type JSONLExporter struct{}

// Export exports a session to JSONL format
func (e *JSONLExporter) Export(session *internal.Session, w io.Writer) error {
	enc := json.NewEncoder(w)

	for _, msg := range session.Messages {
		rec := jsonlRecord{
			Session: session.ID,
			ID:      msg.ID,
			Role:    string(msg.Role),
			Content: msg.Content,
		}
		if !msg.Timestamp.IsZero() {
			rec.Timestamp = msg.Timestamp.UTC().Format(time.RFC3339Nano)
		}

		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("failed to encode message %s: %w", msg.ID, err)
		}
	}

	return nil
}

// Extension returns the file extension for this format
func (e *JSONLExporter) Extension() string {
	return "jsonl"
}
