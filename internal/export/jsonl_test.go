package export

import (
	"bufio"
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/iksnae/chat-composer/internal"
)

func TestJSONLExporter_Export(t *testing.T) {
	tests := []struct {
		name      string
		session   *internal.Session
		wantLines int
	}{
		{
			name:      "two messages",
			session:   internal.CreateTestSession("session-1"),
			wantLines: 2,
		},
		{
			name:      "empty session",
			session:   internal.CreateTestSessionWithMessages("session-2", []internal.Message{}),
			wantLines: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := (&JSONLExporter{}).Export(tt.session, &buf); err != nil {
				t.Fatalf("Export() error = %v", err)
			}

			lines := 0
			scanner := bufio.NewScanner(&buf)
			for scanner.Scan() {
				var rec jsonlRecord
				if err := json.Unmarshal(scanner.Bytes(), &rec); err != nil {
					t.Fatalf("line %d is not valid JSON: %v", lines, err)
				}
				if rec.Session != tt.session.ID {
					t.Errorf("line %d session = %v, want %v", lines, rec.Session, tt.session.ID)
				}
				if rec.Role != string(tt.session.Messages[lines].Role) {
					t.Errorf("line %d role = %v", lines, rec.Role)
				}
				lines++
			}
			if lines != tt.wantLines {
				t.Errorf("got %d lines, want %d", lines, tt.wantLines)
			}
		})
	}
}

func TestJSONLExporter_Timestamps(t *testing.T) {
	session := internal.CreateTestSessionWithMessages("s", []internal.Message{
		{ID: "m1", Role: internal.RoleUser, Content: "with time", Timestamp: time.Date(2025, 1, 2, 10, 0, 0, 500, time.UTC)},
		{ID: "m2", Role: internal.RoleAssistant, Content: "without time"},
	})

	var buf bytes.Buffer
	if err := (&JSONLExporter{}).Export(session, &buf); err != nil {
		t.Fatal(err)
	}

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if !bytes.Contains(lines[0], []byte(`"timestamp":"2025-01-02T10:00:00.0000005Z"`)) {
		t.Errorf("first line missing timestamp: %s", lines[0])
	}
	if bytes.Contains(lines[1], []byte(`"timestamp"`)) {
		t.Errorf("zero timestamp should be omitted: %s", lines[1])
	}
}
