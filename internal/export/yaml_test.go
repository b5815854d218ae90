package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/iksnae/chat-composer/internal"
	"gopkg.in/yaml.v3"
)

func TestYAMLExporter_Export(t *testing.T) {
	session := internal.CreateTestSession("session-yaml")

	var buf bytes.Buffer
	if err := (&YAMLExporter{}).Export(session, &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"id: session-yaml",
		"title: ",
		"created_at: 2025-01-02T10:00:00Z",
		"role: assistant",
		"message_count: 2",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	var decoded internal.Session
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid YAML: %v", err)
	}
	if decoded.ID != session.ID || len(decoded.Messages) != 2 {
		t.Errorf("decoded = %+v", decoded)
	}
	if !decoded.CreatedAt.Equal(session.CreatedAt) {
		t.Errorf("created_at = %v, want %v", decoded.CreatedAt, session.CreatedAt)
	}
}

func TestYAMLExporter_Extension(t *testing.T) {
	if got := (&YAMLExporter{}).Extension(); got != "yaml" {
		t.Errorf("Extension() = %v, want yaml", got)
	}
}
