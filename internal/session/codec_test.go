package session

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/iksnae/chat-composer/internal"
	"github.com/iksnae/chat-composer/testutil"
)

func TestEncodeDecode_RoundTrip(t *testing.T) {
	base := time.Date(2025, 3, 4, 5, 6, 7, 891011121, time.UTC)
	in := []internal.Session{
		{
			ID:    "session-1",
			Title: "Explain recursion",
			Messages: []internal.Message{
				{ID: "msg-1", Role: internal.RoleUser, Content: "Explain recursion", Timestamp: base},
				{ID: "msg-assistant-1", Role: internal.RoleAssistant, Content: "Here's a detailed explanation", Timestamp: base.Add(time.Second)},
			},
			CreatedAt: base.Add(-time.Minute),
			UpdatedAt: base.Add(time.Second),
		},
		{
			ID:        "session-2",
			Title:     internal.DefaultTitle,
			Messages:  []internal.Message{},
			CreatedAt: base,
			UpdatedAt: base,
		},
	}

	data, err := Encode(in)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	out, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestDecode_SampleCollection(t *testing.T) {
	sessions, err := Decode([]byte(testutil.SampleCollection))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("Decode() returned %d sessions, want 2", len(sessions))
	}

	first := sessions[0]
	want := time.Date(2025, 1, 2, 10, 0, 1, 500000000, time.UTC)
	if !first.Messages[1].Timestamp.Equal(want) {
		t.Errorf("timestamp = %v, want %v", first.Messages[1].Timestamp, want)
	}
	if first.Messages[0].Role != internal.RoleUser {
		t.Errorf("role = %q", first.Messages[0].Role)
	}
}

// Collections written by earlier builds carry millisecond timestamps
func TestDecode_FixtureFile(t *testing.T) {
	sessions, err := Decode(testutil.LoadFixture(t, "sessions.json"))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("Decode() returned %d sessions, want 2", len(sessions))
	}

	if got := sessions[0].Messages[1].Timestamp; !got.Equal(time.Date(2025, 1, 15, 9, 30, 1, 500000000, time.UTC)) {
		t.Errorf("timestamp = %v", got)
	}
	if sessions[1].Title != internal.DefaultTitle || len(sessions[1].Messages) != 0 {
		t.Errorf("empty session decoded as %+v", sessions[1])
	}

	// Re-encoding keeps the instants
	data, err := Encode(sessions)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	again, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if diff := cmp.Diff(sessions, again); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestDecode_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantKey string
	}{
		{"not json", `{{{`, internal.SessionsKey},
		{"wrong shape", `{"id":"x"}`, internal.SessionsKey},
		{"bad createdAt", `[{"id":"s","title":"t","messages":[],"createdAt":"yesterday","updatedAt":"2025-01-01T00:00:00Z"}]`, "[0].createdAt"},
		{"bad message timestamp", `[{"id":"s","title":"t","messages":[{"id":"m","role":"user","content":"c","timestamp":""}],"createdAt":"2025-01-01T00:00:00Z","updatedAt":"2025-01-01T00:00:00Z"}]`, "[0].messages[0].timestamp"},
		{"unknown role", `[{"id":"s","title":"t","messages":[{"id":"m","role":"tool","content":"c","timestamp":"2025-01-01T00:00:00Z"}],"createdAt":"2025-01-01T00:00:00Z","updatedAt":"2025-01-01T00:00:00Z"}]`, "[0].messages[0].role"},
		{"missing id", `[{"title":"t","messages":[],"createdAt":"2025-01-01T00:00:00Z","updatedAt":"2025-01-01T00:00:00Z"}]`, "[0].id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.data))
			var perr *internal.ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("Decode() error = %v, want *internal.ParseError", err)
			}
			if perr.Key != tt.wantKey {
				t.Errorf("ParseError.Key = %q, want %q", perr.Key, tt.wantKey)
			}
		})
	}
}
