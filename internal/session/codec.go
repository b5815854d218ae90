package session

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/iksnae/chat-composer/internal"
)

// storedSession is the persisted layout of a Session. Timestamps travel as
// RFC 3339 strings and are parsed back explicitly on load.
type storedSession struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	Messages  []storedMessage `json:"messages"`
	CreatedAt string          `json:"createdAt"`
	UpdatedAt string          `json:"updatedAt"`
}

type storedMessage struct {
	ID        string `json:"id"`
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

// Encode serializes the collection in creation order
func Encode(sessions []internal.Session) ([]byte, error) {
	out := make([]storedSession, 0, len(sessions))
	for _, s := range sessions {
		msgs := make([]storedMessage, 0, len(s.Messages))
		for _, m := range s.Messages {
			msgs = append(msgs, storedMessage{
				ID:        m.ID,
				Role:      string(m.Role),
				Content:   m.Content,
				Timestamp: formatTime(m.Timestamp),
			})
		}
		out = append(out, storedSession{
			ID:        s.ID,
			Title:     s.Title,
			Messages:  msgs,
			CreatedAt: formatTime(s.CreatedAt),
			UpdatedAt: formatTime(s.UpdatedAt),
		})
	}

	data, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal sessions: %w", err)
	}
	return data, nil
}

// Decode parses a serialized collection, re-hydrating every timestamp
func Decode(data []byte) ([]internal.Session, error) {
	var stored []storedSession
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, &internal.ParseError{Source: "sessions", Key: internal.SessionsKey, Err: err}
	}

	sessions := make([]internal.Session, 0, len(stored))
	seen := make(map[string]bool, len(stored))
	for i, ss := range stored {
		if ss.ID == "" {
			return nil, &internal.ParseError{Source: "sessions", Key: fmt.Sprintf("[%d].id", i), Err: fmt.Errorf("missing id")}
		}
		if seen[ss.ID] {
			return nil, &internal.ParseError{Source: "sessions", Key: fmt.Sprintf("[%d].id", i), Err: fmt.Errorf("duplicate id %q", ss.ID)}
		}
		seen[ss.ID] = true

		createdAt, err := parseTime(ss.CreatedAt, fmt.Sprintf("[%d].createdAt", i))
		if err != nil {
			return nil, err
		}
		updatedAt, err := parseTime(ss.UpdatedAt, fmt.Sprintf("[%d].updatedAt", i))
		if err != nil {
			return nil, err
		}

		msgs := make([]internal.Message, 0, len(ss.Messages))
		for j, sm := range ss.Messages {
			role := internal.Role(sm.Role)
			if role != internal.RoleUser && role != internal.RoleAssistant {
				return nil, &internal.ParseError{Source: "sessions", Key: fmt.Sprintf("[%d].messages[%d].role", i, j), Err: fmt.Errorf("unknown role %q", sm.Role)}
			}
			ts, err := parseTime(sm.Timestamp, fmt.Sprintf("[%d].messages[%d].timestamp", i, j))
			if err != nil {
				return nil, err
			}
			msgs = append(msgs, internal.Message{
				ID:        sm.ID,
				Role:      role,
				Content:   sm.Content,
				Timestamp: ts,
			})
		}

		sessions = append(sessions, internal.Session{
			ID:        ss.ID,
			Title:     ss.Title,
			Messages:  msgs,
			CreatedAt: createdAt,
			UpdatedAt: updatedAt,
		})
	}

	return sessions, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s, key string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, &internal.ParseError{Source: "sessions", Key: key, Err: err}
	}
	return t, nil
}
