package export

import (
	"time"

	"github.com/iksnae/chat-composer/internal"
)

// sessionRecord is the document shape shared by the JSON and YAML exporters.
// Times are normalized to UTC and messages is never null.
type sessionRecord struct {
	ID           string          `json:"id" yaml:"id"`
	Title        string          `json:"title" yaml:"title"`
	CreatedAt    time.Time       `json:"createdAt" yaml:"created_at"`
	UpdatedAt    time.Time       `json:"updatedAt" yaml:"updated_at"`
	MessageCount int             `json:"messageCount" yaml:"message_count"`
	Messages     []messageRecord `json:"messages" yaml:"messages"`
}

type messageRecord struct {
	ID        string    `json:"id" yaml:"id"`
	Role      string    `json:"role" yaml:"role"`
	Content   string    `json:"content" yaml:"content"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}

func newSessionRecord(s *internal.Session) sessionRecord {
	rec := sessionRecord{
		ID:           s.ID,
		Title:        s.Title,
		CreatedAt:    s.CreatedAt.UTC(),
		UpdatedAt:    s.UpdatedAt.UTC(),
		MessageCount: len(s.Messages),
		Messages:     make([]messageRecord, 0, len(s.Messages)),
	}
	for _, m := range s.Messages {
		rec.Messages = append(rec.Messages, messageRecord{
			ID:        m.ID,
			Role:      string(m.Role),
			Content:   m.Content,
			Timestamp: m.Timestamp.UTC(),
		})
	}
	return rec
}
