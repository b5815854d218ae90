package internal

import (
	"time"

	"github.com/google/uuid"
	"github.com/lithammer/shortuuid/v4"
)

// Role identifies the author of a message
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// DefaultTitle is the placeholder title of a session that has no user message yet
const DefaultTitle = "New Chat"

// Message is one entry of a conversation
type Message struct {
	ID        string    `json:"id" yaml:"id"`
	Role      Role      `json:"role" yaml:"role"`
	Content   string    `json:"content" yaml:"content"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}

// Session is one persisted conversation thread
type Session struct {
	ID        string    `json:"id" yaml:"id"`
	Title     string    `json:"title" yaml:"title"`
	Messages  []Message `json:"messages" yaml:"messages"`
	CreatedAt time.Time `json:"createdAt" yaml:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" yaml:"updated_at"`
}

// Clone returns a deep copy of the session
func (s Session) Clone() Session {
	out := s
	out.Messages = CloneMessages(s.Messages)
	return out
}

// LastMessage returns the trailing message, if any
func (s Session) LastMessage() (Message, bool) {
	if len(s.Messages) == 0 {
		return Message{}, false
	}
	return s.Messages[len(s.Messages)-1], true
}

// HasUserMessage reports whether the session contains at least one user message
func (s Session) HasUserMessage() bool {
	for _, m := range s.Messages {
		if m.Role == RoleUser {
			return true
		}
	}
	return false
}

// CloneMessages copies a message slice; nil stays nil
func CloneMessages(msgs []Message) []Message {
	if msgs == nil {
		return nil
	}
	out := make([]Message, len(msgs))
	copy(out, msgs)
	return out
}

// NewSessionID allocates a session identifier
func NewSessionID() string {
	return "session-" + shortuuid.New()
}

// NewMessageID allocates a message identifier for the given role
func NewMessageID(role Role) string {
	if role == RoleAssistant {
		return "msg-assistant-" + uuid.NewString()
	}
	return "msg-" + uuid.NewString()
}

// NewUserMessage builds a user message stamped with the given time
func NewUserMessage(content string, at time.Time) Message {
	return Message{
		ID:        NewMessageID(RoleUser),
		Role:      RoleUser,
		Content:   content,
		Timestamp: at,
	}
}
