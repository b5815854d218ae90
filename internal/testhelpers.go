package internal

import (
	"time"
)

// CreateTestSession creates a test session with a user question and an assistant answer
func CreateTestSession(id string) *Session {
	created := time.Date(2025, 1, 2, 10, 0, 0, 0, time.UTC)
	return &Session{
		ID:    id,
		Title: "Hello, how are you?",
		Messages: []Message{
			{
				ID:        "msg-" + id + "-1",
				Role:      RoleUser,
				Content:   "Hello, how are you?",
				Timestamp: created,
			},
			{
				ID:        "msg-assistant-" + id + "-2",
				Role:      RoleAssistant,
				Content:   "I'm doing well, thank you!",
				Timestamp: created.Add(time.Second),
			},
		},
		CreatedAt: created,
		UpdatedAt: created.Add(time.Second),
	}
}

// CreateTestSessionWithMessages creates a test session with custom messages
func CreateTestSessionWithMessages(id string, messages []Message) *Session {
	created := time.Date(2025, 1, 2, 10, 0, 0, 0, time.UTC)
	return &Session{
		ID:        id,
		Title:     DefaultTitle,
		Messages:  messages,
		CreatedAt: created,
		UpdatedAt: created,
	}
}

// CreateTestMessage creates a message with a deterministic id
func CreateTestMessage(id string, role Role, content string) Message {
	return Message{
		ID:        id,
		Role:      role,
		Content:   content,
		Timestamp: time.Date(2025, 1, 2, 10, 0, 0, 0, time.UTC),
	}
}
