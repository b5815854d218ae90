package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"
)

// SampleCollection is a serialized two-session collection in the persisted layout
const SampleCollection = `[
  {
    "id": "session-alpha",
    "title": "How do I write a test?",
    "messages": [
      {"id": "msg-1", "role": "user", "content": "How do I write a test?", "timestamp": "2025-01-02T10:00:00Z"},
      {"id": "msg-assistant-1", "role": "assistant", "content": "Use the testing package.", "timestamp": "2025-01-02T10:00:01.5Z"}
    ],
    "createdAt": "2025-01-02T09:59:59Z",
    "updatedAt": "2025-01-02T10:00:01.5Z"
  },
  {
    "id": "session-beta",
    "title": "New Chat",
    "messages": [],
    "createdAt": "2025-01-03T08:00:00Z",
    "updatedAt": "2025-01-03T08:00:00Z"
  }
]`

// CreateInMemoryDB creates an in-memory SQLite database for testing
func CreateInMemoryDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to create in-memory database: %v", err)
	}
	// Each new connection to :memory: is a fresh database
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	createTableSQL := `
	CREATE TABLE IF NOT EXISTS chatKV (
		key TEXT PRIMARY KEY,
		value TEXT
	)`
	if _, err := db.Exec(createTableSQL); err != nil {
		t.Fatalf("Failed to create chatKV table: %v", err)
	}

	return db
}

// CreateTestDB creates a test database holding SampleCollection
func CreateTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db := CreateInMemoryDB(t)
	InsertRecord(t, db, "ai-chat-sessions", SampleCollection)
	return db
}

// InsertRecord inserts a raw record into the chatKV table
func InsertRecord(t *testing.T, db *sql.DB, key, value string) {
	t.Helper()
	insertSQL := "INSERT INTO chatKV (key, value) VALUES (?, ?)"
	if _, err := db.Exec(insertSQL, key, value); err != nil {
		t.Fatalf("Failed to insert record %s: %v", key, err)
	}
}
