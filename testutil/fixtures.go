package testutil

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"
)

// CreateSQLiteFixture creates an on-disk SQLite database holding the given collection record.
// An empty record leaves the table empty.
func CreateSQLiteFixture(t *testing.T, dbPath string, record string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		t.Fatalf("Failed to create fixture directory: %v", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer func() { _ = db.Close() }()

	createTableSQL := `
	CREATE TABLE IF NOT EXISTS chatKV (
		key TEXT PRIMARY KEY,
		value TEXT
	)`
	if _, err := db.Exec(createTableSQL); err != nil {
		t.Fatalf("Failed to create table: %v", err)
	}

	if record == "" {
		return
	}
	if _, err := db.Exec("INSERT INTO chatKV (key, value) VALUES (?, ?)", "ai-chat-sessions", record); err != nil {
		t.Fatalf("Failed to insert collection: %v", err)
	}
}

// CreateDataDir creates a temporary data directory and points CHAT_COMPOSER_HOME at it
func CreateDataDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("CHAT_COMPOSER_HOME", dir)
	return dir
}
