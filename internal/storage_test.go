package internal

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/iksnae/chat-composer/testutil"
)

func TestKVStore_LoadSaveErase(t *testing.T) {
	db := testutil.CreateTestDB(t)
	store := NewKVStore(db, ":memory:")

	data, ok, err := store.Load()
	if err != nil || !ok {
		t.Fatalf("Load() ok = %v, err = %v", ok, err)
	}
	if string(data) != testutil.SampleCollection {
		t.Errorf("Load() returned unexpected record")
	}

	if err := store.Save([]byte(`[]`)); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	data, ok, _ = store.Load()
	if !ok || string(data) != `[]` {
		t.Errorf("Load() after Save = %q, %v", data, ok)
	}

	if err := store.Erase(); err != nil {
		t.Fatalf("Erase() error = %v", err)
	}
	if _, ok, _ := store.Load(); ok {
		t.Error("Load() after Erase reported a record")
	}
	// Erasing twice is harmless
	if err := store.Erase(); err != nil {
		t.Errorf("second Erase() error = %v", err)
	}
}

func TestKVStore_Entries(t *testing.T) {
	db := testutil.CreateTestDB(t)
	testutil.InsertRecord(t, db, "composer-draft", "hello")
	store := NewKVStore(db, ":memory:")

	entries, err := store.Entries()
	if err != nil {
		t.Fatalf("Entries() error = %v", err)
	}
	keys := map[string]bool{}
	for _, e := range entries {
		keys[e.Key] = true
	}
	if len(entries) != 2 || !keys[SessionsKey] || !keys["composer-draft"] {
		t.Errorf("Entries() = %v", entries)
	}
}

func TestOpenKVStore_File(t *testing.T) {
	path := filepath.Join(testutil.CreateTempDir(t), "sessions.db")

	store, err := OpenKVStore(path)
	if err != nil {
		t.Fatalf("OpenKVStore() error = %v", err)
	}
	if err := store.Save([]byte("payload")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	reopened, err := OpenKVStore(path)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer reopened.Close()

	data, ok, err := reopened.Load()
	if err != nil || !ok || string(data) != "payload" {
		t.Errorf("Load() after reopen = %q, %v, %v", data, ok, err)
	}
}

func TestKVStore_ClosedDatabase(t *testing.T) {
	db := testutil.CreateInMemoryDB(t)
	store := NewKVStore(db, "closed.db")
	_ = db.Close()

	_, _, err := store.Load()
	var serr *StorageError
	if !errors.As(err, &serr) {
		t.Fatalf("Load() error = %v, want *StorageError", err)
	}
	if serr.Op != "load" || serr.Path != "closed.db" {
		t.Errorf("StorageError = %+v", serr)
	}
}

func TestMemoryDurable(t *testing.T) {
	m := NewMemoryDurable(nil)
	if _, ok, _ := m.Load(); ok {
		t.Fatal("empty MemoryDurable reported a record")
	}

	src := []byte("abc")
	_ = m.Save(src)
	src[0] = 'z'

	data, ok, _ := m.Load()
	if !ok || string(data) != "abc" {
		t.Errorf("Load() = %q, %v; want copy of saved data", data, ok)
	}
	if m.Saves() != 1 {
		t.Errorf("Saves() = %d, want 1", m.Saves())
	}

	_ = m.Erase()
	if _, ok, _ := m.Load(); ok {
		t.Error("Load() after Erase reported a record")
	}
}
