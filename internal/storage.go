package internal

import (
	"database/sql"
	"sync"
)

// SessionsKey is the chatKV key holding the serialized session collection
const SessionsKey = "ai-chat-sessions"

// Durable is the synchronous key/value substrate the session store persists into
type Durable interface {
	// Load returns the serialized collection, or ok=false when nothing was saved
	Load() (data []byte, ok bool, err error)
	Save(data []byte) error
	Erase() error
}

// KVStore persists the collection as a single record in the SQLite chatKV table
type KVStore struct {
	db   *sql.DB
	path string
	key  string
}

// NewKVStore wraps an open database. path is only used in error reports.
func NewKVStore(db *sql.DB, path string) *KVStore {
	return &KVStore{db: db, path: path, key: SessionsKey}
}

// OpenKVStore opens the database at path and returns a store over it
func OpenKVStore(path string) (*KVStore, error) {
	db, err := OpenDatabase(path)
	if err != nil {
		return nil, err
	}
	return NewKVStore(db, path), nil
}

// Load reads the collection record
func (s *KVStore) Load() ([]byte, bool, error) {
	value, ok, err := GetKV(s.db, s.key)
	if err != nil {
		return nil, false, &StorageError{Path: s.path, Op: "load", Err: err}
	}
	if !ok {
		return nil, false, nil
	}
	return []byte(value), true, nil
}

// Save overwrites the collection record
func (s *KVStore) Save(data []byte) error {
	if err := PutKV(s.db, s.key, string(data)); err != nil {
		return &StorageError{Path: s.path, Op: "save", Err: err}
	}
	return nil
}

// Erase deletes the collection record
func (s *KVStore) Erase() error {
	if err := DeleteKV(s.db, s.key); err != nil {
		return &StorageError{Path: s.path, Op: "erase", Err: err}
	}
	return nil
}

// Entries lists every record in the table, including ones other builds wrote
func (s *KVStore) Entries() ([]KeyValuePair, error) {
	pairs, err := QueryKV(s.db, "%")
	if err != nil {
		return nil, &StorageError{Path: s.path, Op: "query", Err: err}
	}
	return pairs, nil
}

// Close releases the database handle
func (s *KVStore) Close() error {
	return s.db.Close()
}

// MemoryDurable keeps the collection in process memory
type MemoryDurable struct {
	mu    sync.Mutex
	data  []byte
	saves int
}

// NewMemoryDurable returns an empty in-memory substrate, optionally pre-seeded
func NewMemoryDurable(seed []byte) *MemoryDurable {
	m := &MemoryDurable{}
	if seed != nil {
		m.data = append([]byte(nil), seed...)
	}
	return m
}

// Load returns a copy of the stored record
func (m *MemoryDurable) Load() ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		return nil, false, nil
	}
	return append([]byte(nil), m.data...), true, nil
}

// Save stores a copy of data
func (m *MemoryDurable) Save(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = append([]byte(nil), data...)
	m.saves++
	return nil
}

// Erase drops the stored record
func (m *MemoryDurable) Erase() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = nil
	return nil
}

// Saves reports how many times Save was called
func (m *MemoryDurable) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}
