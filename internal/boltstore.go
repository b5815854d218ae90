package internal

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

// Storage backends selectable in the config
const (
	BackendSQLite = "sqlite"
	BackendBolt   = "bolt"
)

var sessionsBucket = []byte("chat")

// DurableCloser is a durable store holding an open file
type DurableCloser interface {
	Durable
	io.Closer
}

// OpenDurable opens the durable store for backend at path
func OpenDurable(backend, path string) (DurableCloser, error) {
	switch backend {
	case "", BackendSQLite:
		return OpenKVStore(path)
	case BackendBolt:
		return OpenBoltStore(path)
	default:
		return nil, fmt.Errorf("unknown storage backend %q (supported: %s, %s)", backend, BackendSQLite, BackendBolt)
	}
}

// BoltStore persists the collection as a single key in a bbolt bucket
type BoltStore struct {
	db   *bolt.DB
	path string
}

// OpenBoltStore opens or creates the bbolt file at path
func OpenBoltStore(path string) (*BoltStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, &StorageError{Path: path, Op: "mkdir", Err: err}
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, &StorageError{Path: path, Op: "open", Err: err}
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(sessionsBucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, &StorageError{Path: path, Op: "migrate", Err: err}
	}
	return &BoltStore{db: db, path: path}, nil
}

// Load reads the collection record
func (s *BoltStore) Load() ([]byte, bool, error) {
	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(sessionsBucket)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(SessionsKey)); v != nil {
			// Values are only valid inside the transaction
			data = append([]byte{}, v...)
		}
		return nil
	})
	if err != nil {
		return nil, false, &StorageError{Path: s.path, Op: "load", Err: err}
	}
	return data, data != nil, nil
}

// Save overwrites the collection record
func (s *BoltStore) Save(data []byte) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(sessionsBucket)
		if err != nil {
			return err
		}
		return b.Put([]byte(SessionsKey), data)
	})
	if err != nil {
		return &StorageError{Path: s.path, Op: "save", Err: err}
	}
	return nil
}

// Erase deletes the collection record
func (s *BoltStore) Erase() error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(sessionsBucket)
		if b == nil {
			return nil
		}
		return b.Delete([]byte(SessionsKey))
	})
	if err != nil {
		return &StorageError{Path: s.path, Op: "erase", Err: err}
	}
	return nil
}

// Close releases the file lock
func (s *BoltStore) Close() error {
	return s.db.Close()
}
