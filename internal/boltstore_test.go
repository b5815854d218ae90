package internal

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/iksnae/chat-composer/testutil"
)

func TestBoltStore_LoadSaveErase(t *testing.T) {
	path := filepath.Join(testutil.CreateTempDir(t), "nested", "sessions.bolt")
	store, err := OpenBoltStore(path)
	if err != nil {
		t.Fatalf("OpenBoltStore() error = %v", err)
	}
	defer func() { _ = store.Close() }()

	if _, ok, err := store.Load(); err != nil || ok {
		t.Fatalf("Load() on a fresh file ok = %v, err = %v", ok, err)
	}

	if err := store.Save([]byte(testutil.SampleCollection)); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	data, ok, err := store.Load()
	if err != nil || !ok || string(data) != testutil.SampleCollection {
		t.Fatalf("Load() after Save ok = %v, err = %v", ok, err)
	}

	if err := store.Erase(); err != nil {
		t.Fatalf("Erase() error = %v", err)
	}
	if _, ok, _ := store.Load(); ok {
		t.Error("Load() after Erase reported a record")
	}
	if err := store.Erase(); err != nil {
		t.Errorf("second Erase() error = %v", err)
	}
}

func TestBoltStore_Reopen(t *testing.T) {
	path := filepath.Join(testutil.CreateTempDir(t), "sessions.bolt")
	store, err := OpenBoltStore(path)
	if err != nil {
		t.Fatalf("OpenBoltStore() error = %v", err)
	}
	if err := store.Save([]byte(`[]`)); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	reopened, err := OpenBoltStore(path)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer func() { _ = reopened.Close() }()
	data, ok, err := reopened.Load()
	if err != nil || !ok || string(data) != `[]` {
		t.Errorf("Load() after reopen = %q, %v, %v", data, ok, err)
	}
}

func TestBoltStore_Closed(t *testing.T) {
	store, err := OpenBoltStore(filepath.Join(testutil.CreateTempDir(t), "sessions.bolt"))
	if err != nil {
		t.Fatalf("OpenBoltStore() error = %v", err)
	}
	_ = store.Close()

	err = store.Save([]byte(`[]`))
	var storageErr *StorageError
	if !errors.As(err, &storageErr) || storageErr.Op != "save" {
		t.Errorf("Save() on closed store error = %v, want StorageError(save)", err)
	}
}

func TestOpenDurable(t *testing.T) {
	dir := testutil.CreateTempDir(t)

	tests := []struct {
		name    string
		backend string
		path    string
		wantErr bool
	}{
		{"default is sqlite", "", filepath.Join(dir, "a.db"), false},
		{"sqlite", BackendSQLite, filepath.Join(dir, "b.db"), false},
		{"bolt", BackendBolt, filepath.Join(dir, "c.bolt"), false},
		{"unknown", "etcd", filepath.Join(dir, "d"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := OpenDurable(tt.backend, tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("OpenDurable() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			defer func() { _ = store.Close() }()
			if err := store.Save([]byte(`[]`)); err != nil {
				t.Errorf("Save() error = %v", err)
			}
		})
	}
}
