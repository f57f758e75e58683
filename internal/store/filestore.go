package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileStore is the filesystem Backend: one JSON file per collection under a
// base directory, written atomically via tempfile+rename so a crash mid-save
// can never leave a half-written collection on disk. Grounded on the
// file-locking/atomic-write pattern of the reference FileStore in the pack's
// goldbox-rpg persistence package, adapted from per-entity YAML files to
// per-collection JSON maps keyed by record ID.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

// NewFileStore creates (if needed) the base directory and returns a backend
// rooted there.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create store dir %s: %w", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

func (f *FileStore) path(collection string) string {
	return filepath.Join(f.dir, collection+".json")
}

// LoadAll returns every record in a collection keyed by ID. A missing file is
// not an error; it reads back as an empty collection.
func (f *FileStore) LoadAll(collection string) (map[string]json.RawMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path(collection))
	if os.IsNotExist(err) {
		return map[string]json.RawMessage{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read collection %s: %w", collection, err)
	}
	records := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse collection %s: %w", collection, err)
	}
	return records, nil
}

// SaveAll overwrites a collection's file with the given records in one
// atomic write.
func (f *FileStore) SaveAll(collection string, records map[string]json.RawMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.atomicWrite(collection, records)
}

// LoadOne returns a single record by ID. ok is false if the collection or
// the record within it doesn't exist.
func (f *FileStore) LoadOne(collection, id string) (json.RawMessage, bool, error) {
	records, err := f.LoadAll(collection)
	if err != nil {
		return nil, false, err
	}
	rec, ok := records[id]
	return rec, ok, nil
}

// SaveOne upserts a single record into its collection, rewriting the whole
// collection file atomically.
func (f *FileStore) SaveOne(collection, id string, data json.RawMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	records, err := f.loadAllLocked(collection)
	if err != nil {
		return err
	}
	records[id] = data
	return f.atomicWrite(collection, records)
}

func (f *FileStore) loadAllLocked(collection string) (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(f.path(collection))
	if os.IsNotExist(err) {
		return map[string]json.RawMessage{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read collection %s: %w", collection, err)
	}
	records := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse collection %s: %w", collection, err)
	}
	return records, nil
}

func (f *FileStore) atomicWrite(collection string, records map[string]json.RawMessage) error {
	blob, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal collection %s: %w", collection, err)
	}

	target := f.path(collection)
	tmp, err := os.CreateTemp(f.dir, collection+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file for %s: %w", collection, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(blob); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file for %s: %w", collection, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp file for %s: %w", collection, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file for %s: %w", collection, err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		return fmt.Errorf("rename into place for %s: %w", collection, err)
	}
	return nil
}

// Close is a no-op; FileStore holds no persistent connection.
func (f *FileStore) Close() error { return nil }
