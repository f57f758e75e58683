// Package store implements the PersistenceStore foundation layer: one
// generic load/save surface over named collections backed by
// interchangeable storage engines. Account credentials and character sheets
// stay on internal/database, which predates this layer and already owns that
// schema. The only collection defined here is CollectionOnlineUsers, which
// cmd/mudserver autosaves; rooms, item and NPC templates, quests, effects and
// server config are not stored through this package.
package store

import (
	"encoding/json"
	"fmt"

	"github.com/towerkeep/mudcore/internal/config"
	"github.com/towerkeep/mudcore/internal/logger"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// CollectionOnlineUsers holds the online-user room-location snapshot
// cmd/mudserver autosaves each tick; see cmd/mudserver/main.go's
// saveWorldCollections.
const CollectionOnlineUsers = "online_users"

// KnownCollections lists every collection a PersistenceStore backend may
// hold, for tooling (cmd/migrate) that needs to enumerate them generically
// rather than hardcode one domain package's schema.
var KnownCollections = []string{CollectionOnlineUsers}

// Backend is the storage-engine contract every PersistenceStore driver
// implements: collection-scoped load/save of opaque JSON records, keyed by
// record ID. Modeled on internal/database/dialect.go's Dialect interface,
// widened from one Go struct per table to one json.RawMessage per record so
// a single backend can serve every domain package's collection type.
type Backend interface {
	LoadAll(collection string) (map[string]json.RawMessage, error)
	SaveAll(collection string, records map[string]json.RawMessage) error
	LoadOne(collection, id string) (json.RawMessage, bool, error)
	SaveOne(collection, id string, data json.RawMessage) error
	Close() error
}

// Store is the PersistenceStore: a typed LoadAll/SaveAll/LoadOne/SaveOne
// surface over a Backend, so callers work with Go maps and structs instead
// of json.RawMessage.
type Store struct {
	backend Backend
}

// New wraps an already-constructed Backend.
func New(backend Backend) *Store {
	return &Store{backend: backend}
}

// Open constructs the Backend named by cfg.Backend ("file", "sqlite", or
// "postgres") and returns a Store over it.
func Open(cfg config.StoreConfig) (*Store, error) {
	switch cfg.Backend {
	case "", "file":
		fs, err := NewFileStore(cfg.DSN)
		if err != nil {
			return nil, err
		}
		return New(fs), nil
	case "sqlite":
		s, err := OpenSQLStore(SQLiteDialect{}, cfg.DSN)
		if err != nil {
			return nil, err
		}
		return New(s), nil
	case "postgres":
		s, err := OpenSQLStore(PostgresDialect{}, cfg.DSN)
		if err != nil {
			return nil, err
		}
		return New(s), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}

// Close releases the underlying backend's resources.
func (s *Store) Close() error {
	return s.backend.Close()
}

// LoadAll decodes every record in collection into out, which must be a
// pointer to a map[string]T for the collection's record type T.
func (s *Store) LoadAll(collection string, out any) error {
	records, err := s.backend.LoadAll(collection)
	if err != nil {
		return err
	}
	blob, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("re-marshal collection %s: %w", collection, err)
	}
	if err := json.Unmarshal(blob, out); err != nil {
		return fmt.Errorf("decode collection %s: %w", collection, err)
	}
	return nil
}

// SaveAll encodes in (a map[string]T) and overwrites the collection with it
// in one atomic operation.
func (s *Store) SaveAll(collection string, in any) error {
	blob, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshal collection %s: %w", collection, err)
	}
	records := map[string]json.RawMessage{}
	if err := json.Unmarshal(blob, &records); err != nil {
		return fmt.Errorf("split collection %s: %w", collection, err)
	}
	return s.backend.SaveAll(collection, records)
}

// LoadOne decodes a single record by ID into out. ok reports whether the
// record existed.
func (s *Store) LoadOne(collection, id string, out any) (bool, error) {
	data, ok, err := s.backend.LoadOne(collection, id)
	if err != nil || !ok {
		return ok, err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return true, fmt.Errorf("decode record %s/%s: %w", collection, id, err)
	}
	return true, nil
}

// SaveOne encodes and upserts a single record by ID.
func (s *Store) SaveOne(collection, id string, in any) error {
	data, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshal record %s/%s: %w", collection, id, err)
	}
	return s.backend.SaveOne(collection, id, data)
}

// MustLoadAll loads a required collection at startup, terminating the
// process if it can't be read: a missing ruleset (rooms, item templates) is
// not recoverable by falling back to an empty world.
func (s *Store) MustLoadAll(collection string, out any) {
	if err := s.LoadAll(collection, out); err != nil {
		logger.Error("failed to load required collection", "collection", collection, "error", err)
		panic(fmt.Sprintf("store: required collection %q unavailable: %v", collection, err))
	}
}

// LoadOptional loads a collection that's allowed to be absent (player
// effects, in-progress quests on a fresh world); a load failure is logged
// and leaves out holding whatever zero value it already had.
func (s *Store) LoadOptional(collection string, out any) {
	if err := s.LoadAll(collection, out); err != nil {
		logger.Warning("optional collection unavailable, continuing with empty set", "collection", collection, "error", err)
	}
}
