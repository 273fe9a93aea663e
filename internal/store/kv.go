// package store persists user profiles and jump history through a
// key-value storage capability.
//
// The storage contract mirrors the original tool's on-device storage: each
// collection is a JSON array under its own string key, fully rewritten on
// every mutation. SQLite provides the backing table.
package store

import (
	"database/sql"
	"fmt"
)

// Storage keys. Values under these keys are JSON documents.
const (
	KeyUsers       = "jump.users"
	KeyRecords     = "jump.records"
	KeyCurrentUser = "jump.currentUser"
)

// KV is the generic get/set-by-string-key storage capability.
type KV interface {
	// Get returns the value under key, or (nil, nil) when the key is unset.
	Get(key string) ([]byte, error)
	// Set overwrites the value under key.
	Set(key string, value []byte) error
}

// SQLiteKV implements KV on a single sqlite table.
type SQLiteKV struct {
	db *sql.DB
}

var _ KV = (*SQLiteKV)(nil)

// NewSQLiteKV wraps an open database. The storage table must already exist
// (see shared.RunMigrations).
func NewSQLiteKV(db *sql.DB) *SQLiteKV {
	return &SQLiteKV{db: db}
}

// Get returns the stored value, or nil when the key has never been written.
func (s *SQLiteKV) Get(key string) ([]byte, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM storage WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read key %s: %w", key, err)
	}
	return []byte(value), nil
}

// Set fully rewrites the value under key.
func (s *SQLiteKV) Set(key string, value []byte) error {
	_, err := s.db.Exec(`
		INSERT INTO storage (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`, key, string(value))
	if err != nil {
		return fmt.Errorf("failed to write key %s: %w", key, err)
	}
	return nil
}

// MemoryKV is an in-memory KV used by tests.
type MemoryKV struct {
	values map[string][]byte
}

var _ KV = (*MemoryKV)(nil)

// NewMemoryKV returns an empty in-memory store.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{values: make(map[string][]byte)}
}

// Get returns the stored value, or nil when unset.
func (m *MemoryKV) Get(key string) ([]byte, error) {
	v, ok := m.values[key]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

// Set overwrites the value under key.
func (m *MemoryKV) Set(key string, value []byte) error {
	v := make([]byte, len(value))
	copy(v, value)
	m.values[key] = v
	return nil
}
