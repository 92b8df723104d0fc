// Package storage provides the two client-state tiers: a durable tier
// backed by files in the state directory (survives restarts, holds
// remembered sessions and favorites) and an ephemeral tier held in process
// memory (a "not remembered" session lives only as long as the process).
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Well-known state keys. The names are kept verbatim from the web client so
// state written by either frontend stays interchangeable.
const (
	KeyToken     = "jwt_token"
	KeyUser      = "user"
	KeyFavorites = "tte_favorites_v1"
)

// Store is a string key-value tier.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Delete(key string) error
}

// Tiers bundles the durable and ephemeral stores. Reads that accept either
// tier (token lookup, rehydration) check durable first.
type Tiers struct {
	Durable   Store
	Ephemeral Store
}

// Lookup returns the value for key from the durable tier, falling back to
// the ephemeral tier.
func (t Tiers) Lookup(key string) (string, bool) {
	if v, ok := t.Durable.Get(key); ok && v != "" {
		return v, true
	}
	if v, ok := t.Ephemeral.Get(key); ok && v != "" {
		return v, true
	}
	return "", false
}

// Purge removes key from both tiers.
func (t Tiers) Purge(key string) {
	_ = t.Durable.Delete(key)
	_ = t.Ephemeral.Delete(key)
}

// MemoryStore is the ephemeral tier: a mutex-guarded in-process map.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemoryStore creates an empty ephemeral store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]string)}
}

func (m *MemoryStore) Get(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok
}

func (m *MemoryStore) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *MemoryStore) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// FileStore is the durable tier: one file per key under the state dir.
type FileStore struct {
	mu  sync.Mutex
	dir string
}

// NewFileStore creates the state directory if needed and returns a durable
// store rooted there.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create state dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (f *FileStore) path(key string) string {
	return filepath.Join(f.dir, key)
}

func (f *FileStore) Get(key string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, err := os.ReadFile(f.path(key))
	if err != nil {
		return "", false
	}
	return string(b), true
}

func (f *FileStore) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	// Write-then-rename so a crash mid-write never truncates existing state.
	tmp := f.path(key) + ".tmp"
	if err := os.WriteFile(tmp, []byte(value), 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	if err := os.Rename(tmp, f.path(key)); err != nil {
		return fmt.Errorf("failed to commit %s: %w", key, err)
	}
	return nil
}

func (f *FileStore) Delete(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	err := os.Remove(f.path(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

var (
	_ Store = (*MemoryStore)(nil)
	_ Store = (*FileStore)(nil)
)
