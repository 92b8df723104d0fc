package store

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/matthieukhl/shopfront/internal/storage"
)

// FavoritesStore is the product wishlist: an ordered set of product ids
// written synchronously to the durable tier on every mutation and hydrated
// exactly once per store. It is deliberately independent of the session:
// logging out does not touch it.
type FavoritesStore struct {
	notifier
	durable storage.Store

	mu          sync.RWMutex
	items       []string
	hydrateOnce sync.Once
}

// NewFavoritesStore wires a favorites store on the durable tier.
func NewFavoritesStore(durable storage.Store) *FavoritesStore {
	return &FavoritesStore{durable: durable}
}

// Hydrate loads the persisted set. Only the first call reads storage;
// external writes to the file afterwards are not observed until a new
// store is built.
func (s *FavoritesStore) Hydrate() {
	s.hydrateOnce.Do(func() {
		raw, ok := s.durable.Get(storage.KeyFavorites)
		if !ok {
			return
		}
		var items []string
		if err := json.Unmarshal([]byte(raw), &items); err != nil {
			return
		}
		s.mu.Lock()
		s.items = items
		s.mu.Unlock()
		s.notify()
	})
}

// Snapshot returns a copy of the current set in insertion order.
func (s *FavoritesStore) Snapshot() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.items))
	copy(out, s.items)
	return out
}

// Has reports whether id is favorited.
func (s *FavoritesStore) Has(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, it := range s.items {
		if it == id {
			return true
		}
	}
	return false
}

// Count returns the set size.
func (s *FavoritesStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// setItemsLocked persists then publishes; callers hold mu for writing so
// the read-modify-write is atomic. Persistence failures abort the
// mutation so the in-memory set never diverges from the stored value.
func (s *FavoritesStore) setItemsLocked(items []string) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode favorites: %w", err)
	}
	if err := s.durable.Set(storage.KeyFavorites, string(raw)); err != nil {
		return fmt.Errorf("failed to persist favorites: %w", err)
	}
	s.items = items
	return nil
}

// Toggle is symmetric: absent ids are appended, present ids removed.
// The lock is held from read through persist so concurrent toggles never
// lose each other's mutation.
func (s *FavoritesStore) Toggle(id string) error {
	s.mu.Lock()
	next := make([]string, 0, len(s.items)+1)
	found := false
	for _, it := range s.items {
		if it == id {
			found = true
			continue
		}
		next = append(next, it)
	}
	if !found {
		next = append(next, id)
	}
	if err := s.setItemsLocked(next); err != nil {
		s.mu.Unlock()
		return err
	}
	s.mu.Unlock()
	s.notify()
	return nil
}

// Clear empties the set. Exposed for shared-machine hygiene since logout
// does not clear favorites.
func (s *FavoritesStore) Clear() error {
	s.mu.Lock()
	if err := s.setItemsLocked([]string{}); err != nil {
		s.mu.Unlock()
		return err
	}
	s.mu.Unlock()
	s.notify()
	return nil
}
