// Package cache provides a small thread-safe memo store for resolver and
// profile results. The engine's functions are pure, so entries never go
// stale and need no TTL or eviction; the store simply avoids recomputing
// the same (inputs) twice within a process.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"
)

// keySeparator joins key parts before hashing. The unit separator cannot
// appear in region codes, seasons, or formatted numbers.
const keySeparator = "\x1f"

// Key builds a deterministic cache key from its parts via SHA-256.
func Key(parts ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(parts, keySeparator)))
	return hex.EncodeToString(sum[:])
}

// Store is an in-memory key-value memo store. Safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	entries map[string]any
}

// New creates an empty store.
func New() *Store {
	return &Store{entries: make(map[string]any)}
}

// Get returns the value for key and whether it was present.
func (s *Store) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.entries[key]
	return v, ok
}

// Set stores value under key, replacing any previous entry.
func (s *Store) Set(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = value
}

// Len returns the number of stored entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Clear drops all entries.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]any)
}
