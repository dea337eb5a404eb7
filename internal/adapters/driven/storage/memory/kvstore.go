package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/custodia-labs/folio/internal/core/domain"
	"github.com/custodia-labs/folio/internal/core/ports/driven"
)

// Ensure KeyValueStore implements the interface.
var _ driven.KeyValueStore = (*KeyValueStore)(nil)

// KeyValueStore is an in-memory implementation of driven.KeyValueStore.
// A positive quota caps the total size of keys plus values, mirroring
// the sqlite adapter.
type KeyValueStore struct {
	mu     sync.RWMutex
	values map[string]string
	quota  int64
	used   int64

	// failWith, when set, makes every Set return it.
	failWith error
}

// NewKeyValueStore creates a store with the given quota in bytes (0 = unlimited).
func NewKeyValueStore(quota int64) *KeyValueStore {
	return &KeyValueStore{
		values: make(map[string]string),
		quota:  quota,
	}
}

// FailWrites makes subsequent Set calls return err. Pass nil to restore.
func (s *KeyValueStore) FailWrites(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failWith = err
}

// Get returns the value for key.
func (s *KeyValueStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok, nil
}

// Set stores value under key.
func (s *KeyValueStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failWith != nil {
		return s.failWith
	}

	used := s.used + int64(len(value))
	if old, ok := s.values[key]; ok {
		used -= int64(len(old))
	} else {
		used += int64(len(key))
	}
	if s.quota > 0 && used > s.quota {
		return fmt.Errorf("set %s (%d bytes): %w", key, len(value), domain.ErrQuotaExceeded)
	}

	s.values[key] = value
	s.used = used
	return nil
}

// Delete removes key.
func (s *KeyValueStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if old, ok := s.values[key]; ok {
		s.used -= int64(len(key) + len(old))
		delete(s.values, key)
	}
	return nil
}

// Keys returns keys with prefix in ascending order.
func (s *KeyValueStore) Keys(_ context.Context, prefix string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0)
	for k := range s.values {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// Used returns the bytes currently stored.
func (s *KeyValueStore) Used() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.used
}
