// Package pebblestore is a small durable key-value store on top of pebble.
// It backs the client session so credentials survive process restarts.
package pebblestore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"

	"github.com/Eiad-Soufan/bm-requests-frontend/internal/domain"
)

// Store wraps a pebble database. All writes are synced.
type Store struct {
	db *pebble.DB
}

// Open opens (or creates) the store at path. The parent directory is created
// with owner-only permissions.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("pebblestore.Open: %w", err)
	}
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("pebblestore.Open: %w", err)
	}
	return &Store{db: db}, nil
}

// OpenInMemory opens a store that lives only for the process lifetime.
func OpenInMemory() (*Store, error) {
	db, err := pebble.Open("", &pebble.Options{FS: vfs.NewMem()})
	if err != nil {
		return nil, fmt.Errorf("pebblestore.OpenInMemory: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database. Safe on a nil store.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Get returns a copy of the value stored under key, or domain.ErrNotFound.
func (s *Store) Get(key string) ([]byte, error) {
	v, closer, err := s.db.Get([]byte(key))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("pebblestore.Get %s: %w", key, err)
	}
	defer closer.Close()

	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

// Set stores value under key.
func (s *Store) Set(key string, value []byte) error {
	if err := s.db.Set([]byte(key), value, pebble.Sync); err != nil {
		return fmt.Errorf("pebblestore.Set %s: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (s *Store) Delete(key string) error {
	if err := s.db.Delete([]byte(key), pebble.Sync); err != nil {
		return fmt.Errorf("pebblestore.Delete %s: %w", key, err)
	}
	return nil
}

// DeletePrefix removes every key starting with prefix.
func (s *Store) DeletePrefix(prefix string) error {
	start, end := prefixBounds(prefix)
	if end == nil {
		return s.deleteKeys(prefix)
	}
	if err := s.db.DeleteRange(start, end, pebble.Sync); err != nil {
		return fmt.Errorf("pebblestore.DeletePrefix %s: %w", prefix, err)
	}
	return nil
}

func (s *Store) deleteKeys(prefix string) error {
	keys, err := s.Keys(prefix)
	if err != nil {
		return err
	}
	b := s.db.NewBatch()
	defer b.Close()
	for _, k := range keys {
		if err := b.Delete([]byte(k), nil); err != nil {
			return fmt.Errorf("pebblestore.DeletePrefix %s: %w", prefix, err)
		}
	}
	if err := b.Commit(pebble.Sync); err != nil {
		return fmt.Errorf("pebblestore.DeletePrefix %s: %w", prefix, err)
	}
	return nil
}

// Keys lists the keys starting with prefix in byte order.
func (s *Store) Keys(prefix string) ([]string, error) {
	lower, upper := prefixBounds(prefix)
	it, err := s.db.NewIter(&pebble.IterOptions{LowerBound: lower, UpperBound: upper})
	if err != nil {
		return nil, fmt.Errorf("pebblestore.Keys %s: %w", prefix, err)
	}
	defer it.Close()

	var keys []string
	for ok := it.First(); ok; ok = it.Next() {
		keys = append(keys, string(it.Key()))
	}
	if err := it.Error(); err != nil {
		return nil, fmt.Errorf("pebblestore.Keys %s: %w", prefix, err)
	}
	return keys, nil
}

// prefixBounds returns [prefix, successor) where successor is the smallest
// key greater than every key with the prefix.
func prefixBounds(prefix string) ([]byte, []byte) {
	lower := []byte(prefix)
	upper := make([]byte, len(lower))
	copy(upper, lower)
	for i := len(upper) - 1; i >= 0; i-- {
		upper[i]++
		if upper[i] != 0 {
			return lower, upper[:i+1]
		}
	}
	// Prefix is all 0xff or empty; no finite upper bound.
	return lower, nil
}
