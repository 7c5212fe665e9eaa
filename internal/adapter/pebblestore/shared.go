package pebblestore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
)

// DefaultLockTimeout bounds how long an operation waits for another process
// to release the store.
const DefaultLockTimeout = 3 * time.Second

// ErrLocked is returned when the store stayed locked by someone else for the
// whole lock timeout.
var ErrLocked = errors.New("store is locked by another process")

// Shared is a store at a filesystem path that holds pebble's directory lock
// only while a single operation runs. Any number of processes can use the
// same path; an operation that finds the directory locked retries with
// exponential backoff until the lock timeout.
type Shared struct {
	path    string
	timeout time.Duration

	// mu serializes operations of this process; pebble refuses a second
	// lock from the same process.
	mu sync.Mutex
}

// OpenShared prepares the store directory at path. A timeout <= 0 selects
// DefaultLockTimeout. No lock is held on return.
func OpenShared(path string, timeout time.Duration) (*Shared, error) {
	if err := os.MkdirAll(path, 0o700); err != nil {
		return nil, fmt.Errorf("pebblestore.OpenShared: %w", err)
	}
	if timeout <= 0 {
		timeout = DefaultLockTimeout
	}
	return &Shared{path: path, timeout: timeout}, nil
}

// Close is a no-op: nothing stays open between operations.
func (s *Shared) Close() error { return nil }

// Get returns a copy of the value stored under key, or domain.ErrNotFound.
func (s *Shared) Get(key string) ([]byte, error) {
	var out []byte
	err := s.with(func(st *Store) error {
		v, err := st.Get(key)
		out = v
		return err
	})
	return out, err
}

// Set stores value under key.
func (s *Shared) Set(key string, value []byte) error {
	return s.with(func(st *Store) error { return st.Set(key, value) })
}

// Delete removes key.
func (s *Shared) Delete(key string) error {
	return s.with(func(st *Store) error { return st.Delete(key) })
}

// DeletePrefix removes every key starting with prefix.
func (s *Shared) DeletePrefix(prefix string) error {
	return s.with(func(st *Store) error { return st.DeletePrefix(prefix) })
}

// Keys lists the keys starting with prefix in byte order.
func (s *Shared) Keys(prefix string) ([]string, error) {
	var keys []string
	err := s.with(func(st *Store) error {
		k, err := st.Keys(prefix)
		keys = k
		return err
	})
	return keys, err
}

// with locks the directory, opens the database, runs fn and releases both.
func (s *Shared) with(fn func(*Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, err := s.lock()
	if err != nil {
		return err
	}
	defer lock.Close()

	db, err := pebble.Open(s.path, &pebble.Options{Lock: lock})
	if err != nil {
		return fmt.Errorf("pebblestore.Open: %w", err)
	}
	st := &Store{db: db}
	fnErr := fn(st)
	if err := st.Close(); err != nil && fnErr == nil {
		return fmt.Errorf("pebblestore.Close: %w", err)
	}
	return fnErr
}

func (s *Shared) lock() (*pebble.Lock, error) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 10 * time.Millisecond
	b.MaxInterval = 250 * time.Millisecond
	b.MaxElapsedTime = s.timeout

	var lock *pebble.Lock
	err := backoff.Retry(func() error {
		l, err := pebble.LockDirectory(s.path, vfs.Default)
		if err != nil {
			if !contended(err) {
				return backoff.Permanent(err)
			}
			return err
		}
		lock = l
		return nil
	}, b)
	if err != nil {
		if contended(err) {
			return nil, fmt.Errorf("pebblestore: %s: %w", s.path, ErrLocked)
		}
		return nil, fmt.Errorf("pebblestore: lock %s: %w", s.path, err)
	}
	return lock, nil
}

// contended reports whether a lock error means the lock is held elsewhere.
// Failures to create the lock file come back as *fs.PathError and are final.
func contended(err error) bool {
	var pathErr *fs.PathError
	return !errors.As(err, &pathErr)
}
