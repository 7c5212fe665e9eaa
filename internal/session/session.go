// Package session holds the current credential and identity, persists them in
// a durable key-value store, and broadcasts lifecycle events so that pollers
// and views can react when the credential goes away.
package session

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Eiad-Soufan/bm-requests-frontend/internal/domain"
)

const (
	prefix = "session/"

	keyAccess   = prefix + "access"
	keyRefresh  = prefix + "refresh"
	keyRole     = prefix + "userRole"
	keyUserID   = prefix + "userId"
	keyUsername = prefix + "username"
)

type kvStore interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Delete(key string) error
	DeletePrefix(prefix string) error
}

// EventKind is the type of a session lifecycle event.
type EventKind int

const (
	EventSaved EventKind = iota + 1
	EventCleared
	EventInvalidated
)

func (k EventKind) String() string {
	switch k {
	case EventSaved:
		return "saved"
	case EventCleared:
		return "cleared"
	case EventInvalidated:
		return "invalidated"
	default:
		return "unknown"
	}
}

// Event is delivered to subscribers after the session changes.
type Event struct {
	Kind    EventKind
	Reason  string
	Session domain.Session
}

// Service is the process-wide session. It is safe for concurrent use.
type Service struct {
	store kvStore
	log   *slog.Logger

	mu  sync.RWMutex
	cur domain.Session

	subMu  sync.Mutex
	subs   map[int]func(Event)
	nextID int
}

// NewService creates a session service over store. Call Load to read a
// previously persisted session.
func NewService(log *slog.Logger, store kvStore) *Service {
	return &Service{
		store: store,
		log:   log.With("service", "session"),
		subs:  make(map[int]func(Event)),
	}
}

// Load reads the persisted session into memory and returns it. Missing keys
// leave the corresponding fields empty.
func (s *Service) Load() (domain.Session, error) {
	var sess domain.Session
	fields := []struct {
		key string
		dst *string
	}{
		{keyAccess, &sess.AccessToken},
		{keyRefresh, &sess.RefreshToken},
		{keyUserID, &sess.UserID},
		{keyUsername, &sess.Username},
	}
	for _, f := range fields {
		v, err := s.get(f.key)
		if err != nil {
			return domain.Session{}, fmt.Errorf("session.Load: %w", err)
		}
		*f.dst = v
	}
	role, err := s.get(keyRole)
	if err != nil {
		return domain.Session{}, fmt.Errorf("session.Load: %w", err)
	}
	sess.Role = domain.Role(role)

	s.mu.Lock()
	s.cur = sess
	s.mu.Unlock()
	return sess, nil
}

func (s *Service) get(key string) (string, error) {
	v, err := s.store.Get(key)
	if errors.Is(err, domain.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return string(v), nil
}

// Current returns a snapshot of the in-memory session.
func (s *Service) Current() domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur
}

// Token returns the bearer credential, empty when logged out.
func (s *Service) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur.AccessToken
}

// Save persists sess and replaces the in-memory session. Empty fields are
// removed from the store.
func (s *Service) Save(sess domain.Session) error {
	fields := []struct {
		key string
		val string
	}{
		{keyAccess, sess.AccessToken},
		{keyRefresh, sess.RefreshToken},
		{keyRole, sess.Role.String()},
		{keyUserID, sess.UserID},
		{keyUsername, sess.Username},
	}
	for _, f := range fields {
		var err error
		if f.val == "" {
			err = s.store.Delete(f.key)
		} else {
			err = s.store.Set(f.key, []byte(f.val))
		}
		if err != nil {
			return fmt.Errorf("session.Save: %w", err)
		}
	}

	s.mu.Lock()
	s.cur = sess
	s.mu.Unlock()

	s.emit(Event{Kind: EventSaved, Session: sess})
	return nil
}

// Clear removes every persisted session key, including keys written by older
// clients under the same namespace, and empties the in-memory session.
func (s *Service) Clear() error {
	if err := s.reset(); err != nil {
		return fmt.Errorf("session.Clear: %w", err)
	}
	s.emit(Event{Kind: EventCleared})
	return nil
}

// Invalidate drops the session after the backend rejected the credential.
// Subscribers are always notified, even when the store could not be wiped,
// because the in-memory credential is gone either way.
func (s *Service) Invalidate(reason string) {
	if err := s.reset(); err != nil {
		s.log.Error("clear invalidated session", slog.String("error", err.Error()))
	}
	s.log.Warn("session invalidated", slog.String("reason", reason))
	s.emit(Event{Kind: EventInvalidated, Reason: reason})
}

func (s *Service) reset() error {
	s.mu.Lock()
	s.cur = domain.Session{}
	s.mu.Unlock()
	return s.store.DeletePrefix(prefix)
}

// Subscribe registers fn for session events and returns a function that
// removes it. fn runs synchronously on the goroutine that changed the
// session, so it must not block.
func (s *Service) Subscribe(fn func(Event)) (unsubscribe func()) {
	s.subMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.subs, id)
			s.subMu.Unlock()
		})
	}
}

func (s *Service) emit(ev Event) {
	s.subMu.Lock()
	fns := make([]func(Event), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}
