// Package session keeps per-conversation navigation state: the ranked news
// batch of the last listing request and the cursor into it.
//
// Sessions are transient. A new listing request replaces the session
// wholesale, and stores drop sessions after a TTL; losing them across a
// restart is acceptable.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/ev1lbr1tan/infomonitor-newsbot-TEST/internal/model"
)

// ErrNotFound reports navigation against an expired or absent session.
var ErrNotFound = errors.New("session not found")

// DefaultTTL is how long an untouched session stays navigable.
const DefaultTTL = time.Hour

// Session is one ranked batch with a 0-based cursor.
type Session struct {
	Items []model.Item `json:"items"`
	Index int          `json:"index"`
}

// Store persists sessions keyed by conversation identity.
//
// Update must apply fn atomically with respect to other Updates on the
// same key, so concurrent navigation taps cannot lose a cursor move.
type Store interface {
	Put(ctx context.Context, key string, s Session) error
	Get(ctx context.Context, key string) (Session, error)
	Update(ctx context.Context, key string, fn func(*Session) error) (Session, error)
}

type memoryEntry struct {
	session  Session
	deadline time.Time
}

// MemoryStore is the default single-process store: a map guarded by one
// mutex, which also serializes Updates per key.
type MemoryStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]memoryEntry
	now      func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{
		ttl:      ttl,
		sessions: make(map[string]memoryEntry),
		now:      time.Now,
	}
}

func (s *MemoryStore) Put(_ context.Context, key string, sess Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[key] = memoryEntry{session: sess, deadline: s.now().Add(s.ttl)}
	return nil
}

func (s *MemoryStore) Get(_ context.Context, key string) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.get(key)
}

func (s *MemoryStore) Update(_ context.Context, key string, fn func(*Session) error) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.get(key)
	if err != nil {
		return Session{}, err
	}
	if err := fn(&sess); err != nil {
		return Session{}, err
	}
	s.sessions[key] = memoryEntry{session: sess, deadline: s.now().Add(s.ttl)}
	return sess, nil
}

// get assumes the caller holds the lock.
func (s *MemoryStore) get(key string) (Session, error) {
	entry, ok := s.sessions[key]
	if !ok {
		return Session{}, ErrNotFound
	}
	if s.now().After(entry.deadline) {
		delete(s.sessions, key)
		return Session{}, ErrNotFound
	}
	return entry.session, nil
}
