package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

func sessionKey(key string) string {
	return fmt.Sprintf("news:session:%s", key)
}

// RedisStore shares sessions between bot instances. Values are JSON blobs
// with a TTL. Updates are serialized by a per-process mutex; Telegram
// delivers one conversation's taps to one instance at a time, so
// cross-process races on a key do not occur in practice.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
	mu  sync.Mutex
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func (s *RedisStore) Put(ctx context.Context, key string, sess Session) error {
	b, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, sessionKey(key), b, s.ttl).Err()
}

func (s *RedisStore) Get(ctx context.Context, key string) (Session, error) {
	b, err := s.rdb.Get(ctx, sessionKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Session{}, ErrNotFound
	}
	if err != nil {
		return Session{}, err
	}

	var sess Session
	if err := json.Unmarshal(b, &sess); err != nil {
		return Session{}, err
	}
	return sess, nil
}

func (s *RedisStore) Update(ctx context.Context, key string, fn func(*Session) error) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.Get(ctx, key)
	if err != nil {
		return Session{}, err
	}
	if err := fn(&sess); err != nil {
		return Session{}, err
	}
	if err := s.Put(ctx, key, sess); err != nil {
		return Session{}, err
	}
	return sess, nil
}
