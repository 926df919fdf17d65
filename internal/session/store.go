// Package session holds the page-to-page state of one booking flow. It is
// the typed replacement for the browser's session storage: every read is
// validated, and a missing or malformed entry is a precondition failure,
// not a fault.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/redis/go-redis/v9"

	"github.com/kinohall/booking-front/internal/domain"
)

// Store is the raw key-value layer underneath the typed state. Values live
// for the session TTL; nothing is deleted mid-flow.
type Store interface {
	Get(ctx context.Context, sid, key string) (string, error)
	Set(ctx context.Context, sid, key, value string) error
}

type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Get(ctx context.Context, sid, key string) (string, error) {
	val, err := s.client.Get(ctx, "sess:"+sid+":"+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", errors.Wrapf(domain.ErrNotFound, "session key %s", key)
	}
	if err != nil {
		return "", errors.Wrapf(err, "session key %s", key)
	}
	return val, nil
}

func (s *RedisStore) Set(ctx context.Context, sid, key, value string) error {
	return s.client.Set(ctx, "sess:"+sid+":"+key, value, s.ttl).Err()
}

// MemoryStore backs tests and redis-less runs.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: map[string]map[string]string{}}
}

func (s *MemoryStore) Get(ctx context.Context, sid, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.sessions[sid][key]
	if !ok {
		return "", errors.Wrapf(domain.ErrNotFound, "session key %s", key)
	}
	return val, nil
}

func (s *MemoryStore) Set(ctx context.Context, sid, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sessions[sid] == nil {
		s.sessions[sid] = map[string]string{}
	}
	s.sessions[sid][key] = value
	return nil
}
