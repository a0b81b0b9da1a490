package notices

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const KEY_PREFIX_NOTICES = "crosspost:notices:"

// SessionStore keeps a session's notice queue between the request that raised
// the notices and the page view that shows them.
type SessionStore interface {
	Load(ctx context.Context, sessionID string) (*Queue, error)
	// Save replaces the stored queue; an empty queue deletes it.
	Save(ctx context.Context, sessionID string, q *Queue) error
}

func NoticesKey(sessionID string) string {
	return KEY_PREFIX_NOTICES + sessionID
}

type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{client: client, ttl: ttl}
}

func (s *RedisSessionStore) Load(ctx context.Context, sessionID string) (*Queue, error) {
	data, err := s.client.Get(ctx, NoticesKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return NewQueue(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load notices: %w", err)
	}
	q := NewQueue()
	if err := json.Unmarshal(data, q); err != nil {
		return nil, fmt.Errorf("failed to unmarshal notices: %w", err)
	}
	return q, nil
}

func (s *RedisSessionStore) Save(ctx context.Context, sessionID string, q *Queue) error {
	key := NoticesKey(sessionID)
	if q == nil || q.Len() == 0 {
		if err := s.client.Del(ctx, key).Err(); err != nil {
			return fmt.Errorf("failed to clear notices: %w", err)
		}
		return nil
	}
	data, err := json.Marshal(q)
	if err != nil {
		return fmt.Errorf("failed to marshal notices: %w", err)
	}
	if err := s.client.Set(ctx, key, string(data), s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save notices: %w", err)
	}
	return nil
}

// MemorySessionStore is for single-process development and tests.
// Entries never expire.
type MemorySessionStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{data: map[string][]byte{}}
}

func (s *MemorySessionStore) Load(_ context.Context, sessionID string) (*Queue, error) {
	s.mu.Lock()
	data, ok := s.data[sessionID]
	s.mu.Unlock()

	q := NewQueue()
	if !ok {
		return q, nil
	}
	if err := json.Unmarshal(data, q); err != nil {
		return nil, fmt.Errorf("failed to unmarshal notices: %w", err)
	}
	return q, nil
}

func (s *MemorySessionStore) Save(_ context.Context, sessionID string, q *Queue) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if q == nil || q.Len() == 0 {
		delete(s.data, sessionID)
		return nil
	}
	data, err := json.Marshal(q)
	if err != nil {
		return fmt.Errorf("failed to marshal notices: %w", err)
	}
	s.data[sessionID] = data
	return nil
}
