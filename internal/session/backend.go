package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	appErrors "github.com/mpadjest/bingeplan-web/pkg/errors"
)

// RedisBackend persists sessions in Redis with JSON payloads.
type RedisBackend struct {
	client *redis.Client
}

// NewRedisBackend wraps an existing Redis client.
func NewRedisBackend(client *redis.Client) *RedisBackend {
	return &RedisBackend{client: client}
}

// Get retrieves and unmarshals the stored value.
func (b *RedisBackend) Get(ctx context.Context, key string, dest interface{}) error {
	raw, err := b.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return appErrors.ErrCacheMiss
		}
		return fmt.Errorf("redis get %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("unmarshal session %s: %w", key, err)
	}
	return nil
}

// Set marshals and stores the value with the given TTL.
func (b *RedisBackend) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal session %s: %w", key, err)
	}
	if err := b.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Delete removes the key.
func (b *RedisBackend) Delete(ctx context.Context, key string) error {
	if err := b.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}

type memoryEntry struct {
	raw       []byte
	expiresAt time.Time
}

// MemoryBackend is the single-process fallback used when Redis is not
// configured. Values round-trip through JSON so both backends behave
// identically.
type MemoryBackend struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

// NewMemoryBackend constructs an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{entries: make(map[string]memoryEntry)}
}

func (b *MemoryBackend) Get(ctx context.Context, key string, dest interface{}) error {
	b.mu.RLock()
	entry, ok := b.entries[key]
	b.mu.RUnlock()

	if !ok || time.Now().After(entry.expiresAt) {
		if ok {
			b.mu.Lock()
			delete(b.entries, key)
			b.mu.Unlock()
		}
		return appErrors.ErrCacheMiss
	}
	if err := json.Unmarshal(entry.raw, dest); err != nil {
		return fmt.Errorf("unmarshal session %s: %w", key, err)
	}
	return nil
}

func (b *MemoryBackend) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal session %s: %w", key, err)
	}
	b.mu.Lock()
	b.entries[key] = memoryEntry{raw: raw, expiresAt: time.Now().Add(ttl)}
	b.mu.Unlock()
	return nil
}

func (b *MemoryBackend) Delete(ctx context.Context, key string) error {
	b.mu.Lock()
	delete(b.entries, key)
	b.mu.Unlock()
	return nil
}
