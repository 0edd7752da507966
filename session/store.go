// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

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

// SlotName is the storage slot holding the serialized session.
const SlotName = "vaa_state"

// Store is a single ephemeral slot scoped to one questionnaire.
type Store interface {
	// Load returns the saved session, or found=false if the slot is empty.
	Load(ctx context.Context) (data Data, found bool, err error)
	Save(ctx context.Context, data Data) error
	Clear(ctx context.Context) error
}

// MemoryStore keeps the session in process memory. It vanishes with the
// process.
type MemoryStore struct {
	mu   sync.Mutex
	data []byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load(ctx context.Context) (Data, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data == nil {
		return Data{}, false, nil
	}
	return unmarshalData(s.data)
}

func (s *MemoryStore) Save(ctx context.Context, data Data) error {
	b, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	s.mu.Lock()
	s.data = b
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.data = nil
	s.mu.Unlock()
	return nil
}

// RedisStore keeps the session under one key that expires after TTL of
// inactivity. Every Save refreshes the expiry.
type RedisStore struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// NewRedisStore scopes the slot to scope (e.g. a random key per terminal).
func NewRedisStore(client *redis.Client, scope string, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client: client,
		key:    SlotName + ":" + scope,
		ttl:    ttl,
	}
}

// Key returns the Redis key backing this store.
func (s *RedisStore) Key() string { return s.key }

func (s *RedisStore) Load(ctx context.Context) (Data, bool, error) {
	val, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return Data{}, false, nil
	}
	if err != nil {
		return Data{}, false, fmt.Errorf("redis get failed: %w", err)
	}
	return unmarshalData(val)
}

func (s *RedisStore) Save(ctx context.Context, data Data) error {
	b, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := s.client.Set(ctx, s.key, b, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("redis del failed: %w", err)
	}
	return nil
}

// unmarshalData treats an unreadable slot as empty, like a fresh tab would
func unmarshalData(b []byte) (Data, bool, error) {
	var d Data
	if err := json.Unmarshal(b, &d); err != nil {
		return Data{}, false, nil
	}
	return d, true, nil
}
