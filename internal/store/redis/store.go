package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Store keeps the serialized reel collection under a single Redis key.
// It is the redis substrate of the local persistence adapter.
type Store struct {
	client *redis.Client
	key    string
}

// NewStore creates a new Redis store writing to ReelsKey(namespace)
func NewStore(client *redis.Client, namespace string) *Store {
	return &Store{
		client: client,
		key:    ReelsKey(namespace),
	}
}

// Name identifies the substrate in logs
func (s *Store) Name() string { return "redis" }

// Key returns the Redis key in use
func (s *Store) Key() string { return s.key }

// Read returns the stored blob, or nil when the key does not exist
func (s *Store) Read(ctx context.Context) ([]byte, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get reels: %w", err)
	}
	return data, nil
}

// Write replaces the stored blob (no TTL, the collection is the source of truth)
func (s *Store) Write(ctx context.Context, data []byte) error {
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save reels: %w", err)
	}
	return nil
}

// Ping checks the connection, used by /infra
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
