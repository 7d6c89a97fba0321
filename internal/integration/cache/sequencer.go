package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/catering-ops/backend/internal/application/adapter"
)

const sequenceKeyPrefix = "report:seq:"

// redisSequencer implements adapter.RequestSequencer with Redis counters,
// so every API instance sees the same latest token per scope.
type redisSequencer struct {
	client *redis.Client
}

// NewRedisSequencer creates a new Redis-backed request sequencer.
func NewRedisSequencer(client *redis.Client) adapter.RequestSequencer {
	return &redisSequencer{client: client}
}

// Next issues a new token for scope.
func (s *redisSequencer) Next(ctx context.Context, scope string) (uint64, error) {
	n, err := s.client.Incr(ctx, sequenceKeyPrefix+scope).Uint64()
	if err != nil {
		return 0, fmt.Errorf("failed to issue request token: %w", err)
	}
	return n, nil
}

// Latest returns the most recent token issued for scope, or zero if none.
func (s *redisSequencer) Latest(ctx context.Context, scope string) (uint64, error) {
	n, err := s.client.Get(ctx, sequenceKeyPrefix+scope).Uint64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read request token: %w", err)
	}
	return n, nil
}

// memorySequencer implements adapter.RequestSequencer for a single instance.
type memorySequencer struct {
	mu     sync.Mutex
	tokens map[string]uint64
}

// NewMemorySequencer creates a new in-memory request sequencer.
func NewMemorySequencer() adapter.RequestSequencer {
	return &memorySequencer{tokens: make(map[string]uint64)}
}

// Next issues a new token for scope.
func (s *memorySequencer) Next(_ context.Context, scope string) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[scope]++
	return s.tokens[scope], nil
}

// Latest returns the most recent token issued for scope, or zero if none.
func (s *memorySequencer) Latest(_ context.Context, scope string) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tokens[scope], nil
}
