package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	domainerror "github.com/catering-ops/backend/internal/domain/error"
	"github.com/catering-ops/backend/internal/integration/entrypoint/dto"
)

const (
	// defaultMaxAttempts is the default number of allowed attempts per window.
	defaultMaxAttempts = 5
	// defaultWindowDuration is the default time window for rate limiting.
	defaultWindowDuration = 1 * time.Minute

	rateLimitKeyPrefix = "ratelimit:"
)

// limitStore counts attempts per key within a window.
type limitStore interface {
	allow(ctx context.Context, key string, max int, window time.Duration) (bool, error)
}

// RateLimiter provides IP-based rate limiting functionality.
type RateLimiter struct {
	store          limitStore
	name           string
	maxAttempts    int
	windowDuration time.Duration
}

// NewRateLimiter creates an in-memory rate limiter with default settings.
func NewRateLimiter(name string) *RateLimiter {
	return NewRateLimiterWithConfig(name, defaultMaxAttempts, defaultWindowDuration, nil)
}

// NewRateLimiterWithConfig creates a rate limiter with custom settings.
// A nil client keeps counters in memory; otherwise they are shared through Redis.
func NewRateLimiterWithConfig(name string, maxAttempts int, windowDuration time.Duration, client *redis.Client) *RateLimiter {
	var store limitStore = newMemoryStore()
	if client != nil {
		store = &redisStore{client: client}
	}
	return &RateLimiter{
		store:          store,
		name:           name,
		maxAttempts:    maxAttempts,
		windowDuration: windowDuration,
	}
}

// Middleware returns a Gin middleware handler that enforces rate limiting.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		if clientIP == "" {
			clientIP = c.Request.RemoteAddr
		}

		allowed, err := rl.store.allow(c.Request.Context(), rateLimitKeyPrefix+rl.name+":"+clientIP, rl.maxAttempts, rl.windowDuration)
		if err != nil {
			// fail open, a broken limiter must not lock users out
			slog.Warn("Rate limiter unavailable", "limiter", rl.name, "error", err)
			c.Next()
			return
		}

		if !allowed {
			c.JSON(http.StatusTooManyRequests, dto.ErrorResponse{
				Error: "Too many requests. Please try again later.",
				Code:  string(domainerror.ErrCodeRateLimited),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// rateLimitEntry tracks rate limit data for a single key.
type rateLimitEntry struct {
	attempts  int
	resetTime time.Time
}

// memoryStore keeps fixed-window counters in process memory.
type memoryStore struct {
	mu      sync.Mutex
	entries map[string]*rateLimitEntry
	now     func() time.Time
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		entries: make(map[string]*rateLimitEntry),
		now:     time.Now,
	}
}

func (s *memoryStore) allow(_ context.Context, key string, max int, window time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()

	entry, exists := s.entries[key]
	if !exists || now.After(entry.resetTime) {
		s.entries[key] = &rateLimitEntry{
			attempts:  1,
			resetTime: now.Add(window),
		}
		s.cleanup(now)
		return true, nil
	}

	if entry.attempts < max {
		entry.attempts++
		return true, nil
	}

	return false, nil
}

// cleanup removes expired entries.
func (s *memoryStore) cleanup(now time.Time) {
	for key, entry := range s.entries {
		if now.After(entry.resetTime) {
			delete(s.entries, key)
		}
	}
}

// redisStore keeps fixed-window counters in Redis so every instance shares them.
type redisStore struct {
	client *redis.Client
}

func (s *redisStore) allow(ctx context.Context, key string, max int, window time.Duration) (bool, error) {
	attempts, err := s.client.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to count attempt: %w", err)
	}
	if attempts == 1 {
		if err := s.client.Expire(ctx, key, window).Err(); err != nil {
			return false, fmt.Errorf("failed to set rate limit window: %w", err)
		}
	}
	return attempts <= int64(max), nil
}
