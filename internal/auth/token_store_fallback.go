// auth/token_store_fallback.go
package auth

import (
	"context"
	"log/slog"
	"sync"

	"github.com/go-redis/redis/v8"
)

// FallbackTokenStore is a resilient token store: Redis when healthy,
// local memory otherwise. The local copy is kept in sync on every
// successful Redis operation so a Redis outage does not log users out.
type FallbackTokenStore struct {
	redisStore  *RedisTokenStore
	local       *Token
	mu          sync.RWMutex
	healthCheck func() bool
	logger      *slog.Logger
}

// NewFallbackTokenStore creates a token store with Redis and local fallback
func NewFallbackTokenStore(client redis.UniversalClient, prefix string, healthCheck func() bool, logger *slog.Logger) *FallbackTokenStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &FallbackTokenStore{
		redisStore:  NewRedisTokenStore(client, prefix),
		healthCheck: healthCheck,
		logger:      logger,
	}
}

// Save stores the token locally and, when Redis is healthy, remotely
func (s *FallbackTokenStore) Save(ctx context.Context, token *Token) error {
	s.mu.Lock()
	if token == nil {
		s.local = nil
	} else {
		copied := *token
		s.local = &copied
	}
	s.mu.Unlock()

	if s.healthCheck() {
		if err := s.redisStore.Save(ctx, token); err != nil {
			s.logger.Warn("failed to save token to redis, continuing with local copy", "error", err)
		}
	}

	return nil
}

// Load retrieves the token, trying Redis first and falling back to the
// local copy
func (s *FallbackTokenStore) Load(ctx context.Context) (*Token, error) {
	if s.healthCheck() {
		token, err := s.redisStore.Load(ctx)
		if err == nil {
			if token != nil {
				s.mu.Lock()
				copied := *token
				s.local = &copied
				s.mu.Unlock()
			}
			return token, nil
		}
		s.logger.Warn("failed to load token from redis, falling back to local copy", "error", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.local == nil {
		return nil, nil
	}
	copied := *s.local
	return &copied, nil
}

// Delete removes the token from both stores
func (s *FallbackTokenStore) Delete(ctx context.Context) error {
	s.mu.Lock()
	s.local = nil
	s.mu.Unlock()

	if s.healthCheck() {
		if err := s.redisStore.Delete(ctx); err != nil {
			s.logger.Warn("failed to delete token from redis", "error", err)
		}
	}

	return nil
}
