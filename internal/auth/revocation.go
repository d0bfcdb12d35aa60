// Package auth holds session revocation. Logout places the raw access
// token in a revocation store until its natural expiry; the JWT
// middleware consults the store on every authenticated request.
package auth

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// RevocationStore remembers tokens that were logged out before expiry.
type RevocationStore interface {
	// Revoke marks a token invalid for ttl. A non-positive ttl is a no-op:
	// the token is already expired.
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	// IsRevoked reports whether a token has been revoked.
	IsRevoked(ctx context.Context, token string) (bool, error)
}

const redisKeyPrefix = "revoked:"

// RedisStore keeps revocations in redis, shared across instances. Keys
// expire on their own when the token would have expired anyway.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore returns a RevocationStore backed by client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Revoke implements RevocationStore.
func (s *RedisStore) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return s.client.Set(ctx, redisKeyPrefix+token, 1, ttl).Err()
}

// IsRevoked implements RevocationStore.
func (s *RedisStore) IsRevoked(ctx context.Context, token string) (bool, error) {
	n, err := s.client.Exists(ctx, redisKeyPrefix+token).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// MemoryStore is the in-process fallback used when redis is not
// configured. Expired entries are pruned lazily on every call.
type MemoryStore struct {
	mu     sync.Mutex
	expiry map[string]time.Time
	now    func() time.Time
}

// NewMemoryStore returns an empty in-memory RevocationStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{expiry: make(map[string]time.Time), now: time.Now}
}

// Revoke implements RevocationStore.
func (s *MemoryStore) Revoke(_ context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prune()
	s.expiry[token] = s.now().Add(ttl)
	return nil
}

// IsRevoked implements RevocationStore.
func (s *MemoryStore) IsRevoked(_ context.Context, token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prune()
	deadline, ok := s.expiry[token]
	return ok && s.now().Before(deadline), nil
}

// prune drops expired entries. Callers hold the lock.
func (s *MemoryStore) prune() {
	now := s.now()
	for token, deadline := range s.expiry {
		if !now.Before(deadline) {
			delete(s.expiry, token)
		}
	}
}
