package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRevokeAndExpire(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	s := NewMemoryStore()
	s.now = func() time.Time { return now }
	ctx := context.Background()

	revoked, err := s.IsRevoked(ctx, "tok")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, s.Revoke(ctx, "tok", 10*time.Minute))
	revoked, err = s.IsRevoked(ctx, "tok")
	require.NoError(t, err)
	assert.True(t, revoked)

	// Past the token's natural expiry the entry is pruned.
	now = now.Add(11 * time.Minute)
	revoked, err = s.IsRevoked(ctx, "tok")
	require.NoError(t, err)
	assert.False(t, revoked)
	assert.Empty(t, s.expiry, "expired entries are pruned")
}

func TestMemoryStoreIgnoresExpiredTokens(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Revoke(ctx, "stale", 0))
	require.NoError(t, s.Revoke(ctx, "stale", -time.Minute))

	revoked, err := s.IsRevoked(ctx, "stale")
	require.NoError(t, err)
	assert.False(t, revoked, "already-expired tokens need no entry")
}
