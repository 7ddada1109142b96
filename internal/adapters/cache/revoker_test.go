package cache

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRevoker_RevokeUntilExpiry(t *testing.T) {
	r := NewMemoryRevoker()
	now := time.Now()
	r.now = func() time.Time { return now }
	ctx := context.Background()

	revoked, err := r.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, r.Revoke(ctx, "jti-1", time.Minute))

	revoked, err = r.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = r.IsRevoked(ctx, "jti-2")
	require.NoError(t, err)
	assert.False(t, revoked)

	now = now.Add(time.Minute)
	revoked, err = r.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)
	assert.Empty(t, r.revoked)
}

func TestRedisRevoker_UnreachableServer(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { client.Close() })
	r := NewRedisRevoker(client)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_, err := r.IsRevoked(ctx, "jti-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "check revoked token")

	err = r.Revoke(ctx, "jti-1", time.Minute)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "revoke token")
}

func TestRevokedKey(t *testing.T) {
	assert.Equal(t, "taskflow:revoked:abc", revokedKey("abc"))
}
