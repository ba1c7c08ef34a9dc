package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDenylist(t *testing.T) (*Denylist, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewDenylist(client), mr
}

func TestDenylist_RevokeAndCheck(t *testing.T) {
	d, mr := newTestDenylist(t)
	ctx := context.Background()

	revoked, err := d.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, d.Revoke(ctx, "jti-1", time.Minute))

	revoked, err = d.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)
	assert.True(t, mr.Exists("blacklist:jti-1"))
	assert.Equal(t, time.Minute, mr.TTL("blacklist:jti-1"))

	mr.FastForward(2 * time.Minute)
	revoked, err = d.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestDenylist_IgnoresExpiredTokens(t *testing.T) {
	d, mr := newTestDenylist(t)

	require.NoError(t, d.Revoke(context.Background(), "jti-2", 0))
	assert.False(t, mr.Exists("blacklist:jti-2"))
}

func TestDenylist_NilClientIsNoop(t *testing.T) {
	d := NewDenylist(nil)
	ctx := context.Background()

	assert.False(t, d.Enabled())
	require.NoError(t, d.Revoke(ctx, "jti-3", time.Minute))
	revoked, err := d.IsRevoked(ctx, "jti-3")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestDenylist_RedisDownReturnsError(t *testing.T) {
	d, mr := newTestDenylist(t)
	mr.Close()

	_, err := d.IsRevoked(context.Background(), "jti-4")
	assert.Error(t, err)
}

func TestInitRedis_UnreachableLeavesClientNil(t *testing.T) {
	InitRedis("redis://127.0.0.1:1/0")
	assert.Nil(t, GetClient())
}

func TestInitRedis_ConnectsAndEmptyAddrDisables(t *testing.T) {
	mr := miniredis.RunT(t)

	InitRedis("redis://" + mr.Addr() + "/0")
	require.NotNil(t, GetClient())
	assert.NoError(t, GetClient().Ping(context.Background()).Err())

	InitRedis("")
	assert.Nil(t, GetClient())
}
