package redis

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/jrbgold/jrb-backend/config"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_ConnectsToServer(t *testing.T) {
	mr := miniredis.RunT(t)
	t.Cleanup(func() { _ = Close() })

	host, port, err := net.SplitHostPort(mr.Addr())
	require.NoError(t, err)
	require.NoError(t, Init(context.Background(), &config.RedisConfig{Host: host, Port: port}))
	assert.NotNil(t, GetClient())
}

func TestInit_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Init(ctx, &config.RedisConfig{Host: "127.0.0.1", Port: "1"})
	assert.Error(t, err)
	assert.Nil(t, GetClient())
}

func TestTokenBlacklist(t *testing.T) {
	mr := miniredis.RunT(t)
	SetClient(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { _ = Close() })
	ctx := context.Background()

	blacklisted, err := IsTokenBlacklisted(ctx, "tok")
	require.NoError(t, err)
	assert.False(t, blacklisted)

	require.NoError(t, BlacklistToken(ctx, "tok", time.Minute))

	blacklisted, err = IsTokenBlacklisted(ctx, "tok")
	require.NoError(t, err)
	assert.True(t, blacklisted)
	assert.Equal(t, time.Minute, mr.TTL("blacklist:tok"))
}

func TestTokenBlacklist_Disabled(t *testing.T) {
	SetClient(nil)

	blacklisted, err := IsTokenBlacklisted(context.Background(), "tok")
	require.NoError(t, err)
	assert.False(t, blacklisted)
	assert.ErrorIs(t, BlacklistToken(context.Background(), "tok", time.Minute), ErrDisabled)
}
